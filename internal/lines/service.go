package lines

import (
	"fmt"
	"os"
	"sort"

	"github.com/rs/zerolog"

	"github.com/cleared-dev/regnskap/internal/model"
)

// Service provides in-memory lookup over line definitions.
type Service struct {
	lines    []model.Line
	byNumber map[int]model.Line
}

// NewService creates a Service from a slice of definitions. With duplicate
// numbers the first row wins for lookups.
func NewService(defs []model.Line) *Service {
	byNumber := make(map[int]model.Line, len(defs))
	for _, l := range defs {
		if _, ok := byNumber[l.Number]; !ok {
			byNumber[l.Number] = l
		}
	}
	return &Service{lines: defs, byNumber: byNumber}
}

// Load reads a line definitions CSV and returns a Service. Recoverable row
// problems are reported to log.
func Load(path string, log zerolog.Logger) (*Service, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening line definitions: %w", err)
	}
	defer f.Close()

	defs, err := ReadLines(f, log)
	if err != nil {
		return nil, fmt.Errorf("reading line definitions: %w", err)
	}
	return NewService(defs), nil
}

// All returns the definitions in file order.
func (s *Service) All() []model.Line {
	return s.lines
}

// Get returns a line by number.
func (s *Service) Get(number int) (model.Line, bool) {
	l, ok := s.byNumber[number]
	return l, ok
}

// Exists reports whether a line number is defined.
func (s *Service) Exists(number int) bool {
	_, ok := s.byNumber[number]
	return ok
}

// Name returns the line's name, or "" when undefined.
func (s *Service) Name(number int) string {
	return s.byNumber[number].Name
}

// Sorted returns a copy of the definitions ordered by line number.
func (s *Service) Sorted() []model.Line {
	out := make([]model.Line, len(s.lines))
	copy(out, s.lines)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Number < out[j].Number })
	return out
}

// Save writes the definitions to path.
func (s *Service) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating line definitions file: %w", err)
	}
	defer f.Close()

	if err := WriteLines(f, s.lines); err != nil {
		return fmt.Errorf("writing line definitions: %w", err)
	}
	return nil
}
