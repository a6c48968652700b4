package importer

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/cleared-dev/regnskap/internal/model"
)

// Parser converts a trial balance export into Balances.
type Parser interface {
	Parse(r io.Reader) ([]model.Balance, error)
	Format() string
}

// Registry holds named parsers.
type Registry struct {
	parsers map[string]Parser
}

// NewRegistry creates an empty parser registry.
func NewRegistry() *Registry {
	return &Registry{parsers: make(map[string]Parser)}
}

// Register adds a parser. Panics on duplicate format.
func (r *Registry) Register(p Parser) {
	key := strings.ToLower(p.Format())
	if _, ok := r.parsers[key]; ok {
		panic("duplicate parser format: " + key)
	}
	r.parsers[key] = p
}

// Get returns the parser for format, or nil.
func (r *Registry) Get(format string) Parser {
	return r.parsers[strings.ToLower(format)]
}

// Formats format names accepted by DefaultRegistry.
const (
	FormatGeneric      = "generic"
	FormatGenericComma = "generic-comma"
	FormatXLSX         = "xlsx"
)

// DefaultRegistry returns a registry with all built-in parsers. Skipped
// rows are reported to log.
func DefaultRegistry(log zerolog.Logger) *Registry {
	r := NewRegistry()
	r.Register(&CSVParser{Name: FormatGeneric, Comma: ';', Log: log})
	r.Register(&CSVParser{Name: FormatGenericComma, Comma: ',', Log: log})
	r.Register(&XLSXParser{Log: log})
	return r
}

// FormatForPath guesses the format from a file extension.
func FormatForPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return FormatXLSX
	default:
		return FormatGeneric
	}
}

// ParseFile reads path with the parser for format. An empty format is
// guessed from the extension.
func (r *Registry) ParseFile(path, format string) ([]model.Balance, error) {
	if format == "" {
		format = FormatForPath(path)
	}
	p := r.Get(format)
	if p == nil {
		return nil, fmt.Errorf("unknown trial balance format %q", format)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening trial balance: %w", err)
	}
	defer f.Close()

	balances, err := p.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", filepath.Base(path), err)
	}
	return balances, nil
}
