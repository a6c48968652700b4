package importer

import (
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"github.com/cleared-dev/regnskap/internal/model"
	"github.com/cleared-dev/regnskap/internal/schema"
)

// CSVParser reads trial balance CSV exports with a header row. Column
// names are matched against known Norwegian and English spellings.
type CSVParser struct {
	Name  string
	Comma rune
	Log   zerolog.Logger
}

// Format returns the parser name.
func (p *CSVParser) Format() string { return p.Name }

// Parse reads a trial balance CSV and returns Balances.
func (p *CSVParser) Parse(r io.Reader) ([]model.Balance, error) {
	comma := p.Comma
	if comma == 0 {
		comma = schema.Comma
	}

	records, err := schema.NewReader(r, comma).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading trial balance CSV: %w", err)
	}
	return fromRecords(records, p.Log)
}
