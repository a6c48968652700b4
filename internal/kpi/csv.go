package kpi

import (
	"fmt"
	"io"
	"os"

	"github.com/cleared-dev/regnskap/internal/model"
	"github.com/cleared-dev/regnskap/internal/schema"
)

const (
	keyName   = "navn"
	keyExpr   = "uttrykk"
	keyField  = "felt"
	keyFormat = "format"
)

var kpiSynonyms = schema.Synonyms{
	keyName:   {"navn", "name", "kpi", "nøkkeltall"},
	keyExpr:   {"uttrykk", "expr", "expression", "formel", "formula"},
	keyField:  {"felt", "field", "kolonne", "column"},
	keyFormat: {"format", "fmt"},
}

var kpiOrder = []string{keyName, keyExpr, keyField, keyFormat}

// ReadDefinitions reads a KPI definitions CSV (navn;uttrykk;felt;format).
// A blank or missing felt means UB.
func ReadDefinitions(r io.Reader) ([]model.KpiDefinition, error) {
	records, err := schema.NewReader(r, schema.Comma).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading KPI CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	cols := schema.Match(records[0], kpiSynonyms, kpiOrder)
	for _, key := range []string{keyName, keyExpr} {
		if !cols.Has(key) {
			return nil, fmt.Errorf("KPI CSV is missing column %q", key)
		}
	}

	var defs []model.KpiDefinition
	for i, rec := range records[1:] {
		if schema.IsBlank(rec) {
			continue
		}
		def := model.KpiDefinition{
			Name:       cols.Get(rec, keyName),
			Expression: cols.Get(rec, keyExpr),
			Field:      model.FieldClosing,
			Format:     cols.Get(rec, keyFormat),
		}
		if v := cols.Get(rec, keyField); v != "" {
			def.Field = model.ParseField(v)
			if def.Field == model.FieldUnknown {
				return nil, fmt.Errorf("row %d: unknown felt %q", i+2, v)
			}
		}
		if def.Name == "" || def.Expression == "" {
			return nil, fmt.Errorf("row %d: navn and uttrykk are required", i+2)
		}
		defs = append(defs, def)
	}
	return defs, nil
}

// WriteDefinitions writes KPI definitions as navn;uttrykk;felt;format.
func WriteDefinitions(w io.Writer, defs []model.KpiDefinition) error {
	cw := schema.NewWriter(w, schema.Comma)
	defer cw.Flush()

	if err := cw.Write([]string{"navn", "uttrykk", "felt", "format"}); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i, d := range defs {
		if err := cw.Write([]string{d.Name, d.Expression, string(d.Field), d.Format}); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	return cw.Error()
}

// Load reads the KPI definitions file at path.
func Load(path string) ([]model.KpiDefinition, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening KPI definitions: %w", err)
	}
	defer f.Close()
	return ReadDefinitions(f)
}

// Save writes defs to path.
func Save(path string, defs []model.KpiDefinition) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating KPI definitions file: %w", err)
	}
	if err := WriteDefinitions(f, defs); err != nil {
		f.Close()
		return fmt.Errorf("writing KPI definitions: %w", err)
	}
	return f.Close()
}
