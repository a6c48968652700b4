// Package schema maps the human-language column headers found in
// spreadsheet exports onto canonical column keys. Every source format
// declares its synonyms; nothing downstream branches on raw header names.
package schema

import (
	"encoding/csv"
	"io"
	"strings"
)

// Comma is the field separator for the tool's own CSV files. Norwegian
// spreadsheet exports use semicolons since the comma is the decimal mark.
const Comma = ';'

var nameReplacer = strings.NewReplacer("\u00a0", " ", "\u202f", " ", "\ufeff", "", "_", " ", "-", " ", "\t", " ", ".", "")

// NormalizeName lower-cases a header, drops dots and folds separators to
// single spaces.
func NormalizeName(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(nameReplacer.Replace(s))), " ")
}

// Synonyms lists accepted header spellings per canonical key, in priority order.
type Synonyms map[string][]string

// Columns is the resolved canonical key -> column index mapping.
type Columns map[string]int

// Match resolves header against synonyms. Exact matches are tried first for
// every key, then "starts with" matches for keys still missing. A header
// column is claimed by at most one key.
func Match(header []string, synonyms Synonyms, order []string) Columns {
	norm := make([]string, len(header))
	for i, h := range header {
		norm[i] = NormalizeName(h)
	}

	cols := make(Columns)
	claimed := make(map[int]bool)

	for _, key := range order {
		for _, alt := range synonyms[key] {
			if i := indexOf(norm, NormalizeName(alt), claimed, false); i >= 0 {
				cols[key] = i
				claimed[i] = true
				break
			}
		}
	}
	for _, key := range order {
		if _, ok := cols[key]; ok {
			continue
		}
		for _, alt := range synonyms[key] {
			if i := indexOf(norm, NormalizeName(alt), claimed, true); i >= 0 {
				cols[key] = i
				claimed[i] = true
				break
			}
		}
	}
	return cols
}

func indexOf(norm []string, want string, claimed map[int]bool, prefix bool) int {
	for i, n := range norm {
		if claimed[i] {
			continue
		}
		if n == want || (prefix && strings.HasPrefix(n, want+" ")) {
			return i
		}
	}
	return -1
}

// Has reports whether key was resolved.
func (c Columns) Has(key string) bool {
	_, ok := c[key]
	return ok
}

// Get returns the trimmed field for key, or "" when the key is missing or
// the record is short.
func (c Columns) Get(record []string, key string) string {
	i, ok := c[key]
	if !ok || i >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[i])
}

// NewReader returns a csv.Reader tolerant of ragged rows and stray quotes.
func NewReader(r io.Reader, comma rune) *csv.Reader {
	cr := csv.NewReader(r)
	cr.Comma = comma
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.TrimLeadingSpace = true
	return cr
}

// NewWriter returns a csv.Writer using comma as separator.
func NewWriter(w io.Writer, comma rune) *csv.Writer {
	cw := csv.NewWriter(w)
	cw.Comma = comma
	return cw
}

// IsBlank reports whether every field of record is empty.
func IsBlank(record []string) bool {
	for _, f := range record {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}
