// Package overrides stores per-account line assignments that take
// precedence over the interval mapping.
package overrides

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/cleared-dev/regnskap/internal/amount"
	"github.com/cleared-dev/regnskap/internal/schema"
)

// Override forces Account onto Line.
type Override struct {
	Account int
	Line    int
	Updated time.Time
}

// Header is the CSV header for the overrides file.
const Header = "konto;regnr;updated"

const (
	numFields  = 3
	colAccount = 0
	colLine    = 1
	colUpdated = 2
)

// MarshalOverride converts an Override to a CSV row.
func MarshalOverride(o Override) []string {
	row := make([]string, numFields)
	row[colAccount] = fmt.Sprint(o.Account)
	row[colLine] = fmt.Sprint(o.Line)
	if !o.Updated.IsZero() {
		row[colUpdated] = o.Updated.UTC().Format(time.RFC3339)
	}
	return row
}

// UnmarshalOverride converts a CSV row to an Override.
func UnmarshalOverride(record []string) (Override, error) {
	if len(record) < 2 {
		return Override{}, fmt.Errorf("expected at least 2 fields, got %d", len(record))
	}

	acct, err := amount.ParseAccount(record[colAccount])
	if err != nil {
		return Override{}, fmt.Errorf("parsing konto: %w", err)
	}
	line, err := amount.ParseAccount(record[colLine])
	if err != nil {
		return Override{}, fmt.Errorf("parsing regnr: %w", err)
	}

	o := Override{Account: acct, Line: line}
	if len(record) > colUpdated && strings.TrimSpace(record[colUpdated]) != "" {
		ts, err := time.Parse(time.RFC3339, strings.TrimSpace(record[colUpdated]))
		if err != nil {
			return Override{}, fmt.Errorf("parsing updated %q: %w", record[colUpdated], err)
		}
		o.Updated = ts
	}
	return o, nil
}

// Set is the collection of overrides for one engagement.
type Set struct {
	entries map[int]Override
}

// NewSet creates a set from overrides. Later entries for the same account
// replace earlier ones.
func NewSet(list []Override) *Set {
	s := &Set{entries: make(map[int]Override, len(list))}
	for _, o := range list {
		s.entries[o.Account] = o
	}
	return s
}

// Load reads the overrides file at path. A missing file is an empty set.
func Load(path string) (*Set, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return NewSet(nil), nil
		}
		return nil, fmt.Errorf("opening overrides: %w", err)
	}
	defer f.Close()

	list, err := Read(f)
	if err != nil {
		return nil, err
	}
	return NewSet(list), nil
}

// Read parses overrides CSV from r.
func Read(r io.Reader) ([]Override, error) {
	records, err := schema.NewReader(r, schema.Comma).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading overrides CSV: %w", err)
	}
	if len(records) <= 1 {
		return nil, nil
	}

	var list []Override
	for i, rec := range records[1:] {
		if schema.IsBlank(rec) {
			continue
		}
		o, err := UnmarshalOverride(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		list = append(list, o)
	}
	return list, nil
}

// Write writes the header and every override to w.
func Write(w io.Writer, list []Override) error {
	cw := schema.NewWriter(w, schema.Comma)
	if err := cw.Write(strings.Split(Header, ";")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i, o := range list {
		if err := cw.Write(MarshalOverride(o)); err != nil {
			return fmt.Errorf("writing override %d: %w", i, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// Save writes the set to path through a temporary file.
func (s *Set) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating overrides dir: %w", err)
	}

	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("creating overrides file: %w", err)
	}
	if err := Write(f, s.All()); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("closing overrides file: %w", err)
	}
	return os.Rename(tmp, path)
}

// Set assigns account to line.
func (s *Set) Set(account, line int, at time.Time) {
	s.entries[account] = Override{Account: account, Line: line, Updated: at}
}

// Remove deletes the override for account and reports whether one existed.
func (s *Set) Remove(account int) bool {
	if _, ok := s.entries[account]; !ok {
		return false
	}
	delete(s.entries, account)
	return true
}

// Get returns the override for account.
func (s *Set) Get(account int) (Override, bool) {
	o, ok := s.entries[account]
	return o, ok
}

// Len returns the number of overrides.
func (s *Set) Len() int { return len(s.entries) }

// All returns every override sorted by account.
func (s *Set) All() []Override {
	list := make([]Override, 0, len(s.entries))
	for _, o := range s.entries {
		list = append(list, o)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Account < list[j].Account })
	return list
}

// Map returns account -> line for the statement builder.
func (s *Set) Map() map[int]int {
	m := make(map[int]int, len(s.entries))
	for acct, o := range s.entries {
		m[acct] = o.Line
	}
	return m
}
