package mapping

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/cleared-dev/regnskap/internal/amount"
	"github.com/cleared-dev/regnskap/internal/model"
	"github.com/cleared-dev/regnskap/internal/schema"
)

const (
	keyLo   = "lo"
	keyHi   = "hi"
	keyLine = "regnr"
)

var intervalSynonyms = schema.Synonyms{
	keyLo:   {"fra", "fom", "from", "lo", "lower", "start", "startkonto", "fra konto", "konto fra"},
	keyHi:   {"til", "tom", "to", "hi", "upper", "slutt", "end", "sluttkonto", "til konto", "konto til"},
	keyLine: {"regnr", "reg nr", "regn nr", "regnnr", "sumnr", "linjenr", "regnskapsnr", "nr", "nummer"},
}

var intervalOrder = []string{keyLo, keyHi, keyLine}

// ReadIntervals reads an interval mapping CSV (fra;til;regnr).
// Rows without a line number are skipped, a blank "til" means a single
// account, and rows with til < fra are dropped.
func ReadIntervals(r io.Reader) ([]model.IntervalRule, error) {
	records, err := schema.NewReader(r, schema.Comma).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading intervals CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	cols := schema.Match(records[0], intervalSynonyms, intervalOrder)
	for _, key := range []string{keyLo, keyLine} {
		if !cols.Has(key) {
			return nil, fmt.Errorf("intervals CSV is missing column %q", key)
		}
	}

	var rules []model.IntervalRule
	for i, rec := range records[1:] {
		if schema.IsBlank(rec) {
			continue
		}
		rule, ok, err := unmarshalInterval(cols, rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		if ok {
			rules = append(rules, rule)
		}
	}
	return rules, nil
}

func unmarshalInterval(cols schema.Columns, rec []string) (model.IntervalRule, bool, error) {
	line, ok := amount.ParseNumber(cols.Get(rec, keyLine))
	if !ok {
		return model.IntervalRule{}, false, nil
	}

	var lo int
	if v := cols.Get(rec, keyLo); v != "" {
		n, err := amount.ParseAccount(v)
		if err != nil {
			return model.IntervalRule{}, false, fmt.Errorf("parsing fra: %w", err)
		}
		lo = n
	}

	hi := lo
	if v := cols.Get(rec, keyHi); v != "" {
		n, err := amount.ParseAccount(v)
		if err != nil {
			return model.IntervalRule{}, false, fmt.Errorf("parsing til: %w", err)
		}
		hi = n
	}

	if hi < lo {
		return model.IntervalRule{}, false, nil
	}
	return model.IntervalRule{Lo: lo, Hi: hi, Line: line}, true, nil
}

// WriteIntervals writes rules as fra;til;regnr.
func WriteIntervals(w io.Writer, rules []model.IntervalRule) error {
	cw := schema.NewWriter(w, schema.Comma)
	defer cw.Flush()

	if err := cw.Write([]string{"fra", "til", "regnr"}); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i, r := range rules {
		row := []string{strconv.Itoa(r.Lo), strconv.Itoa(r.Hi), strconv.Itoa(r.Line)}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	return cw.Error()
}

// Load reads the interval mapping file at path.
func Load(path string) ([]model.IntervalRule, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening interval mapping: %w", err)
	}
	defer f.Close()
	return ReadIntervals(f)
}

// Save writes rules to path.
func Save(path string, rules []model.IntervalRule) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating interval mapping file: %w", err)
	}
	if err := WriteIntervals(f, rules); err != nil {
		f.Close()
		return fmt.Errorf("writing interval mapping: %w", err)
	}
	return f.Close()
}
