package lines

import (
	"fmt"
	"io"
	"strconv"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/cleared-dev/regnskap/internal/amount"
	"github.com/cleared-dev/regnskap/internal/model"
	"github.com/cleared-dev/regnskap/internal/schema"
)

const (
	keyNumber       = "nr"
	keyName         = "regnskapslinje"
	keyLevel        = "sumnivå"
	keySubtotal     = "sumpost"
	keyParentSub    = "delsumnr"
	keyParentSum    = "sumnr"
	keyParentSum2   = "sumnr2"
	keyParentGrand  = "sluttsumnr"
	keyType         = "regnskapstype"
	keySign         = "fortegn"
	keyFormula      = "formel"
	keyIncludeInSum = "med_i_sum"
)

var header = []string{
	keyNumber, keyName, keyLevel, keySubtotal, keyParentSub, keyParentSum, keyParentSum2,
	keyParentGrand, keyType, keySign, keyFormula, keyIncludeInSum,
}

var lineSynonyms = schema.Synonyms{
	keyNumber:       {"nr", "regnr", "reg nr", "regn nr", "linjenr", "nummer", "regnskapsnr", "regnskapsnummer"},
	keyName:         {"regnskapslinje", "linje", "navn", "tekst", "beskrivelse", "regnskapslinjenavn", "name"},
	keyLevel:        {"sumnivå", "sum nivå", "sumnivaa", "sum nivaa", "nivå", "nivaa", "level"},
	keySubtotal:     {"sumpost", "sum post", "subtotal", "sum"},
	keyParentSub:    {"delsumnr", "delsum", "delsum nr", "del sum nr", "delsumlinjenr"},
	keyParentSum:    {"sumnr", "sum nr", "sumlinje", "gruppe nr", "grupperingsnr"},
	keyParentSum2:   {"sumnr2", "sum nr2", "sum2", "nivå3 nr", "nivaa3 nr"},
	keyParentGrand:  {"sluttsumnr", "slutt sum nr", "sluttsum nr", "toppsumnr", "top sum nr"},
	keyType:         {"regnskapstype", "type", "art", "rt", "resultat/balanse", "kategori"},
	keySign:         {"fortegn", "sign", "signum"},
	keyFormula:      {"formel", "formula", "expr", "expression"},
	keyIncludeInSum: {"med i sum", "medisum", "inkluder", "include", "include in sum"},
}

// ReadLines reads a line definitions CSV. Only nr and regnskapslinje are
// required; absent columns take their defaults (no level, not a sum,
// included in sums, sign +1, type Other). An unreadable fortegn is logged
// and read as +1.
func ReadLines(r io.Reader, log zerolog.Logger) ([]model.Line, error) {
	records, err := schema.NewReader(r, schema.Comma).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading lines CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	cols := schema.Match(records[0], lineSynonyms, header)
	for _, key := range []string{keyNumber, keyName} {
		if !cols.Has(key) {
			return nil, fmt.Errorf("lines CSV is missing column %q", key)
		}
	}

	var defs []model.Line
	for i, rec := range records[1:] {
		if schema.IsBlank(rec) {
			continue
		}
		l, err := UnmarshalLine(cols, rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		if v := cols.Get(rec, keySign); v != "" {
			if _, ok := parseSign(v); !ok {
				log.Warn().Int("row", i+2).Int("line", l.Number).Str("fortegn", v).Msg("unreadable sign; using +1")
			}
		}
		defs = append(defs, l)
	}
	return defs, nil
}

// WriteLines writes line definitions with the canonical header.
func WriteLines(w io.Writer, defs []model.Line) error {
	cw := schema.NewWriter(w, schema.Comma)
	defer cw.Flush()

	if err := cw.Write(header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i, l := range defs {
		if err := cw.Write(MarshalLine(l)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	return cw.Error()
}

// MarshalLine converts a Line to a CSV row in header order.
func MarshalLine(l model.Line) []string {
	level := ""
	if l.Level != model.NoLevel {
		level = strconv.Itoa(l.Level)
	}
	sign := "1"
	if l.Sign < 0 {
		sign = "-1"
	}
	return []string{
		strconv.Itoa(l.Number),
		l.Name,
		level,
		yesNo(l.IsSubtotal),
		optional(l.ParentSub),
		optional(l.ParentSum),
		optional(l.ParentSum2),
		optional(l.ParentGrandSum),
		string(l.Type),
		sign,
		l.Formula,
		yesNo(l.IncludeInSum),
	}
}

// UnmarshalLine converts a CSV row to a Line using resolved columns.
func UnmarshalLine(cols schema.Columns, rec []string) (model.Line, error) {
	num, err := amount.ParseAccount(cols.Get(rec, keyNumber))
	if err != nil {
		return model.Line{}, fmt.Errorf("parsing nr: %w", err)
	}

	l := model.Line{
		Number:       num,
		Name:         cols.Get(rec, keyName),
		Type:         model.ParseStatementType(cols.Get(rec, keyType)),
		Level:        model.NoLevel,
		IncludeInSum: true,
		Sign:         1,
		Formula:      cols.Get(rec, keyFormula),
	}

	if v := cols.Get(rec, keyLevel); v != "" {
		if l.Level, err = amount.ParseAccount(v); err != nil {
			return model.Line{}, fmt.Errorf("parsing sumnivå: %w", err)
		}
	}
	if v, ok := amount.ParseBool(cols.Get(rec, keySubtotal)); ok {
		l.IsSubtotal = v
	}
	// Only an explicit "no" excludes a line.
	if v, ok := amount.ParseBool(cols.Get(rec, keyIncludeInSum)); ok && !v {
		l.IncludeInSum = false
	}
	if sign, ok := parseSign(cols.Get(rec, keySign)); ok {
		l.Sign = sign
	}

	l.ParentSub = parent(cols.Get(rec, keyParentSub))
	l.ParentSum = parent(cols.Get(rec, keyParentSum))
	l.ParentSum2 = parent(cols.Get(rec, keyParentSum2))
	l.ParentGrandSum = parent(cols.Get(rec, keyParentGrand))
	return l, nil
}

// parseSign reads fortegn: negative means -1, anything else +1. ok is false
// for blank or unreadable input.
func parseSign(s string) (sign int, ok bool) {
	if s == "" {
		return 1, false
	}
	d, err := amount.Parse(s)
	if err != nil {
		return 1, false
	}
	if d.LessThan(decimal.Zero) {
		return -1, true
	}
	return 1, true
}

// parent reads a parent pointer; anything without digits means none.
func parent(s string) int {
	n, _ := amount.ParseNumber(s)
	return n
}

func optional(n int) string {
	if n == 0 {
		return ""
	}
	return strconv.Itoa(n)
}

func yesNo(v bool) string {
	if v {
		return "ja"
	}
	return "nei"
}
