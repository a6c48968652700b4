// Package statement builds a financial statement (regnskapsoppstilling)
// from a trial balance: accounts are mapped to lines, summed, rolled up
// through the parent chain and finally overridden by line formulas.
package statement

import (
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/cleared-dev/regnskap/internal/kpi"
	"github.com/cleared-dev/regnskap/internal/mapping"
	"github.com/cleared-dev/regnskap/internal/model"
)

// mismatchTolerance is how far closing may drift from opening + movement
// before a balance-mismatch warning is raised.
var mismatchTolerance = decimal.New(1, -2)

// Options controls a build.
type Options struct {
	// Strict fails the build when any account is unmapped.
	Strict bool
	// ApplyResultSign applies each result detail line's sign before summing.
	ApplyResultSign bool
}

// DefaultOptions returns lenient options with result signs applied.
func DefaultOptions() Options {
	return Options{ApplyResultSign: true}
}

// Input is everything a build reads. None of it is modified.
type Input struct {
	Balances  []model.Balance
	Lines     []model.Line
	Intervals []model.IntervalRule
	// Overrides forces accounts onto lines, ahead of any other mapping.
	Overrides map[int]int
	KPIs      []model.KpiDefinition
}

// LineDetail is a detail line's signed value, the base every sum is built on.
type LineDetail struct {
	Number  int
	Name    string
	Type    model.StatementType
	Sign    int
	Amounts model.Amounts
}

// Result is the outcome of one build.
type Result struct {
	BuildID     string
	Lines       []model.StatementLine // ascending line number
	Accounts    []AccountDetail
	LineDetails []LineDetail
	Unmapped    []model.Balance
	KPIs        []model.KpiResult
	Diagnostics Diagnostics
}

// UnmappedAccounts returns the distinct unmapped account numbers, sorted.
func (r *Result) UnmappedAccounts() []int {
	return distinctAccounts(r.Unmapped)
}

// Line returns the statement line with the given number.
func (r *Result) Line(number int) (model.StatementLine, bool) {
	i := sort.Search(len(r.Lines), func(i int) bool { return r.Lines[i].Number >= number })
	if i < len(r.Lines) && r.Lines[i].Number == number {
		return r.Lines[i], true
	}
	return model.StatementLine{}, false
}

// Builder runs statement builds. It holds no per-build state and may be
// used from several goroutines.
type Builder struct {
	log  zerolog.Logger
	opts Options
}

// NewBuilder creates a Builder.
func NewBuilder(log zerolog.Logger, opts Options) *Builder {
	return &Builder{log: log, opts: opts}
}

// Build maps, aggregates, chains and applies formulas, then evaluates KPIs.
// Soft problems end up in Result.Diagnostics. Errors are returned for
// reference cycles and, in strict mode, for unmapped accounts.
func (b *Builder) Build(in Input) (*Result, error) {
	res := &Result{BuildID: uuid.NewString()}
	log := b.log.With().Str("build_id", res.BuildID).Logger()
	diag := &res.Diagnostics

	defs := in.Lines
	if !b.opts.ApplyResultSign {
		defs = withoutSigns(defs)
	}

	lineFor := b.resolveMapping(in, diag)
	agg := Aggregate(in.Balances, lineFor)
	res.Accounts = agg.Accounts
	res.Unmapped = agg.Unmapped

	sourceAccounts := distinctAccounts(in.Balances)
	diag.SourceAccounts = len(sourceAccounts)
	diag.MappedAccounts = len(sourceAccounts) - len(agg.UnmappedAccounts())

	if unmapped := agg.UnmappedAccounts(); len(unmapped) > 0 {
		diag.add(Warning{
			Kind:     WarnUnmappedAccounts,
			Message:  fmt.Sprintf("%d of %d account(s) are not mapped to a line and are left out of every sum", len(unmapped), diag.SourceAccounts),
			Accounts: unmapped,
		})
		if b.opts.Strict {
			diag.log(log)
			return nil, &MappingIncompleteError{Accounts: unmapped}
		}
	}
	diag.add(checkMappedLines(agg, defs)...)
	diag.add(checkBalances(in.Balances)...)

	ch, err := ResolveChain(agg.ByLine, defs)
	if err != nil {
		return nil, fmt.Errorf("resolving chain: %w", err)
	}
	diag.DetailLevel = ch.DetailLevel
	if w, ok := detailLevelWarning(defs, ch.DetailLevel); ok {
		diag.add(w)
	}
	diag.add(ch.Warnings...)
	diag.add(checkDetailTargets(agg, defs, ch.DetailLevel)...)

	values, err := ApplyFormulas(ch.Values, defs)
	if err != nil {
		return nil, fmt.Errorf("applying formulas: %w", err)
	}
	diag.add(LintFormulas(defs)...)

	res.Lines = statementLines(in.Lines, values)
	res.LineDetails = lineDetails(defs, ch)
	res.KPIs = kpi.Evaluate(res.Lines, in.KPIs)

	log.Info().
		Int("detail_level", diag.DetailLevel).
		Int("source_accounts", diag.SourceAccounts).
		Int("mapped_accounts", diag.MappedAccounts).
		Int("lines", len(res.Lines)).
		Int("warnings", len(diag.Warnings)).
		Msg("statement built")
	diag.log(log)
	return res, nil
}

// resolveMapping decides each account's line. A direct line number on the
// balances wins over intervals when any balance carries one; overrides win
// over both.
func (b *Builder) resolveMapping(in Input, diag *Diagnostics) map[int]int {
	lineFor := make(map[int]int, len(in.Balances))

	if hasDirectLines(in.Balances) {
		for _, bal := range in.Balances {
			if _, ok := lineFor[bal.Account]; !ok && bal.Line != 0 {
				lineFor[bal.Account] = bal.Line
			}
		}
	} else {
		if len(in.Intervals) == 0 {
			diag.add(Warning{
				Kind:    WarnEmptyMapping,
				Message: "no interval mapping and no direct line numbers; every account is unmapped",
			})
		}
		m := mapping.NewIntervalMapper(in.Intervals)
		if overlaps := m.Overlaps(); len(overlaps) > 0 {
			diag.add(overlapWarning(overlaps))
		}
		for _, bal := range in.Balances {
			if line, ok := m.Lookup(bal.Account); ok {
				lineFor[bal.Account] = line
			}
		}
	}

	for _, bal := range in.Balances {
		if line, ok := in.Overrides[bal.Account]; ok && line != 0 {
			lineFor[bal.Account] = line
		}
	}
	return lineFor
}

func hasDirectLines(balances []model.Balance) bool {
	for _, b := range balances {
		if b.Line != 0 {
			return true
		}
	}
	return false
}

func overlapWarning(overlaps []mapping.Overlap) Warning {
	seen := make(map[int]bool)
	for _, o := range overlaps {
		seen[o.First.Line] = true
		seen[o.Second.Line] = true
	}
	first := overlaps[0]
	return Warning{
		Kind: WarnIntervalOverlap,
		Message: fmt.Sprintf("%d overlapping interval pair(s), e.g. %d-%d and %d-%d; the rule with the lower start wins",
			len(overlaps), first.First.Lo, first.First.Hi, first.Second.Lo, first.Second.Hi),
		Lines: sortedKeys(seen),
	}
}

// checkMappedLines flags accounts mapped to a line that is not defined.
// Their amounts never reach the statement.
func checkMappedLines(agg Aggregation, defs []model.Line) []Warning {
	known := make(map[int]bool, len(defs))
	for _, d := range defs {
		known[d.Number] = true
	}
	lines := make(map[int]bool)
	accounts := make(map[int]bool)
	for _, a := range agg.Accounts {
		if !known[a.Line] {
			lines[a.Line] = true
			accounts[a.Account] = true
		}
	}
	if len(lines) == 0 {
		return nil
	}
	return []Warning{{
		Kind:     WarnUnknownReference,
		Message:  fmt.Sprintf("%d account(s) mapped to undefined line(s)", len(accounts)),
		Lines:    sortedKeys(lines),
		Accounts: sortedKeys(accounts),
	}}
}

// checkDetailTargets flags accounts mapped to a defined line that is not a
// detail line (a subtotal, a line left out of sums or a line above the
// detail level). Only detail lines feed the chain, so these amounts reach
// no total.
func checkDetailTargets(agg Aggregation, defs []model.Line, detailLevel int) []Warning {
	byNumber := make(map[int]model.Line, len(defs))
	for _, d := range defs {
		if _, ok := byNumber[d.Number]; !ok {
			byNumber[d.Number] = d
		}
	}
	lines := make(map[int]bool)
	accounts := make(map[int]bool)
	for _, a := range agg.Accounts {
		d, ok := byNumber[a.Line]
		if !ok || IsDetail(d, detailLevel) {
			continue
		}
		lines[a.Line] = true
		accounts[a.Account] = true
	}
	if len(lines) == 0 {
		return nil
	}
	return []Warning{{
		Kind:     WarnMappedToNonDetail,
		Message:  fmt.Sprintf("%d account(s) mapped to line(s) that are not detail lines; their amounts reach no total", len(accounts)),
		Lines:    sortedKeys(lines),
		Accounts: sortedKeys(accounts),
	}}
}

func checkBalances(balances []model.Balance) []Warning {
	bad := make(map[int]bool)
	for _, b := range balances {
		if b.BalanceMismatch(mismatchTolerance) {
			bad[b.Account] = true
		}
	}
	if len(bad) == 0 {
		return nil
	}
	return []Warning{{
		Kind:     WarnBalanceMismatch,
		Message:  fmt.Sprintf("%d account(s) where UB differs from IB + Endring", len(bad)),
		Accounts: sortedKeys(bad),
	}}
}

func withoutSigns(defs []model.Line) []model.Line {
	out := make([]model.Line, len(defs))
	copy(out, defs)
	for i := range out {
		out[i].Sign = 1
	}
	return out
}

// IndentLevel converts a line level to display indentation.
func IndentLevel(level int) int {
	if level == model.NoLevel {
		return 0
	}
	return max(0, (level-1)*2)
}

func statementLines(defs []model.Line, values map[int]model.Amounts) []model.StatementLine {
	out := make([]model.StatementLine, 0, len(defs))
	for _, d := range defs {
		out = append(out, model.StatementLine{
			Number:      d.Number,
			Name:        d.Name,
			Type:        d.Type,
			Level:       d.Level,
			IsSubtotal:  d.IsSubtotal,
			Amounts:     values[d.Number],
			IndentLevel: IndentLevel(d.Level),
			Formula:     d.Formula,
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Number < out[j].Number })
	return out
}

func lineDetails(defs []model.Line, ch Chain) []LineDetail {
	var out []LineDetail
	for _, d := range defs {
		v, ok := ch.Details[d.Number]
		if !ok {
			continue
		}
		sign := 1
		if d.Type == model.StatementResult && d.Sign < 0 {
			sign = -1
		}
		out = append(out, LineDetail{Number: d.Number, Name: d.Name, Type: d.Type, Sign: sign, Amounts: v})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Number < out[j].Number })
	return out
}
