package statement

import (
	"fmt"
	"sort"
	"strings"

	"github.com/cleared-dev/regnskap/internal/amount"
	"github.com/cleared-dev/regnskap/internal/model"
)

// Term is one signed line reference in a formula.
type Term struct {
	Sign int
	Line int
}

// ParseFormula reads "=10+20-30". The leading "=" is optional, terms are
// split on "+" and "-", and each term's first run of digits is its line.
// Terms without digits are skipped.
func ParseFormula(expr string) []Term {
	s := strings.TrimSpace(expr)
	s = strings.TrimPrefix(s, "=")

	var terms []Term
	sign := 1
	start := 0
	flush := func(end int) {
		if n, ok := amount.ParseNumber(s[start:end]); ok {
			terms = append(terms, Term{Sign: sign, Line: n})
		}
	}
	for i := 0; i < len(s); i++ {
		if s[i] == '+' || s[i] == '-' {
			flush(i)
			sign = 1
			if s[i] == '-' {
				sign = -1
			}
			start = i + 1
		}
	}
	flush(len(s))
	return terms
}

// evaluateTerms sums the signed values of terms. Missing lines are zero.
func evaluateTerms(terms []Term, values map[int]model.Amounts) model.Amounts {
	var sum model.Amounts
	for _, t := range terms {
		sum = sum.Add(values[t.Line].Scale(t.Sign))
	}
	return sum
}

// formulaLines returns the lines carrying a formula, ascending by number.
func formulaLines(defs []model.Line) []model.Line {
	var out []model.Line
	for _, d := range defs {
		if d.HasFormula() {
			out = append(out, d)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Number < out[j].Number })
	return out
}

// ApplyFormulas evaluates formula lines in ascending line order and returns
// a new map where each formula result replaces the line's chain value.
// A formula sees the final value of lower-numbered formula lines and the
// chain value of higher-numbered ones. values is not modified.
func ApplyFormulas(values map[int]model.Amounts, defs []model.Line) (map[int]model.Amounts, error) {
	lines := formulaLines(defs)
	if err := checkFormulaCycles(lines); err != nil {
		return nil, err
	}

	out := make(map[int]model.Amounts, len(values))
	for k, v := range values {
		out[k] = v
	}
	for _, l := range lines {
		out[l.Number] = evaluateTerms(ParseFormula(l.Formula), out)
	}
	return out, nil
}

func checkFormulaCycles(lines []model.Line) error {
	isFormula := make(map[int]bool, len(lines))
	for _, l := range lines {
		isFormula[l.Number] = true
	}
	edges := make(map[int][]int, len(lines))
	for _, l := range lines {
		for _, t := range ParseFormula(l.Formula) {
			if isFormula[t.Line] {
				edges[l.Number] = append(edges[l.Number], t.Line)
			}
		}
	}
	if cycle := findCycle(edges); cycle != nil {
		return &ChainCycleError{Kind: CycleFormula, Lines: cycle}
	}
	return nil
}

// LintFormulas reports formulas that parse to nothing, reference undefined
// lines, or reference a higher-numbered formula line (which is evaluated
// later, so its chain value is used instead of its formula value).
func LintFormulas(defs []model.Line) []Warning {
	known := make(map[int]bool, len(defs))
	for _, d := range defs {
		known[d.Number] = true
	}
	lines := formulaLines(defs)
	isFormula := make(map[int]bool, len(lines))
	for _, l := range lines {
		isFormula[l.Number] = true
	}

	var empty, forward []int
	unknown := make(map[int]bool)
	for _, l := range lines {
		terms := ParseFormula(l.Formula)
		if len(terms) == 0 {
			empty = append(empty, l.Number)
			continue
		}
		fwd := false
		for _, t := range terms {
			if !known[t.Line] {
				unknown[t.Line] = true
			}
			if isFormula[t.Line] && t.Line > l.Number {
				fwd = true
			}
		}
		if fwd {
			forward = append(forward, l.Number)
		}
	}

	var ws []Warning
	if len(empty) > 0 {
		ws = append(ws, Warning{
			Kind:    WarnFormulaEmpty,
			Message: fmt.Sprintf("%d formula(s) contain no line references and evaluate to zero", len(empty)),
			Lines:   empty,
		})
	}
	if len(forward) > 0 {
		ws = append(ws, Warning{
			Kind:    WarnFormulaForwardRef,
			Message: fmt.Sprintf("%d formula(s) reference a later formula line and see its value before that formula", len(forward)),
			Lines:   forward,
		})
	}
	if len(unknown) > 0 {
		ws = append(ws, Warning{
			Kind:    WarnUnknownReference,
			Message: fmt.Sprintf("formulas reference %d undefined line(s), treated as zero", len(unknown)),
			Lines:   sortedKeys(unknown),
		})
	}
	return ws
}
