package mapping

import (
	"sort"

	"github.com/cleared-dev/regnskap/internal/model"
)

// Overlap describes two interval rules that both claim some accounts.
// First is the rule that wins.
type Overlap struct {
	First  model.IntervalRule
	Second model.IntervalRule
}

// IntervalMapper resolves account numbers to line numbers through a sorted
// set of [Lo, Hi] ranges.
type IntervalMapper struct {
	rules    []model.IntervalRule
	los      []int
	overlaps []Overlap
}

// NewIntervalMapper copies rules and sorts them by Lo. Rules sharing a Lo
// keep their input order, which decides ties.
func NewIntervalMapper(rules []model.IntervalRule) *IntervalMapper {
	sorted := make([]model.IntervalRule, len(rules))
	copy(sorted, rules)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Lo < sorted[j].Lo })

	los := make([]int, len(sorted))
	for i, r := range sorted {
		los[i] = r.Lo
	}

	m := &IntervalMapper{rules: sorted, los: los}
	m.overlaps = findOverlaps(sorted)
	return m
}

// Rules returns the sorted rules.
func (m *IntervalMapper) Rules() []model.IntervalRule {
	return m.rules
}

// Overlaps returns every pair of rules whose ranges intersect.
func (m *IntervalMapper) Overlaps() []Overlap {
	return m.overlaps
}

// Lookup returns the line for account. ok is false when no rule covers it.
func (m *IntervalMapper) Lookup(account int) (line int, ok bool) {
	// Index of the last rule with Lo <= account.
	idx := sort.SearchInts(m.los, account+1) - 1
	if idx < 0 {
		return 0, false
	}

	if len(m.overlaps) == 0 {
		r := m.rules[idx]
		if r.Contains(account) {
			return r.Line, true
		}
		return 0, false
	}

	// Malformed input: the first covering rule in sorted order wins.
	for _, r := range m.rules[:idx+1] {
		if r.Contains(account) {
			return r.Line, true
		}
	}
	return 0, false
}

// Resolve maps every account through rules. Accounts that no rule covers are
// absent from the result. An empty rule set leaves everything unmapped.
func Resolve(accounts []int, rules []model.IntervalRule) map[int]int {
	m := NewIntervalMapper(rules)
	out := make(map[int]int, len(accounts))
	for _, a := range accounts {
		if line, ok := m.Lookup(a); ok {
			out[a] = line
		}
	}
	return out
}

func findOverlaps(sorted []model.IntervalRule) []Overlap {
	var out []Overlap
	for i := range sorted {
		for j := i + 1; j < len(sorted); j++ {
			if sorted[j].Lo > sorted[i].Hi {
				break
			}
			out = append(out, Overlap{First: sorted[i], Second: sorted[j]})
		}
	}
	return out
}
