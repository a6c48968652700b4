package statement

import (
	"fmt"
	"sort"

	"github.com/cleared-dev/regnskap/internal/model"
)

// Chain holds resolved values before formulas are applied.
type Chain struct {
	DetailLevel int
	// Values has an entry for every defined line and for every parent
	// number referenced by a detail line, defined or not.
	Values map[int]model.Amounts
	// Details holds the signed value of each detail line.
	Details  map[int]model.Amounts
	Warnings []Warning
}

// DetectDetailLevel returns the level that marks detail lines: 0 when some
// line has level 0 and none has level 1, otherwise 1.
func DetectDetailLevel(defs []model.Line) int {
	hasZero, hasOne := levelsPresent(defs)
	if hasZero && !hasOne {
		return 0
	}
	return 1
}

func levelsPresent(defs []model.Line) (hasZero, hasOne bool) {
	for _, d := range defs {
		switch d.Level {
		case 0:
			hasZero = true
		case 1:
			hasOne = true
		}
	}
	return hasZero, hasOne
}

// detailLevelWarning flags tables where the 0/1 convention is unclear.
func detailLevelWarning(defs []model.Line, level int) (Warning, bool) {
	hasZero, hasOne := levelsPresent(defs)
	switch {
	case hasZero && hasOne:
		return Warning{
			Kind:    WarnDetailLevel,
			Message: "line definitions use both level 0 and level 1; treating level 1 as detail",
			Lines:   linesAtLevel(defs, 0),
		}, true
	case !hasZero && !hasOne && len(defs) > 0:
		return Warning{
			Kind:    WarnDetailLevel,
			Message: fmt.Sprintf("no line has level 0 or 1; only lines without a level are detail lines (level %d)", level),
		}, true
	}
	return Warning{}, false
}

func linesAtLevel(defs []model.Line, level int) []int {
	var out []int
	for _, d := range defs {
		if d.Level == level {
			out = append(out, d.Number)
		}
	}
	return out
}

// IsDetail reports whether l is a detail line under detailLevel. A line
// without a level is treated as being at detailLevel.
func IsDetail(l model.Line, detailLevel int) bool {
	level := l.Level
	if level == model.NoLevel {
		level = detailLevel
	}
	return !l.IsSubtotal && l.IncludeInSum && level == detailLevel
}

// ResolveChain computes every line's value from the per-line detail sums.
// Detail lines take their own value, with the sign applied for result
// lines. Each parent pointer column then groups the signed detail values by
// parent; a detail line adds to a given parent once even if it names it in
// more than one column. Lines that are neither detail nor parent are zero.
func ResolveChain(detail map[int]model.Amounts, defs []model.Line) (Chain, error) {
	if err := checkParentCycles(defs); err != nil {
		return Chain{}, err
	}

	level := DetectDetailLevel(defs)
	ch := Chain{
		DetailLevel: level,
		Values:      make(map[int]model.Amounts, len(defs)),
		Details:     make(map[int]model.Amounts),
	}

	known := make(map[int]bool, len(defs))
	for _, d := range defs {
		known[d.Number] = true
		ch.Values[d.Number] = model.Amounts{}
	}

	sums := make(map[int]model.Amounts)
	orphans := make(map[int]bool)
	for _, d := range defs {
		if !IsDetail(d, level) {
			continue
		}
		v := detail[d.Number]
		if d.Type == model.StatementResult {
			v = v.Scale(d.Sign)
		}
		ch.Details[d.Number] = v
		ch.Values[d.Number] = v

		seen := make(map[int]bool, 4)
		for _, p := range d.Parents() {
			if p == 0 || seen[p] {
				continue
			}
			seen[p] = true
			sums[p] = sums[p].Add(v)
			if !known[p] {
				orphans[p] = true
			}
		}
	}

	for p, v := range sums {
		ch.Values[p] = v
	}

	if len(orphans) > 0 {
		ch.Warnings = append(ch.Warnings, Warning{
			Kind:    WarnUnknownReference,
			Message: fmt.Sprintf("%d parent line(s) referenced but not defined", len(orphans)),
			Lines:   sortedKeys(orphans),
		})
	}
	return ch, nil
}

func checkParentCycles(defs []model.Line) error {
	edges := make(map[int][]int, len(defs))
	for _, d := range defs {
		for _, p := range d.Parents() {
			if p != 0 {
				edges[d.Number] = append(edges[d.Number], p)
			}
		}
	}
	if cycle := findCycle(edges); cycle != nil {
		return &ChainCycleError{Kind: CycleParent, Lines: cycle}
	}
	return nil
}

// findCycle returns one cycle in the directed graph, rotated to start at its
// lowest node, or nil. Nodes are visited in ascending order so the result is
// stable.
func findCycle(edges map[int][]int) []int {
	const (
		white = iota
		grey
		black
	)
	color := make(map[int]int, len(edges))
	var stack []int

	var visit func(n int) []int
	visit = func(n int) []int {
		color[n] = grey
		stack = append(stack, n)
		for _, m := range edges[n] {
			switch color[m] {
			case grey:
				for i := len(stack) - 1; i >= 0; i-- {
					if stack[i] == m {
						return rotateToMin(append([]int(nil), stack[i:]...))
					}
				}
			case white:
				if c := visit(m); c != nil {
					return c
				}
			}
		}
		stack = stack[:len(stack)-1]
		color[n] = black
		return nil
	}

	nodes := make([]int, 0, len(edges))
	for n := range edges {
		nodes = append(nodes, n)
	}
	sort.Ints(nodes)
	for _, n := range nodes {
		if color[n] == white {
			if c := visit(n); c != nil {
				return c
			}
		}
	}
	return nil
}

func rotateToMin(cycle []int) []int {
	lo := 0
	for i, n := range cycle {
		if n < cycle[lo] {
			lo = i
		}
	}
	out := make([]int, 0, len(cycle))
	out = append(out, cycle[lo:]...)
	return append(out, cycle[:lo]...)
}

func sortedKeys(m map[int]bool) []int {
	out := make([]int, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Ints(out)
	return out
}
