package mapping

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/regnskap/internal/model"
)

func TestLookup_Disjoint(t *testing.T) {
	m := NewIntervalMapper([]model.IntervalRule{
		{Lo: 3000, Hi: 3999, Line: 10},
		{Lo: 1000, Hi: 1999, Line: 500},
		{Lo: 4000, Hi: 4000, Line: 20},
	})
	assert.Empty(t, m.Overlaps())

	tests := []struct {
		account  int
		wantLine int
		wantOK   bool
	}{
		{999, 0, false},
		{1000, 500, true},
		{1500, 500, true},
		{1999, 500, true},
		{2000, 0, false},
		{3500, 10, true},
		{4000, 20, true},
		{4001, 0, false},
	}
	for _, tt := range tests {
		line, ok := m.Lookup(tt.account)
		assert.Equal(t, tt.wantOK, ok, "account %d", tt.account)
		assert.Equal(t, tt.wantLine, line, "account %d", tt.account)
	}
}

func TestLookup_SortsDefensively(t *testing.T) {
	m := NewIntervalMapper([]model.IntervalRule{
		{Lo: 5000, Hi: 5999, Line: 40},
		{Lo: 1000, Hi: 1999, Line: 500},
	})
	assert.Equal(t, 1000, m.Rules()[0].Lo)

	line, ok := m.Lookup(5010)
	require.True(t, ok)
	assert.Equal(t, 40, line)
}

func TestLookup_OverlapFirstWins(t *testing.T) {
	rules := []model.IntervalRule{
		{Lo: 1000, Hi: 1999, Line: 500},
		{Lo: 1500, Hi: 1599, Line: 610},
	}
	m := NewIntervalMapper(rules)
	require.Len(t, m.Overlaps(), 1)
	assert.Equal(t, 500, m.Overlaps()[0].First.Line)

	line, ok := m.Lookup(1550)
	require.True(t, ok)
	assert.Equal(t, 500, line, "first rule in sorted order wins")

	line, ok = m.Lookup(1650)
	require.True(t, ok)
	assert.Equal(t, 500, line, "outer rule still covers accounts past the inner one")
}

func TestLookup_TiesKeepInputOrder(t *testing.T) {
	m := NewIntervalMapper([]model.IntervalRule{
		{Lo: 3000, Hi: 3099, Line: 10},
		{Lo: 3000, Hi: 3999, Line: 15},
	})
	line, ok := m.Lookup(3050)
	require.True(t, ok)
	assert.Equal(t, 10, line)

	line, ok = m.Lookup(3500)
	require.True(t, ok)
	assert.Equal(t, 15, line)
}

func TestResolve(t *testing.T) {
	got := Resolve([]int{1920, 3000, 8500}, DefaultIntervals())
	assert.Equal(t, map[int]int{1920: 655, 3000: 10}, got)
}

func TestResolve_EmptyRules(t *testing.T) {
	got := Resolve([]int{1920, 3000}, nil)
	assert.Empty(t, got)
}

func TestResolve_DoesNotModifyInput(t *testing.T) {
	rules := []model.IntervalRule{
		{Lo: 5000, Hi: 5999, Line: 40},
		{Lo: 1000, Hi: 1999, Line: 500},
	}
	Resolve([]int{1000}, rules)
	assert.Equal(t, 5000, rules[0].Lo)
}

func TestDefaultIntervals_Disjoint(t *testing.T) {
	m := NewIntervalMapper(DefaultIntervals())
	assert.Empty(t, m.Overlaps())
}
