package model

import "strings"

// StatementType decides whether sign rules apply to a line.
type StatementType string

const (
	StatementResult  StatementType = "Resultat"
	StatementBalance StatementType = "Balanse"
	StatementOther   StatementType = ""
)

// ParseStatementType accepts the Norwegian and English spellings found in
// definition files ("Resultat", "resultatregnskap", "Balance", ...).
func ParseStatementType(s string) StatementType {
	v := strings.ToLower(strings.TrimSpace(s))
	switch {
	case strings.HasPrefix(v, "resultat"), strings.HasPrefix(v, "result"),
		v == "income", v == "p&l", v == "rr":
		return StatementResult
	case strings.HasPrefix(v, "balan"), v == "br":
		return StatementBalance
	default:
		return StatementOther
	}
}

// NoLevel marks a line whose sumnivå column was blank.
const NoLevel = -1

// Line is one row of the line definitions table (regnskapslinjer).
type Line struct {
	Number       int
	Name         string
	Type         StatementType
	Level        int // NoLevel when unset
	IsSubtotal   bool
	IncludeInSum bool
	Sign         int // +1 or -1; applied to Result detail lines only

	ParentSub      int // delsumnr, 0 = none
	ParentSum      int // sumnr
	ParentSum2     int // sumnr2
	ParentGrandSum int // sluttsumnr

	Formula string
}

// Parents returns the four parent pointers in chain order.
func (l Line) Parents() [4]int {
	return [4]int{l.ParentSub, l.ParentSum, l.ParentSum2, l.ParentGrandSum}
}

// HasFormula reports whether the line carries a non-blank formula.
func (l Line) HasFormula() bool {
	f := strings.TrimSpace(l.Formula)
	return f != "" && !strings.EqualFold(f, "nan")
}

// IntervalRule maps the inclusive account range [Lo, Hi] to a line.
type IntervalRule struct {
	Lo   int
	Hi   int
	Line int
}

// Contains reports whether account falls inside the rule.
func (r IntervalRule) Contains(account int) bool {
	return account >= r.Lo && account <= r.Hi
}
