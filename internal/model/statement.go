package model

import (
	"strings"

	"github.com/shopspring/decimal"
)

// StatementLine is one output row of a statement build.
type StatementLine struct {
	Number      int
	Name        string
	Type        StatementType
	Level       int
	IsSubtotal  bool
	Amounts     Amounts
	IndentLevel int
	Formula     string
}

// Field selects one of the three amount columns.
type Field string

const (
	FieldOpening  Field = "IB"
	FieldMovement Field = "Endring"
	FieldClosing  Field = "UB"
	FieldUnknown  Field = ""
)

// ParseField accepts IB/Endring/UB and their long or English forms.
func ParseField(s string) Field {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "ib", "opening", "inngående saldo", "inngående balanse":
		return FieldOpening
	case "endring", "movement", "bevegelse", "change", "period":
		return FieldMovement
	case "ub", "closing", "utgående saldo", "utgående balanse":
		return FieldClosing
	default:
		return FieldUnknown
	}
}

// KpiDefinition is a named arithmetic expression over line numbers.
type KpiDefinition struct {
	Name       string
	Expression string
	Field      Field
	Format     string
}

// KpiResult is the evaluated value of a KpiDefinition.
type KpiResult struct {
	Name       string
	Expression string
	Field      Field
	Format     string
	Value      decimal.Decimal
}
