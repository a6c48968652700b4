package model

import "github.com/shopspring/decimal"

// Balance is one trial balance (saldobalanse) row.
type Balance struct {
	Account int
	Name    string
	Amounts Amounts
	Line    int // direct line number from the source; 0 = none
}

// BalanceMismatch reports whether closing differs from opening + movement by
// more than tolerance. Source files often violate this, so it is only a hint.
func (b Balance) BalanceMismatch(tolerance decimal.Decimal) bool {
	expected := b.Amounts.Opening.Add(b.Amounts.Movement)
	return expected.Sub(b.Amounts.Closing).Abs().GreaterThan(tolerance)
}
