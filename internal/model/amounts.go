package model

import "github.com/shopspring/decimal"

// Amounts is the (IB, Endring, UB) triple carried by every account and
// statement line. Methods return new values and never modify the receiver.
type Amounts struct {
	Opening  decimal.Decimal // IB
	Movement decimal.Decimal // Endring
	Closing  decimal.Decimal // UB
}

// NewAmounts builds Amounts from three decimals.
func NewAmounts(opening, movement, closing decimal.Decimal) Amounts {
	return Amounts{Opening: opening, Movement: movement, Closing: closing}
}

// Add returns the field-wise sum of a and b.
func (a Amounts) Add(b Amounts) Amounts {
	return Amounts{
		Opening:  a.Opening.Add(b.Opening),
		Movement: a.Movement.Add(b.Movement),
		Closing:  a.Closing.Add(b.Closing),
	}
}

// Sub returns the field-wise difference a - b.
func (a Amounts) Sub(b Amounts) Amounts {
	return a.Add(b.Neg())
}

// Neg returns the field-wise negation.
func (a Amounts) Neg() Amounts {
	return Amounts{
		Opening:  a.Opening.Neg(),
		Movement: a.Movement.Neg(),
		Closing:  a.Closing.Neg(),
	}
}

// Scale applies a sign multiplier. Anything negative negates, anything else
// is the identity.
func (a Amounts) Scale(sign int) Amounts {
	if sign < 0 {
		return a.Neg()
	}
	return a
}

// IsZero reports whether all three fields are zero.
func (a Amounts) IsZero() bool {
	return a.Opening.IsZero() && a.Movement.IsZero() && a.Closing.IsZero()
}

// Equal compares field-wise by value (so 1.50 == 1.5).
func (a Amounts) Equal(b Amounts) bool {
	return a.Opening.Equal(b.Opening) && a.Movement.Equal(b.Movement) && a.Closing.Equal(b.Closing)
}

// Field returns the amount selected by f. FieldUnknown yields zero.
func (a Amounts) Field(f Field) decimal.Decimal {
	switch f {
	case FieldOpening:
		return a.Opening
	case FieldMovement:
		return a.Movement
	case FieldClosing:
		return a.Closing
	default:
		return decimal.Zero
	}
}
