// Package pricing computes order totals from line items and a discount.
package pricing

import (
	"errors"

	"github.com/shopspring/decimal"
)

var (
	ErrPercentageOutOfRange    = errors.New("pricing: discount percentage must be between 0 and 100")
	ErrNegativeDiscount        = errors.New("pricing: discount value must not be negative")
	ErrDiscountExceedsSubtotal = errors.New("pricing: discount value exceeds subtotal")
)

var hundred = decimal.NewFromInt(100)

// Mode selects how a Discount is applied.
type Mode int

const (
	ModeNone Mode = iota
	ModePercentage
	ModeValue
)

func (m Mode) String() string {
	return [...]string{"none", "percentage", "value"}[m]
}

// Discount is either a percentage of the subtotal or an absolute amount.
type Discount struct {
	mode   Mode
	amount decimal.Decimal
}

// None is the zero discount.
func None() Discount { return Discount{} }

// Percentage returns a discount of p percent of the subtotal.
func Percentage(p decimal.Decimal) Discount {
	return Discount{mode: ModePercentage, amount: p}
}

// Value returns a fixed discount amount.
func Value(v decimal.Decimal) Discount {
	return Discount{mode: ModeValue, amount: v}
}

// FromFields builds a Discount from the two nullable order columns. A
// percentage wins when both are set.
func FromFields(pct, value *decimal.Decimal) Discount {
	switch {
	case pct != nil:
		return Percentage(*pct)
	case value != nil:
		return Value(*value)
	default:
		return None()
	}
}

func (d Discount) Mode() Mode { return d.mode }

// Amount is the raw percentage or value the discount was built with.
func (d Discount) Amount() decimal.Decimal { return d.amount }

// Fields returns the pair persisted on an order. At most one is non-nil.
func (d Discount) Fields() (pct, value *decimal.Decimal) {
	a := d.amount
	switch d.mode {
	case ModePercentage:
		return &a, nil
	case ModeValue:
		return nil, &a
	}
	return nil, nil
}

// Line is the minimal view of an order line needed for totals.
type Line struct {
	Quantity  decimal.Decimal
	UnitPrice decimal.Decimal
}

// Totals is the outcome of Compute.
type Totals struct {
	Subtotal       decimal.Decimal `json:"subtotale"`
	DiscountAmount decimal.Decimal `json:"importo_sconto"`
	Total          decimal.Decimal `json:"totale"`
}

// LineSubtotal is quantity times unit price, rounded to cents.
func LineSubtotal(qty, price decimal.Decimal) decimal.Decimal {
	return qty.Mul(price).Round(2)
}

// Subtotal sums the line subtotals.
func Subtotal(lines []Line) decimal.Decimal {
	sum := decimal.Zero
	for _, l := range lines {
		sum = sum.Add(LineSubtotal(l.Quantity, l.UnitPrice))
	}
	return sum
}

// Compute derives subtotal, discount amount and total. The discount amount
// always lies in [0, subtotal]; inputs that would leave it outside are
// rejected.
func Compute(lines []Line, d Discount) (Totals, error) {
	subtotal := Subtotal(lines)

	discount := decimal.Zero
	switch d.mode {
	case ModePercentage:
		if d.amount.IsNegative() || d.amount.GreaterThan(hundred) {
			return Totals{}, ErrPercentageOutOfRange
		}
		discount = subtotal.Mul(d.amount).Div(hundred).Round(2)
	case ModeValue:
		if d.amount.IsNegative() {
			return Totals{}, ErrNegativeDiscount
		}
		if d.amount.GreaterThan(subtotal) {
			return Totals{}, ErrDiscountExceedsSubtotal
		}
		discount = d.amount.Round(2)
	}

	return Totals{
		Subtotal:       subtotal,
		DiscountAmount: discount,
		Total:          subtotal.Sub(discount),
	}, nil
}
