// Package format renders money, numbers and dates the way Italian documents
// expect them and validates Italian fiscal identifiers.
package format

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var printer = message.NewPrinter(language.Italian)

// Currency formats an amount in euro with Italian separators, e.g. "€ 1.234,50".
// A nil amount renders as "€ 0,00".
func Currency(v *decimal.Decimal) string {
	if v == nil {
		return "€ 0,00"
	}
	return "€ " + Amount(*v)
}

// Money is Currency for a non-nullable amount.
func Money(v decimal.Decimal) string {
	return Currency(&v)
}

// Amount formats a value with two decimals and Italian grouping, no symbol.
func Amount(v decimal.Decimal) string {
	f := v.Round(2).InexactFloat64()
	return printer.Sprint(number.Decimal(f, number.Scale(2)))
}

// Number formats a value with Italian grouping. Nil renders as "0".
func Number(v *decimal.Decimal) string {
	if v == nil {
		return "0"
	}
	return printer.Sprint(number.Decimal(v.InexactFloat64(), number.MaxFractionDigits(3)))
}

// Quantity renders an order quantity without trailing zeros ("2", "1,5").
func Quantity(v decimal.Decimal) string {
	return strings.Replace(v.String(), ".", ",", 1)
}

// Percent renders a discount percentage as shown on documents ("10", "12,5").
func Percent(v decimal.Decimal) string {
	return Quantity(v)
}

// Date formats as dd/MM/yyyy. The zero time renders as an empty string.
func Date(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("02/01/2006")
}

// DateTime formats as dd/MM/yyyy HH:mm.
func DateTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("02/01/2006 15:04")
}
