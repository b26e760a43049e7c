package format

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrInvalidNumber is returned by ParseDecimal for unparsable input.
var ErrInvalidNumber = errors.New("format: invalid number")

// ParseDecimal reads a number written either the Italian way ("1.234,50",
// "12,5") or with a dot decimal separator ("1234.50"). A comma is always the
// decimal separator when present; dots are then taken as grouping.
func ParseDecimal(s string) (decimal.Decimal, error) {
	s = stripSpaces(strings.TrimPrefix(strings.TrimSpace(s), "€"))
	if s == "" {
		return decimal.Zero, ErrInvalidNumber
	}
	if strings.Contains(s, ",") {
		s = strings.ReplaceAll(s, ".", "")
		s = strings.Replace(s, ",", ".", 1)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, ErrInvalidNumber
	}
	return d, nil
}

// ValidDecimal reports whether ParseDecimal accepts s.
func ValidDecimal(s string) bool {
	_, err := ParseDecimal(s)
	return err == nil
}
