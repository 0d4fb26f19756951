package output

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Formatter renders raw decimals for a locale. Rounding happens here and
// nowhere else.
type Formatter struct {
	Precision        int32
	DecimalSeparator string
	CurrencySymbol   string
}

// DefaultFormatter renders two decimals with a dot and no currency symbol.
func DefaultFormatter() Formatter {
	return Formatter{Precision: 2, DecimalSeparator: "."}
}

// Number renders d rounded to the configured precision.
func (f Formatter) Number(d decimal.Decimal) string {
	s := d.StringFixed(f.Precision)
	if f.DecimalSeparator != "" && f.DecimalSeparator != "." {
		s = strings.Replace(s, ".", f.DecimalSeparator, 1)
	}
	return s
}

// Money renders d with the currency symbol, if any.
func (f Formatter) Money(d decimal.Decimal) string {
	if f.CurrencySymbol == "" {
		return f.Number(d)
	}
	return f.CurrencySymbol + " " + f.Number(d)
}

// NullMoney renders an optional amount, "-" when absent.
func (f Formatter) NullMoney(d decimal.NullDecimal) string {
	if !d.Valid {
		return "-"
	}
	return f.Money(d.Decimal)
}

// Percent renders d as a percentage.
func (f Formatter) Percent(d decimal.Decimal) string {
	return f.Number(d) + "%"
}

// FieldSeparator returns the CSV field separator matching the decimal
// separator, so a decimal comma never splits a field.
func (f Formatter) FieldSeparator() rune {
	if f.DecimalSeparator == "," {
		return ';'
	}
	return ','
}
