package util

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	dotThousands   = regexp.MustCompile(`^\d{1,3}(?:\.\d{3})+$`)
	plainNumber    = regexp.MustCompile(`^\d+(?:\.\d+)?$`)
	currencyPrefix = regexp.MustCompile(`(?i)^r\$\s*`)
)

// ParseMoney is the single total parser for price and factor cells. It never
// fails: anything unparseable or negative yields fallback.
func ParseMoney(input string, fallback decimal.Decimal) decimal.Decimal {
	v, ok := ParseMoneyOK(input)
	if !ok {
		return fallback
	}
	return v
}

// ParseMoneyOK accepts plain numerics ("100", "12.5") and Latin money
// formatting ("1.234,56", "50,00", "1.000"), with NBSP, spaces and an R$
// prefix tolerated. Negative values are rejected.
func ParseMoneyOK(input string) (decimal.Decimal, bool) {
	s := strings.ReplaceAll(input, "\u00A0", "")
	s = strings.TrimSpace(s)
	s = currencyPrefix.ReplaceAllString(s, "")
	s = strings.ReplaceAll(s, " ", "")
	s = strings.TrimPrefix(s, "+")
	if s == "" {
		return decimal.Zero, false
	}

	norm := normalizeNumericToken(s)
	if !plainNumber.MatchString(norm) {
		return decimal.Zero, false
	}
	v, err := decimal.NewFromString(norm)
	if err != nil || v.IsNegative() {
		return decimal.Zero, false
	}
	return v, true
}

func normalizeNumericToken(token string) string {
	if strings.Contains(token, ",") {
		return strings.ReplaceAll(strings.ReplaceAll(token, ".", ""), ",", ".")
	}
	if dotThousands.MatchString(token) {
		return strings.ReplaceAll(token, ".", "")
	}
	return token
}

// PlainDecimal renders v with "," as the decimal point and no grouping, a form
// ParseMoney reads back exactly.
func PlainDecimal(v decimal.Decimal) string {
	return strings.Replace(v.String(), ".", ",", 1)
}

// NumericCell rewrites the raw value of a number-typed spreadsheet cell
// ("1.875", "1.2E-3") into PlainDecimal form. Values that are not numbers
// are returned unchanged.
func NumericCell(raw string) string {
	v, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return raw
	}
	return PlainDecimal(v)
}

// FormatMoney renders "R$ 1.234,56".
func FormatMoney(v decimal.Decimal) string {
	return "R$ " + FormatDecimal(v, 2)
}

// FormatDecimal renders v with places decimals, "." grouping and "," as the
// decimal point.
func FormatDecimal(v decimal.Decimal, places int32) string {
	fixed := v.StringFixed(places)
	sign := ""
	if strings.HasPrefix(fixed, "-") {
		sign = "-"
		fixed = fixed[1:]
	}

	intPart, fracPart, _ := strings.Cut(fixed, ".")
	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}
	if fracPart != "" {
		b.WriteByte(',')
		b.WriteString(fracPart)
	}
	return sign + b.String()
}
