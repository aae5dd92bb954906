// Package currencyutils parses and formats the money amounts found in bank
// exports.
package currencyutils

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

var symbols = regexp.MustCompile(`[€$£¥₣₤₧₹₺₽₩฿₫₲₴₸₼₪\s]|CHF|USD|EUR`)

// ParseAmount parses an amount as written in a bank export. Empty input is
// zero. Parentheses denote a negative amount, as in "(12.50)".
func ParseAmount(amountStr string) (decimal.Decimal, error) {
	standardized := StandardizeAmount(amountStr)
	if standardized == "" {
		return decimal.Zero, nil
	}

	negative := false
	if strings.HasPrefix(standardized, "(") && strings.HasSuffix(standardized, ")") {
		negative = true
		standardized = standardized[1 : len(standardized)-1]
	}

	amount, err := decimal.NewFromString(standardized)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to parse amount '%s': %w", amountStr, err)
	}
	if negative {
		amount = amount.Neg()
	}
	return amount, nil
}

// StandardizeAmount strips currency symbols, whitespace and thousands
// separators so the result can be parsed by decimal.NewFromString.
// Commas are thousands separators ("$1,234.56") unless they follow the
// last dot ("1.234,56"), in which case the comma is the decimal mark.
func StandardizeAmount(amountStr string) string {
	amountStr = symbols.ReplaceAllString(amountStr, "")
	amountStr = strings.ReplaceAll(amountStr, "'", "")

	if strings.Contains(amountStr, ",") && strings.Contains(amountStr, ".") &&
		strings.LastIndex(amountStr, ".") < strings.LastIndex(amountStr, ",") {
		amountStr = strings.ReplaceAll(amountStr, ".", "")
		return strings.ReplaceAll(amountStr, ",", ".")
	}
	return strings.ReplaceAll(amountStr, ",", "")
}

// FormatAmount formats an amount with two decimal places and thousands
// separators, e.g. "-1,234.50".
func FormatAmount(amount decimal.Decimal) string {
	s := amount.StringFixed(2)
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	whole, frac, _ := strings.Cut(s, ".")

	var b strings.Builder
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	return sign + b.String() + "." + frac
}
