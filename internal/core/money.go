// Package core holds the payroll domain: the PayrollBook aggregate, its
// mutation operations, and the pure aggregation functions derived from it.
//
// This file contains money parsing, formatting, and the withholding math.
// Amounts are whole won held as int64; there are no fractional amounts.
package core

import (
	"strconv"
	"strings"
	"unicode"
)

// WithholdingRatePermille is the fixed independent-contractor withholding
// tax rate (3.3%), applied uniformly to every payment.
const WithholdingRatePermille = 33

// ParseAmount converts free-form user input to a non-negative amount.
//
// All non-digit runes are stripped first, so formatted input like
// "120,000", "₩120000", or "120000원" all parse to 120000. Empty or
// non-numeric input collapses to 0; parsing never fails.
func ParseAmount(raw string) int64 {
	var b strings.Builder
	for _, r := range raw {
		if unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	digits := b.String()
	if digits == "" {
		return 0
	}
	n, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return 0
	}
	return n
}

// Withholding returns floor(amount * 3.3%) in integer arithmetic.
func Withholding(amount int64) int64 {
	return amount * WithholdingRatePermille / 1000
}

// Net returns the amount after withholding.
func Net(amount int64) int64 {
	return amount - Withholding(amount)
}

// FormatWon renders an amount with thousands separators, e.g. 1234567 ->
// "1,234,567". Used by the report; the UI formats client-side.
func FormatWon(amount int64) string {
	s := strconv.FormatInt(amount, 10)
	neg := false
	if strings.HasPrefix(s, "-") {
		neg = true
		s = s[1:]
	}
	if len(s) > 3 {
		var b strings.Builder
		lead := len(s) % 3
		if lead > 0 {
			b.WriteString(s[:lead])
		}
		for i := lead; i < len(s); i += 3 {
			if b.Len() > 0 {
				b.WriteByte(',')
			}
			b.WriteString(s[i : i+3])
		}
		s = b.String()
	}
	if neg {
		return "-" + s
	}
	return s
}
