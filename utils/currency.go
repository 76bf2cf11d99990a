package utils

import (
	"fmt"
	"math"
	"strings"
)

// FormatCurrency renders amount with two decimals and comma thousand
// separators, e.g. FormatCurrency("Rs.", 15000.5) -> "Rs. 15,000.50".
// Rounding happens here only; callers keep full precision.
func FormatCurrency(symbol string, amount float64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	cents := int64(math.Round(amount * 100))
	integerPart := fmt.Sprintf("%d", cents/100)

	var groups []string
	for len(integerPart) > 3 {
		groups = append([]string{integerPart[len(integerPart)-3:]}, groups...)
		integerPart = integerPart[:len(integerPart)-3]
	}
	groups = append([]string{integerPart}, groups...)

	out := fmt.Sprintf("%s%s.%02d", sign, strings.Join(groups, ","), cents%100)
	if symbol == "" {
		return out
	}
	return symbol + " " + out
}
