package output

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatINR formats an amount in whole rupees with Indian digit grouping,
// e.g. ₹12,34,567.
func FormatINR(amount decimal.Decimal) string {
	rounded := amount.Round(0)
	sign := ""
	if rounded.IsNegative() {
		sign = "-"
		rounded = rounded.Neg()
	}
	return sign + "₹" + groupIndian(rounded.String())
}

// FormatINRPrecise is FormatINR with two decimal places, used for
// installments and interest where paise matter.
func FormatINRPrecise(amount decimal.Decimal) string {
	s := amount.StringFixed(2)
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign = "-"
		s = s[1:]
	}
	whole, frac, _ := strings.Cut(s, ".")
	if strings.Trim(whole+frac, "0") == "" {
		sign = ""
	}
	return sign + "₹" + groupIndian(whole) + "." + frac
}

// groupIndian inserts separators after the last three digits and then every two.
func groupIndian(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	head, tail := digits[:len(digits)-3], digits[len(digits)-3:]
	var groups []string
	for len(head) > 2 {
		groups = append([]string{head[len(head)-2:]}, groups...)
		head = head[:len(head)-2]
	}
	if head != "" {
		groups = append([]string{head}, groups...)
	}
	return strings.Join(groups, ",") + "," + tail
}

// FormatPercentage formats a decimal as percentage
func FormatPercentage(amount decimal.Decimal) string {
	return amount.StringFixed(2) + "%"
}

var (
	smallNumbers = []string{
		"Zero", "One", "Two", "Three", "Four", "Five", "Six", "Seven", "Eight", "Nine",
		"Ten", "Eleven", "Twelve", "Thirteen", "Fourteen", "Fifteen", "Sixteen",
		"Seventeen", "Eighteen", "Nineteen",
	}
	tensNames = []string{"", "", "Twenty", "Thirty", "Forty", "Fifty", "Sixty", "Seventy", "Eighty", "Ninety"}
)

// indianScales are the named place values of the Indian numbering system,
// largest first.
var indianScales = []struct {
	value uint64
	name  string
}{
	{10000000, "Crore"},
	{100000, "Lakh"},
	{1000, "Thousand"},
	{100, "Hundred"},
}

// AmountInWords spells out a whole-rupee amount using crore and lakh.
func AmountInWords(n int64) string {
	if n == 0 {
		return smallNumbers[0]
	}
	if n < 0 {
		// magnitude in uint64 so math.MinInt64 does not overflow
		return "Minus " + strings.Join(spell(uint64(-(n+1))+1), " ")
	}
	return strings.Join(spell(uint64(n)), " ")
}

func spell(n uint64) []string {
	var words []string
	for _, s := range indianScales {
		if n >= s.value {
			words = append(words, spell(n/s.value)...)
			words = append(words, s.name)
			n %= s.value
		}
	}
	switch {
	case n == 0:
	case n < 20:
		words = append(words, smallNumbers[n])
	default:
		words = append(words, tensNames[n/10])
		if n%10 != 0 {
			words = append(words, smallNumbers[n%10])
		}
	}
	return words
}

// RupeesInWords rounds amount to whole rupees and spells it out.
func RupeesInWords(amount decimal.Decimal) string {
	return AmountInWords(amount.Round(0).IntPart()) + " Rupees"
}
