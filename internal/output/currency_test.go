package output

import (
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormatINR(t *testing.T) {
	tests := []struct {
		in       string
		expected string
	}{
		{"0", "₹0"},
		{"999", "₹999"},
		{"1000", "₹1,000"},
		{"99999", "₹99,999"},
		{"100000", "₹1,00,000"},
		{"1234567", "₹12,34,567"},
		{"123456789", "₹12,34,56,789"},
		{"10157.37", "₹10,157"},
		{"10157.5", "₹10,158"},
		{"-350000", "-₹3,50,000"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatINR(decimal.RequireFromString(tt.in)))
		})
	}
}

func TestFormatINRPrecise(t *testing.T) {
	assert.Equal(t, "₹10,157.37", FormatINRPrecise(decimal.RequireFromString("10157.370970")))
	assert.Equal(t, "₹0.00", FormatINRPrecise(decimal.RequireFromString("-0.001")))
	assert.Equal(t, "-₹1,250.50", FormatINRPrecise(decimal.RequireFromString("-1250.5")))
}

func TestAmountInWords(t *testing.T) {
	tests := []struct {
		n        int64
		expected string
	}{
		{0, "Zero"},
		{7, "Seven"},
		{15, "Fifteen"},
		{40, "Forty"},
		{99, "Ninety Nine"},
		{100, "One Hundred"},
		{1250, "One Thousand Two Hundred Fifty"},
		{10157, "Ten Thousand One Hundred Fifty Seven"},
		{350000, "Three Lakh Fifty Thousand"},
		{1490000, "Fourteen Lakh Ninety Thousand"},
		{12345678, "One Crore Twenty Three Lakh Forty Five Thousand Six Hundred Seventy Eight"},
		{2500000000, "Two Hundred Fifty Crore"},
		{-60000, "Minus Sixty Thousand"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, AmountInWords(tt.n), "n=%d", tt.n)
	}
}

func TestAmountInWords_Extremes(t *testing.T) {
	const magnitude = "Ninety Two Thousand Two Hundred Thirty Three Crore Seventy Two Lakh Three Thousand " +
		"Six Hundred Eighty Five Crore Forty Seven Lakh Seventy Five Thousand Eight Hundred "

	assert.Equal(t, magnitude+"Seven", AmountInWords(math.MaxInt64))
	assert.Equal(t, "Minus "+magnitude+"Eight", AmountInWords(math.MinInt64))
}

func TestRupeesInWords(t *testing.T) {
	assert.Equal(t, "Four Lakh Rupees", RupeesInWords(decimal.NewFromInt(400000)))
}
