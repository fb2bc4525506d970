package calculation

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestMonthlyRate(t *testing.T) {
	assert.True(t, MonthlyRate(decimal.NewFromInt(18)).Equal(decimal.NewFromFloat(0.015)))
	assert.True(t, MonthlyRate(decimal.Zero).IsZero())
}

func TestMonthlyInstallment(t *testing.T) {
	tests := []struct {
		name      string
		principal int64
		rate      float64
		tenure    int
		expected  float64
	}{
		{"reference loan", 400000, 18, 60, 10157.37},
		{"zero rate splits evenly", 120000, 0, 12, 10000},
		{"single month repays principal plus interest", 100000, 12, 1, 101000},
		{"invalid tenure", 100000, 12, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MonthlyInstallment(decimal.NewFromInt(tt.principal), decimal.NewFromFloat(tt.rate), tt.tenure)
			assert.InDelta(t, tt.expected, got.InexactFloat64(), 0.01)
		})
	}
}

func TestPowInt(t *testing.T) {
	assert.True(t, powInt(decimal.NewFromInt(2), 10).Equal(decimal.NewFromInt(1024)))
	assert.True(t, powInt(decimal.NewFromInt(7), 0).Equal(one))
	assert.InDelta(t, 2.44321978, powInt(decimal.NewFromFloat(1.015), 60).InexactFloat64(), 1e-8)
}

func TestSnapAndClamp(t *testing.T) {
	assert.True(t, snap(decimal.New(5, -7)).IsZero())
	assert.True(t, snap(decimal.New(-5, -7)).IsZero())
	assert.True(t, snap(decimal.New(5, -3)).Equal(decimal.New(5, -3)))
	assert.True(t, clampZero(decimal.NewFromInt(-1)).IsZero())
	assert.True(t, clampZero(decimal.NewFromInt(3)).Equal(decimal.NewFromInt(3)))
}
