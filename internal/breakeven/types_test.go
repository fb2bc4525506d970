package breakeven

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestConstraints_Validate(t *testing.T) {
	d := func(v int64) *decimal.Decimal { x := decimal.NewFromInt(v); return &x }
	n := func(v int) *int { return &v }

	tests := []struct {
		name    string
		c       Constraints
		wantErr string
	}{
		{name: "defaults", c: DefaultConstraints()},
		{name: "empty", c: Constraints{}},
		{name: "negative rate", c: Constraints{MinRate: d(-1)}, wantErr: "min_rate cannot be negative"},
		{name: "rate order", c: Constraints{MinRate: d(10), MaxRate: d(5)}, wantErr: "min_rate cannot be greater"},
		{name: "rate above 100", c: Constraints{MaxRate: d(101)}, wantErr: "max_rate cannot exceed 100"},
		{name: "negative principal", c: Constraints{MinPrincipal: d(-5)}, wantErr: "min_principal cannot be negative"},
		{name: "principal order", c: Constraints{MinPrincipal: d(500000), MaxPrincipal: d(400000)}, wantErr: "min_principal cannot be greater"},
		{name: "zero tenure", c: Constraints{MinTenure: n(0)}, wantErr: "at least 1 month"},
		{name: "tenure order", c: Constraints{MinTenure: n(60), MaxTenure: n(36)}, wantErr: "min_tenure cannot be greater"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.c.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestBreakEvenError(t *testing.T) {
	err := &BreakEvenError{Operation: "optimize_rate", Message: "bisection failed", Cause: ErrInfeasible}
	assert.Equal(t, "optimize_rate: bisection failed: no break-even point in range", err.Error())
	assert.True(t, errors.Is(err, ErrInfeasible))

	plain := &BreakEvenError{Operation: "optimize", Message: "base scenario is required"}
	assert.Equal(t, "optimize: base scenario is required", plain.Error())
	assert.Nil(t, plain.Unwrap())
}

func TestDefaultSolverOptions(t *testing.T) {
	opts := DefaultSolverOptions()
	assert.Equal(t, 200, opts.MaxIterations)
	assert.True(t, opts.RateTolerance.Equal(decimal.RequireFromString("0.001")))
	assert.True(t, opts.LossTolerance.IsPositive())
}
