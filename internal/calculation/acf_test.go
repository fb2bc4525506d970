package calculation

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestACFTenures(t *testing.T) {
	assert.Equal(t, []int{11, 30}, ACFTenures())
}

func TestGenerateACF(t *testing.T) {
	tests := []struct {
		name         string
		units        int
		tenure       int
		installment  int64
		total        int64
		discount     int64
		cpfBenefit   int64
		totalBenefit int64
	}{
		{"two units eleven months", 2, 11, 60000, 660000, 40000, 30000, 70000},
		{"one unit thirty months", 1, 30, 10000, 300000, 50000, 30000, 80000},
		{"five units thirty months", 5, 30, 50000, 1500000, 250000, 150000, 400000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := GenerateACF(tt.units, tt.tenure)
			require.NoError(t, err)

			require.Len(t, res.Schedule, tt.tenure)
			assert.True(t, res.Installment.Equal(decimal.NewFromInt(tt.installment)))
			assert.True(t, res.TotalInvestment.Equal(decimal.NewFromInt(tt.total)))
			assert.True(t, res.Schedule[tt.tenure-1].Cumulative.Equal(res.TotalInvestment))
			assert.True(t, res.MarketValue.Equal(decimal.NewFromInt(int64(tt.units)*350000)))
			assert.True(t, res.Discount.Equal(decimal.NewFromInt(tt.discount)))
			assert.True(t, res.CPFBenefit.Equal(decimal.NewFromInt(tt.cpfBenefit)))
			assert.True(t, res.TotalBenefit.Equal(decimal.NewFromInt(tt.totalBenefit)))

			for i, row := range res.Schedule {
				assert.Equal(t, i+1, row.Month)
				assert.True(t, row.Cumulative.Equal(res.Installment.Mul(decimal.NewFromInt(int64(i+1)))))
			}
		})
	}
}

func TestGenerateACF_UnsupportedTenure(t *testing.T) {
	for _, tenure := range []int{0, 12, 24, 60} {
		_, err := GenerateACF(1, tenure)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrUnsupportedACFTenure))
	}
}
