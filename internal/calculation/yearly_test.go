package calculation

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAggregateYearly_Empty(t *testing.T) {
	assert.Nil(t, AggregateYearly(nil))
}

func TestAggregateYearly_PartialFinalYear(t *testing.T) {
	res := Simulate(referenceInput(30))
	years := res.YearlyRows

	require.Len(t, years, 3)
	assert.Equal(t, 1, years[0].StartMonth)
	assert.Equal(t, 12, years[0].EndMonth)
	assert.Equal(t, 25, years[2].StartMonth)
	assert.Equal(t, 30, years[2].EndMonth)

	last := res.MonthlyRows[len(res.MonthlyRows)-1]
	assert.True(t, years[2].RemainingBalance.Equal(last.RemainingBalance))
	assert.True(t, years[2].PoolBalanceAfter.Equal(last.PoolBalanceAfter))
}

func TestAggregateYearly_SumsMatchMonthly(t *testing.T) {
	res := Simulate(referenceInput(60))

	var revenue, cpf, cgf, profit, loss, installment decimal.Decimal
	for _, y := range res.YearlyRows {
		revenue = revenue.Add(y.Revenue)
		cpf = cpf.Add(y.CPFCost)
		cgf = cgf.Add(y.CGFCost)
		profit = profit.Add(y.Profit)
		loss = loss.Add(y.Loss)
		installment = installment.Add(y.Installment)
		assert.True(t, y.NetCash.Equal(y.Profit.Sub(y.Loss)), "year %d net cash", y.Year)
		assert.True(t, y.TotalObligation.Equal(y.Installment.Add(y.CPFCost).Add(y.CGFCost)), "year %d obligation", y.Year)
	}

	assert.True(t, revenue.Equal(res.Totals.Revenue))
	assert.True(t, cpf.Equal(res.Totals.CPF))
	assert.True(t, cgf.Equal(res.Totals.CGF))
	assert.True(t, profit.Equal(res.Totals.Profit))
	assert.True(t, loss.Equal(res.Totals.Loss))
	assert.True(t, installment.Equal(res.Totals.Payment))
}
