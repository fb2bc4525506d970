package calculation

import (
	"github.com/rgehrsitz/herdemi/internal/domain"
)

// MonthsPerYear is the rollup window of AggregateYearly.
const MonthsPerYear = 12

// AggregateYearly folds monthly rows into consecutive windows of up to twelve
// months. The last window may be shorter.
func AggregateYearly(rows []domain.MonthlyRow) []domain.YearlyRow {
	if len(rows) == 0 {
		return nil
	}
	years := make([]domain.YearlyRow, 0, (len(rows)+MonthsPerYear-1)/MonthsPerYear)
	for start := 0; start < len(rows); start += MonthsPerYear {
		end := min(start+MonthsPerYear, len(rows))
		chunk := rows[start:end]

		y := domain.YearlyRow{
			Year:       len(years) + 1,
			StartMonth: chunk[0].Month,
			EndMonth:   chunk[len(chunk)-1].Month,
		}
		for _, r := range chunk {
			y.Installment = y.Installment.Add(r.Installment)
			y.InterestPortion = y.InterestPortion.Add(r.InterestPortion)
			y.PrincipalPortion = y.PrincipalPortion.Add(r.PrincipalPortion)
			y.Revenue = y.Revenue.Add(r.Revenue)
			y.CPFCost = y.CPFCost.Add(r.CPFCost)
			y.CGFCost = y.CGFCost.Add(r.CGFCost)
			y.Profit = y.Profit.Add(r.Profit)
			y.Loss = y.Loss.Add(r.Loss)
			y.DebitFromPool = y.DebitFromPool.Add(r.DebitFromPool)
		}
		last := chunk[len(chunk)-1]
		y.RemainingBalance = last.RemainingBalance
		y.PoolBalanceAfter = last.PoolBalanceAfter
		y.TotalObligation = y.Installment.Add(y.CPFCost).Add(y.CGFCost)
		y.NetCash = y.Profit.Sub(y.Loss)

		years = append(years, y)
	}
	return years
}
