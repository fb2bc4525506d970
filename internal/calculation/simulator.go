package calculation

import (
	"github.com/rgehrsitz/herdemi/internal/domain"
	"github.com/shopspring/decimal"
)

// Capital and fund parameters per unit.
var (
	BaseCapitalPerUnit  = decimal.NewFromInt(350000)
	CPFCapitalPerUnit   = decimal.NewFromInt(15000)
	YearlyCPFPerAnimal  = decimal.NewFromInt(15000)
	MonthlyCPFPerAnimal = YearlyCPFPerAnimal.Div(twelve)
)

const (
	// cpfFreeMonths is the opening period during which no CPF is charged.
	cpfFreeMonths = 12
	// CalfCPFStartOffset is the months after birth from which a calf is insured.
	CalfCPFStartOffset = 24
	// CalfRevenueStartOffset anchors a home-bred animal's first lactation cycle.
	CalfRevenueStartOffset = 33
)

// adultCPFStartMonths: the first adult is covered from its order month, the
// second one year after its order month.
var adultCPFStartMonths = [AdultsPerUnit]int{AdultOrderMonths[0], AdultOrderMonths[1] + 12}

// RequiredCapital is the capital strictly needed to fund the units.
func RequiredCapital(units int, cpfEnabled bool) decimal.Decimal {
	perUnit := BaseCapitalPerUnit
	if cpfEnabled {
		perUnit = perUnit.Add(CPFCapitalPerUnit)
	}
	return perUnit.Mul(decimal.NewFromInt(int64(units)))
}

// herdMonth holds the per-unit herd quantities for one month.
type herdMonth struct {
	revenue    int64
	cgf        int64
	cpfInsured int64
}

// herdFlows computes per-unit revenue, CGF cost and insured animal count for
// month m from the lineage birth months.
func herdFlows(m int, births []int, cpfEnabled, cgfEnabled bool) herdMonth {
	var h herdMonth
	for _, start := range AdultRevenueStartMonths {
		h.revenue += adultRevenue(m, start)
	}
	cpfActive := cpfEnabled && m > cpfFreeMonths
	if cpfActive {
		for _, start := range adultCPFStartMonths {
			if m >= start {
				h.cpfInsured++
			}
		}
	}
	for _, b := range births {
		if b > m {
			continue
		}
		h.revenue += calfRevenue(m, b+CalfRevenueStartOffset)
		if cgfEnabled {
			h.cgf += growthFundCost(m - b + 1)
		}
		if cpfActive && m >= b+CalfCPFStartOffset {
			h.cpfInsured++
		}
	}
	return h
}

// waterfall pays obligations from revenue first, then from the loan pool.
type waterfall struct {
	revenue decimal.Decimal
	pool    decimal.Decimal
}

func (w *waterfall) pay(obligation decimal.Decimal) (fromRevenue, fromPool, unpaid decimal.Decimal) {
	fromRevenue = decimal.Min(w.revenue, obligation)
	w.revenue = w.revenue.Sub(fromRevenue)
	rest := obligation.Sub(fromRevenue)
	fromPool = decimal.Min(w.pool, rest)
	w.pool = w.pool.Sub(fromPool)
	unpaid = clampZero(rest.Sub(fromPool))
	return fromRevenue, fromPool, unpaid
}

// Simulate runs the full month-by-month EMI and herd cash-flow walk. It is a
// pure function of its input: equal inputs give equal results.
func Simulate(in domain.SimulationInput) domain.SimulationResult {
	tenure := in.TenureMonths
	if tenure < 0 {
		tenure = 0
	}
	units := decimal.NewFromInt(int64(in.UnitCount))
	rate := MonthlyRate(in.AnnualRatePercent)
	installment := MonthlyInstallment(in.Principal, in.AnnualRatePercent, tenure)

	required := RequiredCapital(in.UnitCount, in.CPFEnabled)
	pool := clampZero(in.Principal.Sub(required))

	lineage := GenerateLineage(tenure)
	births := lineage.BirthMonths()

	result := domain.SimulationResult{
		Input:           in,
		Installment:     installment,
		RequiredCapital: required,
		InitialPool:     pool,
		MonthlyRows:     make([]domain.MonthlyRow, 0, tenure),
		Lineage:         lineage,
	}

	balance := in.Principal
	for m := 1; m <= tenure; m++ {
		interest := balance.Mul(rate).Round(moneyScale)
		var principalPortion decimal.Decimal
		if m == tenure {
			principalPortion = balance
		} else {
			principalPortion = decimal.Min(clampZero(installment.Sub(interest)), balance)
		}
		balance = snap(balance.Sub(principalPortion))

		h := herdFlows(m, births, in.CPFEnabled, in.CGFEnabled)
		revenue := decimal.NewFromInt(h.revenue).Mul(units)
		cgf := decimal.NewFromInt(h.cgf).Mul(units)
		cpf := MonthlyCPFPerAnimal.Mul(decimal.NewFromInt(h.cpfInsured)).Mul(units)

		w := waterfall{revenue: revenue, pool: pool}
		instRev, instPool, instUnpaid := w.pay(installment)
		cpfRev, cpfPool, cpfUnpaid := w.pay(cpf)
		cgfRev, cgfPool, cgfUnpaid := w.pay(cgf)

		loss := clampZero(instUnpaid.Add(cpfUnpaid).Add(cgfUnpaid))
		profit := clampZero(w.revenue)
		pool = snap(clampZero(w.pool.Add(profit)))

		result.MonthlyRows = append(result.MonthlyRows, domain.MonthlyRow{
			Month:            m,
			Installment:      installment,
			InterestPortion:  interest,
			PrincipalPortion: principalPortion,
			RemainingBalance: balance,

			Revenue: revenue,
			CPFCost: cpf,
			CGFCost: cgf,

			InstallmentFromRevenue: instRev,
			InstallmentFromPool:    instPool,
			InstallmentUnpaid:      instUnpaid,
			CPFFromRevenue:         cpfRev,
			CPFFromPool:            cpfPool,
			CPFUnpaid:              cpfUnpaid,
			CGFFromRevenue:         cgfRev,
			CGFFromPool:            cgfPool,
			CGFUnpaid:              cgfUnpaid,

			PoolBalanceAfter: pool,
			Profit:           profit,
			Loss:             loss,

			TotalObligation: installment.Add(cpf).Add(cgf),
			DebitFromPool:   instPool.Add(cpfPool).Add(cgfPool),
			NetCash:         profit.Sub(loss),
		})
	}

	result.YearlyRows = AggregateYearly(result.MonthlyRows)
	result.Totals = computeTotals(result.MonthlyRows, lineage, in.UnitCount)
	return result
}

func computeTotals(rows []domain.MonthlyRow, lineage domain.Lineage, units int) domain.Totals {
	var t domain.Totals
	for _, r := range rows {
		t.Revenue = t.Revenue.Add(r.Revenue)
		t.CPF = t.CPF.Add(r.CPFCost)
		t.CGF = t.CGF.Add(r.CGFCost)
		t.Profit = t.Profit.Add(r.Profit)
		t.Loss = t.Loss.Add(r.Loss)
		t.Payment = t.Payment.Add(r.Installment)
		t.Interest = t.Interest.Add(r.InterestPortion)
		t.Principal = t.Principal.Add(r.PrincipalPortion)
	}
	t.NetCash = t.Profit.Sub(t.Loss)
	t.AssetValue = HerdAssetValue(lineage, units)
	return t
}
