package calculation

import (
	"errors"
	"fmt"
	"sort"

	"github.com/rgehrsitz/herdemi/internal/domain"
	"github.com/shopspring/decimal"
)

// ErrUnsupportedACFTenure is returned for ACF tenures other than the offered plans.
var ErrUnsupportedACFTenure = errors.New("unsupported ACF tenure")

// acfPerUnitInstallments maps an ACF tenure to its monthly per-unit installment.
var acfPerUnitInstallments = map[int]decimal.Decimal{
	11: decimal.NewFromInt(30000),
	30: decimal.NewFromInt(10000),
}

const acfDoubleCPFTenure = 30

// ACFTenures lists the supported ACF tenures in ascending order.
func ACFTenures() []int {
	tenures := make([]int, 0, len(acfPerUnitInstallments))
	for t := range acfPerUnitInstallments {
		tenures = append(tenures, t)
	}
	sort.Ints(tenures)
	return tenures
}

// ACFPerUnitInstallment returns the monthly per-unit installment for tenure.
func ACFPerUnitInstallment(tenureMonths int) (decimal.Decimal, error) {
	inst, ok := acfPerUnitInstallments[tenureMonths]
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: %d months (valid: %v)", ErrUnsupportedACFTenure, tenureMonths, ACFTenures())
	}
	return inst, nil
}

// GenerateACF builds the cumulative ACF schedule and its benefit figures.
// The longer plan waives two years of CPF instead of one.
func GenerateACF(unitCount, tenureMonths int) (domain.ACFResult, error) {
	perUnit, err := ACFPerUnitInstallment(tenureMonths)
	if err != nil {
		return domain.ACFResult{}, err
	}
	units := decimal.NewFromInt(int64(unitCount))
	monthly := perUnit.Mul(units)

	schedule := make([]domain.ACFRow, 0, tenureMonths)
	cumulative := decimal.Zero
	for m := 1; m <= tenureMonths; m++ {
		cumulative = cumulative.Add(monthly)
		schedule = append(schedule, domain.ACFRow{
			Month:       m,
			Installment: monthly,
			Cumulative:  cumulative,
		})
	}

	cpfYears := int64(1)
	if tenureMonths == acfDoubleCPFTenure {
		cpfYears = 2
	}
	totalInvestment := units.Mul(perUnit).Mul(decimal.NewFromInt(int64(tenureMonths)))
	marketValue := BaseCapitalPerUnit.Mul(units)
	cpfBenefit := units.Mul(YearlyCPFPerAnimal).Mul(decimal.NewFromInt(cpfYears))
	discount := marketValue.Sub(totalInvestment)

	return domain.ACFResult{
		UnitCount:          unitCount,
		TenureMonths:       tenureMonths,
		PerUnitInstallment: perUnit,
		Installment:        monthly,
		Schedule:           schedule,
		TotalInvestment:    totalInvestment,
		MarketValue:        marketValue,
		Discount:           discount,
		CPFBenefit:         cpfBenefit,
		TotalBenefit:       discount.Add(cpfBenefit),
	}, nil
}
