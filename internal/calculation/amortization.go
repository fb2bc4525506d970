package calculation

import (
	"github.com/shopspring/decimal"
)

// moneyScale bounds the number of fractional digits carried month to month so
// the decimal representation does not grow without limit over long tenures.
const moneyScale = 10

var (
	one     = decimal.NewFromInt(1)
	twelve  = decimal.NewFromInt(12)
	hundred = decimal.NewFromInt(100)

	// snapEpsilon is the magnitude under which balances are treated as zero.
	snapEpsilon = decimal.New(1, -6)
)

// MonthlyRate converts an annual percentage rate to a monthly fraction.
func MonthlyRate(annualRatePercent decimal.Decimal) decimal.Decimal {
	return annualRatePercent.Div(twelve).Div(hundred)
}

// MonthlyInstallment returns the fixed reducing-balance EMI for a loan.
//
//	EMI = P * r * (1+r)^n / ((1+r)^n - 1)
//
// A zero rate degenerates to an even split of the principal.
func MonthlyInstallment(principal, annualRatePercent decimal.Decimal, tenureMonths int) decimal.Decimal {
	if tenureMonths < 1 {
		return decimal.Zero
	}
	n := decimal.NewFromInt(int64(tenureMonths))
	r := MonthlyRate(annualRatePercent)
	if r.IsZero() {
		return principal.Div(n)
	}
	factor := powInt(one.Add(r), tenureMonths)
	return principal.Mul(r).Mul(factor).Div(factor.Sub(one)).Round(moneyScale)
}

// powInt raises base to a non-negative integer power by squaring, rounding
// intermediates to keep precision bounded.
func powInt(base decimal.Decimal, exp int) decimal.Decimal {
	const scale = 24
	result := one
	for exp > 0 {
		if exp&1 == 1 {
			result = result.Mul(base).Round(scale)
		}
		base = base.Mul(base).Round(scale)
		exp >>= 1
	}
	return result
}

// snap returns zero for values within snapEpsilon of zero.
func snap(d decimal.Decimal) decimal.Decimal {
	if d.Abs().LessThan(snapEpsilon) {
		return decimal.Zero
	}
	return d
}

// clampZero returns d, or zero when d is negative.
func clampZero(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}
