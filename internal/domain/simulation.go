package domain

import (
	"github.com/shopspring/decimal"
)

// SimulationInput is the full set of user-adjustable EMI calculator inputs.
type SimulationInput struct {
	Principal         decimal.Decimal `yaml:"principal" json:"principal" validate:"gte=0"`
	AnnualRatePercent decimal.Decimal `yaml:"annual_rate_percent" json:"annualRatePercent" validate:"gte=0,lte=100"`
	TenureMonths      int             `yaml:"tenure_months" json:"tenureMonths" validate:"min=1,max=600"`
	UnitCount         int             `yaml:"unit_count" json:"unitCount" validate:"min=0,max=10000"`
	CPFEnabled        bool            `yaml:"cpf_enabled" json:"cpfEnabled"`
	CGFEnabled        bool            `yaml:"cgf_enabled" json:"cgfEnabled"`
}

// MonthlyRow is one month of the amortization and herd cash-flow walk.
type MonthlyRow struct {
	Month            int             `json:"month"`
	Installment      decimal.Decimal `json:"installment"`
	InterestPortion  decimal.Decimal `json:"interestPortion"`
	PrincipalPortion decimal.Decimal `json:"principalPortion"`
	RemainingBalance decimal.Decimal `json:"remainingBalance"`

	Revenue decimal.Decimal `json:"revenue"`
	CPFCost decimal.Decimal `json:"cpfCost"`
	CGFCost decimal.Decimal `json:"cgfCost"`

	// Waterfall split per obligation: revenue first, then loan pool, rest unpaid
	InstallmentFromRevenue decimal.Decimal `json:"installmentFromRevenue"`
	InstallmentFromPool    decimal.Decimal `json:"installmentFromPool"`
	InstallmentUnpaid      decimal.Decimal `json:"installmentUnpaid"`
	CPFFromRevenue         decimal.Decimal `json:"cpfFromRevenue"`
	CPFFromPool            decimal.Decimal `json:"cpfFromPool"`
	CPFUnpaid              decimal.Decimal `json:"cpfUnpaid"`
	CGFFromRevenue         decimal.Decimal `json:"cgfFromRevenue"`
	CGFFromPool            decimal.Decimal `json:"cgfFromPool"`
	CGFUnpaid              decimal.Decimal `json:"cgfUnpaid"`

	PoolBalanceAfter decimal.Decimal `json:"poolBalanceAfter"`
	Profit           decimal.Decimal `json:"profit"`
	Loss             decimal.Decimal `json:"loss"`

	TotalObligation decimal.Decimal `json:"totalObligation"`
	DebitFromPool   decimal.Decimal `json:"debitFromPool"`
	NetCash         decimal.Decimal `json:"netCash"`
}

// YearlyRow rolls up to twelve consecutive MonthlyRows. Flow fields are sums,
// RemainingBalance and PoolBalanceAfter are end-of-window snapshots.
type YearlyRow struct {
	Year       int `json:"year"`
	StartMonth int `json:"startMonth"`
	EndMonth   int `json:"endMonth"`

	Installment      decimal.Decimal `json:"installment"`
	InterestPortion  decimal.Decimal `json:"interestPortion"`
	PrincipalPortion decimal.Decimal `json:"principalPortion"`
	Revenue          decimal.Decimal `json:"revenue"`
	CPFCost          decimal.Decimal `json:"cpfCost"`
	CGFCost          decimal.Decimal `json:"cgfCost"`
	Profit           decimal.Decimal `json:"profit"`
	Loss             decimal.Decimal `json:"loss"`
	DebitFromPool    decimal.Decimal `json:"debitFromPool"`
	TotalObligation  decimal.Decimal `json:"totalObligation"`
	NetCash          decimal.Decimal `json:"netCash"`

	RemainingBalance decimal.Decimal `json:"remainingBalance"`
	PoolBalanceAfter decimal.Decimal `json:"poolBalanceAfter"`
}

// Totals are whole-tenure reductions over the monthly rows.
type Totals struct {
	Revenue    decimal.Decimal `json:"revenue"`
	CPF        decimal.Decimal `json:"cpf"`
	CGF        decimal.Decimal `json:"cgf"`
	Profit     decimal.Decimal `json:"profit"`
	Loss       decimal.Decimal `json:"loss"`
	NetCash    decimal.Decimal `json:"netCash"`
	Payment    decimal.Decimal `json:"payment"`
	Interest   decimal.Decimal `json:"interest"`
	Principal  decimal.Decimal `json:"principal"`
	AssetValue decimal.Decimal `json:"assetValue"`
}

// SimulationResult is everything derived from a single SimulationInput.
type SimulationResult struct {
	Input           SimulationInput `json:"input"`
	Installment     decimal.Decimal `json:"installment"`
	RequiredCapital decimal.Decimal `json:"requiredCapital"`
	InitialPool     decimal.Decimal `json:"initialPool"`
	MonthlyRows     []MonthlyRow    `json:"monthlyRows"`
	YearlyRows      []YearlyRow     `json:"yearlyRows"`
	Totals          Totals          `json:"totals"`
	Lineage         Lineage         `json:"lineage"`
}

// LossMonths counts months in which the investor had to pay from pocket.
func (r *SimulationResult) LossMonths() int {
	n := 0
	for _, row := range r.MonthlyRows {
		if row.Loss.IsPositive() {
			n++
		}
	}
	return n
}

// FirstProfitMonth returns the first month with leftover revenue, or 0 if none.
func (r *SimulationResult) FirstProfitMonth() int {
	for _, row := range r.MonthlyRows {
		if row.Profit.IsPositive() {
			return row.Month
		}
	}
	return 0
}

// FinalPoolBalance is the loan pool left after the last month.
func (r *SimulationResult) FinalPoolBalance() decimal.Decimal {
	if len(r.MonthlyRows) == 0 {
		return r.InitialPool
	}
	return r.MonthlyRows[len(r.MonthlyRows)-1].PoolBalanceAfter
}
