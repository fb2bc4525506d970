package domain

import (
	"github.com/shopspring/decimal"
)

// ACFPlan is a named Affordable Crowd Farming booking.
type ACFPlan struct {
	Name         string `yaml:"name" json:"name" validate:"required"`
	UnitCount    int    `yaml:"unit_count" json:"unitCount" validate:"min=1,max=10000"`
	TenureMonths int    `yaml:"tenure_months" json:"tenureMonths" validate:"oneof=11 30"`
}

// ACFRow is one month of the cumulative ACF payment schedule.
type ACFRow struct {
	Month       int             `json:"month"`
	Installment decimal.Decimal `json:"installment"`
	Cumulative  decimal.Decimal `json:"cumulative"`
}

// ACFResult is the ACF schedule plus the benefit derivations.
type ACFResult struct {
	UnitCount          int             `json:"unitCount"`
	TenureMonths       int             `json:"tenureMonths"`
	PerUnitInstallment decimal.Decimal `json:"perUnitInstallment"`
	Installment        decimal.Decimal `json:"installment"`
	Schedule           []ACFRow        `json:"schedule"`
	TotalInvestment    decimal.Decimal `json:"totalInvestment"`
	MarketValue        decimal.Decimal `json:"marketValue"`
	Discount           decimal.Decimal `json:"discount"`
	CPFBenefit         decimal.Decimal `json:"cpfBenefit"`
	TotalBenefit       decimal.Decimal `json:"totalBenefit"`
}
