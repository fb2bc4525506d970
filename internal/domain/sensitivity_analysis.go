package domain

import (
	"github.com/shopspring/decimal"
)

// SensitivityParameter represents a parameter to sweep in sensitivity analysis
type SensitivityParameter struct {
	Name        string          `yaml:"name" json:"name"`
	MinValue    decimal.Decimal `yaml:"min_value" json:"minValue"`
	MaxValue    decimal.Decimal `yaml:"max_value" json:"maxValue"`
	Steps       int             `yaml:"steps" json:"steps"`
	BaseValue   decimal.Decimal `yaml:"base_value" json:"baseValue"`
	Unit        string          `yaml:"unit" json:"unit"` // "percent", "rupees", "months", "units"
	Description string          `yaml:"description" json:"description"`
}

// Sweepable parameter names.
const (
	ParamAnnualRate = "annual_rate_percent"
	ParamUnitCount  = "unit_count"
	ParamTenure     = "tenure_months"
	ParamPrincipal  = "principal"
)

// SensitivityMetrics are the headline figures recorded per sweep step.
type SensitivityMetrics struct {
	Installment   decimal.Decimal `json:"installment"`
	TotalInterest decimal.Decimal `json:"totalInterest"`
	TotalLoss     decimal.Decimal `json:"totalLoss"`
	TotalProfit   decimal.Decimal `json:"totalProfit"`
	NetCash       decimal.Decimal `json:"netCash"`
	AssetValue    decimal.Decimal `json:"assetValue"`
	LossMonths    int             `json:"lossMonths"`
}

// SensitivityResult is one step of a parameter sweep.
type SensitivityResult struct {
	ParameterValue decimal.Decimal    `json:"parameterValue"`
	Input          SimulationInput    `json:"input"`
	Metrics        SensitivityMetrics `json:"metrics"`
}

// SensitivitySummary describes how strongly net cash responds to the parameter.
type SensitivitySummary struct {
	Slope           float64          `json:"slope"` // change in net cash per unit of parameter
	Intercept       float64          `json:"intercept"`
	Correlation     float64          `json:"correlation"`
	NetCashStdDev   float64          `json:"netCashStdDev"`
	SwingPercent    float64          `json:"swingPercent"` // (max-min) net cash relative to the base step
	FirstLossFree   *decimal.Decimal `json:"firstLossFree,omitempty"`
	RiskLevel       string           `json:"riskLevel"` // "LOW", "MEDIUM", "HIGH", "CRITICAL"
	Recommendations []string         `json:"recommendations"`
}

// ParameterSensitivityAnalysis represents a complete parameter sensitivity analysis
type ParameterSensitivityAnalysis struct {
	BaseScenarioName string               `json:"baseScenarioName"`
	Parameter        SensitivityParameter `json:"parameter"`
	Results          []SensitivityResult  `json:"results"`
	Summary          SensitivitySummary   `json:"summary"`
}

// Common sensitivity parameters
var (
	AnnualRateParam = SensitivityParameter{
		Name:        ParamAnnualRate,
		MinValue:    decimal.NewFromInt(8),
		MaxValue:    decimal.NewFromInt(24),
		Steps:       9,
		BaseValue:   decimal.NewFromInt(18),
		Unit:        "percent",
		Description: "Annual loan interest rate",
	}

	UnitCountParam = SensitivityParameter{
		Name:        ParamUnitCount,
		MinValue:    decimal.NewFromInt(1),
		MaxValue:    decimal.NewFromInt(10),
		Steps:       10,
		BaseValue:   decimal.NewFromInt(1),
		Unit:        "units",
		Description: "Number of two-buffalo units purchased",
	}

	TenureParam = SensitivityParameter{
		Name:        ParamTenure,
		MinValue:    decimal.NewFromInt(24),
		MaxValue:    decimal.NewFromInt(120),
		Steps:       5,
		BaseValue:   decimal.NewFromInt(60),
		Unit:        "months",
		Description: "Loan tenure",
	}

	PrincipalParam = SensitivityParameter{
		Name:        ParamPrincipal,
		MinValue:    decimal.NewFromInt(350000),
		MaxValue:    decimal.NewFromInt(550000),
		Steps:       5,
		BaseValue:   decimal.NewFromInt(400000),
		Unit:        "rupees",
		Description: "Loan principal",
	}
)

// GetCommonParameters returns a list of common sensitivity parameters
func GetCommonParameters() []SensitivityParameter {
	return []SensitivityParameter{
		AnnualRateParam,
		UnitCountParam,
		TenureParam,
		PrincipalParam,
	}
}

// LookupCommonParameter returns the built-in definition for name.
func LookupCommonParameter(name string) (SensitivityParameter, bool) {
	for _, p := range GetCommonParameters() {
		if p.Name == name {
			return p, true
		}
	}
	return SensitivityParameter{}, false
}

// DetermineRiskLevel determines the risk level from the net cash swing
func (ss *SensitivitySummary) DetermineRiskLevel() string {
	switch {
	case ss.SwingPercent < 5:
		return "LOW"
	case ss.SwingPercent < 15:
		return "MEDIUM"
	case ss.SwingPercent < 30:
		return "HIGH"
	default:
		return "CRITICAL"
	}
}

// GenerateRecommendations generates recommendations based on sensitivity analysis
func (ss *SensitivitySummary) GenerateRecommendations(parameterName string) []string {
	recommendations := []string{}

	switch ss.DetermineRiskLevel() {
	case "LOW":
		recommendations = append(recommendations, "Plan is robust to changes in this parameter")
	case "MEDIUM":
		recommendations = append(recommendations, "Monitor this parameter before committing")
	case "HIGH":
		recommendations = append(recommendations, "Plan is sensitive to this parameter")
		recommendations = append(recommendations, "Stress test with the least favourable value")
	case "CRITICAL":
		recommendations = append(recommendations, "⚠️ Plan is highly sensitive to this parameter")
		recommendations = append(recommendations, "Keep extra working capital in the loan pool")
	}

	if ss.FirstLossFree != nil {
		recommendations = append(recommendations,
			"No out-of-pocket payments from "+parameterName+" = "+ss.FirstLossFree.String())
	}

	switch parameterName {
	case ParamAnnualRate:
		recommendations = append(recommendations, "Compare lender rates; interest dominates early months")
	case ParamTenure:
		recommendations = append(recommendations, "Longer tenures let milk revenue catch up with the EMI")
	case ParamPrincipal:
		recommendations = append(recommendations, "Principal above required capital funds the loan pool")
	}

	return recommendations
}
