package compare

import (
	"fmt"

	"github.com/rgehrsitz/herdemi/internal/calculation"
	"github.com/rgehrsitz/herdemi/internal/domain"
	"github.com/rgehrsitz/herdemi/internal/output"
	"github.com/shopspring/decimal"
)

// ComparisonResult represents a single scenario comparison with calculated metrics
type ComparisonResult struct {
	ScenarioName string                   `json:"scenarioName"`
	Description  string                   `json:"description"`
	Scenario     domain.Scenario          `json:"scenario"`
	Result       *domain.SimulationResult `json:"-"`

	// Key Metrics
	Installment   decimal.Decimal `json:"installment"`
	TotalInterest decimal.Decimal `json:"totalInterest"`
	TotalLoss     decimal.Decimal `json:"totalLoss"` // paid out of pocket
	TotalProfit   decimal.Decimal `json:"totalProfit"`
	NetCash       decimal.Decimal `json:"netCash"`
	AssetValue    decimal.Decimal `json:"assetValue"`
	FinalPool     decimal.Decimal `json:"finalPool"`
	LossMonths    int             `json:"lossMonths"`

	// Comparison to Base
	InstallmentDiff    decimal.Decimal `json:"installmentDiff"`
	InterestDiff       decimal.Decimal `json:"interestDiff"`
	LossDiff           decimal.Decimal `json:"lossDiff"`
	NetCashDiff        decimal.Decimal `json:"netCashDiff"`
	NetCashPctFromBase decimal.Decimal `json:"netCashPctFromBase"`
	AssetValueDiff     decimal.Decimal `json:"assetValueDiff"`
	LossMonthsDiff     int             `json:"lossMonthsDiff"`
}

// ComparisonSet represents a collection of scenario comparisons
type ComparisonSet struct {
	BaseScenarioName   string             `json:"baseScenarioName"`
	BaseResult         *ComparisonResult  `json:"baseResult"`
	AlternativeResults []ComparisonResult `json:"alternativeResults"`
	Recommendations    []string           `json:"recommendations"`
	ConfigPath         string             `json:"configPath"`
}

// ToReport converts the set into a report for the general output formatters,
// base first.
func (cs *ComparisonSet) ToReport() *output.Report {
	outcomes := make([]calculation.ScenarioOutcome, 0, len(cs.AlternativeResults)+1)
	if cs.BaseResult != nil && cs.BaseResult.Result != nil {
		outcomes = append(outcomes, calculation.ScenarioOutcome{Scenario: cs.BaseResult.Scenario, Result: cs.BaseResult.Result})
	}
	for _, alt := range cs.AlternativeResults {
		if alt.Result == nil {
			continue
		}
		s := alt.Scenario
		if alt.Description != "" {
			s.Description = alt.Description
		}
		outcomes = append(outcomes, calculation.ScenarioOutcome{Scenario: s, Result: alt.Result})
	}
	report := output.NewReport(outcomes, nil)
	report.Title = "Buffalo Unit Scenario Comparison"
	return report
}

// MetricsCalculator extracts key metrics from simulation results
type MetricsCalculator struct{}

// NewMetricsCalculator creates a new metrics calculator
func NewMetricsCalculator() *MetricsCalculator {
	return &MetricsCalculator{}
}

// CalculateMetrics computes all comparison metrics for a simulated scenario
func (mc *MetricsCalculator) CalculateMetrics(scenario *domain.Scenario, res *domain.SimulationResult) ComparisonResult {
	return ComparisonResult{
		ScenarioName:  scenario.Name,
		Description:   scenario.Description,
		Scenario:      *scenario,
		Result:        res,
		Installment:   res.Installment,
		TotalInterest: res.Totals.Interest,
		TotalLoss:     res.Totals.Loss,
		TotalProfit:   res.Totals.Profit,
		NetCash:       res.Totals.NetCash,
		AssetValue:    res.Totals.AssetValue,
		FinalPool:     res.FinalPoolBalance(),
		LossMonths:    res.LossMonths(),
	}
}

// CalculateComparison computes comparison metrics between a scenario and a base
func (mc *MetricsCalculator) CalculateComparison(scenario, base ComparisonResult) ComparisonResult {
	scenario.InstallmentDiff = scenario.Installment.Sub(base.Installment)
	scenario.InterestDiff = scenario.TotalInterest.Sub(base.TotalInterest)
	scenario.LossDiff = scenario.TotalLoss.Sub(base.TotalLoss)
	scenario.NetCashDiff = scenario.NetCash.Sub(base.NetCash)
	scenario.AssetValueDiff = scenario.AssetValue.Sub(base.AssetValue)
	scenario.LossMonthsDiff = scenario.LossMonths - base.LossMonths

	if !base.NetCash.IsZero() {
		scenario.NetCashPctFromBase = scenario.NetCashDiff.
			Div(base.NetCash.Abs()).
			Mul(decimal.NewFromInt(100))
	}

	return scenario
}

// GenerateRecommendations creates recommendations based on comparison results
func GenerateRecommendations(compSet *ComparisonSet) []string {
	recommendations := []string{}

	if compSet.BaseResult == nil || len(compSet.AlternativeResults) == 0 {
		return recommendations
	}
	base := compSet.BaseResult

	// Best net cash
	best := base
	for i := range compSet.AlternativeResults {
		alt := &compSet.AlternativeResults[i]
		if alt.NetCash.GreaterThan(best.NetCash) {
			best = alt
		}
	}
	if best != base {
		recommendations = append(recommendations,
			"Best Cash Flow: "+best.ScenarioName+" ends "+output.FormatINR(best.NetCash.Sub(base.NetCash))+
				" better than the base scenario")
	}

	// Least out of pocket
	leastLoss := base
	for i := range compSet.AlternativeResults {
		alt := &compSet.AlternativeResults[i]
		if alt.TotalLoss.LessThan(leastLoss.TotalLoss) {
			leastLoss = alt
		}
	}
	if leastLoss != base {
		msg := "Least Out-of-Pocket: " + leastLoss.ScenarioName + " saves " +
			output.FormatINR(base.TotalLoss.Sub(leastLoss.TotalLoss))
		if leastLoss.LossMonths == 0 {
			msg += " and never needs a top-up"
		} else {
			msg += fmt.Sprintf(" (%d months need a top-up)", leastLoss.LossMonths)
		}
		recommendations = append(recommendations, msg)
	}

	// Lowest interest
	lowestInterest := base
	for i := range compSet.AlternativeResults {
		alt := &compSet.AlternativeResults[i]
		if alt.TotalInterest.LessThan(lowestInterest.TotalInterest) {
			lowestInterest = alt
		}
	}
	if lowestInterest != base {
		recommendations = append(recommendations,
			"Lowest Interest: "+lowestInterest.ScenarioName+" saves "+
				output.FormatINR(base.TotalInterest.Sub(lowestInterest.TotalInterest))+" in interest")
	}

	return recommendations
}
