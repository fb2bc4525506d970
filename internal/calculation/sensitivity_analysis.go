package calculation

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/rgehrsitz/herdemi/internal/domain"
	"github.com/shopspring/decimal"
	"gonum.org/v1/gonum/stat"
)

// ErrParameterOutOfRange is returned when a swept value leaves the input's valid domain.
var ErrParameterOutOfRange = errors.New("parameter value out of range")

// Input bounds, matching the configuration validation tags.
var maxRatePercent = decimal.NewFromInt(100)

const (
	maxTenureMonths = 600
	maxUnitCount    = 10000
)

// SensitivityAnalyzer performs parameter sweep analysis
type SensitivityAnalyzer struct {
	calculationEngine *CalculationEngine
}

// NewSensitivityAnalyzer creates a sensitivity analyzer; a nil engine gets a fresh one.
func NewSensitivityAnalyzer(engine *CalculationEngine) *SensitivityAnalyzer {
	if engine == nil {
		engine = NewCalculationEngine()
	}
	return &SensitivityAnalyzer{calculationEngine: engine}
}

// AnalyzeSingleParameter sweeps one input across its range, holding the rest
// of the base scenario fixed.
func (sa *SensitivityAnalyzer) AnalyzeSingleParameter(
	ctx context.Context,
	config *domain.Configuration,
	parameter domain.SensitivityParameter,
	baseScenarioName string,
) (*domain.ParameterSensitivityAnalysis, error) {
	baseScenario, ok := config.FindScenario(baseScenarioName)
	if !ok {
		return nil, fmt.Errorf("failed to get base scenario: %w: %s", ErrScenarioNotFound, baseScenarioName)
	}

	values := sa.generateParameterValues(parameter)
	results := make([]domain.SensitivityResult, 0, len(values))

	for _, value := range values {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		in, err := applyParameter(baseScenario.SimulationInput, parameter.Name, value)
		if err != nil {
			return nil, err
		}
		if err := checkSweepInput(in); err != nil {
			return nil, fmt.Errorf("%s=%s: %w", parameter.Name, value.String(), err)
		}
		res := sa.calculationEngine.Simulate(in)
		results = append(results, domain.SensitivityResult{
			ParameterValue: value,
			Input:          in,
			Metrics:        metricsOf(res),
		})
	}

	return &domain.ParameterSensitivityAnalysis{
		BaseScenarioName: baseScenario.Name,
		Parameter:        parameter,
		Results:          results,
		Summary:          sa.calculateSensitivitySummary(results, parameter),
	}, nil
}

// generateParameterValues generates evenly spaced values for a parameter sweep
func (sa *SensitivityAnalyzer) generateParameterValues(param domain.SensitivityParameter) []decimal.Decimal {
	if param.Steps <= 1 {
		return []decimal.Decimal{param.BaseValue}
	}

	values := make([]decimal.Decimal, 0, param.Steps)
	stepSize := param.MaxValue.Sub(param.MinValue).Div(decimal.NewFromInt(int64(param.Steps - 1)))
	for i := 0; i < param.Steps; i++ {
		values = append(values, param.MinValue.Add(stepSize.Mul(decimal.NewFromInt(int64(i)))))
	}
	return values
}

// applyParameter returns a copy of in with the named parameter replaced.
// Integer inputs are rounded to the nearest whole value.
func applyParameter(in domain.SimulationInput, name string, value decimal.Decimal) (domain.SimulationInput, error) {
	switch name {
	case domain.ParamAnnualRate:
		in.AnnualRatePercent = value
	case domain.ParamPrincipal:
		in.Principal = value
	case domain.ParamUnitCount:
		in.UnitCount = int(value.Round(0).IntPart())
	case domain.ParamTenure:
		in.TenureMonths = int(value.Round(0).IntPart())
	default:
		return in, fmt.Errorf("unknown sensitivity parameter: %s", name)
	}
	return in, nil
}

// checkSweepInput rejects inputs the configuration layer would refuse.
func checkSweepInput(in domain.SimulationInput) error {
	switch {
	case in.Principal.IsNegative():
		return fmt.Errorf("%w: principal cannot be negative", ErrParameterOutOfRange)
	case in.AnnualRatePercent.IsNegative(), in.AnnualRatePercent.GreaterThan(maxRatePercent):
		return fmt.Errorf("%w: annual rate must be within 0-100 percent", ErrParameterOutOfRange)
	case in.TenureMonths < 1, in.TenureMonths > maxTenureMonths:
		return fmt.Errorf("%w: tenure must be within 1-%d months", ErrParameterOutOfRange, maxTenureMonths)
	case in.UnitCount < 0, in.UnitCount > maxUnitCount:
		return fmt.Errorf("%w: unit count must be within 0-%d", ErrParameterOutOfRange, maxUnitCount)
	}
	return nil
}

func metricsOf(res *domain.SimulationResult) domain.SensitivityMetrics {
	return domain.SensitivityMetrics{
		Installment:   res.Installment,
		TotalInterest: res.Totals.Interest,
		TotalLoss:     res.Totals.Loss,
		TotalProfit:   res.Totals.Profit,
		NetCash:       res.Totals.NetCash,
		AssetValue:    res.Totals.AssetValue,
		LossMonths:    res.LossMonths(),
	}
}

func (sa *SensitivityAnalyzer) calculateSensitivitySummary(results []domain.SensitivityResult, parameter domain.SensitivityParameter) domain.SensitivitySummary {
	var summary domain.SensitivitySummary
	if len(results) == 0 {
		return summary
	}

	xs := make([]float64, len(results))
	ys := make([]float64, len(results))
	minY, maxY := math.Inf(1), math.Inf(-1)
	baseIdx := 0
	for i, r := range results {
		xs[i] = r.ParameterValue.InexactFloat64()
		ys[i] = r.Metrics.NetCash.InexactFloat64()
		minY = math.Min(minY, ys[i])
		maxY = math.Max(maxY, ys[i])
		if r.ParameterValue.Sub(parameter.BaseValue).Abs().LessThan(results[baseIdx].ParameterValue.Sub(parameter.BaseValue).Abs()) {
			baseIdx = i
		}
		if summary.FirstLossFree == nil && r.Metrics.TotalLoss.IsZero() {
			v := r.ParameterValue
			summary.FirstLossFree = &v
		}
	}

	if len(results) > 1 {
		summary.Intercept, summary.Slope = stat.LinearRegression(xs, ys, nil, false)
		summary.NetCashStdDev = stat.StdDev(ys, nil)
		if summary.NetCashStdDev > 0 && stat.StdDev(xs, nil) > 0 {
			summary.Correlation = stat.Correlation(xs, ys, nil)
		}
	}
	summary.Intercept = finiteOrZero(summary.Intercept)
	summary.Slope = finiteOrZero(summary.Slope)

	reference := math.Abs(ys[baseIdx])
	if reference == 0 {
		reference = math.Max(math.Abs(minY), math.Abs(maxY))
	}
	if reference > 0 {
		summary.SwingPercent = (maxY - minY) / reference * 100
	}

	summary.RiskLevel = summary.DetermineRiskLevel()
	summary.Recommendations = summary.GenerateRecommendations(parameter.Name)
	return summary
}

func finiteOrZero(f float64) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}
