package breakeven

import (
	"context"
	"fmt"

	"github.com/rgehrsitz/herdemi/internal/domain"
	"github.com/rgehrsitz/herdemi/internal/output"
)

// OptimizeMultiDimensional runs optimization across every target and compares results
func (s *Solver) OptimizeMultiDimensional(
	ctx context.Context,
	baseScenario *domain.Scenario,
	constraints Constraints,
	goals []OptimizationGoal,
) (*MultiDimensionalResult, error) {

	if err := constraints.Validate(); err != nil {
		return nil, err
	}

	targets := []OptimizationTarget{
		OptimizeRate,
		OptimizePrincipal,
		OptimizeTenure,
	}

	var results []OptimizationResult

	for _, target := range targets {
		for _, goal := range goals {
			req := OptimizationRequest{
				BaseScenario:  baseScenario,
				Target:        target,
				Goal:          goal,
				Constraints:   constraints,
				MaxIterations: s.Options.MaxIterations,
			}

			result, err := s.Optimize(ctx, req)
			if err != nil {
				if ctx.Err() != nil {
					return nil, ctx.Err()
				}
				// Infeasible targets are skipped; the others still apply
				s.CalcEngine.Logger.Debugf("break-even %s/%s: %v", target, goal, err)
				continue
			}

			if result != nil && result.Success {
				results = append(results, *result)
			}
		}
	}

	if len(results) == 0 {
		return nil, &BreakEvenError{
			Operation: "optimize_multi_dimensional",
			Message:   "no successful optimizations found",
			Cause:     ErrInfeasible,
		}
	}

	mdResult := &MultiDimensionalResult{
		Results: results,
	}

	for i := range results {
		if mdResult.BestByNetCash == nil ||
			results[i].NetCash.GreaterThan(mdResult.BestByNetCash.NetCash) {
			mdResult.BestByNetCash = &results[i]
		}
	}

	for i := range results {
		if mdResult.LowestInstallment == nil ||
			results[i].Installment.LessThan(mdResult.LowestInstallment.Installment) {
			mdResult.LowestInstallment = &results[i]
		}
	}

	mdResult.Recommendations = s.generateMultiDimensionalRecommendations(mdResult)

	return mdResult, nil
}

// describeOptimum renders the optimized parameter of a result, e.g. "rate 21.93%".
func describeOptimum(r *OptimizationResult) string {
	switch {
	case r.OptimalRate != nil:
		return fmt.Sprintf("rate %s%%", r.OptimalRate.StringFixed(2))
	case r.OptimalPrincipal != nil:
		return "principal " + output.FormatINR(*r.OptimalPrincipal)
	case r.OptimalTenure != nil:
		return fmt.Sprintf("tenure %d months", *r.OptimalTenure)
	}
	return string(r.Request.Target)
}

// generateMultiDimensionalRecommendations creates recommendations from multi-dimensional results
func (s *Solver) generateMultiDimensionalRecommendations(result *MultiDimensionalResult) []string {
	var recommendations []string

	for i := range result.Results {
		r := &result.Results[i]
		if r.Request.Goal != GoalZeroLoss {
			continue
		}
		switch r.Request.Target {
		case OptimizeRate:
			recommendations = append(recommendations,
				fmt.Sprintf("The plan needs no top-ups at any rate up to %s%%", r.OptimalRate.StringFixed(2)))
		case OptimizePrincipal:
			recommendations = append(recommendations,
				"Borrow at least "+output.FormatINR(*r.OptimalPrincipal)+" to avoid top-ups")
		case OptimizeTenure:
			recommendations = append(recommendations,
				fmt.Sprintf("Repay over at least %d months to avoid top-ups", *r.OptimalTenure))
		}
	}

	if result.BestByNetCash != nil {
		recommendations = append(recommendations,
			fmt.Sprintf("Best net cash: %s (%s)",
				describeOptimum(result.BestByNetCash),
				output.FormatINR(result.BestByNetCash.NetCash)))
	}

	if result.LowestInstallment != nil {
		recommendations = append(recommendations,
			fmt.Sprintf("Lowest EMI: %s (%s per month)",
				describeOptimum(result.LowestInstallment),
				output.FormatINRPrecise(result.LowestInstallment.Installment)))
	}

	if result.BestByNetCash != nil && result.BestByNetCash == result.LowestInstallment {
		recommendations = append(recommendations,
			fmt.Sprintf("⭐ Adjusting the %s gives both the lowest EMI AND the best net cash",
				result.BestByNetCash.Request.Target))
	}

	return recommendations
}

// OptimizeAllTargets is a convenience method to optimize all targets with a single goal
func (s *Solver) OptimizeAllTargets(
	ctx context.Context,
	baseScenario *domain.Scenario,
	constraints Constraints,
	goal OptimizationGoal,
) (*MultiDimensionalResult, error) {
	return s.OptimizeMultiDimensional(ctx, baseScenario, constraints, []OptimizationGoal{goal})
}
