package breakeven

import (
	"context"
	"testing"

	"github.com/rgehrsitz/herdemi/internal/calculation"
	"github.com/rgehrsitz/herdemi/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scenario(principal int64, rate int64, tenure int, funds bool) *domain.Scenario {
	return &domain.Scenario{
		Name: "base",
		SimulationInput: domain.SimulationInput{
			Principal:         decimal.NewFromInt(principal),
			AnnualRatePercent: decimal.NewFromInt(rate),
			TenureMonths:      tenure,
			UnitCount:         1,
			CPFEnabled:        funds,
			CGFEnabled:        funds,
		},
	}
}

func TestNewSolver(t *testing.T) {
	engine := calculation.NewCalculationEngine()
	solver := NewSolver(engine, DefaultSolverOptions())
	assert.Same(t, engine, solver.CalcEngine)
	assert.Equal(t, 20, solver.Options.GridResolution)

	assert.NotNil(t, NewDefaultSolver(nil).CalcEngine)
}

func TestOptimize_RequestErrors(t *testing.T) {
	solver := NewDefaultSolver(nil)
	ctx := context.Background()

	_, err := solver.Optimize(ctx, OptimizationRequest{Target: OptimizeRate})
	assert.Error(t, err)

	_, err = solver.Optimize(ctx, OptimizationRequest{BaseScenario: scenario(400000, 18, 60, false), Target: "units"})
	assert.Contains(t, err.Error(), "unsupported optimization target")

	_, err = solver.Optimize(ctx, OptimizationRequest{BaseScenario: scenario(400000, 18, 60, false), Target: OptimizeRate, Goal: "fastest"})
	assert.Contains(t, err.Error(), "unsupported optimization goal")

	lo, hi := decimal.NewFromInt(20), decimal.NewFromInt(10)
	_, err = solver.Optimize(ctx, OptimizationRequest{
		BaseScenario: scenario(400000, 18, 60, false),
		Target:       OptimizeRate,
		Constraints:  Constraints{MinRate: &lo, MaxRate: &hi},
	})
	var be *BreakEvenError
	require.ErrorAs(t, err, &be)
	assert.Equal(t, "validate_constraints", be.Operation)
}

func TestOptimizeRate_ZeroLoss(t *testing.T) {
	solver := NewDefaultSolver(nil)
	result, err := solver.Optimize(context.Background(), OptimizationRequest{
		BaseScenario: scenario(400000, 18, 60, false),
		Target:       OptimizeRate,
	})
	require.NoError(t, err)

	require.NotNil(t, result.OptimalRate)
	assert.True(t, result.Success)
	assert.InDelta(t, 21.928, result.OptimalRate.InexactFloat64(), 0.01)
	assert.True(t, result.TotalLoss.IsZero())
	assert.Equal(t, 0, result.LossMonths)
	assert.True(t, result.Scenario.AnnualRatePercent.Equal(*result.OptimalRate))
	assert.Less(t, result.Iterations, 30)
	assert.True(t, result.NetCashDiffToBase.IsNegative(), "higher rate costs net cash")

	// Just above the optimum the investor has to top up.
	above := calculation.Simulate(domain.SimulationInput{
		Principal:         decimal.NewFromInt(400000),
		AnnualRatePercent: result.OptimalRate.Add(decimal.RequireFromString("0.01")),
		TenureMonths:      60,
		UnitCount:         1,
	})
	assert.True(t, above.Totals.Loss.IsPositive())
}

func TestOptimizeRate_Infeasible(t *testing.T) {
	_, err := NewDefaultSolver(nil).Optimize(context.Background(), OptimizationRequest{
		BaseScenario: scenario(400000, 18, 60, true),
		Target:       OptimizeRate,
	})
	assert.ErrorIs(t, err, ErrInfeasible)
}

func TestOptimizeRate_LossFreeEverywhere(t *testing.T) {
	maxRate := decimal.NewFromInt(10)
	result, err := NewDefaultSolver(nil).Optimize(context.Background(), OptimizationRequest{
		BaseScenario: scenario(400000, 18, 60, false),
		Target:       OptimizeRate,
		Constraints:  Constraints{MaxRate: &maxRate},
	})
	require.NoError(t, err)
	assert.True(t, result.OptimalRate.Equal(maxRate))
	assert.Equal(t, 2, result.Iterations)
}

func TestOptimizeRate_IterationLimit(t *testing.T) {
	result, err := NewDefaultSolver(nil).Optimize(context.Background(), OptimizationRequest{
		BaseScenario:  scenario(400000, 18, 60, false),
		Target:        OptimizeRate,
		MaxIterations: 4,
	})
	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Equal(t, "Max iterations (4) reached", result.ConvergenceInfo)
	assert.True(t, result.TotalLoss.IsZero(), "best point so far is loss-free")
}

func TestOptimizePrincipal_ZeroLoss(t *testing.T) {
	solver := NewDefaultSolver(nil)

	t.Run("long tenure with funds", func(t *testing.T) {
		result, err := solver.Optimize(context.Background(), OptimizationRequest{
			BaseScenario: scenario(400000, 18, 120, true),
			Target:       OptimizePrincipal,
		})
		require.NoError(t, err)
		require.NotNil(t, result.OptimalPrincipal)
		assert.True(t, result.Success)
		assert.InDelta(t, 604064, result.OptimalPrincipal.InexactFloat64(), 250)
		assert.True(t, result.TotalLoss.IsZero())
		assert.True(t, result.BaseTotalLoss.IsPositive())
	})

	t.Run("without funds", func(t *testing.T) {
		result, err := solver.Optimize(context.Background(), OptimizationRequest{
			BaseScenario: scenario(400000, 18, 60, false),
			Target:       OptimizePrincipal,
		})
		require.NoError(t, err)
		assert.InDelta(t, 375226, result.OptimalPrincipal.InexactFloat64(), 250)
	})

	t.Run("already loss-free at the minimum", func(t *testing.T) {
		minP := decimal.NewFromInt(400000)
		result, err := solver.Optimize(context.Background(), OptimizationRequest{
			BaseScenario: scenario(400000, 18, 60, false),
			Target:       OptimizePrincipal,
			Constraints:  Constraints{MinPrincipal: &minP},
		})
		require.NoError(t, err)
		assert.True(t, result.OptimalPrincipal.Equal(minP))
		assert.Equal(t, "Minimum principal is already loss-free", result.ConvergenceInfo)
	})

	t.Run("infeasible", func(t *testing.T) {
		_, err := solver.Optimize(context.Background(), OptimizationRequest{
			BaseScenario: scenario(400000, 18, 60, true),
			Target:       OptimizePrincipal,
		})
		assert.ErrorIs(t, err, ErrInfeasible)
	})

	t.Run("no units", func(t *testing.T) {
		base := scenario(400000, 18, 60, true)
		base.UnitCount = 0
		_, err := solver.Optimize(context.Background(), OptimizationRequest{BaseScenario: base, Target: OptimizePrincipal})
		assert.Contains(t, err.Error(), "principal range is empty")
	})
}

func TestOptimizeTenure_ZeroLoss(t *testing.T) {
	solver := NewDefaultSolver(nil)

	tests := []struct {
		name string
		base *domain.Scenario
		want int
	}{
		{"no funds at 18%", scenario(400000, 18, 60, false), 53},
		{"funds at 12%", scenario(400000, 12, 60, true), 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := solver.Optimize(context.Background(), OptimizationRequest{
				BaseScenario: tt.base,
				Target:       OptimizeTenure,
			})
			require.NoError(t, err)
			require.NotNil(t, result.OptimalTenure)
			assert.Equal(t, tt.want, *result.OptimalTenure)
			assert.Equal(t, tt.want, result.Scenario.TenureMonths)
		})
	}

	maxTenure := 24
	_, err := solver.Optimize(context.Background(), OptimizationRequest{
		BaseScenario: scenario(400000, 18, 60, true),
		Target:       OptimizeTenure,
		Constraints:  Constraints{MaxTenure: &maxTenure},
	})
	assert.ErrorIs(t, err, ErrInfeasible)
}

func TestOptimize_MaximizeNetCash(t *testing.T) {
	solver := NewDefaultSolver(nil)
	minRate, maxRate := decimal.NewFromInt(10), decimal.NewFromInt(20)
	result, err := solver.Optimize(context.Background(), OptimizationRequest{
		BaseScenario: scenario(400000, 18, 60, true),
		Target:       OptimizeRate,
		Goal:         GoalMaximizeNetCash,
		Constraints:  Constraints{MinRate: &minRate, MaxRate: &maxRate},
	})
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.True(t, result.OptimalRate.Equal(minRate), "net cash never improves with a higher rate")
	assert.Equal(t, 21, result.Iterations)
}

func TestOptimize_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewDefaultSolver(nil).Optimize(ctx, OptimizationRequest{
		BaseScenario: scenario(400000, 18, 60, false),
		Target:       OptimizeTenure,
	})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLinspace(t *testing.T) {
	got := linspace(decimal.NewFromInt(0), decimal.NewFromInt(10), 4)
	require.Len(t, got, 5)
	assert.Equal(t, "2.5", got[1].String())
	assert.True(t, got[4].Equal(decimal.NewFromInt(10)))

	assert.Len(t, linspace(decimal.NewFromInt(3), decimal.NewFromInt(3), 10), 1)
}

func TestOptimizeMultiDimensional(t *testing.T) {
	solver := NewDefaultSolver(nil)
	md, err := solver.OptimizeAllTargets(context.Background(), scenario(400000, 18, 60, false), Constraints{}, GoalZeroLoss)
	require.NoError(t, err)

	require.Len(t, md.Results, 3)
	require.NotNil(t, md.BestByNetCash)
	require.NotNil(t, md.LowestInstallment)
	assert.Equal(t, OptimizePrincipal, md.BestByNetCash.Request.Target)
	assert.Same(t, md.BestByNetCash, md.LowestInstallment)

	joined := ""
	for _, r := range md.Recommendations {
		joined += r + "\n"
	}
	assert.Contains(t, joined, "The plan needs no top-ups at any rate up to 21.93%")
	assert.Contains(t, joined, "Borrow at least ₹3,75,")
	assert.Contains(t, joined, "Repay over at least 53 months")
	assert.Contains(t, joined, "⭐ Adjusting the principal")
}

func TestOptimizeMultiDimensional_NoneFeasible(t *testing.T) {
	maxTenure := 24
	_, err := NewDefaultSolver(nil).OptimizeMultiDimensional(context.Background(), scenario(400000, 18, 60, true),
		Constraints{MaxTenure: &maxTenure}, []OptimizationGoal{GoalZeroLoss})
	assert.ErrorIs(t, err, ErrInfeasible)
}
