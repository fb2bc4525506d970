package calculation

import (
	"context"
	"errors"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/rgehrsitz/herdemi/internal/domain"
)

// ErrScenarioNotFound is returned when a named scenario is not in the configuration.
var ErrScenarioNotFound = errors.New("scenario not found")

// defaultCacheSize bounds the memoized result set.
const defaultCacheSize = 256

// CalculationEngine orchestrates simulations over configured scenarios.
// Results are memoized by input; cached results must be treated as read-only.
type CalculationEngine struct {
	Logger Logger

	cache *lru.Cache[string, *domain.SimulationResult]
}

// ScenarioOutcome pairs a scenario with its simulation result.
type ScenarioOutcome struct {
	Scenario domain.Scenario          `json:"scenario"`
	Result   *domain.SimulationResult `json:"result"`
}

// ACFOutcome pairs an ACF plan with its schedule.
type ACFOutcome struct {
	Plan   domain.ACFPlan   `json:"plan"`
	Result domain.ACFResult `json:"result"`
}

// NewCalculationEngine creates a new calculation engine
func NewCalculationEngine() *CalculationEngine {
	return NewCalculationEngineWithCacheSize(defaultCacheSize)
}

// NewCalculationEngineWithCacheSize bounds the memoized result set to size
// entries (at least one), evicting the least recently used.
func NewCalculationEngineWithCacheSize(size int) *CalculationEngine {
	cache, _ := lru.New[string, *domain.SimulationResult](max(size, 1))
	return &CalculationEngine{
		Logger: NopLogger{},
		cache:  cache,
	}
}

// SetLogger replaces the engine logger; nil installs a no-op logger.
func (ce *CalculationEngine) SetLogger(l Logger) {
	if l == nil {
		ce.Logger = NopLogger{}
		return
	}
	ce.Logger = l
}

func inputKey(in domain.SimulationInput) string {
	return fmt.Sprintf("%s|%s|%d|%d|%t|%t",
		in.Principal.String(), in.AnnualRatePercent.String(),
		in.TenureMonths, in.UnitCount, in.CPFEnabled, in.CGFEnabled)
}

// Simulate runs (or recalls) the simulation for in.
func (ce *CalculationEngine) Simulate(in domain.SimulationInput) *domain.SimulationResult {
	key := inputKey(in)

	if r, ok := ce.cache.Get(key); ok {
		ce.Logger.Debugf("simulation cache hit: %s", key)
		return r
	}

	res := Simulate(in)
	ce.Logger.Debugf("simulated %s: installment=%s loss=%s profit=%s",
		key, res.Installment.StringFixed(2), res.Totals.Loss.StringFixed(2), res.Totals.Profit.StringFixed(2))

	ce.cache.Add(key, &res)
	return &res
}

// RunScenario simulates a single scenario.
func (ce *CalculationEngine) RunScenario(ctx context.Context, scenario *domain.Scenario) (*domain.SimulationResult, error) {
	if scenario == nil {
		return nil, fmt.Errorf("scenario cannot be nil")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if scenario.TenureMonths < 1 {
		return nil, fmt.Errorf("scenario %s: tenure must be at least 1 month, got %d", scenario.Name, scenario.TenureMonths)
	}
	if scenario.UnitCount < 0 {
		return nil, fmt.Errorf("scenario %s: unit count cannot be negative", scenario.Name)
	}
	ce.Logger.Infof("running scenario %s", scenario.Name)
	return ce.Simulate(scenario.SimulationInput), nil
}

// RunScenarioByName finds and simulates a named scenario.
func (ce *CalculationEngine) RunScenarioByName(ctx context.Context, config *domain.Configuration, name string) (*domain.SimulationResult, error) {
	scenario, ok := config.FindScenario(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrScenarioNotFound, name)
	}
	return ce.RunScenario(ctx, scenario)
}

// RunScenarios simulates every scenario in the configuration, in order.
func (ce *CalculationEngine) RunScenarios(ctx context.Context, config *domain.Configuration) ([]ScenarioOutcome, error) {
	outcomes := make([]ScenarioOutcome, 0, len(config.Scenarios))
	for i := range config.Scenarios {
		res, err := ce.RunScenario(ctx, &config.Scenarios[i])
		if err != nil {
			return nil, fmt.Errorf("failed to run scenario %s: %w", config.Scenarios[i].Name, err)
		}
		outcomes = append(outcomes, ScenarioOutcome{Scenario: config.Scenarios[i], Result: res})
	}
	return outcomes, nil
}

// RunACFPlans builds the schedule of every ACF plan in the configuration.
func (ce *CalculationEngine) RunACFPlans(ctx context.Context, config *domain.Configuration) ([]ACFOutcome, error) {
	outcomes := make([]ACFOutcome, 0, len(config.ACFPlans))
	for _, plan := range config.ACFPlans {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		res, err := GenerateACF(plan.UnitCount, plan.TenureMonths)
		if err != nil {
			return nil, fmt.Errorf("ACF plan %s: %w", plan.Name, err)
		}
		ce.Logger.Infof("ACF plan %s: %d units over %d months", plan.Name, plan.UnitCount, plan.TenureMonths)
		outcomes = append(outcomes, ACFOutcome{Plan: plan, Result: res})
	}
	return outcomes, nil
}
