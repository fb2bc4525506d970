package calculation

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/rgehrsitz/herdemi/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestLogger records messages for assertions.
type TestLogger struct {
	messages []string
}

func (l *TestLogger) Debugf(format string, args ...any) {
	l.messages = append(l.messages, "DEBUG: "+fmt.Sprintf(format, args...))
}
func (l *TestLogger) Infof(format string, args ...any) {
	l.messages = append(l.messages, "INFO: "+fmt.Sprintf(format, args...))
}
func (l *TestLogger) Warnf(format string, args ...any) {
	l.messages = append(l.messages, "WARN: "+fmt.Sprintf(format, args...))
}
func (l *TestLogger) Errorf(format string, args ...any) {
	l.messages = append(l.messages, "ERROR: "+fmt.Sprintf(format, args...))
}

func testConfiguration() *domain.Configuration {
	return &domain.Configuration{
		Scenarios: []domain.Scenario{
			{Name: "baseline", SimulationInput: referenceInput(60)},
			{Name: "no-funds", SimulationInput: domain.SimulationInput{
				Principal:         decimal.NewFromInt(700000),
				AnnualRatePercent: decimal.NewFromInt(12),
				TenureMonths:      36,
				UnitCount:         2,
			}},
		},
		ACFPlans: []domain.ACFPlan{
			{Name: "short", UnitCount: 2, TenureMonths: 11},
			{Name: "long", UnitCount: 1, TenureMonths: 30},
		},
	}
}

func TestNewCalculationEngine(t *testing.T) {
	engine := NewCalculationEngine()

	assert.NotNil(t, engine, "Should create engine")
	assert.NotNil(t, engine.Logger, "Should initialize logger")
	assert.IsType(t, NopLogger{}, engine.Logger)
}

func TestCalculationEngine_SetLogger(t *testing.T) {
	engine := NewCalculationEngine()

	customLogger := &TestLogger{}
	engine.SetLogger(customLogger)
	assert.Equal(t, customLogger, engine.Logger, "Should set custom logger")

	engine.SetLogger(nil)
	assert.NotNil(t, engine.Logger, "Should not be nil")
	assert.IsType(t, NopLogger{}, engine.Logger, "Should be no-op logger")
}

func TestCalculationEngine_SimulateCaches(t *testing.T) {
	engine := NewCalculationEngine()
	logger := &TestLogger{}
	engine.SetLogger(logger)

	first := engine.Simulate(referenceInput(60))
	second := engine.Simulate(referenceInput(60))

	assert.Same(t, first, second, "equal inputs share a memoized result")
	assert.Contains(t, logger.messages[len(logger.messages)-1], "cache hit")

	other := referenceInput(60)
	other.CGFEnabled = false
	assert.NotSame(t, first, engine.Simulate(other))
}

func TestCalculationEngine_CacheBounded(t *testing.T) {
	engine := NewCalculationEngineWithCacheSize(2)

	first := engine.Simulate(referenceInput(1))
	for tenure := 2; tenure <= 5; tenure++ {
		engine.Simulate(referenceInput(tenure))
	}
	assert.Equal(t, 2, engine.cache.Len())

	// the oldest entry was evicted, so this is a fresh result
	assert.NotSame(t, first, engine.Simulate(referenceInput(1)))
	assert.Same(t, engine.Simulate(referenceInput(5)), engine.Simulate(referenceInput(5)))
}

func TestCalculationEngine_RunScenarioByName(t *testing.T) {
	engine := NewCalculationEngine()
	config := testConfiguration()

	res, err := engine.RunScenarioByName(context.Background(), config, "BASELINE")
	require.NoError(t, err)
	assert.Len(t, res.MonthlyRows, 60)

	_, err = engine.RunScenarioByName(context.Background(), config, "missing")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrScenarioNotFound))
}

func TestCalculationEngine_RunScenario_Invalid(t *testing.T) {
	engine := NewCalculationEngine()

	_, err := engine.RunScenario(context.Background(), nil)
	assert.Error(t, err)

	bad := &domain.Scenario{Name: "bad", SimulationInput: referenceInput(0)}
	_, err = engine.RunScenario(context.Background(), bad)
	assert.ErrorContains(t, err, "tenure must be at least 1 month")

	neg := &domain.Scenario{Name: "neg", SimulationInput: referenceInput(12)}
	neg.UnitCount = -1
	_, err = engine.RunScenario(context.Background(), neg)
	assert.ErrorContains(t, err, "unit count cannot be negative")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = engine.RunScenario(ctx, &domain.Scenario{Name: "ok", SimulationInput: referenceInput(12)})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCalculationEngine_RunScenarios(t *testing.T) {
	engine := NewCalculationEngine()
	outcomes, err := engine.RunScenarios(context.Background(), testConfiguration())
	require.NoError(t, err)

	require.Len(t, outcomes, 2)
	assert.Equal(t, "baseline", outcomes[0].Scenario.Name)
	assert.Equal(t, "no-funds", outcomes[1].Scenario.Name)
	assert.True(t, outcomes[1].Result.Totals.CPF.IsZero())
	assert.Len(t, outcomes[1].Result.MonthlyRows, 36)
}

func TestCalculationEngine_RunACFPlans(t *testing.T) {
	engine := NewCalculationEngine()
	outcomes, err := engine.RunACFPlans(context.Background(), testConfiguration())
	require.NoError(t, err)

	require.Len(t, outcomes, 2)
	assert.True(t, outcomes[0].Result.TotalInvestment.Equal(decimal.NewFromInt(660000)))
	assert.True(t, outcomes[1].Result.TotalInvestment.Equal(decimal.NewFromInt(300000)))

	config := testConfiguration()
	config.ACFPlans = append(config.ACFPlans, domain.ACFPlan{Name: "odd", UnitCount: 1, TenureMonths: 18})
	_, err = engine.RunACFPlans(context.Background(), config)
	assert.ErrorIs(t, err, ErrUnsupportedACFTenure)
}
