package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigurationLookups(t *testing.T) {
	cfg := &Configuration{
		Scenarios: []Scenario{{Name: "Baseline"}, {Name: "stretch"}},
		ACFPlans:  []ACFPlan{{Name: "short", UnitCount: 1, TenureMonths: 11}},
	}

	s, ok := cfg.FindScenario("baseline")
	require.True(t, ok)
	assert.Equal(t, "Baseline", s.Name)

	// returned pointer aliases the slice element
	s.Description = "edited"
	assert.Equal(t, "edited", cfg.Scenarios[0].Description)

	_, ok = cfg.FindScenario("missing")
	assert.False(t, ok)

	p, ok := cfg.FindACFPlan("SHORT")
	require.True(t, ok)
	assert.Equal(t, 11, p.TenureMonths)
}

func TestScenarioDeepCopy(t *testing.T) {
	var nilScenario *Scenario
	assert.Nil(t, nilScenario.DeepCopy())

	orig := &Scenario{Name: "a", SimulationInput: SimulationInput{Principal: decimal.NewFromInt(400000), TenureMonths: 60}}
	c := orig.DeepCopy()
	c.TenureMonths = 84
	c.Principal = decimal.NewFromInt(1)
	assert.Equal(t, 60, orig.TenureMonths)
	assert.True(t, orig.Principal.Equal(decimal.NewFromInt(400000)))
}

func TestLineageHelpers(t *testing.T) {
	l := Lineage{Horizon: 60, Births: []Birth{
		{Month: 1, Generation: 1, AgeMonths: 60},
		{Month: 37, Generation: 2, MotherMonth: 1, AgeMonths: 24},
		{Month: 7, Generation: 1, ParentSlot: 1, AgeMonths: 54},
	}}

	assert.Equal(t, []int{60, 24, 54}, l.Ages())
	assert.Equal(t, []int{1, 37, 7}, l.BirthMonths())
	assert.Equal(t, 2, l.CountByGeneration(1))
	assert.Equal(t, 1, l.CountByGeneration(2))
	assert.Zero(t, l.CountByGeneration(3))
}

func TestSimulationResultSummaries(t *testing.T) {
	r := &SimulationResult{
		InitialPool: decimal.NewFromInt(50000),
		MonthlyRows: []MonthlyRow{
			{Month: 1, Loss: decimal.NewFromInt(100), PoolBalanceAfter: decimal.NewFromInt(40000)},
			{Month: 2, Loss: decimal.Zero, PoolBalanceAfter: decimal.NewFromInt(30000)},
			{Month: 3, Profit: decimal.NewFromInt(5), Loss: decimal.NewFromInt(1), PoolBalanceAfter: decimal.NewFromInt(30005)},
		},
	}
	assert.Equal(t, 2, r.LossMonths())
	assert.Equal(t, 3, r.FirstProfitMonth())
	assert.True(t, r.FinalPoolBalance().Equal(decimal.NewFromInt(30005)))

	empty := &SimulationResult{InitialPool: decimal.NewFromInt(7)}
	assert.Zero(t, empty.FirstProfitMonth())
	assert.True(t, empty.FinalPoolBalance().Equal(decimal.NewFromInt(7)))
}

func TestSensitivityRiskLevels(t *testing.T) {
	tests := []struct {
		swing float64
		want  string
	}{
		{0, "LOW"},
		{4.9, "LOW"},
		{5, "MEDIUM"},
		{20, "HIGH"},
		{30, "CRITICAL"},
	}
	for _, tt := range tests {
		s := SensitivitySummary{SwingPercent: tt.swing}
		assert.Equal(t, tt.want, s.DetermineRiskLevel(), "swing %v", tt.swing)
	}

	v := decimal.NewFromInt(12)
	s := SensitivitySummary{SwingPercent: 40, FirstLossFree: &v}
	recs := s.GenerateRecommendations(ParamAnnualRate)
	assert.Contains(t, recs, "No out-of-pocket payments from annual_rate_percent = 12")
	assert.Contains(t, recs, "Keep extra working capital in the loan pool")
}

func TestLookupCommonParameter(t *testing.T) {
	p, ok := LookupCommonParameter(ParamTenure)
	require.True(t, ok)
	assert.Equal(t, "months", p.Unit)

	_, ok = LookupCommonParameter("milk_price")
	assert.False(t, ok)
	assert.Len(t, GetCommonParameters(), 4)
}
