package output

import (
	"time"

	"github.com/rgehrsitz/herdemi/internal/calculation"
	"github.com/rgehrsitz/herdemi/internal/domain"
)

// ScenarioReport is one simulated scenario as rendered by the formatters.
type ScenarioReport struct {
	Name        string                   `json:"name"`
	Description string                   `json:"description,omitempty"`
	Result      *domain.SimulationResult `json:"result"`
}

// ACFReport is one ACF plan as rendered by the formatters.
type ACFReport struct {
	Name   string           `json:"name"`
	Result domain.ACFResult `json:"result"`
}

// Report is the input to every Formatter.
type Report struct {
	Title       string           `json:"title"`
	GeneratedAt time.Time        `json:"generatedAt"`
	Scenarios   []ScenarioReport `json:"scenarios"`
	ACFPlans    []ACFReport      `json:"acfPlans,omitempty"`
	Assumptions []string         `json:"assumptions,omitempty"`

	// ShowMonthly adds the month-by-month schedule to text outputs.
	ShowMonthly bool `json:"-"`
}

// NewReport assembles a report from engine outcomes.
func NewReport(scenarios []calculation.ScenarioOutcome, plans []calculation.ACFOutcome) *Report {
	r := &Report{
		Title:       "Buffalo Unit EMI Analysis",
		GeneratedAt: time.Now(),
		Assumptions: DefaultAssumptions,
	}
	for _, s := range scenarios {
		r.Scenarios = append(r.Scenarios, ScenarioReport{
			Name:        s.Scenario.Name,
			Description: s.Scenario.Description,
			Result:      s.Result,
		})
	}
	for _, p := range plans {
		r.ACFPlans = append(r.ACFPlans, ACFReport{Name: p.Plan.Name, Result: p.Result})
	}
	return r
}

// SingleResultReport wraps one unnamed simulation result.
func SingleResultReport(name string, res *domain.SimulationResult) *Report {
	return &Report{
		Title:       "Buffalo Unit EMI Analysis",
		GeneratedAt: time.Now(),
		Scenarios:   []ScenarioReport{{Name: name, Result: res}},
		Assumptions: DefaultAssumptions,
	}
}
