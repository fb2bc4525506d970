package domain

import (
	"strings"
)

// Scenario is a named SimulationInput loaded from a configuration file.
type Scenario struct {
	Name            string `yaml:"name" json:"name" validate:"required"`
	Description     string `yaml:"description,omitempty" json:"description,omitempty"`
	SimulationInput `yaml:",inline" json:"input"`
}

// DeepCopy returns an independent copy of the scenario.
func (s *Scenario) DeepCopy() *Scenario {
	if s == nil {
		return nil
	}
	c := *s
	return &c
}

// LoggingConfig controls the structured logger used by the CLI and API.
type LoggingConfig struct {
	Level  string `yaml:"level" json:"level" validate:"omitempty,oneof=debug info warn error"`
	Pretty bool   `yaml:"pretty" json:"pretty"`
}

// Configuration represents the complete input configuration
type Configuration struct {
	Scenarios []Scenario    `yaml:"scenarios" json:"scenarios" validate:"required,min=1,dive"`
	ACFPlans  []ACFPlan     `yaml:"acf_plans,omitempty" json:"acfPlans,omitempty" validate:"dive"`
	Logging   LoggingConfig `yaml:"logging,omitempty" json:"logging,omitempty"`
}

// FindScenario looks a scenario up by name, case-insensitively.
func (c *Configuration) FindScenario(name string) (*Scenario, bool) {
	for i := range c.Scenarios {
		if strings.EqualFold(c.Scenarios[i].Name, name) {
			return &c.Scenarios[i], true
		}
	}
	return nil, false
}

// FindACFPlan looks an ACF plan up by name, case-insensitively.
func (c *Configuration) FindACFPlan(name string) (*ACFPlan, bool) {
	for i := range c.ACFPlans {
		if strings.EqualFold(c.ACFPlans[i].Name, name) {
			return &c.ACFPlans[i], true
		}
	}
	return nil, false
}
