// Package tuimsg defines the messages scenes send back to the root model.
package tuimsg

import (
	"github.com/rgehrsitz/herdemi/internal/domain"
)

// ScenarioSelectedMsg signals a scenario has been picked from the list.
type ScenarioSelectedMsg struct {
	ScenarioName string
}

// InputChangedMsg carries edited calculator inputs for recalculation.
type InputChangedMsg struct {
	Input domain.SimulationInput
}

// ErrorMsg displays an error to the user
type ErrorMsg struct {
	Err error
}
