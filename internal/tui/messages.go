package tui

import (
	"github.com/rgehrsitz/herdemi/internal/breakeven"
	"github.com/rgehrsitz/herdemi/internal/compare"
	"github.com/rgehrsitz/herdemi/internal/domain"
)

// Scene represents different screens in the TUI
type Scene int

const (
	SceneHome Scene = iota
	SceneScenarios
	SceneParameters
	SceneResults
	SceneCompare
	SceneOptimize
	SceneACF
	SceneHelp
)

func (s Scene) String() string {
	switch s {
	case SceneHome:
		return "Home"
	case SceneScenarios:
		return "Scenarios"
	case SceneParameters:
		return "Parameters"
	case SceneResults:
		return "Results"
	case SceneCompare:
		return "Compare"
	case SceneOptimize:
		return "Break-even"
	case SceneACF:
		return "ACF"
	case SceneHelp:
		return "Help"
	default:
		return "Unknown"
	}
}

// NavigateMsg switches to a different scene
type NavigateMsg struct {
	Scene Scene
}

// ConfigLoadedMsg signals configuration has been loaded
type ConfigLoadedMsg struct {
	Config *domain.Configuration
}

// CalculationCompleteMsg carries a fresh simulation of the active inputs.
// Results from superseded requests are dropped by Seq.
type CalculationCompleteMsg struct {
	Seq    int
	Input  domain.SimulationInput
	Result *domain.SimulationResult
}

// ComparisonCompleteMsg signals a comparison has finished
type ComparisonCompleteMsg struct {
	Seq int
	Set *compare.ComparisonSet
	Err error
}

// OptimizationCompleteMsg signals a break-even search has finished
type OptimizationCompleteMsg struct {
	Seq    int
	Result *breakeven.MultiDimensionalResult
	Err    error
}
