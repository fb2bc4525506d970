package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rgehrsitz/herdemi/internal/domain"
	"github.com/rgehrsitz/herdemi/internal/tui/tuimsg"
)

// Update handles all messages and updates the model state
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.scenariosModel.SetSize(msg.Width, msg.Height)
		m.parametersModel.SetSize(msg.Width, msg.Height)
		m.resultsModel.SetSize(msg.Width, msg.Height)
		return m, nil

	case NavigateMsg:
		return m.navigate(msg.Scene)

	case tuimsg.ErrorMsg:
		m.err = msg.Err
		return m, nil

	case ConfigLoadedMsg:
		m.config = msg.Config
		m.homeModel.SetConfig(msg.Config)
		m.scenariosModel.SetScenarios(msg.Config.Scenarios)
		if len(msg.Config.Scenarios) == 0 {
			return m, nil
		}
		return m.loadScenario(msg.Config.Scenarios[0])

	case tuimsg.ScenarioSelectedMsg:
		if m.config == nil {
			return m, nil
		}
		s, ok := m.config.FindScenario(msg.ScenarioName)
		if !ok {
			m.err = fmt.Errorf("scenario %s not found", msg.ScenarioName)
			return m, nil
		}
		var cmd tea.Cmd
		m, cmd = m.loadScenario(*s)
		m.previousScene = m.currentScene
		m.currentScene = SceneResults
		return m, cmd

	case tuimsg.InputChangedMsg:
		m.current.SimulationInput = msg.Input
		return m.recalculate()

	case CalculationCompleteMsg:
		if msg.Seq != m.calcSeq {
			return m, nil
		}
		m.result = msg.Result
		m.parametersModel.SetResult(msg.Result)
		m.resultsModel.SetResult(msg.Result)
		return m, nil

	case ComparisonCompleteMsg:
		if msg.Seq != m.calcSeq {
			return m, nil
		}
		if msg.Err != nil {
			m.compareModel.SetComparison(nil)
			m.err = msg.Err
			return m, nil
		}
		m.compareModel.SetComparison(msg.Set)
		return m, nil

	case OptimizationCompleteMsg:
		if msg.Seq != m.calcSeq {
			return m, nil
		}
		m.optimizeModel.SetResult(msg.Result, msg.Err)
		return m, nil
	}

	return m.updateCurrentScene(msg)
}

func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, keys.Quit) {
		return m, tea.Quit
	}
	// any key dismisses an error
	if m.err != nil {
		m.err = nil
		return m, nil
	}

	if key.Matches(msg, keys.Back) {
		if m.currentScene == SceneHome {
			return m, nil
		}
		target := SceneHome
		if m.previousScene != m.currentScene {
			target = m.previousScene
		}
		return m.navigate(target)
	}

	for _, nk := range keys.navigation() {
		if key.Matches(msg, nk.binding) {
			if m.currentScene == nk.scene {
				return m, nil
			}
			return m.navigate(nk.scene)
		}
	}

	return m.updateCurrentScene(msg)
}

// navigate switches scenes and starts any comparison or break-even search
// whose inputs have changed since it last ran.
func (m Model) navigate(scene Scene) (Model, tea.Cmd) {
	m.previousScene = m.currentScene
	m.currentScene = scene

	if !m.hasScenario {
		return m, nil
	}
	switch {
	case scene == SceneCompare && m.compareStale:
		m.compareStale = false
		m.compareModel.SetPending()
		return m, compareCmd(m.calcEngine, m.calcSeq, m.current)
	case scene == SceneOptimize && m.optimizeStale:
		m.optimizeStale = false
		m.optimizeModel.SetPending()
		return m, optimizeCmd(m.calcEngine, m.calcSeq, m.current)
	}
	return m, nil
}

func (m Model) loadScenario(s domain.Scenario) (Model, tea.Cmd) {
	m.current = s
	m.hasScenario = true
	m.parametersModel.SetInput(s.SimulationInput)
	return m.recalculate()
}

func (m Model) recalculate() (Model, tea.Cmd) {
	m.calcSeq++
	m.compareStale = true
	m.optimizeStale = true
	m.homeModel.SetScenario(m.current.Name, m.current.SimulationInput)
	return m, calculateCmd(m.calcEngine, m.calcSeq, m.current.SimulationInput)
}

func (m Model) updateCurrentScene(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.currentScene {
	case SceneScenarios:
		m.scenariosModel, cmd = m.scenariosModel.Update(msg)
	case SceneParameters:
		m.parametersModel, cmd = m.parametersModel.Update(msg)
	case SceneResults:
		m.resultsModel, cmd = m.resultsModel.Update(msg)
	case SceneCompare:
		m.compareModel, cmd = m.compareModel.Update(msg)
	case SceneACF:
		m.acfModel, cmd = m.acfModel.Update(msg)
	}
	return m, cmd
}
