package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// View renders the current state of the application
func (m Model) View() string {
	var content string
	switch {
	case m.err != nil:
		content = ErrorStyle.Render(fmt.Sprintf("Error: %s\n\nPress any key to continue...", m.err))
	default:
		content = m.renderScene()
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderTitleBar(),
		lipgloss.NewStyle().Height(max(m.height-4, 1)).Render(content),
		StatusBarStyle.Width(m.width).Render(m.help.View(keys)),
	)
}

func (m Model) renderScene() string {
	switch m.currentScene {
	case SceneHome:
		return m.homeModel.View()
	case SceneScenarios:
		return m.scenariosModel.View()
	case SceneParameters:
		return m.parametersModel.View()
	case SceneResults:
		return m.resultsModel.View()
	case SceneCompare:
		return m.compareModel.View()
	case SceneOptimize:
		return m.optimizeModel.View()
	case SceneACF:
		return m.acfModel.View()
	case SceneHelp:
		return m.renderHelp()
	}
	return "Unknown scene"
}

func (m Model) renderTitleBar() string {
	crumb := m.currentScene.String()
	if m.hasScenario {
		crumb = fmt.Sprintf("%s / %s", crumb, m.current.Name)
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		TitleStyle.Render("HERDEMI - Buffalo Unit EMI Calculator"),
		SubtitleStyle.Render(crumb),
	)
}

func (m Model) renderHelp() string {
	full := m.help
	full.ShowAll = true
	return BorderStyle.Render(full.View(keys) + `

Scenarios    ↑/↓ move, Enter load
Parameters   ↑/↓ select, ←/→ adjust, f CPF, g CGF, x reset
Results      ↑/↓ scroll, m monthly/yearly
ACF          ←/→ units, Tab switch plan

Compare and break-even rerun whenever the parameters change.`)
}
