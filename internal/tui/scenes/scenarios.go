package scenes

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rgehrsitz/herdemi/internal/domain"
	"github.com/rgehrsitz/herdemi/internal/tui/components"
	"github.com/rgehrsitz/herdemi/internal/tui/tuimsg"
	"github.com/rgehrsitz/herdemi/internal/tui/tuistyles"
)

// ScenariosModel lists the configured scenarios.
type ScenariosModel struct {
	scenarios     []domain.Scenario
	cards         []*components.ScenarioCard
	selectedIndex int
	width         int
	height        int
}

// NewScenariosModel creates a new scenarios scene model
func NewScenariosModel() *ScenariosModel {
	return &ScenariosModel{}
}

// SetScenarios replaces the listed scenarios.
func (m *ScenariosModel) SetScenarios(scenarios []domain.Scenario) {
	m.scenarios = scenarios
	m.cards = make([]*components.ScenarioCard, len(scenarios))
	for i, s := range scenarios {
		m.cards[i] = components.NewScenarioCard(s).WithWidth(56)
	}
	if m.selectedIndex >= len(m.scenarios) {
		m.selectedIndex = 0
	}
}

// SetSize updates the scene dimensions
func (m *ScenariosModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// SelectedScenario returns the highlighted scenario name, or "".
func (m *ScenariosModel) SelectedScenario() string {
	if m.selectedIndex >= 0 && m.selectedIndex < len(m.scenarios) {
		return m.scenarios[m.selectedIndex].Name
	}
	return ""
}

// Update handles messages for the scenarios scene
func (m *ScenariosModel) Update(msg tea.Msg) (*ScenariosModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("up", "k"))):
		if m.selectedIndex > 0 {
			m.selectedIndex--
		}
	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("down", "j"))):
		if m.selectedIndex < len(m.scenarios)-1 {
			m.selectedIndex++
		}
	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("g"))):
		m.selectedIndex = 0
	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("G"))):
		m.selectedIndex = max(len(m.scenarios)-1, 0)
	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("enter"))):
		name := m.SelectedScenario()
		if name == "" {
			return m, nil
		}
		return m, func() tea.Msg { return tuimsg.ScenarioSelectedMsg{ScenarioName: name} }
	}
	return m, nil
}

// View renders the list beside the highlighted scenario's card.
func (m *ScenariosModel) View() string {
	if len(m.scenarios) == 0 {
		return "No scenarios loaded.\n\nStart herdemi-tui with a scenarios file to browse them."
	}

	list := tuistyles.BorderStyle.Width(32).Render(
		tuistyles.SectionTitleStyle.Render("Scenarios") + "\n" +
			components.ScenarioListCompact(m.cards, m.selectedIndex))

	detail := m.cards[m.selectedIndex].Render() + "\n" +
		tuistyles.HintStyle.Render("Press Enter to load this scenario")

	return lipgloss.JoinHorizontal(lipgloss.Top, list, "  ", detail) + "\n\n" +
		tuistyles.HintStyle.Render("↑/k up • ↓/j down • Enter select • g top • G bottom • ESC back")
}
