package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rgehrsitz/herdemi/internal/domain"
	"github.com/rgehrsitz/herdemi/internal/tui/tuistyles"
)

// ScenarioCard summarizes one configured scenario's loan terms.
type ScenarioCard struct {
	Scenario   domain.Scenario
	IsSelected bool
	Width      int
}

// NewScenarioCard creates a new scenario card
func NewScenarioCard(s domain.Scenario) *ScenarioCard {
	return &ScenarioCard{Scenario: s, Width: 50}
}

// WithWidth sets the card width
func (s *ScenarioCard) WithWidth(width int) *ScenarioCard {
	s.Width = width
	return s
}

// SetSelected marks the card as selected
func (s *ScenarioCard) SetSelected(selected bool) {
	s.IsSelected = selected
}

// Highlights lists the loan terms shown under the title.
func (s *ScenarioCard) Highlights() []string {
	in := s.Scenario.SimulationInput
	return []string{
		fmt.Sprintf("Loan %s at %s%% for %d months",
			tuistyles.FormatCurrency(in.Principal), in.AnnualRatePercent.String(), in.TenureMonths),
		fmt.Sprintf("%d unit(s) • CPF %s • CGF %s", in.UnitCount, onOff(in.CPFEnabled), onOff(in.CGFEnabled)),
	}
}

// Render returns the card inside a border that highlights selection.
func (s *ScenarioCard) Render() string {
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Bold(true).Foreground(tuistyles.ColorPrimary).Render(s.Scenario.Name))
	b.WriteString("\n")
	if s.Scenario.Description != "" {
		b.WriteString(tuistyles.HintStyle.Render(s.Scenario.Description))
		b.WriteString("\n")
	}
	for _, h := range s.Highlights() {
		b.WriteString("• " + h + "\n")
	}

	border := tuistyles.ColorBorder
	if s.IsSelected {
		border = tuistyles.ColorAccent
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(0, 1).
		Width(s.Width).
		Render(strings.TrimRight(b.String(), "\n"))
}

// RenderCompact renders a single list line.
func (s *ScenarioCard) RenderCompact() string {
	if s.IsSelected {
		return tuistyles.SelectedItemStyle.Render("▶ " + s.Scenario.Name)
	}
	return tuistyles.UnselectedItemStyle.Render("  " + s.Scenario.Name)
}

// ScenarioListCompact renders cards as a one-line-per-scenario list.
func ScenarioListCompact(cards []*ScenarioCard, selected int) string {
	lines := make([]string, len(cards))
	for i, c := range cards {
		c.SetSelected(i == selected)
		lines[i] = c.RenderCompact()
	}
	return strings.Join(lines, "\n")
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
