package scenes

import (
	"fmt"
	"strings"

	"github.com/rgehrsitz/herdemi/internal/calculation"
	"github.com/rgehrsitz/herdemi/internal/domain"
	"github.com/rgehrsitz/herdemi/internal/output"
	"github.com/rgehrsitz/herdemi/internal/tui/tuistyles"
)

// HomeModel is the landing dashboard: what is loaded and how the herd grows.
type HomeModel struct {
	configPath    string
	scenarioCount int
	scenario      string
	input         domain.SimulationInput
	hasInput      bool
}

// NewHomeModel creates a new home scene model
func NewHomeModel(configPath string) *HomeModel {
	return &HomeModel{configPath: configPath}
}

// SetConfig records how many scenarios were loaded.
func (m *HomeModel) SetConfig(cfg *domain.Configuration) {
	if cfg != nil {
		m.scenarioCount = len(cfg.Scenarios)
	}
}

// SetScenario records the active scenario.
func (m *HomeModel) SetScenario(name string, in domain.SimulationInput) {
	m.scenario = name
	m.input = in
	m.hasInput = true
}

// View renders the home scene
func (m *HomeModel) View() string {
	var b strings.Builder
	b.WriteString(tuistyles.SectionTitleStyle.Render("Buffalo Unit EMI Calculator"))
	b.WriteString("\n")

	source := m.configPath
	if source == "" {
		source = "built-in default"
	}
	fmt.Fprintf(&b, "Scenarios: %d loaded from %s\n", m.scenarioCount, source)

	if !m.hasInput {
		b.WriteString("\nLoading...")
		return tuistyles.BorderStyle.Render(b.String())
	}

	fmt.Fprintf(&b, "Active:    %s\n\n", m.scenario)

	lineage := calculation.GenerateLineage(m.input.TenureMonths)
	var tree strings.Builder
	output.WriteLineageTree(&tree, lineage, m.input.UnitCount)
	b.WriteString(tree.String())

	b.WriteString("\n")
	b.WriteString(tuistyles.HintStyle.Render("p edit parameters • r results • c compare • o break-even • a ACF • ? help"))
	return tuistyles.BorderStyle.Render(b.String())
}
