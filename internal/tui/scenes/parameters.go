package scenes

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/rgehrsitz/herdemi/internal/domain"
	"github.com/rgehrsitz/herdemi/internal/tui/components"
	"github.com/rgehrsitz/herdemi/internal/tui/tuimsg"
	"github.com/rgehrsitz/herdemi/internal/tui/tuistyles"
)

const (
	sliderPrincipal = iota
	sliderRate
	sliderTenure
	sliderUnits
)

// ParametersModel edits the calculator inputs with sliders; every change is
// sent back for recalculation.
type ParametersModel struct {
	original domain.SimulationInput
	input    domain.SimulationInput
	result   *domain.SimulationResult
	sliders  []*components.ParameterSlider
	focused  int
	modified bool
	width    int
	height   int
}

// NewParametersModel creates a new parameters scene model
func NewParametersModel() *ParametersModel {
	return &ParametersModel{}
}

// SetInput loads inputs as the new reset point.
func (m *ParametersModel) SetInput(in domain.SimulationInput) {
	m.original = in
	m.input = in
	m.modified = false
	m.buildSliders()
}

// SetResult updates the live preview.
func (m *ParametersModel) SetResult(res *domain.SimulationResult) {
	m.result = res
}

// Input returns the inputs as currently edited.
func (m *ParametersModel) Input() domain.SimulationInput {
	return m.input
}

// SetSize updates the scene dimensions
func (m *ParametersModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m *ParametersModel) buildSliders() {
	rupees := func(v float64) string { return tuistyles.FormatCurrency(decimal.NewFromFloat(v)) }
	in := m.input
	m.sliders = []*components.ParameterSlider{
		components.NewParameterSlider("Loan Principal", in.Principal.InexactFloat64(), 0, 5000000, 10000).
			WithFormatter(rupees).
			WithDescription("Anything above required capital funds the loan pool"),
		components.NewParameterSlider("Annual Interest Rate", in.AnnualRatePercent.InexactFloat64(), 0, 36, 0.25).
			WithFormatter(func(v float64) string { return fmt.Sprintf("%.2f%%", v) }),
		components.NewParameterSlider("Tenure", float64(in.TenureMonths), 1, 180, 6).
			WithFormatter(func(v float64) string { return fmt.Sprintf("%.0f months", v) }),
		components.NewParameterSlider("Units", float64(in.UnitCount), 0, 20, 1).
			WithFormatter(func(v float64) string { return fmt.Sprintf("%.0f", v) }).
			WithDescription("Each unit is two buffaloes"),
	}
	for _, s := range m.sliders {
		s.WithWidth(40)
	}
	m.focused = min(m.focused, len(m.sliders)-1)
	m.sliders[m.focused].SetFocused(true)
}

// Update handles messages for the parameters scene
func (m *ParametersModel) Update(msg tea.Msg) (*ParametersModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || len(m.sliders) == 0 {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("up", "k"))):
		m.moveFocus(-1)
	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("down", "j"))):
		m.moveFocus(1)
	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("left"))):
		if m.sliders[m.focused].Decrement() {
			return m, m.changed()
		}
	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("right"))):
		if m.sliders[m.focused].Increment() {
			return m, m.changed()
		}
	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("f"))):
		m.input.CPFEnabled = !m.input.CPFEnabled
		return m, m.changed()
	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("g"))):
		m.input.CGFEnabled = !m.input.CGFEnabled
		return m, m.changed()
	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("x"))):
		m.input = m.original
		m.modified = false
		m.buildSliders()
		in := m.input
		return m, func() tea.Msg { return tuimsg.InputChangedMsg{Input: in} }
	}
	return m, nil
}

func (m *ParametersModel) moveFocus(delta int) {
	next := m.focused + delta
	if next < 0 || next >= len(m.sliders) {
		return
	}
	m.sliders[m.focused].SetFocused(false)
	m.focused = next
	m.sliders[m.focused].SetFocused(true)
}

// changed folds slider values into the input and requests a recalculation.
func (m *ParametersModel) changed() tea.Cmd {
	m.input.Principal = decimal.NewFromFloat(m.sliders[sliderPrincipal].Value).Round(0)
	m.input.AnnualRatePercent = decimal.NewFromFloat(m.sliders[sliderRate].Value).Round(2)
	m.input.TenureMonths = int(math.Round(m.sliders[sliderTenure].Value))
	m.input.UnitCount = int(math.Round(m.sliders[sliderUnits].Value))
	m.modified = !sameInput(m.input, m.original)

	in := m.input
	return func() tea.Msg { return tuimsg.InputChangedMsg{Input: in} }
}

// View renders the sliders beside a live preview of the result.
func (m *ParametersModel) View() string {
	if len(m.sliders) == 0 {
		return "No scenario loaded.\n\nPick one from the Scenarios screen (press 's')."
	}

	rendered := make([]string, len(m.sliders))
	for i, s := range m.sliders {
		rendered[i] = s.Render()
	}
	toggles := fmt.Sprintf("CPF insurance: %s    CGF growth fund: %s",
		toggle(m.input.CPFEnabled), toggle(m.input.CGFEnabled))
	left := tuistyles.BorderStyle.Width(50).Render(
		tuistyles.SectionTitleStyle.Render("Edit Parameters") + "\n" +
			strings.Join(rendered, "\n\n") + "\n\n" + toggles)

	content := lipgloss.JoinHorizontal(lipgloss.Top, left, "  ", m.renderPreview())
	if m.modified {
		content += "\n" + tuistyles.InfoStyle.Render("⚠ Modified - press x to reset")
	}
	return content + "\n" +
		tuistyles.HintStyle.Render("↑/↓ select • ←/→ adjust • f CPF • g CGF • x reset • ESC back")
}

func (m *ParametersModel) renderPreview() string {
	if m.result == nil {
		return ""
	}
	r := m.result
	loss := components.NewMetricCard("Out of Pocket", tuistyles.FormatCurrency(r.Totals.Loss)).
		WithDescription(fmt.Sprintf("%d month(s)", r.LossMonths()))
	return components.MetricGrid([]*components.MetricCard{
		components.NewMetricCard("Monthly EMI", tuistyles.FormatCurrency(r.Installment)),
		components.NewMetricCard("Required Capital", tuistyles.FormatCurrency(r.RequiredCapital)),
		loss,
		components.NewMetricCard("Net Cash", tuistyles.FormatCurrency(r.Totals.NetCash)),
		components.NewMetricCard("Herd Value", tuistyles.FormatCurrency(r.Totals.AssetValue)),
	}, 1)
}

func toggle(on bool) string {
	if on {
		return tuistyles.MetricPositiveStyle.Render("on")
	}
	return tuistyles.MetricNegativeStyle.Render("off")
}

func sameInput(a, b domain.SimulationInput) bool {
	return a.Principal.Equal(b.Principal) &&
		a.AnnualRatePercent.Equal(b.AnnualRatePercent) &&
		a.TenureMonths == b.TenureMonths &&
		a.UnitCount == b.UnitCount &&
		a.CPFEnabled == b.CPFEnabled &&
		a.CGFEnabled == b.CGFEnabled
}
