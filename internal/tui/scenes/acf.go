package scenes

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/rgehrsitz/herdemi/internal/calculation"
	"github.com/rgehrsitz/herdemi/internal/domain"
	"github.com/rgehrsitz/herdemi/internal/tui/components"
	"github.com/rgehrsitz/herdemi/internal/tui/tuistyles"
)

// ACFModel previews an Affordable Crowd Farming booking.
type ACFModel struct {
	units   *components.ParameterSlider
	tenures []int
	tenure  int // index into tenures
	result  domain.ACFResult
	err     error
}

// NewACFModel starts on one unit over the shortest plan.
func NewACFModel() *ACFModel {
	m := &ACFModel{
		units: components.NewParameterSlider("Units", 1, 1, 50, 1).
			WithFormatter(func(v float64) string { return fmt.Sprintf("%.0f", v) }).
			WithWidth(30),
		tenures: calculation.ACFTenures(),
	}
	m.units.SetFocused(true)
	m.recalculate()
	return m
}

// Result returns the schedule for the current selection.
func (m *ACFModel) Result() domain.ACFResult {
	return m.result
}

func (m *ACFModel) recalculate() {
	m.result, m.err = calculation.GenerateACF(int(m.units.Value), m.tenures[m.tenure])
}

// Update handles messages for the ACF scene
func (m *ACFModel) Update(msg tea.Msg) (*ACFModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("left"))):
		if m.units.Decrement() {
			m.recalculate()
		}
	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("right"))):
		if m.units.Increment() {
			m.recalculate()
		}
	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("tab"))):
		m.tenure = (m.tenure + 1) % len(m.tenures)
		m.recalculate()
	}
	return m, nil
}

// View renders the ACF scene
func (m *ACFModel) View() string {
	if m.err != nil {
		return tuistyles.ErrorStyle.Render(m.err.Error())
	}
	r := m.result

	var plans []string
	for i, t := range m.tenures {
		label := strconv.Itoa(t) + " months"
		if i == m.tenure {
			plans = append(plans, tuistyles.SelectedItemStyle.Render("["+label+"]"))
		} else {
			plans = append(plans, tuistyles.UnselectedItemStyle.Render(" "+label+" "))
		}
	}

	cards := components.MetricGrid([]*components.MetricCard{
		components.NewMetricCard("Monthly Installment", money(r.Installment)).
			WithDescription(money(r.PerUnitInstallment) + " per unit"),
		components.NewMetricCard("Total Investment", money(r.TotalInvestment)),
		components.NewMetricCard("Market Value", money(r.MarketValue)),
		components.NewMetricCard("Discount", money(r.Discount)),
		components.NewMetricCard("Free CPF", money(r.CPFBenefit)),
		components.NewMetricCard("Total Benefit", money(r.TotalBenefit)),
	}, 3)

	chart := components.NewBarChart("Cumulative payments").WithWidth(24).
		WithFormatter(func(v float64) string { return money(decimal.NewFromFloat(v)) })
	for _, row := range r.Schedule {
		chart.Add("M"+strconv.Itoa(row.Month), row.Cumulative.InexactFloat64())
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		tuistyles.SectionTitleStyle.Render("Affordable Crowd Farming"),
		m.units.Render(),
		"",
		"Plan: "+lipgloss.JoinHorizontal(lipgloss.Top, plans...),
		"",
		cards,
		"",
		chart.Render(),
		tuistyles.HintStyle.Render("←/→ units • Tab switch plan • ESC back"),
	)
}
