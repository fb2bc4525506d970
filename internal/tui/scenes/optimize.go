package scenes

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rgehrsitz/herdemi/internal/breakeven"
	"github.com/rgehrsitz/herdemi/internal/tui/components"
	"github.com/rgehrsitz/herdemi/internal/tui/tuistyles"
)

// OptimizeModel shows the break-even point for each loan term.
type OptimizeModel struct {
	result  *breakeven.MultiDimensionalResult
	err     error
	pending bool
}

// NewOptimizeModel creates a new optimize scene model
func NewOptimizeModel() *OptimizeModel {
	return &OptimizeModel{}
}

// SetPending marks a search as running.
func (m *OptimizeModel) SetPending() {
	m.pending = true
}

// SetResult shows a finished search; err is shown instead when set.
func (m *OptimizeModel) SetResult(res *breakeven.MultiDimensionalResult, err error) {
	m.pending = false
	m.result = res
	m.err = err
}

// View renders the optimize scene
func (m *OptimizeModel) View() string {
	switch {
	case m.pending:
		return tuistyles.InfoStyle.Render("Searching for break-even loan terms...")
	case m.err != nil:
		return tuistyles.ErrorStyle.Render("No break-even point found: " + m.err.Error())
	case m.result == nil:
		return "No break-even search yet.\n\nLoad a scenario first (press 's')."
	}

	cards := make([]*components.MetricCard, 0, len(m.result.Results))
	for _, r := range m.result.Results {
		cards = append(cards, components.NewMetricCard(targetLabel(r), optimumValue(r)).
			WithWidth(30).
			WithDescription(fmt.Sprintf("EMI %s • net %s", money(r.Installment), money(r.NetCash))))
	}

	var recs strings.Builder
	for _, r := range m.result.Recommendations {
		recs.WriteString("• " + r + "\n")
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		tuistyles.SectionTitleStyle.Render("Break-even loan terms (no top-ups)"),
		components.MetricGrid(cards, 3),
		"",
		strings.TrimRight(recs.String(), "\n"),
	)
}

func targetLabel(r breakeven.OptimizationResult) string {
	switch r.Request.Target {
	case breakeven.OptimizeRate:
		return "Highest rate"
	case breakeven.OptimizePrincipal:
		return "Smallest loan"
	case breakeven.OptimizeTenure:
		return "Shortest tenure"
	}
	return string(r.Request.Target)
}

func optimumValue(r breakeven.OptimizationResult) string {
	switch {
	case r.OptimalRate != nil:
		return r.OptimalRate.StringFixed(2) + "%"
	case r.OptimalPrincipal != nil:
		return money(*r.OptimalPrincipal)
	case r.OptimalTenure != nil:
		return fmt.Sprintf("%d months", *r.OptimalTenure)
	}
	return "—"
}
