package scenes

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/rgehrsitz/herdemi/internal/compare"
	"github.com/rgehrsitz/herdemi/internal/tui/tuistyles"
)

// CompareModel shows the current scenario against every built-in template.
type CompareModel struct {
	set     *compare.ComparisonSet
	table   table.Model
	pending bool
}

// NewCompareModel creates a new compare scene model
func NewCompareModel() *CompareModel {
	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "Scenario", Width: 26},
			{Title: "EMI", Width: 11},
			{Title: "Interest", Width: 12},
			{Title: "Out of Pocket", Width: 13},
			{Title: "Net Cash", Width: 13},
			{Title: "Δ Net Cash", Width: 13},
			{Title: "Top-ups", Width: 7},
		}),
		table.WithFocused(true),
		table.WithHeight(14),
	)
	return &CompareModel{table: t}
}

// SetPending marks a comparison as running.
func (m *CompareModel) SetPending() {
	m.pending = true
}

// SetComparison shows a finished comparison.
func (m *CompareModel) SetComparison(set *compare.ComparisonSet) {
	m.pending = false
	m.set = set
	if set == nil || set.BaseResult == nil {
		m.table.SetRows(nil)
		return
	}

	rows := []table.Row{compareRow(*set.BaseResult, "—")}
	for _, alt := range set.AlternativeResults {
		rows = append(rows, compareRow(alt, signedMoney(alt.NetCashDiff)))
	}
	m.table.SetRows(rows)
}

func compareRow(r compare.ComparisonResult, delta string) table.Row {
	return table.Row{
		r.ScenarioName,
		money(r.Installment),
		money(r.TotalInterest),
		money(r.TotalLoss),
		money(r.NetCash),
		delta,
		fmt.Sprintf("%d", r.LossMonths),
	}
}

func signedMoney(d decimal.Decimal) string {
	if d.IsPositive() {
		return "+" + money(d)
	}
	return money(d)
}

// Update handles messages for the compare scene
func (m *CompareModel) Update(msg tea.Msg) (*CompareModel, tea.Cmd) {
	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the compare scene
func (m *CompareModel) View() string {
	if m.pending {
		return tuistyles.InfoStyle.Render("Comparing against the built-in templates...")
	}
	if m.set == nil {
		return "No comparison yet.\n\nLoad a scenario first (press 's')."
	}

	var recs strings.Builder
	for _, r := range m.set.Recommendations {
		recs.WriteString("• " + r + "\n")
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		tuistyles.SectionTitleStyle.Render("Compared with "+m.set.BaseScenarioName),
		m.table.View(),
		"",
		tuistyles.SectionTitleStyle.Render("Recommendations"),
		strings.TrimRight(recs.String(), "\n"),
		tuistyles.HintStyle.Render("↑/↓ scroll • ESC back"),
	)
}
