package scenes

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/rgehrsitz/herdemi/internal/domain"
	"github.com/rgehrsitz/herdemi/internal/tui/components"
	"github.com/rgehrsitz/herdemi/internal/tui/tuistyles"
)

// ResultsModel shows the headline figures and the cash-flow schedule.
type ResultsModel struct {
	result  *domain.SimulationResult
	table   table.Model
	monthly bool
	width   int
	height  int
}

// NewResultsModel creates a new results scene model
func NewResultsModel() *ResultsModel {
	t := table.New(table.WithFocused(true), table.WithHeight(12))
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(tuistyles.ColorBorder).
		BorderBottom(true).
		Bold(true)
	styles.Selected = styles.Selected.
		Foreground(tuistyles.ColorForeground).
		Background(tuistyles.ColorPrimary)
	t.SetStyles(styles)
	return &ResultsModel{table: t}
}

// SetResult replaces the displayed result.
func (m *ResultsModel) SetResult(res *domain.SimulationResult) {
	m.result = res
	m.rebuild()
}

// Monthly reports whether the monthly schedule is shown instead of years.
func (m *ResultsModel) Monthly() bool {
	return m.monthly
}

// SetSize updates the scene dimensions
func (m *ResultsModel) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.table.SetHeight(max(height-22, 5))
}

var (
	yearlyColumns = []table.Column{
		{Title: "Year", Width: 4},
		{Title: "Months", Width: 7},
		{Title: "EMI", Width: 11},
		{Title: "Revenue", Width: 11},
		{Title: "CPF", Width: 9},
		{Title: "CGF", Width: 9},
		{Title: "From Pool", Width: 11},
		{Title: "Loss", Width: 11},
		{Title: "Profit", Width: 11},
		{Title: "Net Cash", Width: 12},
		{Title: "Pool", Width: 11},
	}
	monthlyColumns = []table.Column{
		{Title: "Month", Width: 5},
		{Title: "EMI", Width: 10},
		{Title: "Interest", Width: 10},
		{Title: "Principal", Width: 10},
		{Title: "Balance", Width: 11},
		{Title: "Revenue", Width: 10},
		{Title: "CPF", Width: 8},
		{Title: "CGF", Width: 8},
		{Title: "Loss", Width: 10},
		{Title: "Profit", Width: 10},
		{Title: "Pool", Width: 11},
	}
)

func (m *ResultsModel) rebuild() {
	if m.result == nil {
		m.table.SetRows(nil)
		return
	}

	// rows are cleared first so old rows are never drawn against new columns
	m.table.SetRows(nil)
	var rows []table.Row
	if m.monthly {
		m.table.SetColumns(monthlyColumns)
		for _, r := range m.result.MonthlyRows {
			rows = append(rows, table.Row{
				strconv.Itoa(r.Month), money(r.Installment), money(r.InterestPortion),
				money(r.PrincipalPortion), money(r.RemainingBalance), money(r.Revenue),
				money(r.CPFCost), money(r.CGFCost), money(r.Loss), money(r.Profit),
				money(r.PoolBalanceAfter),
			})
		}
	} else {
		m.table.SetColumns(yearlyColumns)
		for _, y := range m.result.YearlyRows {
			rows = append(rows, table.Row{
				strconv.Itoa(y.Year), fmt.Sprintf("%d-%d", y.StartMonth, y.EndMonth),
				money(y.Installment), money(y.Revenue), money(y.CPFCost), money(y.CGFCost),
				money(y.DebitFromPool), money(y.Loss), money(y.Profit), money(y.NetCash),
				money(y.PoolBalanceAfter),
			})
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

func money(d decimal.Decimal) string {
	return tuistyles.FormatCurrency(d)
}

// Update handles messages for the results scene
func (m *ResultsModel) Update(msg tea.Msg) (*ResultsModel, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok &&
		key.Matches(keyMsg, key.NewBinding(key.WithKeys("m"))) {
		m.monthly = !m.monthly
		m.rebuild()
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the results scene
func (m *ResultsModel) View() string {
	if m.result == nil {
		return "No results yet.\n\nLoad a scenario (press 's') or edit parameters (press 'p')."
	}
	r := m.result

	lossCard := components.NewMetricCard("Out of Pocket", money(r.Totals.Loss)).
		WithDescription(fmt.Sprintf("%d month(s) need a top-up", r.LossMonths()))
	if r.Totals.Loss.IsZero() {
		lossCard.WithDescription("never needs a top-up")
	}
	netCard := components.NewMetricCard("Net Cash", money(r.Totals.NetCash))
	if first := r.FirstProfitMonth(); first > 0 {
		netCard.WithDescription(fmt.Sprintf("first surplus in month %d", first))
	}

	cards := components.MetricGrid([]*components.MetricCard{
		components.NewMetricCard("Monthly EMI", money(r.Installment)),
		components.NewMetricCard("Total Interest", money(r.Totals.Interest)),
		lossCard,
		netCard,
		components.NewMetricCard("Herd Value", money(r.Totals.AssetValue)).
			WithDescription(fmt.Sprintf("%d calves born per unit", len(r.Lineage.Births))),
		components.NewMetricCard("Final Pool", money(r.FinalPoolBalance())),
	}, 3)

	chart := components.NewBarChart("Net cash by year").WithWidth(18).
		WithFormatter(func(v float64) string { return money(decimal.NewFromFloat(v).Round(0)) })
	for _, y := range r.YearlyRows {
		chart.Add("Y"+strconv.Itoa(y.Year), y.NetCash.InexactFloat64())
	}

	schedule := "Yearly summary"
	if m.monthly {
		schedule = "Monthly schedule"
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		cards,
		tuistyles.SectionTitleStyle.Render(schedule),
		m.table.View(),
		"",
		chart.Render(),
		tuistyles.HintStyle.Render("↑/↓ scroll • m monthly/yearly • ESC back"),
	)
}
