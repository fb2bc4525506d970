package components

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/rgehrsitz/herdemi/internal/tui/tuistyles"
)

// MetricCard displays a single headline figure.
type MetricCard struct {
	Label       string
	Value       string
	Trend       *Trend
	Description string
	Width       int
}

// Trend is a change relative to some reference value.
type Trend struct {
	Up         bool
	Favourable bool
	Change     string // e.g. "₹5,234"
}

// NewMetricCard creates a new metric card
func NewMetricCard(label, value string) *MetricCard {
	return &MetricCard{
		Label: label,
		Value: value,
		Width: 24,
	}
}

// WithTrend attaches a change indicator; favourable controls the color.
func (m *MetricCard) WithTrend(up, favourable bool, change string) *MetricCard {
	m.Trend = &Trend{Up: up, Favourable: favourable, Change: change}
	return m
}

// WithDescription adds a subtitle
func (m *MetricCard) WithDescription(desc string) *MetricCard {
	m.Description = desc
	return m
}

// WithWidth sets the card width
func (m *MetricCard) WithWidth(width int) *MetricCard {
	m.Width = width
	return m
}

// Render returns the card inside a rounded border.
func (m *MetricCard) Render() string {
	content := tuistyles.MetricLabelStyle.Render(m.Label) + "\n" +
		tuistyles.MetricValueStyle.Render(m.Value)

	if m.Trend != nil {
		content += "\n" + tuistyles.MetricTrendStyle(m.Trend.Favourable).
			Render(tuistyles.TrendIndicator(m.Trend.Up)+" "+m.Trend.Change)
	}
	if m.Description != "" {
		content += "\n" + tuistyles.HintStyle.Render(m.Description)
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(tuistyles.ColorBorder).
		Padding(0, 1).
		Width(m.Width).
		Render(content)
}

// MetricGrid lays cards out left to right, columns per row.
func MetricGrid(cards []*MetricCard, columns int) string {
	if len(cards) == 0 || columns < 1 {
		return ""
	}

	var rows []string
	var row []string
	for i, card := range cards {
		row = append(row, card.Render())
		if (i+1)%columns == 0 || i == len(cards)-1 {
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
			row = nil
		}
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}
