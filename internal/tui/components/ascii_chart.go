package components

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rgehrsitz/herdemi/internal/tui/tuistyles"
)

// BarChart draws one horizontal bar per labelled value. Negative values
// extend left of the axis, positive values to the right.
type BarChart struct {
	Title  string
	Labels []string
	Values []float64
	Width  int // columns available to bars on each side of the axis

	FormatValue func(float64) string
}

// NewBarChart creates an empty chart.
func NewBarChart(title string) *BarChart {
	return &BarChart{Title: title, Width: 20}
}

// Add appends a bar.
func (c *BarChart) Add(label string, value float64) *BarChart {
	c.Labels = append(c.Labels, label)
	c.Values = append(c.Values, value)
	return c
}

// WithWidth sets the half-width of the chart.
func (c *BarChart) WithWidth(width int) *BarChart {
	c.Width = width
	return c
}

// WithFormatter sets how values are printed next to the bars.
func (c *BarChart) WithFormatter(f func(float64) string) *BarChart {
	c.FormatValue = f
	return c
}

// BarLength scales v against the largest absolute value.
func (c *BarChart) BarLength(v float64) int {
	var peak float64
	for _, x := range c.Values {
		peak = math.Max(peak, math.Abs(x))
	}
	if peak == 0 {
		return 0
	}
	return int(math.Round(math.Abs(v) / peak * float64(c.Width)))
}

// Render returns the chart, or a placeholder when there is no data.
func (c *BarChart) Render() string {
	if len(c.Values) == 0 {
		return tuistyles.InfoStyle.Render("No data to display")
	}

	labelWidth := 0
	for _, l := range c.Labels {
		labelWidth = max(labelWidth, lipgloss.Width(l))
	}

	var b strings.Builder
	if c.Title != "" {
		b.WriteString(tuistyles.SectionTitleStyle.Render(c.Title))
		b.WriteString("\n")
	}

	for i, v := range c.Values {
		n := c.BarLength(v)
		left := strings.Repeat(" ", c.Width)
		right := ""
		if v < 0 {
			left = strings.Repeat(" ", c.Width-n) + tuistyles.MetricNegativeStyle.Render(strings.Repeat("█", n))
		} else {
			right = tuistyles.MetricPositiveStyle.Render(strings.Repeat("█", n))
		}
		fmt.Fprintf(&b, "%-*s %s│%s %s\n", labelWidth, c.Labels[i], left, right, c.format(v))
	}
	return strings.TrimRight(b.String(), "\n")
}

func (c *BarChart) format(v float64) string {
	if c.FormatValue != nil {
		return c.FormatValue(v)
	}
	return fmt.Sprintf("%.0f", v)
}
