package components

import (
	"fmt"
	"math"
	"strings"

	"github.com/rgehrsitz/herdemi/internal/tui/tuistyles"
)

// ParameterSlider is a bounded numeric input adjusted in fixed steps.
type ParameterSlider struct {
	Label       string
	Value       float64
	Min         float64
	Max         float64
	Step        float64
	Width       int
	IsFocused   bool
	Description string

	// FormatValue renders Value; defaults to two decimals.
	FormatValue func(float64) string
}

// NewParameterSlider creates a slider; value is clamped into [min, max].
func NewParameterSlider(label string, value, min, max, step float64) *ParameterSlider {
	p := &ParameterSlider{
		Label: label,
		Min:   min,
		Max:   max,
		Step:  step,
		Width: 30,
	}
	p.SetValue(value)
	return p
}

// WithFormatter sets how values and range ends are printed.
func (p *ParameterSlider) WithFormatter(f func(float64) string) *ParameterSlider {
	p.FormatValue = f
	return p
}

// WithWidth sets the slider width
func (p *ParameterSlider) WithWidth(width int) *ParameterSlider {
	p.Width = width
	return p
}

// WithDescription adds a description/help text
func (p *ParameterSlider) WithDescription(desc string) *ParameterSlider {
	p.Description = desc
	return p
}

// SetFocused sets the focus state
func (p *ParameterSlider) SetFocused(focused bool) {
	p.IsFocused = focused
}

// Increment moves one step up, stopping at Max.
func (p *ParameterSlider) Increment() bool {
	return p.SetValue(p.Value + p.Step)
}

// Decrement moves one step down, stopping at Min.
func (p *ParameterSlider) Decrement() bool {
	return p.SetValue(p.Value - p.Step)
}

// SetValue clamps value into range and reports whether it changed.
func (p *ParameterSlider) SetValue(value float64) bool {
	v := math.Max(p.Min, math.Min(p.Max, value))
	changed := v != p.Value
	p.Value = v
	return changed
}

// Percentage returns the value as a fraction of the range
func (p *ParameterSlider) Percentage() float64 {
	if p.Max == p.Min {
		return 0
	}
	return (p.Value - p.Min) / (p.Max - p.Min)
}

func (p *ParameterSlider) format(v float64) string {
	if p.FormatValue != nil {
		return p.FormatValue(v)
	}
	return fmt.Sprintf("%.2f", v)
}

// Render returns the styled slider with its range and description.
func (p *ParameterSlider) Render() string {
	var b strings.Builder

	labelStyle := tuistyles.ParameterLabelStyle
	valueStyle := tuistyles.ParameterValueStyle
	if p.IsFocused {
		labelStyle = labelStyle.Foreground(tuistyles.ColorPrimary)
		valueStyle = valueStyle.Foreground(tuistyles.ColorAccent)
	}

	b.WriteString(labelStyle.Render(p.Label))
	b.WriteString("  ")
	b.WriteString(valueStyle.Render(p.format(p.Value)))
	b.WriteString("\n")
	b.WriteString(p.renderBar())
	b.WriteString("\n")
	b.WriteString(tuistyles.HintStyle.Render(fmt.Sprintf("%s  ─  %s", p.format(p.Min), p.format(p.Max))))

	if p.Description != "" {
		b.WriteString("\n")
		b.WriteString(tuistyles.HintStyle.Render(p.Description))
	}
	return b.String()
}

func (p *ParameterSlider) renderBar() string {
	width := max(p.Width, 2)
	filled := int(math.Round(float64(width-1) * p.Percentage()))

	thumb := tuistyles.SliderThumbStyle
	if p.IsFocused {
		thumb = thumb.Foreground(tuistyles.ColorAccent)
	}

	var bar strings.Builder
	bar.WriteString("[")
	if filled > 0 {
		bar.WriteString(thumb.Render(strings.Repeat("━", filled)))
	}
	bar.WriteString(thumb.Render("●"))
	if rest := width - 1 - filled; rest > 0 {
		bar.WriteString(tuistyles.SliderTrackStyle.Render(strings.Repeat("─", rest)))
	}
	bar.WriteString("]")
	return bar.String()
}
