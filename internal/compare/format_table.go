package compare

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	crore = decimal.NewFromInt(10000000)
	lakh  = decimal.NewFromInt(100000)
	thou  = decimal.NewFromInt(1000)
)

// TableFormatter formats comparison results as a console table
type TableFormatter struct{}

// Format generates a formatted table comparing scenarios
func (tf *TableFormatter) Format(compSet *ComparisonSet) string {
	var sb strings.Builder

	sb.WriteString("BUFFALO UNIT SCENARIO COMPARISON\n")
	sb.WriteString(strings.Repeat("=", 96) + "\n")
	sb.WriteString(fmt.Sprintf("Base Scenario: %s\n", compSet.BaseScenarioName))
	if compSet.ConfigPath != "" {
		sb.WriteString(fmt.Sprintf("Configuration: %s\n", compSet.ConfigPath))
	}
	sb.WriteString("\n")

	nameWidth := 28
	numWidth := 12

	sb.WriteString(fmt.Sprintf("%-*s %*s %*s %*s %*s %*s\n",
		nameWidth, "Scenario",
		numWidth, "EMI",
		numWidth, "Interest",
		numWidth, "Top-ups",
		numWidth, "Net Cash",
		numWidth, "Herd Value"))
	sb.WriteString(strings.Repeat("-", 96) + "\n")

	if base := compSet.BaseResult; base != nil {
		sb.WriteString(tf.formatRow(base, nameWidth, numWidth, true))
	}

	if len(compSet.AlternativeResults) > 0 {
		sb.WriteString(strings.Repeat("-", 96) + "\n")
		for i := range compSet.AlternativeResults {
			sb.WriteString(tf.formatRow(&compSet.AlternativeResults[i], nameWidth, numWidth, false))
		}
	}

	sb.WriteString(strings.Repeat("=", 96) + "\n")

	if len(compSet.AlternativeResults) > 0 {
		sb.WriteString("\nCOMPARISON TO BASE\n")
		sb.WriteString(strings.Repeat("-", 96) + "\n")

		for _, alt := range compSet.AlternativeResults {
			sb.WriteString(fmt.Sprintf("\n%s:\n", alt.ScenarioName))
			if alt.Description != "" {
				sb.WriteString(fmt.Sprintf("  %s\n", alt.Description))
			}

			sb.WriteString(fmt.Sprintf("  Net Cash:         %s₹%s (%s%%)\n",
				tf.deltaSymbol(alt.NetCashDiff),
				tf.formatDecimal(alt.NetCashDiff.Abs()),
				alt.NetCashPctFromBase.StringFixed(1)))

			if !alt.InstallmentDiff.IsZero() {
				// Lower EMI is better
				sb.WriteString(fmt.Sprintf("  EMI:              %s₹%s\n",
					tf.signOf(alt.InstallmentDiff),
					alt.InstallmentDiff.Abs().StringFixed(2)))
			}

			if !alt.LossDiff.IsZero() {
				sb.WriteString(fmt.Sprintf("  Top-ups:          %s₹%s\n",
					tf.signOf(alt.LossDiff),
					tf.formatDecimal(alt.LossDiff.Abs())))
			}

			if alt.LossMonthsDiff != 0 {
				sb.WriteString(fmt.Sprintf("  Top-up Months:    %+d\n", alt.LossMonthsDiff))
			}

			if !alt.AssetValueDiff.IsZero() {
				sb.WriteString(fmt.Sprintf("  Herd Value:       %s₹%s\n",
					tf.signOf(alt.AssetValueDiff),
					tf.formatDecimal(alt.AssetValueDiff.Abs())))
			}
		}
		sb.WriteString("\n")
	}

	if len(compSet.Recommendations) > 0 {
		sb.WriteString("\nRECOMMENDATIONS\n")
		sb.WriteString(strings.Repeat("-", 96) + "\n")
		for _, rec := range compSet.Recommendations {
			sb.WriteString(fmt.Sprintf("• %s\n", rec))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// formatRow formats a single scenario row
func (tf *TableFormatter) formatRow(result *ComparisonResult, nameWidth, numWidth int, isBase bool) string {
	name := result.ScenarioName
	if isBase {
		name += " (base)"
	}

	topUps := "none"
	if result.LossMonths > 0 {
		topUps = "₹" + tf.formatDecimal(result.TotalLoss)
	}

	return fmt.Sprintf("%-*s %*s %*s %*s %*s %*s\n",
		nameWidth, tf.truncate(name, nameWidth),
		numWidth, "₹"+result.Installment.StringFixed(0),
		numWidth, "₹"+tf.formatDecimal(result.TotalInterest),
		numWidth, topUps,
		numWidth, "₹"+tf.formatDecimal(result.NetCash),
		numWidth, "₹"+tf.formatDecimal(result.AssetValue))
}

// formatDecimal formats a decimal in crore, lakh or thousands
func (tf *TableFormatter) formatDecimal(d decimal.Decimal) string {
	switch abs := d.Abs(); {
	case abs.GreaterThanOrEqual(crore):
		return d.Div(crore).StringFixed(2) + "Cr"
	case abs.GreaterThanOrEqual(lakh):
		return d.Div(lakh).StringFixed(2) + "L"
	case abs.GreaterThanOrEqual(thou):
		return d.Div(thou).StringFixed(1) + "K"
	}
	return d.StringFixed(0)
}

// deltaSymbol returns a + or - symbol for deltas
func (tf *TableFormatter) deltaSymbol(delta decimal.Decimal) string {
	if delta.IsPositive() {
		return "+"
	} else if delta.IsNegative() {
		return "-"
	}
	return " "
}

func (tf *TableFormatter) signOf(delta decimal.Decimal) string {
	if delta.IsNegative() {
		return "-"
	}
	return "+"
}

// truncate truncates a string to maxLen runes
func (tf *TableFormatter) truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen-3]) + "..."
}

// FormatCompact creates a compact single-line summary for each scenario
func (tf *TableFormatter) FormatCompact(compSet *ComparisonSet) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Base: %s | ", compSet.BaseScenarioName))

	for i, alt := range compSet.AlternativeResults {
		if i > 0 {
			sb.WriteString(" | ")
		}
		change := "="
		if alt.NetCashDiff.IsPositive() {
			change = fmt.Sprintf("+₹%s", tf.formatDecimal(alt.NetCashDiff))
		} else if alt.NetCashDiff.IsNegative() {
			change = fmt.Sprintf("-₹%s", tf.formatDecimal(alt.NetCashDiff.Abs()))
		}

		sb.WriteString(fmt.Sprintf("%s: %s", alt.ScenarioName, change))
	}

	return sb.String()
}
