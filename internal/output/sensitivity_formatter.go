package output

import (
	"bytes"
	"fmt"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/rgehrsitz/herdemi/internal/domain"
	"github.com/shopspring/decimal"
)

// SensitivityFormatter defines a formatter for sensitivity analysis
type SensitivityFormatter interface {
	FormatSensitivityAnalysis(analysis *domain.ParameterSensitivityAnalysis) (string, error)
	Name() string
}

// GetSensitivityFormatter returns the sensitivity formatter for name, defaulting to console.
func GetSensitivityFormatter(name string) SensitivityFormatter {
	if strings.EqualFold(name, "json") {
		return SensitivityJSONFormatter{}
	}
	return SensitivityConsoleFormatter{}
}

// SensitivityConsoleFormatter formats sensitivity analysis output for console
type SensitivityConsoleFormatter struct{}

func (scf SensitivityConsoleFormatter) Name() string { return "console" }

func (scf SensitivityConsoleFormatter) FormatSensitivityAnalysis(analysis *domain.ParameterSensitivityAnalysis) (string, error) {
	if analysis == nil || len(analysis.Results) == 0 {
		return "", fmt.Errorf("no results in analysis")
	}
	var buf bytes.Buffer
	param := analysis.Parameter

	fmt.Fprintf(&buf, "SENSITIVITY ANALYSIS: %s\n", strings.ToUpper(strings.ReplaceAll(param.Name, "_", " ")))
	fmt.Fprintf(&buf, "=================================================================\n")
	fmt.Fprintf(&buf, "Base Scenario: %s\n", analysis.BaseScenarioName)
	fmt.Fprintf(&buf, "Base Case: %s = %s\n", param.Name, formatParamValue(param, param.BaseValue))
	fmt.Fprintf(&buf, "Range: %s to %s (%d steps)\n",
		formatParamValue(param, param.MinValue), formatParamValue(param, param.MaxValue), param.Steps)
	if param.Description != "" {
		fmt.Fprintf(&buf, "Description: %s\n", param.Description)
	}
	fmt.Fprintln(&buf)

	fmt.Fprintf(&buf, "%-16s %12s %14s %14s %14s %14s %6s\n",
		"Value", "EMI", "Interest", "Profit", "Out of Pocket", "Net Cash", "Loss M")
	fmt.Fprintln(&buf, strings.Repeat("-", 96))
	for _, r := range analysis.Results {
		label := formatParamValue(param, r.ParameterValue)
		if r.ParameterValue.Equal(param.BaseValue) {
			label += " ← BASE"
		}
		m := r.Metrics
		fmt.Fprintf(&buf, "%-16s %12s %14s %14s %14s %14s %6d\n",
			label, FormatINR(m.Installment), FormatINR(m.TotalInterest), FormatINR(m.TotalProfit),
			FormatINR(m.TotalLoss), FormatINR(m.NetCash), m.LossMonths)
	}
	fmt.Fprintln(&buf)

	s := analysis.Summary
	fmt.Fprintln(&buf, "SENSITIVITY:")
	fmt.Fprintf(&buf, "  Net cash per unit change: %s\n", FormatINR(decimal.NewFromFloat(s.Slope)))
	fmt.Fprintf(&buf, "  Correlation:              %.3f\n", s.Correlation)
	fmt.Fprintf(&buf, "  Net cash std deviation:   %s\n", FormatINR(decimal.NewFromFloat(s.NetCashStdDev)))
	fmt.Fprintf(&buf, "  Swing vs base:            %.1f%%\n", s.SwingPercent)
	if s.FirstLossFree != nil {
		fmt.Fprintf(&buf, "  First loss-free value:    %s\n", formatParamValue(param, *s.FirstLossFree))
	}
	fmt.Fprintln(&buf)

	riskEmoji := ""
	switch s.RiskLevel {
	case "LOW":
		riskEmoji = "✅"
	case "MEDIUM":
		riskEmoji = "⚠️"
	case "HIGH":
		riskEmoji = "🔴"
	case "CRITICAL":
		riskEmoji = "🚨"
	}
	fmt.Fprintf(&buf, "RISK LEVEL: %s %s\n", riskEmoji, s.RiskLevel)
	fmt.Fprintln(&buf)

	fmt.Fprintln(&buf, "RECOMMENDATIONS:")
	for _, rec := range s.Recommendations {
		fmt.Fprintf(&buf, "  • %s\n", rec)
	}
	return buf.String(), nil
}

func formatParamValue(param domain.SensitivityParameter, v decimal.Decimal) string {
	switch param.Unit {
	case "percent":
		return v.StringFixed(2) + "%"
	case "rupees":
		return FormatINR(v)
	case "months":
		return v.Round(0).String() + " mo"
	default:
		return v.Round(2).String()
	}
}

// SensitivityJSONFormatter serializes the analysis as JSON.
type SensitivityJSONFormatter struct{}

func (SensitivityJSONFormatter) Name() string { return "json" }

func (SensitivityJSONFormatter) FormatSensitivityAnalysis(analysis *domain.ParameterSensitivityAnalysis) (string, error) {
	data, err := json.MarshalIndent(analysis, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data) + "\n", nil
}
