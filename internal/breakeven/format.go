package breakeven

import (
	"fmt"
	"strings"

	"github.com/goccy/go-json"
	"github.com/rgehrsitz/herdemi/internal/output"
	"github.com/shopspring/decimal"
)

// TableFormatter formats optimization results as a console table
type TableFormatter struct{}

// Format generates a formatted table for optimization result
func (tf *TableFormatter) Format(result *OptimizationResult) string {
	var sb strings.Builder

	sb.WriteString("BREAK-EVEN RESULTS\n")
	sb.WriteString(strings.Repeat("=", 80) + "\n")

	sb.WriteString(fmt.Sprintf("Base Scenario:       %s\n", result.Scenario.Name))
	sb.WriteString(fmt.Sprintf("Optimization Target: %s\n", result.Request.Target))
	sb.WriteString(fmt.Sprintf("Optimization Goal:   %s\n", result.Request.Goal))
	sb.WriteString(fmt.Sprintf("Status:              %s\n", tf.formatStatus(result.Success)))
	sb.WriteString(fmt.Sprintf("Iterations:          %d\n", result.Iterations))
	if result.ConvergenceInfo != "" {
		sb.WriteString(fmt.Sprintf("Convergence:         %s\n", result.ConvergenceInfo))
	}
	sb.WriteString("\n")

	sb.WriteString("OPTIMAL PARAMETERS\n")
	sb.WriteString(strings.Repeat("-", 80) + "\n")
	if result.OptimalRate != nil {
		sb.WriteString(fmt.Sprintf("Annual Rate:         %s%%\n", result.OptimalRate.StringFixed(3)))
	}
	if result.OptimalPrincipal != nil {
		sb.WriteString(fmt.Sprintf("Principal:           %s\n", output.FormatINR(*result.OptimalPrincipal)))
	}
	if result.OptimalTenure != nil {
		sb.WriteString(fmt.Sprintf("Tenure:              %d months\n", *result.OptimalTenure))
	}
	sb.WriteString("\n")

	sb.WriteString("PROJECTED RESULTS\n")
	sb.WriteString(strings.Repeat("-", 80) + "\n")
	sb.WriteString(fmt.Sprintf("Monthly EMI:         %s\n", output.FormatINRPrecise(result.Installment)))
	sb.WriteString(fmt.Sprintf("Out of Pocket:       %s (%d months)\n", output.FormatINR(result.TotalLoss), result.LossMonths))
	sb.WriteString(fmt.Sprintf("Net Cash:            %s\n", output.FormatINR(result.NetCash)))
	sb.WriteString(fmt.Sprintf("Herd Value:          %s\n", output.FormatINR(result.AssetValue)))
	sb.WriteString("\n")

	sb.WriteString("COMPARISON TO BASE SCENARIO\n")
	sb.WriteString(strings.Repeat("-", 80) + "\n")
	sb.WriteString(fmt.Sprintf("Base Out of Pocket:  %s\n", output.FormatINR(result.BaseTotalLoss)))
	sb.WriteString(fmt.Sprintf("Net Cash Change:     %s%s\n",
		tf.deltaSymbol(result.NetCashDiffToBase), output.FormatINR(result.NetCashDiffToBase.Abs())))
	sb.WriteString("\n")

	return sb.String()
}

// FormatMultiDimensional formats results from multiple optimizations
func (tf *TableFormatter) FormatMultiDimensional(result *MultiDimensionalResult) string {
	var sb strings.Builder

	sb.WriteString("MULTI-DIMENSIONAL BREAK-EVEN RESULTS\n")
	sb.WriteString(strings.Repeat("=", 80) + "\n\n")

	sb.WriteString("SUMMARY OF ALL OPTIMIZATIONS\n")
	sb.WriteString(strings.Repeat("-", 80) + "\n")
	sb.WriteString(fmt.Sprintf("%-14s %-18s %-20s %12s %12s\n",
		"Target", "Goal", "Optimum", "EMI", "Net Cash"))
	sb.WriteString(strings.Repeat("-", 80) + "\n")

	for i := range result.Results {
		res := &result.Results[i]
		sb.WriteString(fmt.Sprintf("%-14s %-18s %-20s %12s %12s\n",
			tf.truncate(string(res.Request.Target), 14),
			tf.truncate(string(res.Request.Goal), 18),
			tf.truncate(describeOptimum(res), 20),
			"₹"+res.Installment.StringFixed(0),
			"₹"+tf.formatShort(res.NetCash)))
	}
	sb.WriteString("\n")

	sb.WriteString("BEST SCENARIOS\n")
	sb.WriteString(strings.Repeat("-", 80) + "\n")
	if result.BestByNetCash != nil {
		sb.WriteString(fmt.Sprintf("Best Net Cash:   %s (%s)\n",
			describeOptimum(result.BestByNetCash),
			output.FormatINR(result.BestByNetCash.NetCash)))
	}
	if result.LowestInstallment != nil {
		sb.WriteString(fmt.Sprintf("Lowest EMI:      %s (%s)\n",
			describeOptimum(result.LowestInstallment),
			output.FormatINRPrecise(result.LowestInstallment.Installment)))
	}
	sb.WriteString("\n")

	if len(result.Recommendations) > 0 {
		sb.WriteString("RECOMMENDATIONS\n")
		sb.WriteString(strings.Repeat("-", 80) + "\n")
		for _, rec := range result.Recommendations {
			sb.WriteString(fmt.Sprintf("• %s\n", rec))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// JSONFormatter formats results as JSON
type JSONFormatter struct {
	Pretty bool
}

// Format generates JSON output
func (jf *JSONFormatter) Format(result *OptimizationResult) (string, error) {
	return jf.marshal(result)
}

// FormatMultiDimensional formats multi-dimensional results as JSON
func (jf *JSONFormatter) FormatMultiDimensional(result *MultiDimensionalResult) (string, error) {
	return jf.marshal(result)
}

func (jf *JSONFormatter) marshal(v any) (string, error) {
	var data []byte
	var err error

	if jf.Pretty {
		data, err = json.MarshalIndent(v, "", "  ")
	} else {
		data, err = json.Marshal(v)
	}

	if err != nil {
		return "", err
	}

	return string(data), nil
}

// Helper methods

func (tf *TableFormatter) formatStatus(success bool) string {
	if success {
		return "✓ Converged"
	}
	return "⚠ Did not converge"
}

func (tf *TableFormatter) formatShort(d decimal.Decimal) string {
	switch abs := d.Abs(); {
	case abs.GreaterThanOrEqual(decimal.NewFromInt(10000000)):
		return d.Div(decimal.NewFromInt(10000000)).StringFixed(2) + "Cr"
	case abs.GreaterThanOrEqual(decimal.NewFromInt(100000)):
		return d.Div(decimal.NewFromInt(100000)).StringFixed(2) + "L"
	case abs.GreaterThanOrEqual(decimal.NewFromInt(1000)):
		return d.Div(decimal.NewFromInt(1000)).StringFixed(1) + "K"
	}
	return d.StringFixed(0)
}

func (tf *TableFormatter) deltaSymbol(delta decimal.Decimal) string {
	if delta.IsPositive() {
		return "+"
	} else if delta.IsNegative() {
		return "-"
	}
	return ""
}

func (tf *TableFormatter) truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen-3]) + "..."
}
