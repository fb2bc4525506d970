package compare

import (
	"encoding/csv"
	"strconv"
	"strings"
)

// CSVFormatter formats comparison results as CSV
type CSVFormatter struct{}

// Format generates CSV output for comparison results
func (cf *CSVFormatter) Format(compSet *ComparisonSet) (string, error) {
	var sb strings.Builder
	writer := csv.NewWriter(&sb)

	header := []string{
		"Scenario",
		"Type",
		"Installment",
		"Total Interest",
		"Out of Pocket",
		"Profit",
		"Net Cash",
		"Asset Value",
		"Final Pool",
		"Loss Months",
		"Installment Diff",
		"Interest Diff",
		"Out of Pocket Diff",
		"Net Cash Diff",
		"Net Cash % Change",
		"Asset Value Diff",
		"Loss Months Diff",
	}
	if err := writer.Write(header); err != nil {
		return "", err
	}

	if compSet.BaseResult != nil {
		if err := writer.Write(cf.formatRow(compSet.BaseResult, "base")); err != nil {
			return "", err
		}
	}

	for i := range compSet.AlternativeResults {
		if err := writer.Write(cf.formatRow(&compSet.AlternativeResults[i], "alternative")); err != nil {
			return "", err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", err
	}

	return sb.String(), nil
}

// formatRow formats a comparison result as a CSV row
func (cf *CSVFormatter) formatRow(result *ComparisonResult, scenarioType string) []string {
	return []string{
		result.ScenarioName,
		scenarioType,
		result.Installment.StringFixed(2),
		result.TotalInterest.StringFixed(2),
		result.TotalLoss.StringFixed(2),
		result.TotalProfit.StringFixed(2),
		result.NetCash.StringFixed(2),
		result.AssetValue.StringFixed(2),
		result.FinalPool.StringFixed(2),
		strconv.Itoa(result.LossMonths),
		result.InstallmentDiff.StringFixed(2),
		result.InterestDiff.StringFixed(2),
		result.LossDiff.StringFixed(2),
		result.NetCashDiff.StringFixed(2),
		result.NetCashPctFromBase.StringFixed(2),
		result.AssetValueDiff.StringFixed(2),
		strconv.Itoa(result.LossMonthsDiff),
	}
}
