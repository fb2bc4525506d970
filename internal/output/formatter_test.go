package output

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/csv"
	"strings"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/rgehrsitz/herdemi/internal/calculation"
	"github.com/rgehrsitz/herdemi/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func buildTestReport(t *testing.T) *Report {
	t.Helper()
	config := &domain.Configuration{
		Scenarios: []domain.Scenario{
			{Name: "baseline", Description: "reference loan", SimulationInput: domain.SimulationInput{
				Principal:         decimal.NewFromInt(400000),
				AnnualRatePercent: decimal.NewFromInt(18),
				TenureMonths:      60,
				UnitCount:         1,
				CPFEnabled:        true,
				CGFEnabled:        true,
			}},
			{Name: "short", SimulationInput: domain.SimulationInput{
				Principal:         decimal.NewFromInt(750000),
				AnnualRatePercent: decimal.NewFromInt(12),
				TenureMonths:      30,
				UnitCount:         2,
			}},
		},
		ACFPlans: []domain.ACFPlan{{Name: "acf-11", UnitCount: 2, TenureMonths: 11}},
	}
	engine := calculation.NewCalculationEngine()
	scenarios, err := engine.RunScenarios(context.Background(), config)
	require.NoError(t, err)
	plans, err := engine.RunACFPlans(context.Background(), config)
	require.NoError(t, err)
	return NewReport(scenarios, plans)
}

func TestAvailableFormatterNames(t *testing.T) {
	names := AvailableFormatterNames()
	assert.Equal(t, []string{"console", "csv", "csv-summary", "html", "json", "md", "xlsx"}, names)
}

func TestGetFormatterByName(t *testing.T) {
	assert.Equal(t, "console", GetFormatterByName("console").Name())
	assert.Equal(t, "console", GetFormatterByName(" TEXT ").Name(), "aliases resolve")
	assert.Equal(t, "xlsx", GetFormatterByName("excel").Name())
	assert.Nil(t, GetFormatterByName("non-existent"))
	assert.Contains(t, AvailableFormatAliases(), "markdown")
}

func TestIsBinaryFormat(t *testing.T) {
	assert.True(t, IsBinaryFormat("xlsx"))
	assert.True(t, IsBinaryFormat("Excel"))
	assert.False(t, IsBinaryFormat("console"))
	assert.False(t, IsBinaryFormat("csv"))
	assert.False(t, IsBinaryFormat("non-existent"))
}

func TestWriteFormatted_Unknown(t *testing.T) {
	var buf bytes.Buffer
	err := WriteFormatted(&buf, "pdf", buildTestReport(t))
	assert.ErrorContains(t, err, "unsupported format: pdf")
}

func TestConsoleFormatter(t *testing.T) {
	report := buildTestReport(t)
	report.ShowMonthly = true

	var buf bytes.Buffer
	require.NoError(t, WriteFormatted(&buf, "console", report))
	content := buf.String()

	assert.Contains(t, content, "BUFFALO UNIT EMI ANALYSIS")
	assert.Contains(t, content, "SCENARIO 1: baseline")
	assert.Contains(t, content, "SCENARIO 2: short")
	assert.Contains(t, content, "₹4,00,000 (Four Lakh Rupees)")
	assert.Contains(t, content, "₹10,157.37")
	assert.Contains(t, content, "₹14,90,000", "herd asset value for one unit over 60 months")
	assert.Contains(t, content, "ACF PLAN: acf-11")
	assert.Contains(t, content, "₹6,60,000")
	assert.Contains(t, content, "Month", "monthly table is included")
}

func TestCSVFormatter(t *testing.T) {
	report := buildTestReport(t)
	data, err := CSVFormatter{}.Format(report)
	require.NoError(t, err)

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 1+60+30)
	assert.Equal(t, "Scenario", records[0][0])
	assert.Equal(t, []string{"baseline", "1"}, records[1][:2])
	assert.Equal(t, "10157.37", records[1][2])
	assert.Equal(t, "short", records[61][0])
}

func TestCSVSummarizer(t *testing.T) {
	data, err := CSVSummarizer{}.Format(buildTestReport(t))
	require.NoError(t, err)

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "baseline", records[1][0])
	assert.Equal(t, "1490000.00", records[1][12])
}

func TestJSONFormatter(t *testing.T) {
	data, err := JSONFormatter{Indent: true}.Format(buildTestReport(t))
	require.NoError(t, err)

	var decoded struct {
		Scenarios []struct {
			Name   string `json:"name"`
			Result struct {
				Installment decimal.Decimal `json:"installment"`
				MonthlyRows []json.RawMessage
			} `json:"result"`
		} `json:"scenarios"`
		ACFPlans []ACFReport `json:"acfPlans"`
	}
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Len(t, decoded.Scenarios, 2)
	assert.Equal(t, "baseline", decoded.Scenarios[0].Name)
	assert.InDelta(t, 10157.37, decoded.Scenarios[0].Result.Installment.InexactFloat64(), 0.01)
	assert.Len(t, decoded.Scenarios[0].Result.MonthlyRows, 60)
	require.Len(t, decoded.ACFPlans, 1)
	assert.True(t, decoded.ACFPlans[0].Result.TotalInvestment.Equal(decimal.NewFromInt(660000)))
}

func TestMarkdownAndHTMLFormatters(t *testing.T) {
	report := buildTestReport(t)

	md, err := MarkdownFormatter{}.Format(report)
	require.NoError(t, err)
	assert.Contains(t, string(md), "# Buffalo Unit EMI Analysis")
	assert.Contains(t, string(md), "| Scenario | EMI |")

	html, err := HTMLFormatter{}.Format(report)
	require.NoError(t, err)
	content := string(html)
	assert.Contains(t, content, "<!DOCTYPE html>")
	assert.Contains(t, content, "<title>Buffalo Unit EMI Analysis</title>")
	assert.Contains(t, content, "<h1>Buffalo Unit EMI Analysis</h1>")
	assert.Contains(t, content, "<table>")
	assert.NotContains(t, content, "| Scenario |", "tables are rendered, not left as markdown")
}

func TestXLSXFormatter(t *testing.T) {
	data, err := XLSXFormatter{}.Format(buildTestReport(t))
	require.NoError(t, err)

	_, err = zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err, "xlsx is a zip container")

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Summary", "Yearly", "Monthly", "ACF"}, f.GetSheetList())

	name, err := f.GetCellValue("Summary", "A2")
	require.NoError(t, err)
	assert.Equal(t, "baseline", name)

	rows, err := f.GetRows("Monthly")
	require.NoError(t, err)
	assert.Len(t, rows, 1+60+30)

	acfRows, err := f.GetRows("ACF")
	require.NoError(t, err)
	assert.Len(t, acfRows, 1+11)
}

func TestWriteLineageTree(t *testing.T) {
	var buf bytes.Buffer
	WriteLineageTree(&buf, calculation.GenerateLineage(60), 2)
	content := buf.String()

	assert.Contains(t, content, "horizon 60 months")
	assert.Contains(t, content, "Adult 1 (ordered month 1")
	assert.Contains(t, content, "Adult 2 (ordered month 7")
	assert.Contains(t, content, "Grand-calf born month 37")
	assert.Equal(t, 6, strings.Count(content, "Grand-calf"))
	assert.Contains(t, content, "Animals per unit:  18 (16 born)")
	assert.Contains(t, content, "Value of 2 units: ₹29,80,000")
}

func TestSensitivityConsoleFormatter(t *testing.T) {
	config := &domain.Configuration{Scenarios: []domain.Scenario{{
		Name: "baseline",
		SimulationInput: domain.SimulationInput{
			Principal:         decimal.NewFromInt(400000),
			AnnualRatePercent: decimal.NewFromInt(18),
			TenureMonths:      60,
			UnitCount:         1,
			CPFEnabled:        true,
			CGFEnabled:        true,
		},
	}}}
	analysis, err := calculation.NewSensitivityAnalyzer(nil).AnalyzeSingleParameter(context.Background(), config, domain.AnnualRateParam, "baseline")
	require.NoError(t, err)

	out, err := GetSensitivityFormatter("console").FormatSensitivityAnalysis(analysis)
	require.NoError(t, err)
	assert.Contains(t, out, "SENSITIVITY ANALYSIS: ANNUAL RATE PERCENT")
	assert.Contains(t, out, "18.00% ← BASE")
	assert.Contains(t, out, "RISK LEVEL:")

	js, err := GetSensitivityFormatter("json").FormatSensitivityAnalysis(analysis)
	require.NoError(t, err)
	assert.Contains(t, js, `"baseScenarioName": "baseline"`)

	_, err = SensitivityConsoleFormatter{}.FormatSensitivityAnalysis(&domain.ParameterSensitivityAnalysis{})
	assert.Error(t, err)
}
