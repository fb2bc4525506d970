package output

import (
	"bytes"
	"encoding/csv"
	"sort"
	"strconv"
)

// CSVFormatter writes the full monthly schedule, one row per scenario month.
type CSVFormatter struct{}

func (c CSVFormatter) Name() string { return "csv" }

func (c CSVFormatter) Format(report *Report) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{
		"Scenario", "Month", "Installment", "Interest", "Principal", "RemainingBalance",
		"Revenue", "CPF", "CGF",
		"InstallmentFromRevenue", "InstallmentFromPool", "CPFFromRevenue", "CPFFromPool",
		"CGFFromRevenue", "CGFFromPool", "PoolBalanceAfter", "Profit", "Loss", "NetCash",
	}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, s := range report.Scenarios {
		for _, r := range s.Result.MonthlyRows {
			row := []string{
				s.Name,
				strconv.Itoa(r.Month),
				r.Installment.StringFixed(2),
				r.InterestPortion.StringFixed(2),
				r.PrincipalPortion.StringFixed(2),
				r.RemainingBalance.StringFixed(2),
				r.Revenue.StringFixed(2),
				r.CPFCost.StringFixed(2),
				r.CGFCost.StringFixed(2),
				r.InstallmentFromRevenue.StringFixed(2),
				r.InstallmentFromPool.StringFixed(2),
				r.CPFFromRevenue.StringFixed(2),
				r.CPFFromPool.StringFixed(2),
				r.CGFFromRevenue.StringFixed(2),
				r.CGFFromPool.StringFixed(2),
				r.PoolBalanceAfter.StringFixed(2),
				r.Profit.StringFixed(2),
				r.Loss.StringFixed(2),
				r.NetCash.StringFixed(2),
			}
			if err := w.Write(row); err != nil {
				return nil, err
			}
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

// CSVSummarizer implements the simple summary CSV output (one row per scenario).
type CSVSummarizer struct{}

func (c CSVSummarizer) Name() string { return "csv-summary" }

func (c CSVSummarizer) Format(report *Report) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Scenario", "Units", "TenureMonths", "Installment", "TotalInterest", "Revenue", "CPF", "CGF", "Profit", "Loss", "NetCash", "LossMonths", "AssetValue"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	scenarios := append([]ScenarioReport(nil), report.Scenarios...)
	sort.Slice(scenarios, func(i, j int) bool { return scenarios[i].Name < scenarios[j].Name })
	for _, sc := range scenarios {
		t := sc.Result.Totals
		row := []string{
			sc.Name,
			strconv.Itoa(sc.Result.Input.UnitCount),
			strconv.Itoa(sc.Result.Input.TenureMonths),
			sc.Result.Installment.StringFixed(2),
			t.Interest.StringFixed(2),
			t.Revenue.StringFixed(2),
			t.CPF.StringFixed(2),
			t.CGF.StringFixed(2),
			t.Profit.StringFixed(2),
			t.Loss.StringFixed(2),
			t.NetCash.StringFixed(2),
			strconv.Itoa(sc.Result.LossMonths()),
			t.AssetValue.StringFixed(2),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
