package output

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// XLSXFormatter writes a workbook with Summary, Yearly and Monthly sheets,
// plus an ACF sheet when the report has ACF plans.
type XLSXFormatter struct{}

func (x XLSXFormatter) Name() string { return "xlsx" }

func (x XLSXFormatter) Binary() bool { return true }

const (
	summarySheet = "Summary"
	yearlySheet  = "Yearly"
	monthlySheet = "Monthly"
	acfSheet     = "ACF"
)

func (x XLSXFormatter) Format(report *Report) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return nil, err
	}
	for _, name := range []string{yearlySheet, monthlySheet} {
		if _, err := f.NewSheet(name); err != nil {
			return nil, err
		}
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, err
	}

	summary := [][]interface{}{{
		"Scenario", "Principal", "Annual Rate %", "Tenure", "Units", "CPF", "CGF", "EMI",
		"Total Interest", "Revenue", "CPF Cost", "CGF Cost", "Profit", "Loss", "Net Cash", "Loss Months", "Asset Value",
	}}
	yearly := [][]interface{}{{
		"Scenario", "Year", "Start Month", "End Month", "EMI", "Interest", "Principal", "Revenue",
		"CPF", "CGF", "Profit", "Loss", "Loan Pool", "Balance",
	}}
	monthly := [][]interface{}{{
		"Scenario", "Month", "EMI", "Interest", "Principal", "Balance", "Revenue", "CPF", "CGF",
		"From Pool", "Loan Pool", "Profit", "Loss", "Net Cash",
	}}

	for _, s := range report.Scenarios {
		res := s.Result
		in := res.Input
		t := res.Totals
		summary = append(summary, []interface{}{
			s.Name, in.Principal.InexactFloat64(), in.AnnualRatePercent.InexactFloat64(), in.TenureMonths,
			in.UnitCount, in.CPFEnabled, in.CGFEnabled, res.Installment.Round(2).InexactFloat64(),
			t.Interest.Round(2).InexactFloat64(), t.Revenue.InexactFloat64(), t.CPF.InexactFloat64(),
			t.CGF.InexactFloat64(), t.Profit.Round(2).InexactFloat64(), t.Loss.Round(2).InexactFloat64(),
			t.NetCash.Round(2).InexactFloat64(), res.LossMonths(), t.AssetValue.InexactFloat64(),
		})
		for _, y := range res.YearlyRows {
			yearly = append(yearly, []interface{}{
				s.Name, y.Year, y.StartMonth, y.EndMonth,
				y.Installment.Round(2).InexactFloat64(), y.InterestPortion.Round(2).InexactFloat64(),
				y.PrincipalPortion.Round(2).InexactFloat64(), y.Revenue.InexactFloat64(),
				y.CPFCost.InexactFloat64(), y.CGFCost.InexactFloat64(), y.Profit.Round(2).InexactFloat64(),
				y.Loss.Round(2).InexactFloat64(), y.PoolBalanceAfter.Round(2).InexactFloat64(),
				y.RemainingBalance.Round(2).InexactFloat64(),
			})
		}
		for _, r := range res.MonthlyRows {
			monthly = append(monthly, []interface{}{
				s.Name, r.Month, r.Installment.Round(2).InexactFloat64(), r.InterestPortion.Round(2).InexactFloat64(),
				r.PrincipalPortion.Round(2).InexactFloat64(), r.RemainingBalance.Round(2).InexactFloat64(),
				r.Revenue.InexactFloat64(), r.CPFCost.InexactFloat64(), r.CGFCost.InexactFloat64(),
				r.DebitFromPool.Round(2).InexactFloat64(), r.PoolBalanceAfter.Round(2).InexactFloat64(),
				r.Profit.Round(2).InexactFloat64(), r.Loss.Round(2).InexactFloat64(), r.NetCash.Round(2).InexactFloat64(),
			})
		}
	}

	sheets := []sheetData{
		{summarySheet, summary},
		{yearlySheet, yearly},
		{monthlySheet, monthly},
	}

	if len(report.ACFPlans) > 0 {
		if _, err := f.NewSheet(acfSheet); err != nil {
			return nil, err
		}
		acf := [][]interface{}{{"Plan", "Month", "Installment", "Cumulative"}}
		for _, p := range report.ACFPlans {
			for _, r := range p.Result.Schedule {
				acf = append(acf, []interface{}{p.Name, r.Month, r.Installment.InexactFloat64(), r.Cumulative.InexactFloat64()})
			}
		}
		sheets = append(sheets, sheetData{acfSheet, acf})
	}

	for _, sh := range sheets {
		if err := writeSheet(f, sh.name, sh.rows, bold); err != nil {
			return nil, fmt.Errorf("sheet %s: %w", sh.name, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

type sheetData struct {
	name string
	rows [][]interface{}
}

func writeSheet(f *excelize.File, sheet string, rows [][]interface{}, headerStyle int) error {
	for i, row := range rows {
		for j, v := range row {
			cell, err := excelize.CoordinatesToCellName(j+1, i+1)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return err
			}
		}
	}
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil
	}
	last, err := excelize.CoordinatesToCellName(len(rows[0]), 1)
	if err != nil {
		return err
	}
	return f.SetCellStyle(sheet, "A1", last, headerStyle)
}
