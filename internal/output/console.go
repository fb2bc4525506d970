package output

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/rgehrsitz/herdemi/internal/domain"
)

// ConsoleFormatter renders a plain-text report with Indian-grouped amounts.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console" }

func (c ConsoleFormatter) Format(report *Report) ([]byte, error) {
	var buf bytes.Buffer

	rule := strings.Repeat("=", 96)
	fmt.Fprintln(&buf, rule)
	fmt.Fprintln(&buf, strings.ToUpper(report.Title))
	fmt.Fprintln(&buf, rule)
	fmt.Fprintln(&buf)

	if len(report.Assumptions) > 0 {
		fmt.Fprintln(&buf, "KEY ASSUMPTIONS:")
		for _, a := range report.Assumptions {
			fmt.Fprintf(&buf, "• %s\n", a)
		}
		fmt.Fprintln(&buf)
	}

	for i, s := range report.Scenarios {
		fmt.Fprintf(&buf, "SCENARIO %d: %s\n", i+1, s.Name)
		fmt.Fprintln(&buf, strings.Repeat("=", 50))
		if s.Description != "" {
			fmt.Fprintln(&buf, s.Description)
		}
		writeScenarioSummary(&buf, s.Result)
		fmt.Fprintln(&buf)
		WriteYearlyTable(&buf, s.Result.YearlyRows)
		if report.ShowMonthly {
			fmt.Fprintln(&buf)
			WriteMonthlyTable(&buf, s.Result.MonthlyRows)
		}
		fmt.Fprintln(&buf)
	}

	for _, p := range report.ACFPlans {
		fmt.Fprintf(&buf, "ACF PLAN: %s\n", p.Name)
		fmt.Fprintln(&buf, strings.Repeat("=", 50))
		WriteACF(&buf, p.Result, report.ShowMonthly)
		fmt.Fprintln(&buf)
	}

	return buf.Bytes(), nil
}

func writeScenarioSummary(w io.Writer, res *domain.SimulationResult) {
	in := res.Input
	fmt.Fprintln(w, "INPUTS:")
	fmt.Fprintf(w, "  Principal:              %s (%s)\n", FormatINR(in.Principal), RupeesInWords(in.Principal))
	fmt.Fprintf(w, "  Annual Rate:            %s\n", FormatPercentage(in.AnnualRatePercent))
	fmt.Fprintf(w, "  Tenure:                 %d months\n", in.TenureMonths)
	fmt.Fprintf(w, "  Units:                  %d (%d buffaloes)\n", in.UnitCount, in.UnitCount*2)
	fmt.Fprintf(w, "  CPF / CGF:              %s / %s\n", onOff(in.CPFEnabled), onOff(in.CGFEnabled))
	fmt.Fprintln(w)

	t := res.Totals
	fmt.Fprintln(w, "LOAN:")
	fmt.Fprintf(w, "  Monthly EMI:            %s\n", FormatINRPrecise(res.Installment))
	fmt.Fprintf(w, "  Total Payment:          %s\n", FormatINR(t.Payment))
	fmt.Fprintf(w, "  Total Interest:         %s\n", FormatINR(t.Interest))
	fmt.Fprintf(w, "  Required Capital:       %s\n", FormatINR(res.RequiredCapital))
	fmt.Fprintf(w, "  Initial Loan Pool:      %s\n", FormatINR(res.InitialPool))
	fmt.Fprintf(w, "  Final Loan Pool:        %s\n", FormatINR(res.FinalPoolBalance()))
	fmt.Fprintln(w)

	fmt.Fprintln(w, "HERD CASH FLOW:")
	fmt.Fprintf(w, "  Milk Revenue:           %s\n", FormatINR(t.Revenue))
	fmt.Fprintf(w, "  CPF Cost:               %s\n", FormatINR(t.CPF))
	fmt.Fprintf(w, "  CGF Cost:               %s\n", FormatINR(t.CGF))
	fmt.Fprintf(w, "  Profit:                 %s\n", FormatINR(t.Profit))
	fmt.Fprintf(w, "  Out of Pocket:          %s (%d months)\n", FormatINR(t.Loss), res.LossMonths())
	fmt.Fprintf(w, "  Net Cash:               %s\n", FormatINR(t.NetCash))
	if m := res.FirstProfitMonth(); m > 0 {
		fmt.Fprintf(w, "  First Profit Month:     %d\n", m)
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "HERD AT END OF TENURE:")
	fmt.Fprintf(w, "  Animals:                %d\n", (2+len(res.Lineage.Births))*in.UnitCount)
	fmt.Fprintf(w, "  Asset Value:            %s (%s)\n", FormatINR(t.AssetValue), RupeesInWords(t.AssetValue))
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

// WriteYearlyTable writes the yearly rollup as a fixed-width table.
func WriteYearlyTable(w io.Writer, years []domain.YearlyRow) {
	fmt.Fprintf(w, "%-6s %-9s %14s %14s %12s %12s %14s %14s %14s %14s\n",
		"Year", "Months", "EMI", "Revenue", "CPF", "CGF", "Profit", "Loss", "Loan Pool", "Balance")
	fmt.Fprintln(w, strings.Repeat("-", 132))
	for _, y := range years {
		fmt.Fprintf(w, "%-6d %-9s %14s %14s %12s %12s %14s %14s %14s %14s\n",
			y.Year, fmt.Sprintf("%d-%d", y.StartMonth, y.EndMonth),
			FormatINR(y.Installment), FormatINR(y.Revenue), FormatINR(y.CPFCost), FormatINR(y.CGFCost),
			FormatINR(y.Profit), FormatINR(y.Loss), FormatINR(y.PoolBalanceAfter), FormatINR(y.RemainingBalance))
	}
}

// WriteMonthlyTable writes the month-by-month schedule as a fixed-width table.
func WriteMonthlyTable(w io.Writer, rows []domain.MonthlyRow) {
	fmt.Fprintf(w, "%-6s %12s %12s %12s %14s %12s %10s %10s %14s %12s %12s\n",
		"Month", "EMI", "Interest", "Principal", "Balance", "Revenue", "CPF", "CGF", "Loan Pool", "Profit", "Loss")
	fmt.Fprintln(w, strings.Repeat("-", 144))
	for _, r := range rows {
		fmt.Fprintf(w, "%-6d %12s %12s %12s %14s %12s %10s %10s %14s %12s %12s\n",
			r.Month, FormatINR(r.Installment), FormatINR(r.InterestPortion), FormatINR(r.PrincipalPortion),
			FormatINR(r.RemainingBalance), FormatINR(r.Revenue), FormatINR(r.CPFCost), FormatINR(r.CGFCost),
			FormatINR(r.PoolBalanceAfter), FormatINR(r.Profit), FormatINR(r.Loss))
	}
}

// WriteACF writes the ACF benefit summary and, optionally, its schedule.
func WriteACF(w io.Writer, res domain.ACFResult, schedule bool) {
	fmt.Fprintf(w, "  Units:                  %d\n", res.UnitCount)
	fmt.Fprintf(w, "  Tenure:                 %d months\n", res.TenureMonths)
	fmt.Fprintf(w, "  Monthly Installment:    %s (%s per unit)\n", FormatINR(res.Installment), FormatINR(res.PerUnitInstallment))
	fmt.Fprintf(w, "  Total Investment:       %s\n", FormatINR(res.TotalInvestment))
	fmt.Fprintf(w, "  Market Value:           %s\n", FormatINR(res.MarketValue))
	fmt.Fprintf(w, "  Discount:               %s\n", FormatINR(res.Discount))
	fmt.Fprintf(w, "  CPF Benefit:            %s\n", FormatINR(res.CPFBenefit))
	fmt.Fprintf(w, "  Total Benefit:          %s (%s)\n", FormatINR(res.TotalBenefit), RupeesInWords(res.TotalBenefit))
	if !schedule {
		return
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  %-6s %14s %16s\n", "Month", "Installment", "Cumulative")
	for _, r := range res.Schedule {
		fmt.Fprintf(w, "  %-6d %14s %16s\n", r.Month, FormatINR(r.Installment), FormatINR(r.Cumulative))
	}
}
