package output

import (
	"bytes"
	"fmt"
	"io"
	"strings"
)

// MarkdownFormatter renders the report as GitHub-flavoured markdown.
type MarkdownFormatter struct{}

func (m MarkdownFormatter) Name() string { return "md" }

func (m MarkdownFormatter) Format(report *Report) ([]byte, error) {
	var buf bytes.Buffer
	writeMarkdown(&buf, report)
	return buf.Bytes(), nil
}

func writeMarkdown(w io.Writer, report *Report) {
	fmt.Fprintf(w, "# %s\n\n", report.Title)
	fmt.Fprintf(w, "_Generated on %s_\n\n", report.GeneratedAt.Format("2006-01-02 15:04:05"))

	if len(report.Scenarios) > 1 {
		fmt.Fprintln(w, "## Scenario Comparison")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "| Scenario | EMI | Interest | Revenue | Profit | Out of Pocket | Net Cash | Asset Value |")
		fmt.Fprintln(w, "|---|---:|---:|---:|---:|---:|---:|---:|")
		for _, s := range report.Scenarios {
			t := s.Result.Totals
			fmt.Fprintf(w, "| %s | %s | %s | %s | %s | %s | %s | %s |\n",
				mdEscape(s.Name), FormatINRPrecise(s.Result.Installment), FormatINR(t.Interest), FormatINR(t.Revenue),
				FormatINR(t.Profit), FormatINR(t.Loss), FormatINR(t.NetCash), FormatINR(t.AssetValue))
		}
		fmt.Fprintln(w)
	}

	for _, s := range report.Scenarios {
		res := s.Result
		in := res.Input
		fmt.Fprintf(w, "## %s\n\n", mdEscape(s.Name))
		if s.Description != "" {
			fmt.Fprintf(w, "%s\n\n", s.Description)
		}
		fmt.Fprintf(w, "- **Principal:** %s at %s for %d months\n", FormatINR(in.Principal), FormatPercentage(in.AnnualRatePercent), in.TenureMonths)
		fmt.Fprintf(w, "- **Units:** %d, CPF %s, CGF %s\n", in.UnitCount, onOff(in.CPFEnabled), onOff(in.CGFEnabled))
		fmt.Fprintf(w, "- **Monthly EMI:** %s\n", FormatINRPrecise(res.Installment))
		fmt.Fprintf(w, "- **Loan pool:** %s at start, %s at end\n", FormatINR(res.InitialPool), FormatINR(res.FinalPoolBalance()))
		fmt.Fprintf(w, "- **Out of pocket:** %s over %d months\n", FormatINR(res.Totals.Loss), res.LossMonths())
		fmt.Fprintf(w, "- **Herd value:** %s (%s)\n\n", FormatINR(res.Totals.AssetValue), RupeesInWords(res.Totals.AssetValue))

		fmt.Fprintln(w, "| Year | Months | EMI | Revenue | CPF | CGF | Profit | Loss | Loan Pool | Balance |")
		fmt.Fprintln(w, "|---:|---|---:|---:|---:|---:|---:|---:|---:|---:|")
		for _, y := range res.YearlyRows {
			fmt.Fprintf(w, "| %d | %d-%d | %s | %s | %s | %s | %s | %s | %s | %s |\n",
				y.Year, y.StartMonth, y.EndMonth, FormatINR(y.Installment), FormatINR(y.Revenue),
				FormatINR(y.CPFCost), FormatINR(y.CGFCost), FormatINR(y.Profit), FormatINR(y.Loss),
				FormatINR(y.PoolBalanceAfter), FormatINR(y.RemainingBalance))
		}
		fmt.Fprintln(w)
	}

	for _, p := range report.ACFPlans {
		r := p.Result
		fmt.Fprintf(w, "## ACF plan: %s\n\n", mdEscape(p.Name))
		fmt.Fprintf(w, "- **Installment:** %s per month for %d months\n", FormatINR(r.Installment), r.TenureMonths)
		fmt.Fprintf(w, "- **Total investment:** %s against market value %s\n", FormatINR(r.TotalInvestment), FormatINR(r.MarketValue))
		fmt.Fprintf(w, "- **Total benefit:** %s (discount %s + CPF %s)\n\n", FormatINR(r.TotalBenefit), FormatINR(r.Discount), FormatINR(r.CPFBenefit))
	}

	if len(report.Assumptions) > 0 {
		fmt.Fprintln(w, "## Assumptions")
		fmt.Fprintln(w)
		for _, a := range report.Assumptions {
			fmt.Fprintf(w, "- %s\n", a)
		}
	}
}

func mdEscape(s string) string {
	return strings.NewReplacer("|", `\|`, "*", `\*`, "_", `\_`).Replace(s)
}
