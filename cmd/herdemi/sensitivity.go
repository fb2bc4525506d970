package main

import (
	"fmt"
	"strings"

	"github.com/rgehrsitz/herdemi/internal/calculation"
	"github.com/rgehrsitz/herdemi/internal/domain"
	"github.com/rgehrsitz/herdemi/internal/output"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var sensitivityCmd = &cobra.Command{
	Use:   "sensitivity [input-file]",
	Short: "Sweep one input and measure how net cash responds",
	Long: `Sweep one input of a scenario across a range and report net cash, top-ups
and a fitted slope per step.

Parameters: annual_rate_percent, principal, tenure_months, unit_count

Examples:
  herdemi sensitivity scenarios.yaml --parameter annual_rate_percent --min 10 --max 24 --steps 8
  herdemi sensitivity scenarios.yaml --parameter principal --base-scenario "Two units" --format json`,
	Args: cobra.ExactArgs(1),
	RunE: runSensitivity,
}

func runSensitivity(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, args[0])
	if err != nil {
		return err
	}

	baseName, _ := cmd.Flags().GetString("base-scenario")
	if baseName == "" {
		baseName = cfg.Scenarios[0].Name
	}
	base, ok := cfg.FindScenario(baseName)
	if !ok {
		return fmt.Errorf("%w: %s", calculation.ErrScenarioNotFound, baseName)
	}

	name, _ := cmd.Flags().GetString("parameter")
	param, ok := domain.LookupCommonParameter(name)
	if !ok {
		names := make([]string, 0, len(domain.GetCommonParameters()))
		for _, p := range domain.GetCommonParameters() {
			names = append(names, p.Name)
		}
		return fmt.Errorf("unknown parameter %q (available: %s)", name, strings.Join(names, ", "))
	}

	if err := overrideRange(cmd, &param); err != nil {
		return err
	}
	param.BaseValue = currentValue(base.SimulationInput, param.Name)

	analyzer := calculation.NewSensitivityAnalyzer(newEngine())
	analysis, err := analyzer.AnalyzeSingleParameter(cmd.Context(), cfg, param, base.Name)
	if err != nil {
		return err
	}

	format, _ := cmd.Flags().GetString("format")
	out, err := output.GetSensitivityFormatter(format).FormatSensitivityAnalysis(analysis)
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), out)
	return nil
}

// overrideRange applies --min, --max and --steps when given.
func overrideRange(cmd *cobra.Command, param *domain.SensitivityParameter) error {
	for _, f := range []struct {
		flag   string
		target *decimal.Decimal
	}{
		{"min", &param.MinValue},
		{"max", &param.MaxValue},
	} {
		if !cmd.Flags().Changed(f.flag) {
			continue
		}
		raw, _ := cmd.Flags().GetString(f.flag)
		v, err := decimal.NewFromString(raw)
		if err != nil {
			return fmt.Errorf("invalid --%s value %q: %w", f.flag, raw, err)
		}
		*f.target = v
	}
	if cmd.Flags().Changed("steps") {
		param.Steps, _ = cmd.Flags().GetInt("steps")
	}
	if param.MaxValue.LessThan(param.MinValue) {
		return fmt.Errorf("--max (%s) is below --min (%s)", param.MaxValue, param.MinValue)
	}
	if param.Steps < 1 {
		return fmt.Errorf("--steps must be at least 1")
	}
	return nil
}

func currentValue(in domain.SimulationInput, name string) decimal.Decimal {
	switch name {
	case domain.ParamAnnualRate:
		return in.AnnualRatePercent
	case domain.ParamPrincipal:
		return in.Principal
	case domain.ParamTenure:
		return decimal.NewFromInt(int64(in.TenureMonths))
	case domain.ParamUnitCount:
		return decimal.NewFromInt(int64(in.UnitCount))
	}
	return decimal.Zero
}

func init() {
	sensitivityCmd.Flags().String("parameter", domain.ParamAnnualRate, "Parameter to sweep")
	sensitivityCmd.Flags().String("min", "", "Sweep start (default: built-in range)")
	sensitivityCmd.Flags().String("max", "", "Sweep end (default: built-in range)")
	sensitivityCmd.Flags().Int("steps", 5, "Number of sweep points")
	sensitivityCmd.Flags().String("base-scenario", "", "Base scenario name (default: first scenario)")
	sensitivityCmd.Flags().StringP("format", "f", "console", "Output format (console, json)")

	rootCmd.AddCommand(sensitivityCmd)
}
