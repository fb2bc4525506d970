package main

import (
	"fmt"
	"strings"

	"github.com/rgehrsitz/herdemi/internal/breakeven"
	"github.com/rgehrsitz/herdemi/internal/calculation"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var breakEvenCmd = &cobra.Command{
	Use:   "break-even [input-file]",
	Short: "Find the loan terms at which the plan needs no top-ups",
	Long: `Search one loan term (or all of them) while holding the rest of the base
scenario fixed.

Targets: annual_rate (highest rate), principal (smallest loan),
tenure (shortest repayment), all
Goals:   zero_loss (default), maximize_net_cash

Examples:
  herdemi break-even scenarios.yaml --target annual_rate
  herdemi break-even scenarios.yaml --target principal --max-principal 900000
  herdemi break-even scenarios.yaml --target all --format json`,
	Args: cobra.ExactArgs(1),
	RunE: runBreakEven,
}

func runBreakEven(cmd *cobra.Command, args []string) error {
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

	constraints, err := constraintsFromFlags(cmd)
	if err != nil {
		return err
	}
	targetName, _ := cmd.Flags().GetString("target")
	goalName, _ := cmd.Flags().GetString("goal")
	target := breakeven.OptimizationTarget(strings.ToLower(targetName))
	goal := breakeven.OptimizationGoal(strings.ToLower(goalName))

	solver := breakeven.NewDefaultSolver(newEngine())
	format, _ := cmd.Flags().GetString("format")
	jsonOut := strings.EqualFold(format, "json")

	if target == breakeven.OptimizeAll {
		res, err := solver.OptimizeAllTargets(cmd.Context(), base, constraints, goal)
		if err != nil {
			return err
		}
		if jsonOut {
			out, err := (&breakeven.JSONFormatter{Pretty: true}).FormatMultiDimensional(res)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		}
		fmt.Fprint(cmd.OutOrStdout(), (&breakeven.TableFormatter{}).FormatMultiDimensional(res))
		return nil
	}

	res, err := solver.Optimize(cmd.Context(), breakeven.OptimizationRequest{
		BaseScenario: base,
		Target:       target,
		Goal:         goal,
		Constraints:  constraints,
	})
	if err != nil {
		return err
	}
	if jsonOut {
		out, err := (&breakeven.JSONFormatter{Pretty: true}).Format(res)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), out)
		return nil
	}
	fmt.Fprint(cmd.OutOrStdout(), (&breakeven.TableFormatter{}).Format(res))
	return nil
}

// constraintsFromFlags starts from the defaults and overrides each bound given.
func constraintsFromFlags(cmd *cobra.Command) (breakeven.Constraints, error) {
	c := breakeven.DefaultConstraints()

	decimals := []struct {
		flag   string
		target **decimal.Decimal
	}{
		{"min-rate", &c.MinRate},
		{"max-rate", &c.MaxRate},
		{"min-principal", &c.MinPrincipal},
		{"max-principal", &c.MaxPrincipal},
	}
	for _, d := range decimals {
		if !cmd.Flags().Changed(d.flag) {
			continue
		}
		raw, _ := cmd.Flags().GetString(d.flag)
		v, err := decimal.NewFromString(raw)
		if err != nil {
			return c, fmt.Errorf("invalid --%s value %q: %w", d.flag, raw, err)
		}
		*d.target = &v
	}

	for _, i := range []struct {
		flag   string
		target **int
	}{
		{"min-tenure", &c.MinTenure},
		{"max-tenure", &c.MaxTenure},
	} {
		if cmd.Flags().Changed(i.flag) {
			v, _ := cmd.Flags().GetInt(i.flag)
			*i.target = &v
		}
	}
	return c, c.Validate()
}

func init() {
	breakEvenCmd.Flags().String("target", string(breakeven.OptimizeAll), "Term to search: annual_rate, principal, tenure, all")
	breakEvenCmd.Flags().String("goal", string(breakeven.GoalZeroLoss), "zero_loss or maximize_net_cash")
	breakEvenCmd.Flags().String("base-scenario", "", "Base scenario name (default: first scenario)")
	breakEvenCmd.Flags().StringP("format", "f", "table", "Output format (table, json)")
	breakEvenCmd.Flags().String("min-rate", "", "Lowest annual rate searched, percent")
	breakEvenCmd.Flags().String("max-rate", "", "Highest annual rate searched, percent")
	breakEvenCmd.Flags().String("min-principal", "", "Smallest principal searched")
	breakEvenCmd.Flags().String("max-principal", "", "Largest principal searched")
	breakEvenCmd.Flags().Int("min-tenure", 0, "Shortest tenure searched, months")
	breakEvenCmd.Flags().Int("max-tenure", 0, "Longest tenure searched, months")

	rootCmd.AddCommand(breakEvenCmd)
}
