package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"

	"github.com/rgehrsitz/herdemi/internal/api"
	"github.com/rgehrsitz/herdemi/internal/calculation"
	"github.com/rgehrsitz/herdemi/internal/config"
	"github.com/rgehrsitz/herdemi/internal/domain"
	"github.com/rgehrsitz/herdemi/internal/logging"
	"github.com/rgehrsitz/herdemi/internal/output"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// process-wide settings resolved before every command
var (
	env    config.Env
	logger = zerolog.Nop()
)

var rootCmd = &cobra.Command{
	Use:   "herdemi",
	Short: "Buffalo unit EMI and ACF calculator",
	Long: `Simulates a loan-financed buffalo unit month by month: EMI, milk revenue,
CPF insurance, CGF growth fund, the loan pool and out-of-pocket top-ups,
plus the Affordable Crowd Farming (ACF) payment plans.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		envFile, _ := cmd.Flags().GetString("env-file")
		var err error
		env, err = config.LoadEnv(envFile)
		configureLogging(cmd, domain.LoggingConfig{})
		return err
	},
}

// configureLogging builds the logger from file settings overlaid by the
// environment; --debug forces debug level.
func configureLogging(cmd *cobra.Command, fromFile domain.LoggingConfig) {
	cfg := env.ApplyLogging(fromFile)
	if debugMode, _ := cmd.Flags().GetBool("debug"); debugMode {
		cfg.Level = "debug"
	}
	logger = logging.New(logging.Config{Level: cfg.Level, Pretty: cfg.Pretty})
	logging.SetGlobalLogger(logger)
}

// loadConfig parses a scenario file and applies its logging section.
func loadConfig(cmd *cobra.Command, path string) (*domain.Configuration, error) {
	cfg, err := config.NewInputParser().LoadFromFile(path)
	if err != nil {
		return nil, err
	}
	configureLogging(cmd, cfg.Logging)
	logger.Debug().Str("file", path).Int("scenarios", len(cfg.Scenarios)).Msg("configuration loaded")
	return cfg, nil
}

func newEngine() *calculation.CalculationEngine {
	engine := calculation.NewCalculationEngine()
	engine.SetLogger(logging.NewEngineLogger(logger, "engine"))
	return engine
}

// ErrBinaryToStdout is returned when a binary format is requested without --output.
var ErrBinaryToStdout = errors.New("binary output needs --output")

// outputWriter returns stdout, or the named file when --output is set.
// Binary formats are only written to a file.
func outputWriter(cmd *cobra.Command) (io.Writer, func() error, error) {
	path, _ := cmd.Flags().GetString("output")
	if path == "" {
		format, _ := cmd.Flags().GetString("format")
		if output.IsBinaryFormat(format) {
			return nil, nil, fmt.Errorf("%w: -f %s writes a workbook, pass -o FILE", ErrBinaryToStdout, format)
		}
		return cmd.OutOrStdout(), func() error { return nil }, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create %s: %w", path, err)
	}
	return f, f.Close, nil
}

var calculateCmd = &cobra.Command{
	Use:   "calculate [input-file]",
	Short: "Simulate every scenario and ACF plan in a configuration file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd, args[0])
		if err != nil {
			return err
		}

		if name, _ := cmd.Flags().GetString("scenario"); name != "" {
			s, ok := cfg.FindScenario(name)
			if !ok {
				return fmt.Errorf("%w: %s", calculation.ErrScenarioNotFound, name)
			}
			cfg.Scenarios = []domain.Scenario{*s}
		}

		engine := newEngine()
		outcomes, err := engine.RunScenarios(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		plans, err := engine.RunACFPlans(cmd.Context(), cfg)
		if err != nil {
			return err
		}

		report := output.NewReport(outcomes, plans)
		report.ShowMonthly, _ = cmd.Flags().GetBool("monthly")

		w, closeFn, err := outputWriter(cmd)
		if err != nil {
			return err
		}
		format, _ := cmd.Flags().GetString("format")
		if err := output.WriteFormatted(w, format, report); err != nil {
			return errors.Join(err, closeFn())
		}
		return closeFn()
	},
}

var validateCmd = &cobra.Command{
	Use:   "validate [input-file]",
	Short: "Validate a configuration file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd, args[0])
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Configuration file %s is valid (%d scenarios, %d ACF plans)\n",
			args[0], len(cfg.Scenarios), len(cfg.ACFPlans))
		return nil
	},
}

// ErrACFPlanNotFound is returned when --plan names no plan in the file.
var ErrACFPlanNotFound = errors.New("ACF plan not found")

var acfCmd = &cobra.Command{
	Use:   "acf [input-file]",
	Short: "Show an Affordable Crowd Farming payment plan",
	Long: `Show the ACF schedule and benefits, either for the plans in a configuration
file or for a single plan given with --units and --tenure.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var plans []calculation.ACFOutcome
		planName, _ := cmd.Flags().GetString("plan")
		if len(args) == 1 {
			cfg, err := loadConfig(cmd, args[0])
			if err != nil {
				return err
			}
			if planName != "" {
				plan, ok := cfg.FindACFPlan(planName)
				if !ok {
					return fmt.Errorf("%w: %s", ErrACFPlanNotFound, planName)
				}
				cfg.ACFPlans = []domain.ACFPlan{*plan}
			}
			if plans, err = newEngine().RunACFPlans(cmd.Context(), cfg); err != nil {
				return err
			}
		} else {
			if planName != "" {
				return fmt.Errorf("--plan needs an input file")
			}
			units, _ := cmd.Flags().GetInt("units")
			tenure, _ := cmd.Flags().GetInt("tenure")
			plan := domain.ACFPlan{Name: "ACF", UnitCount: units, TenureMonths: tenure}
			if err := config.NewInputParser().ValidateACFPlan(&plan); err != nil {
				return err
			}
			res, err := calculation.GenerateACF(units, tenure)
			if err != nil {
				return err
			}
			plans = []calculation.ACFOutcome{{Plan: plan, Result: res}}
		}

		format, _ := cmd.Flags().GetString("format")
		if format != "console" {
			return output.WriteFormatted(cmd.OutOrStdout(), format, output.NewReport(nil, plans))
		}
		schedule, _ := cmd.Flags().GetBool("schedule")
		for _, p := range plans {
			fmt.Fprintf(cmd.OutOrStdout(), "%s\n", p.Plan.Name)
			output.WriteACF(cmd.OutOrStdout(), p.Result, schedule)
			fmt.Fprintln(cmd.OutOrStdout())
		}
		return nil
	},
}

var lineageCmd = &cobra.Command{
	Use:   "lineage",
	Short: "Print the buffalo family tree of one unit",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		horizon, _ := cmd.Flags().GetInt("horizon")
		units, _ := cmd.Flags().GetInt("units")
		if horizon < 1 {
			return fmt.Errorf("horizon must be at least 1 month, got %d", horizon)
		}
		if units < 0 {
			return fmt.Errorf("units cannot be negative, got %d", units)
		}
		output.WriteLineageTree(cmd.OutOrStdout(), calculation.GenerateLineage(horizon), units)
		return nil
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the calculator over HTTP",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		addr, _ := cmd.Flags().GetString("addr")
		if addr == "" {
			addr = env.Addr
		}
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		srv := api.NewServer(newEngine(), logger.With().Str("component", "api").Logger(), version)
		return srv.ListenAndServe(ctx, addr)
	},
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "herdemi %s (commit %s, built %s)\n", version, commit, date)
			if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
				if bi, ok := debug.ReadBuildInfo(); ok {
					fmt.Fprintln(cmd.OutOrStdout(), bi.String())
				}
			}
		},
	}
}

func init() {
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().String("env-file", ".env", "Optional .env file with HERDEMI_* settings")

	calculateCmd.Flags().StringP("format", "f", "console", "Output format (console, csv, csv-summary, json, md, html, xlsx)")
	calculateCmd.Flags().StringP("output", "o", "", "Write to a file instead of stdout (required for xlsx)")
	calculateCmd.Flags().String("scenario", "", "Only run the named scenario")
	calculateCmd.Flags().Bool("monthly", false, "Include the month-by-month schedule in text output")

	acfCmd.Flags().String("plan", "", "Only show the named plan from the input file")
	acfCmd.Flags().Int("units", 1, "Number of units")
	acfCmd.Flags().Int("tenure", 11, "Plan tenure in months (11 or 30)")
	acfCmd.Flags().Bool("schedule", false, "Print the cumulative payment schedule")
	acfCmd.Flags().StringP("format", "f", "console", "Output format (console, json)")

	lineageCmd.Flags().Int("horizon", 60, "Horizon in months")
	lineageCmd.Flags().Int("units", 1, "Number of units to value")

	serveCmd.Flags().String("addr", "", "Listen address (default from HERDEMI_ADDR or "+config.DefaultAddr+")")

	vc := versionCmd()
	vc.Flags().BoolP("verbose", "v", false, "Include Go build information")

	rootCmd.AddCommand(calculateCmd, validateCmd, acfCmd, lineageCmd, serveCmd, vc)
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
