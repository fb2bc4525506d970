package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/rgehrsitz/herdemi/internal/compare"
	"github.com/rgehrsitz/herdemi/internal/domain"
	"github.com/rgehrsitz/herdemi/internal/output"
	"github.com/rgehrsitz/herdemi/internal/transform"
	"github.com/spf13/cobra"
)

var compareCmd = &cobra.Command{
	Use:   "compare [input-file]",
	Short: "Compare a scenario against variations or other scenarios",
	Long: `Run a base scenario and one alternative per template, transform or named
scenario from the same file, then report the differences in EMI, interest,
out-of-pocket top-ups and net cash.

Examples:
  herdemi compare scenarios.yaml --base baseline --scenarios cheaper-loan,two-units-seven-years
  herdemi compare scenarios.yaml --scenarios all
  herdemi compare scenarios.yaml --with no_cpf,tenure_84
  herdemi compare scenarios.yaml --transform adjust_rate:delta=-1.5 --transform set_units:units=3,scale_principal=true
  herdemi compare scenarios.yaml --with conservative --format html -o compare.html
  herdemi compare --list-templates`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCompare,
}

func runCompare(cmd *cobra.Command, args []string) error {
	if list, _ := cmd.Flags().GetBool("list-templates"); list {
		fmt.Fprint(cmd.OutOrStdout(), transform.GetTemplateHelp(transform.CreateBuiltInTemplates()))
		return nil
	}
	if len(args) != 1 {
		return fmt.Errorf("compare requires an input file")
	}

	with, _ := cmd.Flags().GetString("with")
	transforms, _ := cmd.Flags().GetStringArray("transform")
	scenarios, _ := cmd.Flags().GetString("scenarios")
	templates := transform.ParseTemplateList(with)
	if len(templates) == 0 && len(transforms) == 0 && strings.TrimSpace(scenarios) == "" {
		return fmt.Errorf("nothing to compare: pass --with, --transform or --scenarios (see --list-templates)")
	}

	cfg, err := loadConfig(cmd, args[0])
	if err != nil {
		return err
	}
	base, _ := cmd.Flags().GetString("base")
	if base == "" {
		base = cfg.Scenarios[0].Name
	}

	engine := compare.NewCompareEngine(newEngine())
	var set *compare.ComparisonSet
	if strings.TrimSpace(scenarios) != "" {
		set, err = engine.CompareScenarios(cmd.Context(), cfg, base, scenarioNames(cfg, base, scenarios))
	} else {
		set, err = engine.Compare(cmd.Context(), cfg, compare.CompareOptions{
			BaseScenarioName: base,
			Templates:        templates,
			Transforms:       transforms,
		})
	}
	if err != nil {
		return err
	}
	set.ConfigPath = args[0]

	w, closeFn, err := outputWriter(cmd)
	if err != nil {
		return err
	}
	if err := writeComparison(cmd, w, set); err != nil {
		return errors.Join(err, closeFn())
	}
	return closeFn()
}

// scenarioNames expands --scenarios; "all" means every scenario but the base.
func scenarioNames(cfg *domain.Configuration, base, list string) []string {
	if !strings.EqualFold(strings.TrimSpace(list), "all") {
		return transform.ParseTemplateList(list)
	}
	var names []string
	for _, s := range cfg.Scenarios {
		if !strings.EqualFold(s.Name, base) {
			names = append(names, s.Name)
		}
	}
	return names
}

func writeComparison(cmd *cobra.Command, w io.Writer, set *compare.ComparisonSet) error {
	format, _ := cmd.Flags().GetString("format")
	switch strings.ToLower(format) {
	case "table":
		tf := &compare.TableFormatter{}
		if compact, _ := cmd.Flags().GetBool("compact"); compact {
			_, err := fmt.Fprint(w, tf.FormatCompact(set))
			return err
		}
		_, err := fmt.Fprint(w, tf.Format(set))
		return err
	case "csv":
		out, err := (&compare.CSVFormatter{}).Format(set)
		if err != nil {
			return err
		}
		_, err = fmt.Fprint(w, out)
		return err
	case "json":
		out, err := (&compare.JSONFormatter{Pretty: true}).Format(set)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, out)
		return err
	default:
		// full per-scenario reports through the general formatters
		return output.WriteFormatted(w, format, set.ToReport())
	}
}

func init() {
	compareCmd.Flags().String("with", "", "Comma-separated built-in templates to compare")
	compareCmd.Flags().StringArray("transform", nil, "Transform spec name:key=value,... (repeatable)")
	compareCmd.Flags().String("scenarios", "", "Comma-separated scenarios from the file to compare against the base, or \"all\"")
	compareCmd.Flags().String("base", "", "Base scenario name (default: first scenario)")
	compareCmd.Flags().StringP("format", "f", "table", "Output format (table, csv, json, or any report format: md, html, xlsx, ...)")
	compareCmd.Flags().StringP("output", "o", "", "Write to a file instead of stdout")
	compareCmd.Flags().Bool("compact", false, "One line per scenario in table output")
	compareCmd.Flags().Bool("list-templates", false, "List the built-in templates")
	compareCmd.MarkFlagsMutuallyExclusive("scenarios", "with")
	compareCmd.MarkFlagsMutuallyExclusive("scenarios", "transform")

	rootCmd.AddCommand(compareCmd)
}
