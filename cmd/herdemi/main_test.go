package main

import (
	"bytes"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/rgehrsitz/herdemi/internal/calculation"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testConfig = `scenarios:
  - name: baseline
    principal: 400000
    annual_rate_percent: 18
    tenure_months: 60
    unit_count: 1
    cpf_enabled: true
    cgf_enabled: true
  - name: cheaper
    principal: 400000
    annual_rate_percent: 12
    tenure_months: 60
    unit_count: 1
    cpf_enabled: true
    cgf_enabled: true
acf_plans:
  - name: short
    unit_count: 1
    tenure_months: 11
`

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenarios.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

// resetFlags restores every flag to its default so runs do not leak state.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	if !slices.Contains(args, "--env-file") {
		args = append(args, "--env-file", filepath.Join(t.TempDir(), "none.env"))
	}
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return buf.String(), err
}

func TestRootCommand(t *testing.T) {
	assert.Equal(t, "herdemi", rootCmd.Use)
	assert.NotEmpty(t, rootCmd.Short)
	assert.NotEmpty(t, rootCmd.Long)

	names := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"calculate", "validate", "acf", "lineage", "serve", "compare", "sensitivity", "break-even", "version"} {
		assert.True(t, names[want], "missing command %s", want)
	}
}

func TestCalculate(t *testing.T) {
	path := writeConfig(t, testConfig)

	t.Run("console", func(t *testing.T) {
		out, err := execute(t, "calculate", path)
		require.NoError(t, err)
		assert.Contains(t, out, "SCENARIO 1: baseline")
		assert.Contains(t, out, "SCENARIO 2: cheaper")
		assert.Contains(t, out, "ACF PLAN: short")
		assert.Contains(t, out, "10,157.37")
	})

	t.Run("single scenario as json", func(t *testing.T) {
		out, err := execute(t, "calculate", path, "--scenario", "cheaper", "--format", "json")
		require.NoError(t, err)
		assert.Contains(t, out, "cheaper")
	})

	t.Run("unknown scenario", func(t *testing.T) {
		_, err := execute(t, "calculate", path, "--scenario", "nope")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "scenario not found")
	})

	t.Run("xlsx needs an output file", func(t *testing.T) {
		out, err := execute(t, "calculate", path, "--format", "xlsx")
		require.ErrorIs(t, err, ErrBinaryToStdout)
		assert.NotContains(t, out, "PK")

		dest := filepath.Join(t.TempDir(), "report.xlsx")
		_, err = execute(t, "calculate", path, "--format", "xlsx", "--output", dest)
		require.NoError(t, err)
		info, err := os.Stat(dest)
		require.NoError(t, err)
		assert.Positive(t, info.Size())
	})

	t.Run("unknown format with output file", func(t *testing.T) {
		dest := filepath.Join(t.TempDir(), "report.txt")
		_, err := execute(t, "calculate", path, "--format", "pdf", "--output", dest)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unsupported format: pdf")
	})

	t.Run("to file", func(t *testing.T) {
		dest := filepath.Join(t.TempDir(), "report.md")
		_, err := execute(t, "calculate", path, "--format", "md", "--output", dest)
		require.NoError(t, err)
		data, err := os.ReadFile(dest)
		require.NoError(t, err)
		assert.Contains(t, string(data), "baseline")
	})
}

func TestValidate(t *testing.T) {
	out, err := execute(t, "validate", writeConfig(t, testConfig))
	require.NoError(t, err)
	assert.Contains(t, out, "is valid (2 scenarios, 1 ACF plans)")

	bad := writeConfig(t, `scenarios:
  - name: broken
    principal: 400000
    annual_rate_percent: 18
    tenure_months: 0
    unit_count: 1
`)
	_, err = execute(t, "validate", bad)
	assert.Error(t, err)
}

func TestACF(t *testing.T) {
	out, err := execute(t, "acf", "--units", "2", "--tenure", "30")
	require.NoError(t, err)
	assert.Contains(t, out, "ACF")

	_, err = execute(t, "acf", "--units", "1", "--tenure", "12")
	assert.Error(t, err)
}

func TestACFPlanFromFile(t *testing.T) {
	cfg := testConfig + `  - name: long
    unit_count: 2
    tenure_months: 30
`
	path := writeConfig(t, cfg)

	out, err := execute(t, "acf", path)
	require.NoError(t, err)
	assert.Contains(t, out, "short")
	assert.Contains(t, out, "long")

	out, err = execute(t, "acf", path, "--plan", "LONG")
	require.NoError(t, err)
	assert.Contains(t, out, "long")
	assert.Contains(t, out, "30 months")
	assert.NotContains(t, out, "11 months")

	_, err = execute(t, "acf", path, "--plan", "missing")
	assert.ErrorIs(t, err, ErrACFPlanNotFound)

	_, err = execute(t, "acf", "--plan", "long")
	assert.Error(t, err)
}

func TestLineage(t *testing.T) {
	out, err := execute(t, "lineage", "--horizon", "60", "--units", "3")
	require.NoError(t, err)
	assert.Contains(t, out, "BUFFALO TREE (per unit, horizon 60 months)")
	assert.Contains(t, out, "Value of 3 units")

	_, err = execute(t, "lineage", "--horizon", "0")
	assert.Error(t, err)
}

func TestCompare(t *testing.T) {
	path := writeConfig(t, testConfig)

	out, err := execute(t, "compare", path, "--with", "no_cpf,tenure_84")
	require.NoError(t, err)
	assert.Contains(t, out, "BUFFALO UNIT SCENARIO COMPARISON")
	assert.Contains(t, out, "baseline")

	_, err = execute(t, "compare", path)
	assert.Error(t, err, "nothing to compare")

	out, err = execute(t, "compare", path, "--base", "baseline", "--scenarios", "cheaper")
	require.NoError(t, err)
	assert.Contains(t, out, "cheaper")
	assert.Contains(t, out, "COMPARISON TO BASE")

	out, err = execute(t, "compare", path, "--scenarios", "all", "--format", "json")
	require.NoError(t, err)
	assert.Contains(t, out, `"cheaper"`)

	_, err = execute(t, "compare", path, "--scenarios", "ghost")
	assert.ErrorIs(t, err, calculation.ErrScenarioNotFound)

	_, err = execute(t, "compare", path, "--scenarios", "cheaper", "--with", "no_cpf")
	assert.Error(t, err, "scenarios and templates are exclusive")

	out, err = execute(t, "compare", "--list-templates")
	require.NoError(t, err)
	assert.Contains(t, out, "Available Templates")
}

func TestSensitivity(t *testing.T) {
	path := writeConfig(t, testConfig)

	out, err := execute(t, "sensitivity", path, "--parameter", "annual_rate_percent", "--min", "10", "--max", "20", "--steps", "3")
	require.NoError(t, err)
	assert.Contains(t, out, "SENSITIVITY ANALYSIS: ANNUAL RATE PERCENT")
	assert.Contains(t, out, "Base Scenario: baseline")

	_, err = execute(t, "sensitivity", path, "--parameter", "milk_price")
	assert.Error(t, err)

	_, err = execute(t, "sensitivity", path, "--min", "20", "--max", "10")
	assert.Error(t, err)
	_, err = execute(t, "sensitivity", path, "--parameter", "unit_count", "--min", "-2", "--max", "0", "-f", "json")
	require.Error(t, err)
	assert.ErrorIs(t, err, calculation.ErrParameterOutOfRange)

	_, err = execute(t, "sensitivity", path, "--parameter", "annual_rate_percent", "--min", "-50", "--max", "-10")
	assert.ErrorIs(t, err, calculation.ErrParameterOutOfRange)
}

func TestBreakEven(t *testing.T) {
	path := writeConfig(t, testConfig)

	out, err := execute(t, "break-even", path, "--target", "tenure", "--goal", "maximize_net_cash")
	require.NoError(t, err)
	assert.Contains(t, out, "BREAK-EVEN RESULTS")

	_, err = execute(t, "break-even", path, "--target", "tenure", "--min-tenure", "90", "--max-tenure", "30")
	assert.Error(t, err)
}

func TestMalformedEnvFile(t *testing.T) {
	envFile := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("HERDEMI-LOG-LEVEL=debug\n"), 0o600))

	_, err := execute(t, "version", "--env-file", envFile)
	require.Error(t, err)
	assert.Contains(t, err.Error(), envFile)
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "herdemi dev")
}
