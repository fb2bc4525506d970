package transform

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTemplateRegistry_RegisterAndGet(t *testing.T) {
	registry := NewTemplateRegistry()
	registry.Register(Template{Name: "test_template", Description: "A test template"})

	got, ok := registry.Get("test_template")
	require.True(t, ok)
	assert.Equal(t, "A test template", got.Description)

	_, ok = registry.Get("TEST_TEMPLATE")
	assert.True(t, ok, "lookup is case-insensitive")

	_, ok = registry.Get("nonexistent")
	assert.False(t, ok)

	_, err := registry.Lookup("nonexistent")
	assert.ErrorIs(t, err, ErrTemplateNotFound)
}

func TestCreateBuiltInTemplates(t *testing.T) {
	registry := CreateBuiltInTemplates()
	for _, name := range []string{
		"rate_minus_2", "rate_plus_2", "tenure_36", "tenure_84", "tenure_120",
		"no_cpf", "no_cgf", "no_funds", "all_funds", "double_units",
		"conservative", "stretch",
	} {
		tmpl, ok := registry.Get(name)
		require.True(t, ok, name)
		assert.NotEmpty(t, tmpl.Transforms, name)
		assert.NotEmpty(t, tmpl.Category, name)
	}
	assert.Len(t, registry.List(), 12)
}

func TestApplyTemplate_BuiltIns(t *testing.T) {
	registry := CreateBuiltInTemplates()
	base := createTestScenario()

	apply := func(name string) Template {
		tmpl, ok := registry.Get(name)
		require.True(t, ok)
		return tmpl
	}

	out, err := ApplyTemplate(base, apply("rate_minus_2"))
	require.NoError(t, err)
	assert.True(t, out.AnnualRatePercent.Equal(decimal.NewFromInt(16)))

	out, err = ApplyTemplate(base, apply("no_funds"))
	require.NoError(t, err)
	assert.False(t, out.CPFEnabled)
	assert.False(t, out.CGFEnabled)

	out, err = ApplyTemplate(base, apply("double_units"))
	require.NoError(t, err)
	assert.Equal(t, 2, out.UnitCount)
	assert.True(t, out.Principal.Equal(decimal.NewFromInt(800000)))

	out, err = ApplyTemplate(base, apply("stretch"))
	require.NoError(t, err)
	assert.Equal(t, 84, out.TenureMonths)
	assert.False(t, out.CGFEnabled)

	out, err = ApplyTemplate(base, Template{Name: "empty"})
	require.NoError(t, err)
	assert.Equal(t, base, out)
}

func TestApplyTemplate_DoubleUnitsFromZero(t *testing.T) {
	base := createTestScenario()
	base.UnitCount = 0

	tmpl, _ := CreateBuiltInTemplates().Get("double_units")
	_, err := ApplyTemplate(base, tmpl)
	assert.Error(t, err)
}

func TestParseTemplateList(t *testing.T) {
	assert.Nil(t, ParseTemplateList(""))
	assert.Equal(t, []string{"no_cpf", "rate_plus_2"}, ParseTemplateList(" no_cpf , ,rate_plus_2"))
}

func TestGetTemplateHelp(t *testing.T) {
	assert.Equal(t, "No templates registered", GetTemplateHelp(NewTemplateRegistry()))

	help := GetTemplateHelp(CreateBuiltInTemplates())
	assert.Contains(t, help, "Loan Terms:")
	assert.Contains(t, help, "Fund Coverage:")
	assert.Contains(t, help, "Herd Size:")
	assert.Contains(t, help, "Combination Strategies:")
	assert.Contains(t, help, "rate_plus_2")
	assert.Contains(t, help, "herdemi compare")

	assert.Less(t, strings.Index(help, "Loan Terms"), strings.Index(help, "Fund Coverage"))
}
