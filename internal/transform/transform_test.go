package transform

import (
	"errors"
	"testing"

	"github.com/rgehrsitz/herdemi/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestScenario() *domain.Scenario {
	return &domain.Scenario{
		Name: "baseline",
		SimulationInput: domain.SimulationInput{
			Principal:         decimal.NewFromInt(400000),
			AnnualRatePercent: decimal.NewFromInt(18),
			TenureMonths:      60,
			UnitCount:         1,
			CPFEnabled:        true,
			CGFEnabled:        true,
		},
	}
}

func TestApplyTransforms_NilScenario(t *testing.T) {
	_, err := ApplyTransforms(nil, []ScenarioTransform{&SetTenure{Months: 36}})
	require.Error(t, err)
}

func TestApplyTransforms_EmptyReturnsCopy(t *testing.T) {
	base := createTestScenario()
	out, err := ApplyTransforms(base, nil)
	require.NoError(t, err)
	assert.Equal(t, base, out)
	assert.NotSame(t, base, out)
}

func TestApplyTransforms_NilTransform(t *testing.T) {
	_, err := ApplyTransforms(createTestScenario(), []ScenarioTransform{nil})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "index 0")
}

func TestApplyTransforms_Chain(t *testing.T) {
	base := createTestScenario()
	out, err := ApplyTransforms(base, []ScenarioTransform{
		&AdjustRate{Delta: decimal.NewFromInt(-2)},
		&SetTenure{Months: 84},
		&ToggleCGF{Enabled: false},
	})
	require.NoError(t, err)

	assert.True(t, out.AnnualRatePercent.Equal(decimal.NewFromInt(16)))
	assert.Equal(t, 84, out.TenureMonths)
	assert.False(t, out.CGFEnabled)
	assert.True(t, out.CPFEnabled)

	// base untouched
	assert.True(t, base.AnnualRatePercent.Equal(decimal.NewFromInt(18)))
	assert.Equal(t, 60, base.TenureMonths)
	assert.True(t, base.CGFEnabled)
}

func TestApplyTransforms_ValidationFailureStopsChain(t *testing.T) {
	_, err := ApplyTransforms(createTestScenario(), []ScenarioTransform{
		&SetTenure{Months: 36},
		&AdjustRate{Delta: decimal.NewFromInt(-50)},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "adjust_rate validation failed")

	var te *TransformError
	assert.True(t, errors.As(err, &te))
	assert.Equal(t, "adjust_rate", te.TransformName)
}

func TestLoanTransforms(t *testing.T) {
	base := createTestScenario()

	tests := []struct {
		name      string
		transform ScenarioTransform
		check     func(t *testing.T, s *domain.Scenario)
		wantErr   bool
	}{
		{
			name:      "set rate",
			transform: &SetRate{Rate: decimal.NewFromInt(12)},
			check: func(t *testing.T, s *domain.Scenario) {
				assert.True(t, s.AnnualRatePercent.Equal(decimal.NewFromInt(12)))
			},
		},
		{name: "set rate above 100", transform: &SetRate{Rate: decimal.NewFromInt(101)}, wantErr: true},
		{name: "set negative rate", transform: &SetRate{Rate: decimal.NewFromInt(-1)}, wantErr: true},
		{name: "adjust rate to zero", transform: &AdjustRate{Delta: decimal.NewFromInt(-18)},
			check: func(t *testing.T, s *domain.Scenario) {
				assert.True(t, s.AnnualRatePercent.IsZero())
			},
		},
		{name: "tenure zero", transform: &SetTenure{Months: 0}, wantErr: true},
		{name: "tenure too long", transform: &SetTenure{Months: MaxTenureMonths + 1}, wantErr: true},
		{
			name:      "scale principal",
			transform: &ScalePrincipal{Factor: decimal.RequireFromString("1.25")},
			check: func(t *testing.T, s *domain.Scenario) {
				assert.True(t, s.Principal.Equal(decimal.NewFromInt(500000)))
			},
		},
		{name: "scale by zero", transform: &ScalePrincipal{Factor: decimal.Zero}, wantErr: true},
		{
			name:      "set principal",
			transform: &SetPrincipal{Amount: decimal.NewFromInt(350000)},
			check: func(t *testing.T, s *domain.Scenario) {
				assert.True(t, s.Principal.Equal(decimal.NewFromInt(350000)))
			},
		},
		{name: "negative principal", transform: &SetPrincipal{Amount: decimal.NewFromInt(-1)}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.transform.Validate(base)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			out, err := tt.transform.Apply(base)
			require.NoError(t, err)
			tt.check(t, out)
			assert.NotEmpty(t, tt.transform.Description())
		})
	}
}

func TestSetUnits(t *testing.T) {
	base := createTestScenario()

	out, err := (&SetUnits{Units: 3}).Apply(base)
	require.NoError(t, err)
	assert.Equal(t, 3, out.UnitCount)
	assert.True(t, out.Principal.Equal(base.Principal))

	scaled, err := (&SetUnits{Units: 3, ScalePrincipal: true}).Apply(base)
	require.NoError(t, err)
	assert.True(t, scaled.Principal.Equal(decimal.NewFromInt(1200000)))

	assert.Error(t, (&SetUnits{Units: -1}).Validate(base))
	assert.Error(t, (&SetUnits{Units: MaxUnitCount + 1}).Validate(base))

	empty := createTestScenario()
	empty.UnitCount = 0
	assert.Error(t, (&SetUnits{Units: 2, ScalePrincipal: true}).Validate(empty))
	assert.NoError(t, (&SetUnits{Units: 2}).Validate(empty))
}

func TestToggleFunds(t *testing.T) {
	base := createTestScenario()

	out, err := (&ToggleCPF{Enabled: false}).Apply(base)
	require.NoError(t, err)
	assert.False(t, out.CPFEnabled)
	assert.True(t, out.CGFEnabled)

	out, err = (&ToggleCGF{Enabled: false}).Apply(out)
	require.NoError(t, err)
	assert.False(t, out.CPFEnabled)
	assert.False(t, out.CGFEnabled)

	assert.Equal(t, "Turn CPF insurance off", (&ToggleCPF{}).Description())
	assert.Error(t, (&ToggleCGF{}).Validate(nil))
}

func TestTransformError(t *testing.T) {
	inner := errors.New("boom")
	err := NewTransformError("set_rate", "apply", "bad rate", inner)
	assert.Equal(t, "transform set_rate (apply): bad rate: boom", err.Error())
	assert.ErrorIs(t, err, inner)

	plain := NewTransformError("set_rate", "validate", "bad rate", nil)
	assert.Equal(t, "transform set_rate (validate): bad rate", plain.Error())
}

func TestTransformRegistry(t *testing.T) {
	r := NewTransformRegistry()

	assert.Equal(t, []string{
		"adjust_rate", "scale_principal", "set_principal", "set_rate",
		"set_tenure", "set_units", "toggle_cgf", "toggle_cpf",
	}, r.List())

	_, err := r.Create("postpone", nil)
	assert.Error(t, err)
}

func TestParseTransformSpec(t *testing.T) {
	r := NewTransformRegistry()

	tests := []struct {
		spec    string
		want    ScenarioTransform
		wantErr string
	}{
		{spec: "adjust_rate:delta=-1.5", want: &AdjustRate{Delta: decimal.RequireFromString("-1.5")}},
		{spec: "set_tenure: months=84", want: &SetTenure{Months: 84}},
		{spec: "set_units:units=2,scale_principal=yes", want: &SetUnits{Units: 2, ScalePrincipal: true}},
		{spec: "toggle_cpf:enabled=off", want: &ToggleCPF{Enabled: false}},
		{spec: "toggle_cgf:", want: &ToggleCGF{Enabled: false}},
		{spec: "set_rate", wantErr: "expected 'name:params'"},
		{spec: "set_rate:12", wantErr: "expected 'key=value'"},
		{spec: "set_rate:value=12", wantErr: "requires 'rate'"},
		{spec: "set_tenure:months=many", wantErr: "invalid months"},
		{spec: "toggle_cpf:enabled=maybe", wantErr: "invalid enabled"},
	}

	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			got, err := r.ParseTransformSpec(tt.spec)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			if d, ok := tt.want.(*AdjustRate); ok {
				assert.True(t, d.Delta.Equal(got.(*AdjustRate).Delta))
				return
			}
			assert.Equal(t, tt.want, got)
		})
	}
}
