package transform

import (
	"fmt"

	"github.com/rgehrsitz/herdemi/internal/domain"
	"github.com/shopspring/decimal"
)

// SetUnits changes the number of units purchased. With ScalePrincipal the
// principal is scaled in proportion, keeping the loan pool per unit unchanged.
type SetUnits struct {
	Units          int
	ScalePrincipal bool
}

func (t *SetUnits) Name() string { return "set_units" }

func (t *SetUnits) Description() string {
	if t.ScalePrincipal {
		return fmt.Sprintf("Buy %d units with a proportionally scaled loan", t.Units)
	}
	return fmt.Sprintf("Buy %d units", t.Units)
}

func (t *SetUnits) Validate(base *domain.Scenario) error {
	if err := requireBase(t.Name(), base); err != nil {
		return err
	}
	if t.Units < 0 || t.Units > MaxUnitCount {
		return NewTransformError(t.Name(), "validate", fmt.Sprintf("units must be 0-%d, got %d", MaxUnitCount, t.Units), nil)
	}
	if t.ScalePrincipal && base.UnitCount == 0 {
		return NewTransformError(t.Name(), "validate", "cannot scale principal from zero units", nil)
	}
	return nil
}

func (t *SetUnits) Apply(base *domain.Scenario) (*domain.Scenario, error) {
	modified := base.DeepCopy()
	if t.ScalePrincipal && base.UnitCount > 0 {
		modified.Principal = base.Principal.
			Mul(decimal.NewFromInt(int64(t.Units))).
			Div(decimal.NewFromInt(int64(base.UnitCount))).
			Round(2)
	}
	modified.UnitCount = t.Units
	return modified, nil
}

// ToggleCPF switches the cattle protection fund on or off.
type ToggleCPF struct {
	Enabled bool
}

func (t *ToggleCPF) Name() string { return "toggle_cpf" }

func (t *ToggleCPF) Description() string {
	return fmt.Sprintf("Turn CPF insurance %s", onOff(t.Enabled))
}

func (t *ToggleCPF) Validate(base *domain.Scenario) error {
	return requireBase(t.Name(), base)
}

func (t *ToggleCPF) Apply(base *domain.Scenario) (*domain.Scenario, error) {
	modified := base.DeepCopy()
	modified.CPFEnabled = t.Enabled
	return modified, nil
}

// ToggleCGF switches the calf growth fund on or off.
type ToggleCGF struct {
	Enabled bool
}

func (t *ToggleCGF) Name() string { return "toggle_cgf" }

func (t *ToggleCGF) Description() string {
	return fmt.Sprintf("Turn the calf growth fund %s", onOff(t.Enabled))
}

func (t *ToggleCGF) Validate(base *domain.Scenario) error {
	return requireBase(t.Name(), base)
}

func (t *ToggleCGF) Apply(base *domain.Scenario) (*domain.Scenario, error) {
	modified := base.DeepCopy()
	modified.CGFEnabled = t.Enabled
	return modified, nil
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
