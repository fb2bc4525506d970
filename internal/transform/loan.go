package transform

import (
	"fmt"

	"github.com/rgehrsitz/herdemi/internal/domain"
	"github.com/shopspring/decimal"
)

// Bounds shared with configuration validation.
const (
	MaxTenureMonths = 600
	MaxUnitCount    = 10000
)

var maxAnnualRate = decimal.NewFromInt(100)

// AdjustRate shifts the annual interest rate by Delta percentage points.
type AdjustRate struct {
	Delta decimal.Decimal
}

func (t *AdjustRate) Name() string { return "adjust_rate" }

func (t *AdjustRate) Description() string {
	return fmt.Sprintf("Adjust the annual rate by %s percentage points", t.Delta.StringFixed(2))
}

func (t *AdjustRate) Validate(base *domain.Scenario) error {
	if err := requireBase(t.Name(), base); err != nil {
		return err
	}
	next := base.AnnualRatePercent.Add(t.Delta)
	if next.IsNegative() || next.GreaterThan(maxAnnualRate) {
		return NewTransformError(t.Name(), "validate", fmt.Sprintf("resulting rate %s%% is outside 0-100", next.String()), nil)
	}
	return nil
}

func (t *AdjustRate) Apply(base *domain.Scenario) (*domain.Scenario, error) {
	modified := base.DeepCopy()
	modified.AnnualRatePercent = base.AnnualRatePercent.Add(t.Delta)
	return modified, nil
}

// SetRate replaces the annual interest rate.
type SetRate struct {
	Rate decimal.Decimal
}

func (t *SetRate) Name() string { return "set_rate" }

func (t *SetRate) Description() string {
	return fmt.Sprintf("Set the annual rate to %s%%", t.Rate.StringFixed(2))
}

func (t *SetRate) Validate(base *domain.Scenario) error {
	if err := requireBase(t.Name(), base); err != nil {
		return err
	}
	if t.Rate.IsNegative() || t.Rate.GreaterThan(maxAnnualRate) {
		return NewTransformError(t.Name(), "validate", fmt.Sprintf("rate %s%% is outside 0-100", t.Rate.String()), nil)
	}
	return nil
}

func (t *SetRate) Apply(base *domain.Scenario) (*domain.Scenario, error) {
	modified := base.DeepCopy()
	modified.AnnualRatePercent = t.Rate
	return modified, nil
}

// SetTenure replaces the loan tenure.
type SetTenure struct {
	Months int
}

func (t *SetTenure) Name() string { return "set_tenure" }

func (t *SetTenure) Description() string {
	return fmt.Sprintf("Set the loan tenure to %d months", t.Months)
}

func (t *SetTenure) Validate(base *domain.Scenario) error {
	if err := requireBase(t.Name(), base); err != nil {
		return err
	}
	if t.Months < 1 || t.Months > MaxTenureMonths {
		return NewTransformError(t.Name(), "validate", fmt.Sprintf("tenure must be 1-%d months, got %d", MaxTenureMonths, t.Months), nil)
	}
	return nil
}

func (t *SetTenure) Apply(base *domain.Scenario) (*domain.Scenario, error) {
	modified := base.DeepCopy()
	modified.TenureMonths = t.Months
	return modified, nil
}

// SetPrincipal replaces the loan principal.
type SetPrincipal struct {
	Amount decimal.Decimal
}

func (t *SetPrincipal) Name() string { return "set_principal" }

func (t *SetPrincipal) Description() string {
	return fmt.Sprintf("Set the principal to %s", t.Amount.StringFixed(0))
}

func (t *SetPrincipal) Validate(base *domain.Scenario) error {
	if err := requireBase(t.Name(), base); err != nil {
		return err
	}
	if t.Amount.IsNegative() {
		return NewTransformError(t.Name(), "validate", "principal cannot be negative", nil)
	}
	return nil
}

func (t *SetPrincipal) Apply(base *domain.Scenario) (*domain.Scenario, error) {
	modified := base.DeepCopy()
	modified.Principal = t.Amount
	return modified, nil
}

// ScalePrincipal multiplies the loan principal by Factor.
type ScalePrincipal struct {
	Factor decimal.Decimal
}

func (t *ScalePrincipal) Name() string { return "scale_principal" }

func (t *ScalePrincipal) Description() string {
	return fmt.Sprintf("Scale the principal by %s", t.Factor.String())
}

func (t *ScalePrincipal) Validate(base *domain.Scenario) error {
	if err := requireBase(t.Name(), base); err != nil {
		return err
	}
	if !t.Factor.IsPositive() {
		return NewTransformError(t.Name(), "validate", "factor must be positive", nil)
	}
	return nil
}

func (t *ScalePrincipal) Apply(base *domain.Scenario) (*domain.Scenario, error) {
	modified := base.DeepCopy()
	modified.Principal = base.Principal.Mul(t.Factor).Round(2)
	return modified, nil
}
