package breakeven

import (
	"errors"

	"github.com/rgehrsitz/herdemi/internal/domain"
	"github.com/shopspring/decimal"
)

// OptimizationTarget defines what parameter to optimize
type OptimizationTarget string

const (
	OptimizeRate      OptimizationTarget = "annual_rate"
	OptimizePrincipal OptimizationTarget = "principal"
	OptimizeTenure    OptimizationTarget = "tenure"
	OptimizeAll       OptimizationTarget = "all"
)

// OptimizationGoal defines what outcome to achieve
type OptimizationGoal string

const (
	// GoalZeroLoss finds the boundary at which the investor never pays out of pocket:
	// the highest rate, the lowest principal or the shortest tenure.
	GoalZeroLoss OptimizationGoal = "zero_loss"
	// GoalMaximizeNetCash grid-searches for the best net cash over the tenure.
	GoalMaximizeNetCash OptimizationGoal = "maximize_net_cash"
)

// ErrInfeasible is returned when no value in the searched range meets the goal.
var ErrInfeasible = errors.New("no break-even point in range")

// Constraints define bounds for optimization parameters
type Constraints struct {
	// Annual rate bounds in percent
	MinRate *decimal.Decimal `json:"min_rate,omitempty"`
	MaxRate *decimal.Decimal `json:"max_rate,omitempty"`

	// Principal bounds; default from the required capital of the base scenario
	MinPrincipal *decimal.Decimal `json:"min_principal,omitempty"`
	MaxPrincipal *decimal.Decimal `json:"max_principal,omitempty"`

	// Tenure bounds in months
	MinTenure *int `json:"min_tenure,omitempty"`
	MaxTenure *int `json:"max_tenure,omitempty"`
}

// DefaultConstraints returns sensible default constraints
func DefaultConstraints() Constraints {
	minRate := decimal.Zero
	maxRate := decimal.NewFromInt(36)
	minTenure := 12
	maxTenure := 180

	return Constraints{
		MinRate:   &minRate,
		MaxRate:   &maxRate,
		MinTenure: &minTenure,
		MaxTenure: &maxTenure,
	}
}

// OptimizationRequest defines the parameters for an optimization run
type OptimizationRequest struct {
	BaseScenario  *domain.Scenario   `json:"-"`
	Target        OptimizationTarget `json:"target"`
	Goal          OptimizationGoal   `json:"goal"`
	Constraints   Constraints        `json:"constraints"`
	MaxIterations int                `json:"maxIterations"`
	Tolerance     decimal.Decimal    `json:"tolerance"` // bisection width in the target's own unit
}

// OptimizationResult contains the results of an optimization run
type OptimizationResult struct {
	// Optimization metadata
	Request         OptimizationRequest `json:"request"`
	Success         bool                `json:"success"`
	Iterations      int                 `json:"iterations"`
	ConvergenceInfo string              `json:"convergenceInfo"`

	// Optimized parameters
	OptimalRate      *decimal.Decimal `json:"optimal_rate,omitempty"`
	OptimalPrincipal *decimal.Decimal `json:"optimal_principal,omitempty"`
	OptimalTenure    *int             `json:"optimal_tenure,omitempty"`

	// Results at optimal parameters
	Scenario    domain.Scenario `json:"scenario"`
	Installment decimal.Decimal `json:"installment"`
	TotalLoss   decimal.Decimal `json:"total_loss"`
	NetCash     decimal.Decimal `json:"net_cash"`
	AssetValue  decimal.Decimal `json:"asset_value"`
	LossMonths  int             `json:"loss_months"`

	// Comparison to base
	BaseNetCash       decimal.Decimal `json:"base_net_cash"`
	BaseTotalLoss     decimal.Decimal `json:"base_total_loss"`
	NetCashDiffToBase decimal.Decimal `json:"net_cash_diff_to_base"`
}

// MultiDimensionalResult contains results when optimizing multiple parameters
type MultiDimensionalResult struct {
	Results           []OptimizationResult `json:"results"`
	BestByNetCash     *OptimizationResult  `json:"best_by_net_cash,omitempty"`
	LowestInstallment *OptimizationResult  `json:"lowest_installment,omitempty"`
	Recommendations   []string             `json:"recommendations"`
}

// SolverOptions configures the solver algorithm
type SolverOptions struct {
	GridResolution     int             // Points scanned before bisecting a non-monotone range
	MaxIterations      int             // Maximum simulations per optimization
	RateTolerance      decimal.Decimal // Bisection width for rates, percentage points
	PrincipalTolerance decimal.Decimal // Bisection width for principal, rupees
	LossTolerance      decimal.Decimal // Out-of-pocket total treated as zero
}

// DefaultSolverOptions returns default solver configuration
func DefaultSolverOptions() SolverOptions {
	return SolverOptions{
		GridResolution:     20,
		MaxIterations:      200,
		RateTolerance:      decimal.RequireFromString("0.001"),
		PrincipalTolerance: decimal.NewFromInt(100),
		LossTolerance:      decimal.RequireFromString("0.01"),
	}
}

// Validate checks if constraints are internally consistent
func (c *Constraints) Validate() error {
	if c.MinRate != nil && c.MinRate.IsNegative() {
		return &BreakEvenError{Operation: "validate_constraints", Message: "min_rate cannot be negative"}
	}
	if c.MinRate != nil && c.MaxRate != nil && c.MinRate.GreaterThan(*c.MaxRate) {
		return &BreakEvenError{Operation: "validate_constraints", Message: "min_rate cannot be greater than max_rate"}
	}
	if c.MaxRate != nil && c.MaxRate.GreaterThan(decimal.NewFromInt(100)) {
		return &BreakEvenError{Operation: "validate_constraints", Message: "max_rate cannot exceed 100"}
	}

	if c.MinPrincipal != nil && c.MinPrincipal.IsNegative() {
		return &BreakEvenError{Operation: "validate_constraints", Message: "min_principal cannot be negative"}
	}
	if c.MinPrincipal != nil && c.MaxPrincipal != nil && c.MinPrincipal.GreaterThan(*c.MaxPrincipal) {
		return &BreakEvenError{Operation: "validate_constraints", Message: "min_principal cannot be greater than max_principal"}
	}

	if c.MinTenure != nil && *c.MinTenure < 1 {
		return &BreakEvenError{Operation: "validate_constraints", Message: "min_tenure must be at least 1 month"}
	}
	if c.MinTenure != nil && c.MaxTenure != nil && *c.MinTenure > *c.MaxTenure {
		return &BreakEvenError{Operation: "validate_constraints", Message: "min_tenure cannot be greater than max_tenure"}
	}

	return nil
}

// BreakEvenError represents errors from break-even solver
type BreakEvenError struct {
	Operation string
	Message   string
	Cause     error
}

func (e *BreakEvenError) Error() string {
	if e.Cause != nil {
		return e.Operation + ": " + e.Message + ": " + e.Cause.Error()
	}
	return e.Operation + ": " + e.Message
}

func (e *BreakEvenError) Unwrap() error {
	return e.Cause
}
