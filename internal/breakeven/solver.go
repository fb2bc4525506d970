package breakeven

import (
	"context"
	"errors"
	"fmt"

	"github.com/rgehrsitz/herdemi/internal/calculation"
	"github.com/rgehrsitz/herdemi/internal/domain"
	"github.com/rgehrsitz/herdemi/internal/transform"
	"github.com/shopspring/decimal"
)

var (
	two = decimal.NewFromInt(2)

	errIterationLimit = errors.New("iteration limit reached")
)

// Solver finds break-even loan terms for a scenario
type Solver struct {
	CalcEngine *calculation.CalculationEngine
	Options    SolverOptions
}

// NewSolver creates a new break-even solver
func NewSolver(calcEngine *calculation.CalculationEngine, options SolverOptions) *Solver {
	if calcEngine == nil {
		calcEngine = calculation.NewCalculationEngine()
	}
	return &Solver{
		CalcEngine: calcEngine,
		Options:    options,
	}
}

// NewDefaultSolver creates a solver with default options
func NewDefaultSolver(calcEngine *calculation.CalculationEngine) *Solver {
	return NewSolver(calcEngine, DefaultSolverOptions())
}

// Optimize performs optimization based on the request
func (s *Solver) Optimize(ctx context.Context, req OptimizationRequest) (*OptimizationResult, error) {
	if req.BaseScenario == nil {
		return nil, &BreakEvenError{Operation: "optimize", Message: "base scenario is required"}
	}
	if err := req.Constraints.Validate(); err != nil {
		return nil, err
	}

	if req.MaxIterations <= 0 {
		req.MaxIterations = s.Options.MaxIterations
	}
	if req.Goal == "" {
		req.Goal = GoalZeroLoss
	}
	if req.Goal != GoalZeroLoss && req.Goal != GoalMaximizeNetCash {
		return nil, &BreakEvenError{
			Operation: "optimize",
			Message:   fmt.Sprintf("unsupported optimization goal: %s", req.Goal),
		}
	}

	baseRes, err := s.CalcEngine.RunScenario(ctx, req.BaseScenario)
	if err != nil {
		return nil, &BreakEvenError{Operation: "optimize", Message: "failed to calculate base scenario", Cause: err}
	}

	p := &probe{solver: s, ctx: ctx, base: req.BaseScenario, limit: req.MaxIterations}

	var result *OptimizationResult
	switch req.Target {
	case OptimizeRate:
		result, err = s.optimizeRate(p, req)
	case OptimizePrincipal:
		result, err = s.optimizePrincipal(p, req)
	case OptimizeTenure:
		result, err = s.optimizeTenure(p, req)
	default:
		return nil, &BreakEvenError{
			Operation: "optimize",
			Message:   fmt.Sprintf("unsupported optimization target: %s", req.Target),
		}
	}
	if err != nil {
		return nil, err
	}

	result.Iterations = p.count
	result.BaseNetCash = baseRes.Totals.NetCash
	result.BaseTotalLoss = baseRes.Totals.Loss
	result.NetCashDiffToBase = result.NetCash.Sub(baseRes.Totals.NetCash)
	return result, nil
}

// probe runs one transformed copy of the base scenario per call, up to limit.
type probe struct {
	solver *Solver
	ctx    context.Context
	base   *domain.Scenario
	limit  int
	count  int
}

type point struct {
	value    decimal.Decimal
	scenario *domain.Scenario
	result   *domain.SimulationResult
}

func (p *probe) run(value decimal.Decimal, t transform.ScenarioTransform) (point, error) {
	if err := p.ctx.Err(); err != nil {
		return point{}, err
	}
	if p.count >= p.limit {
		return point{}, errIterationLimit
	}
	p.count++

	sc, err := transform.ApplyTransforms(p.base, []transform.ScenarioTransform{t})
	if err != nil {
		return point{}, err
	}
	res, err := p.solver.CalcEngine.RunScenario(p.ctx, sc)
	if err != nil {
		return point{}, err
	}
	return point{value: value, scenario: sc, result: res}, nil
}

func (s *Solver) lossFree(res *domain.SimulationResult) bool {
	return res.Totals.Loss.LessThanOrEqual(s.Options.LossTolerance)
}

// optimizeRate finds the highest rate with no out-of-pocket payments. Loss is
// non-decreasing in the rate, so plain bisection applies.
func (s *Solver) optimizeRate(p *probe, req OptimizationRequest) (*OptimizationResult, error) {
	const op = "optimize_rate"
	lo, hi := decimal.Zero, decimal.NewFromInt(36)
	if req.Constraints.MinRate != nil {
		lo = *req.Constraints.MinRate
	}
	if req.Constraints.MaxRate != nil {
		hi = *req.Constraints.MaxRate
	}
	setRate := func(v decimal.Decimal) transform.ScenarioTransform { return &transform.SetRate{Rate: v} }

	if req.Goal == GoalMaximizeNetCash {
		return s.gridSearch(p, req, op, linspace(lo, hi, s.Options.GridResolution), setRate)
	}

	tol := req.Tolerance
	if !tol.IsPositive() {
		tol = s.Options.RateTolerance
	}

	low, err := p.run(lo, setRate(lo))
	if err != nil {
		return nil, wrap(op, "failed to evaluate minimum rate", err)
	}
	if !s.lossFree(low.result) {
		return nil, &BreakEvenError{
			Operation: op,
			Message:   fmt.Sprintf("out-of-pocket payments even at %s%%", lo.String()),
			Cause:     ErrInfeasible,
		}
	}

	high, err := p.run(hi, setRate(hi))
	if err != nil {
		return nil, wrap(op, "failed to evaluate maximum rate", err)
	}
	if s.lossFree(high.result) {
		r := s.evaluateResult(req, high)
		r.Success = true
		r.ConvergenceInfo = "No out-of-pocket payments anywhere in the rate range"
		return r, nil
	}

	best, converged, err := s.bisect(p, low.value, hi, tol, setRate, false, low)
	if err != nil {
		return nil, wrap(op, "bisection failed", err)
	}
	return s.finish(req, best, converged, "Bisection converged within "+tol.String()+" percentage points"), nil
}

// optimizePrincipal finds the lowest principal with no out-of-pocket payments.
// Loss is not monotone in the principal, so the range is scanned first and
// the first crossing refined by bisection.
func (s *Solver) optimizePrincipal(p *probe, req OptimizationRequest) (*OptimizationResult, error) {
	const op = "optimize_principal"
	base := req.BaseScenario
	lo := calculation.RequiredCapital(base.UnitCount, base.CPFEnabled)
	if req.Constraints.MinPrincipal != nil {
		lo = *req.Constraints.MinPrincipal
	}
	hi := lo.Mul(decimal.NewFromInt(3))
	if req.Constraints.MaxPrincipal != nil {
		hi = *req.Constraints.MaxPrincipal
	}
	if !hi.IsPositive() {
		return nil, &BreakEvenError{Operation: op, Message: "principal range is empty; set max_principal or buy at least one unit"}
	}
	setPrincipal := func(v decimal.Decimal) transform.ScenarioTransform { return &transform.SetPrincipal{Amount: v} }

	grid := linspace(lo, hi, s.Options.GridResolution)
	if req.Goal == GoalMaximizeNetCash {
		return s.gridSearch(p, req, op, grid, setPrincipal)
	}

	tol := req.Tolerance
	if !tol.IsPositive() {
		tol = s.Options.PrincipalTolerance
	}

	var prev *point
	for _, v := range grid {
		pt, err := p.run(v, setPrincipal(v))
		if err != nil {
			return nil, wrap(op, "failed to evaluate principal", err)
		}
		if !s.lossFree(pt.result) {
			prev = &pt
			continue
		}
		if prev == nil {
			r := s.evaluateResult(req, pt)
			r.Success = true
			r.ConvergenceInfo = "Minimum principal is already loss-free"
			return r, nil
		}
		best, converged, err := s.bisect(p, prev.value, pt.value, tol, setPrincipal, true, pt)
		if err != nil {
			return nil, wrap(op, "bisection failed", err)
		}
		return s.finish(req, best, converged, "Bisection converged within ₹"+tol.String()), nil
	}

	return nil, &BreakEvenError{
		Operation: op,
		Message:   fmt.Sprintf("out-of-pocket payments for every principal from %s to %s", lo.StringFixed(0), hi.StringFixed(0)),
		Cause:     ErrInfeasible,
	}
}

// optimizeTenure walks tenures month by month for the shortest loss-free one.
func (s *Solver) optimizeTenure(p *probe, req OptimizationRequest) (*OptimizationResult, error) {
	const op = "optimize_tenure"
	lo, hi := 12, 180
	if req.Constraints.MinTenure != nil {
		lo = *req.Constraints.MinTenure
	}
	if req.Constraints.MaxTenure != nil {
		hi = *req.Constraints.MaxTenure
	}
	setTenure := func(v decimal.Decimal) transform.ScenarioTransform {
		return &transform.SetTenure{Months: int(v.IntPart())}
	}

	if req.Goal == GoalMaximizeNetCash {
		step := (hi - lo) / max(s.Options.GridResolution, 1)
		step = max(step, 1)
		var grid []decimal.Decimal
		for n := lo; n <= hi; n += step {
			grid = append(grid, decimal.NewFromInt(int64(n)))
		}
		return s.gridSearch(p, req, op, grid, setTenure)
	}

	var closest *point
	for n := lo; n <= hi; n++ {
		v := decimal.NewFromInt(int64(n))
		pt, err := p.run(v, setTenure(v))
		if errors.Is(err, errIterationLimit) {
			if closest == nil {
				return nil, wrap(op, "no tenure evaluated", err)
			}
			return s.finish(req, *closest, false, ""), nil
		}
		if err != nil {
			return nil, wrap(op, "failed to evaluate tenure", err)
		}
		if s.lossFree(pt.result) {
			r := s.evaluateResult(req, pt)
			r.Success = true
			r.ConvergenceInfo = fmt.Sprintf("Evaluated %d tenures", n-lo+1)
			return r, nil
		}
		if closest == nil || pt.result.Totals.Loss.LessThan(closest.result.Totals.Loss) {
			closest = &pt
		}
	}

	return nil, &BreakEvenError{
		Operation: op,
		Message:   fmt.Sprintf("out-of-pocket payments for every tenure from %d to %d months", lo, hi),
		Cause:     ErrInfeasible,
	}
}

// bisect narrows [lo, hi] to tol. lossFreeHigh says which end of the interval
// is loss-free; best is the loss-free point known so far.
func (s *Solver) bisect(
	p *probe,
	lo, hi, tol decimal.Decimal,
	mk func(decimal.Decimal) transform.ScenarioTransform,
	lossFreeHigh bool,
	best point,
) (point, bool, error) {
	for hi.Sub(lo).GreaterThan(tol) {
		mid := lo.Add(hi).Div(two)
		if lossFreeHigh {
			mid = mid.Round(2)
		}
		if mid.Equal(lo) || mid.Equal(hi) {
			break
		}

		pt, err := p.run(mid, mk(mid))
		if errors.Is(err, errIterationLimit) {
			return best, false, nil
		}
		if err != nil {
			return point{}, false, err
		}

		free := s.lossFree(pt.result)
		switch {
		case free && lossFreeHigh:
			hi, best = mid, pt
		case free:
			lo, best = mid, pt
		case lossFreeHigh:
			lo = mid
		default:
			hi = mid
		}
	}
	return best, true, nil
}

// gridSearch evaluates every grid value and keeps the best net cash; ties go
// to the earlier value.
func (s *Solver) gridSearch(
	p *probe,
	req OptimizationRequest,
	op string,
	grid []decimal.Decimal,
	mk func(decimal.Decimal) transform.ScenarioTransform,
) (*OptimizationResult, error) {
	var best *point
	exhausted := false
	for _, v := range grid {
		pt, err := p.run(v, mk(v))
		if errors.Is(err, errIterationLimit) {
			exhausted = true
			break
		}
		if err != nil {
			return nil, wrap(op, "failed to evaluate grid point", err)
		}
		if best == nil || pt.result.Totals.NetCash.GreaterThan(best.result.Totals.NetCash) {
			best = &pt
		}
	}
	if best == nil {
		return nil, &BreakEvenError{Operation: op, Message: "no grid points evaluated"}
	}
	return s.finish(req, *best, !exhausted, fmt.Sprintf("Evaluated %d grid points", len(grid))), nil
}

func (s *Solver) finish(req OptimizationRequest, pt point, converged bool, info string) *OptimizationResult {
	r := s.evaluateResult(req, pt)
	r.Success = converged
	r.ConvergenceInfo = info
	if !converged {
		r.ConvergenceInfo = fmt.Sprintf("Max iterations (%d) reached", req.MaxIterations)
	}
	return r
}

// evaluateResult creates an optimization result from an evaluated point
func (s *Solver) evaluateResult(req OptimizationRequest, pt point) *OptimizationResult {
	res := pt.result
	result := &OptimizationResult{
		Request:     req,
		Scenario:    *pt.scenario,
		Installment: res.Installment,
		TotalLoss:   res.Totals.Loss,
		NetCash:     res.Totals.NetCash,
		AssetValue:  res.Totals.AssetValue,
		LossMonths:  res.LossMonths(),
	}

	v := pt.value
	switch req.Target {
	case OptimizeRate:
		result.OptimalRate = &v
	case OptimizePrincipal:
		result.OptimalPrincipal = &v
	case OptimizeTenure:
		n := int(v.IntPart())
		result.OptimalTenure = &n
	}

	return result
}

// linspace returns steps+1 evenly spaced values from lo to hi inclusive.
func linspace(lo, hi decimal.Decimal, steps int) []decimal.Decimal {
	if steps < 1 || lo.Equal(hi) {
		return []decimal.Decimal{lo}
	}
	width := hi.Sub(lo).Div(decimal.NewFromInt(int64(steps)))
	out := make([]decimal.Decimal, 0, steps+1)
	for i := 0; i < steps; i++ {
		out = append(out, lo.Add(width.Mul(decimal.NewFromInt(int64(i)))))
	}
	return append(out, hi)
}

func wrap(op, msg string, err error) error {
	var be *BreakEvenError
	if errors.As(err, &be) {
		return err
	}
	return &BreakEvenError{Operation: op, Message: msg, Cause: err}
}
