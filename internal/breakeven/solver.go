package breakeven

import (
	"context"
	"fmt"

	"github.com/rgehrsitz/iltax/internal/calculation"
	"github.com/rgehrsitz/iltax/internal/domain"
	"github.com/shopspring/decimal"
)

// minStep is the smallest gross income interval worth bisecting
var minStep = decimal.NewFromFloat(0.01)

// Solver finds the gross income that produces a target net income or employer cost
type Solver struct {
	Engine  *calculation.Engine
	Options SolverOptions
}

// NewSolver creates a new gross income solver
func NewSolver(engine *calculation.Engine, options SolverOptions) *Solver {
	return &Solver{
		Engine:  engine,
		Options: options,
	}
}

// NewDefaultSolver creates a solver with default options
func NewDefaultSolver(engine *calculation.Engine) *Solver {
	return NewSolver(engine, DefaultSolverOptions())
}

// Solve loads the rate bundle for the profile's tax year and runs the search
func (s *Solver) Solve(ctx context.Context, req SolveRequest) (*SolveResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if s.Engine == nil || s.Engine.Data == nil {
		return nil, &BreakEvenError{
			Operation: "load_rates",
			Message:   fmt.Sprintf("no rate source for year %d", req.Profile.TaxYear),
			Cause:     domain.ErrNoRateData,
		}
	}
	data, err := s.Engine.Data.Load(req.Profile.TaxYear)
	if err != nil {
		return nil, &BreakEvenError{Operation: "load_rates", Message: "loading rate data", Cause: err}
	}
	return s.SolveWithData(ctx, req, data)
}

// SolveWithData bisects gross income against an already loaded bundle.
// The computed figure rises monotonically with gross income, so the search keeps a
// bracket [low, high] where figure(low) < target <= figure(high).
func (s *Solver) SolveWithData(ctx context.Context, req SolveRequest, data *domain.RateDataBundle) (*SolveResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	// Apply defaults
	if req.MaxIterations == 0 {
		req.MaxIterations = s.Options.MaxIterations
	}
	if req.Tolerance.IsZero() {
		req.Tolerance = s.Options.Tolerance
	}

	candidate := req.Profile
	candidate.AnnualGrossIncome = decimal.Zero
	if err := candidate.Validate(); err != nil {
		return nil, &BreakEvenError{Operation: "validate_request", Message: "invalid profile", Cause: err}
	}

	evaluate := func(gross decimal.Decimal) (*domain.TotalTaxResult, decimal.Decimal, error) {
		candidate.AnnualGrossIncome = gross
		result, err := calculation.CalculateTotalTax(candidate, data)
		if err != nil {
			return nil, decimal.Zero, &BreakEvenError{Operation: "calculate", Message: "calculating at gross " + gross.StringFixed(2), Cause: err}
		}
		return result, figure(req.Target, result), nil
	}

	low := decimal.Zero
	high := s.upperBound(req)

	highResult, highValue, err := evaluate(high)
	if err != nil {
		return nil, err
	}
	if highValue.LessThan(req.TargetAmount.Sub(req.Tolerance)) {
		return nil, &BreakEvenError{
			Operation: "solve",
			Message: fmt.Sprintf("target %s %s is unreachable below gross %s (reaches %s)",
				req.Target, req.TargetAmount.StringFixed(2), high.StringFixed(2), highValue.StringFixed(2)),
		}
	}

	best := &SolveResult{
		Request:     req,
		GrossIncome: high,
		Achieved:    highValue,
		Difference:  highValue.Sub(req.TargetAmount),
		Result:      highResult,
	}

	iterations := 0
	for iterations < req.MaxIterations {
		select {
		case <-ctx.Done():
			return nil, &BreakEvenError{Operation: "solve", Message: "search cancelled", Cause: ctx.Err()}
		default:
		}
		if high.Sub(low).LessThan(minStep) {
			break
		}
		iterations++

		mid := calculation.RoundToSmallestUnit(low.Add(high).Div(decimal.NewFromInt(2)))
		result, value, err := evaluate(mid)
		if err != nil {
			return nil, err
		}
		diff := value.Sub(req.TargetAmount)

		if diff.Abs().LessThan(best.Difference.Abs()) {
			best.GrossIncome, best.Achieved, best.Difference, best.Result = mid, value, diff, result
		}
		if diff.Abs().LessThanOrEqual(req.Tolerance) {
			best.Success = true
			break
		}
		if diff.IsNegative() {
			low = mid
		} else {
			high = mid
		}
	}

	best.Iterations = iterations
	if best.Success {
		best.ConvergenceInfo = fmt.Sprintf("within ₪%s after %d iterations", req.Tolerance.StringFixed(2), iterations)
	} else {
		best.ConvergenceInfo = fmt.Sprintf("closest gross after %d iterations misses by ₪%s", iterations, best.Difference.Abs().StringFixed(2))
	}
	return best, nil
}

// upperBound caps the search. Gross income never exceeds employer cost, so that target bounds itself.
func (s *Solver) upperBound(req SolveRequest) decimal.Decimal {
	if req.Target == TargetEmployerCost {
		return req.TargetAmount
	}
	multiplier := s.Options.UpperBoundMultiplier
	if !multiplier.IsPositive() {
		multiplier = DefaultSolverOptions().UpperBoundMultiplier
	}
	return calculation.RoundToSmallestUnit(req.TargetAmount.Mul(multiplier))
}

func figure(target SolveTarget, result *domain.TotalTaxResult) decimal.Decimal {
	if target == TargetEmployerCost {
		return result.EmployerCost
	}
	return result.NetIncome
}

// SolveGrossForNet is a convenience wrapper for the net income target with default options
func SolveGrossForNet(ctx context.Context, profile domain.TaxpayerProfile, data *domain.RateDataBundle, targetNet decimal.Decimal) (*SolveResult, error) {
	solver := NewSolver(nil, DefaultSolverOptions())
	return solver.SolveWithData(ctx, SolveRequest{
		Profile:      profile,
		Target:       TargetNetIncome,
		TargetAmount: targetNet,
	}, data)
}
