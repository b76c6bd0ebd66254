package breakeven

import (
	"github.com/rgehrsitz/iltax/internal/domain"
	"github.com/shopspring/decimal"
)

// SolveTarget defines which result figure the solver matches
type SolveTarget string

const (
	TargetNetIncome    SolveTarget = "net_income"    // Annual take-home pay
	TargetEmployerCost SolveTarget = "employer_cost" // Total cost to the employer
)

// ParseSolveTarget accepts the target names used on the command line and in the API
func ParseSolveTarget(s string) (SolveTarget, error) {
	switch SolveTarget(s) {
	case "", TargetNetIncome:
		return TargetNetIncome, nil
	case TargetEmployerCost:
		return TargetEmployerCost, nil
	}
	return "", &BreakEvenError{Operation: "parse_target", Message: "unknown target " + s}
}

// SolveRequest defines the parameters for one gross income search
type SolveRequest struct {
	Profile       domain.TaxpayerProfile `json:"profile"`
	Target        SolveTarget            `json:"target"`
	TargetAmount  decimal.Decimal        `json:"targetAmount"`
	MaxIterations int                    `json:"maxIterations,omitempty"`
	Tolerance     decimal.Decimal        `json:"tolerance"`
}

// Validate checks the request before any calculation runs
func (r SolveRequest) Validate() error {
	if !r.TargetAmount.IsPositive() {
		return &BreakEvenError{
			Operation: "validate_request",
			Message:   "target amount must be positive",
		}
	}
	if r.Target != TargetNetIncome && r.Target != TargetEmployerCost {
		return &BreakEvenError{
			Operation: "validate_request",
			Message:   "unsupported target: " + string(r.Target),
		}
	}
	if r.MaxIterations < 0 {
		return &BreakEvenError{
			Operation: "validate_request",
			Message:   "max iterations cannot be negative",
		}
	}
	if r.Tolerance.IsNegative() {
		return &BreakEvenError{
			Operation: "validate_request",
			Message:   "tolerance cannot be negative",
		}
	}
	return nil
}

// SolveResult contains the gross income found and the full calculation at that gross
type SolveResult struct {
	Request         SolveRequest           `json:"request"`
	Success         bool                   `json:"success"`
	Iterations      int                    `json:"iterations"`
	ConvergenceInfo string                 `json:"convergenceInfo"`
	GrossIncome     decimal.Decimal        `json:"grossIncome"`
	Achieved        decimal.Decimal        `json:"achieved"`
	Difference      decimal.Decimal        `json:"difference"`
	Result          *domain.TotalTaxResult `json:"result"`
}

// SolverOptions configures the search
type SolverOptions struct {
	Tolerance            decimal.Decimal // Maximum distance from the target amount
	MaxIterations        int
	UpperBoundMultiplier decimal.Decimal // Net income search stops at target * multiplier
}

// DefaultSolverOptions returns default solver configuration
func DefaultSolverOptions() SolverOptions {
	return SolverOptions{
		Tolerance:            decimal.NewFromInt(1), // ₪1
		MaxIterations:        200,
		UpperBoundMultiplier: decimal.NewFromInt(4),
	}
}

// BreakEvenError represents errors from the gross income solver
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
