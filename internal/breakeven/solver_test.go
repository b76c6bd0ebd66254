package breakeven

import (
	"context"
	"errors"
	"testing"

	"github.com/rgehrsitz/iltax/internal/calculation"
	"github.com/rgehrsitz/iltax/internal/config"
	"github.com/rgehrsitz/iltax/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func maleEmployee() domain.TaxpayerProfile {
	return domain.TaxpayerProfile{
		EmploymentType: domain.Employee,
		Gender:         domain.Male,
		TaxYear:        2025,
	}
}

func rates2025(t *testing.T) *domain.RateDataBundle {
	t.Helper()
	data, err := config.NewRateDataLoader().Load(2025)
	require.NoError(t, err)
	return data
}

func TestNewDefaultSolver(t *testing.T) {
	engine := calculation.NewEngine(config.NewRateDataLoader())
	solver := NewDefaultSolver(engine)

	require.NotNil(t, solver)
	assert.Same(t, engine, solver.Engine)
	assert.Equal(t, 200, solver.Options.MaxIterations)
	assert.True(t, solver.Options.Tolerance.Equal(decimal.NewFromInt(1)))
	assert.True(t, solver.Options.UpperBoundMultiplier.Equal(decimal.NewFromInt(4)))
}

func TestSolver_GrossForNet(t *testing.T) {
	solver := NewDefaultSolver(calculation.NewEngine(config.NewRateDataLoader()))
	target := decimal.RequireFromString("159828.54")

	result, err := solver.Solve(context.Background(), SolveRequest{
		Profile:      maleEmployee(),
		Target:       TargetNetIncome,
		TargetAmount: target,
	})
	require.NoError(t, err)

	assert.True(t, result.Success)
	assert.Positive(t, result.Iterations)
	assert.LessOrEqual(t, result.Iterations, 200)
	assert.True(t, result.Result.NetIncome.Sub(target).Abs().LessThanOrEqual(decimal.NewFromInt(1)),
		"net %s should be within 1 of %s", result.Result.NetIncome, target)
	assert.True(t, result.GrossIncome.Sub(decimal.NewFromInt(200000)).Abs().LessThanOrEqual(decimal.NewFromInt(2)),
		"gross %s should be close to 200000", result.GrossIncome)
	assert.True(t, result.GrossIncome.Equal(result.Result.GrossIncome))
	assert.True(t, result.Achieved.Equal(result.Result.NetIncome))
}

func TestSolver_GrossForEmployerCost(t *testing.T) {
	solver := NewDefaultSolver(nil)
	target := decimal.RequireFromString("224910.85")

	result, err := solver.SolveWithData(context.Background(), SolveRequest{
		Profile:      maleEmployee(),
		Target:       TargetEmployerCost,
		TargetAmount: target,
	}, rates2025(t))
	require.NoError(t, err)

	assert.True(t, result.Success)
	assert.True(t, result.Result.EmployerCost.Sub(target).Abs().LessThanOrEqual(decimal.NewFromInt(1)))
	assert.True(t, result.GrossIncome.Sub(decimal.NewFromInt(200000)).Abs().LessThanOrEqual(decimal.NewFromInt(1)))
}

func TestSolver_SelfEmployedNeedsMoreGross(t *testing.T) {
	data := rates2025(t)
	target := decimal.NewFromInt(120000)

	employee, err := SolveGrossForNet(context.Background(), maleEmployee(), data, target)
	require.NoError(t, err)

	profile := maleEmployee()
	profile.EmploymentType = domain.SelfEmployed
	selfEmployed, err := SolveGrossForNet(context.Background(), profile, data, target)
	require.NoError(t, err)

	assert.True(t, selfEmployed.GrossIncome.GreaterThan(employee.GrossIncome))
}

func TestSolver_Errors(t *testing.T) {
	data := rates2025(t)

	tests := []struct {
		name    string
		solver  *Solver
		req     SolveRequest
		wantMsg string
	}{
		{
			name:    "zero target",
			solver:  NewDefaultSolver(nil),
			req:     SolveRequest{Profile: maleEmployee(), Target: TargetNetIncome, TargetAmount: decimal.Zero},
			wantMsg: "target amount must be positive",
		},
		{
			name:    "negative target",
			solver:  NewDefaultSolver(nil),
			req:     SolveRequest{Profile: maleEmployee(), Target: TargetNetIncome, TargetAmount: decimal.NewFromInt(-5)},
			wantMsg: "target amount must be positive",
		},
		{
			name:    "unknown target",
			solver:  NewDefaultSolver(nil),
			req:     SolveRequest{Profile: maleEmployee(), Target: "pension", TargetAmount: decimal.NewFromInt(100)},
			wantMsg: "unsupported target",
		},
		{
			name: "unreachable below upper bound",
			solver: NewSolver(nil, SolverOptions{
				Tolerance:            decimal.NewFromInt(1),
				MaxIterations:        200,
				UpperBoundMultiplier: decimal.NewFromInt(1),
			}),
			req:     SolveRequest{Profile: maleEmployee(), Target: TargetNetIncome, TargetAmount: decimal.NewFromInt(100000)},
			wantMsg: "unreachable",
		},
		{
			name:    "invalid profile",
			solver:  NewDefaultSolver(nil),
			req:     SolveRequest{Profile: domain.TaxpayerProfile{TaxYear: 2025}, Target: TargetNetIncome, TargetAmount: decimal.NewFromInt(100)},
			wantMsg: "invalid profile",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.solver.SolveWithData(context.Background(), tt.req, data)
			require.Error(t, err)
			var bee *BreakEvenError
			assert.True(t, errors.As(err, &bee))
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestSolver_MissingRateData(t *testing.T) {
	solver := NewDefaultSolver(calculation.NewEngine(config.NewRateDataLoader()))
	profile := maleEmployee()
	profile.TaxYear = 1999

	_, err := solver.Solve(context.Background(), SolveRequest{
		Profile:      profile,
		Target:       TargetNetIncome,
		TargetAmount: decimal.NewFromInt(100000),
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNoRateData)

	_, err = NewDefaultSolver(nil).Solve(context.Background(), SolveRequest{
		Profile:      maleEmployee(),
		Target:       TargetNetIncome,
		TargetAmount: decimal.NewFromInt(100000),
	})
	assert.ErrorIs(t, err, domain.ErrNoRateData)
}

func TestSolver_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := SolveGrossForNet(ctx, maleEmployee(), rates2025(t), decimal.NewFromInt(100000))
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSolver_IterationLimit(t *testing.T) {
	solver := NewSolver(nil, SolverOptions{
		Tolerance:            decimal.NewFromInt(1),
		MaxIterations:        3,
		UpperBoundMultiplier: decimal.NewFromInt(4),
	})

	result, err := solver.SolveWithData(context.Background(), SolveRequest{
		Profile:      maleEmployee(),
		Target:       TargetNetIncome,
		TargetAmount: decimal.NewFromInt(150000),
	}, rates2025(t))
	require.NoError(t, err)

	assert.False(t, result.Success)
	assert.Equal(t, 3, result.Iterations)
	assert.Contains(t, result.ConvergenceInfo, "misses by")
}

func TestParseSolveTarget(t *testing.T) {
	got, err := ParseSolveTarget("")
	require.NoError(t, err)
	assert.Equal(t, TargetNetIncome, got)

	got, err = ParseSolveTarget("employer_cost")
	require.NoError(t, err)
	assert.Equal(t, TargetEmployerCost, got)

	_, err = ParseSolveTarget("bonus")
	assert.Error(t, err)
}

func TestTableFormatter_Format(t *testing.T) {
	result, err := SolveGrossForNet(context.Background(), maleEmployee(), rates2025(t), decimal.NewFromInt(120000))
	require.NoError(t, err)

	out := (&TableFormatter{}).Format(result)
	assert.Contains(t, out, "GROSS INCOME SOLVER RESULTS")
	assert.Contains(t, out, "✓ Converged")
	assert.Contains(t, out, "₪120000.00")
	assert.Contains(t, out, "BURDEN AT THIS GROSS")

	js, err := (&JSONFormatter{Pretty: true}).Format(result)
	require.NoError(t, err)
	assert.Contains(t, js, `"target": "net_income"`)
	assert.Contains(t, js, `"success": true`)
}
