// Package efficiency grades how much of each budget allocation reaches the service it funds.
package efficiency

import (
	"github.com/rgehrsitz/iltax/internal/calculation"
	"github.com/rgehrsitz/iltax/internal/domain"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Analyze grades every allocation against the cost-analysis table.
// Categories missing from the table produce a pass-through result graded N/A.
func Analyze(allocations []domain.BudgetAllocation, costs []domain.CostAnalysisEntry) []domain.EfficiencyResult {
	byID := lo.KeyBy(costs, func(c domain.CostAnalysisEntry) string { return c.ID })
	return lo.Map(allocations, func(a domain.BudgetAllocation, _ int) domain.EfficiencyResult {
		entry, ok := byID[a.ID]
		if !ok {
			return unknownCategory(a.ID, a.Amount)
		}
		return AnalyzeCategory(a.ID, a.Amount, entry)
	})
}

// AnalyzeCategory applies one cost-analysis entry to an allocated amount.
// Overhead is rounded first and reachesService takes the remainder, so the two always add up to the amount.
func AnalyzeCategory(categoryID string, amount decimal.Decimal, entry domain.CostAnalysisEntry) domain.EfficiencyResult {
	contribution := calculation.RoundToWhole(amount)
	overhead := calculation.RoundToWhole(contribution.Mul(entry.OverheadPercent).Div(hundred))
	alternative := calculation.RoundToWhole(contribution.Mul(entry.AlternativeCostMultiplier))

	return domain.EfficiencyResult{
		CategoryID:        categoryID,
		YourContribution:  contribution,
		EstimatedOverhead: overhead,
		ReachesService:    contribution.Sub(overhead),
		AlternativeCost:   alternative,
		PotentialSavings:  contribution.Sub(alternative),
		Grade:             entry.Grade,
	}
}

func unknownCategory(categoryID string, amount decimal.Decimal) domain.EfficiencyResult {
	contribution := calculation.RoundToWhole(amount)
	return domain.EfficiencyResult{
		CategoryID:        categoryID,
		YourContribution:  contribution,
		EstimatedOverhead: decimal.Zero,
		ReachesService:    contribution,
		AlternativeCost:   contribution,
		PotentialSavings:  decimal.Zero,
		Grade:             domain.GradeNone,
	}
}

// CalculateTotalOverhead sums the estimated overhead across results
func CalculateTotalOverhead(results []domain.EfficiencyResult) decimal.Decimal {
	return lo.Reduce(results, func(sum decimal.Decimal, r domain.EfficiencyResult, _ int) decimal.Decimal {
		return sum.Add(r.EstimatedOverhead)
	}, decimal.Zero)
}

// CalculateTotalSavings sums the potential savings across results
func CalculateTotalSavings(results []domain.EfficiencyResult) decimal.Decimal {
	return lo.Reduce(results, func(sum decimal.Decimal, r domain.EfficiencyResult, _ int) decimal.Decimal {
		return sum.Add(r.PotentialSavings)
	}, decimal.Zero)
}

// CalculateTotalContribution sums the contributions across results
func CalculateTotalContribution(results []domain.EfficiencyResult) decimal.Decimal {
	return lo.Reduce(results, func(sum decimal.Decimal, r domain.EfficiencyResult, _ int) decimal.Decimal {
		return sum.Add(r.YourContribution)
	}, decimal.Zero)
}
