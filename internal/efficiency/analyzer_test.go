package efficiency

import (
	"testing"

	"github.com/rgehrsitz/iltax/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func defenseEntry() domain.CostAnalysisEntry {
	return domain.CostAnalysisEntry{
		ID:                        "defense",
		OverheadPercent:           d("15"),
		ReachesServicePercent:     d("85"),
		Grade:                     domain.GradeB,
		AlternativeCostMultiplier: d("0.80"),
	}
}

func TestAnalyzeCategory(t *testing.T) {
	result := AnalyzeCategory("defense", d("10000"), defenseEntry())

	assert.Equal(t, "defense", result.CategoryID)
	assert.Equal(t, "10000", result.YourContribution.String())
	assert.Equal(t, "1500", result.EstimatedOverhead.String())
	assert.Equal(t, "8500", result.ReachesService.String())
	assert.Equal(t, "8000", result.AlternativeCost.String())
	assert.Equal(t, "2000", result.PotentialSavings.String())
	assert.Equal(t, domain.GradeB, result.Grade)
}

func TestAnalyze(t *testing.T) {
	allocations := []domain.BudgetAllocation{
		{ID: "defense", Amount: d("10000"), Percentage: d("16")},
		{ID: "space_program", Amount: d("1000"), Percentage: d("1")},
	}

	results := Analyze(allocations, []domain.CostAnalysisEntry{defenseEntry()})
	require.Len(t, results, 2)

	assert.Equal(t, "1500", results[0].EstimatedOverhead.String())

	unknown := results[1]
	assert.Equal(t, "space_program", unknown.CategoryID)
	assert.Equal(t, "1000", unknown.YourContribution.String())
	assert.True(t, unknown.EstimatedOverhead.IsZero())
	assert.Equal(t, "1000", unknown.ReachesService.String())
	assert.Equal(t, "1000", unknown.AlternativeCost.String())
	assert.True(t, unknown.PotentialSavings.IsZero())
	assert.Equal(t, domain.GradeNone, unknown.Grade)
}

func TestAnalyze_OverheadPlusServiceEqualsContribution(t *testing.T) {
	entry := domain.CostAnalysisEntry{
		ID: "education", OverheadPercent: d("25.5"), ReachesServicePercent: d("74.5"),
		Grade: domain.GradeC, AlternativeCostMultiplier: d("0.7"),
	}

	for _, amount := range []string{"0", "1", "3", "333", "5923", "7777.77", "123456"} {
		results := Analyze([]domain.BudgetAllocation{{ID: "education", Amount: d(amount)}}, []domain.CostAnalysisEntry{entry})
		r := results[0]
		assert.True(t, r.EstimatedOverhead.Add(r.ReachesService).Equal(r.YourContribution), "amount %s", amount)
		assert.True(t, r.AlternativeCost.Add(r.PotentialSavings).Equal(r.YourContribution), "amount %s", amount)
	}
}

func TestAnalyze_Empty(t *testing.T) {
	results := Analyze(nil, []domain.CostAnalysisEntry{defenseEntry()})
	assert.Empty(t, results)
	assert.True(t, CalculateTotalOverhead(results).IsZero())
	assert.True(t, CalculateTotalSavings(results).IsZero())
	assert.True(t, CalculateTotalContribution(results).IsZero())
}

func TestTotals(t *testing.T) {
	results := []domain.EfficiencyResult{
		{YourContribution: d("10000"), EstimatedOverhead: d("1500"), PotentialSavings: d("2000")},
		{YourContribution: d("1000"), EstimatedOverhead: d("0"), PotentialSavings: d("0")},
		{YourContribution: d("4000"), EstimatedOverhead: d("1000"), PotentialSavings: d("1200")},
	}

	assert.Equal(t, "2500", CalculateTotalOverhead(results).String())
	assert.Equal(t, "3200", CalculateTotalSavings(results).String())
	assert.Equal(t, "15000", CalculateTotalContribution(results).String())
}
