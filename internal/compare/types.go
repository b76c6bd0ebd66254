package compare

import (
	"fmt"
	"slices"
	"strings"

	"github.com/rgehrsitz/iltax/internal/domain"
	"github.com/rgehrsitz/iltax/internal/freedom"
	"github.com/shopspring/decimal"
)

// ComparisonResult represents a single reform scenario with its key metrics
type ComparisonResult struct {
	ScenarioName string                `json:"scenarioName"`
	Description  string                `json:"description"`
	Reform       *freedom.ReformResult `json:"reform"`

	// Key Metrics
	ReformedTotalDeductions decimal.Decimal `json:"reformedTotalDeductions"`
	AnnualSavings           decimal.Decimal `json:"annualSavings"`
	MonthlySavings          decimal.Decimal `json:"monthlySavings"`
	ExtraMonthsOfSalary     decimal.Decimal `json:"extraMonthsOfSalary"`
	NetIncomeAfterReform    decimal.Decimal `json:"netIncomeAfterReform"`

	// Comparison to Base
	SavingsDiffFromBase decimal.Decimal `json:"savingsDiffFromBase"`
	BurdenPctFromBase   decimal.Decimal `json:"burdenPctFromBase"`
}

// ComparisonSet represents a base scenario and its ranked alternatives
type ComparisonSet struct {
	BaseScenarioName       string             `json:"baseScenarioName"`
	Label                  string             `json:"label"`
	GrossIncome            decimal.Decimal    `json:"grossIncome"`
	CurrentTotalDeductions decimal.Decimal    `json:"currentTotalDeductions"`
	BaseResult             *ComparisonResult  `json:"baseResult"`
	AlternativeResults     []ComparisonResult `json:"alternativeResults"`
	Recommendations        []string           `json:"recommendations"`
}

// CalculateMetrics extracts the comparison metrics from a reform result.
// Net income after reform counts VAT, since the reform totals do.
func CalculateMetrics(name, description string, result *domain.TotalTaxResult, reform freedom.ReformResult) ComparisonResult {
	net := decimal.Zero
	if result != nil && result.GrossIncome.IsPositive() {
		net = result.GrossIncome.Sub(reform.ReformedTotalDeductions)
	}
	return ComparisonResult{
		ScenarioName:            name,
		Description:             description,
		Reform:                  &reform,
		ReformedTotalDeductions: reform.ReformedTotalDeductions,
		AnnualSavings:           reform.AnnualSavings,
		MonthlySavings:          reform.MonthlySavings,
		ExtraMonthsOfSalary:     reform.ExtraMonthsOfSalary,
		NetIncomeAfterReform:    net,
		SavingsDiffFromBase:     decimal.Zero,
		BurdenPctFromBase:       decimal.Zero,
	}
}

// CalculateComparison computes comparison metrics between a scenario and a base
func CalculateComparison(scenario, base ComparisonResult) ComparisonResult {
	scenario.SavingsDiffFromBase = scenario.AnnualSavings.Sub(base.AnnualSavings)

	if !base.ReformedTotalDeductions.IsZero() {
		scenario.BurdenPctFromBase = scenario.ReformedTotalDeductions.Sub(base.ReformedTotalDeductions).
			Div(base.ReformedTotalDeductions).
			Mul(decimal.NewFromInt(100)).
			Round(2)
	}
	return scenario
}

// RankBySavings orders results by annual savings, largest first, then by name
func RankBySavings(results []ComparisonResult) {
	slices.SortStableFunc(results, func(a, b ComparisonResult) int {
		if c := b.AnnualSavings.Cmp(a.AnnualSavings); c != 0 {
			return c
		}
		return strings.Compare(a.ScenarioName, b.ScenarioName)
	})
}

// GenerateRecommendations creates recommendations based on comparison results.
// Alternatives must already be ranked.
func GenerateRecommendations(compSet *ComparisonSet) []string {
	recommendations := []string{}

	if len(compSet.AlternativeResults) == 0 || compSet.BaseResult == nil {
		return recommendations
	}

	best := compSet.AlternativeResults[0]
	if !best.SavingsDiffFromBase.IsPositive() {
		recommendations = append(recommendations,
			"No alternative lowers the burden below "+compSet.BaseScenarioName)
		return recommendations
	}

	recommendations = append(recommendations, fmt.Sprintf(
		"Largest Savings: %s saves ₪%s per year (₪%s per month) compared to %s",
		best.ScenarioName, best.SavingsDiffFromBase.StringFixed(0), best.MonthlySavings.StringFixed(0), compSet.BaseScenarioName))

	if best.ExtraMonthsOfSalary.GreaterThanOrEqual(decimal.NewFromInt(1)) {
		recommendations = append(recommendations, fmt.Sprintf(
			"Extra Salary: %s is worth %s extra months of gross salary", best.ScenarioName, best.ExtraMonthsOfSalary.StringFixed(1)))
	}

	if len(compSet.AlternativeResults) > 1 {
		runnerUp := compSet.AlternativeResults[1]
		gap := best.AnnualSavings.Sub(runnerUp.AnnualSavings)
		recommendations = append(recommendations, fmt.Sprintf(
			"Runner-up: %s saves ₪%s less than %s", runnerUp.ScenarioName, gap.StringFixed(0), best.ScenarioName))
	}
	return recommendations
}
