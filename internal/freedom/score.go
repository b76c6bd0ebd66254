package freedom

import (
	"github.com/rgehrsitz/iltax/internal/domain"
	"github.com/rgehrsitz/iltax/internal/efficiency"
	"github.com/shopspring/decimal"
)

// FreedomScore is a composite 0-100 score and its letter grade
type FreedomScore struct {
	TaxFreedom        int          `json:"taxFreedom"`
	PurchasingPower   int          `json:"purchasingPower"`
	InvestmentFreedom int          `json:"investmentFreedom"`
	Overall           int          `json:"overall"`
	Grade             domain.Grade `json:"grade"`
}

// CalculateFreedomScore scores the burden in result against the policy reference values.
// Overhead across the efficiency results lowers the tax sub-score by up to ten points.
func CalculateFreedomScore(result *domain.TotalTaxResult, efficiencies []domain.EfficiencyResult, policy Policy) FreedomScore {
	one := decimal.NewFromInt(1)

	effectiveRate := decimal.Zero
	if result != nil {
		effectiveRate = result.TotalEffectiveRate
	}

	penalty := decimal.Zero
	if contribution := efficiency.CalculateTotalContribution(efficiencies); contribution.IsPositive() {
		penalty = efficiency.CalculateTotalOverhead(efficiencies).Div(contribution).Mul(decimal.NewFromInt(10))
	}

	tax := clampScore(one.Sub(effectiveRate.Div(policy.MaxEffectiveRate)).Mul(hundred).Sub(penalty))
	purchasing := clampScore(one.Div(policy.FoodPriceRatio).Mul(hundred))
	investment := clampScore(one.Sub(policy.CurrentCapitalGainsRate.Div(policy.MaxCapitalGainsRate)).Mul(hundred))

	overall := clampScore(decimal.NewFromInt(int64(tax)).Mul(policy.Weights.TaxFreedom).
		Add(decimal.NewFromInt(int64(purchasing)).Mul(policy.Weights.PurchasingPower)).
		Add(decimal.NewFromInt(int64(investment)).Mul(policy.Weights.InvestmentFreedom)))

	return FreedomScore{
		TaxFreedom:        tax,
		PurchasingPower:   purchasing,
		InvestmentFreedom: investment,
		Overall:           overall,
		Grade:             GradeForScore(overall),
	}
}

// GradeForScore maps a 0-100 score onto A-F
func GradeForScore(score int) domain.Grade {
	switch {
	case score >= 80:
		return domain.GradeA
	case score >= 65:
		return domain.GradeB
	case score >= 50:
		return domain.GradeC
	case score >= 35:
		return domain.GradeD
	default:
		return domain.GradeF
	}
}

// clampScore rounds to an integer in [0, 100]
func clampScore(v decimal.Decimal) int {
	n := int(v.Round(0).IntPart())
	return max(0, min(100, n))
}
