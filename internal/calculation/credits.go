package calculation

import (
	"fmt"

	"github.com/rgehrsitz/iltax/internal/domain"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// CalculateTaxCredits awards credit points for residency, gender and each child's age band.
// Components appear in the breakdown in the order they were awarded; children worth zero points are left out.
func CalculateTaxCredits(gender domain.Gender, childAges []int, data domain.TaxCreditData) domain.TaxCreditsResult {
	breakdown := []domain.CreditComponent{
		{Category: domain.CreditResident, Points: data.BaseCredits.Resident},
	}

	if gender == domain.Female {
		breakdown = append(breakdown, domain.CreditComponent{Category: domain.CreditWoman, Points: data.BaseCredits.WomanAdditional})
	}

	for _, age := range childAges {
		points, ok := childPoints(age, gender, data)
		if !ok || !points.IsPositive() {
			continue
		}
		breakdown = append(breakdown, domain.CreditComponent{Category: ChildCreditCategory(age), Points: points})
	}

	total := lo.Reduce(breakdown, func(sum decimal.Decimal, c domain.CreditComponent, _ int) decimal.Decimal {
		return sum.Add(c.Points)
	}, decimal.Zero)

	return domain.TaxCreditsResult{
		TotalPoints:      total,
		TotalCreditValue: RoundToWhole(total.Mul(data.PointValueAnnual)),
		Breakdown:        breakdown,
	}
}

// ChildCreditCategory names the breakdown entry for a child of the given age
func ChildCreditCategory(age int) string {
	return fmt.Sprintf("child_age_%d", age)
}

// childPoints finds the age band containing age and returns the parent's points for it
func childPoints(age int, gender domain.Gender, data domain.TaxCreditData) (decimal.Decimal, bool) {
	band, found := lo.Find(data.ChildAgeRanges, func(r domain.ChildAgeRange) bool {
		return r.Contains(age)
	})
	if !found || band.Index < 0 || band.Index >= len(data.ChildCredits) {
		return decimal.Zero, false
	}
	credit := data.ChildCredits[band.Index]
	if gender == domain.Female {
		return credit.MotherPoints, true
	}
	return credit.FatherPoints, true
}
