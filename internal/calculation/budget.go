package calculation

import (
	"github.com/rgehrsitz/iltax/internal/domain"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// AllocateBudget distributes total deductions across budget categories by percentage.
// Every category uses the same total so the amounts add back up to it within rounding.
func AllocateBudget(totalDeductions decimal.Decimal, categories []domain.BudgetCategory) []domain.BudgetAllocation {
	return lo.Map(categories, func(c domain.BudgetCategory, _ int) domain.BudgetAllocation {
		return domain.BudgetAllocation{
			ID:         c.ID,
			Amount:     RoundToWhole(totalDeductions.Mul(c.Percentage).Div(hundred)),
			Percentage: c.Percentage,
			Color:      c.Color,
		}
	})
}
