package freedom

import (
	"github.com/rgehrsitz/iltax/internal/calculation"
	"github.com/rgehrsitz/iltax/internal/domain"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// CostOfLivingSavings estimates what deregulation would save on food, rent and a car.
// The car is a one-time purchase and is left out of the recurring totals.
type CostOfLivingSavings struct {
	MonthlyFoodSpend    decimal.Decimal `json:"monthlyFoodSpend"`
	MonthlyFoodSavings  decimal.Decimal `json:"monthlyFoodSavings"`
	CarBasePrice        decimal.Decimal `json:"carBasePrice"`
	CarPriceCurrent     decimal.Decimal `json:"carPriceCurrent"`
	CarPriceReformed    decimal.Decimal `json:"carPriceReformed"`
	CarSavings          decimal.Decimal `json:"carSavings"`
	AverageMonthlyRent  decimal.Decimal `json:"averageMonthlyRent"`
	MonthlyRentSavings  decimal.Decimal `json:"monthlyRentSavings"`
	MonthlyTotalSavings decimal.Decimal `json:"monthlyTotalSavings"`
	AnnualTotalSavings  decimal.Decimal `json:"annualTotalSavings"`
}

// CalculateCostOfLivingSavings models food, car and rent savings in whole shekels
func CalculateCostOfLivingSavings(result *domain.TotalTaxResult, policy Policy) CostOfLivingSavings {
	monthlyNet := decimal.Zero
	if result != nil {
		monthlyNet = decimal.Max(decimal.Zero, result.MonthlyNet)
	}

	food := calculation.RoundToWhole(monthlyNet.Mul(policy.FoodShareOfNetIncome))
	foodSavings := calculation.RoundToWhole(food.Mul(policy.FoodDeregulationPercent).Div(hundred))

	one := decimal.NewFromInt(1)
	base := policy.AverageCarPrice.Div(one.Add(policy.CurrentPurchaseTaxRate))
	carCurrent := calculation.RoundToWhole(base.Mul(one.Add(policy.CurrentPurchaseTaxRate)))
	carReformed := calculation.RoundToWhole(base.Mul(one.Add(policy.ReformedPurchaseTaxRate)))

	rent := averageRent(policy.CityRents)
	rentSavings := calculation.RoundToWhole(rent.Mul(policy.RentReductionPercent).Div(hundred))

	monthly := foodSavings.Add(rentSavings)
	return CostOfLivingSavings{
		MonthlyFoodSpend:    food,
		MonthlyFoodSavings:  foodSavings,
		CarBasePrice:        calculation.RoundToWhole(base),
		CarPriceCurrent:     carCurrent,
		CarPriceReformed:    carReformed,
		CarSavings:          carCurrent.Sub(carReformed),
		AverageMonthlyRent:  calculation.RoundToWhole(rent),
		MonthlyRentSavings:  rentSavings,
		MonthlyTotalSavings: monthly,
		AnnualTotalSavings:  monthly.Mul(monthsInYear),
	}
}

func averageRent(rents []CityRent) decimal.Decimal {
	if len(rents) == 0 {
		return decimal.Zero
	}
	total := lo.Reduce(rents, func(sum decimal.Decimal, r CityRent, _ int) decimal.Decimal {
		return sum.Add(r.MonthlyRent)
	}, decimal.Zero)
	return total.Div(decimal.NewFromInt(int64(len(rents))))
}
