package calculation

import (
	"github.com/rgehrsitz/iltax/internal/domain"
	"github.com/shopspring/decimal"
)

// CalculateEmployerCost grosses up salary by employer National Insurance and the pension contribution
func CalculateEmployerCost(grossIncome decimal.Decimal, employment domain.EmploymentType, rates domain.SocialInsuranceRates, pensionRate decimal.Decimal) decimal.Decimal {
	ni := CalculateNationalInsurance(grossIncome, employment, rates)
	return employerCost(grossIncome, ni.EmployerContribution, pensionRate)
}

func employerCost(grossIncome, employerNI, pensionRate decimal.Decimal) decimal.Decimal {
	if !grossIncome.IsPositive() {
		return decimal.Zero
	}
	pension := RoundToSmallestUnit(grossIncome.Mul(pensionRate))
	return RoundToSmallestUnit(grossIncome.Add(employerNI).Add(pension))
}
