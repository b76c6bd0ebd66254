package freedom

import (
	"github.com/rgehrsitz/iltax/internal/calculation"
	"github.com/shopspring/decimal"
)

// InvestmentFreedom compares the current and reformed capital gains regimes
type InvestmentFreedom struct {
	CurrentRate        decimal.Decimal `json:"currentRate"`
	ReformedRate       decimal.Decimal `json:"reformedRate"`
	HypotheticalGain   decimal.Decimal `json:"hypotheticalGain"`
	CurrentTaxOnGain   decimal.Decimal `json:"currentTaxOnGain"`
	ReformedTaxOnGain  decimal.Decimal `json:"reformedTaxOnGain"`
	TaxSavedOnGain     decimal.Decimal `json:"taxSavedOnGain"`
	AnnualInvestable   decimal.Decimal `json:"annualInvestable"`
	Years              int             `json:"years"`
	CurrentEndValue    decimal.Decimal `json:"currentEndValue"`
	ReformedEndValue   decimal.Decimal `json:"reformedEndValue"`
	EndValueDifference decimal.Decimal `json:"endValueDifference"`
}

// CalculateInvestmentFreedom projects annual reinvestment under both rates.
// A non-positive investable amount yields zero for every value.
func CalculateInvestmentFreedom(annualInvestable decimal.Decimal, policy Policy) InvestmentFreedom {
	out := InvestmentFreedom{
		CurrentRate:        policy.CurrentCapitalGainsRate,
		ReformedRate:       policy.ReformedCapitalGainsRate,
		HypotheticalGain:   decimal.Zero,
		CurrentTaxOnGain:   decimal.Zero,
		ReformedTaxOnGain:  decimal.Zero,
		TaxSavedOnGain:     decimal.Zero,
		AnnualInvestable:   decimal.Zero,
		Years:              policy.HorizonYears,
		CurrentEndValue:    decimal.Zero,
		ReformedEndValue:   decimal.Zero,
		EndValueDifference: decimal.Zero,
	}
	if !annualInvestable.IsPositive() {
		return out
	}

	out.HypotheticalGain = policy.HypotheticalGain
	out.CurrentTaxOnGain = calculation.RoundToWhole(policy.HypotheticalGain.Mul(policy.CurrentCapitalGainsRate))
	out.ReformedTaxOnGain = calculation.RoundToWhole(policy.HypotheticalGain.Mul(policy.ReformedCapitalGainsRate))
	out.TaxSavedOnGain = out.CurrentTaxOnGain.Sub(out.ReformedTaxOnGain)

	out.AnnualInvestable = annualInvestable
	out.CurrentEndValue = calculation.RoundToWhole(
		ProjectAfterTax(annualInvestable, policy.AnnualReturn, policy.CurrentCapitalGainsRate, policy.HorizonYears))
	out.ReformedEndValue = calculation.RoundToWhole(
		ProjectAfterTax(annualInvestable, policy.AnnualReturn, policy.ReformedCapitalGainsRate, policy.HorizonYears))
	out.EndValueDifference = out.ReformedEndValue.Sub(out.CurrentEndValue)
	return out
}

// ProjectAfterTax compounds a yearly contribution, taxing only the return component each year
func ProjectAfterTax(annualAmount, annualReturn, gainsRate decimal.Decimal, years int) decimal.Decimal {
	growth := decimal.NewFromInt(1).Add(annualReturn.Mul(decimal.NewFromInt(1).Sub(gainsRate)))
	value := decimal.Zero
	for i := 0; i < years; i++ {
		value = value.Add(annualAmount).Mul(growth)
	}
	return value
}
