package calculation

import (
	"github.com/rgehrsitz/iltax/internal/domain"
	"github.com/shopspring/decimal"
)

// SplitByThreshold caps income at the insurable ceiling and divides it at the reduced-rate threshold.
// Each portion is later multiplied by its own rate; the portions are never blended into an average rate.
func SplitByThreshold(income, threshold, ceiling decimal.Decimal) domain.ThresholdSplit {
	if !income.IsPositive() {
		return zeroSplit()
	}
	return splitInsurable(decimal.Min(income, ceiling), threshold)
}

func splitInsurable(insurable, threshold decimal.Decimal) domain.ThresholdSplit {
	if !insurable.IsPositive() {
		return zeroSplit()
	}
	return domain.ThresholdSplit{
		Insurable:      insurable,
		ReducedPortion: decimal.Min(insurable, threshold),
		FullPortion:    decimal.Max(decimal.Zero, insurable.Sub(threshold)),
	}
}

func zeroSplit() domain.ThresholdSplit {
	return domain.ThresholdSplit{Insurable: decimal.Zero, ReducedPortion: decimal.Zero, FullPortion: decimal.Zero}
}

// tierContribution returns the reduced, full and total contribution for one rate pair
func tierContribution(split domain.ThresholdSplit, reducedRate, fullRate decimal.Decimal) (reduced, full, total decimal.Decimal) {
	reduced = RoundToSmallestUnit(split.ReducedPortion.Mul(reducedRate))
	full = RoundToSmallestUnit(split.FullPortion.Mul(fullRate))
	total = RoundToSmallestUnit(reduced.Add(full))
	return reduced, full, total
}

// CalculateNationalInsurance computes employee and employer National Insurance.
// Self-employed income is reduced by the exemption before splitting and has no employer side.
func CalculateNationalInsurance(income decimal.Decimal, employment domain.EmploymentType, rates domain.SocialInsuranceRates) domain.NationalInsuranceResult {
	result := domain.NationalInsuranceResult{
		Split:                       zeroSplit(),
		EmployeeContribution:        decimal.Zero,
		EmployeeReducedContribution: decimal.Zero,
		EmployeeFullContribution:    decimal.Zero,
		EmployerContribution:        decimal.Zero,
		EmployerReducedContribution: decimal.Zero,
		EmployerFullContribution:    decimal.Zero,
		EffectiveRate:               decimal.Zero,
	}
	if !income.IsPositive() {
		return result
	}

	if employment == domain.SelfEmployed {
		insurable := decimal.Min(income, rates.MaxInsurableIncome).Sub(rates.SelfEmployed.ExemptionThreshold)
		result.Split = splitInsurable(insurable, rates.ReducedRateThreshold)
		result.EmployeeReducedContribution, result.EmployeeFullContribution, result.EmployeeContribution =
			tierContribution(result.Split, rates.SelfEmployed.Reduced.NationalInsurance, rates.SelfEmployed.Full.NationalInsurance)
	} else {
		result.Split = SplitByThreshold(income, rates.ReducedRateThreshold, rates.MaxInsurableIncome)
		result.EmployeeReducedContribution, result.EmployeeFullContribution, result.EmployeeContribution =
			tierContribution(result.Split, rates.Employee.Reduced.NationalInsurance, rates.Employee.Full.NationalInsurance)
		result.EmployerReducedContribution, result.EmployerFullContribution, result.EmployerContribution =
			tierContribution(result.Split, rates.Employer.Reduced.NationalInsurance, rates.Employer.Full.NationalInsurance)
	}

	result.EffectiveRate = safeRatio(result.EmployeeContribution, income)
	return result
}

// CalculateHealthTax computes the health insurance contribution. There is no employer health tax.
func CalculateHealthTax(income decimal.Decimal, employment domain.EmploymentType, rates domain.SocialInsuranceRates) domain.HealthTaxResult {
	result := domain.HealthTaxResult{
		Split:               zeroSplit(),
		Contribution:        decimal.Zero,
		ReducedContribution: decimal.Zero,
		FullContribution:    decimal.Zero,
		EffectiveRate:       decimal.Zero,
	}
	if !income.IsPositive() {
		return result
	}

	reduced, full := rates.Employee.Reduced, rates.Employee.Full
	if employment == domain.SelfEmployed {
		reduced, full = rates.SelfEmployed.Reduced, rates.SelfEmployed.Full
	}

	result.Split = SplitByThreshold(income, rates.ReducedRateThreshold, rates.MaxInsurableIncome)
	result.ReducedContribution, result.FullContribution, result.Contribution =
		tierContribution(result.Split, reduced.HealthInsurance, full.HealthInsurance)
	result.EffectiveRate = safeRatio(result.Contribution, income)
	return result
}
