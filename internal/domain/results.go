package domain

import (
	"github.com/shopspring/decimal"
)

// BracketBreakdown records how much income fell into one bracket and the tax it produced
type BracketBreakdown struct {
	Floor            decimal.Decimal  `json:"floor"`
	Ceiling          *decimal.Decimal `json:"ceiling"`
	Rate             decimal.Decimal  `json:"rate"`
	TaxableInBracket decimal.Decimal  `json:"taxableInBracket"`
	TaxInBracket     decimal.Decimal  `json:"taxInBracket"`
}

// IncomeTaxResult is the output of the bracket calculation
type IncomeTaxResult struct {
	GrossTax      decimal.Decimal    `json:"grossTax"`
	Surtax        decimal.Decimal    `json:"surtax"`
	CreditValue   decimal.Decimal    `json:"creditValue"`
	NetTax        decimal.Decimal    `json:"netTax"`
	EffectiveRate decimal.Decimal    `json:"effectiveRate"`
	MarginalRate  decimal.Decimal    `json:"marginalRate"`
	Brackets      []BracketBreakdown `json:"brackets"`
}

// ThresholdSplit is insurable income divided at the reduced-rate threshold
type ThresholdSplit struct {
	Insurable      decimal.Decimal `json:"insurable"`
	ReducedPortion decimal.Decimal `json:"reducedPortion"`
	FullPortion    decimal.Decimal `json:"fullPortion"`
}

// NationalInsuranceResult holds both payer sides, each split by tier
type NationalInsuranceResult struct {
	Split                       ThresholdSplit  `json:"split"`
	EmployeeContribution        decimal.Decimal `json:"employeeContribution"`
	EmployeeReducedContribution decimal.Decimal `json:"employeeReducedContribution"`
	EmployeeFullContribution    decimal.Decimal `json:"employeeFullContribution"`
	EmployerContribution        decimal.Decimal `json:"employerContribution"`
	EmployerReducedContribution decimal.Decimal `json:"employerReducedContribution"`
	EmployerFullContribution    decimal.Decimal `json:"employerFullContribution"`
	EffectiveRate               decimal.Decimal `json:"effectiveRate"`
}

// HealthTaxResult has the same shape as the employee side of National Insurance
type HealthTaxResult struct {
	Split               ThresholdSplit  `json:"split"`
	Contribution        decimal.Decimal `json:"contribution"`
	ReducedContribution decimal.Decimal `json:"reducedContribution"`
	FullContribution    decimal.Decimal `json:"fullContribution"`
	EffectiveRate       decimal.Decimal `json:"effectiveRate"`
}

// Credit component categories
const (
	CreditResident = "resident"
	CreditWoman    = "woman"
)

// CreditComponent is one awarded line of the credit-point breakdown
type CreditComponent struct {
	Category string          `json:"category"`
	Points   decimal.Decimal `json:"points"`
}

// TaxCreditsResult is the point total and its currency value
type TaxCreditsResult struct {
	TotalPoints      decimal.Decimal   `json:"totalPoints"`
	TotalCreditValue decimal.Decimal   `json:"totalCreditValue"`
	Breakdown        []CreditComponent `json:"breakdown"`
}

// VATEstimate is the consumption tax embedded in annual spending
type VATEstimate struct {
	Rate          decimal.Decimal `json:"rate"`
	AnnualVATPaid decimal.Decimal `json:"annualVatPaid"`
}

// BudgetAllocation is the share of total deductions attributed to one budget category
type BudgetAllocation struct {
	ID         string          `json:"id"`
	Amount     decimal.Decimal `json:"amount"`
	Percentage decimal.Decimal `json:"percentage"`
	Color      string          `json:"color"`
}

// ArnonaResult is the municipal tax for the selected city
type ArnonaResult struct {
	CityID           string          `json:"cityId"`
	NameEn           string          `json:"nameEn"`
	NameHe           string          `json:"nameHe"`
	RatePerSqm       decimal.Decimal `json:"ratePerSqm"`
	AvgAnnualArnona  decimal.Decimal `json:"avgAnnualArnona"`
	AvgMonthlyArnona decimal.Decimal `json:"avgMonthlyArnona"`
}

// TotalTaxResult is the itemized tax burden for one profile.
// It is built in a single pass by the calculation engine and never modified afterwards.
type TotalTaxResult struct {
	TaxYear            int                     `json:"taxYear"`
	GrossIncome        decimal.Decimal         `json:"grossIncome"`
	IncomeTax          IncomeTaxResult         `json:"incomeTax"`
	NationalInsurance  NationalInsuranceResult `json:"nationalInsurance"`
	HealthTax          HealthTaxResult         `json:"healthTax"`
	TaxCredits         TaxCreditsResult        `json:"taxCredits"`
	VAT                *VATEstimate            `json:"vat"`
	TotalDeductions    decimal.Decimal         `json:"totalDeductions"`
	NetIncome          decimal.Decimal         `json:"netIncome"`
	TotalEffectiveRate decimal.Decimal         `json:"totalEffectiveRate"`
	MonthlyGross       decimal.Decimal         `json:"monthlyGross"`
	MonthlyNet         decimal.Decimal         `json:"monthlyNet"`
	DailyTax           decimal.Decimal         `json:"dailyTax"`
	EmployerCost       decimal.Decimal         `json:"employerCost"`
	BudgetAllocation   []BudgetAllocation      `json:"budgetAllocation"`
	Arnona             *ArnonaResult           `json:"arnona"`
}

// VATPaid returns the estimated annual VAT or zero when no estimate exists
func (r *TotalTaxResult) VATPaid() decimal.Decimal {
	if r.VAT == nil {
		return decimal.Zero
	}
	return r.VAT.AnnualVATPaid
}

// EfficiencyResult maps one budget allocation onto its overhead grade
type EfficiencyResult struct {
	CategoryID        string          `json:"categoryId"`
	YourContribution  decimal.Decimal `json:"yourContribution"`
	EstimatedOverhead decimal.Decimal `json:"estimatedOverhead"`
	ReachesService    decimal.Decimal `json:"reachesService"`
	AlternativeCost   decimal.Decimal `json:"alternativeCost"`
	PotentialSavings  decimal.Decimal `json:"potentialSavings"`
	Grade             Grade           `json:"grade"`
}
