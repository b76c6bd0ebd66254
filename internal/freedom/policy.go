// Package freedom simulates tax reforms and scores economic freedom from a calculated tax burden.
package freedom

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// CityRent is the average monthly rent in one city
type CityRent struct {
	City        string          `yaml:"city" json:"city"`
	MonthlyRent decimal.Decimal `yaml:"monthly_rent" json:"monthlyRent"`
}

// ScoreWeights blend the three sub-scores into the overall score
type ScoreWeights struct {
	TaxFreedom        decimal.Decimal `yaml:"tax_freedom" json:"taxFreedom"`
	PurchasingPower   decimal.Decimal `yaml:"purchasing_power" json:"purchasingPower"`
	InvestmentFreedom decimal.Decimal `yaml:"investment_freedom" json:"investmentFreedom"`
}

// Policy is the static reference data behind the cost-of-living, investment and score models
type Policy struct {
	FoodShareOfNetIncome    decimal.Decimal `yaml:"food_share_of_net_income" json:"foodShareOfNetIncome"`
	FoodDeregulationPercent decimal.Decimal `yaml:"food_deregulation_percent" json:"foodDeregulationPercent"`

	AverageCarPrice         decimal.Decimal `yaml:"average_car_price" json:"averageCarPrice"`
	CurrentPurchaseTaxRate  decimal.Decimal `yaml:"current_purchase_tax_rate" json:"currentPurchaseTaxRate"`
	ReformedPurchaseTaxRate decimal.Decimal `yaml:"reformed_purchase_tax_rate" json:"reformedPurchaseTaxRate"`

	CityRents            []CityRent      `yaml:"city_rents" json:"cityRents"`
	RentReductionPercent decimal.Decimal `yaml:"rent_reduction_percent" json:"rentReductionPercent"`

	CurrentCapitalGainsRate  decimal.Decimal `yaml:"current_capital_gains_rate" json:"currentCapitalGainsRate"`
	ReformedCapitalGainsRate decimal.Decimal `yaml:"reformed_capital_gains_rate" json:"reformedCapitalGainsRate"`
	HypotheticalGain         decimal.Decimal `yaml:"hypothetical_gain" json:"hypotheticalGain"`
	AnnualReturn             decimal.Decimal `yaml:"annual_return" json:"annualReturn"`
	HorizonYears             int             `yaml:"horizon_years" json:"horizonYears"`

	// FoodPriceRatio is the Israeli food price index relative to the EU average
	FoodPriceRatio      decimal.Decimal `yaml:"food_price_ratio" json:"foodPriceRatio"`
	MaxEffectiveRate    decimal.Decimal `yaml:"max_effective_rate" json:"maxEffectiveRate"`
	MaxCapitalGainsRate decimal.Decimal `yaml:"max_capital_gains_rate" json:"maxCapitalGainsRate"`
	Weights             ScoreWeights    `yaml:"weights" json:"weights"`
}

// DefaultPolicy returns the reference values used throughout the analysis
func DefaultPolicy() Policy {
	return Policy{
		FoodShareOfNetIncome:    decimal.NewFromFloat(0.30),
		FoodDeregulationPercent: decimal.NewFromInt(20),

		AverageCarPrice:         decimal.NewFromInt(180000),
		CurrentPurchaseTaxRate:  decimal.NewFromFloat(0.83),
		ReformedPurchaseTaxRate: decimal.NewFromFloat(0.30),

		CityRents: []CityRent{
			{City: "tel_aviv", MonthlyRent: decimal.NewFromInt(7500)},
			{City: "jerusalem", MonthlyRent: decimal.NewFromInt(6000)},
			{City: "haifa", MonthlyRent: decimal.NewFromInt(4000)},
		},
		RentReductionPercent: decimal.NewFromInt(15),

		CurrentCapitalGainsRate:  decimal.NewFromFloat(0.25),
		ReformedCapitalGainsRate: decimal.NewFromFloat(0.15),
		HypotheticalGain:         decimal.NewFromInt(100000),
		AnnualReturn:             decimal.NewFromFloat(0.08),
		HorizonYears:             10,

		FoodPriceRatio:      decimal.NewFromFloat(1.37),
		MaxEffectiveRate:    decimal.NewFromFloat(0.55),
		MaxCapitalGainsRate: decimal.NewFromFloat(0.37),
		Weights: ScoreWeights{
			TaxFreedom:        decimal.NewFromFloat(0.4),
			PurchasingPower:   decimal.NewFromFloat(0.35),
			InvestmentFreedom: decimal.NewFromFloat(0.25),
		},
	}
}

// Validate checks the values a host may override
func (p Policy) Validate() error {
	one := decimal.NewFromInt(1)
	hundred := decimal.NewFromInt(100)

	fractions := []struct {
		name  string
		value decimal.Decimal
	}{
		{"food_share_of_net_income", p.FoodShareOfNetIncome},
		{"current_capital_gains_rate", p.CurrentCapitalGainsRate},
		{"reformed_capital_gains_rate", p.ReformedCapitalGainsRate},
	}
	for _, f := range fractions {
		if f.value.IsNegative() || f.value.GreaterThan(one) {
			return fmt.Errorf("%s must be between 0 and 1, got %s", f.name, f.value)
		}
	}

	percents := []struct {
		name  string
		value decimal.Decimal
	}{
		{"food_deregulation_percent", p.FoodDeregulationPercent},
		{"rent_reduction_percent", p.RentReductionPercent},
	}
	for _, pc := range percents {
		if pc.value.IsNegative() || pc.value.GreaterThan(hundred) {
			return fmt.Errorf("%s must be between 0 and 100, got %s", pc.name, pc.value)
		}
	}

	if !p.AverageCarPrice.IsPositive() {
		return fmt.Errorf("average_car_price must be positive")
	}
	if p.CurrentPurchaseTaxRate.IsNegative() || p.ReformedPurchaseTaxRate.IsNegative() {
		return fmt.Errorf("purchase tax rates cannot be negative")
	}
	if len(p.CityRents) == 0 {
		return fmt.Errorf("at least one city rent is required")
	}
	for _, r := range p.CityRents {
		if r.MonthlyRent.IsNegative() {
			return fmt.Errorf("rent for %s cannot be negative", r.City)
		}
	}
	if p.HorizonYears <= 0 {
		return fmt.Errorf("horizon_years must be positive, got %d", p.HorizonYears)
	}
	if p.AnnualReturn.IsNegative() {
		return fmt.Errorf("annual_return cannot be negative")
	}
	if !p.FoodPriceRatio.IsPositive() || !p.MaxEffectiveRate.IsPositive() || !p.MaxCapitalGainsRate.IsPositive() {
		return fmt.Errorf("score reference values must be positive")
	}
	total := p.Weights.TaxFreedom.Add(p.Weights.PurchasingPower).Add(p.Weights.InvestmentFreedom)
	if !total.Equal(one) {
		return fmt.Errorf("score weights must sum to 1, got %s", total)
	}
	return nil
}
