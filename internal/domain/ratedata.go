package domain

import (
	"github.com/shopspring/decimal"
)

// RateDataBundle contains every published table needed to compute one tax year.
// It is loaded from rates_<year>.yaml, validated once and then treated as read-only.
type RateDataBundle struct {
	Year            int                  `yaml:"year" json:"year"`
	Metadata        RateMetadata         `yaml:"metadata" json:"metadata"`
	IncomeTax       IncomeTaxTable       `yaml:"income_tax" json:"incomeTax"`
	SocialInsurance SocialInsuranceRates `yaml:"social_insurance" json:"socialInsurance"`
	TaxCredits      TaxCreditData        `yaml:"tax_credits" json:"taxCredits"`
	VAT             VATConfig            `yaml:"vat" json:"vat"`
	Budget          []BudgetCategory     `yaml:"budget" json:"budget"`
	Arnona          []ArnonaCity         `yaml:"arnona" json:"arnona"`
	CostAnalysis    []CostAnalysisEntry  `yaml:"cost_analysis" json:"costAnalysis"`
}

// RateMetadata describes where the tables came from
type RateMetadata struct {
	LastUpdated string `yaml:"last_updated" json:"lastUpdated"`
	SourceURL   string `yaml:"source_url" json:"sourceUrl"`
	Description string `yaml:"description" json:"description"`
}

// IncomeTaxTable holds the progressive brackets and the high-income surtax
type IncomeTaxTable struct {
	Brackets []TaxBracket `yaml:"brackets" json:"brackets"`
	Surtax   SurtaxConfig `yaml:"surtax" json:"surtax"`
}

// TaxBracket is one marginal-rate band. A nil Ceiling marks the open top bracket.
type TaxBracket struct {
	Floor   decimal.Decimal  `yaml:"floor" json:"floor"`
	Ceiling *decimal.Decimal `yaml:"ceiling" json:"ceiling"`
	Rate    decimal.Decimal  `yaml:"rate" json:"rate"`
}

// SurtaxConfig is the flat additional rate on income above Threshold
type SurtaxConfig struct {
	Threshold decimal.Decimal `yaml:"threshold" json:"threshold"`
	Rate      decimal.Decimal `yaml:"rate" json:"rate"`
}

// SocialInsuranceRates covers both National Insurance and Health Tax.
// Income up to ReducedRateThreshold pays the reduced tier, income above it pays the
// full tier, and nothing accrues beyond MaxInsurableIncome.
type SocialInsuranceRates struct {
	ReducedRateThreshold decimal.Decimal   `yaml:"reduced_rate_threshold" json:"reducedRateThreshold"`
	MaxInsurableIncome   decimal.Decimal   `yaml:"max_insurable_income" json:"maxInsurableIncome"`
	Employee             RateTiers         `yaml:"employee" json:"employee"`
	Employer             RateTiers         `yaml:"employer" json:"employer"`
	SelfEmployed         SelfEmployedTiers `yaml:"self_employed" json:"selfEmployed"`
}

// RateTiers is a reduced/full pair for one payer side
type RateTiers struct {
	Reduced TierRates `yaml:"reduced" json:"reduced"`
	Full    TierRates `yaml:"full" json:"full"`
}

// TierRates splits a tier into its National Insurance and health components
type TierRates struct {
	NationalInsurance decimal.Decimal `yaml:"national_insurance" json:"nationalInsurance"`
	HealthInsurance   decimal.Decimal `yaml:"health_insurance" json:"healthInsurance"`
}

// SelfEmployedTiers adds the exemption subtracted before threshold splitting
type SelfEmployedTiers struct {
	Reduced            TierRates       `yaml:"reduced" json:"reduced"`
	Full               TierRates       `yaml:"full" json:"full"`
	ExemptionThreshold decimal.Decimal `yaml:"exemption_threshold" json:"exemptionThreshold"`
}

// TaxCreditData is the credit-point schedule
type TaxCreditData struct {
	PointValueAnnual decimal.Decimal `yaml:"point_value_annual" json:"pointValueAnnual"`
	BaseCredits      BaseCredits     `yaml:"base_credits" json:"baseCredits"`
	ChildCredits     []ChildCredit   `yaml:"child_credits" json:"childCredits"`
	ChildAgeRanges   []ChildAgeRange `yaml:"child_age_ranges" json:"childAgeRanges"`
}

// BaseCredits are awarded independent of children
type BaseCredits struct {
	Resident        decimal.Decimal `yaml:"resident" json:"resident"`
	WomanAdditional decimal.Decimal `yaml:"woman_additional" json:"womanAdditional"`
}

// ChildCredit is the points a parent receives for one child in a given age band
type ChildCredit struct {
	MotherPoints decimal.Decimal `yaml:"mother_points" json:"motherPoints"`
	FatherPoints decimal.Decimal `yaml:"father_points" json:"fatherPoints"`
}

// ChildAgeRange maps an inclusive age band onto ChildCredits[Index]
type ChildAgeRange struct {
	MinAge int `yaml:"min_age" json:"minAge"`
	MaxAge int `yaml:"max_age" json:"maxAge"`
	Index  int `yaml:"index" json:"index"`
}

// Contains reports whether age falls inside the band
func (r ChildAgeRange) Contains(age int) bool {
	return age >= r.MinAge && age <= r.MaxAge
}

// VATConfig holds the consumption tax rate
type VATConfig struct {
	CurrentRate decimal.Decimal `yaml:"current_rate" json:"currentRate"`
}

// BudgetCategory is one line of the national budget
type BudgetCategory struct {
	ID         string          `yaml:"id" json:"id"`
	NameEn     string          `yaml:"name_en" json:"nameEn"`
	NameHe     string          `yaml:"name_he" json:"nameHe"`
	Percentage decimal.Decimal `yaml:"percentage" json:"percentage"`
	Color      string          `yaml:"color" json:"color"`
}

// ArnonaCity is the municipal tax average for one city
type ArnonaCity struct {
	ID               string          `yaml:"id" json:"id"`
	NameEn           string          `yaml:"name_en" json:"nameEn"`
	NameHe           string          `yaml:"name_he" json:"nameHe"`
	RatePerSqm       decimal.Decimal `yaml:"rate_per_sqm" json:"ratePerSqm"`
	AvgAnnualArnona  decimal.Decimal `yaml:"avg_annual_arnona" json:"avgAnnualArnona"`
	AvgMonthlyArnona decimal.Decimal `yaml:"avg_monthly_arnona" json:"avgMonthlyArnona"`
}

// Grade is an efficiency letter grade
type Grade string

const (
	GradeA    Grade = "A"
	GradeB    Grade = "B"
	GradeC    Grade = "C"
	GradeD    Grade = "D"
	GradeF    Grade = "F"
	GradeNone Grade = "N/A"
)

// Valid reports whether g is one of A-F
func (g Grade) Valid() bool {
	switch g {
	case GradeA, GradeB, GradeC, GradeD, GradeF:
		return true
	}
	return false
}

// CostAnalysisEntry models how much of a budget category's money reaches the service
type CostAnalysisEntry struct {
	ID                        string          `yaml:"id" json:"id"`
	OverheadPercent           decimal.Decimal `yaml:"overhead_percent" json:"overheadPercent"`
	ReachesServicePercent     decimal.Decimal `yaml:"reaches_service_percent" json:"reachesServicePercent"`
	Grade                     Grade           `yaml:"grade" json:"grade"`
	AlternativeCostMultiplier decimal.Decimal `yaml:"alternative_cost_multiplier" json:"alternativeCostMultiplier"`
}
