package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// EmploymentType distinguishes salaried employees from the self-employed
type EmploymentType string

const (
	Employee     EmploymentType = "employee"
	SelfEmployed EmploymentType = "self_employed"
)

// ParseEmploymentType accepts the canonical names plus the camelCase form used by older clients
func ParseEmploymentType(s string) (EmploymentType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "employee":
		return Employee, nil
	case "self_employed", "selfemployed", "self-employed":
		return SelfEmployed, nil
	default:
		return "", fmt.Errorf("unknown employment type %q", s)
	}
}

// UnmarshalText lets YAML and JSON decoders accept every spelling ParseEmploymentType knows
func (e *EmploymentType) UnmarshalText(text []byte) error {
	parsed, err := ParseEmploymentType(string(text))
	if err != nil {
		return err
	}
	*e = parsed
	return nil
}

// Validate checks the employment type is one of the known values
func (e EmploymentType) Validate() error {
	if e != Employee && e != SelfEmployed {
		return fmt.Errorf("unknown employment type %q", string(e))
	}
	return nil
}

// Gender drives the credit-point rules
type Gender string

const (
	Male   Gender = "male"
	Female Gender = "female"
)

// ParseGender normalizes user input into a Gender
func ParseGender(s string) (Gender, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "male", "m":
		return Male, nil
	case "female", "f":
		return Female, nil
	default:
		return "", fmt.Errorf("unknown gender %q", s)
	}
}

// UnmarshalText accepts the short forms as well
func (g *Gender) UnmarshalText(text []byte) error {
	parsed, err := ParseGender(string(text))
	if err != nil {
		return err
	}
	*g = parsed
	return nil
}

// Validate checks the gender is one of the known values
func (g Gender) Validate() error {
	if g != Male && g != Female {
		return fmt.Errorf("unknown gender %q", string(g))
	}
	return nil
}

// DefaultPensionContributionRate is the employer pension share used when a profile leaves it unset
var DefaultPensionContributionRate = decimal.NewFromFloat(0.0625)

// TaxpayerProfile is the input to a single calculation request.
// Optional fields use pointers so that "absent" and "zero" stay distinct.
type TaxpayerProfile struct {
	AnnualGrossIncome       decimal.Decimal  `yaml:"annual_gross_income" json:"annualGrossIncome"`
	EmploymentType          EmploymentType   `yaml:"employment_type" json:"employmentType"`
	Gender                  Gender           `yaml:"gender" json:"gender"`
	TaxYear                 int              `yaml:"tax_year" json:"taxYear"`
	ChildAges               []int            `yaml:"child_ages,omitempty" json:"childAges,omitempty"`
	PensionContributionRate *decimal.Decimal `yaml:"pension_contribution_rate,omitempty" json:"pensionContributionRate,omitempty"`
	MonthlyConsumerSpending *decimal.Decimal `yaml:"monthly_consumer_spending,omitempty" json:"monthlyConsumerSpending,omitempty"`
	CityID                  string           `yaml:"city_id,omitempty" json:"cityId,omitempty"`
}

// PensionRateOrDefault returns the configured pension rate or the 6.25% default
func (p TaxpayerProfile) PensionRateOrDefault() decimal.Decimal {
	if p.PensionContributionRate == nil {
		return DefaultPensionContributionRate
	}
	return *p.PensionContributionRate
}

// Validate rejects profiles the engine cannot interpret. Zero income is valid.
func (p TaxpayerProfile) Validate() error {
	if p.AnnualGrossIncome.IsNegative() {
		return fmt.Errorf("annual gross income cannot be negative")
	}
	if err := p.EmploymentType.Validate(); err != nil {
		return err
	}
	if err := p.Gender.Validate(); err != nil {
		return err
	}
	if p.TaxYear <= 0 {
		return fmt.Errorf("tax year is required")
	}
	for i, age := range p.ChildAges {
		if age < 0 {
			return fmt.Errorf("child %d: age cannot be negative", i)
		}
	}
	if p.PensionContributionRate != nil {
		r := *p.PensionContributionRate
		if r.IsNegative() || r.GreaterThan(decimal.NewFromInt(1)) {
			return fmt.Errorf("pension contribution rate must be between 0 and 1")
		}
	}
	if p.MonthlyConsumerSpending != nil && p.MonthlyConsumerSpending.IsNegative() {
		return fmt.Errorf("monthly consumer spending cannot be negative")
	}
	return nil
}
