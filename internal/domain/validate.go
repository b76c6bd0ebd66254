package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// ErrNoRateData is returned when no bundle exists for a requested tax year
var ErrNoRateData = errors.New("no rate data")

// budgetTolerance is how far the budget percentages may drift from 100
var budgetTolerance = decimal.NewFromFloat(0.5)

// ValidationError identifies the offending dataset, year and field of a malformed bundle
type ValidationError struct {
	Dataset string
	Year    int
	Field   string
	Reason  string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s data for year %d: %s: %s", e.Dataset, e.Year, e.Field, e.Reason)
}

// validator reports the first failure only
type validator struct {
	year int
}

func (v validator) fail(dataset, field, format string, args ...any) error {
	return &ValidationError{Dataset: dataset, Year: v.year, Field: field, Reason: fmt.Sprintf(format, args...)}
}

func (v validator) fraction(dataset, field string, d decimal.Decimal) error {
	if d.IsNegative() || d.GreaterThan(decimal.NewFromInt(1)) {
		return v.fail(dataset, field, "rate %s must be between 0 and 1", d)
	}
	return nil
}

func (v validator) positive(dataset, field string, d decimal.Decimal) error {
	if !d.IsPositive() {
		return v.fail(dataset, field, "amount %s must be positive", d)
	}
	return nil
}

func (v validator) percent(dataset, field string, d decimal.Decimal) error {
	if d.IsNegative() || d.GreaterThan(decimal.NewFromInt(100)) {
		return v.fail(dataset, field, "percentage %s must be between 0 and 100", d)
	}
	return nil
}

// Validate checks every table of the bundle. The first problem found is returned as a *ValidationError.
func (b *RateDataBundle) Validate() error {
	v := validator{year: b.Year}
	if b.Year <= 0 {
		return v.fail("bundle", "year", "year is required")
	}
	checks := []func(validator) error{
		b.IncomeTax.validate,
		b.SocialInsurance.validate,
		b.TaxCredits.validate,
		b.VAT.validate,
		b.validateBudget,
		b.validateArnona,
		b.validateCostAnalysis,
	}
	for _, check := range checks {
		if err := check(v); err != nil {
			return err
		}
	}
	return nil
}

func (t IncomeTaxTable) validate(v validator) error {
	const ds = "income_tax"
	if len(t.Brackets) == 0 {
		return v.fail(ds, "brackets", "at least one bracket is required")
	}
	for i, b := range t.Brackets {
		field := fmt.Sprintf("brackets[%d]", i)
		if err := v.fraction(ds, field+".rate", b.Rate); err != nil {
			return err
		}
		if b.Floor.IsNegative() {
			return v.fail(ds, field+".floor", "floor cannot be negative")
		}
		last := i == len(t.Brackets)-1
		if b.Ceiling == nil {
			if !last {
				return v.fail(ds, field+".ceiling", "only the last bracket may be unbounded")
			}
		} else {
			if last {
				return v.fail(ds, field+".ceiling", "the last bracket must be unbounded")
			}
			if !b.Ceiling.GreaterThan(b.Floor) {
				return v.fail(ds, field+".ceiling", "ceiling %s must exceed floor %s", b.Ceiling, b.Floor)
			}
		}
		if i > 0 {
			prev := t.Brackets[i-1]
			if prev.Ceiling == nil || !prev.Ceiling.Equal(b.Floor) {
				return v.fail(ds, field+".floor", "floor %s must equal previous ceiling", b.Floor)
			}
		} else if !b.Floor.IsZero() {
			return v.fail(ds, field+".floor", "first bracket must start at 0")
		}
	}
	if err := v.positive(ds, "surtax.threshold", t.Surtax.Threshold); err != nil {
		return err
	}
	return v.fraction(ds, "surtax.rate", t.Surtax.Rate)
}

func (s SocialInsuranceRates) validate(v validator) error {
	const ds = "social_insurance"
	if err := v.positive(ds, "reduced_rate_threshold", s.ReducedRateThreshold); err != nil {
		return err
	}
	if err := v.positive(ds, "max_insurable_income", s.MaxInsurableIncome); err != nil {
		return err
	}
	if !s.MaxInsurableIncome.GreaterThan(s.ReducedRateThreshold) {
		return v.fail(ds, "max_insurable_income", "must exceed the reduced rate threshold")
	}
	tiers := []struct {
		name  string
		rates TierRates
	}{
		{"employee.reduced", s.Employee.Reduced},
		{"employee.full", s.Employee.Full},
		{"employer.reduced", s.Employer.Reduced},
		{"employer.full", s.Employer.Full},
		{"self_employed.reduced", s.SelfEmployed.Reduced},
		{"self_employed.full", s.SelfEmployed.Full},
	}
	for _, tier := range tiers {
		if err := v.fraction(ds, tier.name+".national_insurance", tier.rates.NationalInsurance); err != nil {
			return err
		}
		if err := v.fraction(ds, tier.name+".health_insurance", tier.rates.HealthInsurance); err != nil {
			return err
		}
	}
	if s.SelfEmployed.ExemptionThreshold.IsNegative() {
		return v.fail(ds, "self_employed.exemption_threshold", "cannot be negative")
	}
	return nil
}

func (c TaxCreditData) validate(v validator) error {
	const ds = "tax_credits"
	if err := v.positive(ds, "point_value_annual", c.PointValueAnnual); err != nil {
		return err
	}
	if c.BaseCredits.Resident.IsNegative() || c.BaseCredits.WomanAdditional.IsNegative() {
		return v.fail(ds, "base_credits", "points cannot be negative")
	}
	for i, cc := range c.ChildCredits {
		if cc.MotherPoints.IsNegative() || cc.FatherPoints.IsNegative() {
			return v.fail(ds, fmt.Sprintf("child_credits[%d]", i), "points cannot be negative")
		}
	}
	for i, r := range c.ChildAgeRanges {
		field := fmt.Sprintf("child_age_ranges[%d]", i)
		if r.MinAge < 0 || r.MaxAge < r.MinAge {
			return v.fail(ds, field, "invalid age range %d-%d", r.MinAge, r.MaxAge)
		}
		if r.Index < 0 || r.Index >= len(c.ChildCredits) {
			return v.fail(ds, field+".index", "index %d does not reference a child credit", r.Index)
		}
		for j := 0; j < i; j++ {
			o := c.ChildAgeRanges[j]
			if r.MinAge <= o.MaxAge && o.MinAge <= r.MaxAge {
				return v.fail(ds, field, "overlaps child_age_ranges[%d]", j)
			}
		}
	}
	return nil
}

func (c VATConfig) validate(v validator) error {
	return v.fraction("vat", "current_rate", c.CurrentRate)
}

func (b *RateDataBundle) validateBudget(v validator) error {
	const ds = "budget"
	if len(b.Budget) == 0 {
		return v.fail(ds, "categories", "at least one category is required")
	}
	seen := make(map[string]bool, len(b.Budget))
	total := decimal.Zero
	for i, c := range b.Budget {
		field := fmt.Sprintf("categories[%d]", i)
		if c.ID == "" {
			return v.fail(ds, field+".id", "id is required")
		}
		if seen[c.ID] {
			return v.fail(ds, field+".id", "duplicate id %q", c.ID)
		}
		seen[c.ID] = true
		if err := v.percent(ds, field+".percentage", c.Percentage); err != nil {
			return err
		}
		total = total.Add(c.Percentage)
	}
	if total.Sub(decimal.NewFromInt(100)).Abs().GreaterThan(budgetTolerance) {
		return v.fail(ds, "percentage", "percentages sum to %s, expected 100", total)
	}
	return nil
}

func (b *RateDataBundle) validateArnona(v validator) error {
	const ds = "arnona"
	seen := make(map[string]bool, len(b.Arnona))
	for i, c := range b.Arnona {
		field := fmt.Sprintf("cities[%d]", i)
		if c.ID == "" {
			return v.fail(ds, field+".id", "id is required")
		}
		if seen[c.ID] {
			return v.fail(ds, field+".id", "duplicate id %q", c.ID)
		}
		seen[c.ID] = true
		if err := v.positive(ds, field+".rate_per_sqm", c.RatePerSqm); err != nil {
			return err
		}
		if err := v.positive(ds, field+".avg_annual_arnona", c.AvgAnnualArnona); err != nil {
			return err
		}
		if err := v.positive(ds, field+".avg_monthly_arnona", c.AvgMonthlyArnona); err != nil {
			return err
		}
	}
	return nil
}

func (b *RateDataBundle) validateCostAnalysis(v validator) error {
	const ds = "cost_analysis"
	seen := make(map[string]bool, len(b.CostAnalysis))
	for i, c := range b.CostAnalysis {
		field := fmt.Sprintf("categories[%d]", i)
		if c.ID == "" {
			return v.fail(ds, field+".id", "id is required")
		}
		if seen[c.ID] {
			return v.fail(ds, field+".id", "duplicate id %q", c.ID)
		}
		seen[c.ID] = true
		if err := v.percent(ds, field+".overhead_percent", c.OverheadPercent); err != nil {
			return err
		}
		if !c.ReachesServicePercent.Equal(decimal.NewFromInt(100).Sub(c.OverheadPercent)) {
			return v.fail(ds, field+".reaches_service_percent", "must equal 100 - overhead_percent")
		}
		if !c.Grade.Valid() {
			return v.fail(ds, field+".grade", "grade %q must be one of A, B, C, D, F", c.Grade)
		}
		m := c.AlternativeCostMultiplier
		if !m.IsPositive() || m.GreaterThan(decimal.NewFromInt(1)) {
			return v.fail(ds, field+".alternative_cost_multiplier", "multiplier %s must be in (0, 1]", m)
		}
	}
	return nil
}
