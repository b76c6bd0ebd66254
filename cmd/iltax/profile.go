package main

import (
	"fmt"

	"github.com/rgehrsitz/iltax/internal/config"
	"github.com/rgehrsitz/iltax/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

// profileFlags builds a taxpayer profile from a YAML file or from individual flags.
// Flags set explicitly override the file.
type profileFlags struct {
	file        string
	income      string
	employment  string
	gender      string
	year        int
	children    []int
	pensionRate string
	spending    string
	city        string
}

func (pf *profileFlags) register(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVarP(&pf.file, "profile", "p", "", "Taxpayer profile YAML file")
	f.StringVar(&pf.income, "income", "", "Annual gross income in shekels")
	f.StringVar(&pf.employment, "employment", string(domain.Employee), "Employment type (employee, self_employed)")
	f.StringVar(&pf.gender, "gender", string(domain.Male), "Gender (male, female)")
	f.IntVar(&pf.year, "year", 2025, "Tax year")
	f.IntSliceVar(&pf.children, "children", nil, "Comma-separated child ages")
	f.StringVar(&pf.pensionRate, "pension-rate", "", "Employer pension contribution rate, e.g. 0.0625")
	f.StringVar(&pf.spending, "spending", "", "Monthly consumer spending for the VAT estimate")
	f.StringVar(&pf.city, "city", "", "City id for the arnona lookup")
}

func (pf *profileFlags) build(cmd *cobra.Command) (domain.TaxpayerProfile, error) {
	var profile domain.TaxpayerProfile
	if pf.file != "" {
		loaded, err := config.LoadProfile(pf.file)
		if err != nil {
			return profile, err
		}
		profile = *loaded
	} else {
		profile.EmploymentType = domain.Employee
		profile.Gender = domain.Male
		profile.TaxYear = pf.year
	}

	changed := cmd.Flags().Changed
	var err error
	if pf.income != "" {
		if profile.AnnualGrossIncome, err = parseAmount("income", pf.income); err != nil {
			return profile, err
		}
	}
	if pf.file == "" || changed("employment") {
		if profile.EmploymentType, err = domain.ParseEmploymentType(pf.employment); err != nil {
			return profile, err
		}
	}
	if pf.file == "" || changed("gender") {
		if profile.Gender, err = domain.ParseGender(pf.gender); err != nil {
			return profile, err
		}
	}
	if changed("year") {
		profile.TaxYear = pf.year
	}
	if changed("children") {
		profile.ChildAges = pf.children
	}
	if pf.pensionRate != "" {
		rate, err := parseAmount("pension-rate", pf.pensionRate)
		if err != nil {
			return profile, err
		}
		profile.PensionContributionRate = &rate
	}
	if pf.spending != "" {
		spending, err := parseAmount("spending", pf.spending)
		if err != nil {
			return profile, err
		}
		profile.MonthlyConsumerSpending = &spending
	}
	if pf.city != "" {
		profile.CityID = pf.city
	}

	if err := profile.Validate(); err != nil {
		return profile, fmt.Errorf("invalid profile: %w", err)
	}
	return profile, nil
}

func parseAmount(flag, raw string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("--%s: %q is not a number", flag, raw)
	}
	if d.IsNegative() {
		return decimal.Zero, fmt.Errorf("--%s cannot be negative", flag)
	}
	return d, nil
}
