package freedom

import (
	"fmt"

	"github.com/rgehrsitz/iltax/internal/calculation"
	"github.com/rgehrsitz/iltax/internal/domain"
	"github.com/shopspring/decimal"
)

var (
	hundred      = decimal.NewFromInt(100)
	monthsInYear = decimal.NewFromInt(12)
)

// ReformScenario is a set of pro-rata reductions, each a percentage in [0, 100].
// Health tax follows the National Insurance reduction.
type ReformScenario struct {
	Name                      string          `yaml:"name,omitempty" json:"name,omitempty"`
	IncomeTaxReductionPercent decimal.Decimal `yaml:"income_tax_reduction_percent" json:"incomeTaxReductionPercent"`
	VATReductionPercent       decimal.Decimal `yaml:"vat_reduction_percent" json:"vatReductionPercent"`
	NIReductionPercent        decimal.Decimal `yaml:"ni_reduction_percent" json:"niReductionPercent"`
}

// Validate checks every reduction is a percentage
func (s ReformScenario) Validate() error {
	checks := []struct {
		name string
		pct  decimal.Decimal
	}{
		{"income tax", s.IncomeTaxReductionPercent},
		{"VAT", s.VATReductionPercent},
		{"NI", s.NIReductionPercent},
	}
	for _, c := range checks {
		if c.pct.IsNegative() || c.pct.GreaterThan(hundred) {
			return fmt.Errorf("%s reduction %s%% must be between 0 and 100", c.name, c.pct)
		}
	}
	return nil
}

// ReformResult compares current and reformed annual payments.
// Current totals include VAT on top of the payroll deductions.
type ReformResult struct {
	Scenario                ReformScenario  `json:"scenario"`
	CurrentIncomeTax        decimal.Decimal `json:"currentIncomeTax"`
	ReformedIncomeTax       decimal.Decimal `json:"reformedIncomeTax"`
	CurrentNI               decimal.Decimal `json:"currentNi"`
	ReformedNI              decimal.Decimal `json:"reformedNi"`
	CurrentHealthTax        decimal.Decimal `json:"currentHealthTax"`
	ReformedHealthTax       decimal.Decimal `json:"reformedHealthTax"`
	CurrentVAT              decimal.Decimal `json:"currentVat"`
	ReformedVAT             decimal.Decimal `json:"reformedVat"`
	CurrentTotalDeductions  decimal.Decimal `json:"currentTotalDeductions"`
	ReformedTotalDeductions decimal.Decimal `json:"reformedTotalDeductions"`
	AnnualSavings           decimal.Decimal `json:"annualSavings"`
	MonthlySavings          decimal.Decimal `json:"monthlySavings"`
	ExtraMonthsOfSalary     decimal.Decimal `json:"extraMonthsOfSalary"`
}

// SimulateReform applies the scenario's reductions to each tax independently
func SimulateReform(result *domain.TotalTaxResult, scenario ReformScenario) ReformResult {
	out := ReformResult{
		Scenario:                scenario,
		CurrentIncomeTax:        decimal.Zero,
		ReformedIncomeTax:       decimal.Zero,
		CurrentNI:               decimal.Zero,
		ReformedNI:              decimal.Zero,
		CurrentHealthTax:        decimal.Zero,
		ReformedHealthTax:       decimal.Zero,
		CurrentVAT:              decimal.Zero,
		ReformedVAT:             decimal.Zero,
		CurrentTotalDeductions:  decimal.Zero,
		ReformedTotalDeductions: decimal.Zero,
		AnnualSavings:           decimal.Zero,
		MonthlySavings:          decimal.Zero,
		ExtraMonthsOfSalary:     decimal.Zero,
	}
	if result == nil || !result.GrossIncome.IsPositive() {
		return out
	}

	out.CurrentIncomeTax = result.IncomeTax.NetTax
	out.CurrentNI = result.NationalInsurance.EmployeeContribution
	out.CurrentHealthTax = result.HealthTax.Contribution
	out.CurrentVAT = result.VATPaid()

	out.ReformedIncomeTax = reduce(out.CurrentIncomeTax, scenario.IncomeTaxReductionPercent)
	out.ReformedNI = reduce(out.CurrentNI, scenario.NIReductionPercent)
	out.ReformedHealthTax = reduce(out.CurrentHealthTax, scenario.NIReductionPercent)
	out.ReformedVAT = reduce(out.CurrentVAT, scenario.VATReductionPercent)

	out.CurrentTotalDeductions = calculation.RoundToSmallestUnit(result.TotalDeductions.Add(out.CurrentVAT))
	out.ReformedTotalDeductions = calculation.RoundToSmallestUnit(
		out.ReformedIncomeTax.Add(out.ReformedNI).Add(out.ReformedHealthTax).Add(out.ReformedVAT))

	out.AnnualSavings = calculation.RoundToSmallestUnit(out.CurrentTotalDeductions.Sub(out.ReformedTotalDeductions))
	out.MonthlySavings = calculation.RoundToSmallestUnit(out.AnnualSavings.Div(monthsInYear))
	if result.MonthlyGross.IsPositive() {
		out.ExtraMonthsOfSalary = calculation.RoundTo(out.AnnualSavings.Div(result.MonthlyGross), 1)
	}
	return out
}

func reduce(amount, percent decimal.Decimal) decimal.Decimal {
	factor := decimal.NewFromInt(1).Sub(percent.Div(hundred))
	return calculation.RoundToSmallestUnit(amount.Mul(factor))
}
