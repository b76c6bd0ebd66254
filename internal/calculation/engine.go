package calculation

import (
	"fmt"

	"github.com/rgehrsitz/iltax/internal/domain"
	"github.com/shopspring/decimal"
)

// BundleSource supplies a validated rate bundle per tax year
type BundleSource interface {
	Load(year int) (*domain.RateDataBundle, error)
}

// Engine resolves the rate bundle for a profile and runs the full calculation
type Engine struct {
	Data   BundleSource
	Logger Logger
}

// NewEngine creates an engine backed by data
func NewEngine(data BundleSource) *Engine {
	return &Engine{Data: data, Logger: NopLogger{}}
}

// SetLogger sets the engine logger, falling back to a no-op logger for nil
func (e *Engine) SetLogger(l Logger) {
	if l == nil {
		e.Logger = NopLogger{}
		return
	}
	e.Logger = l
}

// Calculate validates the profile, loads the bundle for its tax year and computes the total burden
func (e *Engine) Calculate(profile domain.TaxpayerProfile) (*domain.TotalTaxResult, error) {
	if err := profile.Validate(); err != nil {
		return nil, fmt.Errorf("invalid profile: %w", err)
	}
	if e.Data == nil {
		return nil, fmt.Errorf("no data for year %d: %w", profile.TaxYear, domain.ErrNoRateData)
	}

	data, err := e.Data.Load(profile.TaxYear)
	if err != nil {
		e.Logger.Errorf("loading rate data for %d: %v", profile.TaxYear, err)
		return nil, err
	}

	result, err := CalculateTotalTax(profile, data)
	if err != nil {
		return nil, err
	}
	e.Logger.Debugf("year %d %s gross=%s deductions=%s net=%s",
		result.TaxYear, profile.EmploymentType, result.GrossIncome, result.TotalDeductions, result.NetIncome)
	return result, nil
}

// CalculateTotalTax composes every calculator into one itemized result.
// Order: credits, income tax, National Insurance, health tax, deductions, VAT, employer cost,
// budget allocation, arnona.
func CalculateTotalTax(profile domain.TaxpayerProfile, data *domain.RateDataBundle) (*domain.TotalTaxResult, error) {
	if data == nil {
		return nil, fmt.Errorf("no data for year %d: %w", profile.TaxYear, domain.ErrNoRateData)
	}
	if data.Year != profile.TaxYear {
		return nil, fmt.Errorf("no data for year %d (bundle is for %d): %w", profile.TaxYear, data.Year, domain.ErrNoRateData)
	}

	gross := RoundToSmallestUnit(profile.AnnualGrossIncome)
	si := data.SocialInsurance

	credits := CalculateTaxCredits(profile.Gender, profile.ChildAges, data.TaxCredits)
	incomeTax := CalculateIncomeTax(gross, data.IncomeTax, credits.TotalCreditValue)
	ni := CalculateNationalInsurance(gross, profile.EmploymentType, si)
	health := CalculateHealthTax(gross, profile.EmploymentType, si)

	totalDeductions := RoundToSmallestUnit(incomeTax.NetTax.Add(ni.EmployeeContribution).Add(health.Contribution))
	netIncome := RoundToSmallestUnit(gross.Sub(totalDeductions))

	return &domain.TotalTaxResult{
		TaxYear:            profile.TaxYear,
		GrossIncome:        gross,
		IncomeTax:          incomeTax,
		NationalInsurance:  ni,
		HealthTax:          health,
		TaxCredits:         credits,
		VAT:                estimateProfileVAT(profile, netIncome, data.VAT.CurrentRate),
		TotalDeductions:    totalDeductions,
		NetIncome:          netIncome,
		TotalEffectiveRate: safeRatio(totalDeductions, gross),
		MonthlyGross:       RoundToSmallestUnit(gross.Div(monthsInYear)),
		MonthlyNet:         RoundToSmallestUnit(netIncome.Div(monthsInYear)),
		DailyTax:           RoundToSmallestUnit(totalDeductions.Div(daysInYear)),
		EmployerCost:       employerCost(gross, ni.EmployerContribution, profile.PensionRateOrDefault()),
		BudgetAllocation:   AllocateBudget(totalDeductions, data.Budget),
		Arnona:             LookupArnona(profile.CityID, data.Arnona),
	}, nil
}

// estimateProfileVAT prefers explicit monthly spending over the net income proxy.
// Explicit spending of zero yields a zero estimate; the proxy yields nil when there is no net income.
func estimateProfileVAT(profile domain.TaxpayerProfile, netIncome, rate decimal.Decimal) *domain.VATEstimate {
	if s := profile.MonthlyConsumerSpending; s != nil {
		estimate := EstimateVAT(RoundToSmallestUnit(s.Mul(monthsInYear)), rate, decimal.Zero)
		return &estimate
	}
	if !netIncome.IsPositive() {
		return nil
	}
	estimate := EstimateVAT(netIncome, rate, DefaultSavingsRate)
	return &estimate
}
