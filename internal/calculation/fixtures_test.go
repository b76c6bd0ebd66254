package calculation

import (
	"github.com/rgehrsitz/iltax/internal/domain"
	"github.com/shopspring/decimal"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func dp(s string) *decimal.Decimal {
	v := d(s)
	return &v
}

func incomeTaxTable2025() domain.IncomeTaxTable {
	return domain.IncomeTaxTable{
		Brackets: []domain.TaxBracket{
			{Floor: d("0"), Ceiling: dp("84120"), Rate: d("0.10")},
			{Floor: d("84120"), Ceiling: dp("120720"), Rate: d("0.14")},
			{Floor: d("120720"), Ceiling: dp("193800"), Rate: d("0.20")},
			{Floor: d("193800"), Ceiling: dp("269280"), Rate: d("0.31")},
			{Floor: d("269280"), Ceiling: dp("560280"), Rate: d("0.35")},
			{Floor: d("560280"), Ceiling: dp("721560"), Rate: d("0.47")},
			{Floor: d("721560"), Ceiling: nil, Rate: d("0.47")},
		},
		Surtax: domain.SurtaxConfig{Threshold: d("721560"), Rate: d("0.03")},
	}
}

func socialInsurance2025() domain.SocialInsuranceRates {
	return domain.SocialInsuranceRates{
		ReducedRateThreshold: d("90264"),
		MaxInsurableIncome:   d("608340"),
		Employee: domain.RateTiers{
			Reduced: domain.TierRates{NationalInsurance: d("0.004"), HealthInsurance: d("0.0323")},
			Full:    domain.TierRates{NationalInsurance: d("0.07"), HealthInsurance: d("0.0517")},
		},
		Employer: domain.RateTiers{
			Reduced: domain.TierRates{NationalInsurance: d("0.0451"), HealthInsurance: d("0")},
			Full:    domain.TierRates{NationalInsurance: d("0.076"), HealthInsurance: d("0")},
		},
		SelfEmployed: domain.SelfEmployedTiers{
			Reduced:            domain.TierRates{NationalInsurance: d("0.0447"), HealthInsurance: d("0.0323")},
			Full:               domain.TierRates{NationalInsurance: d("0.1283"), HealthInsurance: d("0.0517")},
			ExemptionThreshold: d("0"),
		},
	}
}

func taxCredits2025() domain.TaxCreditData {
	return domain.TaxCreditData{
		PointValueAnnual: d("2904"),
		BaseCredits:      domain.BaseCredits{Resident: d("2.25"), WomanAdditional: d("0.5")},
		ChildCredits: []domain.ChildCredit{
			{MotherPoints: d("1.5"), FatherPoints: d("1.5")},
			{MotherPoints: d("2.5"), FatherPoints: d("2.5")},
			{MotherPoints: d("2.5"), FatherPoints: d("0")},
			{MotherPoints: d("1"), FatherPoints: d("0")},
			{MotherPoints: d("0.5"), FatherPoints: d("0")},
		},
		ChildAgeRanges: []domain.ChildAgeRange{
			{MinAge: 0, MaxAge: 0, Index: 0},
			{MinAge: 1, MaxAge: 5, Index: 1},
			{MinAge: 6, MaxAge: 12, Index: 2},
			{MinAge: 13, MaxAge: 17, Index: 3},
			{MinAge: 18, MaxAge: 18, Index: 4},
		},
	}
}

func budget2025() []domain.BudgetCategory {
	return []domain.BudgetCategory{
		{ID: "defense", NameEn: "Defense", Percentage: d("16"), Color: "#1f4e79"},
		{ID: "education", NameEn: "Education", Percentage: d("15"), Color: "#2e75b6"},
		{ID: "health", NameEn: "Health", Percentage: d("12"), Color: "#70ad47"},
		{ID: "welfare", NameEn: "Welfare", Percentage: d("18"), Color: "#ffc000"},
		{ID: "debt", NameEn: "Debt service", Percentage: d("9"), Color: "#c00000"},
		{ID: "transport", NameEn: "Transport", Percentage: d("5"), Color: "#7030a0"},
		{ID: "public_order", NameEn: "Public order", Percentage: d("4"), Color: "#00b0f0"},
		{ID: "government", NameEn: "Government", Percentage: d("5"), Color: "#808080"},
		{ID: "housing", NameEn: "Housing", Percentage: d("3"), Color: "#ed7d31"},
		{ID: "culture", NameEn: "Culture", Percentage: d("2"), Color: "#a5a5a5"},
		{ID: "science", NameEn: "Science", Percentage: d("2"), Color: "#4472c4"},
		{ID: "agriculture", NameEn: "Agriculture", Percentage: d("1"), Color: "#548235"},
		{ID: "environment", NameEn: "Environment", Percentage: d("1"), Color: "#00b050"},
		{ID: "other", NameEn: "Other", Percentage: d("7"), Color: "#d9d9d9"},
	}
}

func arnona2025() []domain.ArnonaCity {
	return []domain.ArnonaCity{
		{ID: "tel_aviv", NameEn: "Tel Aviv-Yafo", NameHe: "תל אביב-יפו", RatePerSqm: d("73.5"), AvgAnnualArnona: d("6615"), AvgMonthlyArnona: d("551.25")},
		{ID: "jerusalem", NameEn: "Jerusalem", NameHe: "ירושלים", RatePerSqm: d("62.1"), AvgAnnualArnona: d("5589"), AvgMonthlyArnona: d("465.75")},
	}
}

func bundle2025() *domain.RateDataBundle {
	return &domain.RateDataBundle{
		Year:            2025,
		IncomeTax:       incomeTaxTable2025(),
		SocialInsurance: socialInsurance2025(),
		TaxCredits:      taxCredits2025(),
		VAT:             domain.VATConfig{CurrentRate: d("0.18")},
		Budget:          budget2025(),
		Arnona:          arnona2025(),
	}
}

// staticSource serves a single bundle
type staticSource struct {
	bundle *domain.RateDataBundle
	calls  int
}

func (s *staticSource) Load(year int) (*domain.RateDataBundle, error) {
	s.calls++
	if s.bundle == nil || s.bundle.Year != year {
		return nil, domain.ErrNoRateData
	}
	return s.bundle, nil
}
