package calculation

import (
	"github.com/rgehrsitz/iltax/internal/domain"
	"github.com/samber/lo"
)

// LookupArnona returns the municipal tax averages for cityID, or nil when no city was chosen or it is unknown
func LookupArnona(cityID string, cities []domain.ArnonaCity) *domain.ArnonaResult {
	if cityID == "" {
		return nil
	}
	city, ok := lo.Find(cities, func(c domain.ArnonaCity) bool { return c.ID == cityID })
	if !ok {
		return nil
	}
	return &domain.ArnonaResult{
		CityID:           city.ID,
		NameEn:           city.NameEn,
		NameHe:           city.NameHe,
		RatePerSqm:       city.RatePerSqm,
		AvgAnnualArnona:  city.AvgAnnualArnona,
		AvgMonthlyArnona: city.AvgMonthlyArnona,
	}
}
