package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/rgehrsitz/iltax/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func embeddedYAML(t *testing.T) string {
	t.Helper()
	raw, err := embeddedRates.ReadFile("data/rates_2025.yaml")
	require.NoError(t, err)
	return string(raw)
}

func writeRates(t *testing.T, dir string, year int, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, RateFileName(year)), []byte(content), 0o644))
}

func TestRateDataLoader_LoadEmbedded(t *testing.T) {
	loader := NewRateDataLoader()

	bundle, err := loader.Load(2025)
	require.NoError(t, err)

	assert.Equal(t, 2025, bundle.Year)
	assert.Len(t, bundle.IncomeTax.Brackets, 7)
	assert.Nil(t, bundle.IncomeTax.Brackets[6].Ceiling)
	assert.Equal(t, "721560", bundle.IncomeTax.Surtax.Threshold.String())
	assert.Equal(t, "90264", bundle.SocialInsurance.ReducedRateThreshold.String())
	assert.Equal(t, "2904", bundle.TaxCredits.PointValueAnnual.String())
	assert.Equal(t, "0.18", bundle.VAT.CurrentRate.String())
	assert.Len(t, bundle.Budget, 14)
	assert.Len(t, bundle.Arnona, 10)
	assert.Len(t, bundle.CostAnalysis, 14)
}

func TestRateDataLoader_CostAnalysisCoversBudget(t *testing.T) {
	bundle, err := NewRateDataLoader().Load(2025)
	require.NoError(t, err)

	ids := make(map[string]bool)
	for _, c := range bundle.CostAnalysis {
		ids[c.ID] = true
	}
	for _, b := range bundle.Budget {
		assert.True(t, ids[b.ID], "budget category %s has no cost analysis", b.ID)
	}
}

func TestRateDataLoader_CachesIdenticalPointer(t *testing.T) {
	loader := NewRateDataLoader()

	first, err := loader.Load(2025)
	require.NoError(t, err)
	second, err := loader.Load(2025)
	require.NoError(t, err)

	assert.Same(t, first, second)
}

func TestRateDataLoader_ConcurrentFirstAccess(t *testing.T) {
	loader := NewRateDataLoader()

	const workers = 16
	results := make([]*domain.RateDataBundle, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			b, err := loader.Load(2025)
			assert.NoError(t, err)
			results[i] = b
		}(i)
	}
	wg.Wait()

	for _, b := range results {
		assert.Same(t, results[0], b)
	}
}

func TestRateDataLoader_UnsupportedYear(t *testing.T) {
	loader := NewRateDataLoader()

	bundle, err := loader.Load(1999)
	assert.Nil(t, bundle)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrNoRateData))
	assert.Contains(t, err.Error(), "no data for year 1999")
}

func TestRateDataLoader_DirectoryOverride(t *testing.T) {
	dir := t.TempDir()
	content := strings.Replace(embeddedYAML(t), "year: 2025", "year: 2026", 1)
	content = strings.Replace(content, "current_rate: 0.18", "current_rate: 0.17", 1)
	writeRates(t, dir, 2026, content)

	loader := NewRateDataLoaderWithDir(dir)

	bundle, err := loader.Load(2026)
	require.NoError(t, err)
	assert.Equal(t, "0.17", bundle.VAT.CurrentRate.String())

	embedded, err := loader.Load(2025)
	require.NoError(t, err)
	assert.Equal(t, "0.18", embedded.VAT.CurrentRate.String())

	assert.Equal(t, []int{2025, 2026}, loader.AvailableYears())
}

func TestRateDataLoader_MalformedBundle(t *testing.T) {
	tests := []struct {
		name        string
		from, to    string
		wantDataset string
	}{
		{"vat rate above one", "current_rate: 0.18", "current_rate: 1.5", "vat"},
		{"budget does not sum to 100", "percentage: 16,", "percentage: 26,", "budget"},
		{"reaches service mismatch", "reaches_service_percent: 85", "reaches_service_percent: 80", "cost_analysis"},
		{"bad grade", "grade: B, alternative_cost_multiplier: 0.80", "grade: E, alternative_cost_multiplier: 0.80", "cost_analysis"},
		{"negative threshold", "reduced_rate_threshold: 90264", "reduced_rate_threshold: -1", "social_insurance"},
		{"bounded last bracket", "ceiling: null", "ceiling: 900000", "income_tax"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			content := embeddedYAML(t)
			require.Contains(t, content, tt.from)
			writeRates(t, dir, 2025, strings.Replace(content, tt.from, tt.to, 1))

			_, err := NewRateDataLoaderWithDir(dir).Load(2025)
			require.Error(t, err)

			var verr *domain.ValidationError
			require.True(t, errors.As(err, &verr), "got %v", err)
			assert.Equal(t, tt.wantDataset, verr.Dataset)
			assert.Equal(t, 2025, verr.Year)
		})
	}
}

func TestRateDataLoader_FailureNotCached(t *testing.T) {
	dir := t.TempDir()
	content := embeddedYAML(t)
	writeRates(t, dir, 2025, strings.Replace(content, "current_rate: 0.18", "current_rate: 2", 1))

	loader := NewRateDataLoaderWithDir(dir)
	_, err := loader.Load(2025)
	require.Error(t, err)

	writeRates(t, dir, 2025, content)
	bundle, err := loader.Load(2025)
	require.NoError(t, err)
	assert.Equal(t, 2025, bundle.Year)
}

func TestRateDataLoader_YearMismatch(t *testing.T) {
	dir := t.TempDir()
	writeRates(t, dir, 2026, embeddedYAML(t))

	_, err := NewRateDataLoaderWithDir(dir).Load(2026)
	require.Error(t, err)

	var verr *domain.ValidationError
	assert.True(t, errors.As(err, &verr))
}

func TestParseRateData_UnknownField(t *testing.T) {
	content := strings.Replace(embeddedYAML(t), "vat:\n  current_rate: 0.18", "vat:\n  currnet_rate: 0.18", 1)

	_, err := ParseRateData([]byte(content))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse YAML")
}
