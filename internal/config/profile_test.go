package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rgehrsitz/iltax/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadProfile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profile.yaml")
	content := `annual_gross_income: 240000
employment_type: employee
gender: female
tax_year: 2025
child_ages: [3, 9]
pension_contribution_rate: 0.07
city_id: haifa
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	profile, err := LoadProfile(path)
	require.NoError(t, err)

	assert.Equal(t, "240000", profile.AnnualGrossIncome.String())
	assert.Equal(t, domain.Employee, profile.EmploymentType)
	assert.Equal(t, domain.Female, profile.Gender)
	assert.Equal(t, []int{3, 9}, profile.ChildAges)
	assert.Equal(t, "0.07", profile.PensionRateOrDefault().String())
	assert.Nil(t, profile.MonthlyConsumerSpending)
	assert.Equal(t, "haifa", profile.CityID)
}

func TestLoadProfile_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadProfile(filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read file")

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("annual_gross_income: 100000\nemployment_type: contractor\ngender: male\ntax_year: 2025\n"), 0o644))
	_, err = LoadProfile(bad)
	require.Error(t, err)

	negative := filepath.Join(dir, "negative.yaml")
	require.NoError(t, os.WriteFile(negative, []byte("annual_gross_income: -5\nemployment_type: employee\ngender: male\ntax_year: 2025\n"), 0o644))
	_, err = LoadProfile(negative)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "profile validation failed")
}
