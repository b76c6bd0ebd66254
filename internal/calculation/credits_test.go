package calculation

import (
	"testing"

	"github.com/rgehrsitz/iltax/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateTaxCredits(t *testing.T) {
	data := taxCredits2025()

	tests := []struct {
		name       string
		gender     domain.Gender
		childAges  []int
		wantPoints string
		wantValue  string
		wantCats   []string
	}{
		{"male resident", domain.Male, nil, "2.25", "6534", []string{"resident"}},
		{"female resident", domain.Female, nil, "2.75", "7986", []string{"resident", "woman"}},
		{"mother of toddler", domain.Female, []int{3}, "5.25", "15246", []string{"resident", "woman", "child_age_3"}},
		{"father of toddler", domain.Male, []int{3}, "4.75", "13794", []string{"resident", "child_age_3"}},
		{"newborn", domain.Male, []int{0}, "3.75", "10890", []string{"resident", "child_age_0"}},
		{"mother of 18", domain.Female, []int{18}, "3.25", "9438", []string{"resident", "woman", "child_age_18"}},
		{"father of 18 gets nothing", domain.Male, []int{18}, "2.25", "6534", []string{"resident"}},
		{"father of school-age child gets nothing", domain.Male, []int{8}, "2.25", "6534", []string{"resident"}},
		{"above max age", domain.Female, []int{19, 25}, "2.75", "7986", []string{"resident", "woman"}},
		{"several children in order", domain.Female, []int{8, 0, 14}, "7.75", "22506", []string{"resident", "woman", "child_age_8", "child_age_0", "child_age_14"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CalculateTaxCredits(tt.gender, tt.childAges, data)

			assert.True(t, d(tt.wantPoints).Equal(result.TotalPoints), "points: got %s", result.TotalPoints)
			assert.True(t, d(tt.wantValue).Equal(result.TotalCreditValue), "value: got %s", result.TotalCreditValue)

			cats := make([]string, 0, len(result.Breakdown))
			for _, c := range result.Breakdown {
				cats = append(cats, c.Category)
			}
			assert.Equal(t, tt.wantCats, cats)
		})
	}
}

func TestCalculateTaxCredits_MothersReceiveMoreForSchoolAge(t *testing.T) {
	data := taxCredits2025()

	mother := CalculateTaxCredits(domain.Female, []int{9}, data)
	father := CalculateTaxCredits(domain.Male, []int{9}, data)

	require.Len(t, mother.Breakdown, 3)
	assert.True(t, d("2.5").Equal(mother.Breakdown[2].Points))
	assert.Len(t, father.Breakdown, 1)

	for age := 0; age <= 18; age++ {
		m := CalculateTaxCredits(domain.Female, []int{age}, data)
		f := CalculateTaxCredits(domain.Male, []int{age}, data)
		assert.True(t, m.TotalPoints.Sub(data.BaseCredits.WomanAdditional).GreaterThanOrEqual(f.TotalPoints), "age %d", age)
	}
}

func TestCalculateTaxCredits_ZeroPointChildOmitted(t *testing.T) {
	result := CalculateTaxCredits(domain.Male, []int{8}, taxCredits2025())

	require.Len(t, result.Breakdown, 1)
	assert.Equal(t, domain.CreditResident, result.Breakdown[0].Category)
	assert.True(t, d("2.25").Equal(result.Breakdown[0].Points))
	assert.True(t, d("2.25").Equal(result.TotalPoints))
	assert.True(t, d("6534").Equal(result.TotalCreditValue))
}

func TestCalculateTaxCredits_ValueRoundsToWholeShekel(t *testing.T) {
	data := taxCredits2025()
	data.PointValueAnnual = d("2904.40")

	result := CalculateTaxCredits(domain.Male, nil, data)
	// 2.25 * 2904.40 = 6534.90
	assert.Equal(t, "6535", result.TotalCreditValue.String())
}

func TestCalculateTaxCredits_BadIndexIgnored(t *testing.T) {
	data := taxCredits2025()
	data.ChildAgeRanges = append(data.ChildAgeRanges, domain.ChildAgeRange{MinAge: 19, MaxAge: 21, Index: 99})

	result := CalculateTaxCredits(domain.Female, []int{20}, data)
	assert.True(t, d("2.75").Equal(result.TotalPoints))
}
