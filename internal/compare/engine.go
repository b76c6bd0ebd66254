package compare

import (
	"fmt"

	"github.com/rgehrsitz/iltax/internal/domain"
	"github.com/rgehrsitz/iltax/internal/freedom"
	"github.com/rgehrsitz/iltax/internal/scenario"
)

// DefaultBaseScenario is the template used as base when none is given
const DefaultBaseScenario = "current"

// CompareEngine runs reform scenarios against a calculated tax burden
type CompareEngine struct {
	Registry *scenario.Registry
}

// NewCompareEngine creates a new comparison engine
func NewCompareEngine(registry *scenario.Registry) *CompareEngine {
	if registry == nil {
		registry = scenario.NewRegistry()
	}
	return &CompareEngine{Registry: registry}
}

// CompareOptions configures comparison behavior
type CompareOptions struct {
	BaseScenario string   // Template or spec to compare against
	Scenarios    []string // Templates or specs to rank
	Label        string   // Shown in the report header
}

// Compare simulates every scenario and ranks the alternatives by annual savings
func (ce *CompareEngine) Compare(result *domain.TotalTaxResult, options CompareOptions) (*ComparisonSet, error) {
	if result == nil {
		return nil, fmt.Errorf("no tax result to compare")
	}

	baseName := options.BaseScenario
	if baseName == "" {
		baseName = DefaultBaseScenario
	}

	base, err := ce.run(result, baseName)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate base scenario: %w", err)
	}

	alternatives := make([]ComparisonResult, 0, len(options.Scenarios))
	for _, spec := range options.Scenarios {
		alt, err := ce.run(result, spec)
		if err != nil {
			return nil, fmt.Errorf("failed to calculate scenario %s: %w", spec, err)
		}
		alternatives = append(alternatives, CalculateComparison(alt, base))
	}
	RankBySavings(alternatives)

	compSet := &ComparisonSet{
		BaseScenarioName:       baseName,
		Label:                  options.Label,
		GrossIncome:            result.GrossIncome,
		CurrentTotalDeductions: base.Reform.CurrentTotalDeductions,
		BaseResult:             &base,
		AlternativeResults:     alternatives,
	}
	compSet.Recommendations = GenerateRecommendations(compSet)
	return compSet, nil
}

func (ce *CompareEngine) run(result *domain.TotalTaxResult, spec string) (ComparisonResult, error) {
	s, err := ce.Registry.Resolve(spec)
	if err != nil {
		return ComparisonResult{}, err
	}
	description := ""
	if t, ok := ce.Registry.Template(spec); ok {
		description = t.Description
	}
	return CalculateMetrics(spec, description, result, freedom.SimulateReform(result, s)), nil
}
