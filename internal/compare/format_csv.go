package compare

import (
	"encoding/csv"
	"strings"
)

// CSVFormatter formats comparison results as CSV
type CSVFormatter struct{}

// Format generates CSV output for comparison results
func (cf *CSVFormatter) Format(compSet *ComparisonSet) (string, error) {
	var sb strings.Builder
	writer := csv.NewWriter(&sb)

	header := []string{
		"Scenario",
		"Type",
		"Income Tax Reduction %",
		"VAT Reduction %",
		"NI Reduction %",
		"Reformed Burden",
		"Annual Savings",
		"Monthly Savings",
		"Extra Months",
		"Savings Diff from Base",
		"Burden % Change",
	}
	if err := writer.Write(header); err != nil {
		return "", err
	}

	if compSet.BaseResult != nil {
		if err := writer.Write(cf.formatRow(compSet.BaseResult, "base")); err != nil {
			return "", err
		}
	}

	for i := range compSet.AlternativeResults {
		if err := writer.Write(cf.formatRow(&compSet.AlternativeResults[i], "alternative")); err != nil {
			return "", err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", err
	}

	return sb.String(), nil
}

// formatRow formats a comparison result as a CSV row
func (cf *CSVFormatter) formatRow(result *ComparisonResult, scenarioType string) []string {
	incomeTax, vat, ni := "0", "0", "0"
	if result.Reform != nil {
		s := result.Reform.Scenario
		incomeTax = s.IncomeTaxReductionPercent.String()
		vat = s.VATReductionPercent.String()
		ni = s.NIReductionPercent.String()
	}
	return []string{
		result.ScenarioName,
		scenarioType,
		incomeTax,
		vat,
		ni,
		result.ReformedTotalDeductions.StringFixed(2),
		result.AnnualSavings.StringFixed(2),
		result.MonthlySavings.StringFixed(2),
		result.ExtraMonthsOfSalary.StringFixed(1),
		result.SavingsDiffFromBase.StringFixed(2),
		result.BurdenPctFromBase.StringFixed(2),
	}
}
