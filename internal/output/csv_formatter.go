package output

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"github.com/rgehrsitz/iltax/internal/domain"
	"github.com/samber/lo"
)

// CSVFormatter writes one row per budget category, joining the allocation with its efficiency grade.
type CSVFormatter struct{}

func (c CSVFormatter) Name() string { return "csv" }

func (c CSVFormatter) Format(report *Report) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Category", "Percentage", "Amount", "EstimatedOverhead", "ReachesService", "AlternativeCost", "PotentialSavings", "Grade"}
	if err := w.Write(header); err != nil {
		return nil, err
	}

	byID := lo.KeyBy(report.Efficiency, func(e domain.EfficiencyResult) string { return e.CategoryID })
	for _, alloc := range report.Result.BudgetAllocation {
		row := []string{alloc.ID, alloc.Percentage.String(), alloc.Amount.StringFixed(2)}
		if eff, ok := byID[alloc.ID]; ok {
			row = append(row,
				eff.EstimatedOverhead.StringFixed(2),
				eff.ReachesService.StringFixed(2),
				eff.AlternativeCost.StringFixed(2),
				eff.PotentialSavings.StringFixed(2),
				string(eff.Grade),
			)
		} else {
			row = append(row, "", "", "", "", string(domain.GradeNone))
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}

	totals := []string{
		"TOTAL",
		"",
		report.EfficiencyTotals.Contribution.StringFixed(2),
		report.EfficiencyTotals.Overhead.StringFixed(2),
		"",
		"",
		report.EfficiencyTotals.Savings.StringFixed(2),
		"score " + strconv.Itoa(report.FreedomScore.Overall),
	}
	if err := w.Write(totals); err != nil {
		return nil, err
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
