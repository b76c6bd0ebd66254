package output

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rgehrsitz/iltax/internal/domain"
	"github.com/rgehrsitz/iltax/internal/efficiency"
	"github.com/rgehrsitz/iltax/internal/freedom"
	"github.com/shopspring/decimal"
)

// EfficiencyTotals sums the per-category efficiency results
type EfficiencyTotals struct {
	Contribution decimal.Decimal `json:"contribution" yaml:"contribution"`
	Overhead     decimal.Decimal `json:"overhead" yaml:"overhead"`
	Savings      decimal.Decimal `json:"savings" yaml:"savings"`
}

// Report is the complete analysis for one profile, ready to be rendered by any Formatter
type Report struct {
	ID               string                      `json:"id" yaml:"id"`
	GeneratedAt      time.Time                   `json:"generatedAt" yaml:"generated_at"`
	Profile          domain.TaxpayerProfile      `json:"profile" yaml:"profile"`
	Result           *domain.TotalTaxResult      `json:"result" yaml:"result"`
	Efficiency       []domain.EfficiencyResult   `json:"efficiency" yaml:"efficiency"`
	EfficiencyTotals EfficiencyTotals            `json:"efficiencyTotals" yaml:"efficiency_totals"`
	Reform           freedom.ReformResult        `json:"reform" yaml:"reform"`
	CostOfLiving     freedom.CostOfLivingSavings `json:"costOfLiving" yaml:"cost_of_living"`
	Investment       freedom.InvestmentFreedom   `json:"investment" yaml:"investment"`
	FreedomScore     freedom.FreedomScore        `json:"freedomScore" yaml:"freedom_score"`
	Assumptions      []string                    `json:"assumptions" yaml:"assumptions"`
}

// BuildReport runs every analysis that depends on a finished calculation result
func BuildReport(profile domain.TaxpayerProfile, result *domain.TotalTaxResult, costs []domain.CostAnalysisEntry,
	policy freedom.Policy, scenario freedom.ReformScenario, investable decimal.Decimal) (*Report, error) {
	if result == nil {
		return nil, fmt.Errorf("build report: result is required")
	}
	if err := scenario.Validate(); err != nil {
		return nil, fmt.Errorf("build report: %w", err)
	}
	if err := policy.Validate(); err != nil {
		return nil, fmt.Errorf("build report: %w", err)
	}
	if investable.IsNegative() {
		return nil, fmt.Errorf("build report: investable amount cannot be negative")
	}

	efficiencies := efficiency.Analyze(result.BudgetAllocation, costs)

	return &Report{
		ID:          uuid.NewString(),
		GeneratedAt: time.Now().UTC(),
		Profile:     profile,
		Result:      result,
		Efficiency:  efficiencies,
		EfficiencyTotals: EfficiencyTotals{
			Contribution: efficiency.CalculateTotalContribution(efficiencies),
			Overhead:     efficiency.CalculateTotalOverhead(efficiencies),
			Savings:      efficiency.CalculateTotalSavings(efficiencies),
		},
		Reform:       freedom.SimulateReform(result, scenario),
		CostOfLiving: freedom.CalculateCostOfLivingSavings(result, policy),
		Investment:   freedom.CalculateInvestmentFreedom(investable, policy),
		FreedomScore: freedom.CalculateFreedomScore(result, efficiencies, policy),
		Assumptions:  DefaultAssumptions,
	}, nil
}

// WriteFormatted renders the report with f and writes it to iltax_report_<timestamp>.<ext>
func WriteFormatted(f Formatter, report *Report, ext string) (string, error) {
	data, err := f.Format(report)
	if err != nil {
		return "", err
	}
	filename := fmt.Sprintf("iltax_report_%s.%s", time.Now().Format("20060102_150405"), ext)
	if err := os.WriteFile(filename, data, 0644); err != nil {
		return "", err
	}
	return filename, nil
}

// FormatCurrency formats a decimal as shekels with thousands separators, e.g. ₪1,234.56
func FormatCurrency(amount decimal.Decimal) string {
	sign := ""
	if amount.IsNegative() {
		sign = "-"
		amount = amount.Abs()
	}
	fixed := amount.StringFixed(2)
	whole, frac, _ := strings.Cut(fixed, ".")
	return sign + "₪" + groupThousands(whole) + "." + frac
}

// FormatPercentage formats a percentage value, e.g. 12.34%
func FormatPercentage(amount decimal.Decimal) string {
	return amount.StringFixed(2) + "%"
}

// FormatRate formats a 0-1 fraction as a percentage
func FormatRate(rate decimal.Decimal) string {
	return FormatPercentage(rate.Mul(decimal.NewFromInt(100)))
}

func groupThousands(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	var sb strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		sb.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if sb.Len() > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(digits[i : i+3])
	}
	return sb.String()
}
