package breakeven

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// TableFormatter formats solver results as a console table
type TableFormatter struct{}

// Format generates a formatted table for a solver result
func (tf *TableFormatter) Format(result *SolveResult) string {
	var sb strings.Builder

	sb.WriteString("GROSS INCOME SOLVER RESULTS\n")
	sb.WriteString(strings.Repeat("=", 60) + "\n")

	sb.WriteString(fmt.Sprintf("Target:              %s\n", result.Request.Target))
	sb.WriteString(fmt.Sprintf("Target Amount:       ₪%s\n", tf.formatCurrency(result.Request.TargetAmount)))
	sb.WriteString(fmt.Sprintf("Tax Year:            %d\n", result.Request.Profile.TaxYear))
	sb.WriteString(fmt.Sprintf("Status:              %s\n", tf.formatStatus(result.Success)))
	sb.WriteString(fmt.Sprintf("Iterations:          %d\n", result.Iterations))
	if result.ConvergenceInfo != "" {
		sb.WriteString(fmt.Sprintf("Convergence:         %s\n", result.ConvergenceInfo))
	}
	sb.WriteString("\n")

	sb.WriteString("REQUIRED GROSS INCOME\n")
	sb.WriteString(strings.Repeat("-", 60) + "\n")
	sb.WriteString(fmt.Sprintf("Annual Gross:        ₪%s\n", tf.formatCurrency(result.GrossIncome)))
	sb.WriteString(fmt.Sprintf("Monthly Gross:       ₪%s\n", tf.formatCurrency(result.GrossIncome.Div(decimal.NewFromInt(12)))))
	sb.WriteString(fmt.Sprintf("Achieved:            ₪%s (%s₪%s)\n",
		tf.formatCurrency(result.Achieved), tf.deltaSymbol(result.Difference), tf.formatCurrency(result.Difference.Abs())))
	sb.WriteString("\n")

	if r := result.Result; r != nil {
		sb.WriteString("BURDEN AT THIS GROSS\n")
		sb.WriteString(strings.Repeat("-", 60) + "\n")
		sb.WriteString(fmt.Sprintf("Income Tax:          ₪%s\n", tf.formatCurrency(r.IncomeTax.NetTax)))
		sb.WriteString(fmt.Sprintf("National Insurance:  ₪%s\n", tf.formatCurrency(r.NationalInsurance.EmployeeContribution)))
		sb.WriteString(fmt.Sprintf("Health Tax:          ₪%s\n", tf.formatCurrency(r.HealthTax.Contribution)))
		sb.WriteString(fmt.Sprintf("Net Income:          ₪%s\n", tf.formatCurrency(r.NetIncome)))
		sb.WriteString(fmt.Sprintf("Employer Cost:       ₪%s\n", tf.formatCurrency(r.EmployerCost)))
		sb.WriteString(fmt.Sprintf("Effective Rate:      %s%%\n", r.TotalEffectiveRate.Mul(decimal.NewFromInt(100)).StringFixed(2)))
		sb.WriteString("\n")
	}

	return sb.String()
}

// JSONFormatter formats results as JSON
type JSONFormatter struct {
	Pretty bool
}

// Format generates JSON output
func (jf *JSONFormatter) Format(result *SolveResult) (string, error) {
	var data []byte
	var err error

	if jf.Pretty {
		data, err = json.MarshalIndent(result, "", "  ")
	} else {
		data, err = json.Marshal(result)
	}

	if err != nil {
		return "", err
	}

	return string(data), nil
}

// Helper methods

func (tf *TableFormatter) formatStatus(success bool) string {
	if success {
		return "✓ Converged"
	}
	return "⚠ Did not converge"
}

func (tf *TableFormatter) formatCurrency(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func (tf *TableFormatter) deltaSymbol(delta decimal.Decimal) string {
	if delta.IsNegative() {
		return "-"
	}
	return "+"
}
