package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rgehrsitz/iltax/internal/domain"
	"github.com/shopspring/decimal"
)

var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#1E40AF"))
	sectionStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#0F766E"))
	labelStyle   = lipgloss.NewStyle().Width(28)
	valueStyle   = lipgloss.NewStyle().Width(16).Align(lipgloss.Right)
	totalStyle   = lipgloss.NewStyle().Bold(true)
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
	gradeStyles  = map[domain.Grade]lipgloss.Style{
		domain.GradeA: lipgloss.NewStyle().Foreground(lipgloss.Color("#16A34A")).Bold(true),
		domain.GradeB: lipgloss.NewStyle().Foreground(lipgloss.Color("#65A30D")).Bold(true),
		domain.GradeC: lipgloss.NewStyle().Foreground(lipgloss.Color("#CA8A04")).Bold(true),
		domain.GradeD: lipgloss.NewStyle().Foreground(lipgloss.Color("#EA580C")).Bold(true),
		domain.GradeF: lipgloss.NewStyle().Foreground(lipgloss.Color("#DC2626")).Bold(true),
	}
)

func line(buf *bytes.Buffer, label, value string) {
	fmt.Fprintln(buf, "  "+labelStyle.Render(label)+valueStyle.Render(value))
}

func section(buf *bytes.Buffer, title string) {
	fmt.Fprintln(buf)
	fmt.Fprintln(buf, sectionStyle.Render(title))
	fmt.Fprintln(buf, strings.Repeat("-", len(title)))
}

func renderGrade(g domain.Grade) string {
	if s, ok := gradeStyles[g]; ok {
		return s.Render(string(g))
	}
	return mutedStyle.Render(string(g))
}

// ConsoleFormatter renders the full detailed report for a terminal
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console" }

func (c ConsoleFormatter) Format(report *Report) ([]byte, error) {
	var buf bytes.Buffer
	r := report.Result

	fmt.Fprintln(&buf, strings.Repeat("=", 60))
	fmt.Fprintln(&buf, headerStyle.Render(fmt.Sprintf("ISRAELI TAX BURDEN ANALYSIS %d", r.TaxYear)))
	fmt.Fprintln(&buf, strings.Repeat("=", 60))
	fmt.Fprintln(&buf, mutedStyle.Render("Report "+report.ID+" generated "+report.GeneratedAt.Format("2006-01-02 15:04:05 MST")))

	fmt.Fprintln(&buf)
	fmt.Fprintln(&buf, "KEY ASSUMPTIONS:")
	assumptions := report.Assumptions
	if len(assumptions) == 0 {
		assumptions = DefaultAssumptions
	}
	for _, a := range assumptions {
		fmt.Fprintf(&buf, "• %s\n", a)
	}

	section(&buf, "INCOME")
	line(&buf, "Annual Gross Income:", FormatCurrency(r.GrossIncome))
	line(&buf, "Monthly Gross Income:", FormatCurrency(r.MonthlyGross))
	line(&buf, "Employment Type:", string(report.Profile.EmploymentType))
	line(&buf, "Credit Points:", r.TaxCredits.TotalPoints.String())

	section(&buf, "DEDUCTIONS & TAXES")
	line(&buf, "Income Tax (gross):", FormatCurrency(r.IncomeTax.GrossTax))
	if r.IncomeTax.Surtax.IsPositive() {
		line(&buf, "  incl. Surtax:", FormatCurrency(r.IncomeTax.Surtax))
	}
	line(&buf, "Credit Points Value:", FormatCurrency(r.IncomeTax.CreditValue.Neg()))
	line(&buf, "Income Tax (net):", FormatCurrency(r.IncomeTax.NetTax))
	line(&buf, "National Insurance:", FormatCurrency(r.NationalInsurance.EmployeeContribution))
	line(&buf, "Health Tax:", FormatCurrency(r.HealthTax.Contribution))
	fmt.Fprintln(&buf, "  "+totalStyle.Render(labelStyle.Render("TOTAL DEDUCTIONS:")+valueStyle.Render(FormatCurrency(r.TotalDeductions))))
	line(&buf, "Effective Rate:", FormatRate(r.TotalEffectiveRate))
	line(&buf, "Marginal Income Tax Rate:", FormatRate(r.IncomeTax.MarginalRate))
	line(&buf, "Tax per Day:", FormatCurrency(r.DailyTax))

	section(&buf, "TAKE-HOME")
	line(&buf, "Annual Net Income:", FormatCurrency(r.NetIncome))
	line(&buf, "Monthly Net Income:", FormatCurrency(r.MonthlyNet))
	if r.VAT != nil {
		line(&buf, fmt.Sprintf("Estimated VAT (%s):", FormatRate(r.VAT.Rate)), FormatCurrency(r.VAT.AnnualVATPaid))
	}
	if r.EmployerCost.IsPositive() {
		line(&buf, "Employer Cost:", FormatCurrency(r.EmployerCost))
	}
	if r.Arnona != nil {
		line(&buf, "Arnona ("+r.Arnona.NameEn+"):", FormatCurrency(r.Arnona.AvgAnnualArnona))
	}

	section(&buf, "WHERE YOUR TAXES GO")
	for _, e := range report.Efficiency {
		fmt.Fprintf(&buf, "  %-22s %14s  overhead %12s  grade %s\n",
			e.CategoryID, FormatCurrency(e.YourContribution), FormatCurrency(e.EstimatedOverhead), renderGrade(e.Grade))
	}
	line(&buf, "Total Overhead:", FormatCurrency(report.EfficiencyTotals.Overhead))
	line(&buf, "Potential Savings:", FormatCurrency(report.EfficiencyTotals.Savings))

	writeReform(&buf, report)

	section(&buf, "COST OF LIVING")
	col := report.CostOfLiving
	line(&buf, "Monthly Food Savings:", FormatCurrency(col.MonthlyFoodSavings))
	line(&buf, "Monthly Rent Savings:", FormatCurrency(col.MonthlyRentSavings))
	line(&buf, "Car Price Savings:", FormatCurrency(col.CarSavings))
	line(&buf, "Annual Total Savings:", FormatCurrency(col.AnnualTotalSavings))

	if report.Investment.AnnualInvestable.IsPositive() {
		section(&buf, "INVESTMENT")
		inv := report.Investment
		line(&buf, fmt.Sprintf("Value after %d years:", inv.Years), FormatCurrency(inv.CurrentEndValue))
		line(&buf, "Value with reform:", FormatCurrency(inv.ReformedEndValue))
		line(&buf, "Difference:", FormatCurrency(inv.EndValueDifference))
	}

	section(&buf, "FREEDOM SCORE")
	fs := report.FreedomScore
	line(&buf, "Tax Freedom:", fmt.Sprintf("%d", fs.TaxFreedom))
	line(&buf, "Purchasing Power:", fmt.Sprintf("%d", fs.PurchasingPower))
	line(&buf, "Investment Freedom:", fmt.Sprintf("%d", fs.InvestmentFreedom))
	fmt.Fprintf(&buf, "  %s %s\n", totalStyle.Render(labelStyle.Render("Overall:")+valueStyle.Render(fmt.Sprintf("%d", fs.Overall))), renderGrade(fs.Grade))

	return buf.Bytes(), nil
}

func writeReform(buf *bytes.Buffer, report *Report) {
	rf := report.Reform
	section(buf, "REFORM: "+strings.ToUpper(rf.Scenario.Name))
	fmt.Fprintf(buf, "  %-20s %16s %16s\n", "", "Current", "Reformed")
	rows := []struct {
		label             string
		current, reformed decimal.Decimal
	}{
		{"Income Tax", rf.CurrentIncomeTax, rf.ReformedIncomeTax},
		{"National Insurance", rf.CurrentNI, rf.ReformedNI},
		{"Health Tax", rf.CurrentHealthTax, rf.ReformedHealthTax},
		{"VAT", rf.CurrentVAT, rf.ReformedVAT},
		{"Total", rf.CurrentTotalDeductions, rf.ReformedTotalDeductions},
	}
	for _, row := range rows {
		fmt.Fprintf(buf, "  %-20s %16s %16s\n", row.label, FormatCurrency(row.current), FormatCurrency(row.reformed))
	}
	line(buf, "Annual Savings:", FormatCurrency(rf.AnnualSavings))
	line(buf, "Monthly Savings:", FormatCurrency(rf.MonthlySavings))
	line(buf, "Extra Months of Salary:", rf.ExtraMonthsOfSalary.String())
}

// ConsoleLiteFormatter renders a short summary
type ConsoleLiteFormatter struct{}

func (c ConsoleLiteFormatter) Name() string { return "console-lite" }

func (c ConsoleLiteFormatter) Format(report *Report) ([]byte, error) {
	var buf bytes.Buffer
	r := report.Result
	fmt.Fprintf(&buf, "TAX BURDEN SUMMARY %d\n", r.TaxYear)
	fmt.Fprintf(&buf, "Gross: %s  Deductions: %s  Net: %s\n",
		FormatCurrency(r.GrossIncome), FormatCurrency(r.TotalDeductions), FormatCurrency(r.NetIncome))
	fmt.Fprintf(&buf, "Effective rate: %s  VAT: %s\n", FormatRate(r.TotalEffectiveRate), FormatCurrency(r.VATPaid()))
	fmt.Fprintf(&buf, "Reform %q saves %s per year\n", report.Reform.Scenario.Name, FormatCurrency(report.Reform.AnnualSavings))
	fmt.Fprintf(&buf, "Freedom score: %d (%s)\n", report.FreedomScore.Overall, report.FreedomScore.Grade)
	return buf.Bytes(), nil
}
