package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/go-pdf/fpdf"
	"github.com/shopspring/decimal"
)

const (
	pdfMarginLeft   = 15.0
	pdfMarginTop    = 15.0
	pdfMarginRight  = 15.0
	pdfMarginBottom = 20.0
	pdfContentWidth = 210.0 - pdfMarginLeft - pdfMarginRight
)

// pdfText makes text safe for the core PDF fonts, which only cover Latin-1
func pdfText(s string) string {
	s = strings.ReplaceAll(s, "₪", "NIS ")
	s = strings.ReplaceAll(s, "•", "-")
	return s
}

func pdfMoney(d decimal.Decimal) string {
	return pdfText(FormatCurrency(d))
}

// PDFFormatter renders a printable A4 report
type PDFFormatter struct{}

func (p PDFFormatter) Name() string { return "pdf" }

func (p PDFFormatter) Format(report *Report) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pdfMarginLeft, pdfMarginTop, pdfMarginRight)
	pdf.SetAutoPageBreak(true, pdfMarginBottom)
	pdf.SetTitle(fmt.Sprintf("Tax Burden Report %d", report.Result.TaxYear), false)
	pdf.SetCreationDate(report.GeneratedAt)
	pdf.AddPage()

	r := report.Result

	pdf.SetFont("Helvetica", "B", 20)
	pdf.SetTextColor(30, 64, 175)
	pdf.CellFormat(pdfContentWidth, 12, fmt.Sprintf("Tax Burden Report %d", r.TaxYear), "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.SetTextColor(107, 114, 128)
	pdf.CellFormat(pdfContentWidth, 6, "Report "+report.ID+" - "+report.GeneratedAt.Format("2006-01-02 15:04 MST"), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	heading := func(title string) {
		pdf.Ln(3)
		pdf.SetFont("Helvetica", "B", 13)
		pdf.SetTextColor(15, 118, 110)
		pdf.CellFormat(pdfContentWidth, 8, title, "B", 1, "L", false, 0, "")
		pdf.SetTextColor(0, 0, 0)
		pdf.SetFont("Helvetica", "", 10)
	}
	row := func(label, value string) {
		pdf.CellFormat(pdfContentWidth*0.6, 6, pdfText(label), "", 0, "L", false, 0, "")
		pdf.CellFormat(pdfContentWidth*0.4, 6, pdfText(value), "", 1, "R", false, 0, "")
	}

	heading("Income and Deductions")
	row("Annual gross income", pdfMoney(r.GrossIncome))
	row("Income tax (after credits)", pdfMoney(r.IncomeTax.NetTax))
	row("National Insurance", pdfMoney(r.NationalInsurance.EmployeeContribution))
	row("Health tax", pdfMoney(r.HealthTax.Contribution))
	row("Total deductions", pdfMoney(r.TotalDeductions))
	row("Net income", pdfMoney(r.NetIncome))
	row("Monthly net income", pdfMoney(r.MonthlyNet))
	row("Effective rate", FormatRate(r.TotalEffectiveRate))
	if r.VAT != nil {
		row("Estimated VAT", pdfMoney(r.VAT.AnnualVATPaid))
	}
	if r.EmployerCost.IsPositive() {
		row("Employer cost", pdfMoney(r.EmployerCost))
	}

	heading("Where Your Taxes Go")
	pdf.SetFont("Helvetica", "B", 9)
	widths := []float64{60, 30, 30, 30, 30}
	for i, h := range []string{"Category", "Contribution", "Overhead", "Savings", "Grade"} {
		pdf.CellFormat(widths[i], 6, h, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)
	pdf.SetFont("Helvetica", "", 9)
	for _, e := range report.Efficiency {
		pdf.CellFormat(widths[0], 6, e.CategoryID, "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[1], 6, pdfMoney(e.YourContribution), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[2], 6, pdfMoney(e.EstimatedOverhead), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[3], 6, pdfMoney(e.PotentialSavings), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[4], 6, string(e.Grade), "1", 1, "C", false, 0, "")
	}

	pdf.SetFont("Helvetica", "", 10)
	heading("Reform: " + report.Reform.Scenario.Name)
	row("Current total (incl. VAT)", pdfMoney(report.Reform.CurrentTotalDeductions))
	row("Reformed total", pdfMoney(report.Reform.ReformedTotalDeductions))
	row("Annual savings", pdfMoney(report.Reform.AnnualSavings))
	row("Extra months of salary", report.Reform.ExtraMonthsOfSalary.String())
	row("Cost of living savings per year", pdfMoney(report.CostOfLiving.AnnualTotalSavings))
	if report.Investment.AnnualInvestable.IsPositive() {
		row(fmt.Sprintf("Investment difference after %d years", report.Investment.Years), pdfMoney(report.Investment.EndValueDifference))
	}

	heading("Freedom Score")
	fs := report.FreedomScore
	row("Tax freedom", fmt.Sprintf("%d", fs.TaxFreedom))
	row("Purchasing power", fmt.Sprintf("%d", fs.PurchasingPower))
	row("Investment freedom", fmt.Sprintf("%d", fs.InvestmentFreedom))
	row("Overall", fmt.Sprintf("%d (%s)", fs.Overall, fs.Grade))

	heading("Assumptions")
	pdf.SetFont("Helvetica", "", 8)
	for _, a := range report.Assumptions {
		pdf.MultiCell(pdfContentWidth, 4.5, pdfText("- "+a), "", "L", false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
