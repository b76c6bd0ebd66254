package tui

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/samber/lo"

	"github.com/rgehrsitz/iltax/internal/domain"
	"github.com/rgehrsitz/iltax/internal/output"
	"github.com/rgehrsitz/iltax/internal/tui/components"
	"github.com/rgehrsitz/iltax/internal/tui/tuistyles"
)

// maxShareBars limits the budget panel to the largest categories
const maxShareBars = 6

// View renders the current state
func (m Model) View() string {
	if m.err != nil {
		return tuistyles.AppStyle.Render(
			tuistyles.ErrorStyle.Render("Error: "+m.err.Error()) + "\n\n" + m.help.View(m.keys))
	}
	if m.loading || m.result == nil {
		return tuistyles.AppStyle.Render("Calculating tax burden...")
	}

	sections := []string{
		m.renderHeader(),
		m.renderBurden(),
		tuistyles.SectionStyle.Render("REFORM"),
		m.renderSliders(),
		m.renderReform(),
		tuistyles.SectionStyle.Render("WHERE YOUR DEDUCTIONS GO"),
		m.renderBudget(),
		"",
		m.help.View(m.keys),
	}
	return tuistyles.AppStyle.Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

func (m Model) columns() int {
	return max(1, min(3, m.width/28))
}

func (m Model) renderHeader() string {
	r := m.result
	title := tuistyles.TitleStyle.Render(fmt.Sprintf("Israeli Tax Burden %d", r.TaxYear))
	sub := tuistyles.SubtitleStyle.Render(fmt.Sprintf("%s, %s, gross %s",
		m.profile.EmploymentType, m.profile.Gender, output.FormatCurrency(r.GrossIncome)))
	return title + "\n" + sub
}

func (m Model) renderBurden() string {
	r := m.result
	cards := []*components.MetricCard{
		components.NewAmountCard("Income tax", r.IncomeTax.NetTax).
			WithDescription(output.FormatRate(r.IncomeTax.EffectiveRate) + " effective"),
		components.NewMetricCard("Marginal rate", output.FormatRate(r.IncomeTax.MarginalRate)).
			WithDescription("on the next shekel"),
		components.NewAmountCard("National Insurance", r.NationalInsurance.EmployeeContribution),
		components.NewAmountCard("Health tax", r.HealthTax.Contribution),
		components.NewAmountCard("Total deductions", r.TotalDeductions).
			WithDescription(output.FormatRate(r.TotalEffectiveRate) + " of gross"),
		components.NewAmountCard("Net income", r.NetIncome).
			WithDescription(tuistyles.FormatCurrency(r.MonthlyNet) + " / month"),
		components.NewAmountCard("Estimated VAT", r.VATPaid()),
	}
	return components.MetricGrid(cards, m.columns())
}

func (m Model) renderSliders() string {
	lines := lo.Map(m.sliders, func(s *components.ReductionSlider, _ int) string {
		return s.Render()
	})
	if m.presetName != "" {
		lines = append(lines, tuistyles.SubtitleStyle.Render("preset: "+m.presetName))
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderReform() string {
	rf := m.reform
	cards := []*components.MetricCard{
		components.NewAmountCard("Reformed income tax", rf.ReformedIncomeTax).
			WithSaving(rf.CurrentIncomeTax.Sub(rf.ReformedIncomeTax)),
		components.NewAmountCard("Reformed VAT", rf.ReformedVAT).
			WithSaving(rf.CurrentVAT.Sub(rf.ReformedVAT)),
		components.NewAmountCard("Reformed NI + health", rf.ReformedNI.Add(rf.ReformedHealthTax)).
			WithSaving(rf.CurrentNI.Add(rf.CurrentHealthTax).Sub(rf.ReformedNI).Sub(rf.ReformedHealthTax)),
		components.NewAmountCard("Annual savings", rf.AnnualSavings).
			WithDescription(fmt.Sprintf("%s / month, %s extra months",
				tuistyles.FormatCurrency(rf.MonthlySavings), rf.ExtraMonthsOfSalary.StringFixed(1))),
	}
	return components.MetricGrid(cards, m.columns())
}

func (m Model) renderBudget() string {
	allocations := slices.Clone(m.result.BudgetAllocation)
	slices.SortStableFunc(allocations, func(a, b domain.BudgetAllocation) int {
		return b.Amount.Cmp(a.Amount)
	})
	if len(allocations) > maxShareBars {
		allocations = allocations[:maxShareBars]
	}
	lines := lo.Map(allocations, func(a domain.BudgetAllocation, _ int) string {
		return components.NewShareBar(a.ID, a.Percentage, a.Amount).WithColor(a.Color).Render()
	})
	return strings.Join(lines, "\n")
}
