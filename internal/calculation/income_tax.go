package calculation

import (
	"slices"

	"github.com/rgehrsitz/iltax/internal/domain"
	"github.com/shopspring/decimal"
)

// INCOME TAX ASSUMPTIONS:
//
// 1. Brackets are marginal: each bracket taxes only the slice of income between its floor and ceiling.
// 2. The surtax is a flat extra rate on income above a single threshold and is part of gross tax.
// 3. Credit points reduce tax but never below zero; there is no refund modeling.
// 4. Amounts are rounded to agorot after every step.

// CalculateIncomeTax applies the progressive brackets and surtax to income and offsets the credit value
func CalculateIncomeTax(income decimal.Decimal, table domain.IncomeTaxTable, creditValue decimal.Decimal) domain.IncomeTaxResult {
	if !income.IsPositive() {
		return domain.IncomeTaxResult{
			GrossTax:      decimal.Zero,
			Surtax:        decimal.Zero,
			CreditValue:   decimal.Zero,
			NetTax:        decimal.Zero,
			EffectiveRate: decimal.Zero,
			MarginalRate:  MarginalRate(decimal.Zero, table),
			Brackets:      []domain.BracketBreakdown{},
		}
	}

	brackets := slices.Clone(table.Brackets)
	slices.SortStableFunc(brackets, func(a, b domain.TaxBracket) int {
		return a.Floor.Cmp(b.Floor)
	})

	grossTax := decimal.Zero
	breakdown := make([]domain.BracketBreakdown, 0, len(brackets))
	for _, bracket := range brackets {
		if income.LessThanOrEqual(bracket.Floor) {
			break
		}
		top := income
		if bracket.Ceiling != nil {
			top = decimal.Min(income, *bracket.Ceiling)
		}
		taxable := RoundToSmallestUnit(top.Sub(bracket.Floor))
		tax := RoundToSmallestUnit(taxable.Mul(bracket.Rate))
		grossTax = RoundToSmallestUnit(grossTax.Add(tax))

		breakdown = append(breakdown, domain.BracketBreakdown{
			Floor:            bracket.Floor,
			Ceiling:          bracket.Ceiling,
			Rate:             bracket.Rate,
			TaxableInBracket: taxable,
			TaxInBracket:     tax,
		})
	}

	surtax := CalculateSurtax(income, table.Surtax)
	grossTax = RoundToSmallestUnit(grossTax.Add(surtax))

	netTax := decimal.Max(decimal.Zero, RoundToSmallestUnit(grossTax.Sub(creditValue)))

	return domain.IncomeTaxResult{
		GrossTax:      grossTax,
		Surtax:        surtax,
		CreditValue:   creditValue,
		NetTax:        netTax,
		EffectiveRate: safeRatio(netTax, income),
		MarginalRate:  MarginalRate(income, table),
		Brackets:      breakdown,
	}
}

// CalculateSurtax returns the additional tax on income strictly above the threshold
func CalculateSurtax(income decimal.Decimal, surtax domain.SurtaxConfig) decimal.Decimal {
	if !income.GreaterThan(surtax.Threshold) {
		return decimal.Zero
	}
	return RoundToSmallestUnit(income.Sub(surtax.Threshold).Mul(surtax.Rate))
}

// MarginalRate returns the bracket rate (plus surtax when applicable) on the next shekel above income
func MarginalRate(income decimal.Decimal, table domain.IncomeTaxTable) decimal.Decimal {
	rate := decimal.Zero
	for _, bracket := range table.Brackets {
		if income.GreaterThanOrEqual(bracket.Floor) && (bracket.Ceiling == nil || income.LessThan(*bracket.Ceiling)) {
			rate = bracket.Rate
			break
		}
	}
	if income.GreaterThanOrEqual(table.Surtax.Threshold) {
		rate = rate.Add(table.Surtax.Rate)
	}
	return rate
}
