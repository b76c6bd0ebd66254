package calculation

import (
	"github.com/rgehrsitz/iltax/internal/domain"
	"github.com/shopspring/decimal"
)

// DefaultSavingsRate is the share of net income assumed not to be spent
var DefaultSavingsRate = decimal.NewFromFloat(0.2)

// EstimateVAT back-calculates the VAT embedded in tax-inclusive spending.
// savingsRate is zero when the base is already an explicit spending figure.
func EstimateVAT(annualBase, rate, savingsRate decimal.Decimal) domain.VATEstimate {
	if !annualBase.IsPositive() {
		return domain.VATEstimate{Rate: rate, AnnualVATPaid: decimal.Zero}
	}
	spending := RoundToSmallestUnit(annualBase.Mul(decimal.NewFromInt(1).Sub(savingsRate)))
	embedded := rate.Div(decimal.NewFromInt(1).Add(rate))
	return domain.VATEstimate{
		Rate:          rate,
		AnnualVATPaid: RoundToSmallestUnit(spending.Mul(embedded)),
	}
}
