package calculation

import "github.com/shopspring/decimal"

var (
	hundred      = decimal.NewFromInt(100)
	monthsInYear = decimal.NewFromInt(12)
	daysInYear   = decimal.NewFromInt(365)
)

// RoundToSmallestUnit rounds a shekel amount to whole agorot.
// Every intermediate monetary value is passed through it, not only the final totals.
func RoundToSmallestUnit(amount decimal.Decimal) decimal.Decimal {
	return amount.Round(2)
}

// RoundToWhole rounds to the nearest whole shekel
func RoundToWhole(amount decimal.Decimal) decimal.Decimal {
	return amount.Round(0)
}

// RoundTo rounds to an arbitrary number of decimal places
func RoundTo(amount decimal.Decimal, places int32) decimal.Decimal {
	return amount.Round(places)
}

// safeRatio returns numerator/denominator, or zero when the denominator is not positive
func safeRatio(numerator, denominator decimal.Decimal) decimal.Decimal {
	if !denominator.IsPositive() {
		return decimal.Zero
	}
	return numerator.Div(denominator)
}
