package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rgehrsitz/iltax/internal/tui/tuistyles"
	"github.com/shopspring/decimal"
)

// ShareBar shows one budget category's share of the taxpayer's deductions
type ShareBar struct {
	Label   string
	Percent decimal.Decimal
	Amount  decimal.Decimal
	Color   string
	Width   int
}

// NewShareBar creates a bar for a percentage in [0, 100]
func NewShareBar(label string, percent, amount decimal.Decimal) *ShareBar {
	return &ShareBar{
		Label:   label,
		Percent: percent,
		Amount:  amount,
		Width:   30,
	}
}

// WithColor sets the fill color, usually the category's budget color
func (b *ShareBar) WithColor(color string) *ShareBar {
	b.Color = color
	return b
}

// Filled returns how many of Width cells the share covers
func (b *ShareBar) Filled() int {
	if !b.Percent.IsPositive() {
		return 0
	}
	filled := int(b.Percent.Mul(decimal.NewFromInt(int64(b.Width))).Div(decimal.NewFromInt(100)).Round(0).IntPart())
	return min(filled, b.Width)
}

// Render draws a single line: label, bar, percentage and amount
func (b *ShareBar) Render() string {
	fill := lipgloss.NewStyle().Foreground(tuistyles.ColorPrimary)
	if b.Color != "" {
		fill = fill.Foreground(lipgloss.Color(b.Color))
	}
	filled := b.Filled()
	bar := fill.Render(strings.Repeat("█", filled)) +
		tuistyles.SliderTrackStyle.Render(strings.Repeat("░", b.Width-filled))
	return fmt.Sprintf("%-20s %s %5s%% %s",
		b.Label, bar, b.Percent.StringFixed(1), tuistyles.FormatCurrency(b.Amount))
}
