package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rgehrsitz/iltax/internal/calculation"
	"github.com/rgehrsitz/iltax/internal/domain"
)

// CalculationCompleteMsg carries the engine result for the loaded profile
type CalculationCompleteMsg struct {
	Result *domain.TotalTaxResult
	Err    error
}

// ErrorMsg displays an error to the user
type ErrorMsg struct {
	Err error
}

func calculateCmd(engine *calculation.Engine, profile domain.TaxpayerProfile) tea.Cmd {
	return func() tea.Msg {
		result, err := engine.Calculate(profile)
		return CalculationCompleteMsg{Result: result, Err: err}
	}
}
