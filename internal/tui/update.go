package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Update handles all messages and updates the model state
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case CalculationCompleteMsg:
		m.loading = false
		m.result = msg.Result
		m.err = msg.Err
		m.recompute()
		return m, nil

	case ErrorMsg:
		m.loading = false
		m.err = msg.Err
		return m, nil
	}
	return m, nil
}

func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	// Sliders stay frozen until there is a result to reform
	if m.result == nil {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Next):
		m.setFocus(m.focus + 1)
	case key.Matches(msg, m.keys.Prev):
		m.setFocus(m.focus - 1)
	case key.Matches(msg, m.keys.Increase):
		m.sliders[m.focus].Increment()
		m.presetName = ""
	case key.Matches(msg, m.keys.Decrease):
		m.sliders[m.focus].Decrement()
		m.presetName = ""
	case key.Matches(msg, m.keys.Preset):
		if len(m.presets) > 0 {
			m.presetIdx = (m.presetIdx + 1) % len(m.presets)
			m.applyPreset(m.presets[m.presetIdx])
		}
	case key.Matches(msg, m.keys.Reset):
		for _, s := range m.sliders {
			s.SetValue(0)
		}
		m.presetIdx = -1
		m.presetName = ""
	default:
		return m, nil
	}
	m.recompute()
	return m, nil
}
