package tui

import (
	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rgehrsitz/iltax/internal/calculation"
	"github.com/rgehrsitz/iltax/internal/domain"
	"github.com/rgehrsitz/iltax/internal/freedom"
	"github.com/rgehrsitz/iltax/internal/scenario"
	"github.com/rgehrsitz/iltax/internal/tui/components"
)

// Slider order in the reform panel
const (
	sliderIncomeTax = iota
	sliderVAT
	sliderNI
	sliderCount
)

// SliderStep is how many percentage points one key press moves a slider
const SliderStep = 5

// Model is the interactive reform explorer for one taxpayer profile
type Model struct {
	width  int
	height int

	engine  *calculation.Engine
	profile domain.TaxpayerProfile

	result *domain.TotalTaxResult
	reform freedom.ReformResult

	sliders []*components.ReductionSlider
	focus   int

	presets    []scenario.Template
	presetIdx  int
	presetName string

	keys keyMap
	help help.Model

	loading bool
	err     error
}

// NewModel creates a model that calculates profile with engine on Init
func NewModel(engine *calculation.Engine, profile domain.TaxpayerProfile) Model {
	sliders := make([]*components.ReductionSlider, sliderCount)
	sliders[sliderIncomeTax] = components.NewReductionSlider("Income tax reduction", SliderStep)
	sliders[sliderVAT] = components.NewReductionSlider("VAT reduction", SliderStep)
	sliders[sliderNI] = components.NewReductionSlider("NI + health reduction", SliderStep)
	sliders[0].Focused = true

	return Model{
		width:     80,
		height:    24,
		engine:    engine,
		profile:   profile,
		sliders:   sliders,
		presets:   scenario.NewRegistry().Templates(),
		presetIdx: -1,
		keys:      defaultKeyMap(),
		help:      help.New(),
		loading:   true,
	}
}

// Init starts the calculation
func (m Model) Init() tea.Cmd {
	return calculateCmd(m.engine, m.profile)
}

// Scenario returns the reform described by the current slider positions
func (m Model) Scenario() freedom.ReformScenario {
	name := m.presetName
	if name == "" {
		name = "custom"
	}
	return freedom.ReformScenario{
		Name:                      name,
		IncomeTaxReductionPercent: m.sliders[sliderIncomeTax].Percent(),
		VATReductionPercent:       m.sliders[sliderVAT].Percent(),
		NIReductionPercent:        m.sliders[sliderNI].Percent(),
	}
}

// Reform returns the last simulated reform
func (m Model) Reform() freedom.ReformResult {
	return m.reform
}

// Result returns the calculated burden, nil until the calculation completes
func (m Model) Result() *domain.TotalTaxResult {
	return m.result
}

// Err returns the last calculation error
func (m Model) Err() error {
	return m.err
}

// Focus returns the index of the focused slider
func (m Model) Focus() int {
	return m.focus
}

func (m *Model) recompute() {
	if m.result == nil {
		return
	}
	m.reform = freedom.SimulateReform(m.result, m.Scenario())
}

func (m *Model) setFocus(i int) {
	n := len(m.sliders)
	m.sliders[m.focus].Focused = false
	m.focus = ((i % n) + n) % n
	m.sliders[m.focus].Focused = true
}

func (m *Model) applyPreset(t scenario.Template) {
	m.sliders[sliderIncomeTax].SetValue(int(t.Scenario.IncomeTaxReductionPercent.IntPart()))
	m.sliders[sliderVAT].SetValue(int(t.Scenario.VATReductionPercent.IntPart()))
	m.sliders[sliderNI].SetValue(int(t.Scenario.NIReductionPercent.IntPart()))
	m.presetName = t.Name
}
