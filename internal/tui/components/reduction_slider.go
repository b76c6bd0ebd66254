package components

import (
	"fmt"
	"strings"

	"github.com/rgehrsitz/iltax/internal/tui/tuistyles"
	"github.com/shopspring/decimal"
)

// ReductionSlider adjusts one reform reduction in whole percentage points
type ReductionSlider struct {
	Label   string
	Value   int
	Min     int
	Max     int
	Step    int
	Focused bool
	Width   int
}

// NewReductionSlider creates a 0-100% slider moving in steps of step points
func NewReductionSlider(label string, step int) *ReductionSlider {
	return &ReductionSlider{
		Label: label,
		Min:   0,
		Max:   100,
		Step:  step,
		Width: 30,
	}
}

// SetValue clamps v into [Min, Max]
func (s *ReductionSlider) SetValue(v int) {
	s.Value = max(s.Min, min(s.Max, v))
}

func (s *ReductionSlider) Increment() { s.SetValue(s.Value + s.Step) }

func (s *ReductionSlider) Decrement() { s.SetValue(s.Value - s.Step) }

// Percent returns the value as a decimal percentage for reform scenarios
func (s *ReductionSlider) Percent() decimal.Decimal {
	return decimal.NewFromInt(int64(s.Value))
}

// Render draws the label, track and value. The focused slider gets a marker.
func (s *ReductionSlider) Render() string {
	marker := "  "
	if s.Focused {
		marker = tuistyles.SliderThumbStyle.Render("▶ ")
	}
	label := tuistyles.ParameterLabelStyle.Render(fmt.Sprintf("%-22s", s.Label))
	value := tuistyles.ParameterValueStyle.Render(fmt.Sprintf("%3d%%", s.Value))
	return marker + label + " " + s.renderBar() + " " + value
}

func (s *ReductionSlider) renderBar() string {
	span := s.Max - s.Min
	pos := 0
	if span > 0 {
		pos = (s.Value - s.Min) * (s.Width - 1) / span
	}
	filled := tuistyles.SliderThumbStyle.Render(strings.Repeat("━", pos) + "●")
	rest := tuistyles.SliderTrackStyle.Render(strings.Repeat("─", s.Width-1-pos))
	return filled + rest
}
