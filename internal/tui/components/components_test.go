package components

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestReductionSlider(t *testing.T) {
	s := NewReductionSlider("VAT reduction", 5)
	s.Decrement()
	assert.Equal(t, 0, s.Value)

	s.Increment()
	s.Increment()
	assert.Equal(t, 10, s.Value)
	assert.True(t, s.Percent().Equal(decimal.NewFromInt(10)))

	s.SetValue(250)
	assert.Equal(t, 100, s.Value)

	out := s.Render()
	assert.Contains(t, out, "VAT reduction")
	assert.Contains(t, out, "100%")
	assert.Contains(t, out, "●")
}

func TestShareBarFilled(t *testing.T) {
	tests := []struct {
		name    string
		percent float64
		want    int
	}{
		{"empty", 0, 0},
		{"negative", -5, 0},
		{"half", 50, 15},
		{"rounds", 16, 5},
		{"full", 100, 30},
		{"over", 140, 30},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewShareBar("defense", decimal.NewFromFloat(tt.percent), decimal.NewFromInt(1000))
			assert.Equal(t, tt.want, b.Filled())
		})
	}
}

func TestShareBarRender(t *testing.T) {
	out := NewShareBar("defense", decimal.NewFromInt(16), decimal.NewFromInt(6318)).WithColor("#ff0000").Render()
	assert.Contains(t, out, "defense")
	assert.Contains(t, out, "16.0%")
	assert.Contains(t, out, "₪6,318")
	assert.Equal(t, 5, strings.Count(out, "█"))
}

func TestMetricCard(t *testing.T) {
	card := NewAmountCard("Net income", decimal.NewFromFloat(160510.54)).
		WithSaving(decimal.NewFromInt(2286))

	assert.Contains(t, card.Render(), "₪160,511")
	assert.Contains(t, card.RenderCompact(), "Net income:")
	assert.Contains(t, card.RenderCompact(), "₪2,286 saved")

	unchanged := NewAmountCard("VAT", decimal.Zero).WithSaving(decimal.Zero)
	assert.Nil(t, unchanged.Trend)
}

func TestMetricGrid(t *testing.T) {
	assert.Empty(t, MetricGrid(nil, 3))

	cards := []*MetricCard{NewMetricCard("A", "1"), NewMetricCard("B", "2"), NewMetricCard("C", "3")}
	grid := MetricGrid(cards, 2)
	for _, label := range []string{"A", "B", "C"} {
		assert.Contains(t, grid, label)
	}
}
