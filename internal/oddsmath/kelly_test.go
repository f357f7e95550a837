package oddsmath

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKellyFraction(t *testing.T) {
	tests := []struct {
		name        string
		probability float64
		price       int
		want        float64
	}{
		{"positive edge underdog", 0.55, 120, (1.2*0.55 - 0.45) / 1.2},
		{"no edge even money", 0.5, 100, 0},
		{"negative edge clamps to zero", 0.40, -150, 0},
		{"certain win", 1.0, 100, 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, KellyFraction(tt.probability, tt.price), 1e-9)
		})
	}
}

func TestKellyFractionNeverNegative(t *testing.T) {
	probs := []float64{0, 0.1, 0.25, 0.5, 0.75, 0.9, 1}
	prices := []int{-500, -150, -100, 100, 150, 500}
	for _, p := range probs {
		for _, price := range prices {
			f := KellyFraction(p, price)
			assert.GreaterOrEqual(t, f, 0.0, "p=%v price=%d", p, price)
		}
	}
}

func TestReasonableFraction(t *testing.T) {
	assert.False(t, ReasonableFraction(0))
	assert.False(t, ReasonableFraction(-0.1))
	assert.True(t, ReasonableFraction(0.175))
	assert.True(t, ReasonableFraction(1))
	assert.False(t, ReasonableFraction(1.01))
}
