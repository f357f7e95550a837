package oddsmath

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestImpliedProbability(t *testing.T) {
	tests := []struct {
		name  string
		price int
		want  float64
	}{
		{"even money positive", 100, 0.5},
		{"even money negative", -100, 0.5},
		{"underdog", 120, 100.0 / 220.0},
		{"favorite", -150, 150.0 / 250.0},
		{"long shot", 900, 0.1},
		{"heavy favorite", -400, 0.8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, ImpliedProbability(tt.price), 1e-9)
		})
	}
}

func TestImpliedProbabilityBounds(t *testing.T) {
	for _, price := range []int{-100000, -5000, -110, -100, 100, 110, 5000, 100000} {
		p := ImpliedProbability(price)
		assert.Greater(t, p, 0.0, "price %d", price)
		assert.Less(t, p, 1.0, "price %d", price)
	}
}

func TestNetOdds(t *testing.T) {
	assert.InDelta(t, 1.2, NetOdds(120), 1e-9)
	assert.InDelta(t, 2.0/3.0, NetOdds(-150), 1e-9)
	assert.InDelta(t, 1.0, NetOdds(100), 1e-9)
	assert.InDelta(t, 1.0, NetOdds(-100), 1e-9)
}

func TestEdge(t *testing.T) {
	// Model probability 0.60 at -150 implies roughly zero edge.
	assert.InDelta(t, 0.0, Edge(0.60, -150), 1e-9)

	// Model probability 0.55 at +120 is a clear positive edge.
	assert.InDelta(t, 0.55-100.0/220.0, Edge(0.55, 120), 1e-9)

	// Edges may be negative; filtering happens downstream.
	assert.Less(t, Edge(0.40, -150), 0.0)
}
