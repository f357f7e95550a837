package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScalerZeroMeanUnitVariance(t *testing.T) {
	X := [][]float64{
		{1, 10},
		{2, 20},
		{3, 30},
		{4, 40},
	}

	s := FitScaler(X)
	scaled := s.TransformAll(X)

	for j := 0; j < 2; j++ {
		mean, variance := 0.0, 0.0
		for _, row := range scaled {
			mean += row[j]
		}
		mean /= float64(len(scaled))
		for _, row := range scaled {
			d := row[j] - mean
			variance += d * d
		}
		variance /= float64(len(scaled))

		assert.InDelta(t, 0.0, mean, 1e-9)
		assert.InDelta(t, 1.0, variance, 1e-9)
	}
}

func TestScalerConstantFeature(t *testing.T) {
	X := [][]float64{{5, 1}, {5, 2}, {5, 3}}

	s := FitScaler(X)
	row := s.Transform([]float64{5, 2})

	assert.InDelta(t, 0.0, row[0], 1e-9)
	assert.InDelta(t, 0.0, row[1], 1e-9)
}

func TestScalerReusedVerbatimOnNewRows(t *testing.T) {
	s := FitScaler([][]float64{{0}, {10}})

	// Mean 5, std 5: a new value of 20 maps to +3.
	row := s.Transform([]float64{20})
	assert.InDelta(t, 3.0, row[0], 1e-9)
}
