// Package model implements the win-probability classifier: a standard scaler
// and a random-forest ensemble fitted as one immutable pair per run.
package model

import "math"

// Scaler standardizes feature vectors to zero mean and unit variance using
// statistics fitted on the training partition only.
type Scaler struct {
	means []float64
	stds  []float64
}

// FitScaler computes per-feature means and standard deviations over X.
func FitScaler(X [][]float64) *Scaler {
	if len(X) == 0 {
		return &Scaler{}
	}

	dims := len(X[0])
	means := make([]float64, dims)
	stds := make([]float64, dims)

	for _, row := range X {
		for j, v := range row {
			means[j] += v
		}
	}
	n := float64(len(X))
	for j := range means {
		means[j] /= n
	}

	for _, row := range X {
		for j, v := range row {
			d := v - means[j]
			stds[j] += d * d
		}
	}
	for j := range stds {
		stds[j] = math.Sqrt(stds[j] / n)
		if stds[j] == 0 {
			// Constant feature: leave it centered, unscaled.
			stds[j] = 1
		}
	}

	return &Scaler{means: means, stds: stds}
}

// Transform returns a standardized copy of row.
func (s *Scaler) Transform(row []float64) []float64 {
	if len(s.means) == 0 {
		out := make([]float64, len(row))
		copy(out, row)
		return out
	}
	out := make([]float64, len(row))
	for j, v := range row {
		out[j] = (v - s.means[j]) / s.stds[j]
	}
	return out
}

// TransformAll standardizes every row of X.
func (s *Scaler) TransformAll(X [][]float64) [][]float64 {
	out := make([][]float64, len(X))
	for i, row := range X {
		out[i] = s.Transform(row)
	}
	return out
}
