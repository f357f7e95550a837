package model

import (
	"math"
	"math/rand"
)

// ForestConfig controls the random-forest ensemble.
type ForestConfig struct {
	Trees          int
	MaxDepth       int
	MinSamplesLeaf int
}

// DefaultForestConfig mirrors the usual 100-estimator default.
func DefaultForestConfig() ForestConfig {
	return ForestConfig{
		Trees:          100,
		MaxDepth:       12,
		MinSamplesLeaf: 2,
	}
}

// Forest is a fitted bagged ensemble of CART trees.
type Forest struct {
	trees []*treeNode
	dims  int
}

// FitForest trains cfg.Trees trees on bootstrap resamples of (X, y), each
// split considering a sqrt-sized random feature subset. All randomness flows
// from rng, so an identical seed reproduces the identical forest.
func FitForest(X [][]float64, y []int, cfg ForestConfig, rng *rand.Rand) *Forest {
	if len(X) == 0 {
		return &Forest{}
	}

	dims := len(X[0])
	tcfg := treeConfig{
		maxDepth:       cfg.MaxDepth,
		minSamplesLeaf: cfg.MinSamplesLeaf,
		maxFeatures:    int(math.Max(1, math.Round(math.Sqrt(float64(dims))))),
	}

	trees := make([]*treeNode, cfg.Trees)
	idx := make([]int, len(X))
	for t := 0; t < cfg.Trees; t++ {
		for i := range idx {
			idx[i] = rng.Intn(len(X))
		}
		trees[t] = growTree(X, y, idx, 0, tcfg, rng)
	}

	return &Forest{trees: trees, dims: dims}
}

// PredictProba returns the probability mass assigned to the positive class:
// the mean leaf probability across trees.
func (f *Forest) PredictProba(row []float64) float64 {
	if len(f.trees) == 0 {
		return 0
	}
	sum := 0.0
	for _, t := range f.trees {
		sum += t.predictProba(row)
	}
	return sum / float64(len(f.trees))
}

// Predict returns the majority-vote class label.
func (f *Forest) Predict(row []float64) int {
	if f.PredictProba(row) >= 0.5 {
		return 1
	}
	return 0
}
