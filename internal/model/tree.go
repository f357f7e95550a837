package model

import (
	"math/rand"
	"sort"
)

// treeConfig controls CART growth for a single tree.
type treeConfig struct {
	maxDepth       int
	minSamplesLeaf int
	maxFeatures    int
}

// treeNode is a binary CART node. Leaves carry the positive-class fraction of
// the training samples that reached them.
type treeNode struct {
	feature   int
	threshold float64
	left      *treeNode
	right     *treeNode
	prob      float64
	leaf      bool
}

func growTree(X [][]float64, y []int, idx []int, depth int, cfg treeConfig, rng *rand.Rand) *treeNode {
	positives := 0
	for _, i := range idx {
		positives += y[i]
	}
	prob := float64(positives) / float64(len(idx))

	if depth >= cfg.maxDepth || len(idx) < 2*cfg.minSamplesLeaf || positives == 0 || positives == len(idx) {
		return &treeNode{leaf: true, prob: prob}
	}

	feature, threshold, ok := bestSplit(X, y, idx, cfg, rng)
	if !ok {
		return &treeNode{leaf: true, prob: prob}
	}

	var left, right []int
	for _, i := range idx {
		if X[i][feature] <= threshold {
			left = append(left, i)
		} else {
			right = append(right, i)
		}
	}
	if len(left) < cfg.minSamplesLeaf || len(right) < cfg.minSamplesLeaf {
		return &treeNode{leaf: true, prob: prob}
	}

	return &treeNode{
		feature:   feature,
		threshold: threshold,
		left:      growTree(X, y, left, depth+1, cfg, rng),
		right:     growTree(X, y, right, depth+1, cfg, rng),
		prob:      prob,
	}
}

// bestSplit searches a random feature subset for the threshold with the lowest
// weighted gini impurity.
func bestSplit(X [][]float64, y []int, idx []int, cfg treeConfig, rng *rand.Rand) (int, float64, bool) {
	dims := len(X[0])
	features := rng.Perm(dims)
	if cfg.maxFeatures < dims {
		features = features[:cfg.maxFeatures]
	}

	bestGini := gini(y, idx)
	bestFeature, bestThreshold := -1, 0.0

	values := make([]float64, 0, len(idx))
	for _, f := range features {
		values = values[:0]
		for _, i := range idx {
			values = append(values, X[i][f])
		}
		sort.Float64s(values)

		for k := 1; k < len(values); k++ {
			if values[k] == values[k-1] {
				continue
			}
			threshold := (values[k] + values[k-1]) / 2

			var nLeft, posLeft, nRight, posRight int
			for _, i := range idx {
				if X[i][f] <= threshold {
					nLeft++
					posLeft += y[i]
				} else {
					nRight++
					posRight += y[i]
				}
			}
			if nLeft == 0 || nRight == 0 {
				continue
			}

			total := float64(nLeft + nRight)
			weighted := float64(nLeft)/total*giniCounts(nLeft, posLeft) +
				float64(nRight)/total*giniCounts(nRight, posRight)
			if weighted < bestGini {
				bestGini = weighted
				bestFeature = f
				bestThreshold = threshold
			}
		}
	}

	if bestFeature < 0 {
		return 0, 0, false
	}
	return bestFeature, bestThreshold, true
}

func gini(y []int, idx []int) float64 {
	positives := 0
	for _, i := range idx {
		positives += y[i]
	}
	return giniCounts(len(idx), positives)
}

func giniCounts(n, positives int) float64 {
	if n == 0 {
		return 0
	}
	p := float64(positives) / float64(n)
	return 2 * p * (1 - p)
}

func (t *treeNode) predictProba(row []float64) float64 {
	node := t
	for !node.leaf {
		if row[node.feature] <= node.threshold {
			node = node.left
		} else {
			node = node.right
		}
	}
	return node.prob
}
