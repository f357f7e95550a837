package model

import (
	"fmt"
	"math/rand"

	"github.com/yourusername/gridiron-edge/internal/models"
)

// TrainConfig controls one training run. Seed drives every random decision
// (split shuffle, bootstrap resampling, feature subsampling) so identical
// inputs and seed produce an identical fitted model.
type TrainConfig struct {
	Forest   ForestConfig
	TestSize float64
	CVFolds  int
	Seed     int64
}

// DefaultTrainConfig returns the standard 80/20 split with 5-fold validation.
func DefaultTrainConfig() TrainConfig {
	return TrainConfig{
		Forest:   DefaultForestConfig(),
		TestSize: 0.2,
		CVFolds:  5,
		Seed:     1,
	}
}

// FittedModel bundles the fitted scaler and forest from a single training run.
// The two are only valid as a pair: callers get no access to either half, so a
// scaler from one run can never be mixed with a forest from another.
type FittedModel struct {
	scaler   *Scaler
	forest   *Forest
	accuracy float64
}

// Accuracy returns the cross-validated accuracy estimate from training.
// Diagnostic only; it never gates whether the model is used.
func (m *FittedModel) Accuracy() float64 {
	return m.accuracy
}

// PredictProba returns, for each raw (unscaled) feature vector, the
// probability mass assigned to the win class. Scaling with the fitted scaler
// happens internally.
func (m *FittedModel) PredictProba(vectors [][]float64) []float64 {
	probs := make([]float64, len(vectors))
	for i, row := range vectors {
		probs[i] = m.forest.PredictProba(m.scaler.Transform(row))
	}
	return probs
}

// Train fits the scaler and forest on an 80/20 shuffle split of the feature
// rows and reports a k-fold cross-validated accuracy on the held-out
// partition.
func Train(rows []models.GameFeatureRow, cfg TrainConfig) (*FittedModel, error) {
	if len(rows) == 0 {
		return nil, models.ErrNoFeatureRows
	}

	X := make([][]float64, len(rows))
	y := make([]int, len(rows))
	positives := 0
	for i := range rows {
		X[i] = rows[i].Vector()
		y[i] = rows[i].WinLoss
		positives += rows[i].WinLoss
	}
	if positives == 0 || positives == len(rows) {
		return nil, models.ErrSingleClass
	}

	rng := rand.New(rand.NewSource(cfg.Seed))

	nTest := int(float64(len(rows)) * cfg.TestSize)
	if nTest < 1 {
		nTest = 1
	}
	if nTest >= len(rows) {
		return nil, fmt.Errorf("test size %.2f leaves no training rows", cfg.TestSize)
	}

	perm := rng.Perm(len(rows))
	testIdx, trainIdx := perm[:nTest], perm[nTest:]

	trainX := make([][]float64, len(trainIdx))
	trainY := make([]int, len(trainIdx))
	for i, p := range trainIdx {
		trainX[i] = X[p]
		trainY[i] = y[p]
	}

	// The scaler is fitted on the training partition only and reused
	// verbatim everywhere else.
	scaler := FitScaler(trainX)
	forest := FitForest(scaler.TransformAll(trainX), trainY, cfg.Forest, rng)

	testX := make([][]float64, len(testIdx))
	testY := make([]int, len(testIdx))
	for i, p := range testIdx {
		testX[i] = scaler.Transform(X[p])
		testY[i] = y[p]
	}
	accuracy := crossValidate(testX, testY, cfg, rng)

	return &FittedModel{scaler: scaler, forest: forest, accuracy: accuracy}, nil
}

// crossValidate refits a fresh forest on k-1 folds of the held-out partition
// and scores it on the remaining fold, averaging accuracy over folds.
func crossValidate(X [][]float64, y []int, cfg TrainConfig, rng *rand.Rand) float64 {
	folds := cfg.CVFolds
	if folds < 2 {
		folds = 2
	}
	if folds > len(X) {
		folds = len(X)
	}
	if folds < 2 {
		return 0
	}

	var total float64
	for k := 0; k < folds; k++ {
		var trainX, holdX [][]float64
		var trainY, holdY []int
		for i := range X {
			if i%folds == k {
				holdX = append(holdX, X[i])
				holdY = append(holdY, y[i])
			} else {
				trainX = append(trainX, X[i])
				trainY = append(trainY, y[i])
			}
		}
		if len(trainX) == 0 || len(holdX) == 0 {
			continue
		}

		fold := FitForest(trainX, trainY, cfg.Forest, rng)
		correct := 0
		for i := range holdX {
			if fold.Predict(holdX[i]) == holdY[i] {
				correct++
			}
		}
		total += float64(correct) / float64(len(holdX))
	}

	return total / float64(folds)
}
