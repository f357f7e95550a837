package model

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/gridiron-edge/internal/models"
)

// syntheticRows builds a linearly separable data set: big positive point
// differentials win, big negative ones lose.
func syntheticRows(n int, seed int64) []models.GameFeatureRow {
	rng := rand.New(rand.NewSource(seed))
	rows := make([]models.GameFeatureRow, n)
	for i := range rows {
		winLoss := i % 2
		sign := float64(winLoss*2 - 1)
		rows[i] = models.GameFeatureRow{
			GameID:    "g",
			Team:      "t",
			PointDiff: sign*10 + rng.Float64()*2,
			TotalEPA:  sign*5 + rng.Float64(),
			PlayCount: 60 + rng.Float64()*20,
			HomeAway:  float64(i % 2),
			WinLoss:   winLoss,
		}
	}
	return rows
}

func TestTrainEmptyInput(t *testing.T) {
	_, err := Train(nil, DefaultTrainConfig())
	assert.ErrorIs(t, err, models.ErrNoFeatureRows)
}

func TestTrainSingleClass(t *testing.T) {
	rows := syntheticRows(20, 1)
	for i := range rows {
		rows[i].WinLoss = 1
	}
	_, err := Train(rows, DefaultTrainConfig())
	assert.ErrorIs(t, err, models.ErrSingleClass)
}

func TestTrainLearnsSeparableData(t *testing.T) {
	cfg := DefaultTrainConfig()
	cfg.Forest.Trees = 25
	cfg.Seed = 7

	m, err := Train(syntheticRows(200, 7), cfg)
	require.NoError(t, err)

	// Raw (unscaled) vectors: the model owns the scaler.
	probs := m.PredictProba([][]float64{
		{12, 6, 70, 1},
		{-12, -6, 70, 0},
	})
	require.Len(t, probs, 2)
	assert.Greater(t, probs[0], 0.8)
	assert.Less(t, probs[1], 0.2)
	assert.Greater(t, m.Accuracy(), 0.6)
}

func TestTrainIsDeterministicForFixedSeed(t *testing.T) {
	cfg := DefaultTrainConfig()
	cfg.Forest.Trees = 15
	cfg.Seed = 42

	rows := syntheticRows(120, 3)
	probe := [][]float64{{4, 1.5, 62, 1}, {-3, -2, 58, 0}, {0.5, 0, 65, 1}}

	m1, err := Train(rows, cfg)
	require.NoError(t, err)
	m2, err := Train(rows, cfg)
	require.NoError(t, err)

	assert.Equal(t, m1.Accuracy(), m2.Accuracy())
	assert.Equal(t, m1.PredictProba(probe), m2.PredictProba(probe))
}

func TestPredictProbaWithinUnitInterval(t *testing.T) {
	cfg := DefaultTrainConfig()
	cfg.Forest.Trees = 10
	m, err := Train(syntheticRows(80, 9), cfg)
	require.NoError(t, err)

	probs := m.PredictProba([][]float64{{100, 50, 90, 1}, {-100, -50, 40, 0}, {0, 0, 0, 0}})
	for _, p := range probs {
		assert.GreaterOrEqual(t, p, 0.0)
		assert.LessOrEqual(t, p, 1.0)
	}
}
