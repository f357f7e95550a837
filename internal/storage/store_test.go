package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/gridiron-edge/internal/models"
)

func TestFileStoreSaveRecommendations(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStore(dir)
	require.NoError(t, err)

	bets := []models.RecommendedBet{
		{
			ID:            uuid.New(),
			RunID:         uuid.New(),
			GameID:        "2026_01_BUF_KC",
			Team:          "Buffalo Bills",
			Bookmaker:     "DraftKings",
			Market:        "h2h",
			Price:         120,
			Probability:   0.55,
			ImpliedProb:   0.454545,
			Edge:          0.095455,
			KellyFraction: 0.175,
			Stake:         decimal.NewFromFloat(175.00),
			CreatedAt:     time.Now(),
		},
	}

	require.NoError(t, store.SaveRecommendations("recommended_bets", bets))

	data, err := os.ReadFile(filepath.Join(dir, "recommended_bets.csv"))
	require.NoError(t, err)

	content := string(data)
	assert.Contains(t, content, "game_id,team,bookmaker,market,price")
	assert.Contains(t, content, "2026_01_BUF_KC,Buffalo Bills,DraftKings,h2h,120")
	assert.Contains(t, content, "175.00")
}

func TestFileStoreEmptyRecommendationsStillWritesHeader(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStore(dir)
	require.NoError(t, err)

	require.NoError(t, store.SaveRecommendations("recommended_bets", nil))

	data, err := os.ReadFile(filepath.Join(dir, "recommended_bets.csv"))
	require.NoError(t, err)
	assert.Equal(t, "game_id,team,bookmaker,market,price,probability,implied_prob,edge,kelly_fraction,stake\n", string(data))
}

func TestFileStoreSaveJSON(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStore(dir)
	require.NoError(t, err)

	require.NoError(t, store.SaveJSON("quotes", map[string]int{"count": 3}))

	data, err := os.ReadFile(filepath.Join(dir, "quotes.json"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"count": 3}`, string(data))
}
