package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/gridiron-edge/internal/models"
)

func newTestSelector() *BetSelector {
	return NewBetSelector(NewTeamResolver(DefaultTeamCodes(), DefaultMarketAliases()), testLogger())
}

func TestJoinMatchesQuotesToEstimates(t *testing.T) {
	quotes := []models.MarketQuoteRow{
		{GameID: "evt1", Bookmaker: "DraftKings", Market: "h2h", Team: "Kansas City Chiefs", Price: 120},
		{GameID: "evt1", Bookmaker: "DraftKings", Market: "h2h", Team: "LA Chargers", Price: -140},
		{GameID: "evt2", Bookmaker: "FanDuel", Market: "h2h", Team: "London Monarchs", Price: 200},
	}
	estimates := []models.ProbabilityEstimate{
		{GameID: "u1", Team: "KC", Canonical: "Kansas City Chiefs", Probability: 0.55},
		{GameID: "u1", Team: "LAC", Canonical: "Los Angeles Chargers", Probability: 0.45},
	}

	candidates, unmatched := newTestSelector().Join(quotes, estimates)
	require.Len(t, candidates, 2)
	assert.Equal(t, 1, unmatched, "quote with no estimate drops from the inner join")

	kc := candidates[0]
	assert.Equal(t, "Kansas City Chiefs", kc.Canonical)
	assert.Equal(t, 0.55, kc.Probability)
	assert.InDelta(t, 0.4545, kc.ImpliedProb, 0.0001)
	assert.InDelta(t, 0.0955, kc.Edge, 0.0001)

	lac := candidates[1]
	assert.Equal(t, "Los Angeles Chargers", lac.Canonical, "bookmaker alias resolves before matching")
	assert.InDelta(t, 0.5833, lac.ImpliedProb, 0.0001)
	assert.True(t, lac.Edge < 0, "negative edges survive the join")
}

func TestJoinFirstEstimateWinsPerTeam(t *testing.T) {
	quotes := []models.MarketQuoteRow{
		{GameID: "evt1", Market: "h2h", Team: "Kansas City Chiefs", Price: 100},
	}
	estimates := []models.ProbabilityEstimate{
		{GameID: "u1", Team: "KC", Canonical: "Kansas City Chiefs", Probability: 0.60},
		{GameID: "u2", Team: "KC", Canonical: "Kansas City Chiefs", Probability: 0.40},
	}

	candidates, _ := newTestSelector().Join(quotes, estimates)
	require.Len(t, candidates, 1)
	assert.Equal(t, 0.60, candidates[0].Probability)
}

func TestSelectFiltersAndSizes(t *testing.T) {
	runID := uuid.New()
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	bankroll := decimal.NewFromInt(1000)

	candidates := []models.BetCandidate{
		// 0.55 at +120: edge +0.095, Kelly (1.2*0.55-0.45)/1.2 = 0.175.
		{
			Quote:       models.MarketQuoteRow{GameID: "evt1", Bookmaker: "DraftKings", Market: "h2h", Team: "Kansas City Chiefs", Price: 120},
			Canonical:   "Kansas City Chiefs",
			Probability: 0.55,
			ImpliedProb: 0.4545,
			Edge:        0.0955,
		},
		// 0.60 at -150: implied 0.60, zero edge, excluded.
		{
			Quote:       models.MarketQuoteRow{GameID: "evt2", Market: "h2h", Team: "Buffalo Bills", Price: -150},
			Canonical:   "Buffalo Bills",
			Probability: 0.60,
			ImpliedProb: 0.60,
			Edge:        0,
		},
		// Negative edge, excluded.
		{
			Quote:       models.MarketQuoteRow{GameID: "evt3", Market: "h2h", Team: "New York Jets", Price: -200},
			Canonical:   "New York Jets",
			Probability: 0.50,
			ImpliedProb: 0.6667,
			Edge:        -0.1667,
		},
	}

	bets := newTestSelector().Select(candidates, runID, bankroll, now)
	require.Len(t, bets, 1)

	bet := bets[0]
	assert.Equal(t, runID, bet.RunID)
	assert.NotEqual(t, uuid.Nil, bet.ID)
	assert.Equal(t, "Kansas City Chiefs", bet.Team)
	assert.Equal(t, "DraftKings", bet.Bookmaker)
	assert.Equal(t, 120, bet.Price)
	assert.InDelta(t, 0.175, bet.KellyFraction, 1e-9)
	assert.Equal(t, "175", bet.Stake.String())
	assert.Equal(t, now, bet.CreatedAt)
}

func TestSelectEmptyCandidatesIsEmptyNotError(t *testing.T) {
	bets := newTestSelector().Select(nil, uuid.New(), decimal.NewFromInt(1000), time.Now())
	assert.Empty(t, bets)
}
