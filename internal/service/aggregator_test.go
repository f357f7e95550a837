package service

import (
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/gridiron-edge/internal/datasource"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func f64(v float64) *float64 {
	return &v
}

func TestAggregateReducesPlaysPerGameTeam(t *testing.T) {
	plays := []datasource.PlayRecord{
		{GameID: "g1", PossessionTeam: "KC", HomeTeam: "KC", AwayTeam: "BUF",
			TotalHomeScore: f64(7), TotalAwayScore: f64(0), PosTeamScore: f64(7), DefTeamScore: f64(0),
			TotalHomeEPA: f64(1.5), TotalAwayEPA: f64(-0.5)},
		{GameID: "g1", PossessionTeam: "KC", HomeTeam: "KC", AwayTeam: "BUF",
			TotalHomeScore: f64(27), TotalAwayScore: f64(20), PosTeamScore: f64(27), DefTeamScore: f64(20),
			TotalHomeEPA: f64(2.0), TotalAwayEPA: f64(0.5)},
		{GameID: "g1", PossessionTeam: "BUF", HomeTeam: "KC", AwayTeam: "BUF",
			TotalHomeScore: f64(27), TotalAwayScore: f64(20), PosTeamScore: f64(20), DefTeamScore: f64(27),
			TotalHomeEPA: f64(0.5), TotalAwayEPA: f64(1.0)},
	}

	records := NewHistoricalAggregator(testLogger()).Aggregate(plays)
	require.Len(t, records, 2)

	// Sorted by (game_id, team): BUF before KC.
	buf, kc := records[0], records[1]

	assert.Equal(t, "BUF", buf.Team)
	assert.Equal(t, 0, buf.WinLoss)
	assert.Equal(t, 0, buf.HomeAway)
	assert.Equal(t, 1, buf.PlayCount)

	assert.Equal(t, "KC", kc.Team)
	assert.Equal(t, 1, kc.WinLoss)
	assert.Equal(t, 1, kc.HomeAway)
	assert.Equal(t, 2, kc.PlayCount)
	require.NotNil(t, kc.HomeScore)
	assert.Equal(t, 27.0, *kc.HomeScore)
	require.NotNil(t, kc.PosTeamScore)
	assert.Equal(t, 27.0, *kc.PosTeamScore)
	require.NotNil(t, kc.HomeEPA)
	assert.InDelta(t, 3.5, *kc.HomeEPA, 1e-9)
	require.NotNil(t, kc.AwayEPA)
	assert.InDelta(t, 0.0, *kc.AwayEPA, 1e-9)
}

func TestAggregateSkipsPlaysWithoutPossessingTeam(t *testing.T) {
	plays := []datasource.PlayRecord{
		{GameID: "g1", PossessionTeam: "", HomeTeam: "KC", AwayTeam: "BUF"},
		{GameID: "g1", PossessionTeam: "KC", HomeTeam: "KC", AwayTeam: "BUF",
			TotalHomeScore: f64(14), TotalAwayScore: f64(3)},
	}

	records := NewHistoricalAggregator(testLogger()).Aggregate(plays)
	require.Len(t, records, 1)
	assert.Equal(t, "KC", records[0].Team)
}

func TestAggregateMissingScoresNeverWin(t *testing.T) {
	plays := []datasource.PlayRecord{
		{GameID: "g1", PossessionTeam: "KC", HomeTeam: "KC", AwayTeam: "BUF"},
	}

	records := NewHistoricalAggregator(testLogger()).Aggregate(plays)
	require.Len(t, records, 1)
	assert.Equal(t, 0, records[0].WinLoss)
	assert.Nil(t, records[0].HomeScore)
}

func TestAggregateEmptyInput(t *testing.T) {
	assert.Empty(t, NewHistoricalAggregator(testLogger()).Aggregate(nil))
}

func TestAggregateOutputIsSorted(t *testing.T) {
	plays := []datasource.PlayRecord{
		{GameID: "g2", PossessionTeam: "DAL", HomeTeam: "DAL", AwayTeam: "PHI"},
		{GameID: "g1", PossessionTeam: "KC", HomeTeam: "KC", AwayTeam: "BUF"},
		{GameID: "g1", PossessionTeam: "BUF", HomeTeam: "KC", AwayTeam: "BUF"},
	}

	records := NewHistoricalAggregator(testLogger()).Aggregate(plays)
	require.Len(t, records, 3)
	assert.Equal(t, "g1", records[0].GameID)
	assert.Equal(t, "BUF", records[0].Team)
	assert.Equal(t, "g1", records[1].GameID)
	assert.Equal(t, "KC", records[1].Team)
	assert.Equal(t, "g2", records[2].GameID)
}
