package datasource

import (
	"context"
	"errors"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

func testHTTPClient() *RateLimitedHTTPClient {
	cfg := DefaultHTTPClientConfig()
	cfg.MaxRetries = 0
	cfg.RateLimit = 1000
	return NewRateLimitedHTTPClient(cfg, testLogger())
}

func TestOddsAPIClientFetchOdds(t *testing.T) {
	payload := `[
		{
			"id": "abc123",
			"sport_key": "americanfootball_nfl",
			"commence_time": "2026-09-13T17:00:00Z",
			"home_team": "Kansas City Chiefs",
			"away_team": "Buffalo Bills",
			"bookmakers": [
				{
					"key": "draftkings",
					"title": "DraftKings",
					"markets": [
						{
							"key": "h2h",
							"outcomes": [
								{"name": "Kansas City Chiefs", "price": -150},
								{"name": "Buffalo Bills", "price": 130}
							]
						},
						{
							"key": "spreads",
							"outcomes": [
								{"name": "Kansas City Chiefs", "price": -110, "point": -2.5},
								{"name": "Buffalo Bills", "price": -110, "point": 2.5}
							]
						}
					]
				}
			]
		}
	]`

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/sports/americanfootball_nfl/odds", r.URL.Path)
		assert.Equal(t, "secret", r.URL.Query().Get("api_key"))
		assert.Equal(t, "american", r.URL.Query().Get("oddsFormat"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(payload))
	}))
	defer server.Close()

	client := NewOddsAPIClient(testHTTPClient(), OddsAPIConfig{
		BaseURL: server.URL,
		APIKey:  "secret",
		Sport:   "americanfootball_nfl",
	}, testLogger())

	events, err := client.FetchOdds(context.Background())
	require.NoError(t, err)
	require.Len(t, events, 1)

	event := events[0]
	assert.Equal(t, "abc123", event.ID)
	assert.Equal(t, "Kansas City Chiefs", event.HomeTeam)
	require.Len(t, event.Bookmakers, 1)
	require.Len(t, event.Bookmakers[0].Markets, 2)

	spread := event.Bookmakers[0].Markets[1]
	require.NotNil(t, spread.Outcomes[0].Point)
	assert.InDelta(t, -2.5, *spread.Outcomes[0].Point, 1e-9)
	assert.Nil(t, event.Bookmakers[0].Markets[0].Outcomes[0].Point)
}

func TestOddsAPIClientEmptyResponseIsNotAnError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	}))
	defer server.Close()

	client := NewOddsAPIClient(testHTTPClient(), OddsAPIConfig{
		BaseURL: server.URL,
		Sport:   "americanfootball_nfl",
	}, testLogger())

	events, err := client.FetchOdds(context.Background())
	require.NoError(t, err)
	assert.Empty(t, events)
}

func TestOddsAPIClientSurfacesStatusAndBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"message":"unknown sport"}`))
	}))
	defer server.Close()

	client := NewOddsAPIClient(testHTTPClient(), OddsAPIConfig{
		BaseURL: server.URL,
		Sport:   "curling",
	}, testLogger())

	_, err := client.FetchOdds(context.Background())
	require.Error(t, err)

	var dsErr DataSourceError
	require.True(t, errors.As(err, &dsErr))
	assert.Equal(t, ErrCodeServerError, dsErr.Code)
	assert.Contains(t, dsErr.Message, "422")
	assert.Contains(t, dsErr.Message, "unknown sport")
	assert.True(t, errors.Is(err, ErrSourceUnavailable))
}

func TestOddsAPIClientAuthFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	client := NewOddsAPIClient(testHTTPClient(), OddsAPIConfig{
		BaseURL: server.URL,
		Sport:   "americanfootball_nfl",
	}, testLogger())

	_, err := client.FetchOdds(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrAuthenticationFailed))
}

func TestNFLVerseClientFetchPlays(t *testing.T) {
	payload := `[
		{
			"game_id": "2022_01_BUF_LAR",
			"posteam": "BUF",
			"home_team": "LAR",
			"away_team": "BUF",
			"total_home_score": 10,
			"total_away_score": 31,
			"posteam_score": 31,
			"defteam_score": 10,
			"total_home_epa": -8.2,
			"total_away_epa": 12.4,
			"play_id": 4021
		},
		{
			"game_id": "2022_01_BUF_LAR",
			"posteam": "LAR",
			"home_team": "LAR",
			"away_team": "BUF",
			"play_id": 4022
		}
	]`

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/pbp/play_by_play_2022.json", r.URL.Path)
		_, _ = w.Write([]byte(payload))
	}))
	defer server.Close()

	client := NewNFLVerseClient(testHTTPClient(), server.URL, testLogger())

	plays, err := client.FetchPlays(context.Background(), []int{2022})
	require.NoError(t, err)
	require.Len(t, plays, 2)

	assert.Equal(t, "BUF", plays[0].PossessionTeam)
	require.NotNil(t, plays[0].TotalAwayScore)
	assert.InDelta(t, 31, *plays[0].TotalAwayScore, 1e-9)

	// Fields absent in the feed stay nil for downstream imputation.
	assert.Nil(t, plays[1].PosTeamScore)
	assert.Nil(t, plays[1].TotalHomeEPA)
}

func TestNFLVerseClientFetchScheduleKeepsRawColumns(t *testing.T) {
	payload := `[
		{
			"game_id": "2026_01_BUF_KC",
			"home_team": "KC",
			"away_team": "BUF",
			"gameday": "2026-09-13",
			"week": 1
		}
	]`

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/schedules/schedule_2026.json", r.URL.Path)
		_, _ = w.Write([]byte(payload))
	}))
	defer server.Close()

	client := NewNFLVerseClient(testHTTPClient(), server.URL, testLogger())

	rows, err := client.FetchSchedule(context.Background(), 2026)
	require.NoError(t, err)
	require.Len(t, rows, 1)

	row := rows[0]
	assert.Equal(t, "2026_01_BUF_KC", row.GameID)
	assert.Equal(t, "KC", row.HomeTeam)
	assert.Equal(t, "2026-09-13", row.Columns["gameday"])
	assert.Equal(t, "1", row.Columns["week"])
}

type stubMarketSource struct {
	calls  int
	events []OddsEvent
	err    error
}

func (s *stubMarketSource) FetchOdds(ctx context.Context) ([]OddsEvent, error) {
	s.calls++
	return s.events, s.err
}

func (s *stubMarketSource) Name() string { return "stub" }

func TestCachedMarketSource(t *testing.T) {
	stub := &stubMarketSource{events: []OddsEvent{{ID: "one"}}}
	cached := NewCachedMarketSource(stub, time.Minute)

	first, err := cached.FetchOdds(context.Background())
	require.NoError(t, err)
	second, err := cached.FetchOdds(context.Background())
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, stub.calls, "second fetch should come from cache")

	hits, misses := cached.Stats()
	assert.Equal(t, uint64(1), hits)
	assert.Equal(t, uint64(1), misses)
}

func TestCachedMarketSourceRefetchesOnForeignCacheEntry(t *testing.T) {
	stub := &stubMarketSource{events: []OddsEvent{{ID: "one"}}}
	cached := NewCachedMarketSource(stub, time.Minute)
	cached.cache.SetDefault(oddsCacheKey, "not an odds slice")

	events, err := cached.FetchOdds(context.Background())
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, 1, stub.calls, "foreign entry should fall through to the source")

	hits, misses := cached.Stats()
	assert.Equal(t, uint64(0), hits)
	assert.Equal(t, uint64(1), misses)
}

func TestCachedMarketSourceDoesNotCacheErrors(t *testing.T) {
	stub := &stubMarketSource{err: errors.New("boom")}
	cached := NewCachedMarketSource(stub, time.Minute)

	_, err := cached.FetchOdds(context.Background())
	require.Error(t, err)
	_, err = cached.FetchOdds(context.Background())
	require.Error(t, err)

	assert.Equal(t, 2, stub.calls)
}
