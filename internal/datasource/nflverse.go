package datasource

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
)

const nflverseSourceName = "nflverse"

// NFLVerseClient implements HistoricalSource against the nflverse data
// releases: per-season play-by-play and schedule documents.
type NFLVerseClient struct {
	httpClient *RateLimitedHTTPClient
	baseURL    string
	logger     *log.Logger
}

// NewNFLVerseClient creates a new nflverse client
func NewNFLVerseClient(httpClient *RateLimitedHTTPClient, baseURL string, logger *log.Logger) *NFLVerseClient {
	if baseURL == "" {
		baseURL = "https://github.com/nflverse/nflverse-data/releases/download"
	}
	return &NFLVerseClient{
		httpClient: httpClient,
		baseURL:    baseURL,
		logger:     logger,
	}
}

// Name returns the data source name
func (c *NFLVerseClient) Name() string {
	return nflverseSourceName
}

// FetchPlays retrieves play-by-play records for the given seasons. A fetch
// failure for any season aborts the whole call; this run is then over.
func (c *NFLVerseClient) FetchPlays(ctx context.Context, seasons []int) ([]PlayRecord, error) {
	var plays []PlayRecord
	for _, season := range seasons {
		url := fmt.Sprintf("%s/pbp/play_by_play_%d.json", c.baseURL, season)

		seasonPlays, err := c.fetchSeasonPlays(ctx, url)
		if err != nil {
			return nil, err
		}

		c.logger.Printf("Fetched %d plays for season %d", len(seasonPlays), season)
		plays = append(plays, seasonPlays...)
	}
	return plays, nil
}

func (c *NFLVerseClient) fetchSeasonPlays(ctx context.Context, url string) ([]PlayRecord, error) {
	resp, err := c.httpClient.Get(ctx, url)
	if err != nil {
		return nil, NewDataSourceError(nflverseSourceName, ErrCodeNetworkError, "failed to fetch play-by-play data", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, NewDataSourceError(nflverseSourceName, ErrCodeServerError,
			fmt.Sprintf("unexpected status %d: %s", resp.StatusCode, string(body)), nil)
	}

	var plays []PlayRecord
	if err := json.NewDecoder(resp.Body).Decode(&plays); err != nil {
		return nil, NewDataSourceError(nflverseSourceName, ErrCodeInvalidData, "failed to parse play-by-play response", err)
	}

	return plays, nil
}

// FetchSchedule retrieves the full schedule for one season. Column names for
// the game date have changed across releases, so non-identity fields are kept
// as raw string columns for the schedule filter to resolve.
func (c *NFLVerseClient) FetchSchedule(ctx context.Context, season int) ([]ScheduleRow, error) {
	url := fmt.Sprintf("%s/schedules/schedule_%d.json", c.baseURL, season)

	resp, err := c.httpClient.Get(ctx, url)
	if err != nil {
		return nil, NewDataSourceError(nflverseSourceName, ErrCodeNetworkError, "failed to fetch schedule", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, NewDataSourceError(nflverseSourceName, ErrCodeServerError,
			fmt.Sprintf("unexpected status %d: %s", resp.StatusCode, string(body)), nil)
	}

	var raw []map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, NewDataSourceError(nflverseSourceName, ErrCodeInvalidData, "failed to parse schedule response", err)
	}

	rows := make([]ScheduleRow, 0, len(raw))
	for _, entry := range raw {
		rows = append(rows, convertScheduleRow(entry))
	}

	c.logger.Printf("Fetched %d schedule rows for season %d", len(rows), season)
	return rows, nil
}

func convertScheduleRow(entry map[string]interface{}) ScheduleRow {
	row := ScheduleRow{Columns: make(map[string]string, len(entry))}
	for key, value := range entry {
		str, ok := stringifyColumn(value)
		if !ok {
			continue
		}
		switch key {
		case "game_id":
			row.GameID = str
		case "home_team":
			row.HomeTeam = str
		case "away_team":
			row.AwayTeam = str
		default:
			row.Columns[key] = str
		}
	}
	return row
}

func stringifyColumn(value interface{}) (string, bool) {
	switch v := value.(type) {
	case string:
		return v, true
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true
	case bool:
		return strconv.FormatBool(v), true
	default:
		return "", false
	}
}
