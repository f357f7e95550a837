package datasource

import (
	"context"
	"errors"
	"time"
)

// HistoricalSource defines the interface for fetching historical play data and
// season schedules from an external provider.
type HistoricalSource interface {
	// FetchPlays retrieves play-level records for the given seasons.
	FetchPlays(ctx context.Context, seasons []int) ([]PlayRecord, error)

	// FetchSchedule retrieves the full schedule for one season.
	FetchSchedule(ctx context.Context, season int) ([]ScheduleRow, error)

	// Name returns the name of the data source
	Name() string
}

// MarketSource defines the interface for fetching current market quotes from a
// sportsbook odds provider.
type MarketSource interface {
	// FetchOdds retrieves the current odds document for the configured sport.
	FetchOdds(ctx context.Context) ([]OddsEvent, error)

	// Name returns the name of the data source
	Name() string
}

// PlayRecord is one play-level record from the historical feed. Numeric fields
// are pointers because the feed omits them on administrative plays; downstream
// imputation decides what missing means.
type PlayRecord struct {
	GameID         string   `json:"game_id"`
	PossessionTeam string   `json:"posteam"`
	HomeTeam       string   `json:"home_team"`
	AwayTeam       string   `json:"away_team"`
	TotalHomeScore *float64 `json:"total_home_score"`
	TotalAwayScore *float64 `json:"total_away_score"`
	PosTeamScore   *float64 `json:"posteam_score"`
	DefTeamScore   *float64 `json:"defteam_score"`
	TotalHomeEPA   *float64 `json:"total_home_epa"`
	TotalAwayEPA   *float64 `json:"total_away_epa"`
	PlayID         int64    `json:"play_id"`
}

// ScheduleRow is one raw schedule row. The provider has renamed its date
// column across seasons, so everything beyond the identity fields is kept as
// opaque string columns for the schedule filter to probe.
type ScheduleRow struct {
	GameID   string            `json:"game_id"`
	HomeTeam string            `json:"home_team"`
	AwayTeam string            `json:"away_team"`
	Columns  map[string]string `json:"columns"`
}

// OddsOutcome is a single priced outcome inside a market.
type OddsOutcome struct {
	Name  string   `json:"name"`
	Price int      `json:"price"`
	Point *float64 `json:"point,omitempty"`
}

// OddsMarket is one market (h2h, spreads, totals) offered by a bookmaker.
type OddsMarket struct {
	Key      string        `json:"key"`
	Outcomes []OddsOutcome `json:"outcomes"`
}

// OddsBookmaker is one bookmaker's set of markets for an event.
type OddsBookmaker struct {
	Key     string       `json:"key"`
	Title   string       `json:"title"`
	Markets []OddsMarket `json:"markets"`
}

// OddsEvent is one game in the odds provider's response.
type OddsEvent struct {
	ID           string          `json:"id"`
	SportKey     string          `json:"sport_key"`
	CommenceTime time.Time       `json:"commence_time"`
	HomeTeam     string          `json:"home_team"`
	AwayTeam     string          `json:"away_team"`
	Bookmakers   []OddsBookmaker `json:"bookmakers"`
}

// DataSourceError represents errors from data source operations
type DataSourceError struct {
	Source  string // Data source name
	Code    string // Error code (e.g., "server_error")
	Message string // Error message
	Err     error  // Underlying error
}

func (e DataSourceError) Error() string {
	if e.Err != nil {
		return e.Source + ": " + e.Code + ": " + e.Message + " (" + e.Err.Error() + ")"
	}
	return e.Source + ": " + e.Code + ": " + e.Message
}

func (e DataSourceError) Unwrap() error {
	return e.Err
}

// Common error codes
const (
	ErrCodeRateLimitExceeded    = "rate_limit_exceeded"
	ErrCodeAuthenticationFailed = "authentication_failed"
	ErrCodeInvalidData          = "invalid_data"
	ErrCodeNetworkError         = "network_error"
	ErrCodeServerError          = "server_error"
)

// Sentinel errors for errors.Is checks across the taxonomy.
var (
	ErrRateLimitExceeded    = errors.New("rate limit exceeded")
	ErrAuthenticationFailed = errors.New("authentication failed")
	ErrInvalidData          = errors.New("invalid data format")
	ErrSourceUnavailable    = errors.New("source unavailable")
)

// NewDataSourceError creates a new data source error
func NewDataSourceError(source, code, message string, err error) DataSourceError {
	return DataSourceError{
		Source:  source,
		Code:    code,
		Message: message,
		Err:     err,
	}
}
