package datasource

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
)

const oddsAPISourceName = "odds_api"

// OddsAPIConfig holds request parameters for The Odds API.
type OddsAPIConfig struct {
	BaseURL    string
	APIKey     string
	Sport      string
	Regions    string
	Markets    string
	OddsFormat string
	DateFormat string
}

// OddsAPIClient implements MarketSource against The Odds API v4.
type OddsAPIClient struct {
	httpClient *RateLimitedHTTPClient
	cfg        OddsAPIConfig
	logger     *log.Logger
}

// NewOddsAPIClient creates a new Odds API client
func NewOddsAPIClient(httpClient *RateLimitedHTTPClient, cfg OddsAPIConfig, logger *log.Logger) *OddsAPIClient {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.the-odds-api.com/v4"
	}
	if cfg.Regions == "" {
		cfg.Regions = "us"
	}
	if cfg.Markets == "" {
		cfg.Markets = "h2h,spreads"
	}
	if cfg.OddsFormat == "" {
		cfg.OddsFormat = "american"
	}
	if cfg.DateFormat == "" {
		cfg.DateFormat = "iso"
	}
	return &OddsAPIClient{
		httpClient: httpClient,
		cfg:        cfg,
		logger:     logger,
	}
}

// Name returns the data source name
func (c *OddsAPIClient) Name() string {
	return oddsAPISourceName
}

// FetchOdds retrieves the current odds document for the configured sport.
// A response with zero games is a normal, non-error outcome. Any non-success
// status aborts the run and carries the status code and response body.
func (c *OddsAPIClient) FetchOdds(ctx context.Context) ([]OddsEvent, error) {
	requestURL := fmt.Sprintf("%s/sports/%s/odds?%s", c.cfg.BaseURL, c.cfg.Sport, c.queryParams())

	resp, err := c.httpClient.Get(ctx, requestURL)
	if err != nil {
		return nil, NewDataSourceError(oddsAPISourceName, ErrCodeNetworkError, "failed to fetch odds", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return nil, NewDataSourceError(oddsAPISourceName, ErrCodeAuthenticationFailed, "invalid API key", ErrAuthenticationFailed)
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, NewDataSourceError(oddsAPISourceName, ErrCodeRateLimitExceeded, "request quota exceeded", ErrRateLimitExceeded)
	case resp.StatusCode != http.StatusOK:
		body, _ := io.ReadAll(resp.Body)
		return nil, NewDataSourceError(oddsAPISourceName, ErrCodeServerError,
			fmt.Sprintf("failed to get odds: status_code %d, response body %s", resp.StatusCode, string(body)), ErrSourceUnavailable)
	}

	var events []OddsEvent
	if err := json.NewDecoder(resp.Body).Decode(&events); err != nil {
		return nil, NewDataSourceError(oddsAPISourceName, ErrCodeInvalidData, "failed to parse odds response", err)
	}

	c.logger.Printf("Fetched odds for %d events (%s)", len(events), c.cfg.Sport)
	return events, nil
}

func (c *OddsAPIClient) queryParams() string {
	params := url.Values{}
	params.Set("api_key", c.cfg.APIKey)
	params.Set("regions", c.cfg.Regions)
	params.Set("markets", c.cfg.Markets)
	params.Set("oddsFormat", c.cfg.OddsFormat)
	params.Set("dateFormat", c.cfg.DateFormat)
	return params.Encode()
}
