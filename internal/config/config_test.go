package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testConfigYAML = `
app:
  name: gridiron-edge
  environment: development
  log_level: debug

database:
  enabled: false

historical:
  base_url: https://example.com/nflverse
  start_season: 2022
  end_season: 2024
  schedule_season: 2025
  timeout_seconds: 60

odds:
  base_url: https://api.the-odds-api.com/v4
  api_key: ${TEST_ODDS_API_KEY}
  sport: americanfootball_nfl
  regions: us
  markets: h2h,spreads
  odds_format: american
  date_format: iso
  timeout_seconds: 30
  cache_ttl_seconds: 300
  requests_per_second: 1

model:
  trees: 100
  max_depth: 12
  min_samples_leaf: 2
  test_size: 0.2
  cv_folds: 5
  seed: 1

trading:
  bankroll: 1000.0

storage:
  snapshots_enabled: true
  output_dir: output

metrics:
  enabled: true
  port: 9090
  path: /metrics

scheduler:
  enabled: false
  cron: "0 6 * * *"
`

func writeTestConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadExpandsEnvironmentPlaceholders(t *testing.T) {
	t.Setenv("TEST_ODDS_API_KEY", "secret-key-123")

	cfg, err := Load(writeTestConfig(t, testConfigYAML))
	require.NoError(t, err)

	assert.Equal(t, "gridiron-edge", cfg.App.Name)
	assert.Equal(t, "secret-key-123", cfg.Odds.APIKey)
	assert.Equal(t, 2022, cfg.Historical.StartSeason)
	assert.Equal(t, []int{2022, 2023, 2024}, cfg.Seasons())
	assert.True(t, cfg.IsDevelopment())
	assert.False(t, cfg.Database.Enabled)
}

func TestLoadMissingFileIsError(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config file not found")
}

func TestLoadWithDefaultsFillsGaps(t *testing.T) {
	minimal := `
app:
  name: gridiron-edge
odds:
  api_key: abc123
historical:
  start_season: 2023
  end_season: 2024
  schedule_season: 2025
trading:
  bankroll: 500
`
	cfg, err := LoadWithDefaults(writeTestConfig(t, minimal))
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Environment)
	assert.Equal(t, "info", cfg.App.LogLevel)
	assert.Equal(t, "americanfootball_nfl", cfg.Odds.Sport)
	assert.Equal(t, "h2h,spreads", cfg.Odds.Markets)
	assert.Equal(t, "american", cfg.Odds.OddsFormat)
	assert.Equal(t, 100, cfg.Model.Trees)
	assert.Equal(t, 0.2, cfg.Model.TestSize)
	assert.Equal(t, 9090, cfg.Metrics.Port)
}

func TestValidateAcceptsCompleteConfig(t *testing.T) {
	t.Setenv("TEST_ODDS_API_KEY", "real-key")

	cfg, err := Load(writeTestConfig(t, testConfigYAML))
	require.NoError(t, err)
	assert.NoError(t, Validate(cfg))
}

func TestValidateRejectsBadEnvironment(t *testing.T) {
	t.Setenv("TEST_ODDS_API_KEY", "real-key")

	cfg, err := Load(writeTestConfig(t, testConfigYAML))
	require.NoError(t, err)

	cfg.App.Environment = "qa"
	err = Validate(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "development, staging, production")
}

func TestValidateRejectsInvertedSeasonRange(t *testing.T) {
	t.Setenv("TEST_ODDS_API_KEY", "real-key")

	cfg, err := Load(writeTestConfig(t, testConfigYAML))
	require.NoError(t, err)

	cfg.Historical.StartSeason = 2025
	cfg.Historical.EndSeason = 2022
	err = Validate(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "start_season")
}

func TestValidateRejectsTestKeyInProduction(t *testing.T) {
	t.Setenv("TEST_ODDS_API_KEY", "demo-key")

	cfg, err := Load(writeTestConfig(t, testConfigYAML))
	require.NoError(t, err)

	cfg.App.Environment = "production"
	err = Validate(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "test odds API key")
}

func TestValidateRejectsEnabledDatabaseWithoutHost(t *testing.T) {
	t.Setenv("TEST_ODDS_API_KEY", "real-key")

	cfg, err := Load(writeTestConfig(t, testConfigYAML))
	require.NoError(t, err)

	cfg.Database.Enabled = true
	err = Validate(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database is enabled")
}

func TestGetDatabaseDSN(t *testing.T) {
	cfg := &Config{Database: DatabaseConfig{
		Host: "localhost", Port: 5432, Name: "gridiron", User: "app",
		Password: "pw", SSLMode: "disable",
	}}
	assert.Equal(t, "postgres://app:pw@localhost:5432/gridiron?sslmode=disable", cfg.GetDatabaseDSN())
}
