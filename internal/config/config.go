// Package config provides configuration management for the Gridiron Edge application.
package config

import (
	"fmt"
)

// Config represents the complete application configuration
type Config struct {
	App        AppConfig        `mapstructure:"app" validate:"required"`
	Database   DatabaseConfig   `mapstructure:"database"`
	Historical HistoricalConfig `mapstructure:"historical" validate:"required"`
	Odds       OddsConfig       `mapstructure:"odds" validate:"required"`
	Model      ModelConfig      `mapstructure:"model" validate:"required"`
	Trading    TradingConfig    `mapstructure:"trading" validate:"required"`
	Storage    StorageConfig    `mapstructure:"storage"`
	Metrics    MetricsConfig    `mapstructure:"metrics"`
	Scheduler  SchedulerConfig  `mapstructure:"scheduler"`
}

// AppConfig represents application-level configuration
type AppConfig struct {
	Name        string `mapstructure:"name" validate:"required"`
	Environment string `mapstructure:"environment" validate:"required,environment"`
	LogLevel    string `mapstructure:"log_level" validate:"required,loglevel"`
}

// DatabaseConfig represents database connection configuration. Persistence is
// optional; when Enabled is false the rest of the section is ignored.
type DatabaseConfig struct {
	Enabled            bool   `mapstructure:"enabled"`
	Host               string `mapstructure:"host"`
	Port               int    `mapstructure:"port" validate:"omitempty,min=1,max=65535"`
	Name               string `mapstructure:"name"`
	User               string `mapstructure:"user"`
	Password           string `mapstructure:"password"`
	SSLMode            string `mapstructure:"ssl_mode" validate:"omitempty,oneof=disable require verify-full"`
	MaxConnections     int    `mapstructure:"max_connections" validate:"omitempty,gt=0"`
	MaxIdleConnections int    `mapstructure:"max_idle_connections" validate:"omitempty,gt=0"`
}

// HistoricalConfig represents the historical play-by-play provider configuration
type HistoricalConfig struct {
	BaseURL        string `mapstructure:"base_url" validate:"required,url"`
	StartSeason    int    `mapstructure:"start_season" validate:"required,min=1999"`
	EndSeason      int    `mapstructure:"end_season" validate:"required,min=1999"`
	ScheduleSeason int    `mapstructure:"schedule_season" validate:"required,min=1999"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds" validate:"required,gt=0"`
}

// OddsConfig represents the odds provider configuration
type OddsConfig struct {
	BaseURL           string  `mapstructure:"base_url" validate:"required,url"`
	APIKey            string  `mapstructure:"api_key" validate:"required"`
	Sport             string  `mapstructure:"sport" validate:"required"`
	Regions           string  `mapstructure:"regions" validate:"required"`
	Markets           string  `mapstructure:"markets" validate:"required"`
	OddsFormat        string  `mapstructure:"odds_format" validate:"required,oneof=american decimal"`
	DateFormat        string  `mapstructure:"date_format" validate:"required,oneof=iso unix"`
	TimeoutSeconds    int     `mapstructure:"timeout_seconds" validate:"required,gt=0"`
	CacheTTLSeconds   int     `mapstructure:"cache_ttl_seconds" validate:"gte=0"`
	RequestsPerSecond float64 `mapstructure:"requests_per_second" validate:"required,gt=0"`
}

// ModelConfig represents model training configuration
type ModelConfig struct {
	Trees          int     `mapstructure:"trees" validate:"required,gt=0"`
	MaxDepth       int     `mapstructure:"max_depth" validate:"required,gt=0"`
	MinSamplesLeaf int     `mapstructure:"min_samples_leaf" validate:"required,gt=0"`
	TestSize       float64 `mapstructure:"test_size" validate:"required,gt=0,lt=1"`
	CVFolds        int     `mapstructure:"cv_folds" validate:"required,min=2"`
	Seed           int64   `mapstructure:"seed"`
}

// TradingConfig represents stake sizing configuration
type TradingConfig struct {
	Bankroll float64 `mapstructure:"bankroll" validate:"required,gt=0"`
}

// StorageConfig represents artifact snapshot configuration
type StorageConfig struct {
	SnapshotsEnabled bool   `mapstructure:"snapshots_enabled"`
	OutputDir        string `mapstructure:"output_dir"`
}

// MetricsConfig represents metrics and monitoring configuration
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Port    int    `mapstructure:"port" validate:"omitempty,min=1,max=65535"`
	Path    string `mapstructure:"path"`
}

// SchedulerConfig represents the daemon's cron configuration
type SchedulerConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Cron    string `mapstructure:"cron"`
}

// IsDevelopment checks if the application is running in development mode
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}

// IsStaging checks if the application is running in staging mode
func (c *Config) IsStaging() bool {
	return c.App.Environment == "staging"
}

// IsProduction checks if the application is running in production mode
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// Seasons returns the inclusive historical season range.
func (c *Config) Seasons() []int {
	if c.Historical.EndSeason < c.Historical.StartSeason {
		return nil
	}
	seasons := make([]int, 0, c.Historical.EndSeason-c.Historical.StartSeason+1)
	for s := c.Historical.StartSeason; s <= c.Historical.EndSeason; s++ {
		seasons = append(seasons, s)
	}
	return seasons
}

// GetDatabaseDSN returns a PostgreSQL DSN string
func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}
