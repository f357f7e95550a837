// Package main provides the one-shot recommendation pipeline command.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/yourusername/gridiron-edge/internal/config"
	"github.com/yourusername/gridiron-edge/internal/database"
	"github.com/yourusername/gridiron-edge/internal/datasource"
	"github.com/yourusername/gridiron-edge/internal/logger"
	"github.com/yourusername/gridiron-edge/internal/model"
	"github.com/yourusername/gridiron-edge/internal/repository"
	"github.com/yourusername/gridiron-edge/internal/service"
	"github.com/yourusername/gridiron-edge/internal/storage"
)

// Build information - set via ldflags
var Version = "dev"

var (
	configFile string
	cfg        *config.Config
	appLog     *logrus.Logger
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "./config/config.yaml", "Path to configuration file")
}

var rootCmd = &cobra.Command{
	Use:   "recommend",
	Short: "Run the wager recommendation pipeline once",
	Long: `Fetches historical play-by-play data and current sportsbook odds, trains a
win probability model, and prints positive-edge bets with Kelly stake sizing.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.LoadWithDefaults(configFile)
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}

		if os.Getenv("AWS_SECRETS_ENABLED") == "true" {
			region := os.Getenv("AWS_REGION")
			secretName := os.Getenv("AWS_SECRET_NAME")
			if region == "" || secretName == "" {
				return fmt.Errorf("AWS_REGION and AWS_SECRET_NAME must be set when AWS_SECRETS_ENABLED is true")
			}
			if err := config.LoadSecretsFromAWS(cfg, region, secretName); err != nil {
				return fmt.Errorf("failed to load secrets: %w", err)
			}
		}

		if err := config.Validate(cfg); err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}

		appLog = logger.NewLogger(cfg.App.LogLevel)
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runOnce(cmd.Context())
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func runOnce(ctx context.Context) error {
	svc, err := buildService(cfg, appLog)
	if err != nil {
		return err
	}

	result, err := svc.Run(ctx)
	if err != nil {
		return fmt.Errorf("pipeline run failed: %w", err)
	}

	if cfg.Database.Enabled {
		if err := persistRun(ctx, result); err != nil {
			appLog.WithError(err).Error("Failed to persist run")
		}
	}

	printResult(result)
	return nil
}

// buildService wires data sources, the artifact store, and the pipeline from
// configuration.
func buildService(cfg *config.Config, appLog *logrus.Logger) (*service.RecommendationService, error) {
	httpLogger := log.New(os.Stdout, "datasource: ", log.LstdFlags)

	histCfg := datasource.DefaultHTTPClientConfig()
	histCfg.Timeout = time.Duration(cfg.Historical.TimeoutSeconds) * time.Second
	historical := datasource.NewNFLVerseClient(
		datasource.NewRateLimitedHTTPClient(histCfg, httpLogger),
		cfg.Historical.BaseURL,
		httpLogger,
	)

	oddsHTTPCfg := datasource.DefaultHTTPClientConfig()
	oddsHTTPCfg.Timeout = time.Duration(cfg.Odds.TimeoutSeconds) * time.Second
	oddsHTTPCfg.RateLimit = cfg.Odds.RequestsPerSecond
	var market datasource.MarketSource = datasource.NewOddsAPIClient(
		datasource.NewRateLimitedHTTPClient(oddsHTTPCfg, httpLogger),
		datasource.OddsAPIConfig{
			BaseURL:    cfg.Odds.BaseURL,
			APIKey:     cfg.Odds.APIKey,
			Sport:      cfg.Odds.Sport,
			Regions:    cfg.Odds.Regions,
			Markets:    cfg.Odds.Markets,
			OddsFormat: cfg.Odds.OddsFormat,
			DateFormat: cfg.Odds.DateFormat,
		},
		httpLogger,
	)
	if cfg.Odds.CacheTTLSeconds > 0 {
		market = datasource.NewCachedMarketSource(market, time.Duration(cfg.Odds.CacheTTLSeconds)*time.Second)
	}

	var store storage.ArtifactStore = storage.NopStore{}
	if cfg.Storage.SnapshotsEnabled {
		fileStore, err := storage.NewFileStore(cfg.Storage.OutputDir)
		if err != nil {
			return nil, fmt.Errorf("failed to create artifact store: %w", err)
		}
		store = fileStore
	}

	resolver := service.NewTeamResolver(service.DefaultTeamCodes(), service.DefaultMarketAliases())

	svcCfg := service.RecommendationConfig{
		Seasons:        cfg.Seasons(),
		ScheduleSeason: cfg.Historical.ScheduleSeason,
		Bankroll:       decimal.NewFromFloat(cfg.Trading.Bankroll),
		Train: model.TrainConfig{
			Forest: model.ForestConfig{
				Trees:          cfg.Model.Trees,
				MaxDepth:       cfg.Model.MaxDepth,
				MinSamplesLeaf: cfg.Model.MinSamplesLeaf,
			},
			TestSize: cfg.Model.TestSize,
			CVFolds:  cfg.Model.CVFolds,
			Seed:     cfg.Model.Seed,
		},
	}

	return service.NewRecommendationService(historical, market, store, resolver, svcCfg, nil, appLog), nil
}

func persistRun(ctx context.Context, result *service.RunResult) error {
	db, err := database.NewDB(ctx, &cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	repo := repository.NewPostgresRecommendationRepository(db)
	if err := repo.CreateRun(ctx, &result.Run); err != nil {
		return err
	}
	return repo.InsertBets(ctx, result.Bets)
}

func printResult(result *service.RunResult) {
	run := result.Run
	fmt.Printf("\nRun %s finished in %s\n", run.ID, run.Duration().Round(time.Millisecond))
	fmt.Printf("  model accuracy:   %.3f\n", run.ModelAccuracy)
	fmt.Printf("  historical games: %d\n", run.HistoricalGames)
	fmt.Printf("  upcoming games:   %d\n", run.UpcomingGames)
	fmt.Printf("  market quotes:    %d (unmatched: %d)\n", run.QuoteCount, run.UnmatchedTeams)

	if result.Reason != "" {
		fmt.Printf("\nNo recommendations: %s\n", result.Reason)
		return
	}
	if len(result.Bets) == 0 {
		fmt.Println("\nNo positive-edge bets found.")
		return
	}

	fmt.Printf("\nRecommended bets (%d):\n", len(result.Bets))
	fmt.Printf("%-28s %-14s %-8s %7s %7s %7s %9s\n",
		"TEAM", "BOOKMAKER", "MARKET", "PRICE", "EDGE", "KELLY", "STAKE")
	for i := range result.Bets {
		bet := &result.Bets[i]
		fmt.Printf("%-28s %-14s %-8s %+7d %7.3f %7.3f %9s\n",
			bet.Team, bet.Bookmaker, bet.Market, bet.Price,
			bet.Edge, bet.KellyFraction, bet.Stake.StringFixed(2))
	}
}
