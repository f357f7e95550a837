// Package main provides the entry point for the recommendation daemon.
package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/gridiron-edge/internal/config"
	"github.com/yourusername/gridiron-edge/internal/database"
	"github.com/yourusername/gridiron-edge/internal/datasource"
	"github.com/yourusername/gridiron-edge/internal/health"
	"github.com/yourusername/gridiron-edge/internal/logger"
	"github.com/yourusername/gridiron-edge/internal/metrics"
	"github.com/yourusername/gridiron-edge/internal/model"
	"github.com/yourusername/gridiron-edge/internal/repository"
	"github.com/yourusername/gridiron-edge/internal/scheduler"
	"github.com/yourusername/gridiron-edge/internal/service"
	"github.com/yourusername/gridiron-edge/internal/storage"
)

// Build information - set via ldflags
var Version = "dev"

func main() {
	configPath := os.Getenv("GRIDIRON_EDGE_CONFIG_PATH")
	if configPath == "" {
		configPath = "config/config.yaml"
	}

	cfg, err := config.LoadWithDefaults(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if os.Getenv("AWS_SECRETS_ENABLED") == "true" {
		region := os.Getenv("AWS_REGION")
		secretName := os.Getenv("AWS_SECRET_NAME")
		if region == "" || secretName == "" {
			log.Fatalf("AWS_REGION and AWS_SECRET_NAME environment variables must be set when AWS_SECRETS_ENABLED is true")
		}
		if err := config.LoadSecretsFromAWS(cfg, region, secretName); err != nil {
			log.Fatalf("Failed to load secrets: %v", err)
		}
	}

	if err := config.Validate(cfg); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	appLog := logger.NewLogger(cfg.App.LogLevel)
	appLog.WithFields(logrus.Fields{
		"environment": cfg.App.Environment,
		"log_level":   cfg.App.LogLevel,
		"version":     Version,
	}).Info("Gridiron Edge daemon starting")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var db *database.DB
	var repo repository.RecommendationRepository
	if cfg.Database.Enabled {
		db, err = database.NewDB(ctx, &cfg.Database)
		if err != nil {
			appLog.WithError(err).Fatal("Failed to connect to database")
		}
		defer db.Close()
		repo = repository.NewPostgresRecommendationRepository(db)
		appLog.Info("Database connection established")
	}

	svc, err := buildService(cfg, appLog)
	if err != nil {
		appLog.WithError(err).Fatal("Failed to build recommendation service")
	}

	var runner scheduler.PipelineRunner = svc
	if repo != nil {
		runner = &persistingRunner{svc: svc, repo: repo, logger: appLog}
	}

	sched := scheduler.NewScheduler(runner, appLog)
	if err := sched.ScheduleRecommendationRun(cfg.Scheduler.Cron); err != nil {
		appLog.WithError(err).Fatal("Failed to schedule recommendation job")
	}
	if err := sched.Start(); err != nil {
		appLog.WithError(err).Fatal("Failed to start scheduler")
	}

	healthCfg := health.Config{
		ServiceName: cfg.App.Name,
		Version:     Version,
		Logger:      appLog,
	}
	if db != nil {
		healthCfg.DB = db
	}
	healthSrv := health.NewServer(healthCfg)
	if err := healthSrv.Start(ctx); err != nil {
		appLog.WithError(err).Fatal("Failed to start health server")
	}
	healthSrv.SetReady(true)

	var metricsSrv *http.Server
	if cfg.Metrics.Enabled {
		metrics.InitRegistry()
		mux := http.NewServeMux()
		mux.Handle(cfg.Metrics.Path, metrics.Handler())
		metricsSrv = &http.Server{
			Addr:        fmt.Sprintf(":%d", cfg.Metrics.Port),
			Handler:     mux,
			ReadTimeout: 5 * time.Second,
		}
		go func() {
			appLog.WithField("port", cfg.Metrics.Port).Info("Metrics server starting")
			if err := metricsSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				appLog.WithError(err).Error("Metrics server error")
			}
		}()
	}

	appLog.WithFields(logrus.Fields{
		"cron":     cfg.Scheduler.Cron,
		"next_run": sched.GetNextRun(),
	}).Info("Daemon running")

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	sig := <-sigChan
	appLog.WithField("signal", sig).Info("Shutdown signal received")

	cancel()
	if err := sched.Stop(); err != nil {
		appLog.WithError(err).Error("Error stopping scheduler")
	}
	if metricsSrv != nil {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := metricsSrv.Shutdown(shutdownCtx); err != nil {
			appLog.WithError(err).Error("Error stopping metrics server")
		}
		shutdownCancel()
	}

	appLog.Info("Gridiron Edge daemon shut down successfully")
}

// persistingRunner runs the pipeline and persists the outcome.
type persistingRunner struct {
	svc    *service.RecommendationService
	repo   repository.RecommendationRepository
	logger *logrus.Logger
}

func (p *persistingRunner) Run(ctx context.Context) (*service.RunResult, error) {
	result, err := p.svc.Run(ctx)
	if err != nil {
		return nil, err
	}

	if err := p.repo.CreateRun(ctx, &result.Run); err != nil {
		p.logger.WithError(err).Error("Failed to persist run record")
		return result, nil
	}
	if err := p.repo.InsertBets(ctx, result.Bets); err != nil {
		p.logger.WithError(err).Error("Failed to persist recommended bets")
	}
	return result, nil
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
