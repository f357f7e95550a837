package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/gridiron-edge/internal/datasource"
	"github.com/yourusername/gridiron-edge/internal/metrics"
	"github.com/yourusername/gridiron-edge/internal/model"
	"github.com/yourusername/gridiron-edge/internal/models"
	"github.com/yourusername/gridiron-edge/internal/storage"
)

// Short-circuit reasons reported when a run ends early with no recommendations.
const (
	ReasonNoQuotes           = "no market quotes available"
	ReasonNoUpcomingGames    = "no upcoming games in schedule"
	ReasonNoUpcomingFeatures = "no upcoming teams with historical aggregates"
)

// RunResult is the outcome of one pipeline run. Reason is set only when the
// run short-circuited with no recommendations; an empty Bets slice with an
// empty Reason means the market simply offered no positive edge.
type RunResult struct {
	Run       models.RecommendationRun     `json:"run"`
	Estimates []models.ProbabilityEstimate `json:"estimates,omitempty"`
	Bets      []models.RecommendedBet      `json:"bets"`
	Reason    string                       `json:"reason,omitempty"`
}

// RecommendationConfig carries the run parameters for the pipeline.
type RecommendationConfig struct {
	// Seasons to pull historical play-by-play for.
	Seasons []int

	// ScheduleSeason is the season whose schedule is filtered for upcoming games.
	ScheduleSeason int

	// Bankroll sizes the Kelly stakes.
	Bankroll decimal.Decimal

	// Train controls model fitting, including the seed.
	Train model.TrainConfig
}

// RecommendationService runs the full pipeline: historical aggregation,
// feature building, model training, schedule filtering, inference, and bet
// selection. Every stage passes data in memory; snapshots go through the
// artifact store as a side effect.
type RecommendationService struct {
	historical datasource.HistoricalSource
	market     datasource.MarketSource
	store      storage.ArtifactStore

	aggregator *HistoricalAggregator
	normalizer *MarketLinesNormalizer
	filter     *ScheduleFilter
	resolver   *TeamResolver
	selector   *BetSelector

	cfg    RecommendationConfig
	now    func() time.Time
	logger *logrus.Logger
}

// NewRecommendationService wires the pipeline. now supplies the run's
// reference instant and defaults to time.Now; store may be nil to disable
// snapshots.
func NewRecommendationService(
	historical datasource.HistoricalSource,
	market datasource.MarketSource,
	store storage.ArtifactStore,
	resolver *TeamResolver,
	cfg RecommendationConfig,
	now func() time.Time,
	logger *logrus.Logger,
) *RecommendationService {
	if now == nil {
		now = time.Now
	}
	if store == nil {
		store = storage.NopStore{}
	}
	return &RecommendationService{
		historical: historical,
		market:     market,
		store:      store,
		aggregator: NewHistoricalAggregator(logger),
		normalizer: NewMarketLinesNormalizer(logger),
		filter:     NewScheduleFilter(now, logger),
		resolver:   resolver,
		selector:   NewBetSelector(resolver, logger),
		cfg:        cfg,
		now:        now,
		logger:     logger,
	}
}

// Run executes one end-to-end pipeline pass. Upstream fetch failures and
// model-training failures abort the run; empty intermediate stages
// short-circuit to an empty result with a reason.
func (s *RecommendationService) Run(ctx context.Context) (*RunResult, error) {
	started := s.now()
	run := models.RecommendationRun{
		ID:        uuid.New(),
		StartedAt: started,
	}
	log := s.logger.WithField("run_id", run.ID)
	log.Info("Starting recommendation run")

	result, err := s.run(ctx, &run, log)
	run.FinishedAt = s.now()
	elapsed := run.Duration().Seconds()

	if err != nil {
		metrics.RecordPipelineRun("error", elapsed)
		log.WithError(err).Error("Recommendation run failed")
		return nil, err
	}

	result.Run = run
	metrics.RecordPipelineRun("success", elapsed)
	metrics.RecordRecommendations(run.BetCount)
	if err := s.store.SaveJSON("run_summary", result); err != nil {
		log.WithError(err).Warn("Failed to persist run summary")
	}

	log.WithFields(logrus.Fields{
		"bets":       run.BetCount,
		"quotes":     run.QuoteCount,
		"upcoming":   run.UpcomingGames,
		"historical": run.HistoricalGames,
		"duration":   run.Duration(),
	}).Info("Recommendation run complete")
	return result, nil
}

func (s *RecommendationService) run(ctx context.Context, run *models.RecommendationRun, log *logrus.Entry) (*RunResult, error) {
	plays, err := s.fetchPlays(ctx)
	if err != nil {
		return nil, err
	}

	events, err := s.fetchOdds(ctx)
	if err != nil {
		return nil, err
	}

	quotes := s.normalizer.Normalize(events)
	run.QuoteCount = len(quotes)
	metrics.UpdateQuoteCount(len(quotes))
	if len(quotes) == 0 {
		log.Info("No market quotes available, nothing to recommend")
		return &RunResult{Reason: ReasonNoQuotes}, nil
	}
	if err := s.store.SaveJSON("market_quotes", quotes); err != nil {
		log.WithError(err).Warn("Failed to persist quote snapshot")
	}

	records := s.aggregator.Aggregate(plays)
	run.HistoricalGames = countGames(records)
	featureRows := BuildFeatures(records)

	fitted, err := model.Train(featureRows, s.cfg.Train)
	if err != nil {
		return nil, fmt.Errorf("failed to train model: %w", err)
	}
	run.ModelAccuracy = fitted.Accuracy()
	metrics.UpdateModelAccuracy(fitted.Accuracy())
	log.WithField("accuracy", fitted.Accuracy()).Info("Fitted win probability model")

	upcoming, err := s.fetchUpcoming(ctx)
	if err != nil {
		return nil, err
	}
	run.UpcomingGames = len(upcoming)
	if len(upcoming) == 0 {
		log.Info("Schedule has no upcoming games")
		return &RunResult{Reason: ReasonNoUpcomingGames}, nil
	}

	aggregates := BuildTeamAggregates(featureRows)
	upcomingRows := BuildUpcomingFeatures(upcoming, aggregates)
	if len(upcomingRows) == 0 {
		log.Warn("No upcoming team has historical aggregates")
		return &RunResult{Reason: ReasonNoUpcomingFeatures}, nil
	}

	estimates := s.estimate(fitted, upcomingRows)
	if err := s.store.SaveJSON("probability_estimates", estimates); err != nil {
		log.WithError(err).Warn("Failed to persist estimate snapshot")
	}

	candidates, unmatched := s.selector.Join(quotes, estimates)
	run.UnmatchedTeams = unmatched
	metrics.RecordUnmatchedTeams(unmatched)

	bets := s.selector.Select(candidates, run.ID, s.cfg.Bankroll, run.StartedAt)
	run.BetCount = len(bets)
	if err := s.store.SaveRecommendations("recommended_bets", bets); err != nil {
		log.WithError(err).Warn("Failed to persist recommendation table")
	}

	return &RunResult{Estimates: estimates, Bets: bets}, nil
}

func (s *RecommendationService) fetchPlays(ctx context.Context) ([]datasource.PlayRecord, error) {
	start := time.Now()
	plays, err := s.historical.FetchPlays(ctx, s.cfg.Seasons)
	metrics.RecordFetchDuration(s.historical.Name(), time.Since(start).Seconds())
	if err != nil {
		return nil, fmt.Errorf("failed to fetch historical plays: %w", err)
	}
	if len(plays) == 0 {
		return nil, fmt.Errorf("%w: seasons %v", models.ErrNoPlayData, s.cfg.Seasons)
	}
	return plays, nil
}

func (s *RecommendationService) fetchOdds(ctx context.Context) ([]datasource.OddsEvent, error) {
	start := time.Now()
	events, err := s.market.FetchOdds(ctx)
	metrics.RecordFetchDuration(s.market.Name(), time.Since(start).Seconds())
	if err != nil {
		return nil, fmt.Errorf("failed to fetch market odds: %w", err)
	}
	return events, nil
}

func (s *RecommendationService) fetchUpcoming(ctx context.Context) ([]models.ScheduleEntry, error) {
	start := time.Now()
	rows, err := s.historical.FetchSchedule(ctx, s.cfg.ScheduleSeason)
	metrics.RecordFetchDuration(s.historical.Name(), time.Since(start).Seconds())
	if err != nil {
		return nil, fmt.Errorf("failed to fetch schedule: %w", err)
	}
	return s.filter.UpcomingGames(rows)
}

// estimate runs inference over the upcoming feature rows and resolves each
// team code to its canonical name for the market join. Codes without a mapping
// pass through unchanged and drop in the inner join.
func (s *RecommendationService) estimate(fitted *model.FittedModel, rows []UpcomingFeatureRow) []models.ProbabilityEstimate {
	vectors := make([][]float64, len(rows))
	for i := range rows {
		vectors[i] = rows[i].Features
	}
	probs := fitted.PredictProba(vectors)

	estimates := make([]models.ProbabilityEstimate, len(rows))
	for i := range rows {
		canonical, ok := s.resolver.CanonicalFromCode(rows[i].Team)
		if !ok {
			canonical = rows[i].Team
		}
		estimates[i] = models.ProbabilityEstimate{
			GameID:      rows[i].GameID,
			Team:        rows[i].Team,
			Canonical:   canonical,
			HomeAway:    rows[i].HomeAway,
			Probability: probs[i],
		}
	}
	return estimates
}

func countGames(records []models.GameTeamRecord) int {
	seen := make(map[string]struct{}, len(records))
	for i := range records {
		seen[records[i].GameID] = struct{}{}
	}
	return len(seen)
}
