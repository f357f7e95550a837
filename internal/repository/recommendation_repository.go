package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/yourusername/gridiron-edge/internal/database"
	"github.com/yourusername/gridiron-edge/internal/models"
)

// PostgresRecommendationRepository implements RecommendationRepository for PostgreSQL
type PostgresRecommendationRepository struct {
	db *database.DB
}

// NewPostgresRecommendationRepository creates a new recommendation repository
func NewPostgresRecommendationRepository(db *database.DB) RecommendationRepository {
	return &PostgresRecommendationRepository{db: db}
}

// CreateRun inserts a new pipeline run record
func (r *PostgresRecommendationRepository) CreateRun(ctx context.Context, run *models.RecommendationRun) error {
	query := `
		INSERT INTO recommendation_runs (id, started_at, finished_at, model_accuracy,
		                                 historical_games, upcoming_games, quote_count,
		                                 unmatched_teams, bet_count)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.db.GetPool().Exec(ctx, query,
		run.ID, run.StartedAt, run.FinishedAt, run.ModelAccuracy,
		run.HistoricalGames, run.UpcomingGames, run.QuoteCount,
		run.UnmatchedTeams, run.BetCount,
	)
	if err != nil {
		return fmt.Errorf("failed to create run: %w", err)
	}

	return nil
}

// InsertBets bulk-inserts the recommended bets for a run using COPY
func (r *PostgresRecommendationRepository) InsertBets(ctx context.Context, bets []models.RecommendedBet) error {
	if len(bets) == 0 {
		return nil
	}

	rows := make([][]interface{}, len(bets))
	for i := range bets {
		bet := &bets[i]
		rows[i] = []interface{}{
			bet.ID, bet.RunID, bet.GameID, bet.Team, bet.Bookmaker, bet.Market,
			bet.Price, bet.Probability, bet.ImpliedProb, bet.Edge,
			bet.KellyFraction, bet.Stake, bet.CreatedAt,
		}
	}

	copied, err := r.db.GetPool().CopyFrom(ctx,
		pgx.Identifier{"recommended_bets"},
		[]string{"id", "run_id", "game_id", "team", "bookmaker", "market",
			"price", "probability", "implied_prob", "edge",
			"kelly_fraction", "stake", "created_at"},
		pgx.CopyFromRows(rows),
	)
	if err != nil {
		return fmt.Errorf("failed to copy bets: %w", err)
	}
	if copied != int64(len(bets)) {
		return fmt.Errorf("expected to copy %d bets, copied %d", len(bets), copied)
	}

	return nil
}

// GetRunByID retrieves a pipeline run by ID
func (r *PostgresRecommendationRepository) GetRunByID(ctx context.Context, id uuid.UUID) (*models.RecommendationRun, error) {
	query := `
		SELECT id, started_at, finished_at, model_accuracy, historical_games,
		       upcoming_games, quote_count, unmatched_teams, bet_count
		FROM recommendation_runs WHERE id = $1
	`

	run := &models.RecommendationRun{}
	err := r.db.GetPool().QueryRow(ctx, query, id).Scan(
		&run.ID, &run.StartedAt, &run.FinishedAt, &run.ModelAccuracy, &run.HistoricalGames,
		&run.UpcomingGames, &run.QuoteCount, &run.UnmatchedTeams, &run.BetCount,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}

	return run, nil
}

// GetBetsByRunID retrieves all recommended bets for a run
func (r *PostgresRecommendationRepository) GetBetsByRunID(ctx context.Context, runID uuid.UUID) ([]*models.RecommendedBet, error) {
	query := `
		SELECT id, run_id, game_id, team, bookmaker, market, price, probability,
		       implied_prob, edge, kelly_fraction, stake, created_at
		FROM recommended_bets
		WHERE run_id = $1
		ORDER BY edge DESC
	`

	rows, err := r.db.GetPool().Query(ctx, query, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query bets by run: %w", err)
	}
	defer rows.Close()

	var bets []*models.RecommendedBet
	for rows.Next() {
		bet := &models.RecommendedBet{}
		err := rows.Scan(
			&bet.ID, &bet.RunID, &bet.GameID, &bet.Team, &bet.Bookmaker, &bet.Market,
			&bet.Price, &bet.Probability, &bet.ImpliedProb, &bet.Edge,
			&bet.KellyFraction, &bet.Stake, &bet.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan bet: %w", err)
		}
		bets = append(bets, bet)
	}

	return bets, rows.Err()
}

// GetRecentRuns retrieves the most recent pipeline runs
func (r *PostgresRecommendationRepository) GetRecentRuns(ctx context.Context, limit int) ([]*models.RecommendationRun, error) {
	query := `
		SELECT id, started_at, finished_at, model_accuracy, historical_games,
		       upcoming_games, quote_count, unmatched_teams, bet_count
		FROM recommendation_runs
		ORDER BY started_at DESC
		LIMIT $1
	`

	rows, err := r.db.GetPool().Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query recent runs: %w", err)
	}
	defer rows.Close()

	var runs []*models.RecommendationRun
	for rows.Next() {
		run := &models.RecommendationRun{}
		err := rows.Scan(
			&run.ID, &run.StartedAt, &run.FinishedAt, &run.ModelAccuracy, &run.HistoricalGames,
			&run.UpcomingGames, &run.QuoteCount, &run.UnmatchedTeams, &run.BetCount,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, run)
	}

	return runs, rows.Err()
}
