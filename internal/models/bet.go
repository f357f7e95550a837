package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RecommendedBet is the terminal artifact of one pipeline run.
// Invariant: Edge > 0 and 0 < KellyFraction <= 1.
type RecommendedBet struct {
	ID            uuid.UUID       `db:"id" json:"id" validate:"required,uuid4"`
	RunID         uuid.UUID       `db:"run_id" json:"run_id" validate:"required,uuid4"`
	GameID        string          `db:"game_id" json:"game_id" validate:"required"`
	Team          string          `db:"team" json:"team" validate:"required"`
	Bookmaker     string          `db:"bookmaker" json:"bookmaker"`
	Market        string          `db:"market" json:"market" validate:"required"`
	Price         int             `db:"price" json:"price"`
	Probability   float64         `db:"probability" json:"probability" validate:"gte=0,lte=1"`
	ImpliedProb   float64         `db:"implied_prob" json:"implied_prob" validate:"gt=0,lt=1"`
	Edge          float64         `db:"edge" json:"edge" validate:"gt=0"`
	KellyFraction float64         `db:"kelly_fraction" json:"kelly_fraction" validate:"gt=0,lte=1"`
	Stake         decimal.Decimal `db:"stake" json:"stake"`
	CreatedAt     time.Time       `db:"created_at" json:"created_at"`
}

// RecommendationRun records one batch execution of the pipeline.
type RecommendationRun struct {
	ID              uuid.UUID `db:"id" json:"id" validate:"required,uuid4"`
	StartedAt       time.Time `db:"started_at" json:"started_at" validate:"required"`
	FinishedAt      time.Time `db:"finished_at" json:"finished_at"`
	ModelAccuracy   float64   `db:"model_accuracy" json:"model_accuracy" validate:"gte=0,lte=1"`
	HistoricalGames int       `db:"historical_games" json:"historical_games"`
	UpcomingGames   int       `db:"upcoming_games" json:"upcoming_games"`
	QuoteCount      int       `db:"quote_count" json:"quote_count"`
	UnmatchedTeams  int       `db:"unmatched_teams" json:"unmatched_teams"`
	BetCount        int       `db:"bet_count" json:"bet_count"`
}

// Duration returns how long the run took.
func (r *RecommendationRun) Duration() time.Duration {
	return r.FinishedAt.Sub(r.StartedAt)
}
