package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/yourusername/gridiron-edge/internal/models"
)

// RecommendationRepository defines the interface for persisting pipeline runs
// and their recommended bets.
type RecommendationRepository interface {
	CreateRun(ctx context.Context, run *models.RecommendationRun) error
	InsertBets(ctx context.Context, bets []models.RecommendedBet) error
	GetRunByID(ctx context.Context, id uuid.UUID) (*models.RecommendationRun, error)
	GetBetsByRunID(ctx context.Context, runID uuid.UUID) ([]*models.RecommendedBet, error)
	GetRecentRuns(ctx context.Context, limit int) ([]*models.RecommendationRun, error)
}
