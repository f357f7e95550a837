// Package storage provides optional on-disk snapshots of pipeline artifacts.
// The pipeline passes everything in memory; persisting snapshots is a side
// effect behind this interface, not a pipeline stage.
package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/yourusername/gridiron-edge/internal/models"
)

// ArtifactStore persists run artifacts.
type ArtifactStore interface {
	// SaveJSON writes v as an indented JSON snapshot under name.
	SaveJSON(name string, v interface{}) error

	// SaveRecommendations writes the final recommendation table as CSV.
	SaveRecommendations(name string, bets []models.RecommendedBet) error
}

// recommendationHeader is the output artifact's column set.
var recommendationHeader = []string{
	"game_id", "team", "bookmaker", "market", "price",
	"probability", "implied_prob", "edge", "kelly_fraction", "stake",
}

// FileStore writes artifacts under a base directory.
type FileStore struct {
	dir string
}

// NewFileStore creates the base directory if needed.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create artifact directory: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

// SaveJSON writes v as indented JSON to <dir>/<name>.json.
func (s *FileStore) SaveJSON(name string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", name, err)
	}
	path := filepath.Join(s.dir, name+".json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// SaveRecommendations writes bets to <dir>/<name>.csv. An empty table still
// produces a file with the header row, so "no recommendations" is observable.
func (s *FileStore) SaveRecommendations(name string, bets []models.RecommendedBet) error {
	path := filepath.Join(s.dir, name+".csv")
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer file.Close()

	w := csv.NewWriter(file)
	if err := w.Write(recommendationHeader); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for i := range bets {
		bet := &bets[i]
		record := []string{
			bet.GameID,
			bet.Team,
			bet.Bookmaker,
			bet.Market,
			strconv.Itoa(bet.Price),
			strconv.FormatFloat(bet.Probability, 'f', 6, 64),
			strconv.FormatFloat(bet.ImpliedProb, 'f', 6, 64),
			strconv.FormatFloat(bet.Edge, 'f', 6, 64),
			strconv.FormatFloat(bet.KellyFraction, 'f', 6, 64),
			bet.Stake.StringFixed(2),
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("failed to write recommendation row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to flush %s: %w", path, err)
	}
	return nil
}

// NopStore discards all artifacts. Used when snapshotting is disabled.
type NopStore struct{}

// SaveJSON implements ArtifactStore.
func (NopStore) SaveJSON(string, interface{}) error { return nil }

// SaveRecommendations implements ArtifactStore.
func (NopStore) SaveRecommendations(string, []models.RecommendedBet) error { return nil }
