package models

import "time"

// ScheduleEntry is a single upcoming game from the season schedule. Invariant:
// Kickoff parsed successfully and is at or after the run's reference time; rows
// with unparsable dates never become entries.
type ScheduleEntry struct {
	GameID   string    `json:"game_id" validate:"required"`
	HomeTeam string    `json:"home_team" validate:"required"`
	AwayTeam string    `json:"away_team" validate:"required"`
	Kickoff  time.Time `json:"kickoff" validate:"required"`
}

// ProbabilityEstimate attaches a win probability to one side of an upcoming
// game. Ephemeral: recomputed on every run from the freshly fitted model.
type ProbabilityEstimate struct {
	GameID      string  `json:"game_id" validate:"required"`
	Team        string  `json:"team" validate:"required"`
	Canonical   string  `json:"canonical_team"`
	HomeAway    int     `json:"home_away" validate:"gte=0,lte=1"`
	Probability float64 `json:"probability" validate:"gte=0,lte=1"`
}
