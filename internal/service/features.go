package service

import (
	"sort"

	"github.com/yourusername/gridiron-edge/internal/models"
)

// BuildFeatures derives the model's feature rows from aggregated game records.
// Missing numeric fields are imputed to zero before the derived features are
// computed, so feature rows never distinguish "true zero" from "unknown" —
// an accepted approximation of the aggregation.
func BuildFeatures(records []models.GameTeamRecord) []models.GameFeatureRow {
	rows := make([]models.GameFeatureRow, 0, len(records))
	for i := range records {
		rec := &records[i]
		rows = append(rows, models.GameFeatureRow{
			GameID:    rec.GameID,
			Team:      rec.Team,
			PointDiff: orZero(rec.PosTeamScore) - orZero(rec.DefTeamScore),
			TotalEPA:  orZero(rec.HomeEPA) + orZero(rec.AwayEPA),
			PlayCount: float64(rec.PlayCount),
			HomeAway:  float64(rec.HomeAway),
			WinLoss:   rec.WinLoss,
		})
	}
	return rows
}

// BuildTeamAggregates computes per-team means over all historical feature
// rows, the join target for upcoming-game features.
func BuildTeamAggregates(rows []models.GameFeatureRow) map[string]models.TeamAggregateStats {
	stats := make(map[string]models.TeamAggregateStats)
	for i := range rows {
		row := &rows[i]
		s := stats[row.Team]
		s.Team = row.Team
		s.MeanPointDiff += row.PointDiff
		s.MeanTotalEPA += row.TotalEPA
		s.MeanPlayCount += row.PlayCount
		s.Games++
		stats[row.Team] = s
	}
	for team, s := range stats {
		n := float64(s.Games)
		s.MeanPointDiff /= n
		s.MeanTotalEPA /= n
		s.MeanPlayCount /= n
		stats[team] = s
	}
	return stats
}

// UpcomingFeatureRow is an inference-ready row for one side of an upcoming
// game: the team's historical means plus the home/away flag.
type UpcomingFeatureRow struct {
	GameID   string
	Team     string
	HomeAway int
	Features []float64
}

// BuildUpcomingFeatures melts each schedule entry into a home and an away row
// and joins team codes to their aggregate stats. The join is inner: teams with
// no historical aggregates are dropped, never filled.
func BuildUpcomingFeatures(entries []models.ScheduleEntry, stats map[string]models.TeamAggregateStats) []UpcomingFeatureRow {
	rows := make([]UpcomingFeatureRow, 0, 2*len(entries))
	for _, entry := range entries {
		for _, side := range []struct {
			team     string
			homeAway int
		}{
			{entry.HomeTeam, 1},
			{entry.AwayTeam, 0},
		} {
			s, ok := stats[side.team]
			if !ok {
				continue
			}
			rows = append(rows, UpcomingFeatureRow{
				GameID:   entry.GameID,
				Team:     side.team,
				HomeAway: side.homeAway,
				Features: []float64{s.MeanPointDiff, s.MeanTotalEPA, s.MeanPlayCount, float64(side.homeAway)},
			})
		}
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].GameID != rows[j].GameID {
			return rows[i].GameID < rows[j].GameID
		}
		return rows[i].Team < rows[j].Team
	})
	return rows
}

func orZero(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
