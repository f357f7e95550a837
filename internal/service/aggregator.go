package service

import (
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/gridiron-edge/internal/datasource"
	"github.com/yourusername/gridiron-edge/internal/models"
)

// HistoricalAggregator reduces play-level records to one row per
// (game, possessing team) with cumulative scoring and efficiency stats.
type HistoricalAggregator struct {
	logger *logrus.Logger
}

// NewHistoricalAggregator creates a new aggregator
func NewHistoricalAggregator(logger *logrus.Logger) *HistoricalAggregator {
	return &HistoricalAggregator{logger: logger}
}

type gameTeamKey struct {
	gameID string
	team   string
}

// Aggregate groups plays by (game, possessing team) and reduces to max score
// totals, first team identities, summed EPA and play count, then derives the
// win/loss label and home/away flag. Returns an empty slice when no plays are
// available; plays without a possessing team are skipped.
func (a *HistoricalAggregator) Aggregate(plays []datasource.PlayRecord) []models.GameTeamRecord {
	if len(plays) == 0 {
		return nil
	}

	groups := make(map[gameTeamKey]*models.GameTeamRecord)
	order := make([]gameTeamKey, 0)

	for i := range plays {
		play := &plays[i]
		if play.PossessionTeam == "" {
			continue
		}

		key := gameTeamKey{gameID: play.GameID, team: play.PossessionTeam}
		rec, ok := groups[key]
		if !ok {
			rec = &models.GameTeamRecord{
				GameID:   play.GameID,
				Team:     play.PossessionTeam,
				HomeTeam: play.HomeTeam,
				AwayTeam: play.AwayTeam,
			}
			groups[key] = rec
			order = append(order, key)
		}

		rec.HomeScore = maxPtr(rec.HomeScore, play.TotalHomeScore)
		rec.AwayScore = maxPtr(rec.AwayScore, play.TotalAwayScore)
		rec.PosTeamScore = maxPtr(rec.PosTeamScore, play.PosTeamScore)
		rec.DefTeamScore = maxPtr(rec.DefTeamScore, play.DefTeamScore)
		rec.HomeEPA = sumPtr(rec.HomeEPA, play.TotalHomeEPA)
		rec.AwayEPA = sumPtr(rec.AwayEPA, play.TotalAwayEPA)
		rec.PlayCount++
	}

	sort.Slice(order, func(i, j int) bool {
		if order[i].gameID != order[j].gameID {
			return order[i].gameID < order[j].gameID
		}
		return order[i].team < order[j].team
	})

	records := make([]models.GameTeamRecord, 0, len(order))
	for _, key := range order {
		rec := groups[key]
		rec.WinLoss = deriveWinLoss(rec)
		rec.HomeAway = deriveHomeAway(rec)
		records = append(records, *rec)
	}

	a.logger.WithFields(logrus.Fields{
		"plays":   len(plays),
		"records": len(records),
	}).Debug("Aggregated play-by-play data")

	return records
}

// deriveWinLoss compares the team's final score to the opponent's, oriented by
// which side the team played. Missing scores never count as a win.
func deriveWinLoss(rec *models.GameTeamRecord) int {
	if rec.HomeScore == nil || rec.AwayScore == nil {
		return 0
	}
	if rec.Team == rec.HomeTeam && *rec.HomeScore > *rec.AwayScore {
		return 1
	}
	if rec.Team == rec.AwayTeam && *rec.AwayScore > *rec.HomeScore {
		return 1
	}
	return 0
}

func deriveHomeAway(rec *models.GameTeamRecord) int {
	if rec.Team == rec.HomeTeam {
		return 1
	}
	return 0
}

func maxPtr(current, value *float64) *float64 {
	if value == nil {
		return current
	}
	if current == nil || *value > *current {
		v := *value
		return &v
	}
	return current
}

func sumPtr(current, value *float64) *float64 {
	if value == nil {
		return current
	}
	if current == nil {
		v := *value
		return &v
	}
	v := *current + *value
	return &v
}
