package service

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/gridiron-edge/internal/datasource"
	"github.com/yourusername/gridiron-edge/internal/models"
)

// scheduleDateColumns are the recognized names for the schedule's date column,
// probed in order. The provider has renamed this column across releases.
var scheduleDateColumns = []string{"game_date", "gameday", "start_time"}

// scheduleTimeLayouts are the accepted timestamp formats, tried in order.
var scheduleTimeLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// ScheduleFilter selects future games from a full-season schedule using the
// best available date column.
type ScheduleFilter struct {
	now    func() time.Time
	logger *logrus.Logger
}

// NewScheduleFilter creates a new schedule filter. now supplies the run's
// reference instant.
func NewScheduleFilter(now func() time.Time, logger *logrus.Logger) *ScheduleFilter {
	if now == nil {
		now = time.Now
	}
	return &ScheduleFilter{now: now, logger: logger}
}

// UpcomingGames returns schedule entries for games at or after the current
// instant. Rows whose date fails to parse are dropped, never defaulted. An
// empty result is a normal outcome, not an error; a schedule with none of the
// recognized date columns is a configuration error.
func (f *ScheduleFilter) UpcomingGames(rows []datasource.ScheduleRow) ([]models.ScheduleEntry, error) {
	if len(rows) == 0 {
		// Off-season responses are empty; there is no schema to probe.
		return []models.ScheduleEntry{}, nil
	}

	dateColumn, err := pickDateColumn(rows)
	if err != nil {
		return nil, err
	}

	now := f.now()
	entries := make([]models.ScheduleEntry, 0, len(rows))
	dropped := 0

	for _, row := range rows {
		kickoff, ok := parseScheduleTime(row.Columns[dateColumn])
		if !ok {
			dropped++
			continue
		}
		if kickoff.Before(now) {
			continue
		}
		entries = append(entries, models.ScheduleEntry{
			GameID:   row.GameID,
			HomeTeam: row.HomeTeam,
			AwayTeam: row.AwayTeam,
			Kickoff:  kickoff,
		})
	}

	f.logger.WithFields(logrus.Fields{
		"date_column": dateColumn,
		"rows":        len(rows),
		"upcoming":    len(entries),
		"unparsable":  dropped,
	}).Debug("Filtered schedule to upcoming games")

	return entries, nil
}

// pickDateColumn returns the first recognized date column present in any row.
func pickDateColumn(rows []datasource.ScheduleRow) (string, error) {
	for _, candidate := range scheduleDateColumns {
		for _, row := range rows {
			if _, ok := row.Columns[candidate]; ok {
				return candidate, nil
			}
		}
	}
	return "", fmt.Errorf("%w: tried %v", models.ErrNoDateColumn, scheduleDateColumns)
}

func parseScheduleTime(value string) (time.Time, bool) {
	if value == "" {
		return time.Time{}, false
	}
	for _, layout := range scheduleTimeLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
