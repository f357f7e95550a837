package models

// GameTeamRecord is one aggregated row per (game, possessing team) built from
// play-level data. Score and EPA fields are pointers because granular feeds can
// omit them; imputation to zero happens in the feature builder, not here.
type GameTeamRecord struct {
	GameID       string   `json:"game_id" validate:"required"`
	Team         string   `json:"team" validate:"required"`
	HomeTeam     string   `json:"home_team"`
	AwayTeam     string   `json:"away_team"`
	HomeScore    *float64 `json:"total_home_score"`
	AwayScore    *float64 `json:"total_away_score"`
	PosTeamScore *float64 `json:"posteam_score"`
	DefTeamScore *float64 `json:"defteam_score"`
	HomeEPA      *float64 `json:"total_home_epa"`
	AwayEPA      *float64 `json:"total_away_epa"`
	PlayCount    int      `json:"play_count" validate:"gte=0"`
	WinLoss      int      `json:"win_loss" validate:"gte=0,lte=1"`
	HomeAway     int      `json:"home_away" validate:"gte=0,lte=1"`
}

// IsHome reports whether the record's team was the home side.
func (r *GameTeamRecord) IsHome() bool {
	return r.HomeAway == 1
}

// Won reports whether the record's team won the game.
func (r *GameTeamRecord) Won() bool {
	return r.WinLoss == 1
}

// GameFeatureRow is the numeric feature vector derived from a GameTeamRecord.
// Invariant: no missing values; unknown inputs are imputed to zero before the
// derived features are computed.
type GameFeatureRow struct {
	GameID    string  `json:"game_id" validate:"required"`
	Team      string  `json:"team" validate:"required"`
	PointDiff float64 `json:"point_diff"`
	TotalEPA  float64 `json:"total_epa"`
	PlayCount float64 `json:"play_count"`
	HomeAway  float64 `json:"home_away"`
	WinLoss   int     `json:"win_loss" validate:"gte=0,lte=1"`
}

// Vector returns the fixed feature vector used by the probability model:
// {point_diff, total_epa, play_count, home_away}.
func (f *GameFeatureRow) Vector() []float64 {
	return []float64{f.PointDiff, f.TotalEPA, f.PlayCount, f.HomeAway}
}

// TeamAggregateStats holds per-team means over all historical feature rows.
// Used only as the join target when building features for upcoming games.
type TeamAggregateStats struct {
	Team          string  `json:"team" validate:"required"`
	MeanPointDiff float64 `json:"mean_point_diff"`
	MeanTotalEPA  float64 `json:"mean_total_epa"`
	MeanPlayCount float64 `json:"mean_play_count"`
	Games         int     `json:"games" validate:"gt=0"`
}
