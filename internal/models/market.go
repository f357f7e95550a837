package models

import "time"

// MarketQuoteRow is one flattened market outcome: a single price a bookmaker
// offers on one team in one market of one game. Price is American odds.
type MarketQuoteRow struct {
	GameID       string    `json:"game_id" validate:"required"`
	CommenceTime time.Time `json:"commence_time"`
	HomeTeam     string    `json:"home_team"`
	AwayTeam     string    `json:"away_team"`
	Bookmaker    string    `json:"bookmaker" validate:"required"`
	Market       string    `json:"market" validate:"required"`
	Team         string    `json:"team" validate:"required"`
	Price        int       `json:"price"`
	Point        *float64  `json:"point,omitempty"`
}

// HasLine reports whether the quote carries a point/line value (spreads and
// totals do, moneyline outcomes do not).
func (q *MarketQuoteRow) HasLine() bool {
	return q.Point != nil
}

// BetCandidate pairs a market quote with the model's probability for the quoted
// team after the identity join. Negative edges are retained here; filtering is
// the selector's job.
type BetCandidate struct {
	Quote       MarketQuoteRow `json:"quote"`
	Canonical   string         `json:"canonical_team"`
	Probability float64        `json:"probability" validate:"gte=0,lte=1"`
	ImpliedProb float64        `json:"implied_prob" validate:"gt=0,lt=1"`
	Edge        float64        `json:"edge"`
}
