package service

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/gridiron-edge/internal/models"
	"github.com/yourusername/gridiron-edge/internal/oddsmath"
)

// BetSelector joins market quotes to probability estimates, computes edges and
// Kelly fractions, and filters down to the final recommendation table.
type BetSelector struct {
	resolver *TeamResolver
	logger   *logrus.Logger
}

// NewBetSelector creates a new bet selector
func NewBetSelector(resolver *TeamResolver, logger *logrus.Logger) *BetSelector {
	return &BetSelector{resolver: resolver, logger: logger}
}

// Join matches quotes to probability estimates on the canonical team name and
// computes the edge for each match. The join is inner: quotes whose team has
// no estimate are dropped silently and only counted in aggregate. Negative
// edges survive this stage; Select filters them.
func (s *BetSelector) Join(quotes []models.MarketQuoteRow, estimates []models.ProbabilityEstimate) ([]models.BetCandidate, int) {
	probs := make(map[string]float64, len(estimates))
	for _, est := range estimates {
		if _, exists := probs[est.Canonical]; !exists {
			probs[est.Canonical] = est.Probability
		}
	}

	var candidates []models.BetCandidate
	unmatched := 0
	for _, quote := range quotes {
		canonical := s.resolver.CanonicalFromMarket(quote.Team)
		probability, ok := probs[canonical]
		if !ok {
			unmatched++
			continue
		}
		candidates = append(candidates, models.BetCandidate{
			Quote:       quote,
			Canonical:   canonical,
			Probability: probability,
			ImpliedProb: oddsmath.ImpliedProbability(quote.Price),
			Edge:        oddsmath.Edge(probability, quote.Price),
		})
	}

	if unmatched > 0 {
		s.logger.WithField("unmatched", unmatched).Debug("Dropped quotes with no probability match")
	}
	return candidates, unmatched
}

// Select filters candidates to positive edge and an actionable Kelly fraction
// (0 < f <= 1), sizing each surviving bet against the bankroll. An empty
// result means no edge today, a normal outcome.
func (s *BetSelector) Select(candidates []models.BetCandidate, runID uuid.UUID, bankroll decimal.Decimal, now time.Time) []models.RecommendedBet {
	var bets []models.RecommendedBet
	for _, c := range candidates {
		if c.Edge <= 0 {
			continue
		}
		fraction := oddsmath.KellyFraction(c.Probability, c.Quote.Price)
		if !oddsmath.ReasonableFraction(fraction) {
			// f* > 1 signals a data or edge anomaly, not an opportunity.
			continue
		}
		bets = append(bets, models.RecommendedBet{
			ID:            uuid.New(),
			RunID:         runID,
			GameID:        c.Quote.GameID,
			Team:          c.Canonical,
			Bookmaker:     c.Quote.Bookmaker,
			Market:        c.Quote.Market,
			Price:         c.Quote.Price,
			Probability:   c.Probability,
			ImpliedProb:   c.ImpliedProb,
			Edge:          c.Edge,
			KellyFraction: fraction,
			Stake:         bankroll.Mul(decimal.NewFromFloat(fraction)).Round(2),
			CreatedAt:     now,
		})
	}
	return bets
}
