package service

import (
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/gridiron-edge/internal/datasource"
	"github.com/yourusername/gridiron-edge/internal/models"
)

// MarketLinesNormalizer flattens the odds provider's nested response into one
// row per (game, bookmaker, market, outcome).
type MarketLinesNormalizer struct {
	logger *logrus.Logger
}

// NewMarketLinesNormalizer creates a new normalizer
func NewMarketLinesNormalizer(logger *logrus.Logger) *MarketLinesNormalizer {
	return &MarketLinesNormalizer{logger: logger}
}

// Normalize flattens events into quote rows. Zero events is a normal outcome
// and yields an empty table.
func (n *MarketLinesNormalizer) Normalize(events []datasource.OddsEvent) []models.MarketQuoteRow {
	var rows []models.MarketQuoteRow
	for _, event := range events {
		for _, bookmaker := range event.Bookmakers {
			for _, market := range bookmaker.Markets {
				for _, outcome := range market.Outcomes {
					rows = append(rows, models.MarketQuoteRow{
						GameID:       event.ID,
						CommenceTime: event.CommenceTime,
						HomeTeam:     event.HomeTeam,
						AwayTeam:     event.AwayTeam,
						Bookmaker:    bookmaker.Title,
						Market:       market.Key,
						Team:         strings.TrimSpace(outcome.Name),
						Price:        outcome.Price,
						Point:        outcome.Point,
					})
				}
			}
		}
	}

	n.logger.WithFields(logrus.Fields{
		"events": len(events),
		"quotes": len(rows),
	}).Debug("Normalized market lines")

	return rows
}
