// Package oddsmath provides conversions between American odds, implied
// probabilities and Kelly stake fractions.
package oddsmath

// ImpliedProbability converts a signed American price to the win probability
// the market encodes. Positive prices: 100 / (price + 100). Negative or zero
// prices: -price / (-price + 100). A zero price therefore maps to probability
// zero rather than an error, matching the normalizer's pass-through of
// malformed quotes.
func ImpliedProbability(price int) float64 {
	if price > 0 {
		return 100.0 / (float64(price) + 100.0)
	}
	return float64(-price) / (float64(-price) + 100.0)
}

// NetOdds converts an American price to net odds per unit stake (decimal odds
// minus one): price/100 for positive prices, 100/|price| for negative ones.
func NetOdds(price int) float64 {
	if price > 0 {
		return float64(price) / 100.0
	}
	return 100.0 / float64(-price)
}

// Edge is the model probability minus the price's implied probability.
// Negative edges are valid output; callers filter, this computes.
func Edge(probability float64, price int) float64 {
	return probability - ImpliedProbability(price)
}
