package oddsmath

// KellyFraction computes the bankroll-growth-optimal stake fraction
// f* = (b*p - q) / b for win probability p and American price, where b is the
// net odds per unit stake and q = 1 - p. Never returns a negative fraction.
//
// Fractions above 1 are returned as computed: a full-bankroll-or-more stake
// signals a data anomaly, and the selector rejects it rather than betting it.
func KellyFraction(probability float64, price int) float64 {
	b := NetOdds(price)
	if b <= 0 {
		return 0
	}
	q := 1.0 - probability
	f := (b*probability - q) / b
	if f < 0 {
		return 0
	}
	return f
}

// ReasonableFraction reports whether a Kelly fraction is actionable:
// strictly positive and no more than the whole bankroll.
func ReasonableFraction(f float64) bool {
	return f > 0 && f <= 1
}
