package stats

import "github.com/shopspring/decimal"

// MaxDrawdown returns the largest percentage fall from a running peak in
// balances. The peak starts at the first value. Empty and never-falling
// histories give 0.
func MaxDrawdown(balances []decimal.Decimal) decimal.Decimal {
	if len(balances) == 0 {
		return decimal.Zero
	}

	peak := balances[0]
	maxDD := decimal.Zero
	for _, b := range balances[1:] {
		if b.GreaterThan(peak) {
			peak = b
			continue
		}
		if peak.Sign() <= 0 {
			continue
		}
		dd := peak.Sub(b).Div(peak).Mul(hundred)
		if dd.GreaterThan(maxDD) {
			maxDD = dd
		}
	}
	return maxDD
}
