package risk

import "github.com/shopspring/decimal"

// RR is the reward to risk ratio of a planned trade. Zero when the stop sits
// on the entry.
func RR(entry, stop, target decimal.Decimal) decimal.Decimal {
	r := entry.Sub(stop).Abs()
	if r.IsZero() {
		return decimal.Zero
	}
	return target.Sub(entry).Abs().Div(r)
}

// PlannedRisk is the cash lost if the stop is hit with units open.
func PlannedRisk(units int64, entry, stop decimal.Decimal) decimal.Decimal {
	return entry.Sub(stop).Abs().Mul(decimal.NewFromInt(units))
}

// RiskPct expresses planned risk as a percentage of balance.
func RiskPct(planned, balance decimal.Decimal) decimal.Decimal {
	if balance.Sign() <= 0 {
		return decimal.Zero
	}
	return planned.Div(balance).Mul(hundred)
}
