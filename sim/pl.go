package sim

import "github.com/shopspring/decimal"

// PnL is (exit-entry)*qty for a long and (entry-exit)*qty for a short.
func PnL(side Side, entry, exit decimal.Decimal, qty int64) decimal.Decimal {
	q := decimal.NewFromInt(qty)
	if side == Short {
		return entry.Sub(exit).Mul(q)
	}
	return exit.Sub(entry).Mul(q)
}
