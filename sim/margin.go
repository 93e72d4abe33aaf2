package sim

import (
	"github.com/rustyeddy/papertrader/risk"
	"github.com/shopspring/decimal"
)

// fit clamps qty to what the balance supports and returns the cash change
// of opening it: the cost of a long (negative) or the proceeds of a short
// (positive). A short only has to cover risk.ShortMarginRate of notional.
func fit(side Side, price decimal.Decimal, qty int64, balance decimal.Decimal) (int64, decimal.Decimal, error) {
	switch side {
	case Long:
		if risk.Notional(price, qty).GreaterThan(balance) {
			qty = risk.MaxAffordable(balance, price)
			if qty <= 0 {
				return 0, decimal.Zero, ErrInsufficientFunds
			}
		}
		return qty, risk.Notional(price, qty).Neg(), nil

	case Short:
		if risk.Margin(price, qty, risk.ShortMarginRate).GreaterThan(balance) {
			qty = risk.MaxMarginable(balance, price, risk.ShortMarginRate)
			if qty <= 0 {
				return 0, decimal.Zero, ErrInsufficientMargin
			}
		}
		return qty, risk.Notional(price, qty), nil
	}
	return 0, decimal.Zero, ErrInvalidSide
}

// riskPerUnit is the distance from entry to stop on the losing side. It is
// not positive when the stop sits on or beyond the entry.
func riskPerUnit(side Side, price, stop decimal.Decimal) decimal.Decimal {
	if side == Short {
		return stop.Sub(price)
	}
	return price.Sub(stop)
}
