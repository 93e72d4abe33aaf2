package risk

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// ShortMarginRate is the flat fraction of notional a short must be able to
// cover with cash. Nothing is escrowed; it only caps the quantity.
var ShortMarginRate = decimal.RequireFromString("0.5")

type Inputs struct {
	Balance     decimal.Decimal
	RiskPercent decimal.Decimal // 2 means 2% of balance
	EntryPrice  decimal.Decimal
	StopPrice   decimal.Decimal
}

type Result struct {
	Units       int64
	RiskPerUnit decimal.Decimal
	RiskAmount  decimal.Decimal
}

// Calculate sizes a position so that a stop-out loses RiskPercent of the
// balance. Units is floored to a whole number and may be zero or negative
// when the budget cannot buy a single unit; callers reject those.
func Calculate(in Inputs) Result {
	rpu := in.EntryPrice.Sub(in.StopPrice).Abs()
	amt := RiskAmount(in.Balance, in.RiskPercent)

	return Result{
		Units:       Units(amt, rpu),
		RiskPerUnit: rpu,
		RiskAmount:  amt,
	}
}

// RiskAmount is riskPercent/100 of balance.
func RiskAmount(balance, riskPercent decimal.Decimal) decimal.Decimal {
	return riskPercent.Div(hundred).Mul(balance)
}

// Units floors amount/perUnit. A non-positive perUnit yields 0.
func Units(amount, perUnit decimal.Decimal) int64 {
	if perUnit.Sign() <= 0 {
		return 0
	}
	return amount.Div(perUnit).Floor().IntPart()
}

// MaxAffordable is the largest whole quantity whose full cost fits in
// balance.
func MaxAffordable(balance, price decimal.Decimal) int64 {
	return Units(balance, price)
}

// MaxMarginable is the largest whole quantity whose margin requirement at
// rate fits in balance.
func MaxMarginable(balance, price, rate decimal.Decimal) int64 {
	return Units(balance, price.Mul(rate))
}

// Margin is the simplified margin requirement for qty units at price.
func Margin(price decimal.Decimal, qty int64, rate decimal.Decimal) decimal.Decimal {
	return Notional(price, qty).Mul(rate)
}

// Notional is price * qty.
func Notional(price decimal.Decimal, qty int64) decimal.Decimal {
	return price.Mul(decimal.NewFromInt(qty))
}
