package sim

import "github.com/shopspring/decimal"

const (
	ReasonStopLoss       = "Stop Loss"
	ReasonTarget         = "Target Reached"
	ReasonPositionChange = "Position Change"
	ReasonNeutral        = "Neutral Recommendation"
	ReasonManual         = "Manual"
	ReasonEndOfSession   = "End of Session"
)

func hitStopLoss(p *Position, price decimal.Decimal) bool {
	if p.Side == Long {
		return price.LessThanOrEqual(p.StopLoss)
	}
	return price.GreaterThanOrEqual(p.StopLoss)
}

func hitTarget(p *Position, price decimal.Decimal) bool {
	if p.Side == Long {
		return price.GreaterThanOrEqual(p.TargetPrice)
	}
	return price.LessThanOrEqual(p.TargetPrice)
}

// exitReason returns the reason the open position should be closed at
// price, or "" if it should stay open. Stop loss wins when both fire.
func exitReason(p *Position, price decimal.Decimal) string {
	switch {
	case hitStopLoss(p, price):
		return ReasonStopLoss
	case hitTarget(p, price):
		return ReasonTarget
	}
	return ""
}
