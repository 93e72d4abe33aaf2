package signal

import (
	"fmt"

	"github.com/rustyeddy/papertrader/sim"
	"github.com/shopspring/decimal"
)

const (
	LevelsAbsolute = "absolute"
	LevelsPercent  = "percent"
)

var hundred = decimal.NewFromInt(100)

// Levels decides the stop loss and target handed to the ledger. Absolute
// levels are used as given; percent levels are offsets from the tick price
// on the losing and winning side of the recommended direction.
type Levels struct {
	Mode        string
	StopLoss    decimal.Decimal
	TargetPrice decimal.Decimal
	StopPct     decimal.Decimal
	TargetPct   decimal.Decimal
	RiskPercent decimal.Decimal
}

func (lv Levels) Validate() error {
	switch lv.Mode {
	case LevelsAbsolute, "":
		if lv.StopLoss.Sign() <= 0 || lv.TargetPrice.Sign() <= 0 {
			return fmt.Errorf("absolute levels need positive stop_loss and target_price")
		}
	case LevelsPercent:
		if lv.StopPct.Sign() <= 0 || lv.TargetPct.Sign() <= 0 {
			return fmt.Errorf("percent levels need positive stop_pct and target_pct")
		}
		if lv.StopPct.GreaterThanOrEqual(hundred) {
			return fmt.Errorf("stop_pct must be below 100")
		}
	default:
		return fmt.Errorf("unknown levels mode %q", lv.Mode)
	}
	if lv.RiskPercent.Sign() <= 0 || lv.RiskPercent.GreaterThan(hundred) {
		return fmt.Errorf("risk_percent must be in (0, 100]")
	}
	return nil
}

// Apply fills in a Recommendation for label at price.
func (lv Levels) Apply(label, reason string, price decimal.Decimal) Recommendation {
	stop, target := lv.For(label, price)
	return Recommendation{
		Label:       label,
		Reason:      reason,
		StopLoss:    stop,
		TargetPrice: target,
		RiskPercent: lv.RiskPercent,
	}
}

// For returns the stop and target for label at price.
func (lv Levels) For(label string, price decimal.Decimal) (stop, target decimal.Decimal) {
	if lv.Mode != LevelsPercent {
		return lv.StopLoss, lv.TargetPrice
	}

	down := decimal.NewFromInt(1).Sub(lv.StopPct.Div(hundred))
	up := decimal.NewFromInt(1).Add(lv.TargetPct.Div(hundred))
	if label == sim.Sell {
		down = decimal.NewFromInt(1).Add(lv.StopPct.Div(hundred))
		up = decimal.NewFromInt(1).Sub(lv.TargetPct.Div(hundred))
	}
	return price.Mul(down), price.Mul(up)
}
