package sim

import (
	"time"

	"github.com/shopspring/decimal"
)

// Recommendation labels understood by Process. Anything else is ignored.
const (
	Buy     = "Buy"
	Sell    = "Sell"
	Neutral = "Neutral"
)

// Input is everything one tick hands to the ledger. The stop, target and
// risk only matter when a position gets opened.
type Input struct {
	Recommendation string
	Price          decimal.Decimal
	Time           time.Time
	StopLoss       decimal.Decimal
	TargetPrice    decimal.Decimal
	RiskPercent    decimal.Decimal
}

// Result lists what a tick did to the ledger.
type Result struct {
	Exit    string  // stop/target reason, "" if no exit fired
	Entries []Entry // appended this tick, in order
}

// Opened reports whether the tick opened a position.
func (r Result) Opened() bool {
	for _, e := range r.Entries {
		if e.Kind == KindOpen {
			return true
		}
	}
	return false
}

// Process applies one tick: first the stop-loss/target check against the
// open position, then the recommendation against whatever is left. Closes
// made before a rejected open stay applied; the open's error is returned.
func Process(l *Ledger, in Input) (Result, error) {
	var res Result

	if l.pos != nil {
		if reason := exitReason(l.pos, in.Price); reason != "" {
			e, _ := l.ClosePosition(in.Price, in.Time, reason)
			res.Exit = reason
			res.Entries = append(res.Entries, e)
		}
	}

	var want Side
	switch in.Recommendation {
	case Buy:
		want = Long
	case Sell:
		want = Short
	case Neutral:
		if e, ok := l.ClosePosition(in.Price, in.Time, ReasonNeutral); ok {
			res.Entries = append(res.Entries, e)
		}
		return res, nil
	default:
		return res, nil
	}

	if l.pos != nil {
		if l.pos.Side == want {
			return res, nil
		}
		e, _ := l.ClosePosition(in.Price, in.Time, ReasonPositionChange)
		res.Entries = append(res.Entries, e)
	}

	e, err := l.OpenPosition(want, in.Price, in.Time, in.StopLoss, in.TargetPrice, in.RiskPercent)
	if err != nil {
		return res, err
	}
	res.Entries = append(res.Entries, e)
	return res, nil
}
