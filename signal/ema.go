package signal

import (
	"context"
	"fmt"
	"sync"

	"github.com/rustyeddy/papertrader/market"
	"github.com/rustyeddy/papertrader/sim"
	"github.com/shopspring/decimal"
)

// EMA is a streaming exponential moving average over tick prices. It
// seeds with the simple average of the first period values.
type EMA struct {
	period     int
	multiplier decimal.Decimal
	ema        decimal.Decimal
	count      int
	warmupSum  decimal.Decimal
}

func NewEMA(period int) *EMA {
	return &EMA{
		period:     period,
		multiplier: decimal.NewFromInt(2).Div(decimal.NewFromInt(int64(period + 1))),
	}
}

func (e *EMA) Name() string { return fmt.Sprintf("EMA(%d)", e.period) }

func (e *EMA) Reset() {
	e.ema = decimal.Zero
	e.count = 0
	e.warmupSum = decimal.Zero
}

func (e *EMA) Update(price decimal.Decimal) {
	if e.count < e.period {
		e.warmupSum = e.warmupSum.Add(price)
		e.count++
		if e.count == e.period {
			e.ema = e.warmupSum.Div(decimal.NewFromInt(int64(e.period)))
		}
		return
	}
	e.ema = price.Sub(e.ema).Mul(e.multiplier).Add(e.ema)
}

func (e *EMA) Ready() bool { return e.count >= e.period }

// Value is zero until the EMA is ready.
func (e *EMA) Value() decimal.Decimal {
	if !e.Ready() {
		return decimal.Zero
	}
	return e.ema
}

// EMACross recommends Buy when the fast EMA crosses above the slow one
// and Sell when it crosses below. Between crosses the label is empty and
// the ledger only runs its stop and target checks.
type EMACross struct {
	Levels Levels

	mu       sync.Mutex
	fast     *EMA
	slow     *EMA
	lastDiff decimal.Decimal
	haveLast bool
}

func NewEMACross(fast, slow int, lv Levels) (*EMACross, error) {
	if fast <= 0 || slow <= 0 {
		return nil, fmt.Errorf("ema periods must be positive")
	}
	if fast >= slow {
		return nil, fmt.Errorf("fast period %d must be below slow period %d", fast, slow)
	}
	return &EMACross{Levels: lv, fast: NewEMA(fast), slow: NewEMA(slow)}, nil
}

func (s *EMACross) Recommend(ctx context.Context, ev market.Event) (Recommendation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.fast.Update(ev.Price)
	s.slow.Update(ev.Price)
	if !s.fast.Ready() || !s.slow.Ready() {
		return s.Levels.Apply("", "warming up", ev.Price), nil
	}

	diff := s.fast.Value().Sub(s.slow.Value())
	prev, had := s.lastDiff, s.haveLast
	s.lastDiff, s.haveLast = diff, true
	if !had {
		return s.Levels.Apply("", "no cross", ev.Price), nil
	}

	reason := fmt.Sprintf("%s/%s cross", s.fast.Name(), s.slow.Name())
	switch {
	case prev.Sign() <= 0 && diff.Sign() > 0:
		return s.Levels.Apply(sim.Buy, reason, ev.Price), nil
	case prev.Sign() >= 0 && diff.Sign() < 0:
		return s.Levels.Apply(sim.Sell, reason, ev.Price), nil
	}
	return s.Levels.Apply("", "no cross", ev.Price), nil
}
