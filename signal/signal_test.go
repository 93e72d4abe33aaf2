package signal

import (
	"context"
	"testing"
	"time"

	"github.com/rustyeddy/papertrader/market"
	"github.com/rustyeddy/papertrader/sim"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func event(price, sig string) market.Event {
	return market.Event{
		Tick:   market.Tick{Symbol: "AAPL", Time: time.Date(2024, 1, 2, 9, 30, 0, 0, time.UTC), Price: d(price)},
		Signal: sig,
	}
}

func TestLevelsAbsolute(t *testing.T) {
	t.Parallel()

	lv := Levels{Mode: LevelsAbsolute, StopLoss: d("95"), TargetPrice: d("110"), RiskPercent: d("2")}
	require.NoError(t, lv.Validate())

	stop, target := lv.For(sim.Sell, d("100"))
	assert.True(t, d("95").Equal(stop))
	assert.True(t, d("110").Equal(target))
}

func TestLevelsPercent(t *testing.T) {
	t.Parallel()

	lv := Levels{Mode: LevelsPercent, StopPct: d("5"), TargetPct: d("10"), RiskPercent: d("2")}
	require.NoError(t, lv.Validate())

	stop, target := lv.For(sim.Buy, d("100"))
	assert.True(t, d("95").Equal(stop), stop.String())
	assert.True(t, d("110").Equal(target), target.String())

	stop, target = lv.For(sim.Sell, d("100"))
	assert.True(t, d("105").Equal(stop), stop.String())
	assert.True(t, d("90").Equal(target), target.String())
}

func TestLevelsValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		lv   Levels
	}{
		{"absolute missing stop", Levels{Mode: LevelsAbsolute, TargetPrice: d("1"), RiskPercent: d("1")}},
		{"percent missing pct", Levels{Mode: LevelsPercent, StopPct: d("1"), RiskPercent: d("1")}},
		{"percent stop 100", Levels{Mode: LevelsPercent, StopPct: d("100"), TargetPct: d("1"), RiskPercent: d("1")}},
		{"zero risk", Levels{Mode: LevelsAbsolute, StopLoss: d("1"), TargetPrice: d("2")}},
		{"risk over 100", Levels{Mode: LevelsAbsolute, StopLoss: d("1"), TargetPrice: d("2"), RiskPercent: d("101")}},
		{"unknown mode", Levels{Mode: "atr", RiskPercent: d("1")}},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Error(t, tt.lv.Validate())
		})
	}
}

func TestScriptedFeedsLedger(t *testing.T) {
	t.Parallel()

	r, err := New(Spec{Kind: "scripted", Levels: Levels{Mode: LevelsPercent, StopPct: d("5"), TargetPct: d("10"), RiskPercent: d("2")}})
	require.NoError(t, err)

	ev := event("100", sim.Sell)
	rec, err := r.Recommend(context.Background(), ev)
	require.NoError(t, err)
	assert.Equal(t, sim.Sell, rec.Label)
	assert.Equal(t, "scripted", rec.Reason)

	l, err := sim.NewLedger(d("100000"))
	require.NoError(t, err)
	_, err = sim.Process(l, rec.Input(ev))
	require.NoError(t, err)
	assert.Equal(t, sim.StateShort, l.State())
	assertBalance(t, "140000", l)
}

func TestFixed(t *testing.T) {
	t.Parallel()

	r, err := New(Spec{Kind: "fixed", Label: sim.Buy, Levels: Levels{Mode: LevelsAbsolute, StopLoss: d("95"), TargetPrice: d("110"), RiskPercent: d("2")}})
	require.NoError(t, err)

	rec, err := r.Recommend(context.Background(), event("100", sim.Sell))
	require.NoError(t, err)
	assert.Equal(t, sim.Buy, rec.Label)

	_, err = New(Spec{Kind: "fixed"})
	assert.Error(t, err)
	_, err = New(Spec{Kind: "oracle"})
	assert.Error(t, err)
}

func assertBalance(t *testing.T, want string, l *sim.Ledger) {
	t.Helper()
	assert.True(t, d(want).Equal(l.Balance()), "balance %s", l.Balance())
}
