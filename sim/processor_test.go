package sim

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tick(rec, price string, at time.Time) Input {
	return Input{
		Recommendation: rec,
		Price:          d(price),
		Time:           at,
		StopLoss:       d("95"),
		TargetPrice:    d("110"),
		RiskPercent:    d("2"),
	}
}

func shortTick(rec, price string, at time.Time) Input {
	in := tick(rec, price, at)
	in.StopLoss = d("105")
	in.TargetPrice = d("90")
	return in
}

func actions(l *Ledger) []string {
	var out []string
	for _, e := range l.TradeLog() {
		out = append(out, e.Action)
	}
	return out
}

func TestProcessBuyOpensLong(t *testing.T) {
	t.Parallel()

	l := newLedger(t, "100000")
	res, err := Process(l, tick(Buy, "100", t0))
	require.NoError(t, err)
	assert.True(t, res.Opened())
	assert.Empty(t, res.Exit)
	require.Len(t, res.Entries, 1)
	assert.Equal(t, StateLong, l.State())
}

func TestProcessRepeatedBuyIsNoop(t *testing.T) {
	t.Parallel()

	l := newLedger(t, "100000")
	_, err := Process(l, tick(Buy, "100", t0))
	require.NoError(t, err)

	res, err := Process(l, tick(Buy, "101", t0.Add(time.Minute)))
	require.NoError(t, err)
	assert.Empty(t, res.Entries)
	assert.Len(t, l.BalanceHistory(), 2)
	assert.Equal(t, []string{"Open Long"}, actions(l))
}

func TestProcessFlipLongToShort(t *testing.T) {
	t.Parallel()

	l := newLedger(t, "100000")
	_, err := Process(l, tick(Buy, "100", t0))
	require.NoError(t, err)

	res, err := Process(l, shortTick(Sell, "102", t0.Add(time.Minute)))
	require.NoError(t, err)
	require.Len(t, res.Entries, 2)
	assert.Equal(t, []string{"Open Long", "Close Long (Position Change)", "Open Short"}, actions(l))
	assert.Equal(t, StateShort, l.State())
	assert.Len(t, l.BalanceHistory(), 4)
}

func TestProcessFlipShortToLong(t *testing.T) {
	t.Parallel()

	l := newLedger(t, "100000")
	_, err := Process(l, shortTick(Sell, "100", t0))
	require.NoError(t, err)

	_, err = Process(l, tick(Buy, "99", t0.Add(time.Minute)))
	require.NoError(t, err)
	assert.Equal(t, []string{"Open Short", "Close Short (Position Change)", "Open Long"}, actions(l))
	assert.Equal(t, StateLong, l.State())
}

func TestProcessNeutralCloses(t *testing.T) {
	t.Parallel()

	l := newLedger(t, "100000")
	_, err := Process(l, tick(Buy, "100", t0))
	require.NoError(t, err)

	res, err := Process(l, tick(Neutral, "101", t0.Add(time.Minute)))
	require.NoError(t, err)
	require.Len(t, res.Entries, 1)
	assert.Equal(t, ReasonNeutral, res.Entries[0].Reason)
	assert.Equal(t, Flat, l.State())

	res, err = Process(l, tick(Neutral, "101", t0.Add(2*time.Minute)))
	require.NoError(t, err)
	assert.Empty(t, res.Entries)
}

func TestProcessUnknownLabel(t *testing.T) {
	t.Parallel()

	l := newLedger(t, "100000")
	for _, rec := range []string{"", "Hold", "buy", "Strong Buy"} {
		res, err := Process(l, tick(rec, "100", t0))
		require.NoError(t, err)
		assert.Empty(t, res.Entries)
	}
	assert.Len(t, l.BalanceHistory(), 1)
}

func TestProcessExits(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		open   Input
		price  string
		reason string
	}{
		{"long stop", tick(Buy, "100", t0), "95", ReasonStopLoss},
		{"long below stop", tick(Buy, "100", t0), "90", ReasonStopLoss},
		{"long target", tick(Buy, "100", t0), "110", ReasonTarget},
		{"short stop", shortTick(Sell, "100", t0), "105", ReasonStopLoss},
		{"short target", shortTick(Sell, "100", t0), "89", ReasonTarget},
		{"long inside band", tick(Buy, "100", t0), "101", ""},
		{"short inside band", shortTick(Sell, "100", t0), "99", ""},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			l := newLedger(t, "100000")
			_, err := Process(l, tt.open)
			require.NoError(t, err)

			res, err := Process(l, tick("Hold", tt.price, t0.Add(time.Minute)))
			require.NoError(t, err)
			assert.Equal(t, tt.reason, res.Exit)
			if tt.reason == "" {
				assert.NotEqual(t, Flat, l.State())
				assert.Empty(t, res.Entries)
				return
			}
			assert.Equal(t, Flat, l.State())
			require.Len(t, res.Entries, 1)
			assert.Equal(t, tt.reason, res.Entries[0].Reason)
		})
	}
}

func TestProcessStopBeatsTarget(t *testing.T) {
	t.Parallel()

	// Target below stop on a long: a price of 90 satisfies both.
	l := newLedger(t, "100000")
	in := tick(Buy, "100", t0)
	in.TargetPrice = d("80")
	_, err := Process(l, in)
	require.NoError(t, err)

	res, err := Process(l, tick("", "90", t0.Add(time.Minute)))
	require.NoError(t, err)
	assert.Equal(t, ReasonStopLoss, res.Exit)
	assert.Len(t, res.Entries, 1)
}

func TestProcessExitThenReopen(t *testing.T) {
	t.Parallel()

	// Stopped out on a long, and the same tick still says Buy: the exit
	// runs first and the recommendation opens a fresh long.
	l := newLedger(t, "100000")
	_, err := Process(l, tick(Buy, "100", t0))
	require.NoError(t, err)

	in := tick(Buy, "94", t0.Add(time.Minute))
	in.StopLoss = d("90")
	res, err := Process(l, in)
	require.NoError(t, err)
	assert.Equal(t, ReasonStopLoss, res.Exit)
	assert.Equal(t, []string{"Open Long", "Close Long (Stop Loss)", "Open Long"}, actions(l))
}

func TestProcessFailedOpenKeepsClose(t *testing.T) {
	t.Parallel()

	l := newLedger(t, "100000")
	_, err := Process(l, tick(Buy, "100", t0))
	require.NoError(t, err)

	// Sell with a stop below price is invalid for a short.
	res, err := Process(l, tick(Sell, "101", t0.Add(time.Minute)))
	assert.ErrorIs(t, err, ErrInvalidStopLoss)
	require.Len(t, res.Entries, 1)
	assert.Equal(t, ReasonPositionChange, res.Entries[0].Reason)
	assert.Equal(t, Flat, l.State())
	assert.Len(t, l.BalanceHistory(), 3)
}

func TestHistoryTracksEntries(t *testing.T) {
	t.Parallel()

	l := newLedger(t, "50000")
	seq := []Input{
		tick(Buy, "100", t0),
		tick(Buy, "101", t0),
		shortTick(Sell, "103", t0),
		tick("noise", "104", t0),
		tick(Neutral, "102", t0),
		tick(Sell, "102", t0), // invalid stop for short
		tick(Buy, "100", t0),
		tick("", "111", t0), // target
		tick(Buy, "100", t0),
		tick("", "94", t0), // stop
	}

	ops := 0
	for i, in := range seq {
		in.Time = t0.Add(time.Duration(i) * time.Minute)
		res, _ := Process(l, in)
		ops += len(res.Entries)
		assert.Len(t, l.BalanceHistory(), ops+1, "tick %d", i)
	}
	assert.Len(t, l.TradeLog(), ops)
}
