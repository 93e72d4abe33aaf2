package signal

import (
	"context"
	"testing"

	"github.com/rustyeddy/papertrader/sim"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEMASeedsWithAverage(t *testing.T) {
	t.Parallel()

	e := NewEMA(3)
	assert.Equal(t, "EMA(3)", e.Name())

	e.Update(d("1"))
	e.Update(d("2"))
	assert.False(t, e.Ready())
	assert.True(t, e.Value().IsZero())

	e.Update(d("3"))
	require.True(t, e.Ready())
	assert.True(t, d("2").Equal(e.Value()))

	// multiplier 2/(3+1) = 0.5
	e.Update(d("4"))
	assert.True(t, d("3").Equal(e.Value()))

	e.Reset()
	assert.False(t, e.Ready())
}

func TestEMACross(t *testing.T) {
	t.Parallel()

	lv := Levels{Mode: LevelsPercent, StopPct: d("5"), TargetPct: d("10"), RiskPercent: d("2")}
	r, err := New(Spec{Kind: "ema_cross", Fast: 1, Slow: 2, Levels: lv})
	require.NoError(t, err)

	labels := func(prices ...string) []string {
		var out []string
		for _, p := range prices {
			rec, err := r.Recommend(context.Background(), event(p, ""))
			require.NoError(t, err)
			out = append(out, rec.Label)
		}
		return out
	}

	// slow warms up on the 2nd tick, the first diff is only remembered.
	assert.Equal(t, []string{"", "", sim.Buy, "", sim.Sell}, labels("10", "9", "12", "13", "5"))
}

func TestNewEMACrossErrors(t *testing.T) {
	t.Parallel()

	_, err := NewEMACross(0, 5, Levels{})
	assert.Error(t, err)
	_, err = NewEMACross(5, 5, Levels{})
	assert.Error(t, err)
}
