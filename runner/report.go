package runner

import (
	"time"

	"github.com/rustyeddy/papertrader/journal"
	"github.com/rustyeddy/papertrader/market"
	"github.com/rustyeddy/papertrader/signal"
	"github.com/rustyeddy/papertrader/sim"
	"github.com/rustyeddy/papertrader/stats"
	"github.com/shopspring/decimal"
)

// Snapshot is a read-only view of the session after one tick.
type Snapshot struct {
	SessionID      string
	Time           time.Time
	Symbol         string
	Price          decimal.Decimal
	Missing        bool // tick had no price
	Recommendation signal.Recommendation
	Exit           string
	Entries        []sim.Entry // appended this tick

	State         sim.State
	Position      sim.Position
	HasPosition   bool
	Balance       decimal.Decimal
	Equity        decimal.Decimal
	UnrealizedPnL decimal.Decimal
	Progress      decimal.Decimal // fraction of the way to target
	Summary       stats.Summary
}

type Reporter interface {
	Report(Snapshot)
}

type ReporterFunc func(Snapshot)

func (f ReporterFunc) Report(s Snapshot) { f(s) }

type nopReporter struct{}

func (nopReporter) Report(Snapshot) {}

func (r *Runner) snapshot(ev market.Event, rec signal.Recommendation, res sim.Result) Snapshot {
	mark := ev.Price
	if mark.Sign() <= 0 {
		mark = r.lastPrice
	}
	s := Snapshot{
		SessionID:      r.opts.SessionID,
		Time:           ev.Time,
		Symbol:         ev.Symbol,
		Price:          ev.Price,
		Recommendation: rec,
		Exit:           res.Exit,
		Entries:        res.Entries,
		State:          r.ledger.State(),
		Balance:        r.ledger.Balance(),
		Equity:         r.ledger.Equity(mark),
		UnrealizedPnL:  r.ledger.UnrealizedPnL(mark),
		Summary:        stats.FromLedger(r.ledger),
	}
	if p, ok := r.ledger.Position(); ok {
		s.Position, s.HasPosition = p, true
		s.Progress = p.Progress(mark)
	}
	return s
}

// Session summarises the run so far as a journal record.
func (r *Runner) Session() journal.Session {
	sum := stats.FromLedger(r.ledger)
	return journal.Session{
		SessionID:    r.opts.SessionID,
		Created:      time.Now().UTC(),
		Symbol:       r.opts.Symbol,
		Recommender:  r.opts.Recommender,
		Feed:         r.opts.FeedName,
		RiskPct:      r.opts.RiskPercent,
		Start:        r.started,
		End:          r.lastTime,
		Trades:       sum.TotalTrades,
		Wins:         sum.Wins,
		Losses:       sum.Losses,
		StartBalance: sum.StartBalance,
		EndBalance:   sum.EndBalance,
		NetPL:        sum.NetPL,
		ReturnPct:    sum.ReturnPct,
		WinRate:      sum.WinRate.Mul(decimal.NewFromInt(100)),
		AvgWin:       sum.AverageWin,
		MaxDDPct:     sum.MaxDrawdown,
		OrgPath:      r.opts.OrgFile,
	}
}
