// Package runner drives the ledger from a tick feed: one Step per tick,
// and a timer loop around it.
package runner

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rustyeddy/papertrader/internal/id"
	"github.com/rustyeddy/papertrader/internal/logger"
	"github.com/rustyeddy/papertrader/journal"
	"github.com/rustyeddy/papertrader/market"
	"github.com/rustyeddy/papertrader/risk"
	"github.com/rustyeddy/papertrader/signal"
	"github.com/rustyeddy/papertrader/sim"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

type Options struct {
	SessionID    string
	Symbol       string
	Recommender  string // name recorded with the session
	FeedName     string
	RiskPercent  decimal.Decimal
	Interval     time.Duration
	ErrorBackoff time.Duration
	CloseAtEnd   bool
	OrgFile      string // session report, skipped when empty
}

type Runner struct {
	opts       Options
	ledger     *sim.Ledger
	feed       market.Feed
	rec        signal.Recommender
	journal    journal.Journal
	log        *zap.Logger
	tracer     *logger.Tracer
	reporter   Reporter
	ledgerOpts []sim.Option

	// entries and balances already written to the journal
	persisted int
	balances  int

	started   time.Time
	lastTime  time.Time
	lastPrice decimal.Decimal
	finished  bool
}

type Option func(*Runner)

func WithJournal(j journal.Journal) Option { return func(r *Runner) { r.journal = j } }
func WithLogger(l *zap.Logger) Option      { return func(r *Runner) { r.log = logger.OrNop(l) } }
func WithTracer(t *logger.Tracer) Option   { return func(r *Runner) { r.tracer = t } }
func WithReporter(rep Reporter) Option     { return func(r *Runner) { r.reporter = rep } }

// WithLedgerOptions are applied to the ledger built by Reset.
func WithLedgerOptions(opts ...sim.Option) Option {
	return func(r *Runner) { r.ledgerOpts = opts }
}

func New(l *sim.Ledger, feed market.Feed, rec signal.Recommender, opts Options, ropts ...Option) *Runner {
	r := &Runner{
		opts:     opts,
		ledger:   l,
		feed:     feed,
		rec:      rec,
		journal:  journal.Discard{},
		log:      zap.NewNop(),
		reporter: nopReporter{},
	}
	for _, o := range ropts {
		o(r)
	}
	if r.tracer == nil {
		r.tracer, _ = logger.NewTracer(false, nil)
	}
	if r.opts.SessionID == "" {
		r.opts.SessionID = id.New()
	}
	return r
}

func (r *Runner) Ledger() *sim.Ledger { return r.ledger }
func (r *Runner) SessionID() string   { return r.opts.SessionID }

// Reset replaces the ledger with a fresh one at balance and starts a new
// session. The feed position is kept.
func (r *Runner) Reset(balance decimal.Decimal) error {
	l, err := sim.NewLedger(balance, r.ledgerOpts...)
	if err != nil {
		return err
	}
	r.ledger = l
	r.opts.SessionID = id.New()
	r.persisted, r.balances = 0, 0
	r.started = time.Time{}
	r.finished = false
	r.log.Info("ledger reset",
		zap.String("session", r.opts.SessionID),
		zap.Stringer("balance", balance))
	return nil
}

// Step runs one tick: read the feed, ask for a recommendation, apply it to
// the ledger, persist what changed and report. Ticks without a price are
// reported with Missing set and leave the ledger alone. A rejected open
// is returned as a *sim.OpenError after the rest of the tick is applied.
func (r *Runner) Step(ctx context.Context) (Snapshot, error) {
	ctx, span := r.tracer.Start(ctx, "tick", attribute.String("session", r.opts.SessionID))
	defer span.End()

	ev, err := r.feed.Next(ctx)
	switch {
	case errors.Is(err, market.ErrEndOfFeed):
		return Snapshot{}, err
	case errors.Is(err, market.ErrNoData):
		r.log.Debug("no price data, tick skipped",
			append(logger.TraceFields(ctx), zap.Time("time", ev.Time))...)
		snap := r.snapshot(ev, signal.Recommendation{}, sim.Result{})
		snap.Missing = true
		r.reporter.Report(snap)
		return snap, nil
	case err != nil:
		logger.Fail(span, err)
		return Snapshot{}, fmt.Errorf("read feed: %w", err)
	}

	span.SetAttributes(attribute.String("price", ev.Price.String()))
	if r.started.IsZero() {
		r.started = ev.Time
	}
	r.lastTime, r.lastPrice = ev.Time, ev.Price

	rec, err := r.rec.Recommend(ctx, ev)
	if err != nil {
		logger.Fail(span, err)
		return Snapshot{}, fmt.Errorf("recommend: %w", err)
	}
	span.SetAttributes(attribute.String("recommendation", rec.Label))

	res, perr := sim.Process(r.ledger, rec.Input(ev))
	for _, e := range res.Entries {
		r.logEntry(ctx, e)
	}

	jerr := r.persist(ev.Time)
	snap := r.snapshot(ev, rec, res)
	r.reporter.Report(snap)

	if jerr != nil {
		logger.Fail(span, jerr)
		return snap, jerr
	}
	if perr != nil {
		logger.Fail(span, perr)
		return snap, perr
	}
	return snap, nil
}

// Run calls Step every Interval until the feed ends or ctx is done.
// Rejected opens are logged as warnings; other failures are logged and
// followed by ErrorBackoff. At the end of the feed the session is
// finished and nil returned.
func (r *Runner) Run(ctx context.Context) error {
	r.log.Info("session started",
		zap.String("session", r.opts.SessionID),
		zap.String("symbol", r.opts.Symbol),
		zap.Stringer("balance", r.ledger.Balance()),
		zap.Duration("interval", r.opts.Interval))

	timer := time.NewTimer(0)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case <-timer.C:
			_, err := r.Step(ctx)
			wait := r.opts.Interval

			var rejected *sim.OpenError
			switch {
			case err == nil:
			case errors.Is(err, market.ErrEndOfFeed):
				_, ferr := r.Finish(ctx)
				return ferr
			case ctx.Err() != nil:
				return ctx.Err()
			case errors.As(err, &rejected):
				r.log.Warn("open rejected",
					zap.Stringer("side", rejected.Side),
					zap.Stringer("price", rejected.Price),
					zap.Stringer("stop_loss", rejected.StopLoss),
					zap.Int64("quantity", rejected.Quantity),
					zap.Error(rejected.Err))
			default:
				r.log.Error("tick failed", zap.Error(err), zap.Duration("backoff", r.opts.ErrorBackoff))
				wait = r.opts.ErrorBackoff
			}

			timer.Reset(wait)
		}
	}
}

// Finish closes the open position when CloseAtEnd is set, records the
// session and writes its org report. It is safe to call more than once.
func (r *Runner) Finish(ctx context.Context) (journal.Session, error) {
	if r.finished {
		return r.Session(), nil
	}

	if r.opts.CloseAtEnd && !r.lastPrice.IsZero() {
		if e, ok := r.ledger.ClosePosition(r.lastPrice, r.lastTime, sim.ReasonEndOfSession); ok {
			r.logEntry(ctx, e)
		}
	}
	if err := r.persist(r.lastTime); err != nil {
		return journal.Session{}, err
	}

	s := r.Session()
	if err := r.journal.RecordSession(s); err != nil {
		return s, fmt.Errorf("record session: %w", err)
	}
	if s.OrgPath != "" {
		if err := journal.WriteSessionOrg(s); err != nil {
			return s, fmt.Errorf("write session report: %w", err)
		}
	}
	r.finished = true

	r.log.Info("session finished",
		zap.String("session", s.SessionID),
		zap.Int("trades", s.Trades),
		zap.Stringer("net_pl", s.NetPL),
		zap.Stringer("return_pct", s.ReturnPct.Round(2)),
		zap.Stringer("max_dd_pct", s.MaxDDPct.Round(2)))
	return s, nil
}

// persist writes entries and balance points not yet in the journal. A
// failed write is retried on the next call.
func (r *Runner) persist(at time.Time) error {
	for _, e := range r.ledger.EntriesSince(r.persisted) {
		if err := r.journal.RecordEntry(r.record(e)); err != nil {
			return fmt.Errorf("record entry %s: %w", e.ID, err)
		}
		r.persisted++
	}

	hist := r.ledger.BalanceHistory()
	for r.balances < len(hist) {
		b := journal.BalanceSnapshot{
			SessionID: r.opts.SessionID,
			Seq:       r.balances,
			Time:      at,
			Balance:   hist[r.balances],
			Equity:    r.ledger.Equity(r.lastPrice),
		}
		if err := r.journal.RecordBalance(b); err != nil {
			return fmt.Errorf("record balance %d: %w", b.Seq, err)
		}
		r.balances++
	}
	return nil
}

func (r *Runner) record(e sim.Entry) journal.EntryRecord {
	rec := journal.EntryRecord{
		EntryID:     e.ID,
		SessionID:   r.opts.SessionID,
		PositionID:  e.PositionID,
		Symbol:      r.opts.Symbol,
		Time:        e.Time,
		Kind:        e.Kind.String(),
		Side:        e.Side.String(),
		Action:      e.Action,
		Reason:      e.Reason,
		Price:       e.Price,
		Quantity:    e.Quantity,
		Balance:     e.Balance,
		EntryPrice:  e.EntryPrice,
		StopLoss:    e.StopLoss,
		TargetPrice: e.TargetPrice,
	}
	if e.IsClose() {
		rec.PnL = decimal.NewNullDecimal(e.PnL)
	}
	return rec
}

func (r *Runner) logEntry(ctx context.Context, e sim.Entry) {
	fields := append(logger.TraceFields(ctx),
		zap.String("action", e.Action),
		zap.Stringer("price", e.Price),
		zap.Int64("quantity", e.Quantity),
		zap.Stringer("balance", e.Balance))
	if e.IsClose() {
		fields = append(fields, zap.String("reason", e.Reason), zap.Stringer("pnl", e.PnL))
		r.log.Info("position closed", fields...)
		return
	}
	planned := risk.PlannedRisk(e.Quantity, e.EntryPrice, e.StopLoss)
	fields = append(fields,
		zap.Stringer("stop_loss", e.StopLoss),
		zap.Stringer("target", e.TargetPrice),
		zap.Stringer("rr", risk.RR(e.EntryPrice, e.StopLoss, e.TargetPrice).Round(2)),
		zap.Stringer("risk_pct", risk.RiskPct(planned, r.ledger.Equity(e.Price)).Round(2)))
	r.log.Info("position opened", fields...)
}
