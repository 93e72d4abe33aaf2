package sim

import (
	"slices"
	"time"

	"github.com/rustyeddy/papertrader/internal/id"
	"github.com/rustyeddy/papertrader/risk"
	"github.com/shopspring/decimal"
)

// DefaultBalance is the starting cash when none is configured.
var DefaultBalance = decimal.NewFromInt(100000)

// Ledger owns the position and cash of one simulated account. It holds at
// most one position and is not safe for concurrent use; a single owner
// drives it tick by tick.
type Ledger struct {
	initial decimal.Decimal
	balance decimal.Decimal
	pos     *Position

	log     []Entry
	history []decimal.Decimal

	newID func() string
}

type Option func(*Ledger)

// WithIDs replaces the ULID generator used for positions and entries.
func WithIDs(next func() string) Option {
	return func(l *Ledger) { l.newID = next }
}

func NewLedger(initial decimal.Decimal, opts ...Option) (*Ledger, error) {
	if initial.Sign() <= 0 {
		return nil, ErrInvalidBalance
	}
	l := &Ledger{
		initial: initial,
		balance: initial,
		history: []decimal.Decimal{initial},
		newID:   id.New,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l, nil
}

// OpenPosition sizes and opens a position so that hitting stopLoss loses
// riskPercent of the current balance. Rejected requests return an
// *OpenError and leave the ledger untouched.
func (l *Ledger) OpenPosition(side Side, price decimal.Decimal, at time.Time, stopLoss, target, riskPercent decimal.Decimal) (Entry, error) {
	reject := func(qty int64, err error) (Entry, error) {
		return Entry{}, &OpenError{
			Side:     side,
			Price:    price,
			StopLoss: stopLoss,
			Balance:  l.balance,
			Quantity: qty,
			Err:      err,
		}
	}

	if !side.Valid() {
		return reject(0, ErrInvalidSide)
	}
	if l.pos != nil {
		return reject(0, ErrPositionOpen)
	}

	rpu := riskPerUnit(side, price, stopLoss)
	if rpu.Sign() <= 0 {
		return reject(0, ErrInvalidStopLoss)
	}

	qty := risk.Calculate(risk.Inputs{
		Balance:     l.balance,
		RiskPercent: riskPercent,
		EntryPrice:  price,
		StopPrice:   stopLoss,
	}).Units
	if qty <= 0 {
		return reject(qty, ErrInvalidPositionSize)
	}

	qty, cash, err := fit(side, price, qty, l.balance)
	if err != nil {
		return reject(qty, err)
	}

	l.balance = l.balance.Add(cash)
	l.pos = &Position{
		ID:          l.newID(),
		Side:        side,
		EntryPrice:  price,
		Quantity:    qty,
		StopLoss:    stopLoss,
		TargetPrice: target,
		OpenedAt:    at,
	}

	e := Entry{
		ID:          l.newID(),
		PositionID:  l.pos.ID,
		Time:        at,
		Kind:        KindOpen,
		Side:        side,
		Action:      openAction(side),
		Price:       price,
		Quantity:    qty,
		Balance:     l.balance,
		PnL:         decimal.Zero,
		EntryPrice:  price,
		StopLoss:    stopLoss,
		TargetPrice: target,
	}
	l.append(e)
	return e, nil
}

// ClosePosition closes the open position at price. It reports false and
// does nothing when the ledger is flat. An empty reason is recorded as
// ReasonManual.
func (l *Ledger) ClosePosition(price decimal.Decimal, at time.Time, reason string) (Entry, bool) {
	if l.pos == nil {
		return Entry{}, false
	}
	if reason == "" {
		reason = ReasonManual
	}

	p := l.pos
	notional := risk.Notional(price, p.Quantity)
	if p.Side == Long {
		l.balance = l.balance.Add(notional)
	} else {
		l.balance = l.balance.Sub(notional)
	}

	e := Entry{
		ID:          l.newID(),
		PositionID:  p.ID,
		Time:        at,
		Kind:        KindClose,
		Side:        p.Side,
		Action:      closeAction(p.Side, reason),
		Reason:      reason,
		Price:       price,
		Quantity:    p.Quantity,
		Balance:     l.balance,
		PnL:         PnL(p.Side, p.EntryPrice, price, p.Quantity),
		EntryPrice:  p.EntryPrice,
		StopLoss:    p.StopLoss,
		TargetPrice: p.TargetPrice,
	}
	l.pos = nil
	l.append(e)
	return e, true
}

func (l *Ledger) append(e Entry) {
	l.log = append(l.log, e)
	l.history = append(l.history, l.balance)
}

// Position returns a copy of the open position.
func (l *Ledger) Position() (Position, bool) {
	if l.pos == nil {
		return Position{}, false
	}
	return *l.pos, true
}

func (l *Ledger) State() State {
	if l.pos == nil {
		return Flat
	}
	if l.pos.Side == Short {
		return StateShort
	}
	return StateLong
}

func (l *Ledger) Balance() decimal.Decimal        { return l.balance }
func (l *Ledger) InitialBalance() decimal.Decimal { return l.initial }

// TradeLog returns a copy of every entry in the order appended.
func (l *Ledger) TradeLog() []Entry { return slices.Clone(l.log) }

// BalanceHistory returns a copy of the balance after every open and close,
// starting with the initial balance.
func (l *Ledger) BalanceHistory() []decimal.Decimal { return slices.Clone(l.history) }

// EntriesSince returns the entries appended after the first n.
func (l *Ledger) EntriesSince(n int) []Entry {
	if n >= len(l.log) {
		return nil
	}
	return slices.Clone(l.log[n:])
}

// Equity marks the open position to mark: a long adds its market value, a
// short owes the cost of buying back.
func (l *Ledger) Equity(mark decimal.Decimal) decimal.Decimal {
	if l.pos == nil {
		return l.balance
	}
	v := risk.Notional(mark, l.pos.Quantity)
	if l.pos.Side == Short {
		return l.balance.Sub(v)
	}
	return l.balance.Add(v)
}

// UnrealizedPnL of the open position at mark, zero when flat.
func (l *Ledger) UnrealizedPnL(mark decimal.Decimal) decimal.Decimal {
	if l.pos == nil {
		return decimal.Zero
	}
	return l.pos.UnrealizedPnL(mark)
}

// RandomBalance picks a starting balance in [10000, 100000]. intn must
// behave like math/rand.Intn.
func RandomBalance(intn func(int) int) decimal.Decimal {
	const lo, hi = 10000, 100000
	return decimal.NewFromInt(int64(lo + intn(hi-lo+1)))
}
