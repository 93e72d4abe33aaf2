package sim

import (
	"time"

	"github.com/shopspring/decimal"
)

type Side int

const (
	Long Side = iota + 1
	Short
)

func (s Side) String() string {
	switch s {
	case Long:
		return "Long"
	case Short:
		return "Short"
	}
	return "Unknown"
}

// Valid reports whether s is Long or Short.
func (s Side) Valid() bool { return s == Long || s == Short }

// State is the ledger's position state.
type State int

const (
	Flat State = iota
	StateLong
	StateShort
)

func (s State) String() string {
	switch s {
	case StateLong:
		return "Long"
	case StateShort:
		return "Short"
	}
	return "Flat"
}

// Position is the single open position a Ledger may hold. It is created by
// OpenPosition and discarded by ClosePosition; nothing edits it in between.
type Position struct {
	ID          string
	Side        Side
	EntryPrice  decimal.Decimal
	Quantity    int64
	StopLoss    decimal.Decimal
	TargetPrice decimal.Decimal
	OpenedAt    time.Time
}

// UnrealizedPnL is what closing at mark would realize.
func (p Position) UnrealizedPnL(mark decimal.Decimal) decimal.Decimal {
	return PnL(p.Side, p.EntryPrice, mark, p.Quantity)
}

// Progress is the distance travelled from entry toward target as a
// fraction of the full entry-to-target distance. It is 0 when the target
// sits on the entry.
func (p Position) Progress(mark decimal.Decimal) decimal.Decimal {
	span := p.TargetPrice.Sub(p.EntryPrice).Abs()
	if span.IsZero() {
		return decimal.Zero
	}
	return mark.Sub(p.EntryPrice).Abs().Div(span)
}
