package sim

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

type EntryKind int

const (
	KindOpen EntryKind = iota + 1
	KindClose
)

func (k EntryKind) String() string {
	if k == KindClose {
		return "close"
	}
	return "open"
}

// Entry is one line of the trade log. Entries are appended by the Ledger
// and never modified afterwards.
type Entry struct {
	ID         string
	PositionID string
	Time       time.Time
	Kind       EntryKind
	Side       Side
	Action     string
	Reason     string

	Price    decimal.Decimal
	Quantity int64
	Balance  decimal.Decimal // balance after this entry

	// PnL is zero on open entries.
	PnL         decimal.Decimal
	EntryPrice  decimal.Decimal
	StopLoss    decimal.Decimal
	TargetPrice decimal.Decimal
}

// IsClose reports whether e completed a trade.
func (e Entry) IsClose() bool { return e.Kind == KindClose }

func openAction(s Side) string { return "Open " + s.String() }

func closeAction(s Side, reason string) string {
	return fmt.Sprintf("Close %s (%s)", s, reason)
}
