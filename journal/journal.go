// journal/journal.go
package journal

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryRecord is one trade log line as persisted. Close rows carry PnL;
// open rows leave it null.
type EntryRecord struct {
	EntryID    string
	SessionID  string
	PositionID string
	Symbol     string
	Time       time.Time
	Kind       string // "open" or "close"
	Side       string
	Action     string
	Reason     string

	Price    decimal.Decimal
	Quantity int64
	Balance  decimal.Decimal

	PnL         decimal.NullDecimal
	EntryPrice  decimal.Decimal
	StopLoss    decimal.Decimal
	TargetPrice decimal.Decimal
}

// IsClose reports whether the row completed a trade.
func (r EntryRecord) IsClose() bool { return r.Kind == "close" }

// BalanceSnapshot is one point of the balance history. Seq 0 is the
// initial balance.
type BalanceSnapshot struct {
	SessionID string
	Seq       int
	Time      time.Time
	Balance   decimal.Decimal
	Equity    decimal.Decimal
}

type Journal interface {
	RecordEntry(EntryRecord) error
	RecordBalance(BalanceSnapshot) error
	RecordSession(Session) error
	Close() error
}

// Reader is implemented by the journals that can be queried back.
type Reader interface {
	ListEntries(sessionID string) ([]EntryRecord, error)
	ListBalances(sessionID string) ([]BalanceSnapshot, error)
	ListSessions() ([]Session, error)
}

// Discard is a Journal that drops everything.
type Discard struct{}

func (Discard) RecordEntry(EntryRecord) error       { return nil }
func (Discard) RecordBalance(BalanceSnapshot) error { return nil }
func (Discard) RecordSession(Session) error         { return nil }
func (Discard) Close() error                        { return nil }
