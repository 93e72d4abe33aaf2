package market

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	// ErrEndOfFeed is returned by Next once a feed has nothing left.
	ErrEndOfFeed = errors.New("end of feed")
	// ErrNoData marks a tick that arrived without a usable price. The
	// event still carries its time and symbol.
	ErrNoData = errors.New("no price data")
)

type Tick struct {
	Symbol string
	Time   time.Time
	Price  decimal.Decimal
}

// Event is a tick plus whatever signal label the source attached to it.
type Event struct {
	Tick
	Signal string
}

// Feed delivers ticks in time order to a single reader.
type Feed interface {
	Next(ctx context.Context) (Event, error)
	Close() error
}

// SliceFeed replays a fixed list of events.
type SliceFeed struct {
	events []Event
	pos    int
}

func NewSliceFeed(events ...Event) *SliceFeed {
	return &SliceFeed{events: events}
}

func (f *SliceFeed) Next(ctx context.Context) (Event, error) {
	if err := ctx.Err(); err != nil {
		return Event{}, err
	}
	if f.pos >= len(f.events) {
		return Event{}, ErrEndOfFeed
	}
	ev := f.events[f.pos]
	f.pos++
	if ev.Price.Sign() <= 0 {
		return ev, ErrNoData
	}
	return ev, nil
}

func (f *SliceFeed) Close() error { return nil }
