package market

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type FeedOptions struct {
	Symbol string // keep only this symbol; empty keeps all
	From   time.Time
	To     time.Time
}

// CSVFeed replays ticks from rows of
//
//	time,symbol,price[,signal]
//
// A header row is allowed. An empty price is reported as ErrNoData.
type CSVFeed struct {
	c    io.Closer
	r    *csv.Reader
	opts FeedOptions

	sawFirst bool
	line     int
}

func NewCSVFeed(path string, opts FeedOptions) (*CSVFeed, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	feed := NewCSVReader(f, opts)
	feed.c = f
	return feed, nil
}

// NewCSVReader reads rows from r. The caller keeps ownership of r.
func NewCSVReader(r io.Reader, opts FeedOptions) *CSVFeed {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	return &CSVFeed{r: cr, opts: opts}
}

func (f *CSVFeed) Close() error {
	if f.c != nil {
		return f.c.Close()
	}
	return nil
}

func (f *CSVFeed) Next(ctx context.Context) (Event, error) {
	for {
		if err := ctx.Err(); err != nil {
			return Event{}, err
		}

		row, err := f.r.Read()
		if errors.Is(err, io.EOF) {
			return Event{}, ErrEndOfFeed
		}
		f.line++
		if err != nil {
			return Event{}, fmt.Errorf("line %d: %w", f.line, err)
		}
		if len(row) == 0 || (len(row) == 1 && strings.TrimSpace(row[0]) == "") {
			continue
		}

		if !f.sawFirst {
			f.sawFirst = true
			if strings.EqualFold(strings.TrimSpace(row[0]), "time") {
				continue
			}
		}

		if len(row) < 3 || len(row) > 4 {
			return Event{}, fmt.Errorf("line %d: expected time,symbol,price[,signal], got %d columns", f.line, len(row))
		}

		ts, err := ParseTime(row[0])
		if err != nil {
			return Event{}, fmt.Errorf("line %d: %w", f.line, err)
		}

		sym := strings.TrimSpace(row[1])
		if f.opts.Symbol != "" && !strings.EqualFold(sym, f.opts.Symbol) {
			continue
		}
		if !inRange(ts, f.opts.From, f.opts.To) {
			continue
		}

		ev := Event{Tick: Tick{Symbol: sym, Time: ts}}
		if len(row) == 4 {
			ev.Signal = strings.TrimSpace(row[3])
		}

		raw := strings.TrimSpace(row[2])
		if raw == "" {
			return ev, ErrNoData
		}
		price, err := decimal.NewFromString(raw)
		if err != nil {
			return Event{}, fmt.Errorf("line %d: bad price %q: %w", f.line, raw, err)
		}
		if price.Sign() <= 0 {
			return ev, ErrNoData
		}
		ev.Price = price
		return ev, nil
	}
}

var timeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// ParseTime accepts RFC3339 and the plain "2006-01-02 15:04:05" form.
// Times without a zone are taken as UTC.
func ParseTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("bad time %q", s)
}

func inRange(t, from, to time.Time) bool {
	if !from.IsZero() && t.Before(from) {
		return false
	}
	if !to.IsZero() && !t.Before(to) {
		return false
	}
	return true
}
