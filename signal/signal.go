// Package signal supplies the trading recommendation for each tick. The
// simulator treats it as an outside collaborator: it only reads the label
// and the levels to use if a position gets opened.
package signal

import (
	"context"
	"fmt"
	"strings"

	"github.com/rustyeddy/papertrader/market"
	"github.com/rustyeddy/papertrader/sim"
	"github.com/shopspring/decimal"
)

type Recommendation struct {
	Label       string
	Reason      string
	StopLoss    decimal.Decimal
	TargetPrice decimal.Decimal
	RiskPercent decimal.Decimal
}

// Input builds the ledger input for this recommendation at ev.
func (r Recommendation) Input(ev market.Event) sim.Input {
	return sim.Input{
		Recommendation: r.Label,
		Price:          ev.Price,
		Time:           ev.Time,
		StopLoss:       r.StopLoss,
		TargetPrice:    r.TargetPrice,
		RiskPercent:    r.RiskPercent,
	}
}

type Recommender interface {
	Recommend(ctx context.Context, ev market.Event) (Recommendation, error)
}

// Scripted takes the label the feed attached to each event.
type Scripted struct {
	Levels Levels
}

func (s Scripted) Recommend(ctx context.Context, ev market.Event) (Recommendation, error) {
	return s.Levels.Apply(ev.Signal, "scripted", ev.Price), nil
}

// Fixed recommends the same label on every tick.
type Fixed struct {
	Label  string
	Levels Levels
}

func (f Fixed) Recommend(ctx context.Context, ev market.Event) (Recommendation, error) {
	return f.Levels.Apply(f.Label, "fixed", ev.Price), nil
}

// Spec names a recommender and its parameters.
type Spec struct {
	Kind   string // scripted, fixed or ema_cross
	Label  string // fixed only
	Fast   int    // ema_cross only
	Slow   int
	Levels Levels
}

// New builds the recommender named by spec.Kind.
func New(spec Spec) (Recommender, error) {
	switch strings.ToLower(spec.Kind) {
	case "", "scripted":
		return Scripted{Levels: spec.Levels}, nil
	case "fixed":
		if spec.Label == "" {
			return nil, fmt.Errorf("fixed recommender needs a label")
		}
		return Fixed{Label: spec.Label, Levels: spec.Levels}, nil
	case "ema_cross":
		return NewEMACross(spec.Fast, spec.Slow, spec.Levels)
	}
	return nil, fmt.Errorf("unknown recommender %q", spec.Kind)
}
