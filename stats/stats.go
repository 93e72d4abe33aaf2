package stats

import (
	"github.com/rustyeddy/papertrader/sim"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Summary is the performance of one ledger. Only close entries count as
// trades.
type Summary struct {
	TotalTrades int
	Wins        int
	Losses      int

	// WinRate is a fraction in [0, 1]; 0 when nothing has closed.
	WinRate decimal.Decimal

	// AverageWin and AverageLoss are invalid when there is nothing to
	// average.
	AverageWin  decimal.NullDecimal
	AverageLoss decimal.NullDecimal

	GrossWin  decimal.Decimal
	GrossLoss decimal.Decimal
	NetPL     decimal.Decimal

	// ProfitFactor is GrossWin/|GrossLoss|, invalid without losses.
	ProfitFactor decimal.NullDecimal

	StartBalance decimal.Decimal
	EndBalance   decimal.Decimal
	ReturnPct    decimal.Decimal
	MaxDrawdown  decimal.Decimal

	EquityCurve []decimal.Decimal
}

// Compute derives a Summary from a trade log and balance history. It never
// fails; an empty history yields a zero Summary.
func Compute(entries []sim.Entry, balances []decimal.Decimal) Summary {
	s := Summary{
		WinRate:     decimal.Zero,
		GrossWin:    decimal.Zero,
		GrossLoss:   decimal.Zero,
		NetPL:       decimal.Zero,
		ReturnPct:   decimal.Zero,
		MaxDrawdown: MaxDrawdown(balances),
		EquityCurve: append([]decimal.Decimal(nil), balances...),
	}

	for _, e := range entries {
		if !e.IsClose() {
			continue
		}
		s.TotalTrades++
		s.NetPL = s.NetPL.Add(e.PnL)
		switch e.PnL.Sign() {
		case 1:
			s.Wins++
			s.GrossWin = s.GrossWin.Add(e.PnL)
		case -1:
			s.Losses++
			s.GrossLoss = s.GrossLoss.Add(e.PnL)
		}
	}

	if s.TotalTrades > 0 {
		s.WinRate = decimal.NewFromInt(int64(s.Wins)).Div(decimal.NewFromInt(int64(s.TotalTrades)))
	}
	if s.Wins > 0 {
		s.AverageWin = valid(s.GrossWin.Div(decimal.NewFromInt(int64(s.Wins))))
	}
	if s.Losses > 0 {
		s.AverageLoss = valid(s.GrossLoss.Div(decimal.NewFromInt(int64(s.Losses))))
		s.ProfitFactor = valid(s.GrossWin.Div(s.GrossLoss.Abs()))
	}

	if len(balances) > 0 {
		s.StartBalance = balances[0]
		s.EndBalance = balances[len(balances)-1]
		if s.StartBalance.Sign() > 0 {
			s.ReturnPct = s.EndBalance.Sub(s.StartBalance).Div(s.StartBalance).Mul(hundred)
		}
	}

	return s
}

// FromLedger is Compute over l's current log and history.
func FromLedger(l *sim.Ledger) Summary {
	return Compute(l.TradeLog(), l.BalanceHistory())
}

// Recent returns the last n entries of log, oldest first.
func Recent(log []sim.Entry, n int) []sim.Entry {
	if n <= 0 {
		return nil
	}
	if len(log) > n {
		log = log[len(log)-n:]
	}
	return append([]sim.Entry(nil), log...)
}

func valid(v decimal.Decimal) decimal.NullDecimal {
	return decimal.NullDecimal{Decimal: v, Valid: true}
}
