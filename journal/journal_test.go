package journal

import (
	"time"

	"github.com/shopspring/decimal"
)

var (
	t0 = time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	t1 = t0.Add(time.Hour)
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func openRecord() EntryRecord {
	return EntryRecord{
		EntryID:     "E-000001",
		SessionID:   "S1",
		PositionID:  "P-000001",
		Symbol:      "BTC-USD",
		Time:        t0,
		Kind:        "open",
		Side:        "Long",
		Action:      "Buy",
		Price:       d("50000"),
		Quantity:    400,
		Balance:     d("80000000"),
		EntryPrice:  d("50000"),
		StopLoss:    d("49995"),
		TargetPrice: d("50100"),
	}
}

func closeRecord() EntryRecord {
	return EntryRecord{
		EntryID:     "E-000002",
		SessionID:   "S1",
		PositionID:  "P-000001",
		Symbol:      "BTC-USD",
		Time:        t1,
		Kind:        "close",
		Side:        "Long",
		Action:      "Sell",
		Reason:      "Target Reached",
		Price:       d("50100"),
		Quantity:    400,
		Balance:     d("100040000"),
		PnL:         decimal.NewNullDecimal(d("40000")),
		EntryPrice:  d("50000"),
		StopLoss:    d("49995"),
		TargetPrice: d("50100"),
	}
}

func testSession() Session {
	return Session{
		SessionID:    "S1",
		Created:      t1,
		Symbol:       "BTC-USD",
		Recommender:  "scripted",
		Feed:         "ticks.csv",
		RiskPct:      d("2"),
		Start:        t0,
		End:          t1,
		Trades:       1,
		Wins:         1,
		StartBalance: d("100000"),
		EndBalance:   d("140000"),
		NetPL:        d("40000"),
		ReturnPct:    d("40"),
		WinRate:      d("100"),
		AvgWin:       decimal.NewNullDecimal(d("40000")),
		MaxDDPct:     d("0"),
		Notes:        []string{"first run", "target hit"},
	}
}
