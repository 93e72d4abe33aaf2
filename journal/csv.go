// journal/csv.go
package journal

import (
	"encoding/csv"
	"os"
	"strconv"
	"time"
)

// CSV appends entries and balances to two files. Sessions are not
// recorded.
type CSV struct {
	entries  *csv.Writer
	balances *csv.Writer
	ef, bf   *os.File
}

var (
	entryHeader   = []string{"entry_id", "session_id", "position_id", "symbol", "time", "kind", "side", "action", "reason", "price", "quantity", "balance", "pnl", "entry_price", "stop_loss", "target_price"}
	balanceHeader = []string{"session_id", "seq", "time", "balance", "equity"}
)

func NewCSV(entriesPath, balancesPath string) (*CSV, error) {
	ef, err := os.Create(entriesPath)
	if err != nil {
		return nil, err
	}
	bf, err := os.Create(balancesPath)
	if err != nil {
		ef.Close()
		return nil, err
	}

	ew := csv.NewWriter(ef)
	bw := csv.NewWriter(bf)

	if err := ew.Write(entryHeader); err != nil {
		return nil, err
	}
	if err := bw.Write(balanceHeader); err != nil {
		return nil, err
	}

	ew.Flush()
	if err := ew.Error(); err != nil {
		return nil, err
	}
	bw.Flush()
	if err := bw.Error(); err != nil {
		return nil, err
	}

	return &CSV{ew, bw, ef, bf}, nil
}

func (j *CSV) RecordEntry(e EntryRecord) error {
	pnl := ""
	if e.PnL.Valid {
		pnl = e.PnL.Decimal.String()
	}
	err := j.entries.Write([]string{
		e.EntryID,
		e.SessionID,
		e.PositionID,
		e.Symbol,
		e.Time.Format(time.RFC3339),
		e.Kind,
		e.Side,
		e.Action,
		e.Reason,
		e.Price.String(),
		strconv.FormatInt(e.Quantity, 10),
		e.Balance.String(),
		pnl,
		e.EntryPrice.String(),
		e.StopLoss.String(),
		e.TargetPrice.String(),
	})
	if err != nil {
		return err
	}
	j.entries.Flush()
	return j.entries.Error()
}

func (j *CSV) RecordBalance(b BalanceSnapshot) error {
	err := j.balances.Write([]string{
		b.SessionID,
		strconv.Itoa(b.Seq),
		b.Time.Format(time.RFC3339),
		b.Balance.String(),
		b.Equity.String(),
	})
	if err != nil {
		return err
	}

	j.balances.Flush()
	return j.balances.Error()
}

func (j *CSV) RecordSession(Session) error { return nil }

func (j *CSV) Close() error {
	j.entries.Flush()
	if err := j.entries.Error(); err != nil {
		return err
	}
	j.balances.Flush()
	if err := j.balances.Error(); err != nil {
		return err
	}

	if err := j.ef.Close(); err != nil {
		return err
	}
	if err := j.bf.Close(); err != nil {
		return err
	}
	return nil
}
