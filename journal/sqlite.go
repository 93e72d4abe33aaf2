package journal

import (
	"database/sql"
	"strings"

	_ "github.com/mattn/go-sqlite3"
)

type SQLite struct {
	db *sql.DB
}

func NewSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(Schema); err != nil {
		db.Close()
		return nil, err
	}

	return &SQLite{db: db}, nil
}

func (j *SQLite) RecordEntry(e EntryRecord) error {
	_, err := j.db.Exec(`
		INSERT INTO entries
		(entry_id, session_id, position_id, symbol, time, kind, side, action, reason,
		 price, quantity, balance, pnl, entry_price, stop_loss, target_price)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.EntryID, e.SessionID, e.PositionID, e.Symbol, e.Time, e.Kind, e.Side, e.Action, e.Reason,
		e.Price, e.Quantity, e.Balance, e.PnL, e.EntryPrice, e.StopLoss, e.TargetPrice,
	)
	return err
}

func (j *SQLite) RecordBalance(b BalanceSnapshot) error {
	_, err := j.db.Exec(`
		INSERT INTO balances
		(session_id, seq, time, balance, equity)
		VALUES (?, ?, ?, ?, ?)`,
		b.SessionID, b.Seq, b.Time, b.Balance, b.Equity,
	)
	return err
}

func (j *SQLite) RecordSession(s Session) error {
	_, err := j.db.Exec(`
		INSERT OR REPLACE INTO sessions
		(session_id, created, symbol, recommender, feed, risk_pct, start_time, end_time,
		 trades, wins, losses, start_balance, end_balance, net_pl, return_pct, win_rate,
		 avg_win, max_dd_pct, notes)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		s.SessionID, s.Created, s.Symbol, s.Recommender, s.Feed, s.RiskPct, s.Start, s.End,
		s.Trades, s.Wins, s.Losses, s.StartBalance, s.EndBalance, s.NetPL, s.ReturnPct, s.WinRate,
		s.AvgWin, s.MaxDDPct, strings.Join(s.Notes, "\n"),
	)
	return err
}

func (j *SQLite) Close() error {
	return j.db.Close()
}
