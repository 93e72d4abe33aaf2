package journal

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
)

const entryColumns = `entry_id, session_id, position_id, symbol, time, kind, side, action, reason,
	price, quantity, balance, pnl, entry_price, stop_loss, target_price`

type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(s scanner) (EntryRecord, error) {
	var rec EntryRecord
	err := s.Scan(
		&rec.EntryID,
		&rec.SessionID,
		&rec.PositionID,
		&rec.Symbol,
		&rec.Time,
		&rec.Kind,
		&rec.Side,
		&rec.Action,
		&rec.Reason,
		&rec.Price,
		&rec.Quantity,
		&rec.Balance,
		&rec.PnL,
		&rec.EntryPrice,
		&rec.StopLoss,
		&rec.TargetPrice,
	)
	return rec, err
}

func (j *SQLite) queryEntries(query string, args ...any) ([]EntryRecord, error) {
	rows, err := j.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []EntryRecord
	for rows.Next() {
		rec, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// GetEntry returns a single trade log entry by ID.
func (j *SQLite) GetEntry(entryID string) (EntryRecord, error) {
	row := j.db.QueryRow(`SELECT `+entryColumns+` FROM entries WHERE entry_id = ?`, entryID)
	rec, err := scanEntry(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return EntryRecord{}, fmt.Errorf("entry %q not found", entryID)
		}
		return EntryRecord{}, err
	}
	return rec, nil
}

// ListEntries returns the entries of a session in log order, or of every
// session when sessionID is empty.
func (j *SQLite) ListEntries(sessionID string) ([]EntryRecord, error) {
	if sessionID == "" {
		return j.queryEntries(`SELECT ` + entryColumns + ` FROM entries ORDER BY session_id, entry_id`)
	}
	return j.queryEntries(`SELECT `+entryColumns+` FROM entries WHERE session_id = ? ORDER BY entry_id`, sessionID)
}

// ListEntriesBetween returns entries whose time is within [start, end).
func (j *SQLite) ListEntriesBetween(start, end time.Time) ([]EntryRecord, error) {
	return j.queryEntries(`
		SELECT `+entryColumns+`
		FROM entries
		WHERE time >= ? AND time < ?
		ORDER BY time ASC, entry_id ASC`, start, end)
}

// ListBalances returns the balance history of a session in order.
func (j *SQLite) ListBalances(sessionID string) ([]BalanceSnapshot, error) {
	rows, err := j.db.Query(`
		SELECT session_id, seq, time, balance, equity
		FROM balances
		WHERE session_id = ?
		ORDER BY seq ASC`, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []BalanceSnapshot
	for rows.Next() {
		var b BalanceSnapshot
		if err := rows.Scan(&b.SessionID, &b.Seq, &b.Time, &b.Balance, &b.Equity); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// ListSessions returns every recorded session, newest first.
func (j *SQLite) ListSessions() ([]Session, error) {
	rows, err := j.db.Query(`
		SELECT session_id, created, symbol, recommender, feed, risk_pct, start_time, end_time,
		       trades, wins, losses, start_balance, end_balance, net_pl, return_pct, win_rate,
		       avg_win, max_dd_pct, notes
		FROM sessions
		ORDER BY session_id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Session
	for rows.Next() {
		var (
			s     Session
			notes string
		)
		if err := rows.Scan(
			&s.SessionID, &s.Created, &s.Symbol, &s.Recommender, &s.Feed, &s.RiskPct, &s.Start, &s.End,
			&s.Trades, &s.Wins, &s.Losses, &s.StartBalance, &s.EndBalance, &s.NetPL, &s.ReturnPct, &s.WinRate,
			&s.AvgWin, &s.MaxDDPct, &notes,
		); err != nil {
			return nil, err
		}
		if notes != "" {
			s.Notes = strings.Split(notes, "\n")
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
