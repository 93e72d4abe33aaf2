package journal

import (
	"database/sql"
	"path/filepath"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSQLite(t *testing.T) (*SQLite, string) {
	t.Helper()

	dir := t.TempDir()
	path := filepath.Join(dir, "test.db")

	j, err := NewSQLite(path)
	require.NoError(t, err)

	return j, path
}

func TestSQLiteSchemaCreated(t *testing.T) {
	t.Parallel()

	j, path := newTestSQLite(t)
	assert.NoError(t, j.Close())

	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	rows, err := db.Query(`SELECT name FROM sqlite_master WHERE type='table' AND name IN ('entries','balances','sessions')`)
	require.NoError(t, err)
	defer rows.Close()

	found := map[string]bool{}
	for rows.Next() {
		var name string
		assert.NoError(t, rows.Scan(&name))
		found[name] = true
	}
	assert.NoError(t, rows.Err())

	assert.True(t, found["entries"])
	assert.True(t, found["balances"])
	assert.True(t, found["sessions"])
}

func TestSQLiteRecordEntry(t *testing.T) {
	t.Parallel()

	j, path := newTestSQLite(t)

	assert.NoError(t, j.RecordEntry(openRecord()))
	assert.NoError(t, j.RecordEntry(closeRecord()))
	assert.NoError(t, j.Close())

	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	var (
		reason string
		price  string
		qty    int64
		pnl    sql.NullString
	)
	err = db.QueryRow(`SELECT reason, price, quantity, pnl FROM entries WHERE entry_id = ?`, "E-000002").
		Scan(&reason, &price, &qty, &pnl)
	require.NoError(t, err)

	assert.Equal(t, "Target Reached", reason)
	assert.Equal(t, "50100", price)
	assert.Equal(t, int64(400), qty)
	assert.True(t, pnl.Valid)
	assert.Equal(t, "40000", pnl.String)

	err = db.QueryRow(`SELECT pnl FROM entries WHERE entry_id = ?`, "E-000001").Scan(&pnl)
	require.NoError(t, err)
	assert.False(t, pnl.Valid)
}

func TestSQLiteRecordEntryDuplicateID(t *testing.T) {
	t.Parallel()

	j, _ := newTestSQLite(t)
	t.Cleanup(func() { _ = j.Close() })

	assert.NoError(t, j.RecordEntry(openRecord()))
	assert.Error(t, j.RecordEntry(openRecord()))
}

func TestSQLiteRecordBalance(t *testing.T) {
	t.Parallel()

	j, path := newTestSQLite(t)

	assert.NoError(t, j.RecordBalance(BalanceSnapshot{SessionID: "S1", Seq: 0, Time: t0, Balance: d("100000"), Equity: d("100000")}))
	assert.NoError(t, j.RecordBalance(BalanceSnapshot{SessionID: "S1", Seq: 1, Time: t1, Balance: d("80000000"), Equity: d("100000")}))
	assert.NoError(t, j.Close())

	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	var count int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM balances WHERE session_id = 'S1'`).Scan(&count))
	assert.Equal(t, 2, count)
}

func TestSQLiteRecordSessionReplaces(t *testing.T) {
	t.Parallel()

	j, _ := newTestSQLite(t)
	t.Cleanup(func() { _ = j.Close() })

	s := testSession()
	require.NoError(t, j.RecordSession(s))

	s.Trades = 2
	s.Notes = nil
	require.NoError(t, j.RecordSession(s))

	got, err := j.ListSessions()
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 2, got[0].Trades)
	assert.Empty(t, got[0].Notes)
}
