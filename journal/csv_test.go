package journal

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestCSVJournalHeaders(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	entriesPath := filepath.Join(dir, "entries.csv")
	balancesPath := filepath.Join(dir, "balances.csv")

	j, err := NewCSV(entriesPath, balancesPath)
	require.NoError(t, err)
	assert.NoError(t, j.Close())

	entries := readCSV(t, entriesPath)
	require.Len(t, entries, 1)
	assert.Equal(t, entryHeader, entries[0])

	balances := readCSV(t, balancesPath)
	require.Len(t, balances, 1)
	assert.Equal(t, []string{"session_id", "seq", "time", "balance", "equity"}, balances[0])
}

func TestCSVJournalRecordEntry(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	entriesPath := filepath.Join(dir, "entries.csv")
	balancesPath := filepath.Join(dir, "balances.csv")

	j, err := NewCSV(entriesPath, balancesPath)
	require.NoError(t, err)

	require.NoError(t, j.RecordEntry(openRecord()))
	require.NoError(t, j.RecordEntry(closeRecord()))
	require.NoError(t, j.RecordSession(testSession()))
	require.NoError(t, j.Close())

	rows := readCSV(t, entriesPath)
	require.Len(t, rows, 3)

	open := rows[1]
	assert.Equal(t, "E-000001", open[0])
	assert.Equal(t, "2024-01-02T03:04:05Z", open[4])
	assert.Equal(t, "open", open[5])
	assert.Equal(t, "Buy", open[7])
	assert.Equal(t, "400", open[10])
	assert.Equal(t, "", open[12])

	closed := rows[2]
	assert.Equal(t, "close", closed[5])
	assert.Equal(t, "Target Reached", closed[8])
	assert.Equal(t, "50100", closed[9])
	assert.Equal(t, "100040000", closed[11])
	assert.Equal(t, "40000", closed[12])
}

func TestCSVJournalRecordBalance(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	entriesPath := filepath.Join(dir, "entries.csv")
	balancesPath := filepath.Join(dir, "balances.csv")

	j, err := NewCSV(entriesPath, balancesPath)
	require.NoError(t, err)

	require.NoError(t, j.RecordBalance(BalanceSnapshot{SessionID: "S1", Seq: 0, Time: t0, Balance: d("100000"), Equity: d("100000")}))
	require.NoError(t, j.RecordBalance(BalanceSnapshot{SessionID: "S1", Seq: 1, Time: t1, Balance: d("75000.5"), Equity: d("99000")}))
	require.NoError(t, j.Close())

	rows := readCSV(t, balancesPath)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"S1", "0", "2024-01-02T03:04:05Z", "100000", "100000"}, rows[1])
	assert.Equal(t, []string{"S1", "1", "2024-01-02T04:04:05Z", "75000.5", "99000"}, rows[2])
}

func TestNewCSVBadPath(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	_, err := NewCSV(filepath.Join(dir, "missing", "entries.csv"), filepath.Join(dir, "balances.csv"))
	assert.Error(t, err)
}
