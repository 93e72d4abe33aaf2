package journal

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEntryModelRoundTrip(t *testing.T) {
	t.Parallel()

	rec := closeRecord()
	assert.Equal(t, rec, toEntryModel(rec).record())
}

func TestSessionModelNotes(t *testing.T) {
	t.Parallel()

	s := testSession()
	m := toSessionModel(s)
	assert.Equal(t, "first run\ntarget hit", m.Notes)
	assert.Equal(t, s, m.record())

	s.Notes = nil
	assert.Nil(t, toSessionModel(s).record().Notes)
}

func TestModelTableNames(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "entries", entryModel{}.TableName())
	assert.Equal(t, "balances", balanceModel{}.TableName())
	assert.Equal(t, "sessions", sessionModel{}.TableName())
}

func TestNewPostgresBadDSN(t *testing.T) {
	t.Parallel()

	_, err := NewPostgres("host=127.0.0.1 port=1 user=x dbname=x sslmode=disable connect_timeout=1")
	assert.Error(t, err)
}
