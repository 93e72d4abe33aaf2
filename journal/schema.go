// journal/schema.go
package journal

// Decimals are stored as TEXT so they round-trip exactly.
const Schema = `
CREATE TABLE IF NOT EXISTS entries (
	entry_id TEXT PRIMARY KEY,
	session_id TEXT NOT NULL,
	position_id TEXT NOT NULL,
	symbol TEXT NOT NULL,
	time DATETIME NOT NULL,
	kind TEXT NOT NULL,
	side TEXT NOT NULL,
	action TEXT NOT NULL,
	reason TEXT NOT NULL,
	price TEXT NOT NULL,
	quantity INTEGER NOT NULL,
	balance TEXT NOT NULL,
	pnl TEXT,
	entry_price TEXT NOT NULL,
	stop_loss TEXT NOT NULL,
	target_price TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS balances (
	session_id TEXT NOT NULL,
	seq INTEGER NOT NULL,
	time DATETIME NOT NULL,
	balance TEXT NOT NULL,
	equity TEXT NOT NULL,
	PRIMARY KEY (session_id, seq)
);

CREATE TABLE IF NOT EXISTS sessions (
	session_id TEXT PRIMARY KEY,
	created DATETIME NOT NULL,
	symbol TEXT NOT NULL,
	recommender TEXT NOT NULL,
	feed TEXT NOT NULL,
	risk_pct TEXT NOT NULL,
	start_time DATETIME NOT NULL,
	end_time DATETIME NOT NULL,
	trades INTEGER NOT NULL,
	wins INTEGER NOT NULL,
	losses INTEGER NOT NULL,
	start_balance TEXT NOT NULL,
	end_balance TEXT NOT NULL,
	net_pl TEXT NOT NULL,
	return_pct TEXT NOT NULL,
	win_rate TEXT NOT NULL,
	avg_win TEXT,
	max_dd_pct TEXT NOT NULL,
	notes TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_entries_time ON entries(time);
CREATE INDEX IF NOT EXISTS idx_entries_session ON entries(session_id);
`
