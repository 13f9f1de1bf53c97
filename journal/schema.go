package journal

const Schema = `
CREATE TABLE IF NOT EXISTS runs (
	run_id TEXT PRIMARY KEY,
	strategy TEXT NOT NULL,
	instrument TEXT NOT NULL,
	created DATETIME NOT NULL,
	start_balance REAL NOT NULL,
	end_balance REAL NOT NULL,
	transactions INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS transactions (
	id TEXT PRIMARY KEY,
	run_id TEXT NOT NULL,
	code TEXT NOT NULL,
	time INTEGER NOT NULL,
	side TEXT NOT NULL,
	price REAL NOT NULL,
	volume INTEGER NOT NULL,
	remain_vol INTEGER NOT NULL,
	remain_cost REAL NOT NULL
);

CREATE TABLE IF NOT EXISTS equity (
	run_id TEXT NOT NULL,
	time INTEGER NOT NULL,
	balance REAL NOT NULL,
	available_balance REAL NOT NULL,
	frozen_balance REAL NOT NULL,
	portfolio_value REAL NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_transactions_run ON transactions(run_id, time);
CREATE INDEX IF NOT EXISTS idx_equity_run ON equity(run_id, time);
`
