package journal

import (
	"database/sql"

	_ "github.com/mattn/go-sqlite3"
)

type SQLiteJournal struct {
	db *sql.DB
}

func NewSQLite(path string) (*SQLiteJournal, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(Schema); err != nil {
		return nil, err
	}

	return &SQLiteJournal{db: db}, nil
}

func (j *SQLiteJournal) RecordRun(r RunRecord) error {
	_, err := j.db.Exec(`
		INSERT INTO runs
		(run_id, strategy, instrument, created, start_balance, end_balance, transactions)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		r.RunID, r.Strategy, r.Instrument, r.Created,
		r.StartBalance, r.EndBalance, r.Transactions,
	)
	return err
}

func (j *SQLiteJournal) RecordTransaction(t TransactionRecord) error {
	_, err := j.db.Exec(`
		INSERT INTO transactions
		(id, run_id, code, time, side, price, volume, remain_vol, remain_cost)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.ID, t.RunID, t.Code, t.Time, t.Side,
		t.Price, t.Volume, t.RemainVol, t.RemainCost,
	)
	return err
}

func (j *SQLiteJournal) RecordEquity(e EquitySnapshot) error {
	_, err := j.db.Exec(`
		INSERT INTO equity
		(run_id, time, balance, available_balance, frozen_balance, portfolio_value)
		VALUES (?, ?, ?, ?, ?, ?)`,
		e.RunID, e.Time, e.Balance, e.AvailableBalance, e.FrozenBalance, e.PortfolioValue,
	)
	return err
}

func (j *SQLiteJournal) Close() error {
	return j.db.Close()
}
