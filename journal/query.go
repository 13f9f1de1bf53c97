package journal

import (
	"database/sql"
	"fmt"
)

// GetRun returns one run summary by id.
func (j *SQLiteJournal) GetRun(runID string) (RunRecord, error) {
	var rec RunRecord

	row := j.db.QueryRow(`
		SELECT run_id, strategy, instrument, created, start_balance, end_balance, transactions
		FROM runs
		WHERE run_id = ?`, runID)

	err := row.Scan(
		&rec.RunID,
		&rec.Strategy,
		&rec.Instrument,
		&rec.Created,
		&rec.StartBalance,
		&rec.EndBalance,
		&rec.Transactions,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return RunRecord{}, fmt.Errorf("run %q not found", runID)
		}
		return RunRecord{}, err
	}
	return rec, nil
}

// ListTransactionsByRun returns a run's fills in chronological order.
func (j *SQLiteJournal) ListTransactionsByRun(runID string) ([]TransactionRecord, error) {
	rows, err := j.db.Query(`
		SELECT id, run_id, code, time, side, price, volume, remain_vol, remain_cost
		FROM transactions
		WHERE run_id = ?
		ORDER BY time ASC, id ASC`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []TransactionRecord
	for rows.Next() {
		var rec TransactionRecord
		if err := rows.Scan(
			&rec.ID,
			&rec.RunID,
			&rec.Code,
			&rec.Time,
			&rec.Side,
			&rec.Price,
			&rec.Volume,
			&rec.RemainVol,
			&rec.RemainCost,
		); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// ListEquityByRun returns a run's equity curve in chronological order.
func (j *SQLiteJournal) ListEquityByRun(runID string) ([]EquitySnapshot, error) {
	rows, err := j.db.Query(`
		SELECT run_id, time, balance, available_balance, frozen_balance, portfolio_value
		FROM equity
		WHERE run_id = ?
		ORDER BY time ASC`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []EquitySnapshot
	for rows.Next() {
		var rec EquitySnapshot
		if err := rows.Scan(
			&rec.RunID,
			&rec.Time,
			&rec.Balance,
			&rec.AvailableBalance,
			&rec.FrozenBalance,
			&rec.PortfolioValue,
		); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
