package journal

import (
	"encoding/csv"
	"os"
	"strconv"
)

// CSVJournal writes fills and the equity curve to two CSV files. Run
// summaries are not persisted in this form; use the SQLite journal
// when run history matters.
type CSVJournal struct {
	transactions *csv.Writer
	equity       *csv.Writer
	tf, ef       *os.File
}

func NewCSV(transactionsPath, equityPath string) (*CSVJournal, error) {
	tf, err := os.Create(transactionsPath)
	if err != nil {
		return nil, err
	}
	ef, err := os.Create(equityPath)
	if err != nil {
		tf.Close()
		return nil, err
	}

	tw := csv.NewWriter(tf)
	ew := csv.NewWriter(ef)

	if err := tw.Write([]string{"id", "run_id", "code", "time", "side", "price", "volume", "remain_vol", "remain_cost"}); err != nil {
		return nil, err
	}
	if err := ew.Write([]string{"run_id", "time", "balance", "available_balance", "frozen_balance", "portfolio_value"}); err != nil {
		return nil, err
	}

	tw.Flush()
	if err := tw.Error(); err != nil {
		return nil, err
	}
	ew.Flush()
	if err := ew.Error(); err != nil {
		return nil, err
	}

	return &CSVJournal{transactions: tw, equity: ew, tf: tf, ef: ef}, nil
}

func (j *CSVJournal) RecordRun(RunRecord) error { return nil }

func (j *CSVJournal) RecordTransaction(t TransactionRecord) error {
	err := j.transactions.Write([]string{
		t.ID,
		t.RunID,
		t.Code,
		strconv.FormatInt(t.Time, 10),
		t.Side,
		f(t.Price),
		strconv.FormatInt(t.Volume, 10),
		strconv.FormatInt(t.RemainVol, 10),
		f(t.RemainCost),
	})
	if err != nil {
		return err
	}
	j.transactions.Flush()
	return j.transactions.Error()
}

func (j *CSVJournal) RecordEquity(e EquitySnapshot) error {
	err := j.equity.Write([]string{
		e.RunID,
		strconv.FormatInt(e.Time, 10),
		f(e.Balance),
		f(e.AvailableBalance),
		f(e.FrozenBalance),
		f(e.PortfolioValue),
	})
	if err != nil {
		return err
	}
	j.equity.Flush()
	return j.equity.Error()
}

func (j *CSVJournal) Close() error {
	j.transactions.Flush()
	if err := j.transactions.Error(); err != nil {
		return err
	}
	j.equity.Flush()
	if err := j.equity.Error(); err != nil {
		return err
	}

	if err := j.tf.Close(); err != nil {
		return err
	}
	return j.ef.Close()
}

func f(x float64) string {
	return strconv.FormatFloat(x, 'f', 6, 64)
}
