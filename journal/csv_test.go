package journal

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCSVJournalWritesBothFiles(t *testing.T) {
	dir := t.TempDir()
	txPath := filepath.Join(dir, "transactions.csv")
	eqPath := filepath.Join(dir, "equity.csv")

	j, err := NewCSV(txPath, eqPath)
	require.NoError(t, err)

	require.NoError(t, j.RecordTransaction(TransactionRecord{
		ID: "t1", RunID: "r1", Code: "600795", Time: 100,
		Side: "BUY", Price: 4.2, Volume: 2000, RemainVol: 2000, RemainCost: 4.2,
	}))
	require.NoError(t, j.RecordEquity(EquitySnapshot{
		RunID: "r1", Time: 100, Balance: 1_000_000, AvailableBalance: 991_600, PortfolioValue: 8_400,
	}))
	require.NoError(t, j.RecordRun(RunRecord{RunID: "r1"})) // no-op for CSV
	require.NoError(t, j.Close())

	rows := readCSV(t, txPath)
	require.Len(t, rows, 2)
	require.Equal(t, []string{"id", "run_id", "code", "time", "side", "price", "volume", "remain_vol", "remain_cost"}, rows[0])
	require.Equal(t, []string{"t1", "r1", "600795", "100", "BUY", "4.200000", "2000", "2000", "4.200000"}, rows[1])

	rows = readCSV(t, eqPath)
	require.Len(t, rows, 2)
	require.Equal(t, []string{"r1", "100", "1000000.000000", "991600.000000", "0.000000", "8400.000000"}, rows[1])
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return rows
}
