package cmd

import (
	"fmt"

	"github.com/bpzj/backtest/config"
	"github.com/bpzj/backtest/journal"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "backtest",
	Short: "A single-instrument trading backtest engine",
	Long: `Backtest replays historical market data through trading strategies
against a simulated cash/position ledger.

It provides tools for:
  - Replaying daily bar data through a range-scalping strategy
  - Replaying tick/depth data through a spread-scalping strategy
  - Journaling fills and equity curves to SQLite or CSV
  - Reporting final positions, cost basis and balances`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

// loadConfig returns the file config when -config was given, the
// defaults otherwise.
func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Default(), nil
	}
	return config.LoadFromFile(path)
}

// openJournal builds the journal selected by cfg.
func openJournal(cfg config.JournalConfig) (journal.Journal, error) {
	switch cfg.Type {
	case "sqlite":
		return journal.NewSQLite(cfg.DBPath)
	case "csv":
		return journal.NewCSV(cfg.TransactionsFile, cfg.EquityFile)
	case "none", "":
		return journal.Nop{}, nil
	default:
		return nil, fmt.Errorf("unknown journal type %q", cfg.Type)
	}
}
