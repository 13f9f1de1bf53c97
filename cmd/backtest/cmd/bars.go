package cmd

import (
	"fmt"

	"github.com/bpzj/backtest/backtest"
	"github.com/bpzj/backtest/feed"
	"github.com/bpzj/backtest/ledger"
	"github.com/bpzj/backtest/market"
	"github.com/bpzj/backtest/strategy"
	"github.com/spf13/cobra"
)

var barsCmd = &cobra.Command{
	Use:   "bars",
	Short: "Replay a bar CSV through the range-scalp strategy",
	Long: `Bars replays daily OHLC data through the range-scalp strategy.

The CSV layout is time,open,high,low,close,volume with the time column
in unix seconds or 2006-01-02 dates. Rows must be in ascending time
order unless --sort is given.

Example:
  backtest bars --bars data/600795.csv --db results.sqlite`,
	RunE: runBars,
}

var (
	barsPath       string
	barsConfigPath string
	barsDBPath     string
	barsBalance    float64
	barsInstrument string
	barsSort       bool
)

func init() {
	rootCmd.AddCommand(barsCmd)

	barsCmd.Flags().StringVarP(&barsPath, "bars", "b", "", "path to bar CSV (time,open,high,low,close,volume)")
	barsCmd.Flags().StringVarP(&barsConfigPath, "config", "f", "", "path to config file (defaults used otherwise)")
	barsCmd.Flags().StringVarP(&barsDBPath, "db", "d", "", "override: SQLite journal path")
	barsCmd.Flags().Float64Var(&barsBalance, "balance", 0, "override: starting cash balance")
	barsCmd.Flags().StringVarP(&barsInstrument, "instrument", "i", "", "override: instrument code")
	barsCmd.Flags().BoolVar(&barsSort, "sort", false, "sort bars by time before the replay")
}

func runBars(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(barsConfigPath)
	if err != nil {
		return err
	}
	if barsDBPath != "" {
		cfg.Journal.Type = "sqlite"
		cfg.Journal.DBPath = barsDBPath
	}
	if barsBalance > 0 {
		cfg.Account.Balance = barsBalance
	}
	if barsInstrument != "" {
		cfg.Account.Instrument = barsInstrument
	}
	if barsPath == "" {
		barsPath = cfg.Data.BarsFile
	}
	if barsPath == "" {
		return fmt.Errorf("no bar file: pass --bars or set data.bars_file in the config")
	}

	bars, err := feed.ReadBars(barsPath)
	if err != nil {
		return fmt.Errorf("read bars: %w", err)
	}
	if barsSort || cfg.Data.Sort {
		feed.SortBars(bars)
	}

	j, err := openJournal(cfg.Journal)
	if err != nil {
		return fmt.Errorf("open journal: %w", err)
	}
	defer j.Close()

	acct := ledger.NewAccount(cfg.Account.Name, cfg.Account.Balance)
	code := market.NewCode(cfg.Account.Instrument)

	runner := backtest.NewRunner(acct, j, code)
	runner.StrategyName = "range-scalp"

	fmt.Printf("Replaying %d bars of %s\n\n", len(bars), code)

	results, err := runner.RunBars(strategy.NewRangeScalp(cfg.Bar), bars)
	if err != nil {
		return fmt.Errorf("run: %w", err)
	}

	fmt.Print(results.Report())
	fmt.Printf("\nNet P/L: %.3f  (run %s)\n", results.NetPL(), results.RunID)
	return nil
}
