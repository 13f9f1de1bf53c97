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

var ticksCmd = &cobra.Command{
	Use:   "ticks",
	Short: "Replay a tick CSV through the spread-scalp strategy",
	Long: `Ticks replays level-2 quote data through the spread-scalp strategy.

The CSV layout is time,last_price,volume followed by five
bid_price,bid_volume pairs and five ask_price,ask_volume pairs.

Example:
  backtest ticks --ticks data/600795_ticks.csv --db results.sqlite`,
	RunE: runTicks,
}

var (
	ticksPath       string
	ticksConfigPath string
	ticksDBPath     string
	ticksBalance    float64
	ticksInstrument string
	ticksSort       bool
)

func init() {
	rootCmd.AddCommand(ticksCmd)

	ticksCmd.Flags().StringVarP(&ticksPath, "ticks", "t", "", "path to tick CSV")
	ticksCmd.Flags().StringVarP(&ticksConfigPath, "config", "f", "", "path to config file (defaults used otherwise)")
	ticksCmd.Flags().StringVarP(&ticksDBPath, "db", "d", "", "override: SQLite journal path")
	ticksCmd.Flags().Float64Var(&ticksBalance, "balance", 0, "override: starting cash balance")
	ticksCmd.Flags().StringVarP(&ticksInstrument, "instrument", "i", "", "override: instrument code")
	ticksCmd.Flags().BoolVar(&ticksSort, "sort", false, "sort ticks by time before the replay")
}

func runTicks(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(ticksConfigPath)
	if err != nil {
		return err
	}
	if ticksDBPath != "" {
		cfg.Journal.Type = "sqlite"
		cfg.Journal.DBPath = ticksDBPath
	}
	if ticksBalance > 0 {
		cfg.Account.Balance = ticksBalance
	}
	if ticksInstrument != "" {
		cfg.Account.Instrument = ticksInstrument
	}
	if ticksPath == "" {
		ticksPath = cfg.Data.TicksFile
	}
	if ticksPath == "" {
		return fmt.Errorf("no tick file: pass --ticks or set data.ticks_file in the config")
	}

	ticks, err := feed.ReadTicks(ticksPath)
	if err != nil {
		return fmt.Errorf("read ticks: %w", err)
	}
	if ticksSort || cfg.Data.Sort {
		feed.SortTicks(ticks)
	}

	j, err := openJournal(cfg.Journal)
	if err != nil {
		return fmt.Errorf("open journal: %w", err)
	}
	defer j.Close()

	acct := ledger.NewAccount(cfg.Account.Name, cfg.Account.Balance)
	code := market.NewCode(cfg.Account.Instrument)

	runner := backtest.NewRunner(acct, j, code)
	runner.StrategyName = "spread-scalp"

	fmt.Printf("Replaying %d ticks of %s\n\n", len(ticks), code)

	results, err := runner.RunTicks(strategy.NewSpreadScalp(cfg.Tick), ticks)
	if err != nil {
		return fmt.Errorf("run: %w", err)
	}

	fmt.Print(results.Report())
	fmt.Printf("\nNet P/L: %.3f  (run %s)\n", results.NetPL(), results.RunID)
	return nil
}
