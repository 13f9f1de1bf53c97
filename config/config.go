package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/bpzj/backtest/strategy"
	"gopkg.in/yaml.v3"
)

// Config represents a complete backtest configuration.
type Config struct {
	Account AccountConfig              `json:"account" yaml:"account"`
	Bar     strategy.RangeScalpConfig  `json:"bar_strategy" yaml:"bar_strategy"`
	Tick    strategy.SpreadScalpConfig `json:"tick_strategy" yaml:"tick_strategy"`
	Journal JournalConfig              `json:"journal" yaml:"journal"`
	Data    DataConfig                 `json:"data" yaml:"data"`
}

// AccountConfig contains account initialization parameters.
type AccountConfig struct {
	Name       string  `json:"name" yaml:"name"`
	Balance    float64 `json:"balance" yaml:"balance"`
	Instrument string  `json:"instrument" yaml:"instrument"`
}

// JournalConfig selects where run results are persisted.
type JournalConfig struct {
	Type             string `json:"type" yaml:"type"` // "sqlite", "csv" or "none"
	DBPath           string `json:"db_path,omitempty" yaml:"db_path,omitempty"`
	TransactionsFile string `json:"transactions_file,omitempty" yaml:"transactions_file,omitempty"`
	EquityFile       string `json:"equity_file,omitempty" yaml:"equity_file,omitempty"`
}

// DataConfig points at the input CSV files.
type DataConfig struct {
	BarsFile  string `json:"bars_file,omitempty" yaml:"bars_file,omitempty"`
	TicksFile string `json:"ticks_file,omitempty" yaml:"ticks_file,omitempty"`
	Sort      bool   `json:"sort,omitempty" yaml:"sort,omitempty"`
}

// LoadFromFile loads configuration from a file (YAML or JSON).
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := &Config{}

	// Try YAML first, fall back to JSON.
	err = yaml.Unmarshal(data, cfg)
	if err != nil {
		err = json.Unmarshal(data, cfg)
		if err != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// SaveToFile saves configuration to a file (format picked by extension).
func (c *Config) SaveToFile(path string) error {
	var data []byte
	var err error

	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Account.Balance <= 0 {
		return fmt.Errorf("account.balance must be positive")
	}
	if c.Account.Instrument == "" {
		return fmt.Errorf("account.instrument is required")
	}
	if c.Bar.BuyPriceLow <= 0 || c.Bar.BuyPriceHigh <= 0 {
		return fmt.Errorf("bar_strategy entry range must be positive")
	}
	if c.Bar.BuyPriceHigh < c.Bar.BuyPriceLow {
		return fmt.Errorf("bar_strategy.buy-price-high must be >= buy-price-low")
	}
	if c.Bar.InitBaseVolume <= 0 {
		return fmt.Errorf("bar_strategy.init-base-volume must be positive")
	}
	if c.Bar.AddPositionDrawdownPct <= 0 || c.Bar.AddPositionDrawdownPct >= 1 {
		return fmt.Errorf("bar_strategy.add-position-drawdown-pct must be between 0 and 1")
	}
	if c.Bar.LiquidationPrice <= 0 {
		return fmt.Errorf("bar_strategy.liquidation-price must be positive")
	}
	if c.Tick.MinVolume <= 0 || c.Tick.TradeVolume <= 0 {
		return fmt.Errorf("tick_strategy volumes must be positive")
	}
	if c.Tick.CooldownPeriod < 0 {
		return fmt.Errorf("tick_strategy.cooldown-period must not be negative")
	}
	switch c.Journal.Type {
	case "sqlite":
		if c.Journal.DBPath == "" {
			return fmt.Errorf("journal.db_path required for sqlite type")
		}
	case "csv":
		if c.Journal.TransactionsFile == "" || c.Journal.EquityFile == "" {
			return fmt.Errorf("journal transactions_file and equity_file required for csv type")
		}
	case "none":
	default:
		return fmt.Errorf("journal.type must be 'sqlite', 'csv' or 'none'")
	}
	return nil
}

// Default returns a configuration with the reference parameter set.
func Default() *Config {
	return &Config{
		Account: AccountConfig{
			Name:       "SIM-BACKTEST",
			Balance:    1_000_000,
			Instrument: "600795",
		},
		Bar:  strategy.RangeScalpDefaults(),
		Tick: strategy.SpreadScalpDefaults(),
		Journal: JournalConfig{
			Type:   "sqlite",
			DBPath: "./backtest.sqlite",
		},
	}
}
