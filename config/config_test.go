package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "sqlite", cfg.Journal.Type)
	assert.Equal(t, 1_000_000.0, cfg.Account.Balance)
}

func TestSaveLoadRoundtrip(t *testing.T) {
	for _, name := range []string{"config.yaml", "config.json"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)

			want := Default()
			want.Account.Instrument = "601111"
			want.Bar.InitBaseVolume = 3000
			want.Tick.CooldownPeriod = 5
			require.NoError(t, want.SaveToFile(path))

			got, err := LoadFromFile(path)
			require.NoError(t, err)
			assert.Equal(t, want, got)
		})
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero balance", func(c *Config) { c.Account.Balance = 0 }},
		{"no instrument", func(c *Config) { c.Account.Instrument = "" }},
		{"inverted range", func(c *Config) { c.Bar.BuyPriceHigh = c.Bar.BuyPriceLow - 1 }},
		{"zero base volume", func(c *Config) { c.Bar.InitBaseVolume = 0 }},
		{"drawdown out of range", func(c *Config) { c.Bar.AddPositionDrawdownPct = 1.5 }},
		{"negative cooldown", func(c *Config) { c.Tick.CooldownPeriod = -1 }},
		{"unknown journal", func(c *Config) { c.Journal.Type = "postgres" }},
		{"sqlite without path", func(c *Config) { c.Journal.DBPath = "" }},
		{"csv without files", func(c *Config) { c.Journal = JournalConfig{Type: "csv"} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := LoadFromFile(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}

func TestLoadGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("{{not yaml or json"), 0644))

	_, err := LoadFromFile(path)
	require.Error(t, err)
}
