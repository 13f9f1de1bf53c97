package cmd

import (
	"fmt"

	"github.com/bpzj/backtest/config"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print or write the default configuration",
	RunE:  runConfig,
}

var configWritePath string

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.Flags().StringVarP(&configWritePath, "write", "w", "", "write the default config to a file instead of stdout")
}

func runConfig(cmd *cobra.Command, args []string) error {
	cfg := config.Default()

	if configWritePath != "" {
		if err := cfg.SaveToFile(configWritePath); err != nil {
			return err
		}
		fmt.Printf("Wrote default config to %s\n", configWritePath)
		return nil
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	fmt.Print(string(data))
	return nil
}
