package main

import (
	"github.com/spf13/cobra"

	"github.com/gyeh/claimmap/internal/config"
)

var cfg config.Config

var rootCmd = &cobra.Command{
	Use:   "claimmap",
	Short: "Raw claim records → validated canonical claims",
	Long:  "Validates and normalizes loosely structured claim records (provider NPI, CPT/ICD codes, dates, charges) one record at a time.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cfg.ConfigPath == "" {
			return nil
		}
		return cfg.LoadFromFile(cfg.ConfigPath)
	},
	SilenceUsage: true,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfg.ConfigPath, "config", "", "Path to YAML config file")
	pf.StringVar(&cfg.LogFormat, "log-format", "", "Log format: text or json (default text)")
}
