// Package cmd provides the CLI commands for quina-billing.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"quina-billing/internal/config"
	"quina-billing/internal/logging"
)

var (
	cfgFile string
	verbose bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "quina-billing",
	Short: "Compute billable usage from conversation and message logs",
	Long: `quina-billing derives the quantities a monthly invoice is built from:
billable 24-hour conversation sessions, net billable messages after
agent-handoff and credit-evaluation discounts, and the tiered total.

Examples:
  quina-billing calculate ./2025/04-abril
  quina-billing calculate --format json --audit audit.csv ./2025/05-mayo
  quina-billing ratecard`,
}

// Execute runs the CLI
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.quina-billing.json)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")

	// Add subcommands
	rootCmd.AddCommand(calculateCmd)
	rootCmd.AddCommand(ratecardCmd)
	rootCmd.AddCommand(runsCmd)
	rootCmd.AddCommand(versionCmd)
}

func initConfig() {
	if cfgFile != "" {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
		config.Set(cfg)
	}

	// Initialize logging
	cfg := config.Get()
	if verbose {
		cfg.Logging.Level = "debug"
	}
	if err := logging.Initialize(cfg.Logging); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing logging: %v\n", err)
	}
}

// versionCmd prints version information
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("quina-billing version 0.1.0")
	},
}
