// Package cmd - runs command
package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"quina-billing/adapters/storage"
	"quina-billing/internal/config"
)

// runsCmd groups run-history subcommands
var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Inspect stored billing runs",
}

var runsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored runs, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		defer func() { _ = store.Close() }()

		runs, err := store.List(context.Background())
		if err != nil {
			return err
		}
		if len(runs) == 0 {
			fmt.Println("No stored runs.")
			return nil
		}

		fmt.Printf("%-36s  %-20s  %-20s  %10s  %12s  %12s\n",
			"RUN ID", "PERIOD", "CREATED", "HSM NET", "MESSAGE NET", "TOTAL")
		for _, run := range runs {
			fmt.Printf("%-36s  %-20s  %-20s  %10d  %12d  %12s\n",
				run.ID, run.Period, run.CreatedAt.Format("2006-01-02 15:04:05"),
				run.Summary.HSMNet, run.Summary.MessageNet, run.Summary.Total.StringFixed(2))
		}
		return nil
	},
}

var runsShowCmd = &cobra.Command{
	Use:   "show [run-id]",
	Short: "Show one stored run as JSON",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		defer func() { _ = store.Close() }()

		run, err := store.Get(context.Background(), args[0])
		if err != nil {
			return err
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(run)
	},
}

func init() {
	runsCmd.AddCommand(runsListCmd)
	runsCmd.AddCommand(runsShowCmd)
}

func openStore() (storage.Store, error) {
	cfg := config.Get()
	return storage.New(storage.Backend(cfg.Storage.Backend), cfg.Storage.Path)
}
