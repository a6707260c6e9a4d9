// Package cmd - calculate command
package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"quina-billing/adapters/ingest"
	"quina-billing/adapters/storage"
	"quina-billing/core/engine"
	"quina-billing/core/output"
	"quina-billing/core/pricing"
	"quina-billing/core/types"
	"quina-billing/internal/config"
)

var (
	outputFormat string
	rateCardPath string
	auditPath    string
	saveRun      bool
)

// calculateCmd represents the calculate command
var calculateCmd = &cobra.Command{
	Use:   "calculate [period-dir]",
	Short: "Compute the invoice quantities for a billing period",
	Long: `Ingest the RDC_*.csv and DDC_*.csv exports in a period folder and
produce the billing summary and per-conversation audit table.

Examples:
  quina-billing calculate ./2025/04-abril
  quina-billing calculate --format markdown ./2025/05-mayo
  quina-billing calculate --audit audit.csv --save ./2025/05-mayo`,
	Args: cobra.ExactArgs(1),
	RunE: runCalculate,
}

func init() {
	calculateCmd.Flags().StringVarP(&outputFormat, "format", "f", "", "output format (cli, json, markdown)")
	calculateCmd.Flags().StringVarP(&rateCardPath, "ratecard", "r", "", "HCL rate card file (default: built-in card)")
	calculateCmd.Flags().StringVarP(&auditPath, "audit", "a", "", "write the audit table as CSV to this path")
	calculateCmd.Flags().BoolVarP(&saveRun, "save", "s", false, "store the run in the history backend")
}

func runCalculate(cmd *cobra.Command, args []string) error {
	periodDir := args[0]
	if _, err := os.Stat(periodDir); os.IsNotExist(err) {
		return fmt.Errorf("period folder does not exist: %s", periodDir)
	}

	card, err := activeRateCard()
	if err != nil {
		return err
	}

	eng, err := engine.New(card)
	if err != nil {
		return err
	}

	input, err := ingest.LoadPeriod(periodDir)
	if err != nil {
		return err
	}

	result, err := eng.Run(input)
	if err != nil {
		return err
	}

	format := output.Format(outputFormat)
	if outputFormat == "" {
		format = output.Format(config.Get().Output.DefaultFormat)
	}
	renderer, err := output.For(format)
	if err != nil {
		return err
	}
	if err := renderer.Render(os.Stdout, result); err != nil {
		return err
	}

	if auditPath == "" {
		auditPath = config.Get().Output.AuditPath
	}
	if auditPath != "" {
		if err := writeAudit(auditPath, result); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Audit table written to %s\n", auditPath)
	}

	if saveRun {
		if err := persistRun(periodDir, result); err != nil {
			return err
		}
	}

	return nil
}

func activeRateCard() (types.RateCard, error) {
	path := rateCardPath
	if path == "" {
		path = config.Get().RateCardPath
	}
	if path == "" {
		return pricing.DefaultRateCard(), nil
	}
	return config.LoadRateCard(path)
}

func writeAudit(path string, result *engine.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()
	return output.WriteAuditCSV(f, result.Audit)
}

func persistRun(periodDir string, result *engine.Result) error {
	cfg := config.Get()
	store, err := storage.New(storage.Backend(cfg.Storage.Backend), cfg.Storage.Path)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	run := &storage.StoredRun{
		ID:        storage.NewRunID(),
		Period:    filepath.Base(filepath.Clean(periodDir)),
		CreatedAt: time.Now().UTC(),
		Summary:   result.Summary,
		AuditRows: len(result.Audit),
		Dropped:   result.Dropped,
	}
	if err := store.Save(context.Background(), run); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "Run %s stored for period %s\n", run.ID, run.Period)
	return nil
}
