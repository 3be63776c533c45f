package commands

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/akravets/invoice-qc/internal/config"
	"github.com/akravets/invoice-qc/internal/core/validate"
	"github.com/akravets/invoice-qc/internal/observability/logging"
)

var (
	rulesPath string
	logLevel  string
	workers   int
)

var rootCmd = &cobra.Command{
	Use:   "invoiceqc",
	Short: "Invoice QC - extract invoices from documents and validate them",
	Long: `invoiceqc runs heuristic field extraction over flat invoice documents
and checks the result against a configurable set of validation rules.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		slog.SetDefault(logging.NewJSONLogger("cli", logLevel))
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&rulesPath, "rules", "", "YAML file naming the active validation rules")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().IntVar(&workers, "workers", 4, "parallel extraction workers")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func buildEngine() (*validate.Engine, error) {
	names, err := config.LoadRules(rulesPath)
	if err != nil {
		return nil, fmt.Errorf("load rules: %w", err)
	}
	if len(names) == 0 {
		return validate.NewDefaultEngine(), nil
	}
	engine, err := validate.NewEngine(names)
	if err != nil {
		return nil, fmt.Errorf("build rule engine: %w", err)
	}
	return engine, nil
}
