package cli

import (
	"log/slog"

	"github.com/spf13/cobra"

	"credit-score/config"
	"credit-score/observability"
)

var (
	cfg    config.Config
	logger *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "creditscore",
	Short: "Credit scoring service for mortgage advisors",
	Long: `creditscore stores clients with their advisor conversations and debts,
and scores them against a requested credit and down payment.

Run "creditscore serve" to start the HTTP API.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load()
		if err != nil {
			return err
		}
		cfg = loaded
		logger = observability.InitLogger(observability.LogConfig{
			Level:  cfg.LogLevel,
			Format: cfg.LogFormat,
		})
		return nil
	},
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(scoreCmd)
}
