package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/RakeemRanger/bls-data-assistant/internal/config"
	"github.com/RakeemRanger/bls-data-assistant/internal/store"
)

var (
	cfg      *config.Config
	appStore store.Store
)

var rootCmd = &cobra.Command{
	Use:   "bls-assistant",
	Short: "Conversational assistant for Bureau of Labor Statistics data",
	Long: "Answers natural-language questions about labor statistics by extracting a structured intent, " +
		"fetching matching BLS time series, and composing an answer grounded in the retrieved numbers.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		s, err := store.Open(cmd.Context(), cfg.Storage.DSN)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		if err := s.Migrate(cmd.Context()); err != nil {
			s.Close()
			return fmt.Errorf("migrate store: %w", err)
		}
		appStore = s

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if appStore != nil {
			_ = appStore.Close()
		}
		_ = zap.L().Sync()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
