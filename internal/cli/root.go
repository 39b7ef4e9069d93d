// Package cli holds the catalog command tree.
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/agencia1/merch-catalog/internal/config"
	"github.com/agencia1/merch-catalog/internal/database"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

var envFile string

var rootCmd = &cobra.Command{
	Use:           "catalog",
	Short:         "Agencia 1 promotional products catalog",
	Long:          "Storefront, back office and JSON API for the Agencia 1 promotional products catalog",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file loaded before the environment")
}

// Execute runs the CLI
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
	}
	return err
}

// setup loads the configuration, installs the default logger and opens the
// database.
func setup(ctx context.Context) (*config.Config, *slog.Logger, *gorm.DB, error) {
	cfg, err := config.Load(envFile)
	if err != nil {
		return nil, nil, nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, nil, fmt.Errorf("invalid config: %w", err)
	}

	logger := cfg.NewLogger(os.Stderr)
	slog.SetDefault(logger)

	db, err := database.Open(ctx, cfg.DatabaseURL, database.Options{
		PGDriver: cfg.PGDriver,
		Debug:    cfg.DBDebug,
		Logger:   logger,
	})
	if err != nil {
		return nil, nil, nil, err
	}
	return cfg, logger, db, nil
}
