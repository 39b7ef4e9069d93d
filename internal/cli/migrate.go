package cli

import (
	"github.com/agencia1/merch-catalog/internal/database"
	"github.com/agencia1/merch-catalog/models"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, logger, db, err := setup(cmd.Context())
		if err != nil {
			return err
		}
		defer database.Close(db)

		if err := models.AutoMigrate(db); err != nil {
			return err
		}
		logger.Info("schema up to date")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
