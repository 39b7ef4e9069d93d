package cli

import (
	"github.com/agencia1/merch-catalog/internal/database"
	"github.com/agencia1/merch-catalog/internal/seed"
	"github.com/agencia1/merch-catalog/models"
	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load the sample catalog into an empty database",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		_, _, db, err := setup(ctx)
		if err != nil {
			return err
		}
		defer database.Close(db)

		if err := models.AutoMigrate(db); err != nil {
			return err
		}
		data, err := seed.Default()
		if err != nil {
			return err
		}

		_, err = seed.NewSeeder(db).Run(ctx, data)
		return err
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
}
