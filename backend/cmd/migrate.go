package cmd

import (
	"fmt"

	"readquest/backend/models"

	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := loadEnv()
		if err != nil {
			return err
		}
		defer e.close()

		if err := models.AutoMigrate(e.db); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
		e.log.Info("schema up to date", "driver", e.cfg.DBDriver)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
