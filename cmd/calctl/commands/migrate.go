package commands

import (
	"fmt"

	"github.com/hearthplan/household-calendar-api/internal/config"
	"github.com/hearthplan/household-calendar-api/internal/database"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply database migrations and indexes",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Load()

		if err := database.Connect(cfg); err != nil {
			return fmt.Errorf("connect database: %w", err)
		}
		if err := database.Migrate(); err != nil {
			return err
		}
		if err := database.MigrateDatabase(database.GetDB()); err != nil {
			return err
		}

		fmt.Println("Migrations applied")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
