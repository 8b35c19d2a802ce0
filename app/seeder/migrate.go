package main

import (
	"storeRating/pkg/database"

	"github.com/spf13/cobra"
)

// migrateCmd creates or updates the users, stores and ratings tables
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, db, err := connect()
		if err != nil {
			return err
		}
		defer database.ClosePostgres(db)

		return database.Migrate(db)
	},
}
