package main

import (
	"fmt"

	"storeRating/pkg/config"
	"storeRating/pkg/database"
	"storeRating/pkg/logger"

	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "seeder",
	Short: "Database setup for the store rating API",
	Long: `Creates the schema and loads initial accounts and stores.

Connection settings are read from the same environment (or .env file) as the API server.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(seedCmd)
}

// connect opens the database without running migrations; each command decides.
func connect() (*config.Config, *gorm.DB, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}

	logger.Init(cfg.App.Environment)

	cfg.Database.AutoMigrate = false
	db, err := database.InitPostgres(cfg)
	if err != nil {
		return nil, nil, err
	}

	return cfg, db, nil
}
