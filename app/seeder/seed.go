package main

import (
	"fmt"

	"storeRating/business/seed"
	"storeRating/business/store"
	"storeRating/business/user"
	psqlRepo "storeRating/internal/repository/postgres"
	"storeRating/pkg/database"
	"storeRating/pkg/logger"
	"storeRating/pkg/utils"

	"github.com/spf13/cobra"
)

var (
	seedFile    string
	seedMigrate bool
)

// seedCmd loads users and stores from a YAML file. Existing emails are skipped,
// so the command can be re-run safely.
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load users and stores from a seed file",
	Long: `Load users and stores from a seed file.

Examples:
  seeder seed --file seed.yaml
  seeder seed --file seed.yaml --migrate`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSeed(cmd)
	},
}

func init() {
	seedCmd.Flags().StringVarP(&seedFile, "file", "f", "seed.yaml", "Seed file to load")
	seedCmd.Flags().BoolVar(&seedMigrate, "migrate", false, "Run migrations before seeding")
}

func runSeed(cmd *cobra.Command) error {
	f, err := seed.LoadFile(seedFile)
	if err != nil {
		return err
	}

	cfg, db, err := connect()
	if err != nil {
		return err
	}
	defer database.ClosePostgres(db)

	if seedMigrate {
		if err := database.Migrate(db); err != nil {
			return err
		}
	}

	validate := utils.NewValidator()
	tokens := utils.NewJWTManager(cfg.JWT.SecretKey, cfg.JWT.Expire)

	userRepo := psqlRepo.NewUserRepository(db)
	storeRepo := psqlRepo.NewStoreRepository(db)
	ratingRepo := psqlRepo.NewRatingRepository(db)

	userSvc := user.NewUserService(userRepo, ratingRepo, tokens, validate, nil)
	storeSvc := store.NewStoreService(storeRepo, ratingRepo, userRepo, validate)

	report, err := seed.NewSeedService(userSvc, storeSvc, userRepo).Apply(cmd.Context(), f)
	if err != nil {
		return err
	}

	logger.Info("Seeding finished",
		"users_created", report.UsersCreated,
		"users_skipped", report.UsersSkipped,
		"stores_created", report.StoresCreated,
		"stores_skipped", report.StoresSkipped,
	)
	fmt.Fprintf(cmd.OutOrStdout(), "users: %d created, %d skipped; stores: %d created, %d skipped\n",
		report.UsersCreated, report.UsersSkipped, report.StoresCreated, report.StoresSkipped)

	return nil
}
