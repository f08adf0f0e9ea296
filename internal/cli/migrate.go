package cli

import (
	"firstaid_backend/internal/config"
	"firstaid_backend/pkg/database"
	"firstaid_backend/pkg/logger"

	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

// NewMigrateCmd creates or updates the schema.
func NewMigrateCmd(configDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDB(*configDir, func(db *gorm.DB) error {
				if err := database.Migrate(db); err != nil {
					return err
				}
				logger.Log.Info("Migrations applied")
				return nil
			})
		},
	}
}

// NewSeedCmd inserts the catalog rows that are missing.
func NewSeedCmd(configDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Seed modules, scenarios and achievements",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDB(*configDir, func(db *gorm.DB) error {
				if err := database.Seed(db); err != nil {
					return err
				}
				logger.Log.Info("Catalog seeded")
				return nil
			})
		},
	}
}

func withDB(configDir string, fn func(db *gorm.DB) error) error {
	cfg, err := config.LoadConfig(configDir)
	if err != nil {
		return err
	}
	logger.InitLogger(cfg)
	defer logger.Log.Sync()

	db, err := database.InitDB(&cfg.Database, cfg.Server.Mode)
	if err != nil {
		return err
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}
	return fn(db)
}
