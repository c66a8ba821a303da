package cmd

import (
	"log"

	"farm-cms/core/config"
	"farm-cms/core/database"
	"farm-cms/core/logger"

	"farm-cms/feature/animals"
	"farm-cms/feature/blog"
	"farm-cms/feature/experiences"
	"farm-cms/feature/gallery"
	"farm-cms/feature/media"
	"farm-cms/feature/stays"
	"farm-cms/feature/team"
	"farm-cms/feature/vision"
	"farm-cms/feature/workshops"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// migrateCmd creates or updates the schema. It runs once at deploy
// time; the server never touches the schema on its own.
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.LoadConfig(".")
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}

		logg, err := logger.New(&cfg.Log)
		if err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
		defer logg.Sync()

		db, err := database.Connect(cfg.Database)
		if err != nil {
			logg.Fatal("Failed to connect to database", zap.Error(err))
		}

		err = db.AutoMigrate(
			&media.Item{},
			&stays.Stay{},
			&animals.Animal{},
			&team.Member{},
			&blog.Post{},
			&vision.Content{},
			&gallery.Album{},
			&gallery.Image{},
			&workshops.Workshop{},
			&experiences.Experience{},
		)
		if err != nil {
			logg.Fatal("Migration failed", zap.Error(err))
		}
		logg.Info("Migration complete")
	},
}

func init() {
	RootCmd.AddCommand(migrateCmd)
}
