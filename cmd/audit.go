package cmd

import (
	"context"
	"log"
	"time"

	"farm-cms/core/config"
	"farm-cms/core/database"
	"farm-cms/core/logger"
	"farm-cms/core/reconcile"
	"farm-cms/core/storage"
	"farm-cms/feature/media"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// auditCmd runs the media consistency sweep once and prints the result.
var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Compare media records against bucket contents",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig(".")
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}

		logg, err := logger.New(&logger.Config{Level: cfg.Log.Level, Format: "console"})
		if err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
		defer logg.Sync()

		db, err := database.Connect(cfg.Database)
		if err != nil {
			return err
		}

		store, err := storage.NewClient(cfg.Storage)
		if err != nil {
			return err
		}

		// No patchers; the sweep only reads.
		mediaStore := media.NewStore(db)
		engine := reconcile.NewEngine(mediaStore, logg)
		svc := media.NewService(db, store, cfg.Storage.Bucket, cfg.Server.PublicBaseURL, engine, logg)

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()

		report, err := svc.Audit(ctx)
		if err != nil {
			return err
		}

		logg.Info("Audit complete",
			zap.Int("media_records", report.MediaCount),
			zap.Int("bucket_objects", report.ObjectCount),
			zap.Strings("missing_blobs", report.MissingBlobs),
			zap.Strings("orphan_objects", report.OrphanObjects),
		)
		return nil
	},
}

func init() {
	RootCmd.AddCommand(auditCmd)
}
