package cmd

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"farm-cms/core/config"
	"farm-cms/core/database"
	"farm-cms/core/loader"
	"farm-cms/core/logger"
	"farm-cms/core/middleware/auth"
	"farm-cms/core/middleware/rayid"
	"farm-cms/core/reconcile"
	"farm-cms/core/storage"

	"farm-cms/feature/animals"
	"farm-cms/feature/blog"
	"farm-cms/feature/experiences"
	"farm-cms/feature/gallery"
	"farm-cms/feature/media"
	"farm-cms/feature/stays"
	"farm-cms/feature/team"
	"farm-cms/feature/vision"
	"farm-cms/feature/workshops"

	"github.com/gofiber/fiber/v2"
	"github.com/minio/minio-go/v7"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the CMS server",
	Long:  `Starts the HTTP server and initializes all enabled features.`,
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
		zap.ReplaceGlobals(logg)

		db, err := database.Connect(cfg.Database)
		if err != nil {
			logg.Fatal("Failed to connect to database", zap.Error(err))
		}

		store, err := storage.NewClient(cfg.Storage)
		if err != nil {
			logg.Fatal("Failed to create storage client", zap.Error(err))
		}
		ensureBucket(logg, store, cfg.Storage.Bucket, cfg.Storage.Region)

		app := fiber.New(fiber.Config{
			DisableStartupMessage: true,
			BodyLimit:             cfg.Server.BodyLimitMB * 1024 * 1024,
		})

		// Reference index: every content type registers its patcher.
		mediaStore := media.NewStore(db)
		engine := reconcile.NewEngine(mediaStore, logg)
		engine.Register(stays.NewPatcher(db))
		engine.Register(animals.NewPatcher(db))
		engine.Register(team.NewPatcher(db))
		engine.Register(blog.NewPatcher(db))
		engine.Register(vision.NewPatcher(db))
		engine.Register(gallery.NewPatcher(db))
		engine.Register(workshops.NewPatcher(db))
		engine.Register(experiences.NewPatcher(db))

		baseURL := cfg.Server.PublicBaseURL
		bucket := cfg.Storage.Bucket

		mgr := loader.NewManager()
		mgr.Register(media.NewFeature(media.NewService(db, store, bucket, baseURL, engine, logg), logg))
		mgr.Register(stays.NewFeature(stays.NewService(db, engine, logg), logg))
		mgr.Register(animals.NewFeature(animals.NewService(db, engine, logg), logg))
		mgr.Register(team.NewFeature(team.NewService(db, engine, logg), logg))
		mgr.Register(blog.NewFeature(blog.NewService(db, engine, logg), logg))
		mgr.Register(vision.NewFeature(vision.NewService(db, logg), logg))
		mgr.Register(gallery.NewFeature(gallery.NewService(db, store, bucket, baseURL, logg), logg))
		mgr.Register(workshops.NewFeature(workshops.NewService(db, logg), logg))
		mgr.Register(experiences.NewFeature(experiences.NewService(db, logg), logg))

		// RayID must come first so every log line carries the trace id.
		app.Use(rayid.New())

		app.Use(func(c *fiber.Ctx) error {
			l := logger.WithRayID(logg, c)
			l.Info("Request started",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.String("ip", c.IP()),
			)
			err := c.Next()
			if err != nil {
				l.Error("Request error", zap.Error(err))
			}
			return err
		})

		app.Get("/health", func(c *fiber.Ctx) error {
			return c.JSON(fiber.Map{"status": "ok"})
		})

		api := app.Group("/api")
		api.Use(auth.New(auth.Config{Secret: cfg.Server.JwtSecret}))

		if err := mgr.LoadAll(api); err != nil {
			logg.Fatal("Failed to load features", zap.Error(err))
		}

		go func() {
			logg.Info("Starting server", zap.String("port", cfg.Server.Port))
			if err := app.Listen(":" + cfg.Server.Port); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logg.Info("Shutting down server...")
		_ = app.Shutdown()
	},
}

// ensureBucket creates the media bucket when it does not exist yet.
// Startup continues either way; uploads will surface a broken store.
func ensureBucket(logg *zap.Logger, store storage.Client, bucket, region string) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	exists, err := store.BucketExists(ctx, bucket)
	if err != nil {
		logg.Warn("Bucket check failed", zap.String("bucket", bucket), zap.Error(err))
		return
	}
	if exists {
		return
	}
	if err := store.MakeBucket(ctx, bucket, minio.MakeBucketOptions{Region: region}); err != nil {
		logg.Warn("Bucket creation failed", zap.String("bucket", bucket), zap.Error(err))
		return
	}
	logg.Info("Created media bucket", zap.String("bucket", bucket))
}

func init() {
	RootCmd.AddCommand(startCmd)
}
