package cmd

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"student-sync/core/config"
	"student-sync/core/database"
	"student-sync/core/loader"
	"student-sync/core/logger"
	"student-sync/core/middleware/auth"
	"student-sync/core/middleware/rayid"
	"student-sync/core/storage"
	"student-sync/feature/integrity"
	"student-sync/feature/student"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	_ "student-sync/docs/swagger"
)

// @title Student Sync API
// @version 1.0
// @description API for importing and reconciling student records.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the student sync server",
	Long:  `Starts the HTTP server and initializes all enabled features.`,
	Run: func(cmd *cobra.Command, args []string) {
		// 1. Load Configuration
		cfg, err := config.LoadConfig(".")
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}

		// 2. Initialize Logger
		logg, err := logger.New(&cfg.Log)
		if err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
		defer logg.Sync()
		zap.ReplaceGlobals(logg)

		// 3. Connect to Database (Required)
		db, err := database.Connect(cfg.Database)
		if err != nil {
			logg.Fatal("Database connection failed", zap.Error(err))
		}
		logg.Info("Connected to database", zap.String("driver", cfg.Database.Driver))

		// 4. Initialize Storage (connects lazily)
		store, err := storage.NewClient(cfg.Storage)
		if err != nil {
			logg.Fatal("Failed to create storage client", zap.Error(err))
		}

		svc, err := student.NewService(db, store, cfg.Storage, cfg.Import, logg)
		if err != nil {
			logg.Fatal("Failed to create student service", zap.Error(err))
		}
		prepCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		err = svc.Prepare(prepCtx)
		cancel()
		if err != nil {
			logg.Fatal("Failed to prepare schema", zap.Error(err))
		}

		// 5. Initialize Fiber App
		app := fiber.New(fiber.Config{
			DisableStartupMessage: true,
			BodyLimit:             cfg.Server.BodyLimit(),
		})

		// 6. Initialize Feature Loader
		mgr := loader.NewManager()
		mgr.Register(student.NewFeature(svc))
		mgr.Register(integrity.NewFeature(integrity.NewService(db, store, cfg.Storage, logg)))

		// Middleware Registration
		// RayID must be first to trace everything.
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

		// Swagger Documentation (Public)
		app.Get("/swagger/*", swagger.HandlerDefault)

		app.Use(auth.New(auth.Config{ApiKey: cfg.Server.ApiKey, Skip: []string{"/swagger"}}))
		if !cfg.Server.AuthEnabled() {
			logg.Warn("API key is empty, authentication is disabled")
		}

		// 7. Load Features
		if err := mgr.LoadAll(app); err != nil {
			logg.Fatal("Failed to load features", zap.Error(err))
		}

		// 8. Start Server
		go func() {
			logg.Info("Starting server", zap.String("port", cfg.Server.Port))
			if err := app.Listen(cfg.Server.Address()); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		// 9. Graceful Shutdown
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logg.Info("Shutting down server...")
		_ = app.ShutdownWithTimeout(30 * time.Second)
	},
}

func init() {
	RootCmd.AddCommand(startCmd)
}
