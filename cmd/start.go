package cmd

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"holiday-keeper/core/config"
	"holiday-keeper/core/database"
	"holiday-keeper/core/loader"
	"holiday-keeper/core/logger"
	"holiday-keeper/core/middleware/auth"
	"holiday-keeper/core/middleware/rayid"
	"holiday-keeper/core/nager"
	"holiday-keeper/feature/holiday"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the holiday keeper server",
	Long:  `Starts the HTTP server, the refresh scheduler and, on an empty store, the historical bootstrap.`,
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

		// 3. Connect to Database
		db, err := database.Connect(cfg.Database)
		if err != nil {
			logg.Fatal("Failed to connect to database", zap.Error(err))
		}
		logg.Info("Connected to holiday database", zap.String("name", cfg.Database.Name))

		// 4. Initialize API Client
		client := nager.NewClient(cfg.API)

		// 5. Initialize Fiber App
		app := fiber.New(fiber.Config{
			DisableStartupMessage: true, // We will log our own startup message
		})

		// 6. Initialize Feature Loader
		mgr := loader.NewManager()

		feat, err := holiday.NewFeature(db, client, logg, cfg.API, cfg.Sync)
		if err != nil {
			logg.Fatal("Failed to build holiday feature", zap.Error(err))
		}
		mgr.Register(feat)

		// Middleware Registration
		// 1. RayID (Must be first to trace everything)
		app.Use(rayid.New())

		// 2. Logging Middleware (Custom to use Zap + RayID)
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

		// 3. Auth (Protect API)
		app.Use(auth.New(auth.Config{ApiKey: cfg.Server.ApiKey}))

		// 7. Load Features
		if err := mgr.LoadAll(app); err != nil {
			logg.Fatal("Failed to load features", zap.Error(err))
		}

		// 8. Historical Bootstrap (background, only on an empty store)
		go func() {
			if err := feat.StartupSync(context.Background()); err != nil {
				logg.Error("Startup bootstrap failed", zap.Error(err))
			}
		}()

		// 9. Start Server
		go func() {
			logg.Info("Starting server", zap.String("port", cfg.Server.Port))
			if err := app.Listen(":" + cfg.Server.Port); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		// 10. Graceful Shutdown
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logg.Info("Shutting down server...")
		feat.Stop()
		_ = app.Shutdown()
	},
}

func init() {
	RootCmd.AddCommand(startCmd)
}
