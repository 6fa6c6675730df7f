package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"betamoney/internal/adapters/http/middleware"
	"betamoney/internal/adapters/http/routes"
	"betamoney/internal/adapters/persistence/models"
	"betamoney/internal/adapters/persistence/repositories"
	"betamoney/internal/config"
	"betamoney/internal/core/services"

	"github.com/gofiber/fiber/v2"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Failed to load configuration: %v", err)
	}

	// Connect the configured persistence backend
	store, cleanup, err := buildStore(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to connect storage backend: %v", err)
	}
	defer cleanup()

	// Seed treasurer identity (and demo data in dev)
	if err := config.NewSeeder(store, cfg).Run(context.Background()); err != nil {
		log.Printf("⚠️ Warning: Failed to seed store: %v", err)
	}

	// Connect object storage for receipts (optional)
	minioClient, err := config.ConnectMinio(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to connect object storage: %v", err)
	}
	receipts := services.NewReceiptService(minioClient, cfg.Minio.Bucket, cfg.Minio.Endpoint, cfg.Minio.UseSSL)

	// Start the request-list watch poller
	watch := services.NewWatchService(store, cfg.PollInterval)
	watch.Start()
	defer watch.Stop()

	// Start the daily pending-requests reminder
	reminder := services.NewReminderService(store, cfg.ReminderCron)
	reminder.Start()
	defer reminder.Stop()

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "BetaMoney API",
		ErrorHandler: middleware.CustomErrorHandler,
		// Receipts may be up to 5 MB plus multipart overhead
		BodyLimit: 8 * 1024 * 1024,
	})

	// Setup middlewares
	middleware.Setup(app, cfg)

	// Setup routes
	routes.Setup(app, cfg, store, receipts, watch)

	// Graceful shutdown
	go gracefulShutdown(app)

	// Start server
	log.Printf("🚀 Server starting on port %s [MODE: %s]", cfg.Port, cfg.AppMode)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

// buildStore connects the backend selected by STORAGE_BACKEND
func buildStore(cfg *config.Config) (repositories.Store, func(), error) {
	switch cfg.Storage.Backend {
	case "memory":
		log.Println("✅ Using in-memory store")
		return repositories.NewMemoryStore(), func() {}, nil

	case "mysql":
		db, err := config.ConnectDatabase(cfg)
		if err != nil {
			return nil, nil, err
		}
		if err := models.AutoMigrate(db); err != nil {
			return nil, nil, fmt.Errorf("auto migrate failed: %w", err)
		}
		log.Println("✅ Database migration completed")
		cleanup := func() {
			if err := config.CloseDatabase(); err != nil {
				log.Printf("⚠️ Error closing database: %v", err)
			}
		}
		return repositories.NewMySQLStore(db), cleanup, nil

	case "mongo":
		client, err := config.ConnectMongo(cfg)
		if err != nil {
			return nil, nil, err
		}
		cleanup := func() {
			if err := config.DisconnectMongo(client); err != nil {
				log.Printf("⚠️ Error disconnecting mongo: %v", err)
			}
		}
		return repositories.NewMongoStore(client, cfg.Storage.MongoDB), cleanup, nil

	default:
		return nil, nil, fmt.Errorf("unknown storage backend: %s", cfg.Storage.Backend)
	}
}

// gracefulShutdown handles graceful shutdown
func gracefulShutdown(app *fiber.App) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Printf("❌ Error during shutdown: %v", err)
	}
	log.Println("✅ Server stopped gracefully")
}
