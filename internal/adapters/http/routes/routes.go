package routes

import (
	"betamoney/internal/adapters/http/handlers"
	"betamoney/internal/adapters/http/middleware"
	"betamoney/internal/adapters/persistence/repositories"
	"betamoney/internal/config"
	"betamoney/internal/core/services"

	"github.com/gofiber/fiber/v2"
)

// Setup configures all routes for the application
func Setup(
	app *fiber.App,
	cfg *config.Config,
	store repositories.Store,
	receipts *services.ReceiptService,
	watch *services.WatchService,
) {
	// Initialize services
	authService := services.NewAuthService(store, cfg)
	requestService := services.NewRequestService(store, receipts, cfg.CategoryRequired)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(store)
	authHandler := handlers.NewAuthHandler(authService, cfg)
	requestHandler := handlers.NewRequestHandler(requestService, watch)
	metaHandler := handlers.NewMetaHandler()

	// Health routes
	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.HealthCheck)

	// API v1
	v1 := app.Group("/api/v1")
	v1.Get("/", healthHandler.APIInfo)

	// Auth routes (stricter rate limit on sign-in)
	auth := v1.Group("/auth")
	auth.Post("/guest", middleware.AuthRateLimiter(), authHandler.GuestSignIn)
	auth.Post("/treasurer", middleware.AuthRateLimiter(), authHandler.TreasurerSignIn)
	auth.Get("/me", middleware.AuthMiddleware(cfg), authHandler.Me)
	auth.Post("/logout", middleware.AuthMiddleware(cfg), authHandler.Logout)

	// Reference data
	meta := v1.Group("/meta")
	meta.Get("/committees", metaHandler.GetCommittees)
	meta.Get("/upload-limits", metaHandler.GetUploadLimits)

	// Request routes
	requests := v1.Group("/requests", middleware.AuthMiddleware(cfg))
	requests.Post("/", requestHandler.Submit)
	requests.Get("/", requestHandler.List)
	requests.Get("/stream", requestHandler.Stream)
	requests.Get("/:id", requestHandler.GetByID)
	requests.Patch("/:id/status", middleware.OwnerOnly(), requestHandler.SetStatus)
}
