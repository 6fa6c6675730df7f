package handlers

import (
	"betamoney/internal/adapters/persistence/repositories"
	"betamoney/internal/config"

	"github.com/gofiber/fiber/v2"
)

// HealthHandler handles health check endpoints
type HealthHandler struct {
	store repositories.Store
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(store repositories.Store) *HealthHandler {
	return &HealthHandler{store: store}
}

// Root handles root endpoint
func (h *HealthHandler) Root(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "running",
		"message": "🚀 BetaMoney API is running",
		"mode":    config.AppConfig.AppMode,
	})
}

// HealthCheck reports API and storage backend health
func (h *HealthHandler) HealthCheck(c *fiber.Ctx) error {
	storeStatus := "healthy"
	if err := h.store.Ping(c.Context()); err != nil {
		storeStatus = "unhealthy"
	}

	return c.JSON(fiber.Map{
		"status": "ok",
		"checks": fiber.Map{
			"api":     "healthy",
			"storage": storeStatus,
		},
	})
}

// APIInfo handles API v1 info
func (h *HealthHandler) APIInfo(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"name":    "BetaMoney API",
		"version": "v1",
		"storage": config.AppConfig.Storage.Backend,
	})
}
