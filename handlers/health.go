package handlers

import (
	"time"

	"github.com/b-shhhh/university-finder-ai/database"
	"github.com/b-shhhh/university-finder-ai/utils/response"
	"github.com/gofiber/fiber/v2"
)

// HealthHandler reports liveness of the API and its database.
type HealthHandler struct {
	storage database.Storage
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(storage database.Storage) *HealthHandler {
	return &HealthHandler{storage: storage}
}

// Check handles GET /api/v1/health
func (h *HealthHandler) Check(c *fiber.Ctx) error {
	status := "ok"
	dbStatus := "up"
	if err := h.storage.HealthCheck(); err != nil {
		status = "degraded"
		dbStatus = "down"
	}

	return response.Success(c, fiber.Map{
		"status":    status,
		"database":  dbStatus,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
