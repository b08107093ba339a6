package basehdl

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v3"

	"github.com/Dhairyash-1/videotube-api/internal/common"
)

// PingFunc checks a dependency.
type PingFunc func(ctx context.Context) error

// SystemHandler serves the health check.
type SystemHandler struct {
	BaseHandler
	pingDatabase PingFunc
}

// NewSystemHandler creates a SystemHandler; pingDatabase may be nil.
func NewSystemHandler(pingDatabase PingFunc) *SystemHandler {
	return &SystemHandler{pingDatabase: pingDatabase}
}

// HandleHealth reports liveness and the database state.
func (h *SystemHandler) HandleHealth(c fiber.Ctx) error {
	healthData := fiber.Map{
		"status":    "healthy",
		"timestamp": time.Now().Format(time.RFC3339),
		"services": fiber.Map{
			"api": "ok",
		},
	}
	services := healthData["services"].(fiber.Map)

	if h.pingDatabase == nil {
		healthData["status"] = "degraded"
		services["database"] = "not_initialized"
		return WriteSuccess(c, common.StatusOK, healthData, "Health check passed")
	}

	ctx, cancel := context.WithTimeout(c.Context(), 2*time.Second)
	defer cancel()

	if err := h.pingDatabase(ctx); err != nil {
		healthData["status"] = "degraded"
		services["database"] = "error"
		return JSONResponse(c, common.StatusServiceUnavailable, common.NewApiResponse(common.StatusServiceUnavailable, healthData, "Database is unreachable"))
	}
	services["database"] = "ok"
	return WriteSuccess(c, common.StatusOK, healthData, "Health check passed")
}
