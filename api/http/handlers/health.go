package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"portfolio-server/api/http/presenter"
	"portfolio-server/pkg/health"
)

type HealthHandler struct {
	health health.UseCase
}

func NewHealthHandler(h health.UseCase) *HealthHandler {
	return &HealthHandler{health: h}
}

// Health is a liveness endpoint. The overview carries the chat provider flag
// for quick diagnosis; provider downtime never makes the process unhealthy.
// @Summary Liveness probe
// @Tags    health
// @Produce json
// @Success 200 {object} map[string]any
// @Router  /health [get]
func (h *HealthHandler) Health(c *fiber.Ctx) error {
	return presenter.JSON(c, http.StatusOK, fiber.Map{
		"status":       "ok",
		"dependencies": h.health.Overview(),
	})
}

// Ready verifies hard dependencies (database).
// @Summary Readiness probe
// @Tags    health
// @Produce json
// @Success 200 {object} map[string]any
// @Failure 503 {object} presenter.ErrorResponse
// @Router  /ready [get]
func (h *HealthHandler) Ready(c *fiber.Ctx) error {
	if err := h.health.Ready(c.Context()); err != nil {
		return presenter.Error(c, http.StatusServiceUnavailable, "dependency not ready")
	}
	return presenter.JSON(c, http.StatusOK, fiber.Map{"status": "ready"})
}
