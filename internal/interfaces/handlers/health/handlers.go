package health

import (
	"errors"

	healthsvc "station-listings/internal/application/health"
	"station-listings/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

// Handlers holds dependencies for health endpoints.
type Handlers struct {
	Service        *healthsvc.Service
	HealthAdminKey string
}

// GET /reset?key=HEALTH_ADMIN_KEY: clears traffic stats and the error log.
func (h *Handlers) Reset(c *fiber.Ctx) error {
	key := c.Query("key")
	if key == "" || key != h.HealthAdminKey {
		return response.Error(c, "Unauthorized", fiber.StatusForbidden, nil)
	}
	if err := h.Service.Reset(c.UserContext()); err != nil {
		if errors.Is(err, healthsvc.ErrRedisUnavailable) {
			return response.Error(c, err.Error(), fiber.StatusServiceUnavailable, nil)
		}
		log.Error().Err(err).Msg("health reset failed")
		return response.Error(c, err.Error(), fiber.StatusInternalServerError, nil)
	}
	return response.Success(c, "Stats reset successfully", fiber.Map{"success": true}, nil)
}

// GET /health/json
func (h *Handlers) JSON(c *fiber.Ctx) error {
	report := h.Service.Collect(c.UserContext())
	return c.JSON(fiber.Map{
		"service":      healthsvc.ServiceName,
		"status":       report.Status,
		"runtime":      report.Runtime,
		"traffic":      report.Traffic,
		"dependencies": report.Dependencies,
	})
}

// GET /health/errors: newest first, at most 50.
func (h *Handlers) Errors(c *fiber.Ctx) error {
	entries, err := h.Service.RecentErrors(c.UserContext())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON([]interface{}{})
	}
	return c.JSON(entries)
}
