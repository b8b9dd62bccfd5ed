package propertyevents

import (
	"strconv"

	pesvc "station-listings/internal/application/propertyevents"
	"station-listings/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

type Handlers struct {
	Service *pesvc.Service
}

// GET /api/properties/:id/events (admin): audit history, oldest first
func (h *Handlers) GetPropertyEvents(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return response.NotFound(c, "Property not found")
	}
	events, err := h.Service.GetPropertyEvents(c.UserContext(), id)
	if err != nil {
		return response.Error(c, err.Error(), fiber.StatusInternalServerError, nil)
	}
	return response.Success(c, "Property events fetched successfully", events, fiber.Map{"count": len(events)})
}
