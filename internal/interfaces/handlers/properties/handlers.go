package properties

import (
	"encoding/json"
	"errors"
	"strconv"

	propsvc "station-listings/internal/application/properties"
	"station-listings/internal/middleware"
	"station-listings/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

type Handlers struct {
	Service *propsvc.Service
}

// POST /api/properties (admin): 201 with { id, code }
func (h *Handlers) CreateProperty(c *fiber.Ctx) error {
	body, ok := parseObject(c.Body())
	if !ok {
		return response.Error(c, propsvc.ErrInvalidBody.Error(), fiber.StatusInternalServerError, nil)
	}
	res, err := h.Service.CreateProperty(c.UserContext(), body)
	if err != nil {
		if errors.Is(err, propsvc.ErrCodeExhausted) {
			return response.Error(c, err.Error(), fiber.StatusConflict, nil)
		}
		log.Error().Err(err).Str("trace_id", middleware.GetTraceID(c)).Msg("create property failed")
		return response.Error(c, err.Error(), fiber.StatusInternalServerError, nil)
	}
	return response.SuccessCreated(c, "Property created successfully", res, nil)
}

// GET /api/properties
func (h *Handlers) ListProperties(c *fiber.Ctx) error {
	q := propsvc.ListQuery{
		Category:     c.Query("category"),
		PropertyType: c.Query("propertyType"),
		DealType:     c.Query("dealType"),
		ListingID:    c.Query("listingId"),
		Limit:        c.QueryInt("limit", propsvc.DefaultListLimit),
	}
	list, err := h.Service.ListProperties(c.UserContext(), q)
	if err != nil {
		log.Error().Err(err).Str("trace_id", middleware.GetTraceID(c)).Msg("list properties failed")
		return response.Error(c, err.Error(), fiber.StatusInternalServerError, nil)
	}
	return response.Success(c, "Properties fetched successfully", list, fiber.Map{"count": len(list)})
}

// GET /api/properties/:id
func (h *Handlers) GetProperty(c *fiber.Ctx) error {
	id, ok := propertyID(c)
	if !ok {
		return response.NotFound(c, propsvc.ErrNotFound.Error())
	}
	p, err := h.Service.GetProperty(c.UserContext(), id)
	if err != nil {
		if errors.Is(err, propsvc.ErrNotFound) {
			return response.NotFound(c, err.Error())
		}
		log.Error().Err(err).Int64("property_id", id).Msg("get property failed")
		return response.Error(c, err.Error(), fiber.StatusInternalServerError, nil)
	}
	return response.Success(c, "Property fetched successfully", p, nil)
}

// PATCH /api/properties/:id (admin)
func (h *Handlers) UpdateProperty(c *fiber.Ctx) error {
	id, ok := propertyID(c)
	if !ok {
		return response.NotFound(c, propsvc.ErrNotFound.Error())
	}
	body, ok := parseObject(c.Body())
	if !ok {
		return response.Error(c, propsvc.ErrInvalidBody.Error(), fiber.StatusInternalServerError, nil)
	}
	p, err := h.Service.UpdateProperty(c.UserContext(), id, body)
	if err != nil {
		if errors.Is(err, propsvc.ErrNotFound) {
			return response.NotFound(c, err.Error())
		}
		log.Error().Err(err).Int64("property_id", id).Msg("update property failed")
		return response.Error(c, err.Error(), fiber.StatusInternalServerError, nil)
	}
	return response.Success(c, "Property updated successfully", p, nil)
}

// DELETE /api/properties/:id (admin)
func (h *Handlers) DeleteProperty(c *fiber.Ctx) error {
	id, ok := propertyID(c)
	if !ok {
		return response.NotFound(c, propsvc.ErrNotFound.Error())
	}
	if err := h.Service.DeleteProperty(c.UserContext(), id); err != nil {
		if errors.Is(err, propsvc.ErrNotFound) {
			return response.NotFound(c, err.Error())
		}
		log.Error().Err(err).Int64("property_id", id).Msg("delete property failed")
		return response.Error(c, err.Error(), fiber.StatusInternalServerError, nil)
	}
	return response.Success(c, "Property deleted successfully", fiber.Map{"id": id}, nil)
}

// propertyID parses :id; anything but a positive integer is treated as missing.
func propertyID(c *fiber.Ctx) (int64, bool) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// parseObject accepts only a JSON object body. Anything else is a server
// error like any other failed write; there is no separate bad-request class.
func parseObject(raw []byte) (map[string]interface{}, bool) {
	var body map[string]interface{}
	if err := json.Unmarshal(raw, &body); err != nil || body == nil {
		return nil, false
	}
	return body, true
}
