package response

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, app *fiber.App, path string) (int, map[string]interface{}) {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest("GET", path, nil))
	require.NoError(t, err)
	var out map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return resp.StatusCode, out
}

func TestEnvelopes(t *testing.T) {
	app := fiber.New()
	app.Get("/created", func(c *fiber.Ctx) error {
		return SuccessCreated(c, "made", fiber.Map{"id": 1}, nil)
	})
	app.Get("/missing", func(c *fiber.Ctx) error {
		return NotFound(c, "Property not found")
	})

	status, out := decode(t, app, "/created")
	assert.Equal(t, fiber.StatusCreated, status)
	assert.Equal(t, "success", out["status"])
	assert.Equal(t, "made", out["message"])
	assert.Equal(t, map[string]interface{}{}, out["metadata"])

	status, out = decode(t, app, "/missing")
	assert.Equal(t, fiber.StatusNotFound, status)
	assert.Equal(t, "error", out["status"])
	detail := out["error"].(map[string]interface{})
	assert.Equal(t, "Property not found", detail["message"])
	assert.EqualValues(t, 404, detail["statusCode"])
}
