package middleware

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func adminApp(cfg AdminConfig) *fiber.App {
	app := fiber.New()
	app.Post("/admin", AdminGate(cfg), func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})
	return app
}

func postAdmin(t *testing.T, app *fiber.App, password string) (int, map[string]interface{}) {
	t.Helper()
	req := httptest.NewRequest("POST", "/admin", nil)
	if password != "" {
		req.Header.Set(AdminPasswordHeader, password)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	var out map[string]interface{}
	_ = json.NewDecoder(resp.Body).Decode(&out)
	return resp.StatusCode, out
}

func TestAdminGate_Password(t *testing.T) {
	app := adminApp(AdminConfig{Password: "s3cret"})

	status, _ := postAdmin(t, app, "s3cret")
	assert.Equal(t, fiber.StatusOK, status)

	status, out := postAdmin(t, app, "wrong")
	assert.Equal(t, fiber.StatusUnauthorized, status)
	assert.Equal(t, "error", out["status"])

	status, _ = postAdmin(t, app, "")
	assert.Equal(t, fiber.StatusUnauthorized, status)
}

func TestAdminGate_Hash(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("hashed-pass"), bcrypt.MinCost)
	require.NoError(t, err)
	// the hash wins over the plain password
	app := adminApp(AdminConfig{Password: "plain", PasswordHash: string(hash)})

	status, _ := postAdmin(t, app, "hashed-pass")
	assert.Equal(t, fiber.StatusOK, status)
	status, _ = postAdmin(t, app, "plain")
	assert.Equal(t, fiber.StatusUnauthorized, status)
}

func TestAdminGate_NotConfigured(t *testing.T) {
	app := adminApp(AdminConfig{})
	status, out := postAdmin(t, app, "anything")
	assert.Equal(t, fiber.StatusInternalServerError, status)
	assert.Equal(t, "Admin password not configured", out["error"].(map[string]interface{})["message"])
}
