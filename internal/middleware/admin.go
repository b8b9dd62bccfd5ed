package middleware

import (
	"crypto/subtle"

	"station-listings/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

// AdminPasswordHeader carries the shared admin password on write requests.
const AdminPasswordHeader = "X-Admin-Password"

// AdminConfig holds the shared admin secret. PasswordHash (bcrypt) wins over
// Password when both are set.
type AdminConfig struct {
	Password     string
	PasswordHash string
}

// AdminGate compares the X-Admin-Password header with the configured secret.
// Missing configuration -> 500 "Admin password not configured"; mismatch -> 401.
// It gates the admin console only and is not a session or user system.
func AdminGate(cfg AdminConfig) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if cfg.Password == "" && cfg.PasswordHash == "" {
			return response.Error(c, "Admin password not configured", fiber.StatusInternalServerError, nil)
		}
		given := c.Get(AdminPasswordHeader)
		if given == "" || !adminPasswordMatches(cfg, given) {
			log.Warn().Str("trace_id", GetTraceID(c)).Str("method", c.Method()).Str("path", c.Path()).Msg("admin gate: rejected")
			return response.Unauthorized(c, "Admin password required")
		}
		return c.Next()
	}
}

func adminPasswordMatches(cfg AdminConfig, given string) bool {
	if cfg.PasswordHash != "" {
		return bcrypt.CompareHashAndPassword([]byte(cfg.PasswordHash), []byte(given)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(cfg.Password), []byte(given)) == 1
}
