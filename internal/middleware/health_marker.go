package middleware

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"station-listings/internal/application/health"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// HealthMarker records request stats in Redis (skip /, /health*, /metrics,
// favicon). 5xx responses are also pushed onto the capped error log.
// A nil client disables the middleware.
func HealthMarker(rdb *redis.Client) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if rdb == nil || skipStats(c.Path()) {
			return c.Next()
		}

		start := time.Now()
		last, _ := json.Marshal(map[string]interface{}{
			"time":   start,
			"ip":     c.IP(),
			"path":   c.OriginalURL(),
			"method": c.Method(),
		})
		ctx := context.Background()
		pipe := rdb.Pipeline()
		pipe.Set(ctx, health.KeyLastReq, last, 0)
		pipe.Incr(ctx, health.KeyReqTotal)
		if _, err := pipe.Exec(ctx); err != nil {
			log.Debug().Err(err).Msg("health marker: redis unavailable")
		}

		err := c.Next()
		if err != nil {
			// Run the error handler now so the recorded status is the one sent.
			if herr := c.App().ErrorHandler(c, err); herr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
			err = nil
		}

		status := c.Response().StatusCode()
		pipe = rdb.Pipeline()
		pipe.Incr(ctx, health.KeyResCount)
		pipe.IncrByFloat(ctx, health.KeyResTime, float64(time.Since(start).Milliseconds()))
		if status >= fiber.StatusInternalServerError {
			pipe.Incr(ctx, health.KeyReqErrors)
			entry, _ := json.Marshal(map[string]interface{}{
				"time":     start.UTC().Format(time.RFC3339),
				"path":     c.OriginalURL(),
				"method":   c.Method(),
				"status":   status,
				"trace_id": GetTraceID(c),
				"message":  errorMessage(c.Response().Body()),
			})
			pipe.LPush(ctx, health.KeyErrorLog, entry)
			pipe.LTrim(ctx, health.KeyErrorLog, 0, health.ErrorLogSize-1)
		}
		if _, perr := pipe.Exec(ctx); perr != nil {
			log.Debug().Err(perr).Msg("health marker: redis unavailable")
		}
		return err
	}
}

func skipStats(path string) bool {
	return path == "/" || path == "/metrics" ||
		strings.HasPrefix(path, "/health") || strings.HasPrefix(path, "/favicon")
}

// errorMessage pulls error.message out of an error envelope body.
func errorMessage(body []byte) string {
	var env struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if json.Unmarshal(body, &env) == nil && env.Error.Message != "" {
		return env.Error.Message
	}
	return "unknown error"
}
