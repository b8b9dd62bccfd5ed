package bootstrap

import (
	"station-listings/internal/config"
	"station-listings/internal/interfaces/router"
	"station-listings/internal/pkg/logging"

	"github.com/gofiber/fiber/v2"
)

// New creates the Fiber app for Vercel serverless (api handler imports this package, not internal).
func New() (*fiber.App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	logging.Setup(cfg.LogLevel, cfg.IsProduction())
	app, _, _, err := router.CreateApp(cfg, router.Deps{})
	return app, err
}
