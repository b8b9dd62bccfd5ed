package router

import (
	"net/http"

	healthsvc "station-listings/internal/application/health"
	propsvc "station-listings/internal/application/properties"
	pesvc "station-listings/internal/application/propertyevents"
	"station-listings/internal/config"
	"station-listings/internal/infrastructure/database"
	healthhandler "station-listings/internal/interfaces/handlers/health"
	prophandler "station-listings/internal/interfaces/handlers/properties"
	pehandler "station-listings/internal/interfaces/handlers/propertyevents"
	"station-listings/internal/middleware"
	"station-listings/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// Deps carries already-opened backends; nil fields are opened from cfg.
// Tests pass an sqlite DB and a miniredis client here.
type Deps struct {
	DB    *gorm.DB
	Redis *redis.Client
}

func CreateApp(cfg *config.Config, deps Deps) (*fiber.App, *gorm.DB, *redis.Client, error) {
	db, rdb := deps.DB, deps.Redis

	if db == nil && cfg.DatabaseURL != "" {
		var err error
		db, err = database.Open(cfg.DatabaseURL)
		if err != nil {
			return nil, nil, nil, err
		}
		if cfg.AutoMigrate {
			if err := database.AutoMigrate(db); err != nil {
				return nil, nil, nil, err
			}
		}
	}
	if rdb == nil && cfg.RedisURL != "" {
		opt, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, nil, nil, err
		}
		rdb = redis.NewClient(opt)
	}

	app := fiber.New(fiber.Config{
		DisableStartupMessage:   true,
		ErrorHandler:            middleware.ErrorHandler,
		EnableTrustedProxyCheck: true,
	})

	app.Use(middleware.CORS(middleware.CORSConfig{
		AllowedSuffix: cfg.FrontendURLEndsWith,
		DevPassword:   cfg.DevPassword,
	}))
	app.Use(middleware.Tracing())
	app.Use(middleware.RouteLogger())
	app.Use(middleware.Metrics())
	app.Use(middleware.HealthMarker(rdb))

	hs := &healthsvc.Service{Redis: rdb}
	if db != nil {
		if sqlDB, err := db.DB(); err == nil {
			hs.DB = sqlDB
		}
	}
	hh := &healthhandler.Handlers{Service: hs, HealthAdminKey: cfg.HealthAdminKey}
	app.Get("/reset", hh.Reset)
	app.Get("/health/json", hh.JSON)
	app.Get("/health/errors", hh.Errors)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	if db == nil {
		log.Warn().Msg("no database configured; /api/properties unavailable")
		app.Use("/api", func(c *fiber.Ctx) error {
			return response.Error(c, "Database not configured", fiber.StatusServiceUnavailable, nil)
		})
		return app, db, rdb, nil
	}

	admin := middleware.AdminGate(middleware.AdminConfig{
		Password:     cfg.AdminPassword,
		PasswordHash: cfg.AdminPasswordHash,
	})

	ph := &prophandler.Handlers{Service: &propsvc.Service{DB: db}}
	peh := &pehandler.Handlers{Service: &pesvc.Service{DB: db}}

	pg := app.Group("/api/properties")
	pg.Get("/", ph.ListProperties)
	pg.Post("/", admin, ph.CreateProperty)
	pg.Get("/:id", ph.GetProperty)
	pg.Patch("/:id", admin, ph.UpdateProperty)
	pg.Delete("/:id", admin, ph.DeleteProperty)
	pg.Get("/:id/events", admin, peh.GetPropertyEvents)

	return app, db, rdb, nil
}

func Handler(app *fiber.App) http.Handler {
	return adaptor.FiberApp(app)
}
