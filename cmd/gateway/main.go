package main

import (
	"fmt"
	"os"
	"time"

	"floorplanner/internal/common/config"
	"floorplanner/internal/common/logging"
	"floorplanner/internal/common/middleware"
	"floorplanner/internal/gateway/handlers"
	"floorplanner/internal/gateway/proxy"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/recover"
)

// ============================================================
// API Gateway
// ============================================================

func main() {
	cfg := config.Load()

	logger, closer, err := logging.New().Level(cfg.LogLevel).Format(cfg.LogFormat).Make()
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer closer.Close()

	app := fiber.New(fiber.Config{
		ReadTimeout:  time.Duration(cfg.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.WriteTimeout) * time.Second,
		AppName:      "API Gateway",
	})

	// ============================================================
	// Global Middleware
	// ============================================================

	app.Use(recover.New())
	app.Use(middleware.Logger(logger))
	app.Use(middleware.CORS(cfg.CORSOrigins))

	// ============================================================
	// Health Check Routes
	// ============================================================

	readiness := handlers.NewReadiness(map[string]string{
		"editor":    cfg.EditorURL,
		"converter": cfg.ConverterURL,
	})

	app.Get("/health/live", handlers.LivenessProbe)
	app.Get("/health/ready", readiness.ReadinessProbe)
	app.Get("/health/startup", handlers.StartupProbe)

	// ============================================================
	// Docs
	// ============================================================

	app.Get("/docs", handlers.SwaggerUI("/docs/openapi.yaml"))
	app.Get("/docs/openapi.yaml", handlers.SwaggerSpec)

	// ============================================================
	// API Routes
	// ============================================================

	api := app.Group("/api/v1")

	api.Get("/", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Floor Planner API v1",
			"status":  "ok",
		})
	})

	// ============================================================
	// Service Routes (Proxy)
	// ============================================================

	p := proxy.New(logger)

	// Converter Service
	api.Post("/convert", p.To(cfg.ConverterURL+"/convert"))
	api.Post("/render", p.To(cfg.ConverterURL+"/render"))
	api.Post("/raster", p.To(cfg.ConverterURL+"/raster"))

	// Editor Service
	api.All("/editor/*", p.Mount(cfg.EditorURL))

	// ============================================================
	// Server Start
	// ============================================================

	addr := fmt.Sprintf(":%s", cfg.Port)
	logger.Info().
		Str("addr", addr).
		Str("env", cfg.Environment).
		Str("editor", cfg.EditorURL).
		Str("converter", cfg.ConverterURL).
		Msg("starting API gateway")

	if err := app.Listen(addr); err != nil {
		logger.Fatal().Err(err).Msg("failed to start server")
	}
}
