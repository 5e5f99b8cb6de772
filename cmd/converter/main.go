package main

import (
	"fmt"
	"os"
	"time"

	"floorplanner/internal/common/config"
	"floorplanner/internal/common/logging"
	"floorplanner/internal/common/middleware"
	"floorplanner/internal/converter/handlers"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/recover"
)

// ============================================================
// Converter Service
// ============================================================

func main() {
	cfg := config.Load()
	if os.Getenv("PORT") == "" {
		cfg.Port = "3001"
	}

	logger, closer, err := logging.New().Level(cfg.LogLevel).Format(cfg.LogFormat).Make()
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer closer.Close()

	converterHandler := handlers.NewConverterHandler(logger)

	app := fiber.New(fiber.Config{
		ReadTimeout:  time.Duration(cfg.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.WriteTimeout) * time.Second,
		AppName:      "Converter Service",
	})

	// ============================================================
	// Global Middleware
	// ============================================================

	app.Use(recover.New())
	app.Use(middleware.Logger(logger))

	// ============================================================
	// Health Check Routes
	// ============================================================

	app.Get("/health/live", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "alive"})
	})

	app.Get("/health/ready", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ready"})
	})

	// ============================================================
	// Converter Routes
	// ============================================================

	app.Post("/convert", converterHandler.ConvertSVG)
	app.Post("/render", converterHandler.RenderSVG)
	app.Post("/raster", converterHandler.RasterPNG)

	// ============================================================
	// Server Start
	// ============================================================

	addr := fmt.Sprintf(":%s", cfg.Port)
	logger.Info().Str("addr", addr).Str("env", cfg.Environment).Msg("starting converter service")

	if err := app.Listen(addr); err != nil {
		logger.Fatal().Err(err).Msg("failed to start server")
	}
}
