package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"floorplanner/internal/common/config"
	"floorplanner/internal/common/logging"
	"floorplanner/internal/common/middleware"
	"floorplanner/internal/editor/handlers"
	"floorplanner/internal/editor/live"
	"floorplanner/internal/editor/repository"
	"floorplanner/internal/editor/session"
	"floorplanner/internal/editor/storage"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/recover"
	"github.com/rs/zerolog"
)

// ============================================================
// Editor Service
// ============================================================

func main() {
	cfg := config.Load()
	if os.Getenv("PORT") == "" {
		cfg.Port = "3002"
	}

	logger, closer, err := logging.New().Level(cfg.LogLevel).Format(cfg.LogFormat).Make()
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer closer.Close()

	store, err := openStore(cfg, logger)
	if err != nil {
		logger.Fatal().Err(err).Str("driver", cfg.DBDriver).Msg("open plan store")
	}
	defer store.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sessions := session.NewRegistry(cfg.Settings(), logger)
	go sweepIdle(ctx, sessions, time.Duration(cfg.SessionIdle)*time.Minute)

	files := storage.NewFileStorage(cfg.StorageRoot)
	converter := handlers.NewConverterClient(cfg.ConverterURL)
	editorHandler := handlers.NewEditorHandler(sessions, store, files, converter, logger)

	app := fiber.New(fiber.Config{
		ReadTimeout:  time.Duration(cfg.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.WriteTimeout) * time.Second,
		AppName:      "Editor Service",
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

	app.Get("/health/live", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "alive"})
	})

	app.Get("/health/ready", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ready", "sessions": sessions.Len()})
	})

	// ============================================================
	// Editor Routes
	// ============================================================

	editorHandler.Register(app)

	// ============================================================
	// Live Socket
	// ============================================================

	// fasthttp не отдаёт hijack для gorilla, поэтому сокет живёт на net/http
	mux := http.NewServeMux()
	mux.Handle("/ws", live.NewHandler(sessions, logger))
	wsServer := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.WSPort),
		Handler:           mux,
		ReadHeaderTimeout: time.Duration(cfg.ReadTimeout) * time.Second,
	}
	go func() {
		logger.Info().Str("addr", wsServer.Addr).Msg("live socket listening")
		if err := wsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error().Err(err).Msg("live socket stopped")
			stop()
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = wsServer.Shutdown(shutdownCtx)
		_ = app.ShutdownWithContext(shutdownCtx)
	}()

	// ============================================================
	// Server Start
	// ============================================================

	addr := fmt.Sprintf(":%s", cfg.Port)
	logger.Info().Str("addr", addr).Str("env", cfg.Environment).Str("db", cfg.DBDriver).Msg("starting editor service")

	if err := app.Listen(addr); err != nil {
		logger.Error().Err(err).Msg("server stopped")
	}
}

func openStore(cfg *config.Config, logger zerolog.Logger) (repository.Store, error) {
	ctx := context.Background()
	switch cfg.DBDriver {
	case "postgres":
		store, err := repository.NewPostgres(cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		if err := store.Migrate(ctx); err != nil {
			_ = store.Close()
			return nil, fmt.Errorf("migrate: %w", err)
		}
		return store, nil
	case "sqlite":
		db, err := repository.OpenSQLite(cfg.DBPath)
		if err != nil {
			return nil, err
		}
		store := repository.NewSQLite(db)
		if err := store.Init(ctx); err != nil {
			_ = store.Close()
			return nil, fmt.Errorf("init db: %w", err)
		}
		logger.Debug().Str("path", cfg.DBPath).Msg("sqlite ready")
		return store, nil
	}
	return nil, fmt.Errorf("unknown db driver %q", cfg.DBDriver)
}

// sweepIdle закрывает брошенные сессии раз в минуту.
func sweepIdle(ctx context.Context, sessions *session.Registry, maxIdle time.Duration) {
	if maxIdle <= 0 {
		return
	}
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			sessions.Sweep(maxIdle)
		}
	}
}
