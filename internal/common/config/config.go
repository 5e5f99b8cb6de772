package config

import (
	"os"
	"strconv"
	"strings"

	"floorplanner/internal/editor/models"
)

// ============================================================
// Configuration
// ============================================================

type Config struct {
	Port         string
	Environment  string
	ReadTimeout  int
	WriteTimeout int

	LogLevel  string
	LogFormat string

	DBDriver    string
	DBPath      string
	DatabaseURL string
	StorageRoot string
	WSPort      string
	// SessionIdle: минуты простоя, после которых сессия редактора закрывается.
	SessionIdle int
	CORSOrigins []string

	EditorURL    string
	ConverterURL string

	Canvas CanvasConfig
}

// CanvasConfig: параметры холста для новых редакторов.
type CanvasConfig struct {
	Width          float64
	Height         float64
	GridSize       float64
	UnitsPerCell   float64
	SnapToGrid     bool
	KeepDegenerate bool
	HistoryLimit   int
}

// Load загружает конфигурацию из переменных окружения
func Load() *Config {
	return &Config{
		Port:         getEnv("PORT", "3000"),
		Environment:  getEnv("ENV", "development"),
		ReadTimeout:  getEnvAsInt("READ_TIMEOUT", 10),
		WriteTimeout: getEnvAsInt("WRITE_TIMEOUT", 10),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: strings.ToLower(getEnv("LOG_FORMAT", "console")),

		DBDriver:    strings.ToLower(getEnv("DB_DRIVER", "sqlite")),
		DBPath:      getEnv("DB_PATH", "data/db/plans.db"),
		DatabaseURL: getEnv("DATABASE_URL", ""),
		StorageRoot: getEnv("STORAGE_ROOT", "data/plans"),
		WSPort:      getEnv("WS_PORT", "3003"),
		SessionIdle: getEnvAsInt("SESSION_IDLE_MINUTES", 30),
		CORSOrigins: getEnvAsList("CORS_ORIGINS"),

		EditorURL:    getEnv("EDITOR_URL", "http://localhost:3002"),
		ConverterURL: getEnv("CONVERTER_URL", "http://localhost:3001"),

		Canvas: CanvasConfig{
			Width:          getEnvAsFloat("CANVAS_WIDTH", models.DefaultCanvasWidth),
			Height:         getEnvAsFloat("CANVAS_HEIGHT", models.DefaultCanvasHeight),
			GridSize:       getEnvAsFloat("GRID_SIZE", models.DefaultGridSize),
			UnitsPerCell:   getEnvAsFloat("UNITS_PER_CELL", models.DefaultUnitsPerCell),
			SnapToGrid:     getEnvAsBool("SNAP_TO_GRID", true),
			KeepDegenerate: getEnvAsBool("KEEP_DEGENERATE", false),
			HistoryLimit:   getEnvAsInt("HISTORY_LIMIT", models.DefaultHistoryLimit),
		},
	}
}

// Settings переводит конфигурацию холста в настройки редактора.
func (c *Config) Settings() models.Settings {
	s := models.DefaultSettings()
	s.CanvasWidth = c.Canvas.Width
	s.CanvasHeight = c.Canvas.Height
	s.GridSize = c.Canvas.GridSize
	s.UnitsPerCell = c.Canvas.UnitsPerCell
	s.SnapToGrid = c.Canvas.SnapToGrid
	s.KeepDegenerate = c.Canvas.KeepDegenerate
	s.HistoryLimit = c.Canvas.HistoryLimit
	return s.Normalize()
}

func getEnv(key, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultVal
}

func getEnvAsFloat(key string, defaultVal float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultVal
}

func getEnvAsBool(key string, defaultVal bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultVal
}

// getEnvAsList читает список через запятую, пустые элементы отбрасываются.
func getEnvAsList(key string) []string {
	var out []string
	for _, item := range strings.Split(os.Getenv(key), ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
