package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// ============================================================
// Configuration
// ============================================================

type Config struct {
	Port         string
	Environment  string
	ReadTimeout  int
	WriteTimeout int

	// Interchange units
	CellSizeFeet    float64
	StoryHeightFeet float64

	// Project store
	ProjectsDBPath string
	ExportDir      string
	LayoutJSONPath string

	// Upstream services
	ConverterURL string
	ProjectsURL  string
}

// Load reads the configuration from the environment. A .env file in the
// working directory is applied first when present; real env vars win.
func Load() *Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("[CONFIG] .env ignored: %v", err)
	}

	return &Config{
		Port:         getEnv("PORT", "3000"),
		Environment:  getEnv("ENV", "development"),
		ReadTimeout:  getEnvAsInt("READ_TIMEOUT", 10),
		WriteTimeout: getEnvAsInt("WRITE_TIMEOUT", 10),

		CellSizeFeet:    getEnvAsFloat("CELL_SIZE_FEET", 8),
		StoryHeightFeet: getEnvAsFloat("STORY_HEIGHT_FEET", 10),

		ProjectsDBPath: getEnv("PROJECTS_DB_PATH", "data/db/projects.db"),
		ExportDir:      getEnv("EXPORT_DIR", "data/export"),
		LayoutJSONPath: getEnv("DAYLUN_LAYOUT_JSON", "data/export/daylun-revit-layout.json"),

		ConverterURL: getEnv("CONVERTER_URL", "http://localhost:3001"),
		ProjectsURL:  getEnv("PROJECTS_URL", "http://localhost:3002"),
	}
}

// PortOr returns fallback when PORT was not set explicitly.
func (c *Config) PortOr(fallback string) string {
	if os.Getenv("PORT") == "" {
		return fallback
	}
	return c.Port
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
		if f, err := strconv.ParseFloat(value, 64); err == nil && f > 0 {
			return f
		}
	}
	return defaultVal
}
