// Package config provides environment-driven configuration for the
// TalentScout server.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/go-playground/validator/v10"
)

// Config holds the server configuration. All values come from environment
// variables; a .env file is loaded by main before this runs.
type Config struct {
	Port        int    `validate:"gt=0,lte=65535"`
	DatabaseURL string `validate:"required"`

	// GeminiAPIKey may be empty: the server then runs with fallback
	// phrasing only, which is a fully supported mode.
	GeminiAPIKey string
	AIModel      string  `validate:"required"`
	Temperature  float32 `validate:"gte=0,lte=2"`

	Debug   bool
	LogJSON bool
}

// Load reads the configuration from the environment and validates it.
func Load() (*Config, error) {
	cfg := &Config{
		Port:         getEnvInt("PORT", 8080),
		DatabaseURL:  os.Getenv("DATABASE_URL"),
		GeminiAPIKey: os.Getenv("GEMINI_API_KEY"),
		AIModel:      getEnvString("AI_MODEL", "gemini-2.5-flash-lite"),
		Temperature:  getEnvFloat32("TEMPERATURE", 0.7),
		Debug:        getEnvBool("DEBUG", false),
		LogJSON:      getEnvBool("LOG_JSON", false),
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func getEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloat32(key string, defaultValue float32) float32 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 32); err == nil {
			return float32(f)
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}
