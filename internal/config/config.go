package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config carries all server settings. Values come from the environment,
// with a .env file loaded first if one exists.
type Config struct {
	// HTTP server
	Port            string
	ShutdownTimeout time.Duration

	// Database. Empty DatabaseURL runs the server on in-memory stores.
	DatabaseURL string

	// Translation service
	TranslateURL     string
	TranslateAPIKey  string
	TranslateTimeout time.Duration
	TranslateCache   int

	// Logging
	LogLevel string
}

func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Port:            getEnv("PORT", "8080"),
		ShutdownTimeout: getEnvDuration("SHUTDOWN_TIMEOUT", 10*time.Second),

		DatabaseURL: getEnv("DATABASE_URL", ""),

		TranslateURL:     getEnv("TRANSLATE_URL", ""),
		TranslateAPIKey:  getEnv("TRANSLATE_API_KEY", ""),
		TranslateTimeout: getEnvDuration("TRANSLATE_TIMEOUT", 5*time.Second),
		TranslateCache:   getEnvInt("TRANSLATE_CACHE_SIZE", 1024),

		LogLevel: getEnv("LOG_LEVEL", "INFO"),
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return n
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}
	return d
}
