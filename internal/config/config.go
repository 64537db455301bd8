package config

import (
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
)

// Config holds application configuration values.
type Config struct {
	Secret       string
	DatabaseDSN  string
	HTTPPort     string
	GeminiAPIKey string
	GeminiModel  string
	AITimeout    time.Duration
}

// Load reads configuration from environment variables with reasonable defaults.
func Load() Config {
	secret := os.Getenv("SECRET")
	if secret == "" {
		secret = "dev_secret"
	}

	port := os.Getenv("HTTP_PORT")
	if port == "" {
		port = "8080"
	}
	// Validate that port is numeric.
	if _, err := strconv.Atoi(port); err != nil {
		log.Warn().Str("port", port).Msg("invalid HTTP_PORT value, defaulting to 8080")
		port = "8080"
	}

	dsn := os.Getenv("DATABASE_DSN")
	if dsn == "" {
		dsn = "sehatsaathi.db"
	}

	model := os.Getenv("GEMINI_MODEL")
	if model == "" {
		model = "gemini-1.5-flash"
	}

	timeout := 15 * time.Second
	if raw := os.Getenv("AI_TIMEOUT_SECONDS"); raw != "" {
		secs, err := strconv.Atoi(raw)
		if err != nil || secs <= 0 {
			log.Warn().Str("value", raw).Msg("invalid AI_TIMEOUT_SECONDS, defaulting to 15")
		} else {
			timeout = time.Duration(secs) * time.Second
		}
	}

	return Config{
		Secret:       secret,
		DatabaseDSN:  dsn,
		HTTPPort:     port,
		GeminiAPIKey: os.Getenv("GEMINI_API_KEY"),
		GeminiModel:  model,
		AITimeout:    timeout,
	}
}
