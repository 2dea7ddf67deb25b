package config

import (
	"os"
	"time"
)

// Config holds everything the server reads from the environment.
type Config struct {
	Port        string
	DatabaseURL string
	JWTSecret   string
	TokenTTL    time.Duration
	GeminiKey   string
	GeminiModel string
	LogLevel    string
}

// Load reads the environment with defaults. DATABASE_URL is only required
// when the postgres storage backend is selected; the caller checks that.
func Load() *Config {
	ttl := 24 * time.Hour
	if raw := os.Getenv("TOKEN_TTL"); raw != "" {
		if parsed, err := time.ParseDuration(raw); err == nil && parsed > 0 {
			ttl = parsed
		}
	}

	return &Config{
		Port:        getenv("PORT", "8080"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		JWTSecret:   getenv("JWT_SECRET", "dev-only-secret"),
		TokenTTL:    ttl,
		GeminiKey:   os.Getenv("GEMINI_API_KEY"),
		GeminiModel: getenv("GEMINI_MODEL", "gemini-2.0-flash"),
		LogLevel:    getenv("LOG_LEVEL", "info"),
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
