package config

import (
	"os"
	"strconv"
	"time"
)

type AppConfig struct {
	// Server
	HTTPAddr  string
	RedisAddr string
	RedisPass string
	RedisDB   int

	// Backend REST API this client talks to
	APIBaseURL string
	APITimeout time.Duration

	// Session cookie
	CookieName   string
	CookieSecret string
	CookieSecure bool
	SessionTTL   time.Duration

	// OTP resend cooldown shown on the verify-email page. The backend
	// enforces the real limit; this only disables the resend control.
	ResendCooldown time.Duration
}

// Load loads environment variables into AppConfig.
func Load() AppConfig {
	return AppConfig{
		HTTPAddr:  getEnv("HTTP_ADDR", ":3000"),
		RedisAddr: getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPass: getEnv("REDIS_PASS", ""),
		RedisDB:   getEnvInt("REDIS_DB", 0),

		APIBaseURL: getEnv("API_BASE_URL", "http://localhost:5000/api"),
		APITimeout: getEnvDuration("API_TIMEOUT", 30*time.Second),

		CookieName:   getEnv("SESSION_COOKIE_NAME", "voiceai_session"),
		CookieSecret: getEnv("SESSION_COOKIE_SECRET", "dev-only-secret-change-me"),
		CookieSecure: getEnv("SESSION_COOKIE_SECURE", "false") == "true",
		SessionTTL:   getEnvDuration("SESSION_TTL", 720*time.Hour),

		ResendCooldown: getEnvDuration("OTP_RESEND_COOLDOWN", 60*time.Second),
	}
}

// --- Helper functions ---

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
