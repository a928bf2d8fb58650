package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type AppConfig struct {
	// Server
	HTTPAddr       string
	AllowedOrigins []string
	TrustedProxies []string

	// Storage
	DatabaseURL string
	RedisAddr   string
	RedisPass   string

	// Rate limiting (needs Redis)
	RateLimitMax    int64
	RateLimitWindow time.Duration

	// Admin UI
	CustomerAPIURL   string
	ClientTimeout    time.Duration
	FlashDelay       time.Duration
	DeleteFlashDelay time.Duration
}

// Load loads environment variables into AppConfig.
func Load() AppConfig {
	httpAddr := getEnv("HTTP_ADDR", ":8070")

	return AppConfig{
		HTTPAddr:       httpAddr,
		AllowedOrigins: getEnvSlice("ALLOWED_ORIGINS", []string{"*"}),
		TrustedProxies: getEnvSlice("TRUSTED_PROXIES", nil),

		DatabaseURL: getEnv("DATABASE_URL", ""),
		RedisAddr:   getEnv("REDIS_ADDR", ""),
		RedisPass:   getEnv("REDIS_PASS", ""),

		RateLimitMax:    getEnvInt("RATE_LIMIT_MAX", 60),
		RateLimitWindow: getEnvDuration("RATE_LIMIT_WINDOW", time.Minute),

		CustomerAPIURL:   getEnv("CUSTOMER_API_URL", selfURL(httpAddr)),
		ClientTimeout:    getEnvDuration("CLIENT_TIMEOUT", 10*time.Second),
		FlashDelay:       getEnvDuration("FLASH_DELAY", time.Second),
		DeleteFlashDelay: getEnvDuration("DELETE_FLASH_DELAY", 800*time.Millisecond),
	}
}

// --- Helper functions ---

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvSlice(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		parts := strings.Split(value, ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		return parts
	}
	return defaultValue
}

func getEnvInt(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil && n > 0 {
			return n
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			return d
		}
	}
	return fallback
}

// selfURL points the admin UI at the API served by this same process.
func selfURL(addr string) string {
	if strings.HasPrefix(addr, ":") {
		return "http://127.0.0.1" + addr
	}
	return "http://" + addr
}
