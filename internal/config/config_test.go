package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"HTTP_ADDR", "DATABASE_URL", "REDIS_ADDR", "CUSTOMER_API_URL",
		"RATE_LIMIT_MAX", "RATE_LIMIT_WINDOW", "ALLOWED_ORIGINS", "TRUSTED_PROXIES", "FLASH_DELAY", "DELETE_FLASH_DELAY"} {
		t.Setenv(k, "")
	}

	cfg := Load()
	if cfg.HTTPAddr != ":8070" {
		t.Errorf("unexpected addr %q", cfg.HTTPAddr)
	}
	if cfg.CustomerAPIURL != "http://127.0.0.1:8070" {
		t.Errorf("unexpected api url %q", cfg.CustomerAPIURL)
	}
	if cfg.RateLimitMax != 60 || cfg.RateLimitWindow != time.Minute {
		t.Errorf("unexpected rate limit %d/%s", cfg.RateLimitMax, cfg.RateLimitWindow)
	}
	if cfg.FlashDelay != time.Second || cfg.DeleteFlashDelay != 800*time.Millisecond {
		t.Errorf("unexpected flash delays %s/%s", cfg.FlashDelay, cfg.DeleteFlashDelay)
	}
	if len(cfg.AllowedOrigins) != 1 || cfg.AllowedOrigins[0] != "*" {
		t.Errorf("unexpected origins %v", cfg.AllowedOrigins)
	}
	if cfg.TrustedProxies != nil {
		t.Errorf("no proxy should be trusted by default, got %v", cfg.TrustedProxies)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("HTTP_ADDR", "0.0.0.0:9000")
	t.Setenv("CUSTOMER_API_URL", "")
	t.Setenv("RATE_LIMIT_MAX", "5")
	t.Setenv("RATE_LIMIT_WINDOW", "30s")
	t.Setenv("ALLOWED_ORIGINS", "http://a, http://b")
	t.Setenv("FLASH_DELAY", "not-a-duration")
	t.Setenv("TRUSTED_PROXIES", "10.0.0.0/8, 192.168.1.2")

	cfg := Load()
	if cfg.CustomerAPIURL != "http://0.0.0.0:9000" {
		t.Errorf("unexpected api url %q", cfg.CustomerAPIURL)
	}
	if cfg.RateLimitMax != 5 || cfg.RateLimitWindow != 30*time.Second {
		t.Errorf("unexpected rate limit %d/%s", cfg.RateLimitMax, cfg.RateLimitWindow)
	}
	if len(cfg.AllowedOrigins) != 2 || cfg.AllowedOrigins[1] != "http://b" {
		t.Errorf("unexpected origins %v", cfg.AllowedOrigins)
	}
	if cfg.FlashDelay != time.Second {
		t.Errorf("bad duration should fall back, got %s", cfg.FlashDelay)
	}
	if len(cfg.TrustedProxies) != 2 || cfg.TrustedProxies[1] != "192.168.1.2" {
		t.Errorf("unexpected proxies %v", cfg.TrustedProxies)
	}
}
