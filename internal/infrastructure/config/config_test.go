package config

import (
	"context"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := LoadFrom(context.Background(), envconfig.MapLookuper(map[string]string{}))
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if cfg.Port != "3000" {
		t.Fatalf("Port = %q", cfg.Port)
	}
	if cfg.API.BaseURL != "http://localhost:5000" || cfg.API.Timeout != 10*time.Second {
		t.Fatalf("unexpected API config: %+v", cfg.API)
	}
	if cfg.Session.CookieName != "authToken" || cfg.Session.TTL != 168*time.Hour || !cfg.Session.Secure {
		t.Fatalf("unexpected session config: %+v", cfg.Session)
	}
	if cfg.Redis.Addr != "" || cfg.Redis.Timeout != 3*time.Second {
		t.Fatalf("unexpected redis defaults: %+v", cfg.Redis)
	}
	if cfg.Cache.CatalogTTL != 30*time.Second || cfg.Cache.BookingDedupTTL != time.Minute {
		t.Fatalf("unexpected cache config: %+v", cfg.Cache)
	}
	if cfg.RateLimit.LoginPerMinute != 10 || cfg.RateLimit.LoginBurst != 5 {
		t.Fatalf("unexpected rate limit config: %+v", cfg.RateLimit)
	}
	if cfg.AssetBase() != cfg.API.BaseURL {
		t.Fatalf("AssetBase should fall back to BaseURL")
	}
}

func TestLoad_Overrides(t *testing.T) {
	cfg, err := LoadFrom(context.Background(), envconfig.MapLookuper(map[string]string{
		"PORT":                  "8080",
		"ENV":                   "production",
		"API_BASE_URL":          "https://api.example.com",
		"API_ASSET_BASE_URL":    "https://cdn.example.com",
		"SESSION_TTL":           "1h",
		"SESSION_COOKIE_SECURE": "false",
		"REDIS_ADDR":            "redis:6379",
		"REDIS_DB":              "2",
		"REDIS_PASSWORD":        "s3cret",
		"REDIS_TIMEOUT":         "500ms",
	}))
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if !cfg.IsProduction() {
		t.Fatalf("expected production")
	}
	if cfg.Session.TTL != time.Hour || cfg.Session.Secure {
		t.Fatalf("unexpected session config: %+v", cfg.Session)
	}
	if cfg.Redis.Addr != "redis:6379" || cfg.Redis.DB != 2 ||
		cfg.Redis.Password != "s3cret" || cfg.Redis.Timeout != 500*time.Millisecond {
		t.Fatalf("unexpected redis config: %+v", cfg.Redis)
	}
	if cfg.AssetBase() != "https://cdn.example.com" {
		t.Fatalf("AssetBase = %q", cfg.AssetBase())
	}
}

func TestLoad_InvalidDuration(t *testing.T) {
	_, err := LoadFrom(context.Background(), envconfig.MapLookuper(map[string]string{
		"API_TIMEOUT": "soon",
	}))
	if err == nil {
		t.Fatalf("expected error for invalid duration")
	}
}
