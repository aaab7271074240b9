package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,default=3000"`
	Env      string `env:"ENV,default=development"`
	LogLevel string `env:"LOG_LEVEL,default=info"`

	API       APIConfig
	Session   SessionConfig
	Redis     RedisConfig
	Cache     CacheConfig
	RateLimit RateLimitConfig
}

type APIConfig struct {
	BaseURL string        `env:"API_BASE_URL,default=http://localhost:5000"`
	Timeout time.Duration `env:"API_TIMEOUT,default=10s"`
	// AssetBaseURL prefixes relative image paths. Empty means BaseURL.
	AssetBaseURL string `env:"API_ASSET_BASE_URL"`
}

type SessionConfig struct {
	CookieName string        `env:"SESSION_COOKIE_NAME,default=authToken"`
	TTL        time.Duration `env:"SESSION_TTL,default=168h"`
	Secure     bool          `env:"SESSION_COOKIE_SECURE,default=true"`
}

// RedisConfig is optional. An empty Addr disables the catalog cache and
// booking dedup.
type RedisConfig struct {
	Addr     string        `env:"REDIS_ADDR"`
	Password string        `env:"REDIS_PASSWORD"`
	DB       int           `env:"REDIS_DB,default=0"`
	PoolSize int           `env:"REDIS_POOL_SIZE,default=0"`
	Timeout  time.Duration `env:"REDIS_TIMEOUT,default=3s"`
}

type CacheConfig struct {
	CatalogTTL      time.Duration `env:"CATALOG_CACHE_TTL,default=30s"`
	BookingDedupTTL time.Duration `env:"BOOKING_DEDUP_TTL,default=1m"`
}

type RateLimitConfig struct {
	LoginPerMinute float64 `env:"LOGIN_RATE_PER_MINUTE,default=10"`
	LoginBurst     int     `env:"LOGIN_RATE_BURST,default=5"`
}

// IsProduction reports whether ENV is "production".
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// AssetBase returns the prefix for relative image paths.
func (c *Config) AssetBase() string {
	if c.API.AssetBaseURL != "" {
		return c.API.AssetBaseURL
	}
	return c.API.BaseURL
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	return LoadFrom(ctx, envconfig.OsLookuper())
}

// LoadFrom reads configuration through l.
func LoadFrom(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if cfg.API.BaseURL == "" {
		return nil, fmt.Errorf("config: API_BASE_URL must not be empty")
	}
	return &cfg, nil
}
