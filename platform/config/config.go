// Package config provides application configuration loading.
// This is part of the platform layer and contains no business logic.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// =============================================================================
// Module-Specific Config Interfaces (Principle of Least Privilege)
// =============================================================================

// HTTPConfig provides settings for the HTTP server.
type HTTPConfig interface {
	GetHTTPAddr() string
	GetCORSAllowAll() bool
	GetCORSOrigins() []string
	GetCORSAllowCreds() bool
}

// UpstreamConfig provides settings for the tracker backend client.
type UpstreamConfig interface {
	GetUpstreamBaseURL() string
	GetWizardPath() string
	GetCSRFToken() string
	GetUpstreamTimeout() time.Duration
}

// RedisConfig provides settings for the Redis-backed stores.
type RedisConfig interface {
	GetRedisURL() string
}

// WizardConfig provides settings for the wizard engine.
type WizardConfig interface {
	GetSessionTTL() time.Duration
	GetBridgeTTL() time.Duration
}

// CatalogConfig provides settings for the service-option catalogue.
type CatalogConfig interface {
	GetCatalogCacheTTL() time.Duration
	GetCatalogSeedPath() string
}

// RateLimitConfig provides settings for per-IP rate limiting.
type RateLimitConfig interface {
	GetRateLimitRPS() float64
	GetRateLimitBurst() int
}

// =============================================================================
// Main Config Struct
// =============================================================================

// Config holds all application configuration values.
type Config struct {
	Env             string
	HTTPAddr        string
	CORSAllowAll    bool
	CORSOrigins     []string
	CORSAllowCreds  bool
	UpstreamBaseURL string
	WizardPath      string
	CSRFToken       string
	UpstreamTimeout time.Duration
	RedisURL        string
	SessionTTL      time.Duration
	BridgeTTL       time.Duration
	CatalogCacheTTL time.Duration
	CatalogSeedPath string
	RateLimitRPS    float64
	RateLimitBurst  int
}

// =============================================================================
// Interface Implementations
// =============================================================================

// HTTPConfig implementation
func (c *Config) GetHTTPAddr() string      { return c.HTTPAddr }
func (c *Config) GetCORSAllowAll() bool    { return c.CORSAllowAll }
func (c *Config) GetCORSOrigins() []string { return c.CORSOrigins }
func (c *Config) GetCORSAllowCreds() bool  { return c.CORSAllowCreds }

// UpstreamConfig implementation
func (c *Config) GetUpstreamBaseURL() string        { return c.UpstreamBaseURL }
func (c *Config) GetWizardPath() string             { return c.WizardPath }
func (c *Config) GetCSRFToken() string              { return c.CSRFToken }
func (c *Config) GetUpstreamTimeout() time.Duration { return c.UpstreamTimeout }

// RedisConfig implementation
func (c *Config) GetRedisURL() string { return c.RedisURL }

// WizardConfig implementation
func (c *Config) GetSessionTTL() time.Duration { return c.SessionTTL }
func (c *Config) GetBridgeTTL() time.Duration  { return c.BridgeTTL }

// CatalogConfig implementation
func (c *Config) GetCatalogCacheTTL() time.Duration { return c.CatalogCacheTTL }
func (c *Config) GetCatalogSeedPath() string        { return c.CatalogSeedPath }

// RateLimitConfig implementation
func (c *Config) GetRateLimitRPS() float64 { return c.RateLimitRPS }
func (c *Config) GetRateLimitBurst() int   { return c.RateLimitBurst }

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	_ = godotenv.Load()

	corsOrigins := splitCSV(getEnv("CORS_ORIGINS", "http://localhost:4200"))
	corsAllowAll := strings.EqualFold(getEnv("CORS_ALLOW_ALL", "false"), "true")
	if containsWildcard(corsOrigins) {
		corsAllowAll = true
	}

	cfg := &Config{
		Env:             getEnv("APP_ENV", "development"),
		HTTPAddr:        getEnv("HTTP_ADDR", ":8080"),
		CORSAllowAll:    corsAllowAll,
		CORSOrigins:     corsOrigins,
		CORSAllowCreds:  strings.EqualFold(getEnv("CORS_ALLOW_CREDENTIALS", "true"), "true"),
		UpstreamBaseURL: getEnv("UPSTREAM_BASE_URL", ""),
		WizardPath:      getEnv("UPSTREAM_WIZARD_PATH", "/customers/register/"),
		CSRFToken:       getEnv("UPSTREAM_CSRF_TOKEN", ""),
		UpstreamTimeout: mustDuration(getEnv("UPSTREAM_TIMEOUT", "10s")),
		RedisURL:        getEnv("REDIS_URL", ""),
		SessionTTL:      mustDuration(getEnv("WIZARD_SESSION_TTL", "30m")),
		BridgeTTL:       mustDuration(getEnv("WIZARD_BRIDGE_TTL", "5m")),
		CatalogCacheTTL: mustDuration(getEnv("CATALOG_CACHE_TTL", "10m")),
		CatalogSeedPath: getEnv("CATALOG_SEED_PATH", ""),
		RateLimitRPS:    mustFloat64(getEnv("RATE_LIMIT_RPS", "20")),
		RateLimitBurst:  mustInt(getEnv("RATE_LIMIT_BURST", "40")),
	}

	if cfg.UpstreamBaseURL == "" {
		return nil, fmt.Errorf("UPSTREAM_BASE_URL is required")
	}
	if cfg.RedisURL == "" {
		return nil, fmt.Errorf("REDIS_URL is required")
	}
	if cfg.CORSAllowAll && cfg.CORSAllowCreds {
		return nil, fmt.Errorf("CORS_ALLOW_CREDENTIALS cannot be true when CORS_ALLOW_ALL is true")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return fallback
}

func mustDuration(value string) time.Duration {
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0
	}
	return d
}

func mustInt(value string) int {
	result, err := strconv.Atoi(value)
	if err != nil {
		return 0
	}
	return result
}

func mustFloat64(value string) float64 {
	result, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0
	}
	return result
}

func splitCSV(value string) []string {
	parts := strings.Split(value, ",")
	results := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			results = append(results, trimmed)
		}
	}
	return results
}

func containsWildcard(values []string) bool {
	for _, value := range values {
		if value == "*" {
			return true
		}
	}
	return false
}
