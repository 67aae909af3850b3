// Package repository provides catalogue storage: a Redis read-through cache
// for the upstream service catalogue and a YAML seed file used when both
// cache and upstream are unavailable.
package repository

import (
	"context"
	"encoding/json"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
	"gopkg.in/yaml.v3"

	"intake_gateway/platform/apperr"
)

const cacheKey = "catalog:service-options"

// Option is one selectable catalogue entry.
type Option struct {
	ID              int64  `json:"id" yaml:"id"`
	Name            string `json:"name" yaml:"name"`
	DurationMinutes int    `json:"duration_minutes" yaml:"duration_minutes"`
}

// Catalogue holds the full set of selectable service options, split by the
// two groups the registration form renders.
type Catalogue struct {
	ServiceTypes  []Option `json:"service_types" yaml:"service_types"`
	ServiceAddons []Option `json:"service_addons" yaml:"service_addons"`
}

// Cache is the Redis-backed catalogue cache.
type Cache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewCache creates a catalogue cache with the given entry lifetime.
func NewCache(rdb *redis.Client, ttl time.Duration) *Cache {
	return &Cache{rdb: rdb, ttl: ttl}
}

// Get returns the cached catalogue, or nil on a miss.
func (c *Cache) Get(ctx context.Context) (*Catalogue, error) {
	payload, err := c.rdb.Get(ctx, cacheKey).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "read catalogue cache", err).WithOp("catalog.Cache.Get")
	}

	var cat Catalogue
	if err := json.Unmarshal(payload, &cat); err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "decode cached catalogue", err).WithOp("catalog.Cache.Get")
	}
	return &cat, nil
}

// Set stores the catalogue for the configured TTL.
func (c *Cache) Set(ctx context.Context, cat *Catalogue) error {
	payload, err := json.Marshal(cat)
	if err != nil {
		return apperr.Wrap(apperr.KindInternal, "encode catalogue", err).WithOp("catalog.Cache.Set")
	}
	if err := c.rdb.Set(ctx, cacheKey, payload, c.ttl).Err(); err != nil {
		return apperr.Wrap(apperr.KindInternal, "store catalogue", err).WithOp("catalog.Cache.Set")
	}
	return nil
}

// LoadSeed reads the fallback catalogue from a YAML file. An empty path
// means no seed is configured.
func LoadSeed(path string) (*Catalogue, error) {
	if path == "" {
		return nil, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "read catalogue seed", err).WithOp("catalog.LoadSeed")
	}

	var cat Catalogue
	if err := yaml.Unmarshal(raw, &cat); err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "parse catalogue seed", err).WithOp("catalog.LoadSeed")
	}
	return &cat, nil
}
