// Package catalog provides the service-options bounded context module.
package catalog

import (
	"github.com/redis/go-redis/v9"

	"intake_gateway/internal/catalog/handler"
	"intake_gateway/internal/catalog/repository"
	"intake_gateway/internal/catalog/service"
	apphttp "intake_gateway/internal/http"
	"intake_gateway/platform/config"
	"intake_gateway/platform/logger"
)

// Module is the catalog bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates and initializes the catalog module. A missing or broken
// seed file is logged and skipped; the module still serves from cache and
// upstream.
func NewModule(fetcher service.CatalogueFetcher, rdb *redis.Client, cfg config.CatalogConfig, log *logger.Logger) *Module {
	cache := repository.NewCache(rdb, cfg.GetCatalogCacheTTL())

	seed, err := repository.LoadSeed(cfg.GetCatalogSeedPath())
	if err != nil {
		log.Warn("catalogue seed unavailable", "error", err)
		seed = nil
	}

	svc := service.New(fetcher, cache, seed, log)
	return &Module{
		handler: handler.New(svc),
		service: svc,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "catalog"
}

// Service returns the service layer for external use.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes mounts catalog routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.V1.GET("/catalog/service-options", m.handler.ListServiceOptions)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
