// Package service implements catalogue reads with a cache-first strategy:
// Redis, then the tracker backend, then the on-disk seed. A fresh upstream
// fetch repopulates the cache so the seed only carries cold starts through
// an upstream outage.
package service

import (
	"context"

	"intake_gateway/internal/catalog/repository"
	"intake_gateway/internal/upstream"
	"intake_gateway/platform/apperr"
	"intake_gateway/platform/logger"
)

// CatalogueFetcher is the slice of the tracker client the service needs.
type CatalogueFetcher interface {
	ServiceTypes(ctx context.Context) (*upstream.ServiceTypesResponse, error)
}

// Service serves the selectable service catalogue.
type Service struct {
	fetcher CatalogueFetcher
	cache   *repository.Cache
	seed    *repository.Catalogue
	log     *logger.Logger
}

// New creates the catalogue service. seed may be nil when no fallback file
// is configured.
func New(fetcher CatalogueFetcher, cache *repository.Cache, seed *repository.Catalogue, log *logger.Logger) *Service {
	return &Service{fetcher: fetcher, cache: cache, seed: seed, log: log}
}

// Options returns the current catalogue. Cache errors are logged and treated
// as misses; only a combined upstream-and-seed failure surfaces to callers.
func (s *Service) Options(ctx context.Context) (*repository.Catalogue, error) {
	cached, err := s.cache.Get(ctx)
	if err != nil {
		s.log.UpstreamError("catalog_cache_get", err)
	}
	if cached != nil {
		return cached, nil
	}

	resp, err := s.fetcher.ServiceTypes(ctx)
	if err != nil {
		if s.seed != nil {
			s.log.UpstreamError("service_types", err)
			return s.seed, nil
		}
		return nil, err
	}

	cat := fromUpstream(resp)
	if err := s.cache.Set(ctx, cat); err != nil {
		s.log.UpstreamError("catalog_cache_set", err)
	}
	return cat, nil
}

// DurationFor resolves the duration of one option by group and id, for
// estimate recomputation when the painted markup carries no weight.
func (s *Service) DurationFor(ctx context.Context, group string, id int64) (int, error) {
	cat, err := s.Options(ctx)
	if err != nil {
		return 0, err
	}

	var pool []repository.Option
	switch group {
	case "service":
		pool = cat.ServiceTypes
	case "addon", "tireService":
		pool = cat.ServiceAddons
	default:
		return 0, apperr.BadRequest("unknown option group: " + group)
	}

	for _, opt := range pool {
		if opt.ID == id {
			return opt.DurationMinutes, nil
		}
	}
	return 0, apperr.NotFound("service option")
}

func fromUpstream(resp *upstream.ServiceTypesResponse) *repository.Catalogue {
	cat := &repository.Catalogue{
		ServiceTypes:  make([]repository.Option, 0, len(resp.ServiceTypes)),
		ServiceAddons: make([]repository.Option, 0, len(resp.ServiceAddons)),
	}
	for _, o := range resp.ServiceTypes {
		cat.ServiceTypes = append(cat.ServiceTypes, repository.Option{
			ID:              o.ID,
			Name:            o.Name,
			DurationMinutes: o.DurationMinutes,
		})
	}
	for _, o := range resp.ServiceAddons {
		cat.ServiceAddons = append(cat.ServiceAddons, repository.Option{
			ID:              o.ID,
			Name:            o.Name,
			DurationMinutes: o.DurationMinutes,
		})
	}
	return cat
}
