package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"intake_gateway/internal/catalog/repository"
	"intake_gateway/internal/upstream"
	"intake_gateway/platform/logger"
)

type stubFetcher struct {
	calls int
	resp  *upstream.ServiceTypesResponse
	err   error
}

func (s *stubFetcher) ServiceTypes(ctx context.Context) (*upstream.ServiceTypesResponse, error) {
	s.calls++
	return s.resp, s.err
}

func newCache(t *testing.T) *repository.Cache {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })
	return repository.NewCache(rdb, 10*time.Minute)
}

func testResponse() *upstream.ServiceTypesResponse {
	return &upstream.ServiceTypesResponse{
		ServiceTypes: []upstream.ServiceOption{
			{ID: 1, Name: "Wheel alignment", DurationMinutes: 30},
			{ID: 2, Name: "Oil change", DurationMinutes: 45},
		},
		ServiceAddons: []upstream.ServiceOption{
			{ID: 7, Name: "Tire rotation", DurationMinutes: 20},
		},
	}
}

func TestOptionsFetchesAndCaches(t *testing.T) {
	fetcher := &stubFetcher{resp: testResponse()}
	svc := New(fetcher, newCache(t), nil, logger.New("test"))
	ctx := context.Background()

	cat, err := svc.Options(ctx)
	if err != nil {
		t.Fatalf("options: %v", err)
	}
	if len(cat.ServiceTypes) != 2 || len(cat.ServiceAddons) != 1 {
		t.Fatalf("catalogue = %+v", cat)
	}

	if _, err := svc.Options(ctx); err != nil {
		t.Fatalf("second options: %v", err)
	}
	if fetcher.calls != 1 {
		t.Errorf("upstream fetched %d times, want 1", fetcher.calls)
	}
}

func TestOptionsFallsBackToSeed(t *testing.T) {
	fetcher := &stubFetcher{err: errors.New("unreachable")}
	seed := &repository.Catalogue{
		ServiceTypes: []repository.Option{{ID: 1, Name: "Wheel alignment", DurationMinutes: 30}},
	}
	svc := New(fetcher, newCache(t), seed, logger.New("test"))

	cat, err := svc.Options(context.Background())
	if err != nil {
		t.Fatalf("options: %v", err)
	}
	if len(cat.ServiceTypes) != 1 || cat.ServiceTypes[0].Name != "Wheel alignment" {
		t.Errorf("catalogue = %+v", cat)
	}
}

func TestOptionsErrorsWithoutSeed(t *testing.T) {
	fetcher := &stubFetcher{err: errors.New("unreachable")}
	svc := New(fetcher, newCache(t), nil, logger.New("test"))

	if _, err := svc.Options(context.Background()); err == nil {
		t.Fatal("expected error when upstream and seed are both unavailable")
	}
}

func TestDurationFor(t *testing.T) {
	fetcher := &stubFetcher{resp: testResponse()}
	svc := New(fetcher, newCache(t), nil, logger.New("test"))
	ctx := context.Background()

	tests := []struct {
		name    string
		group   string
		id      int64
		want    int
		wantErr bool
	}{
		{"service type", "service", 2, 45, false},
		{"addon", "addon", 7, 20, false},
		{"tire service group", "tireService", 7, 20, false},
		{"unknown id", "service", 99, 0, true},
		{"unknown group", "parts", 1, 0, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := svc.DurationFor(ctx, tc.group, tc.id)
			if tc.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("duration: %v", err)
			}
			if got != tc.want {
				t.Errorf("duration = %d, want %d", got, tc.want)
			}
		})
	}
}
