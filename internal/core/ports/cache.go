package ports

import (
	"context"

	"github.com/rentwheels/rental-web/internal/core/domain"
)

// CatalogSnapshot is one read of the catalog cache. Generation identifies the
// invalidation epoch the read observed.
type CatalogSnapshot struct {
	Cars       []domain.Car
	Hit        bool
	Generation int64
}

// CatalogCache stores the public car catalog between requests.
type CatalogCache interface {
	Load(ctx context.Context) (CatalogSnapshot, error)
	// Store saves cars fetched after a Load that returned generation. It is a
	// no-op when the cache was invalidated since then.
	Store(ctx context.Context, generation int64, cars []domain.Car) error
	// Invalidate drops the cached catalog and starts a new generation.
	Invalidate(ctx context.Context) error
}

// CatalogRefresher rebuilds the catalog cache in the background.
type CatalogRefresher interface {
	Request()
}

// BookingDedup rejects the same booking submitted twice within a short window.
type BookingDedup interface {
	// Claim reserves key and reports whether it was free.
	Claim(ctx context.Context, key string) (bool, error)
	Release(ctx context.Context, key string) error
}
