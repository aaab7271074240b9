package queue

import (
	"context"
	"sync/atomic"

	"github.com/rs/zerolog"

	"github.com/rentwheels/rental-web/internal/core/domain"
	"github.com/rentwheels/rental-web/internal/core/ports"
)

// catalogSource is the slice of the rental API the refresher needs.
type catalogSource interface {
	ListCars(ctx context.Context) ([]domain.Car, error)
}

// Refresher rebuilds the catalog cache on a single background worker.
// Requests made while a rebuild is pending collapse into that one rebuild.
type Refresher struct {
	pending chan struct{}
	source  catalogSource
	cache   ports.CatalogCache
	log     zerolog.Logger
	runs    atomic.Int64
}

// NewRefresher creates a Refresher. Call Start to launch its worker.
func NewRefresher(source catalogSource, cache ports.CatalogCache, log zerolog.Logger) *Refresher {
	return &Refresher{
		pending: make(chan struct{}, 1),
		source:  source,
		cache:   cache,
		log:     log,
	}
}

// Start launches the worker goroutine. It stops when ctx is cancelled.
func (r *Refresher) Start(ctx context.Context) {
	go r.run(ctx)
}

// Request schedules a rebuild. It never blocks.
func (r *Refresher) Request() {
	select {
	case r.pending <- struct{}{}:
	default:
	}
}

// Runs reports how many rebuilds have completed.
func (r *Refresher) Runs() int64 {
	return r.runs.Load()
}

func (r *Refresher) run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-r.pending:
			r.refresh(ctx)
		}
	}
}

func (r *Refresher) refresh(ctx context.Context) {
	defer r.runs.Add(1)

	snap, err := r.cache.Load(ctx)
	if err != nil {
		r.log.Warn().Err(err).Msg("catalog cache unavailable, refresh skipped")
		return
	}
	cars, err := r.source.ListCars(ctx)
	if err != nil {
		r.log.Warn().Err(err).Msg("catalog refresh failed")
		return
	}
	if err := r.cache.Store(ctx, snap.Generation, cars); err != nil {
		r.log.Warn().Err(err).Msg("catalog cache store failed")
		return
	}
	r.log.Debug().Int("cars", len(cars)).Msg("catalog refreshed")
}
