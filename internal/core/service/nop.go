package service

import (
	"context"

	"github.com/rentwheels/rental-web/internal/core/domain"
	"github.com/rentwheels/rental-web/internal/core/ports"
)

// nopCache is used when no catalog cache is configured: every load misses.
type nopCache struct{}

func (nopCache) Load(context.Context) (ports.CatalogSnapshot, error) { return ports.CatalogSnapshot{}, nil }
func (nopCache) Store(context.Context, int64, []domain.Car) error    { return nil }
func (nopCache) Invalidate(context.Context) error                    { return nil }

type nopRefresher struct{}

func (nopRefresher) Request() {}

// nopDedup never reports a duplicate.
type nopDedup struct{}

func (nopDedup) Claim(context.Context, string) (bool, error) { return true, nil }
func (nopDedup) Release(context.Context, string) error       { return nil }
