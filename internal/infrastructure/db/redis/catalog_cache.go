package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/rentwheels/rental-web/internal/core/domain"
	"github.com/rentwheels/rental-web/internal/core/ports"
)

const (
	catalogKey        = "catalog:cars"
	generationKey     = "catalog:generation"
	defaultCatalogTTL = 30 * time.Second
)

// CatalogCache keeps the public car catalog as a single JSON value, next to a
// generation counter that every Invalidate bumps.
type CatalogCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCatalogCache creates a CatalogCache. A non-positive ttl falls back to
// defaultCatalogTTL.
func NewCatalogCache(client *redis.Client, ttl time.Duration) *CatalogCache {
	if ttl <= 0 {
		ttl = defaultCatalogTTL
	}
	return &CatalogCache{client: client, ttl: ttl}
}

func (c *CatalogCache) Load(ctx context.Context) (ports.CatalogSnapshot, error) {
	vals, err := c.client.MGet(ctx, catalogKey, generationKey).Result()
	if err != nil {
		return ports.CatalogSnapshot{}, fmt.Errorf("catalog load: %w", err)
	}
	gen, err := parseGeneration(vals[1])
	if err != nil {
		return ports.CatalogSnapshot{}, err
	}
	snap := ports.CatalogSnapshot{Generation: gen}

	raw, ok := vals[0].(string)
	if !ok {
		return snap, nil
	}
	if err := json.Unmarshal([]byte(raw), &snap.Cars); err != nil {
		// A corrupt entry is treated as a miss and dropped.
		_ = c.client.Del(ctx, catalogKey).Err()
		snap.Cars = nil
		return snap, nil
	}
	snap.Hit = true
	return snap, nil
}

// Store writes cars only while the generation counter still equals
// generation. The check and the write run in one WATCH transaction.
func (c *CatalogCache) Store(ctx context.Context, generation int64, cars []domain.Car) error {
	if cars == nil {
		cars = []domain.Car{}
	}
	raw, err := json.Marshal(cars)
	if err != nil {
		return fmt.Errorf("catalog encode: %w", err)
	}

	err = c.client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, generationKey).Result()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		gen, err := parseGeneration(current)
		if err != nil {
			return err
		}
		if gen != generation {
			return nil
		}
		_, err = tx.TxPipelined(ctx, func(p redis.Pipeliner) error {
			p.Set(ctx, catalogKey, raw, c.ttl)
			return nil
		})
		return err
	}, generationKey)

	// TxFailedErr means an Invalidate landed between the check and EXEC.
	if err != nil && !errors.Is(err, redis.TxFailedErr) {
		return fmt.Errorf("catalog store: %w", err)
	}
	return nil
}

func (c *CatalogCache) Invalidate(ctx context.Context) error {
	_, err := c.client.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.Incr(ctx, generationKey)
		p.Del(ctx, catalogKey)
		return nil
	})
	if err != nil {
		return fmt.Errorf("catalog invalidate: %w", err)
	}
	return nil
}

func parseGeneration(v any) (int64, error) {
	switch s := v.(type) {
	case nil:
		return 0, nil
	case string:
		if s == "" {
			return 0, nil
		}
		gen, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("catalog generation %q: %w", s, err)
		}
		return gen, nil
	}
	return 0, fmt.Errorf("catalog generation: unexpected type %T", v)
}
