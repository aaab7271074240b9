package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultDedupTTL = time.Minute

// BookingDedup rejects repeated booking submissions within a TTL window.
// Key format: booking:<subject>:<car>:<start>:<end>
type BookingDedup struct {
	client *redis.Client
	ttl    time.Duration
}

// NewBookingDedup creates a BookingDedup wrapping the given Redis client.
func NewBookingDedup(client *redis.Client, ttl time.Duration) *BookingDedup {
	if ttl <= 0 {
		ttl = defaultDedupTTL
	}
	return &BookingDedup{client: client, ttl: ttl}
}

// Claim reserves key with SET NX and reports whether it was free.
func (d *BookingDedup) Claim(ctx context.Context, key string) (bool, error) {
	ok, err := d.client.SetNX(ctx, d.key(key), "1", d.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("dedup claim: %w", err)
	}
	return ok, nil
}

// Release drops a claim so the same booking can be retried.
func (d *BookingDedup) Release(ctx context.Context, key string) error {
	if err := d.client.Del(ctx, d.key(key)).Err(); err != nil {
		return fmt.Errorf("dedup release: %w", err)
	}
	return nil
}

func (d *BookingDedup) key(k string) string {
	return "booking:" + k
}
