// Package redis backs the catalog cache and booking dedup with Redis.
package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultOpTimeout = 3 * time.Second

// Options are the connection settings read from the REDIS_* variables.
type Options struct {
	Addr     string
	Password string
	DB       int
	// PoolSize of zero keeps the go-redis default.
	PoolSize int
	// Timeout bounds dialing, every command and the startup ping.
	Timeout  time.Duration
}

func (o Options) client() *redis.Options {
	timeout := o.Timeout
	if timeout <= 0 {
		timeout = defaultOpTimeout
	}
	return &redis.Options{
		Addr:         o.Addr,
		Password:     o.Password,
		DB:           o.DB,
		PoolSize:     o.PoolSize,
		DialTimeout:  timeout,
		ReadTimeout:  timeout,
		WriteTimeout: timeout,
	}
}

// Connect opens a client for opts and pings it once. A client that cannot
// answer the ping is closed and not returned.
func Connect(ctx context.Context, opts Options) (*redis.Client, error) {
	ro := opts.client()
	client := redis.NewClient(ro)

	pingCtx, cancel := context.WithTimeout(ctx, ro.DialTimeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis %s: ping: %w", opts.Addr, err)
	}
	return client, nil
}
