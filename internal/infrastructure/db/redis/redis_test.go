package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/rentwheels/rental-web/internal/core/domain"
)

func newTestClient(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client, err := Connect(context.Background(), Options{Addr: mr.Addr()})
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestConnect_Unreachable(t *testing.T) {
	_, err := Connect(context.Background(), Options{Addr: "127.0.0.1:1", Timeout: 200 * time.Millisecond})
	if err == nil {
		t.Fatalf("expected error for unreachable redis")
	}
}

func TestConnect_Password(t *testing.T) {
	mr := miniredis.RunT(t)
	mr.RequireAuth("s3cret")
	ctx := context.Background()

	if _, err := Connect(ctx, Options{Addr: mr.Addr(), Password: "wrong"}); err == nil {
		t.Fatalf("expected auth failure with wrong password")
	}
	client, err := Connect(ctx, Options{Addr: mr.Addr(), Password: "s3cret", PoolSize: 2})
	if err != nil {
		t.Fatalf("connect with password: %v", err)
	}
	_ = client.Close()
}

func TestOptions_TimeoutDefaultsAndApplies(t *testing.T) {
	ro := Options{Addr: "x"}.client()
	if ro.DialTimeout != defaultOpTimeout || ro.ReadTimeout != defaultOpTimeout {
		t.Fatalf("expected default timeouts, got %+v", ro)
	}
	ro = Options{Addr: "x", Timeout: time.Second, PoolSize: 4}.client()
	if ro.DialTimeout != time.Second || ro.WriteTimeout != time.Second || ro.PoolSize != 4 {
		t.Fatalf("options not applied: %+v", ro)
	}
}

func TestCatalogCache_RoundTrip(t *testing.T) {
	mr, client := newTestClient(t)
	cache := NewCatalogCache(client, 30*time.Second)
	ctx := context.Background()

	snap, err := cache.Load(ctx)
	if err != nil || snap.Hit || snap.Generation != 0 {
		t.Fatalf("expected empty cache, got %+v err=%v", snap, err)
	}

	cars := []domain.Car{{ID: "c1", Make: "Toyota", Model: "Corolla", Year: 2020, Price: 45, Availability: true}}
	if err := cache.Store(ctx, snap.Generation, cars); err != nil {
		t.Fatalf("Store: %v", err)
	}
	snap, err = cache.Load(ctx)
	if err != nil || !snap.Hit {
		t.Fatalf("expected hit, got %+v err=%v", snap, err)
	}
	if len(snap.Cars) != 1 || snap.Cars[0].ID != "c1" || snap.Cars[0].Price != 45 {
		t.Fatalf("unexpected cars: %+v", snap.Cars)
	}

	mr.FastForward(31 * time.Second)
	if snap, _ := cache.Load(ctx); snap.Hit {
		t.Fatalf("expected entry to expire")
	}
}

func TestCatalogCache_EmptyCatalogIsAHit(t *testing.T) {
	_, client := newTestClient(t)
	cache := NewCatalogCache(client, 0)
	ctx := context.Background()

	if err := cache.Store(ctx, 0, nil); err != nil {
		t.Fatalf("Store: %v", err)
	}
	snap, err := cache.Load(ctx)
	if err != nil || !snap.Hit || len(snap.Cars) != 0 {
		t.Fatalf("expected empty hit, got %+v err=%v", snap, err)
	}
}

func TestCatalogCache_Invalidate(t *testing.T) {
	mr, client := newTestClient(t)
	cache := NewCatalogCache(client, time.Minute)
	ctx := context.Background()

	_ = cache.Store(ctx, 0, []domain.Car{{ID: "c1"}})
	if err := cache.Invalidate(ctx); err != nil {
		t.Fatalf("Invalidate: %v", err)
	}
	if mr.Exists(catalogKey) {
		t.Fatalf("key should be gone")
	}
	if err := cache.Invalidate(ctx); err != nil {
		t.Fatalf("second Invalidate: %v", err)
	}
	if snap, _ := cache.Load(ctx); snap.Generation != 2 {
		t.Fatalf("generation = %d, want 2", snap.Generation)
	}
}

func TestCatalogCache_StaleStoreIsDropped(t *testing.T) {
	mr, client := newTestClient(t)
	cache := NewCatalogCache(client, time.Minute)
	ctx := context.Background()

	before, err := cache.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	// A car mutation invalidates while the catalog fetch is in flight.
	if err := cache.Invalidate(ctx); err != nil {
		t.Fatalf("Invalidate: %v", err)
	}
	if err := cache.Store(ctx, before.Generation, []domain.Car{{ID: "stale"}}); err != nil {
		t.Fatalf("Store: %v", err)
	}
	if mr.Exists(catalogKey) {
		t.Fatalf("stale catalog should not be written")
	}

	after, _ := cache.Load(ctx)
	if err := cache.Store(ctx, after.Generation, []domain.Car{{ID: "fresh"}}); err != nil {
		t.Fatalf("Store: %v", err)
	}
	if snap, _ := cache.Load(ctx); !snap.Hit || snap.Cars[0].ID != "fresh" {
		t.Fatalf("expected fresh catalog, got %+v", snap)
	}
}

func TestCatalogCache_CorruptEntryIsAMiss(t *testing.T) {
	mr, client := newTestClient(t)
	cache := NewCatalogCache(client, time.Minute)

	if err := mr.Set(catalogKey, "{not json"); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if snap, err := cache.Load(context.Background()); snap.Hit || err != nil {
		t.Fatalf("expected miss, got %+v err=%v", snap, err)
	}
	if mr.Exists(catalogKey) {
		t.Fatalf("corrupt entry should be dropped")
	}
}

func TestBookingDedup_ClaimAndRelease(t *testing.T) {
	mr, client := newTestClient(t)
	dedup := NewBookingDedup(client, time.Minute)
	ctx := context.Background()
	key := "u1:c1:2026-11-01:2026-11-03"

	ok, err := dedup.Claim(ctx, key)
	if err != nil || !ok {
		t.Fatalf("first claim: ok=%v err=%v", ok, err)
	}
	ok, err = dedup.Claim(ctx, key)
	if err != nil || ok {
		t.Fatalf("second claim should be refused: ok=%v err=%v", ok, err)
	}

	if err := dedup.Release(ctx, key); err != nil {
		t.Fatalf("Release: %v", err)
	}
	if ok, _ := dedup.Claim(ctx, key); !ok {
		t.Fatalf("claim after release should succeed")
	}

	mr.FastForward(2 * time.Minute)
	if ok, _ := dedup.Claim(ctx, key); !ok {
		t.Fatalf("claim after expiry should succeed")
	}
}

func TestBookingDedup_RedisDown(t *testing.T) {
	mr, client := newTestClient(t)
	dedup := NewBookingDedup(client, time.Minute)
	mr.Close()

	if _, err := dedup.Claim(context.Background(), "k"); err == nil {
		t.Fatalf("expected error when redis is down")
	}
}
