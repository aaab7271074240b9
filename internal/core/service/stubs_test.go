package service

import (
	"context"
	"sync"

	"github.com/rentwheels/rental-web/internal/core/domain"
	"github.com/rentwheels/rental-web/internal/core/ports"
)

// ---------------------------------------------------------------------------
// Stub rental API
// ---------------------------------------------------------------------------

type stubAPI struct {
	mu sync.Mutex

	loginFn    func(ctx context.Context, email, password string) (string, error)
	registerFn func(ctx context.Context, reg domain.Registration) error

	catalog    []domain.Car
	own        []domain.Car
	rentals    []domain.Rental
	listErr    error
	rentalsErr error
	mutateErr  error
	bookErr    error
	listCalls  int
	bookings   []domain.RentalRequest
	idemKeys   []string
	created    []domain.CarInput
	updatedIDs []string
	deletedIDs []string
	seenTokens []string
}

func (a *stubAPI) Login(ctx context.Context, email, password string) (string, error) {
	return a.loginFn(ctx, email, password)
}

func (a *stubAPI) Register(ctx context.Context, reg domain.Registration) error {
	return a.registerFn(ctx, reg)
}

func (a *stubAPI) ListCars(context.Context) ([]domain.Car, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.listCalls++
	if a.listErr != nil {
		return nil, a.listErr
	}
	return append([]domain.Car(nil), a.catalog...), nil
}

func (a *stubAPI) ListOwnCars(_ context.Context, token string) ([]domain.Car, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.seenTokens = append(a.seenTokens, token)
	if a.listErr != nil {
		return nil, a.listErr
	}
	return append([]domain.Car(nil), a.own...), nil
}

func (a *stubAPI) CreateCar(_ context.Context, _ string, in domain.CarInput) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.mutateErr != nil {
		return a.mutateErr
	}
	a.created = append(a.created, in)
	return nil
}

func (a *stubAPI) UpdateCar(_ context.Context, _ string, id string, _ domain.CarInput) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.mutateErr != nil {
		return a.mutateErr
	}
	a.updatedIDs = append(a.updatedIDs, id)
	return nil
}

func (a *stubAPI) DeleteCar(_ context.Context, _ string, id string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.mutateErr != nil {
		return a.mutateErr
	}
	a.deletedIDs = append(a.deletedIDs, id)
	return nil
}

func (a *stubAPI) ListRentals(_ context.Context, token string) ([]domain.Rental, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.seenTokens = append(a.seenTokens, token)
	if a.rentalsErr != nil {
		return nil, a.rentalsErr
	}
	return append([]domain.Rental(nil), a.rentals...), nil
}

func (a *stubAPI) CreateRental(_ context.Context, _ string, key string, req domain.RentalRequest) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.bookErr != nil {
		return a.bookErr
	}
	a.bookings = append(a.bookings, req)
	a.idemKeys = append(a.idemKeys, key)
	return nil
}

// ---------------------------------------------------------------------------
// Stub cache / dedup / refresher
// ---------------------------------------------------------------------------

type stubCache struct {
	cars        []domain.Car
	present     bool
	generation  int64
	loadErr     error
	stores      int
	invalidated int
	// onStore runs before Store applies its generation check.
	onStore     func()
}

func (c *stubCache) Load(context.Context) (ports.CatalogSnapshot, error) {
	if c.loadErr != nil {
		return ports.CatalogSnapshot{}, c.loadErr
	}
	return ports.CatalogSnapshot{Cars: c.cars, Hit: c.present, Generation: c.generation}, nil
}

func (c *stubCache) Store(_ context.Context, generation int64, cars []domain.Car) error {
	if c.onStore != nil {
		c.onStore()
	}
	if generation != c.generation {
		return nil
	}
	c.cars, c.present = cars, true
	c.stores++
	return nil
}

func (c *stubCache) Invalidate(context.Context) error {
	c.cars, c.present = nil, false
	c.generation++
	c.invalidated++
	return nil
}

type stubDedup struct {
	claimed  map[string]bool
	released []string
}

func newStubDedup() *stubDedup { return &stubDedup{claimed: make(map[string]bool)} }

func (d *stubDedup) Claim(_ context.Context, key string) (bool, error) {
	if d.claimed[key] {
		return false, nil
	}
	d.claimed[key] = true
	return true, nil
}

func (d *stubDedup) Release(_ context.Context, key string) error {
	delete(d.claimed, key)
	d.released = append(d.released, key)
	return nil
}

type countingRefresher struct{ requests int }

func (r *countingRefresher) Request() { r.requests++ }
