package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/rentwheels/rental-web/internal/core/domain"
	"github.com/rentwheels/rental-web/internal/core/ports"
)

// ListerService backs the lister dashboard: own listings, their rentals and
// car CRUD.
type ListerService struct {
	cars      ports.CarAPI
	rentals   ports.RentalAPI
	cache     ports.CatalogCache
	refresher ports.CatalogRefresher
	log       zerolog.Logger
}

// NewListerService wires the service. cache and refresher may be nil.
func NewListerService(
	cars ports.CarAPI,
	rentals ports.RentalAPI,
	cache ports.CatalogCache,
	refresher ports.CatalogRefresher,
	log zerolog.Logger,
) *ListerService {
	if cache == nil {
		cache = nopCache{}
	}
	if refresher == nil {
		refresher = nopRefresher{}
	}
	return &ListerService{cars: cars, rentals: rentals, cache: cache, refresher: refresher, log: log}
}

// Dashboard returns the lister's cars, each joined with its rental if one exists.
func (s *ListerService) Dashboard(ctx context.Context, token string) ([]domain.Listing, error) {
	var (
		cars    []domain.Car
		rentals []domain.Rental
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		cars, err = s.cars.ListOwnCars(gctx, token)
		return err
	})
	g.Go(func() error {
		var err error
		rentals, err = s.rentals.ListRentals(gctx, token)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("dashboard: %w", err)
	}

	return joinListings(cars, rentals), nil
}

// joinListings pairs every car with the first rental referencing it.
func joinListings(cars []domain.Car, rentals []domain.Rental) []domain.Listing {
	byCar := make(map[string]*domain.Rental, len(rentals))
	for i := range rentals {
		if _, seen := byCar[rentals[i].CarID]; !seen {
			byCar[rentals[i].CarID] = &rentals[i]
		}
	}

	listings := make([]domain.Listing, 0, len(cars))
	for _, c := range cars {
		listings = append(listings, domain.Listing{Car: c, Rental: byCar[c.ID]})
	}
	return listings
}

// Listing returns one of the lister's own cars.
func (s *ListerService) Listing(ctx context.Context, token, carID string) (*domain.Car, error) {
	cars, err := s.cars.ListOwnCars(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", carID, err)
	}
	for i := range cars {
		if cars[i].ID == carID {
			return &cars[i], nil
		}
	}
	return nil, fmt.Errorf("listing %s: %w", carID, domain.ErrNotFound)
}

func (s *ListerService) AddCar(ctx context.Context, token string, in domain.CarInput) error {
	if err := s.cars.CreateCar(ctx, token, in); err != nil {
		return fmt.Errorf("add car: %w", err)
	}
	s.log.Info().Str("make", in.Make).Str("model", in.Model).Int("images", len(in.Images)).Msg("car listed")
	s.catalogChanged(ctx)
	return nil
}

func (s *ListerService) UpdateCar(ctx context.Context, token, carID string, in domain.CarInput) error {
	if err := s.cars.UpdateCar(ctx, token, carID, in); err != nil {
		return fmt.Errorf("update car %s: %w", carID, err)
	}
	s.log.Info().Str("car_id", carID).Msg("car updated")
	s.catalogChanged(ctx)
	return nil
}

func (s *ListerService) DeleteCar(ctx context.Context, token, carID string) error {
	if err := s.cars.DeleteCar(ctx, token, carID); err != nil {
		return fmt.Errorf("delete car %s: %w", carID, err)
	}
	s.log.Info().Str("car_id", carID).Msg("car deleted")
	s.catalogChanged(ctx)
	return nil
}

func (s *ListerService) catalogChanged(ctx context.Context) {
	if err := s.cache.Invalidate(ctx); err != nil {
		s.log.Warn().Err(err).Msg("failed to invalidate catalog cache")
	}
	s.refresher.Request()
}
