package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/rentwheels/rental-web/internal/api/metrics"
	"github.com/rentwheels/rental-web/internal/core/domain"
	"github.com/rentwheels/rental-web/internal/core/ports"
)

const dateLayout = "2006-01-02"

// RenterService backs the renter dashboard: catalog browsing and booking.
type RenterService struct {
	cars      ports.CarAPI
	rentals   ports.RentalAPI
	cache     ports.CatalogCache
	dedup     ports.BookingDedup
	refresher ports.CatalogRefresher
	log       zerolog.Logger
}

// NewRenterService wires the service. cache, dedup and refresher may be nil.
func NewRenterService(
	cars ports.CarAPI,
	rentals ports.RentalAPI,
	cache ports.CatalogCache,
	dedup ports.BookingDedup,
	refresher ports.CatalogRefresher,
	log zerolog.Logger,
) *RenterService {
	if cache == nil {
		cache = nopCache{}
	}
	if dedup == nil {
		dedup = nopDedup{}
	}
	if refresher == nil {
		refresher = nopRefresher{}
	}
	return &RenterService{
		cars:      cars,
		rentals:   rentals,
		cache:     cache,
		dedup:     dedup,
		refresher: refresher,
		log:       log,
	}
}

// Catalog returns the public car list, served from cache when possible. A
// fetched list is written back only if no invalidation happened meanwhile.
func (s *RenterService) Catalog(ctx context.Context) ([]domain.Car, error) {
	snap, err := s.cache.Load(ctx)
	switch {
	case err != nil:
		metrics.CatalogCacheTotal.WithLabelValues("error").Inc()
		s.log.Warn().Err(err).Msg("catalog cache load failed, falling back to api")
	case snap.Hit:
		metrics.CatalogCacheTotal.WithLabelValues("hit").Inc()
		return snap.Cars, nil
	default:
		metrics.CatalogCacheTotal.WithLabelValues("miss").Inc()
	}

	cars, fetchErr := s.cars.ListCars(ctx)
	if fetchErr != nil {
		return nil, fmt.Errorf("catalog: %w", fetchErr)
	}
	if err == nil {
		if err := s.cache.Store(ctx, snap.Generation, cars); err != nil {
			s.log.Warn().Err(err).Msg("failed to store catalog in cache")
		}
	}
	return cars, nil
}

// Car returns a single catalog entry.
func (s *RenterService) Car(ctx context.Context, carID string) (*domain.Car, error) {
	cars, err := s.Catalog(ctx)
	if err != nil {
		return nil, err
	}
	for i := range cars {
		if cars[i].ID == carID {
			return &cars[i], nil
		}
	}
	return nil, fmt.Errorf("car %s: %w", carID, domain.ErrNotFound)
}

// Book validates req and submits it to the rental API. An identical submission
// from the same caller is rejected with ErrDuplicateBooking while its dedup
// claim is live.
func (s *RenterService) Book(ctx context.Context, token, subject string, req domain.RentalRequest) error {
	if err := validateRental(req); err != nil {
		metrics.BookingsTotal.WithLabelValues("invalid").Inc()
		return fmt.Errorf("book car: %w", err)
	}

	key := bookingKey(token, subject, req)
	free, err := s.dedup.Claim(ctx, key)
	if err != nil {
		s.log.Warn().Err(err).Str("car_id", req.CarID).Msg("booking dedup check failed, submitting anyway")
		free = true
	}
	if !free {
		metrics.BookingsTotal.WithLabelValues("duplicate").Inc()
		s.log.Debug().Str("car_id", req.CarID).Msg("duplicate booking skipped")
		return fmt.Errorf("book car: %w", domain.ErrDuplicateBooking)
	}

	if err := s.rentals.CreateRental(ctx, token, uuid.NewString(), req); err != nil {
		metrics.BookingsTotal.WithLabelValues("failed").Inc()
		if relErr := s.dedup.Release(ctx, key); relErr != nil {
			s.log.Warn().Err(relErr).Str("car_id", req.CarID).Msg("failed to release booking claim")
		}
		return fmt.Errorf("book car: %w", err)
	}

	metrics.BookingsTotal.WithLabelValues("created").Inc()
	s.log.Info().
		Str("car_id", req.CarID).
		Str("start", req.StartDate).
		Str("end", req.EndDate).
		Msg("car booked")

	if err := s.cache.Invalidate(ctx); err != nil {
		s.log.Warn().Err(err).Msg("failed to invalidate catalog cache")
	}
	s.refresher.Request()
	return nil
}

func validateRental(req domain.RentalRequest) error {
	if req.CarID == "" || req.StartDate == "" || req.EndDate == "" ||
		req.ContactInfo.Phone == "" || req.ContactInfo.Email == "" {
		return domain.Reject("Please fill in all fields")
	}
	start, err := time.Parse(dateLayout, req.StartDate)
	if err != nil {
		return domain.Reject("Start date %q is not a valid date", req.StartDate)
	}
	end, err := time.Parse(dateLayout, req.EndDate)
	if err != nil {
		return domain.Reject("End date %q is not a valid date", req.EndDate)
	}
	if end.Before(start) {
		return domain.ErrInvalidDateRange
	}
	return nil
}

// bookingKey identifies the caller by subject, or by a digest of the
// credential when the credential carries no subject.
func bookingKey(token, subject string, req domain.RentalRequest) string {
	caller := "sub:" + subject
	if subject == "" {
		sum := sha256.Sum256([]byte(token))
		caller = "tok:" + hex.EncodeToString(sum[:16])
	}
	return strings.Join([]string{caller, req.CarID, req.StartDate, req.EndDate}, ":")
}

// IsBookingRejection reports whether err is a user-correctable booking error.
func IsBookingRejection(err error) bool {
	return errors.Is(err, domain.ErrRejected) ||
		errors.Is(err, domain.ErrInvalidDateRange) ||
		errors.Is(err, domain.ErrDuplicateBooking) ||
		errors.Is(err, domain.ErrConflict)
}
