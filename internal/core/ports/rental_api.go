package ports

import (
	"context"

	"github.com/rentwheels/rental-web/internal/core/domain"
)

// AuthAPI is the account surface of the rental API.
type AuthAPI interface {
	Login(ctx context.Context, email, password string) (string, error)
	Register(ctx context.Context, reg domain.Registration) error
}

// CarAPI is the listing surface of the rental API.
type CarAPI interface {
	// ListCars returns the public catalog.
	ListCars(ctx context.Context) ([]domain.Car, error)
	// ListOwnCars returns the cars listed by the bearer of token.
	ListOwnCars(ctx context.Context, token string) ([]domain.Car, error)
	CreateCar(ctx context.Context, token string, in domain.CarInput) error
	UpdateCar(ctx context.Context, token, id string, in domain.CarInput) error
	DeleteCar(ctx context.Context, token, id string) error
}

// RentalAPI is the booking surface of the rental API.
type RentalAPI interface {
	ListRentals(ctx context.Context, token string) ([]domain.Rental, error)
	CreateRental(ctx context.Context, token, idempotencyKey string, req domain.RentalRequest) error
}
