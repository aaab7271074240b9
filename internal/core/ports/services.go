package ports

import (
	"context"

	"github.com/rentwheels/rental-web/internal/core/domain"
)

// AuthService covers sign-up and sign-in.
type AuthService interface {
	Login(ctx context.Context, email, password string) (string, error)
	Register(ctx context.Context, reg domain.Registration) error
}

// ListerService backs the lister dashboard.
type ListerService interface {
	Dashboard(ctx context.Context, token string) ([]domain.Listing, error)
	Listing(ctx context.Context, token, carID string) (*domain.Car, error)
	AddCar(ctx context.Context, token string, in domain.CarInput) error
	UpdateCar(ctx context.Context, token, carID string, in domain.CarInput) error
	DeleteCar(ctx context.Context, token, carID string) error
}

// RenterService backs the renter dashboard.
type RenterService interface {
	Catalog(ctx context.Context) ([]domain.Car, error)
	Car(ctx context.Context, carID string) (*domain.Car, error)
	// Book submits req on behalf of the session subject.
	Book(ctx context.Context, token, subject string, req domain.RentalRequest) error
}
