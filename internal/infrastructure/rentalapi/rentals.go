package rentalapi

import (
	"context"
	"net/http"

	"github.com/rentwheels/rental-web/internal/core/domain"
)

// ListRentals calls GET /api/rentals.
func (c *Client) ListRentals(ctx context.Context, token string) ([]domain.Rental, error) {
	var rentals []domain.Rental
	err := c.do(ctx, request{op: "list_rentals", method: http.MethodGet, path: "/api/rentals", token: token}, &rentals)
	if err != nil {
		return nil, err
	}
	return rentals, nil
}

// CreateRental calls POST /api/rentals. idempotencyKey is sent as the
// Idempotency-Key header when non-empty.
func (c *Client) CreateRental(ctx context.Context, token, idempotencyKey string, req domain.RentalRequest) error {
	body, err := jsonBody(req)
	if err != nil {
		return err
	}
	r := request{
		op:          "create_rental",
		method:      http.MethodPost,
		path:        "/api/rentals",
		token:       token,
		body:        body,
		contentType: "application/json",
	}
	if idempotencyKey != "" {
		r.headers = map[string]string{"Idempotency-Key": idempotencyKey}
	}
	return c.do(ctx, r, nil)
}
