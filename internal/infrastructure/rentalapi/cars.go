package rentalapi

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strconv"

	"github.com/rentwheels/rental-web/internal/core/domain"
)

// ListCars calls GET /api/cars. The catalog is public: no token is sent.
func (c *Client) ListCars(ctx context.Context) ([]domain.Car, error) {
	var cars []domain.Car
	if err := c.do(ctx, request{op: "list_cars", method: http.MethodGet, path: "/api/cars"}, &cars); err != nil {
		return nil, err
	}
	return cars, nil
}

// ListOwnCars calls GET /api/cars/user.
func (c *Client) ListOwnCars(ctx context.Context, token string) ([]domain.Car, error) {
	var cars []domain.Car
	err := c.do(ctx, request{op: "list_own_cars", method: http.MethodGet, path: "/api/cars/user", token: token}, &cars)
	if err != nil {
		return nil, err
	}
	return cars, nil
}

// CreateCar calls POST /api/cars with a multipart body.
func (c *Client) CreateCar(ctx context.Context, token string, in domain.CarInput) error {
	body, contentType, err := carForm(in)
	if err != nil {
		return fmt.Errorf("create_car: %w", err)
	}
	return c.do(ctx, request{
		op:          "create_car",
		method:      http.MethodPost,
		path:        "/api/cars",
		token:       token,
		body:        body,
		contentType: contentType,
	}, nil)
}

// UpdateCar calls PUT /api/cars/{id} with a multipart body.
func (c *Client) UpdateCar(ctx context.Context, token, id string, in domain.CarInput) error {
	body, contentType, err := carForm(in)
	if err != nil {
		return fmt.Errorf("update_car: %w", err)
	}
	return c.do(ctx, request{
		op:          "update_car",
		method:      http.MethodPut,
		path:        "/api/cars/" + url.PathEscape(id),
		token:       token,
		body:        body,
		contentType: contentType,
	}, nil)
}

// DeleteCar calls DELETE /api/cars/{id}.
func (c *Client) DeleteCar(ctx context.Context, token, id string) error {
	return c.do(ctx, request{
		op:     "delete_car",
		method: http.MethodDelete,
		path:   "/api/cars/" + url.PathEscape(id),
		token:  token,
	}, nil)
}

// carForm encodes in as the multipart form the API expects: one field per
// attribute and one "images" part per uploaded file.
func carForm(in domain.CarInput) (*bytes.Buffer, string, error) {
	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)

	fields := []struct{ name, value string }{
		{"make", in.Make},
		{"model", in.Model},
		{"year", strconv.Itoa(in.Year)},
		{"price", strconv.FormatFloat(in.Price, 'f', -1, 64)},
		{"availability", strconv.FormatBool(in.Availability)},
		{"listedBy", in.ListedBy},
	}
	for _, f := range fields {
		if err := w.WriteField(f.name, f.value); err != nil {
			return nil, "", fmt.Errorf("write field %s: %w", f.name, err)
		}
	}

	for _, img := range in.Images {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="images"; filename=%q`, img.Filename))
		ct := img.ContentType
		if ct == "" {
			ct = "application/octet-stream"
		}
		h.Set("Content-Type", ct)
		part, err := w.CreatePart(h)
		if err != nil {
			return nil, "", fmt.Errorf("create image part: %w", err)
		}
		if _, err := part.Write(img.Data); err != nil {
			return nil, "", fmt.Errorf("write image %s: %w", img.Filename, err)
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("close multipart: %w", err)
	}
	return buf, w.FormDataContentType(), nil
}
