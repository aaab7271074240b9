package rentalapi

import (
	"context"
	"errors"
	"net/http"

	"github.com/rentwheels/rental-web/internal/core/domain"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token   string `json:"token"`
	Message string `json:"message,omitempty"`
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// Login calls POST /api/auth/login and returns the issued token. A 400 or 401
// answer unwraps to domain.ErrInvalidCredentials.
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	body, err := jsonBody(loginRequest{Email: email, Password: password})
	if err != nil {
		return "", err
	}

	var resp loginResponse
	err = c.do(ctx, request{
		op:          "login",
		method:      http.MethodPost,
		path:        "/api/auth/login",
		body:        body,
		contentType: "application/json",
	}, &resp)
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) &&
			(apiErr.StatusCode == http.StatusBadRequest || apiErr.StatusCode == http.StatusUnauthorized) {
			apiErr.kind = domain.ErrInvalidCredentials
		}
		return "", err
	}
	return resp.Token, nil
}

// Register calls POST /api/auth/register.
func (c *Client) Register(ctx context.Context, reg domain.Registration) error {
	body, err := jsonBody(registerRequest{
		Name:     reg.Name,
		Email:    reg.Email,
		Password: reg.Password,
		Role:     reg.Role.String(),
	})
	if err != nil {
		return err
	}
	return c.do(ctx, request{
		op:          "register",
		method:      http.MethodPost,
		path:        "/api/auth/register",
		body:        body,
		contentType: "application/json",
	}, nil)
}
