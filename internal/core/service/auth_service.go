package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/rentwheels/rental-web/internal/core/domain"
	"github.com/rentwheels/rental-web/internal/core/ports"
)

// AuthService forwards sign-up and sign-in to the rental API.
type AuthService struct {
	api ports.AuthAPI
	log zerolog.Logger
}

func NewAuthService(api ports.AuthAPI, log zerolog.Logger) *AuthService {
	return &AuthService{api: api, log: log}
}

// Login exchanges credentials for a session token.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return "", domain.ErrInvalidCredentials
	}

	token, err := s.api.Login(ctx, email, password)
	if err != nil {
		return "", fmt.Errorf("login: %w", err)
	}
	if token == "" {
		return "", fmt.Errorf("login: %w: empty token", domain.ErrUpstream)
	}

	s.log.Info().Str("email", email).Msg("login succeeded")
	return token, nil
}

// Register creates an account. Only Lister and Renter accounts can be created.
func (s *AuthService) Register(ctx context.Context, reg domain.Registration) error {
	reg.Email = strings.TrimSpace(reg.Email)
	reg.Name = strings.TrimSpace(reg.Name)
	if reg.Name == "" || reg.Email == "" || reg.Password == "" {
		return fmt.Errorf("register: %w", domain.Reject("Name, email and password are required"))
	}
	switch reg.Role {
	case domain.RoleLister, domain.RoleRenter:
	case domain.RoleNone:
		return fmt.Errorf("register: %w", domain.ErrUnknownRole)
	}

	if err := s.api.Register(ctx, reg); err != nil {
		return fmt.Errorf("register: %w", err)
	}

	s.log.Info().Str("email", reg.Email).Str("role", reg.Role.String()).Msg("account registered")
	return nil
}
