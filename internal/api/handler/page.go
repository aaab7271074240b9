package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/rentwheels/rental-web/internal/api/flash"
	"github.com/rentwheels/rental-web/internal/api/middleware"
	"github.com/rentwheels/rental-web/internal/api/routepath"
	"github.com/rentwheels/rental-web/internal/api/web"
	"github.com/rentwheels/rental-web/internal/core/domain"
)

// render fills the layout fields shared by every page and renders name.
func render(c echo.Context, status int, name string, p web.Page) error {
	if notice, ok := flash.ReadAndClear(c); ok {
		p.Notice = &notice
	}
	if s, ok := middleware.SessionFrom(c); ok && p.User == nil {
		claims := s.Claims
		p.User = &claims
	}
	return c.Render(status, name, p)
}

// sessionOf returns the session attached by the guard. Its absence means the
// route was registered without RequireRole.
func sessionOf(c echo.Context) (middleware.Session, error) {
	s, ok := middleware.SessionFrom(c)
	if !ok || s.Token == "" {
		return middleware.Session{}, echo.NewHTTPError(http.StatusUnauthorized, "missing session")
	}
	return s, nil
}

// upstreamFailure handles an error from a guarded action. When the rental API
// rejected the credential, the session is dropped and the user sent to log in.
func upstreamFailure(c echo.Context, s middleware.Session, err error) error {
	if errors.Is(err, domain.ErrUnauthorized) {
		s.Store.Clear()
		flash.Write(c, flash.Error("Your session has expired. Please log in again."))
		return middleware.Redirect(c, routepath.Login)
	}
	return err
}

// userMessage picks the text shown next to a form for err.
func userMessage(err error, fallback string) string {
	if msg := domain.PublicMessage(err); msg != "" {
		return msg
	}
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		return "Invalid email or password!"
	case errors.Is(err, domain.ErrInvalidDateRange):
		return "End date must not be before the start date."
	case errors.Is(err, domain.ErrDuplicateBooking):
		return "This booking was already submitted."
	case errors.Is(err, domain.ErrConflict):
		return "That entry already exists."
	case errors.Is(err, domain.ErrUnknownRole):
		return "Please choose whether you want to rent or list cars."
	}
	return fallback
}

// formStatus is the status used when re-rendering a form after err.
func formStatus(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrConflict), errors.Is(err, domain.ErrDuplicateBooking):
		return http.StatusConflict
	case errors.Is(err, domain.ErrRejected),
		errors.Is(err, domain.ErrInvalidDateRange),
		errors.Is(err, domain.ErrUnknownRole):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrUpstream):
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

// redirectAfterPost sends a 303 so a reload does not resubmit the form.
func redirectAfterPost(c echo.Context, location string) error {
	return c.Redirect(http.StatusSeeOther, location)
}
