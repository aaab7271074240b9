package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/rentwheels/rental-web/internal/api/flash"
	"github.com/rentwheels/rental-web/internal/api/routepath"
	"github.com/rentwheels/rental-web/internal/api/web"
	"github.com/rentwheels/rental-web/internal/core/domain"
	"github.com/rentwheels/rental-web/internal/core/ports"
	"github.com/rentwheels/rental-web/internal/infrastructure/session"
)

type AuthHandler struct {
	authService ports.AuthService
	sessions    *session.Manager
	log         zerolog.Logger
}

func NewAuthHandler(authService ports.AuthService, sessions *session.Manager, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{authService: authService, sessions: sessions, log: log}
}

// SignupPage renders the account creation form.
func (h *AuthHandler) SignupPage(c echo.Context) error {
	return render(c, http.StatusOK, web.PageSignup, web.Page{
		Title: "Sign up",
		Data:  signupForm{Role: domain.RoleRenter.String()},
	})
}

// Signup registers an account and sends the user to the login form.
func (h *AuthHandler) Signup(c echo.Context) error {
	var form signupForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form")
	}
	form.normalize()

	fail := func(status int, msg string) error {
		form.Password = ""
		return render(c, status, web.PageSignup, web.Page{Title: "Sign up", Error: msg, Data: form})
	}

	if err := c.Validate(&form); err != nil {
		return fail(http.StatusUnprocessableEntity, err.Error())
	}
	role, err := domain.ParseRole(form.Role)
	if err != nil {
		return fail(http.StatusUnprocessableEntity, userMessage(err, "Unknown role"))
	}

	err = h.authService.Register(c.Request().Context(), domain.Registration{
		Name:     form.Name,
		Email:    form.Email,
		Password: form.Password,
		Role:     role,
	})
	if err != nil {
		h.log.Debug().Err(err).Msg("registration failed")
		return fail(formStatus(err), userMessage(err, "Something went wrong!"))
	}

	flash.Write(c, flash.Success("Registration successful! Please log in."))
	return redirectAfterPost(c, routepath.Login)
}

// LoginPage renders the login form.
func (h *AuthHandler) LoginPage(c echo.Context) error {
	return render(c, http.StatusOK, web.PageLogin, web.Page{Title: "Log in", Data: loginForm{}})
}

// Login exchanges credentials for a token and persists it in the session.
func (h *AuthHandler) Login(c echo.Context) error {
	var form loginForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form")
	}

	fail := func(status int, msg string) error {
		return render(c, status, web.PageLogin, web.Page{
			Title: "Log in",
			Error: msg,
			Data:  loginForm{Email: form.Email},
		})
	}

	if err := c.Validate(&form); err != nil {
		return fail(http.StatusUnprocessableEntity, err.Error())
	}

	token, err := h.authService.Login(c.Request().Context(), form.Email, form.Password)
	if err != nil {
		h.log.Debug().Err(err).Msg("login failed")
		return fail(formStatus(err), userMessage(err, "Invalid email or password!"))
	}

	h.sessions.For(c).Set(token, h.sessions.Attributes())
	return redirectAfterPost(c, routepath.Root)
}

// Logout drops the credential.
func (h *AuthHandler) Logout(c echo.Context) error {
	h.sessions.For(c).Clear()
	flash.Write(c, flash.Success("You have been logged out."))
	return redirectAfterPost(c, routepath.Login)
}

type sessionResponse struct {
	Subject   string     `json:"subject"`
	Role      string     `json:"role"`
	IssuedAt  *time.Time `json:"issuedAt,omitempty"`
	ExpiresAt *time.Time `json:"expiresAt,omitempty"`
}

// Session reports the claims of the current credential as JSON.
func (h *AuthHandler) Session(c echo.Context) error {
	s, err := sessionOf(c)
	if err != nil {
		return err
	}
	resp := sessionResponse{Subject: s.Claims.Subject, Role: s.Claims.Role.String()}
	if !s.Claims.IssuedAt.IsZero() {
		iat := s.Claims.IssuedAt
		resp.IssuedAt = &iat
	}
	if !s.Claims.ExpiresAt.IsZero() {
		exp := s.Claims.ExpiresAt
		resp.ExpiresAt = &exp
	}
	return c.JSON(http.StatusOK, resp)
}
