package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/rentwheels/rental-web/internal/api/flash"
	"github.com/rentwheels/rental-web/internal/core/domain"
	"github.com/rentwheels/rental-web/internal/infrastructure/session"
)

type stubAuthService struct {
	registerFn func(ctx context.Context, reg domain.Registration) error
	loginFn    func(ctx context.Context, email, password string) (string, error)
}

func (s *stubAuthService) Register(ctx context.Context, reg domain.Registration) error {
	return s.registerFn(ctx, reg)
}

func (s *stubAuthService) Login(ctx context.Context, email, password string) (string, error) {
	return s.loginFn(ctx, email, password)
}

func newAuthHandler(stub *stubAuthService) *AuthHandler {
	return NewAuthHandler(stub, session.NewManager(session.Config{TTL: 0, Secure: true}), zerolog.Nop())
}

func TestAuthHandler_Signup_Success(t *testing.T) {
	e := newTestEcho(t)
	stub := &stubAuthService{
		registerFn: func(ctx context.Context, reg domain.Registration) error {
			if reg.Name != "Alice" || reg.Email != "a@example.com" || reg.Role != domain.RoleLister {
				t.Fatalf("unexpected registration: %+v", reg)
			}
			return nil
		},
	}

	req := formRequest(http.MethodPost, "/signup", url.Values{
		"name": {" Alice "}, "email": {"a@example.com"}, "password": {"secret1"}, "role": {"Lister"},
	})
	rec := httptest.NewRecorder()
	if err := newAuthHandler(stub).Signup(e.NewContext(req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusSeeOther || rec.Header().Get("Location") != "/login" {
		t.Fatalf("expected 303 to /login, got %d %q", rec.Code, rec.Header().Get("Location"))
	}
	if cookieNamed(rec, flash.CookieName) == nil {
		t.Fatalf("expected flash notice")
	}
}

func TestAuthHandler_Signup_ValidationError(t *testing.T) {
	e := newTestEcho(t)
	stub := &stubAuthService{
		registerFn: func(context.Context, domain.Registration) error {
			t.Fatalf("service should not be called")
			return nil
		},
	}

	req := formRequest(http.MethodPost, "/signup", url.Values{
		"name": {"Alice"}, "email": {"not-an-email"}, "password": {"secret1"}, "role": {"Admin"},
	})
	rec := httptest.NewRecorder()
	if err := newAuthHandler(stub).Signup(e.NewContext(req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "email must be a valid email") || !strings.Contains(body, "role must be one of") {
		t.Fatalf("missing validation messages: %s", body)
	}
	if strings.Contains(body, "secret1") {
		t.Fatalf("password must not be echoed back")
	}
}

func TestAuthHandler_Signup_UserExists(t *testing.T) {
	e := newTestEcho(t)
	stub := &stubAuthService{
		registerFn: func(context.Context, domain.Registration) error {
			return fmt.Errorf("register: %w", domain.ErrConflict)
		},
	}

	req := formRequest(http.MethodPost, "/signup", url.Values{
		"name": {"Alice"}, "email": {"a@example.com"}, "password": {"secret1"}, "role": {"Renter"},
	})
	rec := httptest.NewRecorder()
	if err := newAuthHandler(stub).Signup(e.NewContext(req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "a@example.com") {
		t.Fatalf("form should keep the submitted email")
	}
}

func TestAuthHandler_Login_Success(t *testing.T) {
	e := newTestEcho(t)
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, email, password string) (string, error) {
			if email != "a@example.com" || password != "pw" {
				t.Fatalf("unexpected credentials %s/%s", email, password)
			}
			return "jwt-token", nil
		},
	}

	req := formRequest(http.MethodPost, "/login", url.Values{"email": {"a@example.com"}, "password": {"pw"}})
	rec := httptest.NewRecorder()
	if err := newAuthHandler(stub).Login(e.NewContext(req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusSeeOther || rec.Header().Get("Location") != "/" {
		t.Fatalf("expected 303 to /, got %d %q", rec.Code, rec.Header().Get("Location"))
	}
	cookie := cookieNamed(rec, session.DefaultCookieName)
	if cookie == nil || cookie.Value != "jwt-token" || !cookie.HttpOnly || !cookie.Secure {
		t.Fatalf("unexpected credential cookie: %+v", cookie)
	}
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	e := newTestEcho(t)
	stub := &stubAuthService{
		loginFn: func(context.Context, string, string) (string, error) {
			return "", fmt.Errorf("login: %w", domain.ErrInvalidCredentials)
		},
	}

	req := formRequest(http.MethodPost, "/login", url.Values{"email": {"a@example.com"}, "password": {"bad"}})
	rec := httptest.NewRecorder()
	if err := newAuthHandler(stub).Login(e.NewContext(req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Invalid email or password!") {
		t.Fatalf("missing error message")
	}
	if cookieNamed(rec, session.DefaultCookieName) != nil {
		t.Fatalf("no credential should be stored")
	}
}

func TestAuthHandler_Logout(t *testing.T) {
	e := newTestEcho(t)
	req := httptest.NewRequest(http.MethodPost, "/logout", nil)
	req.AddCookie(&http.Cookie{Name: session.DefaultCookieName, Value: "jwt-token"})
	rec := httptest.NewRecorder()

	if err := newAuthHandler(&stubAuthService{}).Logout(e.NewContext(req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Header().Get("Location") != "/login" {
		t.Fatalf("expected redirect to /login")
	}
	cookie := cookieNamed(rec, session.DefaultCookieName)
	if cookie == nil || cookie.MaxAge >= 0 {
		t.Fatalf("expected expired credential cookie, got %+v", cookie)
	}
}

func TestAuthHandler_Session(t *testing.T) {
	e := newTestEcho(t)
	rec, err := serveAs(t, e, listerClaims, newAuthHandler(&stubAuthService{}).Session,
		httptest.NewRequest(http.MethodGet, "/session", nil))
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["subject"] != "lister-1" || resp["role"] != "Lister" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
	if _, ok := resp["expiresAt"]; ok {
		t.Fatalf("zero expiry should be omitted")
	}
}
