package handler

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/rentwheels/rental-web/internal/api/middleware"
	"github.com/rentwheels/rental-web/internal/api/web"
	"github.com/rentwheels/rental-web/internal/core/domain"
	"github.com/rentwheels/rental-web/internal/core/ports"
	"github.com/rentwheels/rental-web/internal/infrastructure/session"
)

const testToken = "tok-123"

type allowGuard struct {
	claims domain.Claims
}

func (g allowGuard) Authorize(ports.CredentialStore, domain.Role) domain.Decision {
	return domain.Allow(g.claims)
}

func newTestEcho(t *testing.T) *echo.Echo {
	t.Helper()
	r, err := web.NewRenderer("http://api:5000")
	if err != nil {
		t.Fatalf("renderer: %v", err)
	}
	e := echo.New()
	e.Renderer = r
	e.Validator = NewValidator()
	return e
}

func formRequest(method, target string, values url.Values) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(values.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	return req
}

type upload struct {
	name string
	data []byte
}

func multipartRequest(t *testing.T, target string, values url.Values, files ...upload) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, vs := range values {
		for _, v := range vs {
			if err := w.WriteField(k, v); err != nil {
				t.Fatalf("write field: %v", err)
			}
		}
	}
	for _, f := range files {
		part, err := w.CreateFormFile("images", f.name)
		if err != nil {
			t.Fatalf("create file: %v", err)
		}
		_, _ = part.Write(f.data)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close multipart: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, target, &buf)
	req.Header.Set(echo.HeaderContentType, w.FormDataContentType())
	return req
}

// serveAs runs h behind RequireRole with a guard that admits claims.
// params are alternating path parameter names and values.
func serveAs(t *testing.T, e *echo.Echo, claims domain.Claims, h echo.HandlerFunc, req *http.Request, params ...string) (*httptest.ResponseRecorder, error) {
	t.Helper()
	req.AddCookie(&http.Cookie{Name: session.DefaultCookieName, Value: testToken})
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	var names, values []string
	for i := 0; i+1 < len(params); i += 2 {
		names = append(names, params[i])
		values = append(values, params[i+1])
	}
	c.SetParamNames(names...)
	c.SetParamValues(values...)

	mw := middleware.RequireRole(allowGuard{claims: claims}, session.NewManager(session.Config{}), claims.Role)
	return rec, mw(h)(c)
}

func cookieNamed(rec *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

var (
	listerClaims = domain.Claims{Subject: "lister-1", Role: domain.RoleLister}
	renterClaims = domain.Claims{Subject: "renter-1", Role: domain.RoleRenter}
)
