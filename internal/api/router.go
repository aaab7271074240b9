package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/rentwheels/rental-web/internal/api/handler"
	"github.com/rentwheels/rental-web/internal/api/middleware"
	"github.com/rentwheels/rental-web/internal/api/routepath"
	"github.com/rentwheels/rental-web/internal/api/web"
	"github.com/rentwheels/rental-web/internal/core/domain"
	"github.com/rentwheels/rental-web/internal/core/ports"
	"github.com/rentwheels/rental-web/internal/infrastructure/http/handlers"
	"github.com/rentwheels/rental-web/internal/infrastructure/session"
)

const bodyLimit = "60M"

// Deps are the collaborators the router wires into handlers.
type Deps struct {
	Guard     middleware.Authorizer
	Sessions  *session.Manager
	Renderer  echo.Renderer
	Auth      ports.AuthService
	Lister    ports.ListerService
	Renter    ports.RenterService
	Readiness map[string]handlers.Pinger
	Log       zerolog.Logger

	LoginRatePerMinute float64
	LoginRateBurst     int
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Renderer = d.Renderer
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(middleware.Metrics())
	e.Use(middleware.RequestLogger(d.Log))
	e.Use(echomiddleware.BodyLimit(bodyLimit))

	authHandler := handler.NewAuthHandler(d.Auth, d.Sessions, d.Log)
	listerHandler := handler.NewListerHandler(d.Lister, d.Log)
	renterHandler := handler.NewRenterHandler(d.Renter, d.Log)

	guard := func(role domain.Role) echo.MiddlewareFunc {
		return middleware.RequireRole(d.Guard, d.Sessions, role)
	}

	// --- Public views ---
	e.GET(routepath.Signup, authHandler.SignupPage)
	e.POST(routepath.Signup, authHandler.Signup)
	e.GET(routepath.Login, authHandler.LoginPage)
	e.POST(routepath.Login, authHandler.Login, middleware.LoginRateLimit(d.LoginRatePerMinute, d.LoginRateBurst))
	e.POST(routepath.Logout, authHandler.Logout)

	// --- Renter views ---
	requireRenter := guard(domain.RoleRenter)
	e.GET(routepath.Root, renterHandler.Dashboard, requireRenter)
	e.GET(routepath.RentCar, renterHandler.RentForm, requireRenter)
	e.POST(routepath.RentCar, renterHandler.Rent, requireRenter)

	// --- Lister views ---
	requireLister := guard(domain.RoleLister)
	e.GET(routepath.Dashboard, listerHandler.Dashboard, requireLister)
	e.GET(routepath.NewCar, listerHandler.NewCar, requireLister)
	e.POST(routepath.DashboardCars, listerHandler.CreateCar, requireLister)
	e.GET(routepath.EditCar, listerHandler.EditCar, requireLister)
	e.POST(routepath.CarPattern, listerHandler.UpdateCar, requireLister)
	e.POST(routepath.DeleteCar, listerHandler.DeleteCar, requireLister)

	// --- Any authenticated user ---
	e.GET(routepath.Session, authHandler.Session, guard(domain.RoleNone))

	// --- Ops (no auth required) ---
	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(d.Readiness)

	e.GET(routepath.Health, healthHandler.Liveness)     // liveness  – is the process alive?
	e.GET(routepath.Ready, healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET(routepath.Metrics, echo.WrapHandler(promhttp.Handler()))
	e.StaticFS(routepath.Static, web.Static())
	e.GET("/favicon.ico", func(c echo.Context) error { return c.NoContent(http.StatusNoContent) })

	return e
}
