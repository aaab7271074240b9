// Package web holds the page components, the embedded page bodies and static
// assets, and the echo.Renderer that writes them.
package web

import (
	"context"
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"strconv"
	"strings"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"

	"github.com/rentwheels/rental-web/internal/api/flash"
	"github.com/rentwheels/rental-web/internal/api/routepath"
	"github.com/rentwheels/rental-web/internal/core/domain"
)

// Page names accepted by Renderer.Render.
const (
	PageSignup          = "signup"
	PageLogin           = "login"
	PageRenterDashboard = "renter_dashboard"
	PageRent            = "rent"
	PageListerDashboard = "lister_dashboard"
	PageCarForm         = "car_form"
	PageError           = "error"
)

// DefaultImage is served when a car has no images.
const DefaultImage = routepath.Static + "/default-car.svg"

var pageNames = []string{
	PageSignup,
	PageLogin,
	PageRenterDashboard,
	PageRent,
	PageListerDashboard,
	PageCarForm,
	PageError,
}

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// Page is the value every template receives.
type Page struct {
	Title  string
	User   *domain.Claims
	Notice *flash.Notice
	Error  string
	Data   any
}

// ErrorData feeds the error page.
type ErrorData struct {
	Status  int
	Message string
}

// Static returns the static asset tree rooted at its own directory.
func Static() fs.FS {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return sub
}

// Renderer wraps each page body in the layout component.
type Renderer struct {
	bodies map[string]*template.Template
}

// NewRenderer parses every page body. assetBase prefixes relative image paths
// returned by the rental API.
func NewRenderer(assetBase string) (*Renderer, error) {
	funcs := Funcs(assetBase)
	bodies := make(map[string]*template.Template, len(pageNames))
	for _, name := range pageNames {
		t, err := template.New(name).Funcs(funcs).ParseFS(templateFS, "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}
		content := t.Lookup("content")
		if content == nil {
			return nil, fmt.Errorf("parse %s: no content block", name)
		}
		bodies[name] = content
	}
	return &Renderer{bodies: bodies}, nil
}

// Component returns the full page for name.
func (r *Renderer) Component(name string, p Page) (templ.Component, error) {
	body, ok := r.bodies[name]
	if !ok {
		return nil, fmt.Errorf("render: unknown page %q", name)
	}
	return withBody(Layout(p), templ.FromGoHTML(body, p)), nil
}

// Render satisfies echo.Renderer. data must be a Page.
func (r *Renderer) Render(w io.Writer, name string, data any, c echo.Context) error {
	p, ok := data.(Page)
	if !ok {
		return fmt.Errorf("render %s: want web.Page, got %T", name, data)
	}
	page, err := r.Component(name, p)
	if err != nil {
		return err
	}
	ctx := context.Background()
	if c != nil {
		ctx = c.Request().Context()
	}
	return page.Render(ctx, w)
}

// withBody renders shell with body as its children.
func withBody(shell, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return shell.Render(templ.WithChildren(ctx, body), w)
	})
}

// Funcs returns the template helpers.
func Funcs(assetBase string) template.FuncMap {
	base := strings.TrimSuffix(assetBase, "/")
	return template.FuncMap{
		"imageURL": func(p string) string {
			return ImageURL(base, p)
		},
		"firstImage": func(images []string) string {
			if len(images) == 0 {
				return ""
			}
			return images[0]
		},
		"price": func(p float64) string {
			return "$" + strconv.FormatFloat(p, 'f', 2, 64)
		},
		"dateOnly":      dateOnly,
		"rentPath":      routepath.Rent,
		"carEditPath":   routepath.CarEdit,
		"carDeletePath": routepath.CarDelete,
	}
}

// ImageURL resolves an image path from the rental API against base.
func ImageURL(base, p string) string {
	p = strings.TrimSpace(p)
	switch {
	case p == "":
		return DefaultImage
	case strings.HasPrefix(p, "http://"), strings.HasPrefix(p, "https://"):
		return p
	case base == "":
		return "/" + strings.TrimPrefix(p, "/")
	default:
		return base + "/" + strings.TrimPrefix(p, "/")
	}
}

// dateOnly trims an ISO timestamp to its YYYY-MM-DD prefix.
func dateOnly(s string) string {
	if len(s) >= 10 && s[4] == '-' && s[7] == '-' {
		return s[:10]
	}
	return s
}
