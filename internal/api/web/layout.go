package web

import (
	"context"
	"io"
	"strings"

	"github.com/a-h/templ"

	"github.com/rentwheels/rental-web/internal/api/routepath"
	"github.com/rentwheels/rental-web/internal/core/domain"
)

// Layout is the document shell shared by every page. The page body comes from
// the children in ctx.
func Layout(p Page) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder
		b.WriteString(`<!doctype html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <title>`)
		b.WriteString(templ.EscapeString(p.Title))
		b.WriteString(` · RentWheels</title>
</head>
<body>
  <header>
    <nav>
      <strong>RentWheels</strong>
`)
		writeNav(&b, p.User)
		b.WriteString(`    </nav>
  </header>
  <main>
`)
		if p.Notice != nil {
			b.WriteString(`    <p role="status" class="notice notice-`)
			b.WriteString(templ.EscapeString(string(p.Notice.Kind)))
			b.WriteString(`">`)
			b.WriteString(templ.EscapeString(p.Notice.Message))
			b.WriteString("</p>\n")
		}
		if p.Error != "" {
			b.WriteString(`    <p role="alert" class="notice notice-error">`)
			b.WriteString(templ.EscapeString(p.Error))
			b.WriteString("</p>\n")
		}
		if _, err := io.WriteString(w, b.String()); err != nil {
			return err
		}

		if err := templ.GetChildren(ctx).Render(ctx, w); err != nil {
			return err
		}

		_, err := io.WriteString(w, "  </main>\n</body>\n</html>\n")
		return err
	})
}

func writeNav(b *strings.Builder, user *domain.Claims) {
	if user == nil {
		b.WriteString(`      <a href="` + routepath.Login + `">Log in</a>
      <a href="` + routepath.Signup + `">Sign up</a>
`)
		return
	}
	if user.Role == domain.RoleLister {
		b.WriteString(`      <a href="` + routepath.Dashboard + `">My cars</a>` + "\n")
	} else {
		b.WriteString(`      <a href="` + routepath.Root + `">Browse cars</a>` + "\n")
	}
	b.WriteString(`      <form method="post" action="` + routepath.Logout + `" style="display:inline">
        <button type="submit">Log out</button>
      </form>
`)
}
