package service

import (
	"github.com/rs/zerolog"

	"github.com/rentwheels/rental-web/internal/api/metrics"
	"github.com/rentwheels/rental-web/internal/core/domain"
	"github.com/rentwheels/rental-web/internal/core/ports"
)

// GuardPaths are the redirect targets the guard may choose from.
type GuardPaths struct {
	Login      string
	Root       string
	ListerHome string
}

// RouteGuard decides whether a navigation into a role-restricted view is
// rendered or redirected. It keeps no state between calls; the only mutation
// it performs is clearing a credential that failed to decode.
type RouteGuard struct {
	decoder ports.ClaimsDecoder
	paths   GuardPaths
	log     zerolog.Logger
}

func NewRouteGuard(decoder ports.ClaimsDecoder, paths GuardPaths, log zerolog.Logger) *RouteGuard {
	return &RouteGuard{decoder: decoder, paths: paths, log: log}
}

// Authorize evaluates one navigation. required is RoleNone for views open to
// any authenticated user.
func (g *RouteGuard) Authorize(store ports.CredentialStore, required domain.Role) domain.Decision {
	token, ok := store.Get()
	if !ok {
		g.log.Debug().Str("required_role", required.String()).Msg("no credential, redirecting to login")
		g.count(required, "redirect_login")
		return domain.RedirectTo(g.paths.Login)
	}

	var claims domain.Claims
	switch res := g.decoder.Decode(token).(type) {
	case domain.ValidClaims:
		claims = res.Claims
	case domain.InvalidCredential:
		g.log.Debug().Str("reason", res.Reason).Msg("credential rejected, clearing")
		store.Clear()
		g.count(required, "redirect_login")
		return domain.RedirectTo(g.paths.Login)
	default:
		g.log.Warn().Msgf("decoder returned %T, clearing credential", res)
		store.Clear()
		g.count(required, "redirect_login")
		return domain.RedirectTo(g.paths.Login)
	}

	if required != domain.RoleNone && claims.Role != required {
		home := g.HomePath(claims.Role)
		g.log.Debug().
			Str("required_role", required.String()).
			Str("role", claims.Role.String()).
			Str("redirect", home).
			Msg("role mismatch")
		g.count(required, "redirect_home")
		return domain.RedirectTo(home)
	}

	g.count(required, "allow")
	return domain.Allow(claims)
}

// HomePath returns the landing view for role.
func (g *RouteGuard) HomePath(role domain.Role) string {
	switch role {
	case domain.RoleLister:
		return g.paths.ListerHome
	case domain.RoleRenter:
		return g.paths.Root
	case domain.RoleNone:
		return g.paths.Root
	}
	return g.paths.Login
}

func (g *RouteGuard) count(required domain.Role, decision string) {
	metrics.GuardDecisionsTotal.WithLabelValues(required.String(), decision).Inc()
}
