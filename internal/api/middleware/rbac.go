package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/veicsys/veicsys/internal/core/access"
	"github.com/veicsys/veicsys/internal/core/domain"
)

// RequireSession rejects requests without an authenticated session.
func RequireSession() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if err := checkSession(c, SessionState(c)); err != nil {
				return err
			}
			return next(c)
		}
	}
}

// RBAC enforces role-based access control on API routes. The unknown role
// never passes.
func RBAC(allowedRoles ...domain.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			state := SessionState(c)
			if err := checkSession(c, state); err != nil {
				return err
			}
			if !access.Permits(allowedRoles, state.Role()) {
				return echo.NewHTTPError(http.StatusForbidden, "forbidden")
			}
			return next(c)
		}
	}
}

func checkSession(c echo.Context, state domain.SessionState) error {
	switch {
	case state.Resolution == domain.ResolutionResolving:
		c.Response().Header().Set(echo.HeaderRetryAfter, "1")
		return echo.NewHTTPError(http.StatusServiceUnavailable, "session not resolved yet")
	case !state.Authenticated():
		return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
	}
	return nil
}
