package middleware

import (
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"

	"github.com/veicsys/veicsys/internal/api/metrics"
	"github.com/veicsys/veicsys/internal/core/access"
	"github.com/veicsys/veicsys/internal/core/domain"
)

// pendingResponse is the placeholder served while the session resolves.
type pendingResponse struct {
	Status string `json:"status"`
}

type GateConfig struct {
	// PreserveReturnPath appends ?next=<requested uri> to login redirects.
	PreserveReturnPath bool
}

// Protected guards a view with the access gate. Denials are expressed as
// 303 redirects only; a still-resolving session gets a 202 placeholder that
// asks the client to retry.
func Protected(view string, permitted []domain.Role, cfg GateConfig) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			d := access.Evaluate(SessionState(c), permitted)
			metrics.GateDecisionsTotal.WithLabelValues(view, d.Outcome.String()).Inc()

			switch d.Outcome {
			case access.OutcomePending:
				h := c.Response().Header()
				h.Set(echo.HeaderCacheControl, "no-store")
				h.Set("Refresh", "1")
				return c.JSON(http.StatusAccepted, pendingResponse{Status: "checking_session"})
			case access.OutcomeLogin:
				target := d.Target
				if cfg.PreserveReturnPath {
					target += "?next=" + url.QueryEscape(c.Request().URL.RequestURI())
				}
				return c.Redirect(http.StatusSeeOther, target)
			case access.OutcomeRoleHome:
				return c.Redirect(http.StatusSeeOther, d.Target)
			default:
				return next(c)
			}
		}
	}
}
