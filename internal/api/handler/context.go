package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/veicsys/veicsys/internal/api/middleware"
	"github.com/veicsys/veicsys/internal/core/ports"
)

// actorFrom builds the service actor from the request's session and performs
// a fast-fail check before any service call. Routes using it sit behind
// RequireSession or RBAC, so a missing session here means misconfiguration.
func actorFrom(c echo.Context) (ports.Actor, error) {
	state := middleware.SessionState(c)
	if !state.Authenticated() {
		return ports.Actor{}, echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
	}
	return ports.Actor{
		UserID: state.Identity.UserID,
		Email:  state.Identity.Email,
		Role:   state.Role(),
	}, nil
}
