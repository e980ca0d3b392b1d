package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/veicsys/veicsys/internal/api/middleware"
	"github.com/veicsys/veicsys/internal/core/access"
)

// View returns the handler for a protected view. It only runs once the gate
// has decided to render, so the session is always present here.
func View(name string) echo.HandlerFunc {
	return func(c echo.Context) error {
		state := middleware.SessionState(c)
		role := state.Role()
		resp := viewResponse{View: name, Role: role.String(), Home: access.RoleHome(role)}
		if state.Identity != nil {
			resp.Email = state.Identity.Email
		}
		c.Response().Header().Set(echo.HeaderCacheControl, "no-store")
		return c.JSON(http.StatusOK, resp)
	}
}

// Login is the public login view. It never goes through the gate.
func Login(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"view": "login",
		"next": c.QueryParam("next"),
	})
}
