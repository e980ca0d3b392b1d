package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/veicsys/veicsys/internal/core/domain"
	"github.com/veicsys/veicsys/internal/core/ports"
)

// UserHandler serves user administration.
type UserHandler struct {
	authService ports.AuthService
	log         zerolog.Logger
}

func NewUserHandler(authService ports.AuthService, log zerolog.Logger) *UserHandler {
	return &UserHandler{authService: authService, log: log}
}

// AssignRole handles PUT /v1/users/:id/role.
//
// @Summary      Assign a role to a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "User id"
// @Param        body  body      assignRoleRequest  true  "New role"
// @Success      200   {object}  profileResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/users/{id}/role [put]
func (h *UserHandler) AssignRole(c echo.Context) error {
	var req assignRoleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	actor, err := actorFrom(c)
	if err != nil {
		return err
	}

	userID := c.Param("id")
	profile, err := h.authService.AssignRole(c.Request().Context(), userID, domain.ParseRole(req.Role))
	if err != nil {
		return err
	}

	h.log.Info().
		Str("user_id", userID).
		Str("role", req.Role).
		Str("by", actor.UserID).
		Msg("role assigned")
	return c.JSON(http.StatusOK, toProfileResponse(profile))
}
