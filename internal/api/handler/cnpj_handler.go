package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/veicsys/veicsys/internal/core/ports"
)

// CNPJHandler proxies CNPJ lookups.
type CNPJHandler struct {
	service ports.CNPJService
}

func NewCNPJHandler(service ports.CNPJService) *CNPJHandler {
	return &CNPJHandler{service: service}
}

// Lookup handles POST /functions/v1/cnpj-lookup.
//
// @Summary      Look up a company by CNPJ
// @Description  Punctuation is ignored. Answers come from the cache table when present.
// @Tags         cnpj
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      cnpjLookupRequest  true  "CNPJ, with or without punctuation"
// @Success      200   {object}  cnpjLookupResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      502   {object}  errorResponse
// @Router       /functions/v1/cnpj-lookup [post]
func (h *CNPJHandler) Lookup(c echo.Context) error {
	var req cnpjLookupRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	result, err := h.service.Lookup(c.Request().Context(), req.CNPJ)
	if err != nil {
		return err
	}

	resp, err := toCNPJLookupResponse(result)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, resp)
}
