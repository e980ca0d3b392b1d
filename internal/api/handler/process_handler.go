package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/veicsys/veicsys/internal/core/ports"
)

// ProcessHandler handles HTTP requests for service process operations.
type ProcessHandler struct {
	service ports.ProcessService
}

func NewProcessHandler(service ports.ProcessService) *ProcessHandler {
	return &ProcessHandler{service: service}
}

// Create handles POST /v1/processes.
//
// @Summary      Open a service process
// @Tags         processes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        Idempotency-Key  header    string                false  "Idempotency key to prevent duplicate submissions"
// @Param        body             body      createProcessRequest  true   "Process details"
// @Success      201              {object}  createProcessResponse
// @Success      200              {object}  createProcessResponse  "Idempotent replay"
// @Failure      400              {object}  errorResponse
// @Failure      401              {object}  errorResponse
// @Failure      403              {object}  errorResponse
// @Failure      422              {object}  errorResponse
// @Router       /v1/processes [post]
func (h *ProcessHandler) Create(c echo.Context) error {
	var req createProcessRequest
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

	result, err := h.service.CreateProcess(c.Request().Context(), ports.CreateProcessInput{
		Actor:          actor,
		ClientID:       req.ClientID,
		ClientName:     req.ClientName,
		ClientDocument: req.ClientDocument,
		VehiclePlate:   req.VehiclePlate,
		Type:           req.Type,
		IdempotencyKey: c.Request().Header.Get("Idempotency-Key"),
	})
	if err != nil {
		return err
	}

	status := http.StatusCreated
	if result.AlreadyExisted {
		status = http.StatusOK
	}
	return c.JSON(status, toCreateProcessResponse(result))
}

// Get handles GET /v1/processes/:protocol.
//
// @Summary      Get a service process by protocol
// @Tags         processes
// @Produce      json
// @Security     BearerAuth
// @Param        protocol  path      string  true  "Protocol (e.g. VS-7A8B9C2D)"
// @Success      200       {object}  processResponse
// @Failure      401       {object}  errorResponse
// @Failure      403       {object}  errorResponse
// @Failure      404       {object}  errorResponse
// @Router       /v1/processes/{protocol} [get]
func (h *ProcessHandler) Get(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}

	p, err := h.service.GetProcess(c.Request().Context(), actor, c.Param("protocol"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toProcessResponse(p, true))
}

// List handles GET /v1/processes.
//
// @Summary      List service processes
// @Description  Client roles only see their own processes.
// @Tags         processes
// @Produce      json
// @Security     BearerAuth
// @Param        status     query     string  false  "Status filter"
// @Param        type       query     string  false  "Type filter"
// @Param        search     query     string  false  "Partial match on protocol, plate or client name"
// @Param        date_from  query     string  false  "RFC3339 or YYYY-MM-DD lower bound on created_at"
// @Param        date_to    query     string  false  "RFC3339 or YYYY-MM-DD upper bound on created_at"
// @Param        page       query     int     false  "Page, starting at 1"
// @Param        limit      query     int     false  "Page size, default 20, max 100"
// @Success      200        {object}  listProcessesResponse
// @Failure      400        {object}  errorResponse
// @Failure      401        {object}  errorResponse
// @Failure      403        {object}  errorResponse
// @Router       /v1/processes [get]
func (h *ProcessHandler) List(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}

	in := ports.ListProcessesInput{
		Actor:  actor,
		Status: c.QueryParam("status"),
		Type:   c.QueryParam("type"),
		Search: c.QueryParam("search"),
	}
	if in.Page, err = intParam(c, "page"); err != nil {
		return err
	}
	if in.Limit, err = intParam(c, "limit"); err != nil {
		return err
	}
	if in.DateFrom, err = dateParam(c, "date_from", false); err != nil {
		return err
	}
	if in.DateTo, err = dateParam(c, "date_to", true); err != nil {
		return err
	}

	result, err := h.service.ListProcesses(c.Request().Context(), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toListResponse(result))
}

func intParam(c echo.Context, name string) (int, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, name+" must be a non-negative integer")
	}
	return n, nil
}

// dateParam accepts RFC3339 or a bare date. A bare upper bound covers the
// whole day.
func dateParam(c echo.Context, name string, endOfDay bool) (time.Time, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.DateOnly, raw)
	if err != nil {
		return time.Time{}, echo.NewHTTPError(http.StatusBadRequest, name+" must be RFC3339 or YYYY-MM-DD")
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return t, nil
}
