package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/veicsys/veicsys/docs"
	"github.com/veicsys/veicsys/internal/api/handler"
	"github.com/veicsys/veicsys/internal/api/middleware"
	"github.com/veicsys/veicsys/internal/core/access"
	"github.com/veicsys/veicsys/internal/core/domain"
	"github.com/veicsys/veicsys/internal/core/ports"
	"github.com/veicsys/veicsys/pkg/logger"
)

// Dependencies are the services the HTTP layer delegates to.
type Dependencies struct {
	Auth       ports.AuthService
	Resolver   middleware.SessionResolver
	Processes  ports.ProcessService
	CNPJ       ports.CNPJService
	Dispatcher handler.EventDispatcher
	Health     map[string]handler.Pinger
	Logger     zerolog.Logger
}

// Options tune session handling and instrumentation.
type Options struct {
	CookieName         string
	TokenTTL           time.Duration
	SecureCookies      bool
	ResolveTimeout     time.Duration
	PreserveReturnPath bool
	Routes             []access.Route
	// MetricsRegisterer receives the HTTP metrics. Defaults to the global registry.
	MetricsRegisterer prometheus.Registerer
}

// NewRouter builds and returns the Echo instance with all routes registered.
// It refuses a view table in which a role-home redirect could bounce.
func NewRouter(deps Dependencies, opts Options) (*echo.Echo, error) {
	routes := opts.Routes
	if routes == nil {
		routes = access.Routes()
	}
	if err := access.ValidateRoutes(routes); err != nil {
		return nil, err
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(deps.Logger))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:  "veicsys",
		Registerer: opts.MetricsRegisterer,
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/metrics"
		},
	}))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(deps.Auth, handler.CookieConfig{
		Name:   opts.CookieName,
		TTL:    opts.TokenTTL,
		Secure: opts.SecureCookies,
	})
	userHandler := handler.NewUserHandler(deps.Auth, deps.Logger)
	cnpjHandler := handler.NewCNPJHandler(deps.CNPJ)
	processHandler := handler.NewProcessHandler(deps.Processes)
	eventHandler := handler.NewEventHandler(deps.Dispatcher)
	healthHandler := handler.NewHealthHandler(deps.Health)

	sess := middleware.Session(middleware.SessionConfig{
		Resolver:       deps.Resolver,
		CookieName:     opts.CookieName,
		ResolveTimeout: opts.ResolveTimeout,
	})

	// --- Operational (no session) ---
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// --- Auth ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/logout", authHandler.Logout)
	e.GET("/session", authHandler.Session, sess)

	// --- Views ---
	e.GET(access.LoginPath, handler.Login)
	gate := middleware.GateConfig{PreserveReturnPath: opts.PreserveReturnPath}
	for _, r := range routes {
		e.GET(r.Path, handler.View(r.View), sess, middleware.Protected(r.View, r.Permitted, gate))
	}

	// --- CNPJ proxy ---
	e.POST("/functions/v1/cnpj-lookup", cnpjHandler.Lookup, sess, middleware.RequireSession())

	// --- API ---
	v1 := e.Group("/v1", sess)
	// A session without a known role has no process scope.
	knownRole := middleware.RBAC(domain.KnownRoles...)
	v1.POST("/processes", processHandler.Create, knownRole)
	v1.GET("/processes", processHandler.List, knownRole)
	v1.GET("/processes/:protocol", processHandler.Get, knownRole)

	eventRoles := middleware.RBAC(domain.RoleAdmin, domain.RoleDespachante)
	v1.POST("/processes/events", eventHandler.Receive, eventRoles)
	v1.POST("/processes/events/batch", eventHandler.ReceiveBatch, eventRoles)

	v1.PUT("/users/:id/role", userHandler.AssignRole, middleware.RBAC(domain.RoleAdmin))

	return e, nil
}

// requestLogger writes one zerolog line per request.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		Skipper: func(c echo.Context) bool {
			p := c.Path()
			return p == "/health" || p == "/metrics"
		},
		LogValuesFunc: func(_ echo.Context, v echomiddleware.RequestLoggerValues) error {
			reqLog := logger.WithRequestID(log, v.RequestID)
			ev := reqLog.Info()
			if v.Error != nil {
				ev = reqLog.Warn().Err(v.Error)
			}
			ev.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Msg("request")
			return nil
		},
	})
}
