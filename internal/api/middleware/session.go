package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/veicsys/veicsys/internal/core/domain"
	"github.com/veicsys/veicsys/internal/core/session"
)

const providerKey = "session_provider"

// SessionResolver publishes the outcome of resolving a token into a provider.
type SessionResolver interface {
	Resolve(ctx context.Context, p *session.Provider, token string)
}

type SessionConfig struct {
	Resolver SessionResolver
	// CookieName is read when no bearer token is sent.
	CookieName string
	// ResolveTimeout bounds how long a request waits for resolution before
	// continuing with whatever state is current.
	ResolveTimeout time.Duration
}

// Session attaches a per-request session.Provider to the context and starts
// resolving the caller's token. It never rejects a request; gates and RBAC
// decide what to do with the state.
func Session(cfg SessionConfig) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			p := session.NewProvider()
			c.Set(providerKey, p)

			req := c.Request()
			go cfg.Resolver.Resolve(req.Context(), p, tokenFrom(req, cfg.CookieName))

			ctx, cancel := context.WithTimeout(req.Context(), cfg.ResolveTimeout)
			p.Await(ctx)
			cancel()

			return next(c)
		}
	}
}

// tokenFrom prefers the Authorization header over the session cookie.
func tokenFrom(req *http.Request, cookieName string) string {
	if h := req.Header.Get("Authorization"); h != "" {
		parts := strings.SplitN(h, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
			return strings.TrimSpace(parts[1])
		}
		return ""
	}
	if cookieName == "" {
		return ""
	}
	if ck, err := req.Cookie(cookieName); err == nil {
		return ck.Value
	}
	return ""
}

// Provider returns the request's session provider, or nil when the Session
// middleware did not run.
func Provider(c echo.Context) *session.Provider {
	p, _ := c.Get(providerKey).(*session.Provider)
	return p
}

// SessionState returns the request's current session state. Without a
// provider there is no session.
func SessionState(c echo.Context) domain.SessionState {
	if p := Provider(c); p != nil {
		return p.State()
	}
	return domain.SessionState{Resolution: domain.ResolutionAbsent}
}
