package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veicsys/veicsys/internal/api/middleware"
	"github.com/veicsys/veicsys/internal/core/domain"
	"github.com/veicsys/veicsys/internal/core/ports"
	"github.com/veicsys/veicsys/internal/core/session"
)

// ---------------------------------------------------------------------------
// Stubs
// ---------------------------------------------------------------------------

type stubAuthService struct {
	registerFn func(ctx context.Context, in ports.RegisterInput) (*domain.User, error)
	loginFn    func(ctx context.Context, email, password string) (string, *domain.User, error)
	assignFn   func(ctx context.Context, userID string, role domain.Role) (*domain.Profile, error)
}

func (s *stubAuthService) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	return s.registerFn(ctx, in)
}

func (s *stubAuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	return s.loginFn(ctx, email, password)
}

func (s *stubAuthService) AssignRole(ctx context.Context, userID string, role domain.Role) (*domain.Profile, error) {
	return s.assignFn(ctx, userID, role)
}

type fixedResolver struct{ state domain.SessionState }

func (r fixedResolver) Resolve(_ context.Context, p *session.Provider, _ string) { p.Publish(r.state) }

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func newEcho() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}

func newJSONCtx(e *echo.Echo, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

// withSession runs the session middleware so c carries state.
func withSession(t *testing.T, c echo.Context, state domain.SessionState) {
	t.Helper()
	mw := middleware.Session(middleware.SessionConfig{Resolver: fixedResolver{state}, ResolveTimeout: time.Second})
	require.NoError(t, mw(func(echo.Context) error { return nil })(c))
}

func presentAs(role domain.Role) domain.SessionState {
	s := domain.SessionState{
		Resolution: domain.ResolutionPresent,
		Identity:   &domain.Identity{UserID: "u-" + string(role), Email: string(role) + "@veicsys.com"},
	}
	if role != domain.RoleUnknown {
		s.Profile = &domain.Profile{UserID: s.Identity.UserID, Role: role}
	}
	return s
}

func httpStatus(t *testing.T, err error) int {
	t.Helper()
	var he *echo.HTTPError
	require.True(t, errors.As(err, &he), "expected *echo.HTTPError, got %v", err)
	return he.Code
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), v))
}

// ---------------------------------------------------------------------------
// Auth
// ---------------------------------------------------------------------------

func newAuthHandler(stub *stubAuthService) *AuthHandler {
	return NewAuthHandler(stub, CookieConfig{Name: "veicsys_session", TTL: time.Hour, Secure: true})
}

func TestAuthHandler_Register_Success(t *testing.T) {
	stub := &stubAuthService{
		registerFn: func(_ context.Context, in ports.RegisterInput) (*domain.User, error) {
			assert.Equal(t, ports.RegisterInput{Name: "Ana", Email: "ana@example.com", Password: "pass1234"}, in)
			return &domain.User{ID: "u1", Name: in.Name, Email: in.Email, PasswordHash: "hash"}, nil
		},
	}
	c, rec := newJSONCtx(newEcho(), http.MethodPost, "/auth/register", `{"name":"Ana","email":"ana@example.com","password":"pass1234"}`)

	require.NoError(t, newAuthHandler(stub).Register(c))
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.NotContains(t, rec.Body.String(), "hash")

	var resp authResponse
	decode(t, rec, &resp)
	assert.Equal(t, "u1", resp.User.ID)
	assert.Empty(t, resp.Token)
}

func TestAuthHandler_Register_Rejects(t *testing.T) {
	tests := []struct {
		name string
		body string
		err  error
		want int
	}{
		{"malformed", `{"name":`, nil, http.StatusBadRequest},
		{"short password", `{"name":"Ana","email":"ana@example.com","password":"short"}`, nil, http.StatusUnprocessableEntity},
		{"bad email", `{"name":"Ana","email":"nope","password":"pass1234"}`, nil, http.StatusUnprocessableEntity},
		{"service rejects", `{"name":"Ana","email":"ana@example.com","password":"pass1234"}`, domain.ErrInvalidCredentials, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stub := &stubAuthService{registerFn: func(context.Context, ports.RegisterInput) (*domain.User, error) {
				return nil, tt.err
			}}
			c, _ := newJSONCtx(newEcho(), http.MethodPost, "/auth/register", tt.body)
			assert.Equal(t, tt.want, httpStatus(t, newAuthHandler(stub).Register(c)))
		})
	}
}

func TestAuthHandler_Register_DuplicatePassesThrough(t *testing.T) {
	stub := &stubAuthService{registerFn: func(context.Context, ports.RegisterInput) (*domain.User, error) {
		return nil, domain.ErrUserExists
	}}
	c, _ := newJSONCtx(newEcho(), http.MethodPost, "/auth/register", `{"name":"Ana","email":"ana@example.com","password":"pass1234"}`)

	assert.ErrorIs(t, newAuthHandler(stub).Register(c), domain.ErrUserExists)
}

func TestAuthHandler_Login_SetsCookie(t *testing.T) {
	stub := &stubAuthService{loginFn: func(_ context.Context, email, password string) (string, *domain.User, error) {
		return "jwt-token", &domain.User{ID: "u1", Email: email}, nil
	}}
	c, rec := newJSONCtx(newEcho(), http.MethodPost, "/auth/login", `{"email":"ana@example.com","password":"pass1234"}`)

	require.NoError(t, newAuthHandler(stub).Login(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp authResponse
	decode(t, rec, &resp)
	assert.Equal(t, "jwt-token", resp.Token)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	ck := cookies[0]
	assert.Equal(t, "veicsys_session", ck.Name)
	assert.Equal(t, "jwt-token", ck.Value)
	assert.True(t, ck.HttpOnly)
	assert.True(t, ck.Secure)
	assert.Equal(t, http.SameSiteLaxMode, ck.SameSite)
	assert.Equal(t, 3600, ck.MaxAge)
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	stub := &stubAuthService{loginFn: func(context.Context, string, string) (string, *domain.User, error) {
		return "", nil, domain.ErrInvalidCredentials
	}}
	c, rec := newJSONCtx(newEcho(), http.MethodPost, "/auth/login", `{"email":"ana@example.com","password":"wrong"}`)

	assert.ErrorIs(t, newAuthHandler(stub).Login(c), domain.ErrInvalidCredentials)
	assert.Empty(t, rec.Result().Cookies())
}

func TestAuthHandler_Logout_ClearsCookie(t *testing.T) {
	c, rec := newJSONCtx(newEcho(), http.MethodPost, "/auth/logout", "")

	require.NoError(t, newAuthHandler(&stubAuthService{}).Logout(c))
	assert.Equal(t, http.StatusNoContent, rec.Code)
	require.Len(t, rec.Result().Cookies(), 1)
	assert.Equal(t, "", rec.Result().Cookies()[0].Value)
	assert.Less(t, rec.Result().Cookies()[0].MaxAge, 0)
}

func TestAuthHandler_Session(t *testing.T) {
	tests := []struct {
		name  string
		state domain.SessionState
		want  sessionResponse
	}{
		{"absent", domain.SessionState{Resolution: domain.ResolutionAbsent}, sessionResponse{State: "absent"}},
		{"seller", presentAs(domain.RoleVendedor), sessionResponse{State: "present", UserID: "u-vendedor", Email: "vendedor@veicsys.com", Role: "vendedor", Home: "/vendedor"}},
		{"no profile", presentAs(domain.RoleUnknown), sessionResponse{State: "present", UserID: "u-", Email: "@veicsys.com", Role: "unknown", Home: "/dashboard"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, rec := newJSONCtx(newEcho(), http.MethodGet, "/session", "")
			withSession(t, c, tt.state)

			require.NoError(t, newAuthHandler(&stubAuthService{}).Session(c))
			var got sessionResponse
			decode(t, rec, &got)
			assert.Equal(t, tt.want, got)
		})
	}
}

// ---------------------------------------------------------------------------
// Users
// ---------------------------------------------------------------------------

func TestUserHandler_AssignRole(t *testing.T) {
	stub := &stubAuthService{assignFn: func(_ context.Context, userID string, role domain.Role) (*domain.Profile, error) {
		assert.Equal(t, "u9", userID)
		assert.Equal(t, domain.RoleDespachante, role)
		return &domain.Profile{UserID: userID, Role: role}, nil
	}}
	e := newEcho()
	c, rec := newJSONCtx(e, http.MethodPut, "/v1/users/u9/role", `{"role":"despachante"}`)
	c.SetParamNames("id")
	c.SetParamValues("u9")
	withSession(t, c, presentAs(domain.RoleAdmin))

	require.NoError(t, NewUserHandler(stub, testLogger).AssignRole(c))
	var got profileResponse
	decode(t, rec, &got)
	assert.Equal(t, "despachante", got.Role)
}

func TestUserHandler_AssignRole_UnknownRole(t *testing.T) {
	c, _ := newJSONCtx(newEcho(), http.MethodPut, "/v1/users/u9/role", `{"role":"root"}`)
	withSession(t, c, presentAs(domain.RoleAdmin))

	err := NewUserHandler(&stubAuthService{}, testLogger).AssignRole(c)
	assert.Equal(t, http.StatusUnprocessableEntity, httpStatus(t, err))
}
