package domain

import (
	"errors"
	"strings"
	"time"
)

// Role is the closed set of dashboard roles. RoleUnknown is the explicit
// variant for a missing or unrecognised role tag and never grants access.
type Role string

const (
	RoleUnknown     Role = ""
	RoleAdmin       Role = "admin"
	RoleVendedor    Role = "vendedor"
	RoleAvulso      Role = "avulso"
	RoleDespachante Role = "despachante"
)

// KnownRoles lists every assignable role.
var KnownRoles = []Role{RoleAdmin, RoleVendedor, RoleAvulso, RoleDespachante}

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("user already exists")
	ErrProfileNotFound    = errors.New("profile not found")
	ErrInvalidRole        = errors.New("invalid role")
	ErrInvalidToken       = errors.New("invalid session token")
)

// ParseRole maps a raw role tag to a Role. Anything outside the closed set
// becomes RoleUnknown.
func ParseRole(s string) Role {
	switch r := Role(strings.ToLower(strings.TrimSpace(s))); r {
	case RoleAdmin, RoleVendedor, RoleAvulso, RoleDespachante:
		return r
	default:
		return RoleUnknown
	}
}

// Known reports whether r is one of the assignable roles.
func (r Role) Known() bool {
	return ParseRole(string(r)) == r && r != RoleUnknown
}

// IsClient reports whether r is scoped to its own records (individual
// clients and dispatchers).
func (r Role) IsClient() bool {
	return r == RoleAvulso || r == RoleDespachante
}

// IsStaff reports whether r sees every client's records.
func (r Role) IsStaff() bool {
	return r == RoleAdmin || r == RoleVendedor
}

func (r Role) String() string {
	if r == RoleUnknown {
		return "unknown"
	}
	return string(r)
}

// User holds login credentials. The role lives on the Profile.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Profile is the per-user record carrying the role tag.
type Profile struct {
	UserID    string    `json:"user_id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
