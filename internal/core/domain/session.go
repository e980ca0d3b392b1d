package domain

// Resolution is the tri-state session-check status.
type Resolution int

const (
	ResolutionResolving Resolution = iota
	ResolutionAbsent
	ResolutionPresent
)

func (r Resolution) String() string {
	switch r {
	case ResolutionResolving:
		return "resolving"
	case ResolutionAbsent:
		return "absent"
	case ResolutionPresent:
		return "present"
	default:
		return "unknown"
	}
}

// Identity is the authenticated principal carried by a verified session token.
type Identity struct {
	UserID string
	Email  string
}

// SessionState is what the session provider publishes and what the access
// gate consumes. Identity and Profile are nil when absent.
type SessionState struct {
	Resolution Resolution
	Identity   *Identity
	Profile    *Profile
}

// Authenticated reports whether resolution finished with an identity.
func (s SessionState) Authenticated() bool {
	return s.Resolution == ResolutionPresent && s.Identity != nil
}

// Role returns the profile role, or RoleUnknown when no profile resolved.
func (s SessionState) Role() Role {
	if s.Profile == nil {
		return RoleUnknown
	}
	return ParseRole(string(s.Profile.Role))
}

// UserID returns the identity's user id, or "" without a session.
func (s SessionState) UserID() string {
	if s.Identity == nil {
		return ""
	}
	return s.Identity.UserID
}
