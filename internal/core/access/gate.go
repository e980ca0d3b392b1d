// Package access decides what happens when a request reaches a protected
// view: wait for the session, send the user to login, send them to their
// role home, or render.
//
// Evaluate is a pure function of the session state and the route's permitted
// roles. It performs no I/O, and repeated calls with unchanged inputs yield
// the same Decision.
package access

import (
	"github.com/veicsys/veicsys/internal/core/domain"
)

// Outcome is one of the four gate results.
type Outcome int

const (
	// OutcomePending means the session is still resolving. Nothing is
	// rendered and no redirect is issued.
	OutcomePending Outcome = iota
	// OutcomeLogin redirects an unauthenticated request to the login view.
	OutcomeLogin
	// OutcomeRoleHome redirects an authenticated request whose role is not
	// permitted to the home of that role.
	OutcomeRoleHome
	// OutcomeRender lets the protected content through unchanged.
	OutcomeRender
)

func (o Outcome) String() string {
	switch o {
	case OutcomePending:
		return "pending"
	case OutcomeLogin:
		return "login"
	case OutcomeRoleHome:
		return "role_home"
	case OutcomeRender:
		return "render"
	default:
		return "invalid"
	}
}

// Decision is the gate result. Target is set for the two redirect outcomes.
type Decision struct {
	Outcome Outcome
	Target  string
}

// Redirect reports whether the decision sends the user elsewhere.
func (d Decision) Redirect() bool {
	return d.Outcome == OutcomeLogin || d.Outcome == OutcomeRoleHome
}

// Evaluate applies the gate rules in fixed priority order; first match wins.
// An empty permitted set admits any authenticated role, including unknown.
func Evaluate(state domain.SessionState, permitted []domain.Role) Decision {
	if state.Resolution == domain.ResolutionResolving {
		return Decision{Outcome: OutcomePending}
	}

	if !state.Authenticated() {
		return Decision{Outcome: OutcomeLogin, Target: LoginPath}
	}

	if len(permitted) > 0 {
		role := state.Role()
		if !Permits(permitted, role) {
			return Decision{Outcome: OutcomeRoleHome, Target: RoleHome(role)}
		}
	}

	return Decision{Outcome: OutcomeRender}
}

// Permits reports whether role is a member of permitted. RoleUnknown is
// never a member, even if a caller lists it.
func Permits(permitted []domain.Role, role domain.Role) bool {
	if role == domain.RoleUnknown {
		return false
	}
	for _, p := range permitted {
		if p == role {
			return true
		}
	}
	return false
}
