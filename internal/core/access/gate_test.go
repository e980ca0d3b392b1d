package access

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/veicsys/veicsys/internal/core/domain"
)

var (
	anyone    = &domain.Identity{UserID: "u1", Email: "a@x.com"}
	allRoles  = append([]domain.Role{domain.RoleUnknown, domain.Role("root")}, domain.KnownRoles...)
	roleSets  = [][]domain.Role{nil, {domain.RoleAdmin}, {domain.RoleAvulso, domain.RoleDespachante}, domain.KnownRoles}
	profileOf = func(r domain.Role) *domain.Profile {
		if r == domain.RoleUnknown {
			return nil
		}
		return &domain.Profile{UserID: "u1", Email: "a@x.com", Role: r}
	}
)

func TestEvaluate_ResolvingIsAlwaysPending(t *testing.T) {
	for _, ident := range []*domain.Identity{nil, anyone} {
		for _, role := range allRoles {
			for _, permitted := range roleSets {
				state := domain.SessionState{Resolution: domain.ResolutionResolving, Identity: ident, Profile: profileOf(role)}
				got := Evaluate(state, permitted)
				if diff := cmp.Diff(Decision{Outcome: OutcomePending}, got); diff != "" {
					t.Fatalf("identity=%v role=%s permitted=%v (-want +got):\n%s", ident, role, permitted, diff)
				}
			}
		}
	}
}

func TestEvaluate_NoSessionRedirectsToLogin(t *testing.T) {
	want := Decision{Outcome: OutcomeLogin, Target: LoginPath}
	for _, res := range []domain.Resolution{domain.ResolutionAbsent, domain.ResolutionPresent} {
		for _, role := range allRoles {
			for _, permitted := range roleSets {
				state := domain.SessionState{Resolution: res, Profile: profileOf(role)}
				if diff := cmp.Diff(want, Evaluate(state, permitted)); diff != "" {
					t.Fatalf("resolution=%s role=%s permitted=%v (-want +got):\n%s", res, role, permitted, diff)
				}
			}
		}
	}
}

func TestEvaluate_ResolvedAbsentIgnoresStaleIdentity(t *testing.T) {
	state := domain.SessionState{
		Resolution: domain.ResolutionAbsent,
		Identity:   anyone,
		Profile:    profileOf(domain.RoleAdmin),
	}
	got := Evaluate(state, []domain.Role{domain.RoleAdmin})
	if got.Outcome != OutcomeLogin || got.Target != LoginPath {
		t.Fatalf("expected login redirect, got %+v", got)
	}
}

func TestEvaluate_EmptyPermittedRendersForAnyRole(t *testing.T) {
	for _, role := range allRoles {
		state := domain.SessionState{Resolution: domain.ResolutionPresent, Identity: anyone, Profile: profileOf(role)}
		if got := Evaluate(state, nil); got.Outcome != OutcomeRender {
			t.Fatalf("role=%s: expected render, got %+v", role, got)
		}
		if got := Evaluate(state, []domain.Role{}); got.Outcome != OutcomeRender {
			t.Fatalf("role=%s: expected render for empty slice, got %+v", role, got)
		}
	}
}

func TestEvaluate_MemberRoleRenders(t *testing.T) {
	for _, permitted := range roleSets[1:] {
		for _, role := range permitted {
			state := domain.SessionState{Resolution: domain.ResolutionPresent, Identity: anyone, Profile: profileOf(role)}
			if got := Evaluate(state, permitted); got.Outcome != OutcomeRender {
				t.Fatalf("role=%s permitted=%v: expected render, got %+v", role, permitted, got)
			}
		}
	}
}

func TestEvaluate_NonMemberGoesToRoleHome(t *testing.T) {
	for _, permitted := range roleSets[1:] {
		for _, role := range allRoles {
			if Permits(permitted, domain.ParseRole(string(role))) {
				continue
			}
			state := domain.SessionState{Resolution: domain.ResolutionPresent, Identity: anyone, Profile: profileOf(role)}
			want := Decision{Outcome: OutcomeRoleHome, Target: RoleHome(domain.ParseRole(string(role)))}
			if diff := cmp.Diff(want, Evaluate(state, permitted)); diff != "" {
				t.Fatalf("role=%s permitted=%v (-want +got):\n%s", role, permitted, diff)
			}
		}
	}
}

func TestEvaluate_Scenarios(t *testing.T) {
	tests := []struct {
		name      string
		state     domain.SessionState
		permitted []domain.Role
		want      Decision
	}{
		{
			name: "seller on admin route lands on seller home",
			state: domain.SessionState{
				Resolution: domain.ResolutionPresent,
				Identity:   &domain.Identity{Email: "a@x.com"},
				Profile:    &domain.Profile{Role: domain.RoleVendedor},
			},
			permitted: []domain.Role{domain.RoleAdmin},
			want:      Decision{Outcome: OutcomeRoleHome, Target: SellerHomePath},
		},
		{
			name: "missing profile on admin route lands on dashboard",
			state: domain.SessionState{
				Resolution: domain.ResolutionPresent,
				Identity:   &domain.Identity{Email: "a@x.com"},
			},
			permitted: []domain.Role{domain.RoleAdmin},
			want:      Decision{Outcome: OutcomeRoleHome, Target: DashboardPath},
		},
		{
			name: "resolved absent goes to login, not a role home",
			state: domain.SessionState{
				Resolution: domain.ResolutionAbsent,
				Profile:    &domain.Profile{Role: domain.RoleVendedor},
			},
			permitted: []domain.Role{domain.RoleAdmin},
			want:      Decision{Outcome: OutcomeLogin, Target: LoginPath},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, Evaluate(tt.state, tt.permitted)); diff != "" {
				t.Errorf("(-want +got):\n%s", diff)
			}
		})
	}
}

func TestEvaluate_Idempotent(t *testing.T) {
	state := domain.SessionState{Resolution: domain.ResolutionPresent, Identity: anyone, Profile: profileOf(domain.RoleAvulso)}
	permitted := []domain.Role{domain.RoleAdmin}
	first := Evaluate(state, permitted)
	for i := 0; i < 10; i++ {
		if got := Evaluate(state, permitted); got != first {
			t.Fatalf("evaluation %d changed: %+v vs %+v", i, got, first)
		}
	}
}

func TestPermits_UnknownNeverMatches(t *testing.T) {
	if Permits([]domain.Role{domain.RoleUnknown}, domain.RoleUnknown) {
		t.Fatal("unknown role must never be permitted")
	}
}

func TestRoleHome(t *testing.T) {
	want := map[domain.Role]string{
		domain.RoleAdmin:       AdminHomePath,
		domain.RoleVendedor:    SellerHomePath,
		domain.RoleAvulso:      ClientHomePath,
		domain.RoleDespachante: ClientHomePath,
		domain.RoleUnknown:     DashboardPath,
		domain.Role("root"):    DashboardPath,
	}
	for role, path := range want {
		for i := 0; i < 3; i++ {
			if got := RoleHome(role); got != path {
				t.Errorf("RoleHome(%s) = %s, want %s", role, got, path)
			}
		}
	}
}

func TestRoleHomeIsNeverDeniedByDefaultRoutes(t *testing.T) {
	if err := ValidateRoutes(Routes()); err != nil {
		t.Fatalf("default routes invalid: %v", err)
	}

	// Following a role-home redirect must render, never redirect again.
	routes := make(map[string]Route)
	for _, r := range Routes() {
		routes[r.Path] = r
	}
	for _, role := range allRoles {
		for _, r := range Routes() {
			state := domain.SessionState{Resolution: domain.ResolutionPresent, Identity: anyone, Profile: profileOf(role)}
			d := Evaluate(state, r.Permitted)
			if d.Outcome != OutcomeRoleHome {
				continue
			}
			next := Evaluate(state, routes[d.Target].Permitted)
			if next.Outcome != OutcomeRender {
				t.Fatalf("role=%s from %s to %s: second hop %+v", role, r.Path, d.Target, next)
			}
		}
	}
}

func TestValidateRoutes_Rejects(t *testing.T) {
	tests := []struct {
		name    string
		routes  []Route
		wantErr string
	}{
		{
			name: "seller home closed to sellers",
			routes: func() []Route {
				rs := Routes()
				for i := range rs {
					if rs[i].Path == SellerHomePath {
						rs[i].Permitted = []domain.Role{domain.RoleAdmin}
					}
				}
				return rs
			}(),
			wantErr: "denies its own role vendedor",
		},
		{
			name: "dashboard restricted",
			routes: func() []Route {
				rs := Routes()
				rs[0].Permitted = []domain.Role{domain.RoleAdmin}
				return rs
			}(),
			wantErr: "denies its own role unknown",
		},
		{
			name:    "missing client home",
			routes:  []Route{{Path: DashboardPath}, {Path: AdminHomePath}, {Path: SellerHomePath}},
			wantErr: "/cliente",
		},
		{
			name:    "gated login",
			routes:  append(Routes(), Route{Path: LoginPath}),
			wantErr: "must not be a protected route",
		},
		{
			name:    "duplicate",
			routes:  append(Routes(), Route{Path: DashboardPath}),
			wantErr: "duplicate route",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRoutes(tt.routes)
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}
