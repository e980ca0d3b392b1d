package access

import (
	"fmt"

	"github.com/veicsys/veicsys/internal/core/domain"
)

// Route declares a protected view and the roles allowed to see it.
type Route struct {
	Path      string
	View      string
	Permitted []domain.Role
}

// Routes returns the dashboard's protected views.
func Routes() []Route {
	return []Route{
		{Path: DashboardPath, View: "dashboard"},
		{Path: AdminHomePath, View: "admin_home", Permitted: []domain.Role{domain.RoleAdmin}},
		{Path: "/admin/usuarios", View: "user_admin", Permitted: []domain.Role{domain.RoleAdmin}},
		{Path: SellerHomePath, View: "seller_home", Permitted: []domain.Role{domain.RoleAdmin, domain.RoleVendedor}},
		{Path: ClientHomePath, View: "client_home", Permitted: []domain.Role{domain.RoleAvulso, domain.RoleDespachante}},
		{Path: "/processos", View: "processes"},
		{Path: "/estoque", View: "inventory", Permitted: []domain.Role{domain.RoleAdmin, domain.RoleVendedor}},
		{Path: "/entregas", View: "deliveries", Permitted: []domain.Role{domain.RoleAdmin, domain.RoleDespachante}},
	}
}

// ValidateRoutes checks that a role-home redirect can never bounce: for every
// role (unknown included) the home route must exist and admit that role, and
// the login view must not be gated.
func ValidateRoutes(routes []Route) error {
	byPath := make(map[string]Route, len(routes))
	for _, r := range routes {
		if _, dup := byPath[r.Path]; dup {
			return fmt.Errorf("access: duplicate route %s", r.Path)
		}
		byPath[r.Path] = r
	}

	if _, gated := byPath[LoginPath]; gated {
		return fmt.Errorf("access: %s must not be a protected route", LoginPath)
	}

	roles := append([]domain.Role{domain.RoleUnknown}, domain.KnownRoles...)
	for _, role := range roles {
		home := RoleHome(role)
		r, ok := byPath[home]
		if !ok {
			return fmt.Errorf("access: home %s for role %s is not a declared route", home, role)
		}
		if len(r.Permitted) > 0 && !Permits(r.Permitted, role) {
			return fmt.Errorf("access: home %s denies its own role %s", home, role)
		}
	}
	return nil
}
