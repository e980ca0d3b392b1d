package access

import "github.com/veicsys/veicsys/internal/core/domain"

const (
	LoginPath      = "/login"
	DashboardPath  = "/dashboard"
	AdminHomePath  = "/admin"
	SellerHomePath = "/vendedor"
	ClientHomePath = "/cliente"
)

// RoleHome maps a role to its landing route. Unknown or unrecognised roles
// land on the generic dashboard.
func RoleHome(role domain.Role) string {
	switch role {
	case domain.RoleAdmin:
		return AdminHomePath
	case domain.RoleVendedor:
		return SellerHomePath
	case domain.RoleAvulso, domain.RoleDespachante:
		return ClientHomePath
	default:
		return DashboardPath
	}
}
