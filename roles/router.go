// Package roles defines the canonical landing route for every account type.
// Routing decisions are made here and nowhere else - this table replaces the
// account-type ternaries that used to be copied across the legacy platform.
package roles

import "github.com/binaahub/authcore/accounts"

// Landing and auth route constants
const (
	RouteHome             = "/"
	RouteLogin            = "/login"
	RouteStoreDashboard   = "/store/dashboard"
	RouteUserDashboard    = "/user/dashboard"
	RouteConstructionData = "/dashboard/construction-data"
	RouteAdminDashboard   = "/admin/dashboard"
)

var landingRoutes = map[accounts.AccountType]string{
	accounts.TypeStore:      RouteStoreDashboard,
	accounts.TypeUser:       RouteUserDashboard,
	accounts.TypeClient:     RouteUserDashboard,
	accounts.TypeEngineer:   RouteConstructionData,
	accounts.TypeConsultant: RouteConstructionData,
	accounts.TypeAdmin:      RouteAdminDashboard,
}

// RouteFor is total: unknown types land on the home page rather than failing
// the login, so routing can never hard-fail a successful authentication.
func RouteFor(accountType accounts.AccountType) string {
	if route, ok := landingRoutes[accountType]; ok {
		return route
	}
	return RouteHome
}
