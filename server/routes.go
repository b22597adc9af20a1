package server

import (
	"github.com/binaahub/authcore/accounts"
	"github.com/binaahub/authcore/roles"
)

func (s *Server) initRoutes() {
	// AUTH API
	s.RegisterRouteHandler("POST "+RouteAPILogin, ChainMiddleware(s.LoginHandler(), s.APIMiddleware()...))
	s.RegisterRouteHandler("POST "+RouteAPILogout, ChainMiddleware(s.LogoutHandler(), s.APIMiddleware()...))
	s.RegisterRouteHandler("GET "+RouteAPISession, ChainMiddleware(s.SessionHandler(), s.APIMiddleware()...))

	// Login page (redirect target for unauthenticated guarded views)
	s.RegisterRouteHandler("GET "+roles.RouteLogin, ChainMiddleware(s.LoginPageHandler(), s.ViewMiddleware()...))

	// Guarded dashboards. The guard enforces the session; role restrictions
	// mirror who each dashboard is for.
	s.RegisterRouteHandler("GET "+roles.RouteStoreDashboard,
		ChainMiddleware(s.DashboardHandler("store dashboard"), s.ViewMiddleware(s.RequireSession(accounts.TypeStore))...))
	s.RegisterRouteHandler("GET "+roles.RouteUserDashboard,
		ChainMiddleware(s.DashboardHandler("user dashboard"), s.ViewMiddleware(s.RequireSession(accounts.TypeUser, accounts.TypeClient))...))
	s.RegisterRouteHandler("GET "+roles.RouteConstructionData,
		ChainMiddleware(s.DashboardHandler("construction data"), s.ViewMiddleware(s.RequireSession(accounts.TypeEngineer, accounts.TypeConsultant))...))
	s.RegisterRouteHandler("GET "+roles.RouteAdminDashboard,
		ChainMiddleware(s.DashboardHandler("admin dashboard"), s.ViewMiddleware(s.RequireSession(accounts.TypeAdmin))...))

	s.RegisterRouteFunc("GET "+RouteHealth, s.HealthHandler())
}
