package server

// Route path constants
// All application routes are defined here to ensure consistency and prevent typos.
// Landing routes for account types live in the roles package.
const (
	// Auth API routes
	RouteAPILogin   = "/api/auth/login"
	RouteAPILogout  = "/api/auth/logout"
	RouteAPISession = "/api/auth/session"

	// Health
	RouteHealth = "/healthz"
)
