package server

// Route paths.
const (
	RouteSignin                = "/auth/signin"
	RouteSignup                = "/auth/signup"
	RouteLogout                = "/auth/logout"
	RouteMFAVerify             = "/auth/mfa/verify"
	RouteForgotPassword        = "/auth/forgot-password"
	RouteConfirmForgotPassword = "/auth/confirm-forgot-password"
	RouteChangePassword        = "/auth/change-password"

	RouteMe              = "/api/me"
	RouteSettingsCompany = "/api/settings/company"
	RouteSettingsTeam    = "/api/settings/team-members"

	RouteHealthz = "/healthz"
	RouteMetrics = "/metrics"
)
