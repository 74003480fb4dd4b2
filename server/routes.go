package server

import "net/http"

func (s *Server) initRoutes() {
	// Auth form actions. The session middleware still runs so a signed-in
	// user hitting a form action gets a fresh session resolved.
	s.RegisterRouteHandler("POST "+RouteSignin, ChainMiddleware(s.SigninHandler(), s.StdMiddleware()...))
	s.RegisterRouteHandler("POST "+RouteSignup, ChainMiddleware(s.SignupHandler(), s.StdMiddleware()...))
	s.RegisterRouteHandler("POST "+RouteMFAVerify, ChainMiddleware(s.MFAVerifyHandler(), s.StdMiddleware()...))
	s.RegisterRouteHandler("POST "+RouteForgotPassword, ChainMiddleware(s.ForgotPasswordHandler(), s.StdMiddleware()...))
	s.RegisterRouteHandler("POST "+RouteConfirmForgotPassword, ChainMiddleware(s.ConfirmForgotPasswordHandler(), s.StdMiddleware()...))
	s.RegisterRouteHandler("POST "+RouteLogout, ChainMiddleware(s.LogoutHandler(), s.StdMiddleware()...))

	// Session-guarded routes.
	s.RegisterRouteHandler("POST "+RouteChangePassword, ChainMiddleware(s.ChangePasswordHandler(), s.SessionGuardedMiddleware()...))
	s.RegisterRouteHandler("GET "+RouteMe, ChainMiddleware(s.MeHandler(), s.SessionGuardedMiddleware()...))
	s.RegisterRouteHandler("GET "+RouteSettingsCompany, ChainMiddleware(s.CompanyHandler(), s.SessionGuardedMiddleware()...))

	// Admin-only routes.
	s.RegisterRouteHandler("PATCH "+RouteSettingsCompany, ChainMiddleware(s.UpdateCompanyHandler(), s.AdminGuardedMiddleware()...))
	s.RegisterRouteHandler("GET "+RouteSettingsTeam, ChainMiddleware(s.TeamMembersHandler(), s.AdminGuardedMiddleware()...))

	// Operational routes stay outside the session stack.
	s.RegisterRouteFunc("GET "+RouteHealthz, s.HealthzHandler())
	s.RegisterRouteHandler("GET "+RouteMetrics, s.metrics.Handler())
}

// StdMiddleware is the base stack applied to every application route.
func (s *Server) StdMiddleware(mw ...func(http.HandlerFunc) http.HandlerFunc) []func(http.HandlerFunc) http.HandlerFunc {
	chainedMiddleWare := []func(http.HandlerFunc) http.HandlerFunc{
		s.RequestIDMiddleware,
		s.LoggingMiddleware,
		s.RecoverMiddleware,
		s.MetricsMiddleware,
		s.SessionMiddleware,
	}
	chainedMiddleWare = append(chainedMiddleWare, mw...)
	return chainedMiddleWare
}

// SessionGuardedMiddleware is the base stack plus a signed-in session check.
func (s *Server) SessionGuardedMiddleware() []func(http.HandlerFunc) http.HandlerFunc {
	return s.StdMiddleware(s.RequireSession)
}

// AdminGuardedMiddleware is the base stack plus session and admin checks.
func (s *Server) AdminGuardedMiddleware() []func(http.HandlerFunc) http.HandlerFunc {
	return s.StdMiddleware(s.RequireSession, s.RequireAdmin)
}
