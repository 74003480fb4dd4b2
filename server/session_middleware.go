package server

import (
	"net/http"
	"strings"

	"github.com/akriva/portal/session"
)

// SessionMiddleware resolves the request's session once and stores the
// result (possibly nil) in the request context. Handlers read it with
// session.FromContext and never touch credential cookies themselves.
func (s *Server) SessionMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := s.resolver.Resolve(r.Context(), w, r)
		next(w, r.WithContext(session.WithSession(r.Context(), sess)))
	}
}

// RequireSession rejects anonymous requests. Browsers get a redirect to the
// sign-in page, API callers get a JSON 401.
func (s *Server) RequireSession(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if session.FromContext(r.Context()) == nil {
			if wantsJSON(r) {
				writeError(w, http.StatusUnauthorized, "authentication required")
				return
			}
			http.Redirect(w, r, RouteSignin, http.StatusSeeOther)
			return
		}
		next(w, r)
	}
}

// RequireAdmin rejects sessions below tenant admin. Chain after
// RequireSession so a session is known to be present.
func (s *Server) RequireAdmin(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := session.FromContext(r.Context())
		if !sess.IsAdmin() {
			writeError(w, http.StatusForbidden, "admin access required")
			return
		}
		next(w, r)
	}
}

// wantsJSON detects API callers. Substring matching tolerates parameters
// and multi-value headers like "application/json; charset=utf-8" or
// "application/json, text/plain".
func wantsJSON(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "application/json") ||
		strings.Contains(r.Header.Get("Content-Type"), "application/json")
}
