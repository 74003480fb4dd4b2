package server

import (
	"net/http"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/akriva/portal/apiclient"
	"github.com/akriva/portal/session"
)

// teamResponse bundles active members with outstanding invitations, the
// shape the team settings page renders.
type teamResponse struct {
	Users   []apiclient.TeamMember `json:"users"`
	Invites []apiclient.Invite     `json:"invites"`
}

// MeHandler returns the caller's backend user record.
func (s *Server) MeHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := session.FromContext(r.Context())
		user, err := s.deps.API.CurrentUser(r.Context(), sess)
		if err != nil {
			s.writeBackendError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, user)
	}
}

// CompanyHandler returns the caller's tenant record.
func (s *Server) CompanyHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := session.FromContext(r.Context())
		tenant, err := s.deps.API.Tenant(r.Context(), sess)
		if err != nil {
			s.writeBackendError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, tenant)
	}
}

// UpdateCompanyHandler patches tenant settings. Only fields present in the
// request body change; the backend leaves nil fields untouched.
func (s *Server) UpdateCompanyHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req apiclient.UpdateTenantSettingsRequest
		if err := s.decodeRequest(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		sess := session.FromContext(r.Context())
		tenant, err := s.deps.API.UpdateTenantSettings(r.Context(), sess, req)
		if err != nil {
			s.writeBackendError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, tenant)
	}
}

// TeamMembersHandler returns the tenant's members and pending invitations.
func (s *Server) TeamMembersHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := session.FromContext(r.Context())

		users, err := s.deps.API.ListUsers(r.Context(), sess)
		if err != nil {
			s.writeBackendError(w, err)
			return
		}
		invites, err := s.deps.API.ListInvites(r.Context(), sess)
		if err != nil {
			s.writeBackendError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, teamResponse{Users: users, Invites: invites})
	}
}

// HealthzHandler reports liveness.
func (s *Server) HealthzHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "app": s.config.GetAppName()})
	}
}

// writeBackendError maps backend client errors onto portal responses.
func (s *Server) writeBackendError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, apiclient.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, "backend rejected credentials")
	case errors.Is(err, apiclient.ErrForbidden):
		writeError(w, http.StatusForbidden, "backend denied access")
	case errors.Is(err, apiclient.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
	default:
		log.Error().Err(err).Msg("backend call failed")
		writeError(w, http.StatusBadGateway, "backend unavailable")
	}
}
