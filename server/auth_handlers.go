package server

import (
	"net/http"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/akriva/portal/identity"
	"github.com/akriva/portal/session"
)

// sessionUserResponse is returned by the flows that end with a signed-in
// session.
type sessionUserResponse struct {
	User session.User `json:"user"`
}

// mfaRequiredResponse tells the client to complete the second factor.
type mfaRequiredResponse struct {
	Status        string `json:"status"` // always "mfa_required"
	Session       string `json:"session"`
	ChallengeName string `json:"challengeName"`
}

// SigninHandler exchanges email/password for the credential triple. On
// success the triple is written as cookies and the derived user returned.
// Accounts with a second factor get an MFA challenge instead of tokens.
func (s *Server) SigninHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req identity.SigninRequest
		if err := s.decodeRequest(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		result, err := s.deps.Identity.Signin(r.Context(), req)
		if err != nil {
			s.writeIdentityError(w, err, "invalid email or password")
			return
		}

		if result.Challenge != nil {
			writeJSON(w, http.StatusOK, mfaRequiredResponse{
				Status:        "mfa_required",
				Session:       result.Challenge.Session,
				ChallengeName: result.Challenge.ChallengeName,
			})
			return
		}

		s.establishSession(w, result.Tokens)
	}
}

// SignupHandler registers a tenant and its first admin user, signing them in
// immediately.
func (s *Server) SignupHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req identity.SignupRequest
		if err := s.decodeRequest(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		result, err := s.deps.Identity.Signup(r.Context(), req)
		if err != nil {
			s.writeIdentityError(w, err, "signup rejected")
			return
		}

		sess, err := session.New(result.Tokens.AccessToken, result.Tokens.IDToken)
		if err != nil {
			log.Error().Err(err).Msg("signup returned tokens with unusable claims")
			writeError(w, http.StatusBadGateway, "identity provider returned an invalid response")
			return
		}

		session.SetCredentialCookies(w, &result.Tokens, s.config.SecureCookies())
		writeJSON(w, http.StatusCreated, sessionUserResponse{User: sess.User})
	}
}

// MFAVerifyHandler completes a signin challenge.
func (s *Server) MFAVerifyHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req identity.MFAVerifyRequest
		if err := s.decodeRequest(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		creds, err := s.deps.Identity.VerifyMFA(r.Context(), req)
		if err != nil {
			s.writeIdentityError(w, err, "invalid verification code")
			return
		}

		s.establishSession(w, creds)
	}
}

// LogoutHandler clears the credential triple. Local-only: the provider keeps
// its refresh token valid until it expires server-side.
func (s *Server) LogoutHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session.ClearCredentialCookies(w, s.config.SecureCookies())
		writeJSON(w, http.StatusOK, identity.MessageResponse{Message: "signed out"})
	}
}

// ForgotPasswordHandler starts the password reset flow. The response never
// reveals whether the email exists.
func (s *Server) ForgotPasswordHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req identity.ForgotPasswordRequest
		if err := s.decodeRequest(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		msg, err := s.deps.Identity.ForgotPassword(r.Context(), req)
		if err != nil {
			s.writeIdentityError(w, err, "could not start password reset")
			return
		}
		writeJSON(w, http.StatusOK, msg)
	}
}

// ConfirmForgotPasswordHandler completes the password reset flow.
func (s *Server) ConfirmForgotPasswordHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req identity.ConfirmForgotPasswordRequest
		if err := s.decodeRequest(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		msg, err := s.deps.Identity.ConfirmForgotPassword(r.Context(), req)
		if err != nil {
			s.writeIdentityError(w, err, "could not reset password")
			return
		}
		writeJSON(w, http.StatusOK, msg)
	}
}

// ChangePasswordHandler changes the signed-in user's password using their
// live access token.
func (s *Server) ChangePasswordHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req identity.ChangePasswordRequest
		if err := s.decodeRequest(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		sess := session.FromContext(r.Context())
		msg, err := s.deps.Identity.ChangePassword(r.Context(), sess.AccessToken, req)
		if err != nil {
			s.writeIdentityError(w, err, "could not change password")
			return
		}
		writeJSON(w, http.StatusOK, msg)
	}
}

// establishSession writes the credential triple as cookies and returns the
// derived user. Cookies and response body always travel together so the
// client never sees a user it cannot act as.
func (s *Server) establishSession(w http.ResponseWriter, creds *identity.Credentials) {
	sess, err := session.New(creds.AccessToken, creds.IDToken)
	if err != nil {
		log.Error().Err(err).Msg("identity provider returned tokens with unusable claims")
		writeError(w, http.StatusBadGateway, "identity provider returned an invalid response")
		return
	}

	session.SetCredentialCookies(w, creds, s.config.SecureCookies())
	writeJSON(w, http.StatusOK, sessionUserResponse{User: sess.User})
}

// writeIdentityError maps provider errors onto the portal's responses: auth
// rejections surface as 401 with the supplied message, everything else is a
// 502 that hides provider internals from the client.
func (s *Server) writeIdentityError(w http.ResponseWriter, err error, unauthorizedMessage string) {
	if errors.Is(err, identity.ErrUnauthorized) {
		writeError(w, http.StatusUnauthorized, unauthorizedMessage)
		return
	}
	log.Error().Err(err).Msg("identity provider call failed")
	writeError(w, http.StatusBadGateway, "identity provider unavailable")
}
