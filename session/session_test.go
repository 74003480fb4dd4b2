package session_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/akriva/portal/session"
)

func TestNewSession(t *testing.T) {
	access := accessToken(t, time.Now().Add(time.Hour))

	t.Run("derives user from complete claims", func(t *testing.T) {
		idToken := signToken(t, idTokenClaims())

		sess, err := session.New(access, idToken)
		require.NoError(t, err)
		require.Equal(t, access, sess.AccessToken)
		require.Equal(t, idToken, sess.IDToken)
		require.Equal(t, "7f0a1a1e-0000-4000-8000-000000000002", sess.User.ID)
		require.Equal(t, "jane.doe@example.com", sess.User.Email)
		require.Equal(t, "c3d4e5f6-0000-4000-8000-000000000003", sess.User.TenantID)
		require.Equal(t, session.RoleDataApprover, sess.User.Role)
		require.Equal(t, "Jane", sess.User.GivenName)
		require.Equal(t, "Doe", sess.User.FamilyName)
	})

	t.Run("fails when a required claim is missing", func(t *testing.T) {
		required := []string{"email", "given_name", "family_name", "custom:user_id", "custom:tenant_id", "custom:tenant_role"}
		for _, name := range required {
			claims := idTokenClaims()
			delete(claims, name)

			_, err := session.New(access, signToken(t, claims))
			require.Error(t, err, "claim %s", name)
		}
	})

	t.Run("fails when a required claim has the wrong type", func(t *testing.T) {
		claims := idTokenClaims()
		claims["custom:tenant_id"] = 42

		_, err := session.New(access, signToken(t, claims))
		require.Error(t, err)
	})

	t.Run("fails on a role outside the enumeration", func(t *testing.T) {
		claims := idTokenClaims()
		claims["custom:tenant_role"] = "owner"

		_, err := session.New(access, signToken(t, claims))
		require.Error(t, err)
	})

	t.Run("fails on a structurally malformed id token without panicking", func(t *testing.T) {
		for _, idToken := range []string{"", "junk", "a.b", rawSegments(b64url(`{"alg":"none"}`), b64url("not json"), "")} {
			_, err := session.New(access, idToken)
			require.Error(t, err, "token %q", idToken)
		}
	})
}

func TestSessionIsAdmin(t *testing.T) {
	access := accessToken(t, time.Now().Add(time.Hour))

	buildSession := func(role string) *session.Session {
		claims := idTokenClaims()
		claims["custom:tenant_role"] = role
		sess, err := session.New(access, signToken(t, claims))
		require.NoError(t, err)
		return sess
	}

	require.True(t, buildSession("tenant_admin").IsAdmin())
	require.True(t, buildSession("super_admin").IsAdmin())
	require.False(t, buildSession("viewer").IsAdmin())
	require.False(t, buildSession("data_entry").IsAdmin())
	require.False(t, buildSession("data_approver").IsAdmin())

	var nilSession *session.Session
	require.False(t, nilSession.IsAdmin())
}
