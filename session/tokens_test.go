package session_test

import (
	"encoding/base64"
	"testing"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

// signToken builds a structurally valid JWT. The signing key is irrelevant -
// the session package never verifies signatures.
func signToken(t *testing.T, claims jwtlib.MapClaims) string {
	t.Helper()

	token, err := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims).SignedString([]byte("test-signing-key"))
	require.NoError(t, err)
	return token
}

func accessToken(t *testing.T, exp time.Time) string {
	t.Helper()

	return signToken(t, jwtlib.MapClaims{
		"sub": "b2f7e9b0-0000-4000-8000-000000000001",
		"exp": exp.Unix(),
	})
}

// idTokenClaims returns a complete, valid identity claim set. Tests mutate
// or delete entries to build malformed variants.
func idTokenClaims() jwtlib.MapClaims {
	return jwtlib.MapClaims{
		"sub":                "b2f7e9b0-0000-4000-8000-000000000001",
		"email":              "jane.doe@example.com",
		"given_name":         "Jane",
		"family_name":        "Doe",
		"custom:user_id":     "7f0a1a1e-0000-4000-8000-000000000002",
		"custom:tenant_id":   "c3d4e5f6-0000-4000-8000-000000000003",
		"custom:tenant_role": "data_approver",
		"exp":                time.Now().Add(time.Hour).Unix(),
	}
}

// rawSegments joins pre-encoded segments into a token-shaped string.
func rawSegments(segments ...string) string {
	token := ""
	for i, seg := range segments {
		if i > 0 {
			token += "."
		}
		token += seg
	}
	return token
}

func b64url(payload string) string {
	return base64.RawURLEncoding.EncodeToString([]byte(payload))
}
