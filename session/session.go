package session

import (
	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
)

// idToken claim names, fixed by the identity provider contract. The
// custom:* claims are snake_case, not camelCase.
const (
	claimEmail      = "email"
	claimGivenName  = "given_name"
	claimFamilyName = "family_name"
	claimUserID     = "custom:user_id"
	claimTenantID   = "custom:tenant_id"
	claimTenantRole = "custom:tenant_role"
)

// User is the identity decoded from idToken claims.
type User struct {
	ID         string `json:"id"`
	Email      string `json:"email"`
	TenantID   string `json:"tenantId"`
	Role       Role   `json:"role"`
	GivenName  string `json:"givenName"`
	FamilyName string `json:"familyName"`
}

// Session is the per-request authenticated identity. It is derived from the
// credential cookies at the start of request handling and discarded at the
// end - never stored server-side. The raw tokens are retained for forwarding
// to the backend API, which verifies them and needs the tenant-scoping
// claims.
type Session struct {
	AccessToken string
	IDToken     string
	User        User
}

// New derives a Session from a raw access/id token pair. The id token's
// payload is decoded without signature verification; any missing or
// mistyped claim, or a role outside the enumeration, fails the derivation.
// Claims arrive from a trusted issuer, so a failure here is a defensive
// condition and callers treat it as "no session", never as a crash.
func New(accessToken, idToken string) (*Session, error) {
	token, _, err := jwtlib.NewParser().ParseUnverified(idToken, jwtlib.MapClaims{})
	if err != nil {
		return nil, errors.Wrap(err, "[session.New] parse id token")
	}

	claims, ok := token.Claims.(jwtlib.MapClaims)
	if !ok {
		return nil, errors.New("[session.New] id token claims are not a claim map")
	}

	user, err := userFromClaims(claims)
	if err != nil {
		return nil, errors.Wrap(err, "[session.New] id token claims")
	}

	return &Session{
		AccessToken: accessToken,
		IDToken:     idToken,
		User:        *user,
	}, nil
}

// IsAdmin is the admin gate predicate: only tenant_admin and super_admin
// sessions pass. A nil session never passes.
func (s *Session) IsAdmin() bool {
	return s != nil && s.User.Role.IsAdmin()
}

func userFromClaims(claims jwtlib.MapClaims) (*User, error) {
	id, err := stringClaim(claims, claimUserID)
	if err != nil {
		return nil, err
	}
	email, err := stringClaim(claims, claimEmail)
	if err != nil {
		return nil, err
	}
	tenantID, err := stringClaim(claims, claimTenantID)
	if err != nil {
		return nil, err
	}
	givenName, err := stringClaim(claims, claimGivenName)
	if err != nil {
		return nil, err
	}
	familyName, err := stringClaim(claims, claimFamilyName)
	if err != nil {
		return nil, err
	}

	rawRole, err := stringClaim(claims, claimTenantRole)
	if err != nil {
		return nil, err
	}
	role, err := ParseRole(rawRole)
	if err != nil {
		return nil, err
	}

	return &User{
		ID:         id,
		Email:      email,
		TenantID:   tenantID,
		Role:       role,
		GivenName:  givenName,
		FamilyName: familyName,
	}, nil
}

func stringClaim(claims jwtlib.MapClaims, name string) (string, error) {
	value, ok := claims[name].(string)
	if !ok || value == "" {
		return "", errors.Errorf("missing or invalid claim %q", name)
	}
	return value, nil
}
