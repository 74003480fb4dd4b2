package identity

import "context"

// Credentials is the credential triple issued by the identity provider,
// together with the advertised access token lifetime.
// AccessToken and IDToken are JWTs and always issued as a pair; RefreshToken
// is an opaque string that is only ever forwarded back to the provider.
type Credentials struct {
	AccessToken  string `json:"accessToken"`
	IDToken      string `json:"idToken"`
	RefreshToken string `json:"refreshToken"`
	ExpiresIn    int    `json:"expiresIn"` // Seconds until the access token expires (typically 3600)
}

// Provider is the capability the session resolver consumes: exchange a
// refresh token for a fresh credential triple. Implementations signal a
// rejected/revoked refresh token with ErrUnauthorized; any other error is
// treated as a transport fault.
type Provider interface {
	Refresh(ctx context.Context, refreshToken string) (*Credentials, error)
}
