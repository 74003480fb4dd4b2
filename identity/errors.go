package identity

import "errors"

var (
	// ErrUnauthorized means the provider rejected the presented credential:
	// an expired or revoked refresh token, a wrong password, or a failed MFA
	// code. It is an expected, user-recoverable condition.
	ErrUnauthorized = errors.New("unauthorized")
)
