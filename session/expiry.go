package session

import (
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
)

// expiryBuffer is subtracted from the exp claim when deciding freshness, so
// a token deemed valid at the start of request handling stays valid for the
// downstream API calls made with it during the same request.
const expiryBuffer = 60 * time.Second

// TokenExpired reports whether a raw access token should be treated as
// unusable at the given time. The payload is decoded without signature
// verification - this is a local, advisory freshness check to avoid firing
// a doomed request; the backend verifies the signature on every call.
//
// Structurally malformed tokens and tokens without an exp claim count as
// expired, failing safe toward re-authentication.
func TokenExpired(rawToken string, now time.Time) bool {
	token, _, err := jwtlib.NewParser().ParseUnverified(rawToken, jwtlib.MapClaims{})
	if err != nil {
		return true
	}

	exp, err := token.Claims.GetExpirationTime()
	if err != nil || exp == nil {
		return true
	}

	// Expired when now >= exp - buffer.
	return !now.Add(expiryBuffer).Before(exp.Time)
}
