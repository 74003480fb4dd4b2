package session

import (
	"net/http"
	"time"

	"github.com/akriva/portal/identity"
)

// Cookie names for the credential triple.
const (
	AccessTokenCookie  = "accessToken"
	IDTokenCookie      = "idToken"
	RefreshTokenCookie = "refreshToken"
)

// refreshTokenMaxAge matches the provider's 30-day refresh token lifetime.
const refreshTokenMaxAge = int(30 * 24 * time.Hour / time.Second)

// SetCredentialCookies writes the credential triple as one batch. The access
// and id token cookies live exactly as long as the access token; the refresh
// token cookie lives 30 days. All three carry httpOnly and SameSite=Strict,
// and Secure outside dev.
func SetCredentialCookies(w http.ResponseWriter, creds *identity.Credentials, secure bool) {
	for _, cookie := range []*http.Cookie{
		{Name: AccessTokenCookie, Value: creds.AccessToken, MaxAge: creds.ExpiresIn},
		{Name: IDTokenCookie, Value: creds.IDToken, MaxAge: creds.ExpiresIn},
		{Name: RefreshTokenCookie, Value: creds.RefreshToken, MaxAge: refreshTokenMaxAge},
	} {
		cookie.Path = "/"
		cookie.HttpOnly = true
		cookie.Secure = secure
		cookie.SameSite = http.SameSiteStrictMode
		http.SetCookie(w, cookie)
	}
}

// ClearCredentialCookies deletes all three credential cookies. Clearing
// cookies that were never set is a no-op on the browser side, so this is
// safe to call unconditionally.
func ClearCredentialCookies(w http.ResponseWriter, secure bool) {
	for _, name := range []string{AccessTokenCookie, IDTokenCookie, RefreshTokenCookie} {
		http.SetCookie(w, &http.Cookie{
			Name:     name,
			Value:    "",
			Path:     "/",
			HttpOnly: true,
			Secure:   secure,
			SameSite: http.SameSiteStrictMode,
			MaxAge:   -1,
		})
	}
}

func cookieValue(r *http.Request, name string) string {
	cookie, err := r.Cookie(name)
	if err != nil {
		return ""
	}
	return cookie.Value
}
