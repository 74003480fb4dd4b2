package session

import (
	"context"
	"net/http"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/akriva/portal/identity"
)

// Refresh outcomes reported to the observer hook. Malformed means the
// provider call itself succeeded but the new id token's claims could not be
// derived into a session.
const (
	RefreshOutcomeOK           = "ok"
	RefreshOutcomeUnauthorized = "unauthorized"
	RefreshOutcomeError        = "error"
	RefreshOutcomeMalformed    = "malformed"
)

// Resolver decides the caller's authentication state from the credential
// cookies on each inbound request. It holds no cross-request state; each
// request is resolved independently, and two concurrent requests carrying
// the same expired access token may both invoke the refresh protocol -
// refresh calls are not coalesced.
type Resolver struct {
	provider      identity.Provider
	secureCookies bool
	nowTime       func() time.Time // nowTime function (injectable for testing)
	observe       func(outcome string)
}

// ResolverOption defines a function type to modify the Resolver instance.
type ResolverOption func(*Resolver)

// WithNowTime sets the now time function (primarily for testing)
func WithNowTime(nowFunc func() time.Time) ResolverOption {
	return func(r *Resolver) {
		r.nowTime = nowFunc
	}
}

// WithSecureCookies toggles the Secure flag on credential cookies. Off in
// dev, on everywhere else.
func WithSecureCookies(secure bool) ResolverOption {
	return func(r *Resolver) {
		r.secureCookies = secure
	}
}

// WithRefreshObserver registers a hook invoked once per refresh attempt
// with its outcome. Used to feed metrics; observation never changes the
// resolved result.
func WithRefreshObserver(observe func(outcome string)) ResolverOption {
	return func(r *Resolver) {
		r.observe = observe
	}
}

// NewResolver initializes a Resolver with the required identity provider.
// Optional configuration can be provided via options.
func NewResolver(provider identity.Provider, options ...ResolverOption) (*Resolver, error) {
	if provider == nil {
		return nil, errors.New("[NewResolver] identity provider is required")
	}

	resolver := &Resolver{
		provider: provider,
		nowTime:  time.Now,
	}

	for _, opt := range options {
		opt(resolver)
	}

	return resolver, nil
}

// Resolve produces the Session for an inbound request, or nil when the
// caller is unauthenticated. Exactly one of three branches runs:
//
//  1. Fast path: both tokens present and the access token fresh - derive
//     the Session locally, no network call, no cookie writes.
//  2. Refresh path: a refresh token is present - one refresh call. Success
//     writes all three cookies as a batch before the Session is returned;
//     failure clears all three and resolves unauthenticated.
//  3. No credentials: nil, with zero network calls and zero cookie writes.
//
// Resolve never returns an error: an authentication hiccup must not break
// otherwise-public or gracefully-degradable pages, so every failure path
// degrades to nil.
func (rs *Resolver) Resolve(ctx context.Context, w http.ResponseWriter, r *http.Request) *Session {
	accessToken := cookieValue(r, AccessTokenCookie)
	idToken := cookieValue(r, IDTokenCookie)
	refreshToken := cookieValue(r, RefreshTokenCookie)

	if accessToken != "" && idToken != "" && !TokenExpired(accessToken, rs.nowTime()) {
		sess, err := New(accessToken, idToken)
		if err != nil {
			log.Warn().Err(err).Msg("session: id token carries malformed identity claims")
			return nil
		}
		return sess
	}

	if refreshToken != "" {
		return rs.refresh(ctx, w, refreshToken)
	}

	return nil
}

func (rs *Resolver) refresh(ctx context.Context, w http.ResponseWriter, refreshToken string) *Session {
	creds, err := rs.provider.Refresh(ctx, refreshToken)
	if err != nil {
		// Both failure kinds clear credentials and resolve unauthenticated;
		// classification only drives log severity. A rejected refresh token
		// is routine credential expiry, anything else may be infrastructure.
		if errors.Is(err, identity.ErrUnauthorized) {
			rs.observeRefresh(RefreshOutcomeUnauthorized)
			log.Info().Msg("session: refresh token rejected, treating caller as signed out")
		} else {
			rs.observeRefresh(RefreshOutcomeError)
			log.Error().Err(err).Msg("session: token refresh failed")
		}
		ClearCredentialCookies(w, rs.secureCookies)
		return nil
	}

	SetCredentialCookies(w, creds, rs.secureCookies)

	sess, err := New(creds.AccessToken, creds.IDToken)
	if err != nil {
		rs.observeRefresh(RefreshOutcomeMalformed)
		log.Error().Err(err).Msg("session: refreshed id token carries malformed identity claims")
		return nil
	}

	rs.observeRefresh(RefreshOutcomeOK)
	return sess
}

func (rs *Resolver) observeRefresh(outcome string) {
	if rs.observe != nil {
		rs.observe(outcome)
	}
}
