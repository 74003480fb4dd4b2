package session

import "context"

// contextKey is unexported to avoid collisions with other packages' keys.
type contextKey struct{}

// WithSession returns a context carrying the resolved session. A nil
// session is stored as-is so FromContext stays a single lookup.
func WithSession(ctx context.Context, sess *Session) context.Context {
	return context.WithValue(ctx, contextKey{}, sess)
}

// FromContext returns the session resolved for this request, or nil when
// the caller is unauthenticated.
func FromContext(ctx context.Context) *Session {
	sess, _ := ctx.Value(contextKey{}).(*Session)
	return sess
}
