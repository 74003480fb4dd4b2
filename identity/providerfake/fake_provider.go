package providerfake

import (
	"context"
	"sync"

	"github.com/akriva/portal/identity"
)

var _ identity.Provider = (*FakeProvider)(nil)

// FakeProvider is an in-memory identity.Provider for tests. Refresh tokens
// registered with SetCredentials succeed; everything else is rejected as
// unauthorized unless FailWith overrides the outcome.
type FakeProvider struct {
	credentials map[string]identity.Credentials
	failure     error
	calls       []string
	lock        sync.Mutex
}

func New() *FakeProvider {
	return &FakeProvider{
		credentials: make(map[string]identity.Credentials),
	}
}

// SetCredentials registers the triple returned for a given refresh token.
func (f *FakeProvider) SetCredentials(refreshToken string, creds identity.Credentials) {
	f.lock.Lock()
	defer f.lock.Unlock()

	f.credentials[refreshToken] = creds
}

// FailWith makes every Refresh call fail with err until reset to nil.
func (f *FakeProvider) FailWith(err error) {
	f.lock.Lock()
	defer f.lock.Unlock()

	f.failure = err
}

func (f *FakeProvider) Refresh(_ context.Context, refreshToken string) (*identity.Credentials, error) {
	f.lock.Lock()
	defer f.lock.Unlock()

	f.calls = append(f.calls, refreshToken)

	if f.failure != nil {
		return nil, f.failure
	}

	creds, ok := f.credentials[refreshToken]
	if !ok {
		return nil, identity.ErrUnauthorized
	}
	return &creds, nil
}

// RefreshCalls returns the refresh tokens presented so far.
func (f *FakeProvider) RefreshCalls() []string {
	f.lock.Lock()
	defer f.lock.Unlock()

	calls := make([]string, len(f.calls))
	copy(calls, f.calls)
	return calls
}
