// Package apiclient is a thin pass-through client for the emissions
// backend. It forwards the caller's tokens verbatim; all verification and
// authorization happens server-side.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/akriva/portal/session"
)

const defaultRequestTimeout = 30 * time.Second

// idTokenHeader carries the raw id token; the backend reads its claims for
// tenant scoping after verifying the signature.
const idTokenHeader = "X-Id-Token"

var (
	ErrUnauthorized = errors.New("backend rejected credentials")
	ErrForbidden    = errors.New("backend denied access")
	ErrNotFound     = errors.New("not found")
)

// Client calls the emissions backend on behalf of an authenticated session.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// ClientOption defines a function type to modify the Client instance.
type ClientOption func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// NewClient initializes a Client for the backend at baseURL.
func NewClient(baseURL string, options ...ClientOption) (*Client, error) {
	if strings.TrimSpace(baseURL) == "" {
		return nil, errors.New("[apiclient.NewClient] baseURL is required")
	}

	client := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: defaultRequestTimeout},
	}

	for _, opt := range options {
		opt(client)
	}

	return client, nil
}

// CurrentUser fetches the caller's own user record.
func (c *Client) CurrentUser(ctx context.Context, sess *session.Session) (*CurrentUser, error) {
	var user CurrentUser
	if err := c.do(ctx, http.MethodGet, "/v1/users/me", sess, nil, &user); err != nil {
		return nil, errors.Wrap(err, "[Client.CurrentUser]")
	}
	return &user, nil
}

// Tenant fetches the caller's tenant record.
func (c *Client) Tenant(ctx context.Context, sess *session.Session) (*Tenant, error) {
	var tenant Tenant
	if err := c.do(ctx, http.MethodGet, "/v1/tenants/"+sess.User.TenantID, sess, nil, &tenant); err != nil {
		return nil, errors.Wrap(err, "[Client.Tenant]")
	}
	return &tenant, nil
}

// UpdateTenantSettings patches tenant settings; nil fields stay untouched.
func (c *Client) UpdateTenantSettings(ctx context.Context, sess *session.Session, req UpdateTenantSettingsRequest) (*Tenant, error) {
	var tenant Tenant
	if err := c.do(ctx, http.MethodPatch, "/v1/tenants/settings", sess, req, &tenant); err != nil {
		return nil, errors.Wrap(err, "[Client.UpdateTenantSettings]")
	}
	return &tenant, nil
}

// ListUsers fetches the tenant's team members.
func (c *Client) ListUsers(ctx context.Context, sess *session.Session) ([]TeamMember, error) {
	var resp userListResponse
	if err := c.do(ctx, http.MethodGet, "/v1/users", sess, nil, &resp); err != nil {
		return nil, errors.Wrap(err, "[Client.ListUsers]")
	}
	return resp.Users, nil
}

// ListInvites fetches the tenant's outstanding invitations.
func (c *Client) ListInvites(ctx context.Context, sess *session.Session) ([]Invite, error) {
	var resp inviteListResponse
	if err := c.do(ctx, http.MethodGet, "/v1/users/invites", sess, nil, &resp); err != nil {
		return nil, errors.Wrap(err, "[Client.ListInvites]")
	}
	return resp.Invites, nil
}

func (c *Client) do(ctx context.Context, method, path string, sess *session.Session, body, out any) error {
	if sess == nil {
		return ErrUnauthorized
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return errors.Wrap(err, "marshal request")
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return errors.Wrap(err, "build request")
	}
	req.Header.Set("Authorization", "Bearer "+sess.AccessToken)
	req.Header.Set(idTokenHeader, sess.IDToken)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.Wrap(err, "request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return decodeError(resp)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.Wrap(err, "decode response")
	}
	return nil
}

func decodeError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))

	var sentinel error
	switch resp.StatusCode {
	case http.StatusUnauthorized:
		sentinel = ErrUnauthorized
	case http.StatusForbidden:
		sentinel = ErrForbidden
	case http.StatusNotFound:
		sentinel = ErrNotFound
	}

	var envelope apiError
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Code != "" {
		if sentinel != nil {
			return errors.Wrapf(sentinel, "%s (%s)", envelope.Message, envelope.Code)
		}
		return errors.Errorf("%s (%s)", envelope.Message, envelope.Code)
	}

	if sentinel != nil {
		return sentinel
	}
	return errors.Errorf("unexpected status %d", resp.StatusCode)
}
