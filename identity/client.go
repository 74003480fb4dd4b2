package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/pkg/errors"
)

const defaultRequestTimeout = 15 * time.Second

// Client talks to the identity provider's REST endpoints. Timeout policy
// belongs to the injected http.Client; Client itself never retries - a
// failed call is reported once and the caller decides what degrades.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// ClientOption defines a function type to modify the Client instance.
type ClientOption func(*Client)

// WithHTTPClient replaces the default HTTP client (primarily for testing
// and for callers that need their own timeout or transport).
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// NewClient initializes a Client for the identity provider at baseURL.
func NewClient(baseURL string, options ...ClientOption) (*Client, error) {
	if strings.TrimSpace(baseURL) == "" {
		return nil, errors.New("[identity.NewClient] baseURL is required")
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

var _ Provider = (*Client)(nil)

// Signup registers a new tenant and its first user.
func (c *Client) Signup(ctx context.Context, req SignupRequest) (*SignupResult, error) {
	var result SignupResult
	if err := c.post(ctx, "/auth/signup", "", req, &result); err != nil {
		return nil, errors.Wrap(err, "[Client.Signup]")
	}
	return &result, nil
}

// Signin exchanges email/password for tokens, or an MFA challenge when the
// account has a second factor configured.
func (c *Client) Signin(ctx context.Context, req SigninRequest) (*SigninResult, error) {
	var resp signinResponse
	if err := c.post(ctx, "/auth/signin", "", req, &resp); err != nil {
		return nil, errors.Wrap(err, "[Client.Signin]")
	}

	switch resp.Type {
	case "tokens":
		if resp.Tokens == nil {
			return nil, errors.New("[Client.Signin] response type tokens without tokens payload")
		}
		return &SigninResult{Tokens: resp.Tokens}, nil
	case "mfa_challenge":
		if resp.Challenge == nil {
			return nil, errors.New("[Client.Signin] response type mfa_challenge without challenge payload")
		}
		return &SigninResult{Challenge: resp.Challenge}, nil
	}
	return nil, errors.Errorf("[Client.Signin] unexpected response type %q", resp.Type)
}

// VerifyMFA completes a signin challenge and returns the credential triple.
func (c *Client) VerifyMFA(ctx context.Context, req MFAVerifyRequest) (*Credentials, error) {
	var creds Credentials
	if err := c.post(ctx, "/auth/mfa/verify", "", req, &creds); err != nil {
		return nil, errors.Wrap(err, "[Client.VerifyMFA]")
	}
	return &creds, nil
}

// Refresh exchanges an opaque refresh token for a new credential triple.
// The token is forwarded verbatim; it is never inspected locally.
func (c *Client) Refresh(ctx context.Context, refreshToken string) (*Credentials, error) {
	var creds Credentials
	if err := c.post(ctx, "/auth/refresh", "", RefreshRequest{RefreshToken: refreshToken}, &creds); err != nil {
		return nil, errors.Wrap(err, "[Client.Refresh]")
	}
	return &creds, nil
}

// ForgotPassword starts the password reset flow.
func (c *Client) ForgotPassword(ctx context.Context, req ForgotPasswordRequest) (*MessageResponse, error) {
	var msg MessageResponse
	if err := c.post(ctx, "/auth/forgot-password", "", req, &msg); err != nil {
		return nil, errors.Wrap(err, "[Client.ForgotPassword]")
	}
	return &msg, nil
}

// ConfirmForgotPassword completes the password reset flow.
func (c *Client) ConfirmForgotPassword(ctx context.Context, req ConfirmForgotPasswordRequest) (*MessageResponse, error) {
	var msg MessageResponse
	if err := c.post(ctx, "/auth/confirm-forgot-password", "", req, &msg); err != nil {
		return nil, errors.Wrap(err, "[Client.ConfirmForgotPassword]")
	}
	return &msg, nil
}

// ChangePassword changes the caller's password. Requires a live access token.
func (c *Client) ChangePassword(ctx context.Context, accessToken string, req ChangePasswordRequest) (*MessageResponse, error) {
	var msg MessageResponse
	if err := c.post(ctx, "/auth/change-password", accessToken, req, &msg); err != nil {
		return nil, errors.Wrap(err, "[Client.ChangePassword]")
	}
	return &msg, nil
}

func (c *Client) post(ctx context.Context, path, bearer string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return errors.Wrap(err, "marshal request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return errors.Wrap(err, "build request")
	}
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
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

// decodeError maps the provider's error envelope onto the package's error
// taxonomy. Anything the provider classifies as an auth rejection becomes
// ErrUnauthorized so callers can distinguish it from transport faults.
func decodeError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))

	var envelope apiError
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Code != "" {
		if resp.StatusCode == http.StatusUnauthorized || envelope.Code == "UNAUTHORIZED" {
			return errors.Wrap(ErrUnauthorized, envelope.Message)
		}
		return errors.Errorf("%s (%s)", envelope.Message, envelope.Code)
	}

	if resp.StatusCode == http.StatusUnauthorized {
		return ErrUnauthorized
	}
	return errors.Errorf("unexpected status %d", resp.StatusCode)
}
