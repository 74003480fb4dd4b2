package apiclient_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	"github.com/akriva/portal/apiclient"
	"github.com/akriva/portal/internal/utils"
	"github.com/akriva/portal/session"
)

func testSession() *session.Session {
	return &session.Session{
		AccessToken: "access-1",
		IDToken:     "id-1",
		User: session.User{
			ID:       "user-1",
			TenantID: "tenant-1",
			Role:     session.RoleTenantAdmin,
		},
	}
}

func TestClientForwardsTokens(t *testing.T) {
	var gotAuth, gotIDToken, gotPath string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotIDToken = r.Header.Get("X-Id-Token")
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"user-1","email":"jane.doe@example.com","role":"tenant_admin","isActive":true}`))
	}))
	defer srv.Close()

	client, err := apiclient.NewClient(srv.URL)
	require.NoError(t, err)

	user, err := client.CurrentUser(context.Background(), testSession())
	require.NoError(t, err)
	require.Equal(t, "jane.doe@example.com", user.Email)
	require.Equal(t, session.RoleTenantAdmin, user.Role)
	require.Equal(t, "Bearer access-1", gotAuth)
	require.Equal(t, "id-1", gotIDToken)
	require.Equal(t, "/v1/users/me", gotPath)
}

func TestClientTenantPath(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/tenants/tenant-1", r.URL.Path)
		_, _ = w.Write([]byte(`{"id":"tenant-1","name":"Acme","slug":"acme","status":"active"}`))
	}))
	defer srv.Close()

	client, err := apiclient.NewClient(srv.URL)
	require.NoError(t, err)

	tenant, err := client.Tenant(context.Background(), testSession())
	require.NoError(t, err)
	require.Equal(t, apiclient.TenantStatusActive, tenant.Status)
}

func TestClientListUsers(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"users":[{"id":"u1","email":"a@example.com","role":"viewer","isActive":true},{"id":"u2","email":"b@example.com","role":"data_entry","isActive":false}]}`))
	}))
	defer srv.Close()

	client, err := apiclient.NewClient(srv.URL)
	require.NoError(t, err)

	users, err := client.ListUsers(context.Background(), testSession())
	require.NoError(t, err)
	require.Len(t, users, 2)
	require.Equal(t, session.RoleViewer, users[0].Role)
}

func TestClientUpdateTenantSettings(t *testing.T) {
	var gotMethod, gotPath, gotBody string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		body, _ := io.ReadAll(r.Body)
		gotBody = string(body)
		_, _ = w.Write([]byte(`{"id":"tenant-1","name":"Acme Renamed","slug":"acme","status":"active","baseYear":2024}`))
	}))
	defer srv.Close()

	client, err := apiclient.NewClient(srv.URL)
	require.NoError(t, err)

	tenant, err := client.UpdateTenantSettings(context.Background(), testSession(), apiclient.UpdateTenantSettingsRequest{
		Name:     utils.Ptr("Acme Renamed"),
		BaseYear: utils.Ptr(2024),
	})
	require.NoError(t, err)
	require.Equal(t, "Acme Renamed", tenant.Name)
	require.Equal(t, 2024, utils.Value(tenant.BaseYear))

	require.Equal(t, http.MethodPatch, gotMethod)
	require.Equal(t, "/v1/tenants/settings", gotPath)
	// Unset optional fields stay out of the payload so the backend leaves
	// them untouched.
	require.JSONEq(t, `{"name":"Acme Renamed","baseYear":2024}`, gotBody)
}

func TestClientErrorMapping(t *testing.T) {
	cases := []struct {
		name     string
		status   int
		body     string
		sentinel error
	}{
		{"unauthorized with envelope", http.StatusUnauthorized, `{"error":"token expired","code":"UNAUTHORIZED"}`, apiclient.ErrUnauthorized},
		{"forbidden", http.StatusForbidden, `{"error":"admin required","code":"FORBIDDEN"}`, apiclient.ErrForbidden},
		{"not found without envelope", http.StatusNotFound, `gone`, apiclient.ErrNotFound},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			}))
			defer srv.Close()

			client, err := apiclient.NewClient(srv.URL)
			require.NoError(t, err)

			_, err = client.CurrentUser(context.Background(), testSession())
			require.Error(t, err)
			require.True(t, errors.Is(err, tc.sentinel), "got %v", err)
		})
	}
}

func TestClientNilSession(t *testing.T) {
	client, err := apiclient.NewClient("http://localhost:1")
	require.NoError(t, err)

	_, err = client.CurrentUser(context.Background(), nil)
	require.True(t, errors.Is(err, apiclient.ErrUnauthorized))
}

func TestNewClientRequiresBaseURL(t *testing.T) {
	_, err := apiclient.NewClient("  ")
	require.Error(t, err)
}
