package identity_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/binaahub/authcore/identity"
	"github.com/binaahub/authcore/internal/config"
	autherrors "github.com/binaahub/authcore/internal/errors"
	"github.com/stretchr/testify/require"
)

type providerConfig struct {
	baseURL string
}

var _ config.ProviderConfig = providerConfig{}

func (c providerConfig) GetAuthStrategy() config.AuthStrategy { return config.StrategyProvider }
func (c providerConfig) GetProviderBaseURL() string           { return c.baseURL }
func (c providerConfig) GetProviderAPIKey() string            { return "test-key" }
func (c providerConfig) GetProviderTimeout() time.Duration    { return 2 * time.Second }

func TestProviderVerifySuccess(t *testing.T) {
	expiry := time.Now().Add(time.Hour).Unix()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/auth/sign-in", r.URL.Path)
		require.Equal(t, "test-key", r.Header.Get("X-API-Key"))

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{
			"accessToken": "at-1",
			"refreshToken": "rt-1",
			"expiresAt": %d,
			"identityId": "id-1",
			"identityEmail": "user@user.com"
		}`, expiry)
	}))
	defer srv.Close()

	verifier := identity.NewProviderVerifier(providerConfig{baseURL: srv.URL})

	id, err := verifier.Verify(context.Background(), "user@user.com", "123456")
	require.NoError(t, err)
	require.Equal(t, "id-1", id.ID)
	require.Equal(t, "user@user.com", id.Email)
	require.Equal(t, "at-1", id.AccessToken)
	require.Equal(t, "rt-1", id.RefreshToken)
	require.Equal(t, expiry, id.ExpiresAt.Unix())
}

func TestProviderVerifyStatusMapping(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		wantErr error
	}{
		{"unauthorized", http.StatusUnauthorized, autherrors.ErrInvalidCredentials},
		{"bad request", http.StatusBadRequest, autherrors.ErrInvalidCredentials},
		{"forbidden", http.StatusForbidden, autherrors.ErrInvalidCredentials},
		{"rate limited", http.StatusTooManyRequests, autherrors.ErrRateLimited},
		{"server error", http.StatusInternalServerError, autherrors.ErrProviderUnavailable},
		{"bad gateway", http.StatusBadGateway, autherrors.ErrProviderUnavailable},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
			}))
			defer srv.Close()

			verifier := identity.NewProviderVerifier(providerConfig{baseURL: srv.URL})

			_, err := verifier.Verify(context.Background(), "user@user.com", "123456")
			require.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestProviderVerifyUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	verifier := identity.NewProviderVerifier(providerConfig{baseURL: srv.URL})

	_, err := verifier.Verify(context.Background(), "user@user.com", "123456")
	require.ErrorIs(t, err, autherrors.ErrProviderUnavailable)
}

func TestProviderSignOutBestEffort(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/auth/sign-out", r.URL.Path)
		gotAuth = r.Header.Get("Authorization")
		w.WriteHeader(http.StatusInternalServerError) // failure is swallowed
	}))
	defer srv.Close()

	verifier := identity.NewProviderVerifier(providerConfig{baseURL: srv.URL})

	require.NoError(t, verifier.SignOut(context.Background(), "at-1"))
	require.Equal(t, "Bearer at-1", gotAuth)
}
