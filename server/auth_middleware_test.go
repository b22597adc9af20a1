package server_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/binaahub/authcore/accounts"
	fakeverifier "github.com/binaahub/authcore/identity/verifierfake"
	"github.com/stretchr/testify/require"
)

func loggedInCookie(t *testing.T, f *fixture, email string, accountType accounts.AccountType) *http.Cookie {
	t.Helper()
	f.seedAccount(t, email, accountType, accounts.StatusActive)
	rec := f.postLogin(t, email, "123456")
	require.Equal(t, http.StatusOK, rec.Code)
	cookie := sessionCookie(t, rec)
	require.NotNil(t, cookie)
	return cookie
}

func TestGuardRedirectsUnauthenticated(t *testing.T) {
	f := newFixture(t, testConfig{})

	req := httptest.NewRequest(http.MethodGet, "/store/dashboard", nil)
	rec := httptest.NewRecorder()
	f.server.ServeHTTP(rec, req)

	require.Equal(t, http.StatusSeeOther, rec.Code)
	require.Equal(t, "/login?next=%2Fstore%2Fdashboard", rec.Header().Get("Location"))
}

func TestGuardRendersForbiddenWithoutRedirect(t *testing.T) {
	f := newFixture(t, testConfig{},
		fakeverifier.Result{Identity: verifiedIdentity("user@user.com")})
	cookie := loggedInCookie(t, f, "user@user.com", accounts.TypeUser)

	req := httptest.NewRequest(http.MethodGet, "/admin/dashboard", nil)
	req.AddCookie(cookie)
	rec := httptest.NewRecorder()
	f.server.ServeHTTP(rec, req)

	require.Equal(t, http.StatusForbidden, rec.Code)
	require.Empty(t, rec.Header().Get("Location"), "forbidden must not redirect")
	require.Contains(t, rec.Body.String(), "Access Denied")
	require.Contains(t, rec.Body.String(), "admin")
}

func TestGuardAllowsMatchingRole(t *testing.T) {
	f := newFixture(t, testConfig{},
		fakeverifier.Result{Identity: verifiedIdentity("store@user.com")})
	cookie := loggedInCookie(t, f, "store@user.com", accounts.TypeStore)

	req := httptest.NewRequest(http.MethodGet, "/store/dashboard", nil)
	req.AddCookie(cookie)
	rec := httptest.NewRecorder()
	f.server.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "store@user.com")
}

func TestGuardSharedDashboardAcceptsBothRoles(t *testing.T) {
	for _, accountType := range []accounts.AccountType{accounts.TypeEngineer, accounts.TypeConsultant} {
		t.Run(string(accountType), func(t *testing.T) {
			email := string(accountType) + "@user.com"
			f := newFixture(t, testConfig{},
				fakeverifier.Result{Identity: verifiedIdentity(email)})
			cookie := loggedInCookie(t, f, email, accountType)

			req := httptest.NewRequest(http.MethodGet, "/dashboard/construction-data", nil)
			req.AddCookie(cookie)
			rec := httptest.NewRecorder()
			f.server.ServeHTTP(rec, req)

			require.Equal(t, http.StatusOK, rec.Code)
		})
	}
}

func TestGuardRejectsExpiredCookieAsUnauthenticated(t *testing.T) {
	f := newFixture(t, testConfig{})

	req := httptest.NewRequest(http.MethodGet, "/user/dashboard", nil)
	req.AddCookie(&http.Cookie{Name: "binaahub_session", Value: "expired-or-garbage"})
	rec := httptest.NewRecorder()
	f.server.ServeHTTP(rec, req)

	require.Equal(t, http.StatusSeeOther, rec.Code)
	require.True(t, strings.HasPrefix(rec.Header().Get("Location"), "/login?next="))
}

func TestLoginPagePreservesNext(t *testing.T) {
	f := newFixture(t, testConfig{})

	req := httptest.NewRequest(http.MethodGet, "/login?next=%2Fadmin%2Fdashboard", nil)
	rec := httptest.NewRecorder()
	f.server.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "/admin/dashboard")
}
