package session_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/binaahub/authcore/accounts"
	"github.com/binaahub/authcore/identity"
	"github.com/binaahub/authcore/session"
	"github.com/stretchr/testify/require"
)

type storeConfig struct{}

func (storeConfig) GetSessionCookieName() string { return "binaahub_session" }
func (storeConfig) GetSessionSecret() string { return "test-secret" }
func (storeConfig) GetSessionTTL() time.Duration { return 7 * 24 * time.Hour }
func (storeConfig) GetEnv() string { return "DEV" }

func testIdentity() *identity.Identity {
	return &identity.Identity{
		ID:           "id-1",
		Email:        "user@user.com",
		AccessToken:  "at-1",
		RefreshToken: "rt-1",
		ExpiresAt:    time.Now().Add(time.Hour),
	}
}

func testAccount(accountType accounts.AccountType) *accounts.Account {
	return &accounts.Account{
		ID:     "acc-1",
		Email:  "user@user.com",
		Type:   accountType,
		Name:   "Test User",
		Status: accounts.StatusActive,
	}
}

// requestWithCookies copies every cookie set on the recorder onto a request,
// the way a browser would after the login response.
func requestWithCookies(t *testing.T, rec *httptest.ResponseRecorder) *http.Request {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, cookie := range rec.Result().Cookies() {
		if cookie.MaxAge >= 0 {
			req.AddCookie(cookie)
		}
	}
	return req
}

func TestSessionRoundTrip(t *testing.T) {
	store := session.NewStore(storeConfig{})

	rec := httptest.NewRecorder()
	created, err := store.Create(rec, testIdentity(), testAccount(accounts.TypeStore))
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)

	got := store.Read(requestWithCookies(t, rec))
	require.NotNil(t, got)
	require.Equal(t, "user@user.com", got.Email)
	require.Equal(t, accounts.TypeStore, got.AccountType)
	require.Equal(t, "at-1", got.AccessToken)
	require.Equal(t, "rt-1", got.RefreshToken)
	require.Equal(t, created.ID, got.ID)
}

func TestReadMissingCookie(t *testing.T) {
	store := session.NewStore(storeConfig{})

	require.Nil(t, store.Read(httptest.NewRequest(http.MethodGet, "/", nil)))
}

func TestReadExpiredSession(t *testing.T) {
	now := time.Now()
	store := session.NewStore(storeConfig{},
		session.WithNowTime(func() time.Time { return now }))

	rec := httptest.NewRecorder()
	_, err := store.Create(rec, testIdentity(), testAccount(accounts.TypeUser))
	require.NoError(t, err)
	req := requestWithCookies(t, rec)

	// Still readable just inside the TTL
	now = now.Add(7*24*time.Hour - time.Minute)
	require.NotNil(t, store.Read(req))

	// Past expiry it silently reads as "not authenticated"
	now = now.Add(2 * time.Minute)
	require.Nil(t, store.Read(req))
}

func TestReadTamperedCookie(t *testing.T) {
	store := session.NewStore(storeConfig{})

	rec := httptest.NewRecorder()
	_, err := store.Create(rec, testIdentity(), testAccount(accounts.TypeUser))
	require.NoError(t, err)

	cookie := rec.Result().Cookies()[0]
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: cookie.Name, Value: cookie.Value + "x"})

	require.Nil(t, store.Read(req))
}

func TestReadGarbageCookie(t *testing.T) {
	store := session.NewStore(storeConfig{})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "binaahub_session", Value: "not-a-jwt"})

	require.Nil(t, store.Read(req))
}

func TestDestroyClearsCanonicalAndLegacyCookies(t *testing.T) {
	store := session.NewStore(storeConfig{})

	rec := httptest.NewRecorder()
	store.Destroy(rec)

	cleared := map[string]bool{}
	for _, cookie := range rec.Result().Cookies() {
		require.Negative(t, cookie.MaxAge, "cookie %s should be expired", cookie.Name)
		cleared[cookie.Name] = true
	}

	for _, name := range []string{"binaahub_session", "temp_auth_user", "auth_session_active", "sb-access-token", "sb-refresh-token"} {
		require.True(t, cleared[name], "expected %s to be cleared", name)
	}
}

func TestRefreshSlidesExpiry(t *testing.T) {
	now := time.Now()
	store := session.NewStore(storeConfig{},
		session.WithNowTime(func() time.Time { return now }))

	rec := httptest.NewRecorder()
	created, err := store.Create(rec, testIdentity(), testAccount(accounts.TypeUser))
	require.NoError(t, err)

	now = now.Add(3 * 24 * time.Hour)
	refreshRec := httptest.NewRecorder()
	require.NoError(t, store.Refresh(refreshRec, created))

	got := store.Read(requestWithCookies(t, refreshRec))
	require.NotNil(t, got)
	require.Equal(t, now.Add(7*24*time.Hour).Unix(), got.ExpiresAt.Unix())
}
