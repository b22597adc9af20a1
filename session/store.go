package session

import (
	"net/http"
	"time"

	"github.com/binaahub/authcore/accounts"
	"github.com/binaahub/authcore/identity"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// legacyCookieNames are the competing session cookies the previous platform
// wrote. They are cleared on logout during the migration window and are
// never read.
var legacyCookieNames = []string{
	"temp_auth_user",
	"auth_session_active",
	"sb-access-token",
	"sb-refresh-token",
}

// StoreConfig is the slice of configuration the store needs.
type StoreConfig interface {
	GetSessionCookieName() string
	GetSessionSecret() string
	GetSessionTTL() time.Duration
	GetEnv() string
}

// Store serializes sessions into one signed HS256 JWT cookie and back.
// Create is the only write path, Read the only read path; both share the
// claims schema below.
type Store struct {
	cookieName string
	secret     []byte
	ttl        time.Duration
	secure     bool
	nowTime    func() time.Time
}

// StoreOption defines a function type to modify the Store instance.
type StoreOption func(*Store)

// WithNowTime sets the now time function (primarily for testing)
func WithNowTime(nowFunc func() time.Time) StoreOption {
	return func(s *Store) {
		s.nowTime = nowFunc
	}
}

func NewStore(cfg StoreConfig, options ...StoreOption) *Store {
	s := &Store{
		cookieName: cfg.GetSessionCookieName(),
		secret:     []byte(cfg.GetSessionSecret()),
		ttl:        cfg.GetSessionTTL(),
		secure:     cfg.GetEnv() != "DEV",
		nowTime:    time.Now,
	}
	for _, opt := range options {
		opt(s)
	}
	return s
}

type sessionClaims struct {
	jwt.RegisteredClaims
	Email        string `json:"email"`
	AccountType  string `json:"act"`
	AccessToken  string `json:"pat"`  // provider access token
	RefreshToken string `json:"prt"`  // provider refresh token
	TokenExpiry  int64  `json:"pexp"` // provider token expiry, unix seconds
}

// Create issues a session for a verified identity and its resolved account,
// and sets the cookie on the response. The account type stored here was
// freshly read from the accounts table by the caller.
func (s *Store) Create(w http.ResponseWriter, id *identity.Identity, account *accounts.Account) (*Session, error) {
	now := s.nowTime()
	sess := &Session{
		ID:           uuid.New().String(),
		Email:        account.Email,
		AccountType:  account.Type,
		AccessToken:  id.AccessToken,
		RefreshToken: id.RefreshToken,
		TokenExpiry:  id.ExpiresAt,
		IssuedAt:     now,
		ExpiresAt:    now.Add(s.ttl),
	}
	if err := s.write(w, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

// Read deserializes and validates the session cookie. It returns nil on any
// missing, malformed, tampered, or expired input - never an error, so
// callers treat nil purely as "not authenticated".
func (s *Store) Read(r *http.Request) *Session {
	cookie, err := r.Cookie(s.cookieName)
	if err != nil || cookie.Value == "" {
		return nil
	}

	claims := &sessionClaims{}
	token, err := jwt.ParseWithClaims(cookie.Value, claims,
		func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.New("unexpected signing method")
			}
			return s.secret, nil
		},
		jwt.WithTimeFunc(s.nowTime),
	)
	if err != nil || !token.Valid {
		return nil
	}

	return &Session{
		ID:           claims.ID,
		Email:        claims.Subject,
		AccountType:  accounts.AccountType(claims.AccountType),
		AccessToken:  claims.AccessToken,
		RefreshToken: claims.RefreshToken,
		TokenExpiry:  time.Unix(claims.TokenExpiry, 0),
		IssuedAt:     claims.IssuedAt.Time,
		ExpiresAt:    claims.ExpiresAt.Time,
	}
}

// Refresh re-issues the cookie with a fresh expiry, sliding the session
// lifetime on each verified access.
func (s *Store) Refresh(w http.ResponseWriter, sess *Session) error {
	now := s.nowTime()
	sess.IssuedAt = now
	sess.ExpiresAt = now.Add(s.ttl)
	return s.write(w, sess)
}

// Destroy clears the canonical cookie plus any legacy cookie names.
// Idempotent: destroying an absent session is still a success.
func (s *Store) Destroy(w http.ResponseWriter) {
	for _, name := range append([]string{s.cookieName}, legacyCookieNames...) {
		http.SetCookie(w, &http.Cookie{
			Name:     name,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			HttpOnly: true,
			Secure:   s.secure,
			SameSite: http.SameSiteLaxMode,
		})
	}
}

func (s *Store) write(w http.ResponseWriter, sess *Session) error {
	claims := &sessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        sess.ID,
			Subject:   sess.Email,
			IssuedAt:  jwt.NewNumericDate(sess.IssuedAt),
			ExpiresAt: jwt.NewNumericDate(sess.ExpiresAt),
		},
		Email:        sess.Email,
		AccountType:  string(sess.AccountType),
		AccessToken:  sess.AccessToken,
		RefreshToken: sess.RefreshToken,
		TokenExpiry:  sess.TokenExpiry.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return errors.Wrap(err, "[Store.write] sign session")
	}

	http.SetCookie(w, &http.Cookie{
		Name:     s.cookieName,
		Value:    signed,
		Path:     "/",
		MaxAge:   int(s.ttl.Seconds()),
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}
