// Package session owns the one canonical session representation: a signed,
// http-only cookie binding the provider identity tokens to the resolved
// account. The legacy platform carried several competing cookie shapes
// (temp_auth_user, auth_session_active, raw supabase cookies); this package
// is the single write path and single read path that replaces them all.
package session

import (
	"time"

	"github.com/binaahub/authcore/accounts"
)

// Session is the time-limited proof that an account was authenticated.
type Session struct {
	ID           string
	Email        string
	AccountType  accounts.AccountType
	AccessToken  string
	RefreshToken string
	TokenExpiry  time.Time
	IssuedAt     time.Time
	ExpiresAt    time.Time
}

// HasRole reports whether the session's account type is one of the required
// roles. An empty requirement means any authenticated account qualifies.
func (s *Session) HasRole(required ...accounts.AccountType) bool {
	if len(required) == 0 {
		return true
	}
	for _, role := range required {
		if s.AccountType == role {
			return true
		}
	}
	return false
}
