package identity

import (
	"context"
	"strings"
	"time"

	autherrors "github.com/binaahub/authcore/internal/errors"
)

// Identity is the external provider's view of who just logged in: opaque
// tokens plus the provider-side id and email. The auth core only holds a
// copy for the lifetime of the session.
type Identity struct {
	ID           string
	Email        string
	AccessToken  string
	RefreshToken string
	ExpiresAt    time.Time
}

// Verifier checks an email/password pair and returns the raw identity token
// set. Implementations are selected by configuration: ProviderVerifier calls
// the hosted identity provider, LocalVerifier checks bcrypt hashes in the
// accounts store. There is exactly one Verifier per process - the legacy
// pattern of parallel login route variants picking different checks is gone.
type Verifier interface {
	Verify(ctx context.Context, email, password string) (*Identity, error)
	SignOut(ctx context.Context, accessToken string) error
}

// ValidateCredentials enforces the input constraints before any backend is
// contacted. Failures surface as ErrInvalidCredentials so that the HTTP
// boundary's generic message covers them too.
func ValidateCredentials(email, password string) error {
	email = strings.TrimSpace(email)
	if email == "" || !strings.Contains(email, "@") || !strings.Contains(email, ".") {
		return autherrors.ErrInvalidCredentials
	}
	if password == "" {
		return autherrors.ErrInvalidCredentials
	}
	return nil
}
