package identity

import (
	"context"
	"time"

	"github.com/binaahub/authcore/accounts"
	autherrors "github.com/binaahub/authcore/internal/errors"
	"github.com/google/uuid"
)

const localTokenTTL = time.Hour

var _ Verifier = (*LocalVerifier)(nil)

// LocalVerifier checks credentials against bcrypt hashes in the accounts
// store. It is the explicit development strategy, selected by AUTH_STRATEGY;
// it never acts as a runtime fallback for the provider, and every account
// still requires its own real password.
type LocalVerifier struct {
	repo    accounts.Repo
	nowTime func() time.Time
}

// LocalVerifierOption defines a function type to modify the LocalVerifier instance.
type LocalVerifierOption func(*LocalVerifier)

// WithNowTime sets the now time function (primarily for testing)
func WithNowTime(nowFunc func() time.Time) LocalVerifierOption {
	return func(v *LocalVerifier) {
		v.nowTime = nowFunc
	}
}

func NewLocalVerifier(repo accounts.Repo, options ...LocalVerifierOption) *LocalVerifier {
	v := &LocalVerifier{
		repo:    repo,
		nowTime: time.Now,
	}
	for _, opt := range options {
		opt(v)
	}
	return v
}

func (v *LocalVerifier) Verify(ctx context.Context, email, password string) (*Identity, error) {
	account, err := v.repo.GetByEmail(ctx, accounts.NormalizeEmail(email))
	if err != nil {
		// Unknown email and wrong password are indistinguishable here, the
		// same as the hosted provider behaves.
		return nil, autherrors.ErrInvalidCredentials
	}

	if account.PasswordHash == "" || !accounts.CheckPasswordHash(password, account.PasswordHash) {
		return nil, autherrors.ErrInvalidCredentials
	}

	return &Identity{
		ID:           account.ID,
		Email:        account.Email,
		AccessToken:  uuid.New().String(),
		RefreshToken: uuid.New().String(),
		ExpiresAt:    v.nowTime().Add(localTokenTTL),
	}, nil
}

func (v *LocalVerifier) SignOut(ctx context.Context, accessToken string) error {
	return nil // local tokens are not tracked server-side
}
