package identity_test

import (
	"context"
	"testing"
	"time"

	"github.com/binaahub/authcore/accounts"
	fakeaccountrepo "github.com/binaahub/authcore/accounts/repofake"
	"github.com/binaahub/authcore/identity"
	autherrors "github.com/binaahub/authcore/internal/errors"
	"github.com/stretchr/testify/require"
)

func newLocalFixture(t *testing.T) (*identity.LocalVerifier, accounts.Repo) {
	t.Helper()

	repo := fakeaccountrepo.NewFakeAccountRepo()
	hash, err := accounts.HashPassword("Secret123")
	require.NoError(t, err)
	err = repo.Upsert(context.Background(), &accounts.Account{
		Email:        "user@user.com",
		Type:         accounts.TypeUser,
		Status:       accounts.StatusActive,
		PasswordHash: hash,
	})
	require.NoError(t, err)

	return identity.NewLocalVerifier(repo), repo
}

func TestLocalVerifySuccess(t *testing.T) {
	verifier, _ := newLocalFixture(t)

	id, err := verifier.Verify(context.Background(), "user@user.com", "Secret123")
	require.NoError(t, err)
	require.Equal(t, "user@user.com", id.Email)
	require.NotEmpty(t, id.AccessToken)
	require.NotEmpty(t, id.RefreshToken)
	require.True(t, id.ExpiresAt.After(time.Now()))
}

func TestLocalVerifyWrongPassword(t *testing.T) {
	verifier, _ := newLocalFixture(t)

	_, err := verifier.Verify(context.Background(), "user@user.com", "wrong")
	require.ErrorIs(t, err, autherrors.ErrInvalidCredentials)
}

func TestLocalVerifyUnknownEmail(t *testing.T) {
	verifier, _ := newLocalFixture(t)

	_, err := verifier.Verify(context.Background(), "nobody@example.com", "Secret123")
	require.ErrorIs(t, err, autherrors.ErrInvalidCredentials)
}

func TestLocalVerifyEmptyHashNeverMatches(t *testing.T) {
	repo := fakeaccountrepo.NewFakeAccountRepo()
	err := repo.Upsert(context.Background(), &accounts.Account{
		Email:  "nohash@example.com",
		Type:   accounts.TypeUser,
		Status: accounts.StatusActive,
	})
	require.NoError(t, err)

	verifier := identity.NewLocalVerifier(repo)

	_, err = verifier.Verify(context.Background(), "nohash@example.com", "")
	require.ErrorIs(t, err, autherrors.ErrInvalidCredentials)
	_, err = verifier.Verify(context.Background(), "nohash@example.com", "password")
	require.ErrorIs(t, err, autherrors.ErrInvalidCredentials)
}

func TestValidateCredentials(t *testing.T) {
	tests := []struct {
		name     string
		email    string
		password string
		wantErr  bool
	}{
		{"valid", "user@user.com", "123456", false},
		{"empty email", "", "123456", true},
		{"no at sign", "useruser.com", "123456", true},
		{"no dot", "user@usercom", "123456", true},
		{"empty password", "user@user.com", "", true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := identity.ValidateCredentials(tc.email, tc.password)
			if tc.wantErr {
				require.ErrorIs(t, err, autherrors.ErrInvalidCredentials)
			} else {
				require.NoError(t, err)
			}
		})
	}
}
