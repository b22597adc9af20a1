package fakeaccountrepo

import (
	"context"
	"sync"

	"github.com/binaahub/authcore/accounts"
	autherrors "github.com/binaahub/authcore/internal/errors"
	"github.com/google/uuid"
)

var _ accounts.Repo = (*FakeAccountRepo)(nil)

type FakeAccountRepo struct {
	accounts map[string]*accounts.Account
	emailIds map[string]string // normalized email to account id
	lock     sync.RWMutex
}

func NewFakeAccountRepo() *FakeAccountRepo {
	return &FakeAccountRepo{
		accounts: make(map[string]*accounts.Account),
		emailIds: make(map[string]string),
	}
}

func (ar *FakeAccountRepo) Upsert(ctx context.Context, account *accounts.Account) error {
	ar.lock.Lock()
	defer ar.lock.Unlock()

	if account.ID == "" {
		account.ID = uuid.New().String()
	}
	account.Email = accounts.NormalizeEmail(account.Email)
	ar.accounts[account.ID] = account
	ar.emailIds[account.Email] = account.ID
	return nil
}

func (ar *FakeAccountRepo) GetByEmail(ctx context.Context, email string) (*accounts.Account, error) {
	ar.lock.RLock()
	defer ar.lock.RUnlock()

	id, ok := ar.emailIds[accounts.NormalizeEmail(email)]
	if !ok {
		return nil, autherrors.ErrAccountNotFound
	}
	return ar.accounts[id], nil
}

func (ar *FakeAccountRepo) GetByID(ctx context.Context, id string) (*accounts.Account, error) {
	ar.lock.RLock()
	defer ar.lock.RUnlock()

	account, ok := ar.accounts[id]
	if !ok {
		return nil, autherrors.ErrAccountNotFound
	}
	return account, nil
}
