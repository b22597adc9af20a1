package accounts

import "context"

// Repo is the read surface the auth core needs over the accounts table.
// Upsert exists for the signup flow and for seeding; login never writes.
type Repo interface {
	Upsert(ctx context.Context, account *Account) error
	GetByEmail(ctx context.Context, email string) (*Account, error)
	GetByID(ctx context.Context, id string) (*Account, error)
}
