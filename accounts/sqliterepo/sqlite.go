package sqliterepo

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"

	"github.com/binaahub/authcore/accounts"
	autherrors "github.com/binaahub/authcore/internal/errors"
	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var schema string

var _ accounts.Repo = (*SQLiteRepository)(nil)

// SQLiteRepository stores accounts in a local sqlite database. The signup
// flow owns writes; the auth core only reads.
type SQLiteRepository struct {
	db *sql.DB
}

func New(dbPath string) (*SQLiteRepository, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	repo := &SQLiteRepository{db: db}

	if err := repo.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return repo, nil
}

func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

func (r *SQLiteRepository) initSchema() error {
	_, err := r.db.Exec(schema)
	return err
}

func (r *SQLiteRepository) Upsert(ctx context.Context, account *accounts.Account) error {
	if account.ID == "" {
		account.ID = uuid.New().String()
	}
	account.Email = accounts.NormalizeEmail(account.Email)

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO accounts (id, email, account_type, name, status, password_hash)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			email = excluded.email,
			account_type = excluded.account_type,
			name = excluded.name,
			status = excluded.status,
			password_hash = excluded.password_hash`,
		account.ID, account.Email, string(account.Type), account.Name, string(account.Status), account.PasswordHash)
	if err != nil {
		return fmt.Errorf("failed to upsert account: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) GetByEmail(ctx context.Context, email string) (*accounts.Account, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, email, account_type, name, status, password_hash, created_at
		FROM accounts WHERE email = ?`,
		accounts.NormalizeEmail(email))
	return scanAccount(row)
}

func (r *SQLiteRepository) GetByID(ctx context.Context, id string) (*accounts.Account, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, email, account_type, name, status, password_hash, created_at
		FROM accounts WHERE id = ?`, id)
	return scanAccount(row)
}

func scanAccount(row *sql.Row) (*accounts.Account, error) {
	var account accounts.Account
	var accountType, status string
	err := row.Scan(&account.ID, &account.Email, &accountType, &account.Name, &status, &account.PasswordHash, &account.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, autherrors.ErrAccountNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan account: %w", err)
	}
	account.Type = accounts.AccountType(accountType)
	account.Status = accounts.Status(status)
	return &account, nil
}
