package accounts

import (
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// AccountType is the platform role driving redirect and authorization
// decisions. Routing for each type is defined once, in the roles package.
type AccountType string

const (
	TypeUser       AccountType = "user"
	TypeClient     AccountType = "client"
	TypeStore      AccountType = "store"
	TypeEngineer   AccountType = "engineer"
	TypeConsultant AccountType = "consultant"
	TypeAdmin      AccountType = "admin"
)

// Status of an account. Suspended accounts can never log in.
type Status string

const (
	StatusActive    Status = "active"
	StatusSuspended Status = "suspended"
)

// Account is the application's own record of who a verified identity is on
// the platform. Created by the signup flow, read on every login, never
// mutated by the auth core.
type Account struct {
	ID        string      `json:"id,omitempty"`
	Email     string      `json:"email,omitempty"`
	Type      AccountType `json:"account_type,omitempty"`
	Name      string      `json:"name,omitempty"`
	Status    Status      `json:"status,omitempty"`
	CreatedAt time.Time   `json:"created_at,omitempty"`

	// PasswordHash is only populated when the local verifier strategy is
	// configured - never serialize it.
	PasswordHash string `json:"-"`
}

func (a *Account) IsSuspended() bool {
	return a.Status == StatusSuspended
}

// NormalizeEmail lower-cases and trims an email so lookups are
// case-insensitive everywhere.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}
