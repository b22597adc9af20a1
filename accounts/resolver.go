package accounts

import (
	"context"
	"sync"
	"time"

	autherrors "github.com/binaahub/authcore/internal/errors"
	"github.com/pkg/errors"
)

const defaultCacheTTL = 2 * time.Second

// Resolver maps a verified identity email to its application account. The
// account type is always re-read from the store at login time so a stale
// client claim can never change how a user is routed. The cache only absorbs
// bursts of guard checks within a couple of seconds and is dropped on logout.
type Resolver struct {
	repo     Repo
	cacheTTL time.Duration
	nowTime  func() time.Time

	mu    sync.Mutex
	cache map[string]cacheEntry
}

type cacheEntry struct {
	account  *Account
	cachedAt time.Time
}

// ResolverOption defines a function type to modify the Resolver instance.
type ResolverOption func(*Resolver)

// WithNowTime sets the now time function (primarily for testing)
func WithNowTime(nowFunc func() time.Time) ResolverOption {
	return func(r *Resolver) {
		r.nowTime = nowFunc
	}
}

// WithCacheTTL overrides the account cache lifetime. Zero disables caching.
func WithCacheTTL(ttl time.Duration) ResolverOption {
	return func(r *Resolver) {
		r.cacheTTL = ttl
	}
}

func NewResolver(repo Repo, options ...ResolverOption) *Resolver {
	r := &Resolver{
		repo:     repo,
		cacheTTL: defaultCacheTTL,
		nowTime:  time.Now,
		cache:    make(map[string]cacheEntry),
	}
	for _, opt := range options {
		opt(r)
	}
	return r
}

// Resolve looks up the account for a verified identity email. It never
// creates accounts: a verified identity without one is an orphan the signup
// flow should have prevented, surfaced as ErrAccountNotFound.
func (r *Resolver) Resolve(ctx context.Context, email string) (*Account, error) {
	key := NormalizeEmail(email)

	if account := r.cached(key); account != nil {
		return account, nil
	}

	account, err := r.repo.GetByEmail(ctx, key)
	if err != nil {
		if autherrors.Is(err, autherrors.ErrAccountNotFound) {
			return nil, autherrors.ErrAccountNotFound
		}
		return nil, errors.Wrap(err, "[Resolver.Resolve] GetByEmail")
	}

	if account.IsSuspended() {
		return nil, autherrors.ErrAccountSuspended
	}

	r.store(key, account)
	return account, nil
}

// Invalidate drops the cached account for an email. Called on logout so a
// stale account type can never drive a routing decision afterwards.
func (r *Resolver) Invalidate(email string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.cache, NormalizeEmail(email))
}

func (r *Resolver) cached(key string) *Account {
	if r.cacheTTL <= 0 {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.cache[key]
	if !ok {
		return nil
	}
	if r.nowTime().Sub(entry.cachedAt) > r.cacheTTL {
		delete(r.cache, key)
		return nil
	}
	return entry.account
}

func (r *Resolver) store(key string, account *Account) {
	if r.cacheTTL <= 0 {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cache[key] = cacheEntry{account: account, cachedAt: r.nowTime()}
}
