package session

import (
	"context"
	"net/http"
	"time"
)

const (
	defaultVerifyAttempts = 3
	defaultVerifyBackoff  = 500 * time.Millisecond
)

// Reader is the read-only view of the Store the verifier needs.
type Reader interface {
	Read(r *http.Request) *Session
}

// Verifier confirms a session is live before a protected view renders,
// retrying transiently-failing reads. Right after login a redirect can land
// before the session cookie is durably readable; a bounded retry absorbs
// that race instead of the ad-hoc setTimeout polling the legacy pages did.
type Verifier struct {
	store       Reader
	maxAttempts int
	backoff     time.Duration
	sleep       func(ctx context.Context, d time.Duration) bool
}

// VerifierOption defines a function type to modify the Verifier instance.
type VerifierOption func(*Verifier)

// WithMaxAttempts bounds the number of session reads per verification.
func WithMaxAttempts(attempts int) VerifierOption {
	return func(v *Verifier) {
		if attempts > 0 {
			v.maxAttempts = attempts
		}
	}
}

// WithBackoff sets the fixed wait between attempts.
func WithBackoff(backoff time.Duration) VerifierOption {
	return func(v *Verifier) {
		v.backoff = backoff
	}
}

// WithSleep replaces the inter-attempt wait (primarily for testing).
func WithSleep(sleep func(ctx context.Context, d time.Duration) bool) VerifierOption {
	return func(v *Verifier) {
		v.sleep = sleep
	}
}

func NewVerifier(store Reader, options ...VerifierOption) *Verifier {
	v := &Verifier{
		store:       store,
		maxAttempts: defaultVerifyAttempts,
		backoff:     defaultVerifyBackoff,
		sleep:       sleepCtx,
	}
	for _, opt := range options {
		opt(v)
	}
	return v
}

// VerifyWithRetry reads the session, retrying up to maxAttempts with a fixed
// backoff. It is read-only and returns nil only after every attempt failed
// or the request context was canceled - callers treat nil as "not
// authenticated", never as an error.
func (v *Verifier) VerifyWithRetry(ctx context.Context, r *http.Request) *Session {
	for attempt := 0; attempt < v.maxAttempts; attempt++ {
		if sess := v.store.Read(r); sess != nil {
			return sess
		}
		if attempt == v.maxAttempts-1 {
			break
		}
		if !v.sleep(ctx, v.backoff) {
			return nil // request aborted, stop retrying
		}
	}
	return nil
}

func sleepCtx(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
