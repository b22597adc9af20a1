package fakeverifier

import (
	"context"
	"sync"

	"github.com/binaahub/authcore/identity"
	autherrors "github.com/binaahub/authcore/internal/errors"
)

var _ identity.Verifier = (*FakeVerifier)(nil)

// FakeVerifier returns scripted results for Verify calls, in order. Once the
// script is exhausted the last result repeats.
type FakeVerifier struct {
	lock        sync.Mutex
	script      []Result
	VerifyCalls int
	SignOuts    []string
}

type Result struct {
	Identity *identity.Identity
	Err      error
}

func NewFakeVerifier(script ...Result) *FakeVerifier {
	return &FakeVerifier{script: script}
}

func (f *FakeVerifier) Verify(ctx context.Context, email, password string) (*identity.Identity, error) {
	f.lock.Lock()
	defer f.lock.Unlock()

	f.VerifyCalls++
	if len(f.script) == 0 {
		return nil, autherrors.ErrInvalidCredentials
	}
	result := f.script[0]
	if len(f.script) > 1 {
		f.script = f.script[1:]
	}
	return result.Identity, result.Err
}

func (f *FakeVerifier) SignOut(ctx context.Context, accessToken string) error {
	f.lock.Lock()
	defer f.lock.Unlock()

	f.SignOuts = append(f.SignOuts, accessToken)
	return nil
}
