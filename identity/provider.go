package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/binaahub/authcore/internal/config"
	autherrors "github.com/binaahub/authcore/internal/errors"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

const (
	signInPath  = "/auth/sign-in"
	signOutPath = "/auth/sign-out"
)

var _ Verifier = (*ProviderVerifier)(nil)

// ProviderVerifier verifies credentials against the hosted identity provider.
type ProviderVerifier struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewProviderVerifier(cfg config.ProviderConfig) *ProviderVerifier {
	return &ProviderVerifier{
		baseURL:    cfg.GetProviderBaseURL(),
		apiKey:     cfg.GetProviderAPIKey(),
		httpClient: &http.Client{Timeout: cfg.GetProviderTimeout()},
	}
}

type signInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type signInResponse struct {
	AccessToken   string `json:"accessToken"`
	RefreshToken  string `json:"refreshToken"`
	ExpiresAt     int64  `json:"expiresAt"` // unix seconds
	IdentityID    string `json:"identityId"`
	IdentityEmail string `json:"identityEmail"`
}

func (p *ProviderVerifier) Verify(ctx context.Context, email, password string) (*Identity, error) {
	body, err := json.Marshal(signInRequest{Email: email, Password: password})
	if err != nil {
		return nil, errors.Wrap(err, "[ProviderVerifier.Verify] marshal")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+signInPath, bytes.NewReader(body))
	if err != nil {
		return nil, errors.Wrap(err, "[ProviderVerifier.Verify] new request")
	}
	req.Header.Set("Content-Type", "application/json")
	if p.apiKey != "" {
		req.Header.Set("X-API-Key", p.apiKey)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, autherrors.Wrapf(autherrors.ErrProviderUnavailable, "sign-in request failed: %v", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
		// fall through to decode
	case resp.StatusCode == http.StatusBadRequest,
		resp.StatusCode == http.StatusUnauthorized,
		resp.StatusCode == http.StatusForbidden:
		return nil, autherrors.ErrInvalidCredentials
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, autherrors.ErrRateLimited
	default:
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, autherrors.Wrapf(autherrors.ErrProviderUnavailable, "sign-in status %d: %s", resp.StatusCode, string(payload))
	}

	var signIn signInResponse
	if err := json.NewDecoder(resp.Body).Decode(&signIn); err != nil {
		return nil, autherrors.Wrapf(autherrors.ErrProviderUnavailable, "sign-in decode: %v", err)
	}

	return &Identity{
		ID:           signIn.IdentityID,
		Email:        signIn.IdentityEmail,
		AccessToken:  signIn.AccessToken,
		RefreshToken: signIn.RefreshToken,
		ExpiresAt:    time.Unix(signIn.ExpiresAt, 0),
	}, nil
}

// SignOut revokes the provider-side session. Logout succeeds locally whether
// or not this call does, so failures are only logged.
func (p *ProviderVerifier) SignOut(ctx context.Context, accessToken string) error {
	if accessToken == "" {
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+signOutPath, nil)
	if err != nil {
		return errors.Wrap(err, "[ProviderVerifier.SignOut] new request")
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	if p.apiKey != "" {
		req.Header.Set("X-API-Key", p.apiKey)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		log.Err(err).Msg("Provider sign-out failed")
		return nil
	}
	resp.Body.Close()
	return nil
}
