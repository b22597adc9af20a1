package server

import (
	"encoding/json"
	"net/http"

	"github.com/binaahub/authcore/accounts"
	"github.com/binaahub/authcore/identity"
	autherrors "github.com/binaahub/authcore/internal/errors"
	"github.com/binaahub/authcore/roles"
	"github.com/rs/zerolog/log"
)

const (
	contentTypeJSON = "application/json"
	contentTypeHTML = "text/html; charset=utf-8"
)

// User-visible messages are bilingual and deliberately generic: wrong
// password and unknown email must read identically so the endpoint cannot be
// used to enumerate accounts.
const (
	msgInvalidCredentials  = "البريد الإلكتروني أو كلمة المرور غير صحيحة | Invalid email or password"
	msgAccountSuspended    = "تم تعليق هذا الحساب | This account has been suspended"
	msgTooManyAttempts     = "محاولات كثيرة، حاول مرة أخرى لاحقاً | Too many attempts, try again later"
	msgProviderUnavailable = "الخدمة غير متاحة مؤقتاً، حاول مرة أخرى | Service temporarily unavailable, please retry"
	msgInvalidRequest      = "طلب غير صالح | Invalid request"
	msgInternalError       = "حدث خطأ غير متوقع | An unexpected error occurred"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type sessionUser struct {
	Email       string               `json:"email"`
	AccountType accounts.AccountType `json:"accountType"`
}

type loginResponse struct {
	Success    bool         `json:"success"`
	RedirectTo string       `json:"redirectTo,omitempty"`
	User       *sessionUser `json:"user,omitempty"`
	Error      string       `json:"error,omitempty"`
}

// LoginHandler verifies credentials, re-resolves the account type from the
// accounts store, computes the landing route, and issues the session cookie.
func (s *Server) LoginHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if !decodeJSON(w, r, &req) {
			return
		}

		if err := identity.ValidateCredentials(req.Email, req.Password); err != nil {
			respondLoginError(w, http.StatusUnauthorized, msgInvalidCredentials)
			return
		}

		limiterKey := accounts.NormalizeEmail(req.Email)
		if !s.loginLimiter.Allow(limiterKey) {
			log.Warn().Str("email", limiterKey).Msg("Login rate limit exceeded")
			respondLoginError(w, http.StatusTooManyRequests, msgTooManyAttempts)
			return
		}

		ctx := r.Context()

		id, err := s.verifier.Verify(ctx, req.Email, req.Password)
		if autherrors.Is(err, autherrors.ErrProviderUnavailable) {
			// One transparent retry absorbs a blip before surfacing a 503.
			id, err = s.verifier.Verify(ctx, req.Email, req.Password)
		}
		if err != nil {
			s.respondVerifyError(w, limiterKey, err)
			return
		}

		account, err := s.resolver.Resolve(ctx, id.Email)
		if err != nil {
			s.respondResolveError(w, limiterKey, err)
			return
		}

		if _, err := s.sessions.Create(w, id, account); err != nil {
			log.Err(err).Msg("Failed to create session")
			respondLoginError(w, http.StatusInternalServerError, msgInternalError)
			return
		}

		s.loginLimiter.Reset(limiterKey)

		respondJSON(w, http.StatusOK, loginResponse{
			Success:    true,
			RedirectTo: roles.RouteFor(account.Type),
			User:       &sessionUser{Email: account.Email, AccountType: account.Type},
		})
	}
}

func (s *Server) respondVerifyError(w http.ResponseWriter, email string, err error) {
	switch {
	case autherrors.Is(err, autherrors.ErrInvalidCredentials):
		log.Warn().Str("email", email).Msg("Login failed: invalid credentials")
		respondLoginError(w, http.StatusUnauthorized, msgInvalidCredentials)
	case autherrors.Is(err, autherrors.ErrRateLimited):
		log.Warn().Str("email", email).Msg("Login failed: provider rate limit")
		respondLoginError(w, http.StatusTooManyRequests, msgTooManyAttempts)
	case autherrors.Is(err, autherrors.ErrProviderUnavailable):
		log.Err(err).Msg("Login failed: identity provider unavailable")
		w.Header().Set("Retry-After", "30")
		respondLoginError(w, http.StatusServiceUnavailable, msgProviderUnavailable)
	default:
		log.Err(err).Msg("Login failed: verifier error")
		respondLoginError(w, http.StatusInternalServerError, msgInternalError)
	}
}

func (s *Server) respondResolveError(w http.ResponseWriter, email string, err error) {
	switch {
	case autherrors.Is(err, autherrors.ErrAccountNotFound):
		// Orphaned identity: verified by the provider but no platform
		// account. Indistinguishable from bad credentials on the wire.
		log.Warn().Str("email", email).Msg("Login failed: no account for verified identity")
		respondLoginError(w, http.StatusUnauthorized, msgInvalidCredentials)
	case autherrors.Is(err, autherrors.ErrAccountSuspended):
		log.Warn().Str("email", email).Msg("Login failed: account suspended")
		respondLoginError(w, http.StatusForbidden, msgAccountSuspended)
	default:
		log.Err(err).Msg("Login failed: account store error")
		respondLoginError(w, http.StatusInternalServerError, msgInternalError)
	}
}

// LogoutHandler tears down the session. It always clears the canonical
// cookie (plus legacy names) and returns success, whatever the provider
// sign-out says - calling it twice is as successful as calling it once.
func (s *Server) LogoutHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if sess := s.sessions.Read(r); sess != nil {
			if err := s.verifier.SignOut(r.Context(), sess.AccessToken); err != nil {
				log.Err(err).Msg("Provider sign-out failed during logout")
			}
			s.resolver.Invalidate(sess.Email)
		}

		s.sessions.Destroy(w)
		respondJSON(w, http.StatusOK, map[string]bool{"success": true})
	}
}

type sessionStateResponse struct {
	Authenticated bool         `json:"authenticated"`
	User          *sessionUser `json:"user,omitempty"`
}

// SessionHandler reports session state for client-side rehydration. Expired
// or malformed cookies just read as unauthenticated; a valid session gets
// its expiry slid forward.
func (s *Server) SessionHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := s.sessions.Read(r)
		if sess == nil {
			respondJSON(w, http.StatusOK, sessionStateResponse{Authenticated: false})
			return
		}

		if err := s.sessions.Refresh(w, sess); err != nil {
			log.Err(err).Msg("Failed to refresh session cookie")
		}

		respondJSON(w, http.StatusOK, sessionStateResponse{
			Authenticated: true,
			User:          &sessionUser{Email: sess.Email, AccountType: sess.AccountType},
		})
	}
}

func (s *Server) HealthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

// Helper functions

func decodeJSON(w http.ResponseWriter, r *http.Request, dest interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dest); err != nil {
		respondLoginError(w, http.StatusBadRequest, msgInvalidRequest)
		return false
	}
	return true
}

func respondJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", contentTypeJSON)
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Err(err).Msg("Failed to encode response")
	}
}

func respondLoginError(w http.ResponseWriter, statusCode int, message string) {
	respondJSON(w, statusCode, loginResponse{Success: false, Error: message})
}
