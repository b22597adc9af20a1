package server

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/binaahub/authcore/accounts"
	"github.com/binaahub/authcore/roles"
	"github.com/binaahub/authcore/session"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

// ContextKeySession stores the verified session for the request
const ContextKeySession ContextKey = "session"

// SessionFromContext returns the session the guard attached to the request,
// or nil when the handler is reached without the guard.
func SessionFromContext(ctx context.Context) *session.Session {
	sess, _ := ctx.Value(ContextKeySession).(*session.Session)
	return sess
}

// RequireSession is the guard for protected views. Per request it walks
// UNCHECKED -> AUTHENTICATED/UNAUTHENTICATED, then AUTHENTICATED ->
// AUTHORIZED/FORBIDDEN when roles are required. Unauthenticated requests
// redirect to the login page with the intended destination preserved;
// forbidden ones render an in-page access-denied view (redirecting an
// authenticated user back to login would just loop). That view is a
// usability aid - API-level authorization is still enforced server-side.
func (s *Server) RequireSession(requiredRoles ...accounts.AccountType) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			sess := s.sessionVerifier.VerifyWithRetry(r.Context(), r)
			if sess == nil {
				redirectURL := roles.RouteLogin + "?next=" + url.QueryEscape(r.URL.RequestURI())
				http.Redirect(w, r, redirectURL, http.StatusSeeOther)
				return
			}

			if !sess.HasRole(requiredRoles...) {
				s.renderAccessDenied(w, requiredRoles)
				return
			}

			ctx := context.WithValue(r.Context(), ContextKeySession, sess)
			next(w, r.WithContext(ctx))
		}
	}
}

func (s *Server) renderAccessDenied(w http.ResponseWriter, requiredRoles []accounts.AccountType) {
	names := make([]string, 0, len(requiredRoles))
	for _, role := range requiredRoles {
		names = append(names, string(role))
	}
	required := strings.Join(names, ", ")

	w.Header().Set("Content-Type", contentTypeHTML)
	w.WriteHeader(http.StatusForbidden)
	fmt.Fprintf(w, accessDeniedPage, required, required)
}

const accessDeniedPage = `<!DOCTYPE html>
<html lang="ar" dir="rtl">
<head><meta charset="utf-8"><title>Access Denied</title></head>
<body>
<h1>تم رفض الوصول &mdash; Access Denied</h1>
<p>هذه الصفحة تتطلب دور: %s</p>
<p>This page requires role: %s</p>
</body>
</html>
`
