package server

import (
	"fmt"
	"html"
	"net/http"
)

// LoginPageHandler is the redirect target for unauthenticated guarded views.
// The real login UI lives in the storefront; this page only preserves the
// intended destination and points at the login API.
func (s *Server) LoginPageHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		next := r.URL.Query().Get("next")
		w.Header().Set("Content-Type", contentTypeHTML)
		fmt.Fprintf(w, loginPage, html.EscapeString(next))
	}
}

// DashboardHandler renders a minimal view for a guarded landing route. The
// guard has already attached the session, so the page greets the account.
func (s *Server) DashboardHandler(title string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := SessionFromContext(r.Context())
		if sess == nil {
			// Registered without the guard; treat as a server bug.
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", contentTypeHTML)
		fmt.Fprintf(w, dashboardPage,
			html.EscapeString(title),
			html.EscapeString(title),
			html.EscapeString(sess.Email),
			html.EscapeString(string(sess.AccountType)),
		)
	}
}

const loginPage = `<!DOCTYPE html>
<html lang="ar" dir="rtl">
<head><meta charset="utf-8"><title>تسجيل الدخول | Login</title></head>
<body>
<h1>تسجيل الدخول &mdash; Login</h1>
<p>POST /api/auth/login</p>
<input type="hidden" name="next" value="%s">
</body>
</html>
`

const dashboardPage = `<!DOCTYPE html>
<html lang="ar" dir="rtl">
<head><meta charset="utf-8"><title>%s</title></head>
<body>
<h1>%s</h1>
<p>%s (%s)</p>
</body>
</html>
`
