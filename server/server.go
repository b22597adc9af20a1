package server

import (
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/binaahub/authcore/accounts"
	"github.com/binaahub/authcore/identity"
	"github.com/binaahub/authcore/internal/config"
	"github.com/binaahub/authcore/internal/ratelimit"
	"github.com/binaahub/authcore/session"
)

// Server wires the auth core together: one credential verifier (selected by
// configuration), one account resolver, one session store, and the guard.
type Server struct {
	env             string // Environment (e.g., "DEV", "production")
	mux             *http.ServeMux
	routes          []string
	config          config.Config
	verifier        identity.Verifier
	resolver        *accounts.Resolver
	sessions        *session.Store
	sessionVerifier *session.Verifier
	loginLimiter    *ratelimit.Limiter
}

func New(cfg config.Config, verifier identity.Verifier, resolver *accounts.Resolver, sessions *session.Store) *Server {
	s := &Server{
		mux:      http.NewServeMux(),
		config:   cfg,
		verifier: verifier,
		resolver: resolver,
		sessions: sessions,
		sessionVerifier: session.NewVerifier(sessions,
			session.WithMaxAttempts(cfg.GetVerifyAttempts()),
			session.WithBackoff(cfg.GetVerifyBackoff()),
		),
		loginLimiter: ratelimit.New(
			ratelimit.NewMemoryStore(),
			cfg.GetLoginAttemptLimit(),
			cfg.GetLoginAttemptWindow(),
		),
	}
	s.env = cfg.GetEnv()

	s.initRoutes()
	s.logRoutes()

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) RegisterRouteHandler(pattern string, handler http.Handler) {
	s.routes = append(s.routes, pattern)
	s.mux.Handle(pattern, handler)
}

func (s *Server) RegisterRouteFunc(pattern string, handler func(http.ResponseWriter, *http.Request)) {
	s.routes = append(s.routes, pattern)
	s.mux.HandleFunc(pattern, handler)
}

func (s *Server) logRoutes() {
	if s.env != "DEV" {
		return // Skip logging in non-development environments
	}
	for _, route := range s.routes {
		parts := strings.SplitN(route, " ", 2)

		if len(parts) > 1 {
			logRoute(parts[0], parts[1])
		} else {
			logRoute("", parts[0])
		}
	}
}

func logRoute(method, path string) {
	var displayMethod string
	paddedMethod := fmt.Sprintf(" %-7s", method)
	if color, ok := methodColors[method]; ok {
		displayMethod = color + paddedMethod + ResetColor
	} else {
		displayMethod = Gray + paddedMethod + ResetColor
	}
	log.Printf("[%-19s] %s\n", displayMethod, path)
}
