package config

import (
	"strconv"
	"time"
)

type SessionConfig interface {
	GetSessionCookieName() string
	GetSessionSecret() string
	GetSessionTTL() time.Duration
	GetVerifyAttempts() int
	GetVerifyBackoff() time.Duration
	GetLoginAttemptLimit() int
	GetLoginAttemptWindow() time.Duration
}

type Session struct{}

var _ SessionConfig = Session{}

// GetSessionCookieName returns the single canonical session cookie name.
// Legacy names are listed in the session package for logout-time cleanup only.
func (Session) GetSessionCookieName() string {
	return GetEnv("SESSION_COOKIE_NAME", "binaahub_session")
}

func (Session) GetSessionSecret() string {
	return GetEnv("SESSION_SECRET", "dev-only-session-secret")
}

// GetSessionTTL standardizes the session lifetime. The legacy platform used
// anything from 10 seconds to 7 days depending on the route.
func (Session) GetSessionTTL() time.Duration {
	return envDuration("SESSION_TTL_HOURS", 7*24*time.Hour, time.Hour)
}

func (Session) GetVerifyAttempts() int {
	return envInt("SESSION_VERIFY_ATTEMPTS", 3)
}

func (Session) GetVerifyBackoff() time.Duration {
	return envDuration("SESSION_VERIFY_BACKOFF_MS", 500*time.Millisecond, time.Millisecond)
}

func (Session) GetLoginAttemptLimit() int {
	return envInt("LOGIN_ATTEMPT_LIMIT", 10)
}

func (Session) GetLoginAttemptWindow() time.Duration {
	return envDuration("LOGIN_ATTEMPT_WINDOW_SECONDS", time.Minute, time.Second)
}

func envInt(envVar string, defaultValue int) int {
	v, err := strconv.Atoi(GetEnv(envVar, ""))
	if err != nil || v <= 0 {
		return defaultValue
	}
	return v
}

func envDuration(envVar string, defaultValue, unit time.Duration) time.Duration {
	v, err := strconv.Atoi(GetEnv(envVar, ""))
	if err != nil || v <= 0 {
		return defaultValue
	}
	return time.Duration(v) * unit
}
