package config

import "time"

// AuthStrategy selects how credentials are verified: against the hosted
// identity provider, or against the local accounts store (development).
// This replaces the legacy platform's parallel simple-login / fallback-login /
// sync-login route handlers.
type AuthStrategy string

const (
	StrategyProvider AuthStrategy = "provider"
	StrategyLocal    AuthStrategy = "local"
)

type ProviderConfig interface {
	GetAuthStrategy() AuthStrategy
	GetProviderBaseURL() string
	GetProviderAPIKey() string
	GetProviderTimeout() time.Duration
}

type Provider struct{}

var _ ProviderConfig = Provider{}

func (Provider) GetAuthStrategy() AuthStrategy {
	if GetEnv("AUTH_STRATEGY", string(StrategyProvider)) == string(StrategyLocal) {
		return StrategyLocal
	}
	return StrategyProvider
}

func (Provider) GetProviderBaseURL() string {
	return GetEnv("IDENTITY_PROVIDER_URL", "http://localhost:9999")
}

func (Provider) GetProviderAPIKey() string {
	return GetEnv("IDENTITY_PROVIDER_API_KEY", "")
}

func (Provider) GetProviderTimeout() time.Duration {
	return envDuration("IDENTITY_PROVIDER_TIMEOUT_SECONDS", 10*time.Second, time.Second)
}
