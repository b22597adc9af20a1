package config

type Config interface {
	EnvConfig
	SessionConfig
	ProviderConfig
	CorsConfig
}

type EnvConfig interface {
	GetPort() string
	GetAppName() string
	GetDataFolder() string
	GetEnv() string
}

type mainConfig struct {
	EnvVars
	Session
	Provider
	Cors
}

func New() Config {
	return mainConfig{}
}
