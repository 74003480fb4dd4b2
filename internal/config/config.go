package config

type Config interface {
	EnvConfig
	CookieConfig
}

type EnvConfig interface {
	GetPort() string
	GetAppName() string
	GetEnv() string
	GetAuthBaseURL() string
	GetAPIBaseURL() string
	GetAuthCachePath() string
}

type CookieConfig interface {
	SecureCookies() bool
}

type mainConfig struct {
	EnvVars
}

func New() Config {
	return mainConfig{}
}
