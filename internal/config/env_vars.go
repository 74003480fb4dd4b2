package config

import (
	"fmt"
	"os"
)

const (
	portEnvVar       = "PORT"
	appNameVar       = "APP_NAME"
	authBaseURLVar   = "AUTH_BASE_URL"
	apiBaseURLVar    = "API_BASE_URL"
	authCachePathVar = "AUTH_CACHE_PATH"
)

type EnvVars struct{}

var _ EnvConfig = EnvVars{}

func (EnvVars) GetPort() string {
	port := GetEnv(portEnvVar, "3000")
	if port != "" && port[0] != ':' {
		port = fmt.Sprintf(":%s", port)
	}
	return port
}

func (EnvVars) GetAppName() string {
	return GetEnv(appNameVar, "Akriva Portal")
}

func (EnvVars) GetEnv() string {
	env := os.Getenv("ENV")
	if env == "" {
		return "DEV"
	}
	return env
}

// GetAuthBaseURL returns the base URL of the identity provider's REST API.
func (EnvVars) GetAuthBaseURL() string {
	return GetEnv(authBaseURLVar, "http://localhost:8081")
}

// GetAPIBaseURL returns the base URL of the emissions backend API.
func (EnvVars) GetAPIBaseURL() string {
	return GetEnv(apiBaseURLVar, "http://localhost:8080")
}

// GetAuthCachePath returns where non-browser clients persist cached
// credentials.
func (EnvVars) GetAuthCachePath() string {
	return GetEnv(authCachePathVar, "./data/auth.json")
}

// SecureCookies reports whether credential cookies carry the Secure flag.
// Only disabled in dev, where the portal runs over plain HTTP.
func (e EnvVars) SecureCookies() bool {
	return e.GetEnv() != "DEV"
}

func GetEnv(envVar, defaultValue string) string {
	value := os.Getenv(envVar)
	if value == "" {
		return defaultValue
	}
	return value
}
