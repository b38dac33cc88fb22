package site

import "github.com/goliatone/go-cms-site/internal/runtimeconfig"

var (
	ErrBackendURLRequired     = runtimeconfig.ErrBackendURLRequired
	ErrBackendURLInvalid      = runtimeconfig.ErrBackendURLInvalid
	ErrServerAddrRequired     = runtimeconfig.ErrServerAddrRequired
	ErrTimeoutInvalid         = runtimeconfig.ErrTimeoutInvalid
	ErrTimeoutBudgetExceeded  = runtimeconfig.ErrTimeoutBudgetExceeded
	ErrSessionSecretRequired  = runtimeconfig.ErrSessionSecretRequired
	ErrSessionSecretTooShort  = runtimeconfig.ErrSessionSecretTooShort
	ErrCacheTTLInvalid        = runtimeconfig.ErrCacheTTLInvalid
	ErrRateLimitInvalid       = runtimeconfig.ErrRateLimitInvalid
	ErrThemesFeatureRequired  = runtimeconfig.ErrThemesFeatureRequired
	ErrLoggingProviderUnknown = runtimeconfig.ErrLoggingProviderUnknown
	ErrLoggingLevelInvalid    = runtimeconfig.ErrLoggingLevelInvalid
	ErrLoggingFormatInvalid   = runtimeconfig.ErrLoggingFormatInvalid
)

type (
	Config          = runtimeconfig.Config
	ServerConfig    = runtimeconfig.ServerConfig
	BackendConfig   = runtimeconfig.BackendConfig
	MediaConfig     = runtimeconfig.MediaConfig
	CacheConfig     = runtimeconfig.CacheConfig
	SiteConfig      = runtimeconfig.SiteConfig
	AdminConfig     = runtimeconfig.AdminConfig
	ThemeConfig     = runtimeconfig.ThemeConfig
	RateLimitConfig = runtimeconfig.RateLimitConfig
	LoggingConfig   = runtimeconfig.LoggingConfig
)

func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}

// LoadConfig reads the optional .env file at envPath and the SITE_*
// environment, then validates the result.
func LoadConfig(envPath string) (Config, error) {
	return runtimeconfig.Load(envPath)
}
