package runtimeconfig

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"
)

var (
	ErrBackendURLRequired     = errors.New("site config: backend base URL is required")
	ErrBackendURLInvalid      = errors.New("site config: backend base URL must be an absolute http(s) URL")
	ErrServerAddrRequired     = errors.New("site config: server address is required")
	ErrTimeoutInvalid         = errors.New("site config: timeouts must be positive")
	ErrTimeoutBudgetExceeded  = errors.New("site config: backend timeout does not fit the request timeout")
	ErrSessionSecretRequired  = errors.New("site config: admin session secret is required when the dashboard is enabled")
	ErrSessionSecretTooShort  = errors.New("site config: admin session secret must be at least 32 bytes")
	ErrCacheTTLInvalid        = errors.New("site config: cache TTL must be positive when the cache is enabled")
	ErrRateLimitInvalid       = errors.New("site config: rate limit must be zero or positive")
	ErrThemesFeatureRequired  = errors.New("site config: themes directory is required to select a theme")
	ErrLoggingProviderUnknown = errors.New("site config: logging provider is invalid")
	ErrLoggingLevelInvalid    = errors.New("site config: logging level is invalid")
	ErrLoggingFormatInvalid   = errors.New("site config: logging format is invalid")
)

// SequentialFetches is the longest chain of backend calls one public request
// makes: the page lookup, its posts and its gallery or service listing.
const SequentialFetches = 3

// Config aggregates the site runtime settings.
type Config struct {
	Server    ServerConfig
	Backend   BackendConfig
	Media     MediaConfig
	Cache     CacheConfig
	Site      SiteConfig
	Admin     AdminConfig
	Themes    ThemeConfig
	RateLimit RateLimitConfig
	Logging   LoggingConfig
}

// ServerConfig controls the HTTP listener.
type ServerConfig struct {
	Addr            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
}

// BackendConfig points at the content API.
type BackendConfig struct {
	BaseURL string
	Timeout time.Duration
}

// MediaConfig sets the prefix joined to relative media references.
type MediaConfig struct {
	BaseURL string
}

// CacheConfig controls the page list cache used by navigation.
type CacheConfig struct {
	Enabled bool
	TTL     time.Duration
}

// SiteConfig describes the public site.
type SiteConfig struct {
	Name      string
	PublicURL string
	HomeSlug  string
	PageSize  int
}

// AdminConfig controls the dashboard.
type AdminConfig struct {
	Enabled       bool
	SessionSecret string
	SessionName   string
}

// ThemeConfig locates go-theme manifests.
type ThemeConfig struct {
	Dir          string
	DefaultTheme string
	Variant      string
}

// RateLimitConfig caps requests per client IP per minute. Zero disables it.
type RateLimitConfig struct {
	PublicPerMinute int
	AdminPerMinute  int
}

// LoggingConfig captures provider-specific options for runtime logging.
type LoggingConfig struct {
	Provider  string
	Level     string
	Format    string
	AddSource bool
	Focus     []string
}

// DefaultConfig returns the settings used when nothing is configured.
func DefaultConfig() Config {
	return Config{
		Server: ServerConfig{
			Addr:            ":8080",
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    30 * time.Second,
			RequestTimeout:  20 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Backend: BackendConfig{
			BaseURL: "http://localhost:3000/api",
			Timeout: 5 * time.Second,
		},
		Media: MediaConfig{
			BaseURL: "/uploads",
		},
		Cache: CacheConfig{
			Enabled: true,
			TTL:     time.Minute,
		},
		Site: SiteConfig{
			Name:     "Općina",
			HomeSlug: "pocetna",
			PageSize: 9,
		},
		Admin: AdminConfig{
			SessionName: "site_admin",
		},
		RateLimit: RateLimitConfig{
			PublicPerMinute: 300,
			AdminPerMinute:  120,
		},
		Logging: LoggingConfig{
			Provider: "console",
			Level:    "info",
		},
	}
}

// Validate performs high-level consistency checks.
func (cfg Config) Validate() error {
	if strings.TrimSpace(cfg.Server.Addr) == "" {
		return ErrServerAddrRequired
	}
	if err := validateBackendURL(cfg.Backend.BaseURL); err != nil {
		return err
	}
	if cfg.Backend.Timeout <= 0 || cfg.Server.RequestTimeout <= 0 {
		return ErrTimeoutInvalid
	}
	if budget := SequentialFetches * cfg.Backend.Timeout; budget >= cfg.Server.RequestTimeout {
		return fmt.Errorf("%w: %d x %s >= %s", ErrTimeoutBudgetExceeded, SequentialFetches, cfg.Backend.Timeout, cfg.Server.RequestTimeout)
	}
	if cfg.Cache.Enabled && cfg.Cache.TTL <= 0 {
		return ErrCacheTTLInvalid
	}
	if cfg.RateLimit.PublicPerMinute < 0 {
		return fmt.Errorf("%w: public", ErrRateLimitInvalid)
	}
	if cfg.RateLimit.AdminPerMinute < 0 {
		return fmt.Errorf("%w: admin", ErrRateLimitInvalid)
	}
	if cfg.Admin.Enabled {
		secret := strings.TrimSpace(cfg.Admin.SessionSecret)
		if secret == "" {
			return ErrSessionSecretRequired
		}
		if len(secret) < 32 {
			return ErrSessionSecretTooShort
		}
	}
	if strings.TrimSpace(cfg.Themes.DefaultTheme) != "" && strings.TrimSpace(cfg.Themes.Dir) == "" {
		return ErrThemesFeatureRequired
	}

	provider := normalizeProvider(cfg.Logging.Provider)
	if provider != "" && !isSupportedProvider(provider) {
		return fmt.Errorf("%w: %s", ErrLoggingProviderUnknown, provider)
	}
	if level := strings.TrimSpace(cfg.Logging.Level); level != "" && !isSupportedLevel(level) {
		return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, level)
	}
	if provider == "gologger" {
		if format := strings.TrimSpace(cfg.Logging.Format); format != "" && !isSupportedFormat(format) {
			return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, format)
		}
	}
	return nil
}

func validateBackendURL(raw string) error {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ErrBackendURLRequired
	}
	parsed, err := url.Parse(raw)
	if err != nil || parsed.Host == "" || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		return fmt.Errorf("%w: %s", ErrBackendURLInvalid, raw)
	}
	return nil
}

func normalizeProvider(provider string) string {
	return strings.ToLower(strings.TrimSpace(provider))
}

func isSupportedProvider(provider string) bool {
	switch provider {
	case "console", "gologger":
		return true
	default:
		return false
	}
}

func isSupportedLevel(level string) bool {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal":
		return true
	default:
		return false
	}
}

func isSupportedFormat(format string) bool {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json", "console", "pretty":
		return true
	default:
		return false
	}
}
