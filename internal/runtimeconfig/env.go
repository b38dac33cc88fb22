package runtimeconfig

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix namespaces every environment variable, e.g. SITE_BACKEND_URL.
const EnvPrefix = "SITE"

// EnvConfig is the environment variable view of Config. Struct tag defaults
// mirror DefaultConfig.
type EnvConfig struct {
	Addr            string        `envconfig:"ADDR" default:":8080"`
	ReadTimeout     time.Duration `envconfig:"READ_TIMEOUT" default:"10s"`
	WriteTimeout    time.Duration `envconfig:"WRITE_TIMEOUT" default:"30s"`
	RequestTimeout  time.Duration `envconfig:"REQUEST_TIMEOUT" default:"20s"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s"`

	BackendURL     string        `envconfig:"BACKEND_URL" default:"http://localhost:3000/api"`
	BackendTimeout time.Duration `envconfig:"BACKEND_TIMEOUT" default:"5s"`

	MediaBaseURL string `envconfig:"MEDIA_BASE_URL" default:"/uploads"`

	CacheEnabled bool          `envconfig:"CACHE_ENABLED" default:"true"`
	CacheTTL     time.Duration `envconfig:"CACHE_TTL" default:"1m"`

	Name      string `envconfig:"NAME" default:"Općina"`
	PublicURL string `envconfig:"PUBLIC_URL"`
	HomeSlug  string `envconfig:"HOME_SLUG" default:"pocetna"`
	PageSize  int    `envconfig:"PAGE_SIZE" default:"9"`

	AdminEnabled  bool   `envconfig:"ADMIN_ENABLED" default:"false"`
	SessionSecret string `envconfig:"SESSION_SECRET"`
	SessionName   string `envconfig:"SESSION_NAME" default:"site_admin"`

	ThemesDir    string `envconfig:"THEMES_DIR"`
	Theme        string `envconfig:"THEME"`
	ThemeVariant string `envconfig:"THEME_VARIANT"`

	PublicRateLimit int `envconfig:"RATE_LIMIT_PUBLIC" default:"300"`
	AdminRateLimit  int `envconfig:"RATE_LIMIT_ADMIN" default:"120"`

	LogProvider  string   `envconfig:"LOG_PROVIDER" default:"console"`
	LogLevel     string   `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat    string   `envconfig:"LOG_FORMAT"`
	LogAddSource bool     `envconfig:"LOG_ADD_SOURCE" default:"false"`
	LogFocus     []string `envconfig:"LOG_FOCUS"`
}

// LoadFromEnv reads SITE_* variables into an EnvConfig.
func LoadFromEnv() (EnvConfig, error) {
	var env EnvConfig
	if err := envconfig.Process(EnvPrefix, &env); err != nil {
		return EnvConfig{}, err
	}
	return env, nil
}

// LoadDotEnv loads a .env file when present. Existing variables win. A missing
// file is not an error.
func LoadDotEnv(path string) error {
	if strings.TrimSpace(path) == "" {
		path = ".env"
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}
	return godotenv.Load(path)
}

// Load applies the optional .env file, reads the environment and validates the
// resulting Config.
func Load(envPath string) (Config, error) {
	if err := LoadDotEnv(envPath); err != nil {
		return Config{}, err
	}
	env, err := LoadFromEnv()
	if err != nil {
		return Config{}, err
	}
	cfg := env.ToConfig()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ToConfig maps the environment view onto Config.
func (e EnvConfig) ToConfig() Config {
	cfg := DefaultConfig()
	cfg.Server = ServerConfig{
		Addr:            strings.TrimSpace(e.Addr),
		ReadTimeout:     e.ReadTimeout,
		WriteTimeout:    e.WriteTimeout,
		RequestTimeout:  e.RequestTimeout,
		ShutdownTimeout: e.ShutdownTimeout,
	}
	cfg.Backend = BackendConfig{
		BaseURL: strings.TrimRight(strings.TrimSpace(e.BackendURL), "/"),
		Timeout: e.BackendTimeout,
	}
	cfg.Media.BaseURL = strings.TrimSpace(e.MediaBaseURL)
	cfg.Cache = CacheConfig{Enabled: e.CacheEnabled, TTL: e.CacheTTL}
	cfg.Site = SiteConfig{
		Name:      strings.TrimSpace(e.Name),
		PublicURL: strings.TrimRight(strings.TrimSpace(e.PublicURL), "/"),
		HomeSlug:  strings.TrimSpace(e.HomeSlug),
		PageSize:  e.PageSize,
	}
	cfg.Admin = AdminConfig{
		Enabled:       e.AdminEnabled,
		SessionSecret: e.SessionSecret,
		SessionName:   strings.TrimSpace(e.SessionName),
	}
	cfg.Themes = ThemeConfig{
		Dir:          strings.TrimSpace(e.ThemesDir),
		DefaultTheme: strings.TrimSpace(e.Theme),
		Variant:      strings.TrimSpace(e.ThemeVariant),
	}
	cfg.RateLimit = RateLimitConfig{PublicPerMinute: e.PublicRateLimit, AdminPerMinute: e.AdminRateLimit}
	cfg.Logging = LoggingConfig{
		Provider:  strings.TrimSpace(e.LogProvider),
		Level:     strings.TrimSpace(e.LogLevel),
		Format:    strings.TrimSpace(e.LogFormat),
		AddSource: e.LogAddSource,
		Focus:     e.LogFocus,
	}
	return cfg
}
