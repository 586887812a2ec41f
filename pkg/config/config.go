package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// configFile is read from the working directory when present.
const configFile = "config.yaml"

// Config holds all configuration for votabien-engine.
// Configuration can come from YAML file (config.yaml) or environment variables.
// Environment variables always override YAML values for fields that support both.
// Secrets (passwords) must only come from environment variables.
type Config struct {
	// Server configuration
	BindAddr string `yaml:"bind_addr" env:"BIND_ADDR" env-default:"0.0.0.0"`
	Port     string `yaml:"port" env:"PORT" env-default:"8000"`
	Env      string `yaml:"env" env:"ENVIRONMENT" env-default:"local"`
	LogLevel string `yaml:"log_level" env:"LOG_LEVEL" env-default:"info"`
	Version  string `yaml:"-"` // Set at load time, not from config

	// APIPrefix is mounted in front of every resource route.
	APIPrefix string `yaml:"api_prefix" env:"API_PREFIX" env-default:"/api"`

	// CORSOrigins is a comma-separated list of allowed cross-origin hosts.
	CORSOrigins string `yaml:"cors_origins" env:"CORS_ORIGINS" env-default:"http://localhost:5173"`

	// Database configuration (PostgreSQL)
	Database DatabaseConfig `yaml:"database"`

	// RateLimit configuration for the public API
	RateLimit RateLimitConfig `yaml:"rate_limit"`

	// RunMigrations applies pending schema migrations at startup.
	RunMigrations bool `yaml:"run_migrations" env:"RUN_MIGRATIONS" env-default:"true"`
}

// DatabaseConfig holds PostgreSQL database configuration.
// URL wins over the individual parts when set.
type DatabaseConfig struct {
	URL            string `yaml:"-" env:"DB_URL"` // Secret - may embed credentials
	Host           string `yaml:"host" env:"PGSQL_HOSTNAME" env-default:"localhost"`
	Port           int    `yaml:"port" env:"PGSQL_PORT" env-default:"5432"`
	User           string `yaml:"user" env:"PGSQL_USERNAME" env-default:"postgres"`
	Password       string `yaml:"-" env:"PGSQL_PASSWORD"` // Secret - not in YAML
	Database       string `yaml:"database" env:"PGSQL_DBNAME" env-default:"vota_bien"`
	SSLMode        string `yaml:"ssl_mode" env:"PGSQL_SSLMODE" env-default:"disable"`
	MaxConnections int32  `yaml:"max_connections" env:"PGMAX_CONNECTIONS" env-default:"25"`
}

// RateLimitConfig holds per-client request limits.
type RateLimitConfig struct {
	Requests int           `yaml:"requests" env:"RATE_LIMIT_REQUESTS" env-default:"300"`
	Window   time.Duration `yaml:"window" env:"RATE_LIMIT_WINDOW" env-default:"1m"`
	Disabled bool          `yaml:"disabled" env:"RATE_LIMIT_DISABLED" env-default:"false"`
}

// Load reads configuration from config.yaml with environment variable overrides.
// When config.yaml does not exist only the environment (and defaults) is used.
// The version parameter is injected at build time and set on the returned Config.
func Load(version string) (*Config, error) {
	cfg := &Config{
		Version: version,
	}

	if _, err := os.Stat(configFile); err == nil {
		if err := cleanenv.ReadConfig(configFile, cfg); err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", configFile, err)
		}
	} else if errors.Is(err, os.ErrNotExist) {
		if err := cleanenv.ReadEnv(cfg); err != nil {
			return nil, fmt.Errorf("failed to read environment: %w", err)
		}
	} else {
		return nil, fmt.Errorf("failed to stat %s: %w", configFile, err)
	}

	cfg.APIPrefix = normalizePrefix(cfg.APIPrefix)

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.Database.MaxConnections < 1 {
		return fmt.Errorf("max_connections must be positive, got %d", c.Database.MaxConnections)
	}
	if !c.RateLimit.Disabled && (c.RateLimit.Requests < 1 || c.RateLimit.Window <= 0) {
		return fmt.Errorf("rate limit requires positive requests and window")
	}
	return nil
}

// normalizePrefix returns the prefix with a leading slash and no trailing slash.
// An empty or "/" prefix mounts routes at the root.
func normalizePrefix(prefix string) string {
	prefix = strings.TrimSpace(prefix)
	prefix = strings.TrimRight(prefix, "/")
	if prefix == "" {
		return ""
	}
	if !strings.HasPrefix(prefix, "/") {
		prefix = "/" + prefix
	}
	return prefix
}

// CORSOriginsList splits CORSOrigins into trimmed, non-empty entries.
func (c *Config) CORSOriginsList() []string {
	var origins []string
	for _, o := range strings.Split(c.CORSOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}

// ListenAddr returns the host:port the HTTP server binds to.
func (c *Config) ListenAddr() string {
	return c.BindAddr + ":" + c.Port
}

// ConnectionString returns a PostgreSQL connection URL.
// DB_URL is returned verbatim when set.
func (c *DatabaseConfig) ConnectionString() string {
	if c.URL != "" {
		return c.URL
	}
	u := &url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     fmt.Sprintf("%s:%d", ResolveHostForDocker(c.Host), c.Port),
		Path:     "/" + c.Database,
		RawQuery: url.Values{"sslmode": []string{c.SSLMode}}.Encode(),
	}
	return u.String()
}
