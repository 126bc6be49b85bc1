package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultConfigPath is used when YATUBE_CONFIG is unset
const DefaultConfigPath = "configs/config.yaml"

// GroupSeed is a group created at startup when its slug is absent
type GroupSeed struct {
	Title       string `yaml:"title" env:"TITLE"`
	Slug        string `yaml:"slug" env:"SLUG"`
	Description string `yaml:"description" env:"DESCRIPTION"`
}

// Config structure represents the application configuration
type Config struct {
	Server struct {
		Port string `yaml:"port" env:"SERVER_PORT"`
		Mode string `yaml:"mode" env:"SERVER_MODE"`
		// StoragePath is the directory uploaded media is written to
		StoragePath string `yaml:"storage_path" env:"SERVER_STORAGE_PATH"`
		// MediaURL is the URL prefix StoragePath is served under
		MediaURL       string `yaml:"media_url" env:"SERVER_MEDIA_URL"`
		MigrationsPath string `yaml:"migrations_path" env:"SERVER_MIGRATIONS_PATH"`
	} `yaml:"server"`

	Database struct {
		// Driver is postgres or memory
		Driver          string `yaml:"driver" env:"DB_DRIVER"`
		Host            string `yaml:"host" env:"DB_HOST"`
		Port            string `yaml:"port" env:"DB_PORT"`
		User            string `yaml:"user" env:"DB_USER"`
		Password        string `yaml:"password" env:"DB_PASSWORD"`
		DBName          string `yaml:"dbname" env:"DB_NAME"`
		SSLMode         string `yaml:"sslmode" env:"DB_SSLMODE"`
		MaxIdleConns    int    `yaml:"max_idle_conns" env:"DB_MAX_IDLE_CONNS"`
		MaxOpenConns    int    `yaml:"max_open_conns" env:"DB_MAX_OPEN_CONNS"`
		ConnMaxLifetime string `yaml:"conn_max_lifetime" env:"DB_CONN_MAX_LIFETIME"`
	} `yaml:"database"`

	Session struct {
		Secret     string `yaml:"secret" env:"SESSION_SECRET"`
		Expiration string `yaml:"expiration" env:"SESSION_EXPIRATION"`
		Issuer     string `yaml:"issuer" env:"SESSION_ISSUER"`
		CookieName string `yaml:"cookie_name" env:"SESSION_COOKIE_NAME"`
		Secure     bool   `yaml:"secure" env:"SESSION_SECURE"`
	} `yaml:"session"`

	Cache struct {
		// Backend is memory, redis or none
		Backend   string `yaml:"backend" env:"CACHE_BACKEND"`
		RedisURL  string `yaml:"redis_url" env:"CACHE_REDIS_URL"`
		TTL       string `yaml:"ttl" env:"CACHE_TTL"`
		KeyPrefix string `yaml:"key_prefix" env:"CACHE_KEY_PREFIX"`
		// VaryOnQuery keys cached pages by query string as well as path;
		// off serves every ?page= of a path from one entry
		VaryOnQuery     bool   `yaml:"vary_on_query" env:"CACHE_VARY_ON_QUERY"`
		JanitorInterval string `yaml:"janitor_interval" env:"CACHE_JANITOR_INTERVAL"`
	} `yaml:"cache"`

	Logging struct {
		Level  string `yaml:"level" env:"LOG_LEVEL"`
		Format string `yaml:"format" env:"LOG_FORMAT"`
	} `yaml:"logging"`

	Metrics struct {
		Enabled bool   `yaml:"enabled" env:"METRICS_ENABLED"`
		Path    string `yaml:"path" env:"METRICS_PATH"`
	} `yaml:"metrics"`

	RateLimit struct {
		Enabled           bool `yaml:"enabled" env:"RATE_LIMIT_ENABLED"`
		RequestsPerMinute int  `yaml:"requests_per_minute" env:"RATE_LIMIT_REQUESTS_PER_MINUTE"`
		Burst             int  `yaml:"burst" env:"RATE_LIMIT_BURST"`
	} `yaml:"rate_limit"`

	Seed struct {
		// Groups can be replaced from SEED_GROUPS_<n>_{TITLE,SLUG,DESCRIPTION}
		Groups []GroupSeed `yaml:"groups" env:"SEED_GROUPS"`
	} `yaml:"seed"`
}

// Path returns the config file location, honouring YATUBE_CONFIG
func Path() string {
	return GetEnv("YATUBE_CONFIG", DefaultConfigPath)
}

// LoadConfig loads configuration from a file, a .env file in the working
// directory and environment variables, in increasing priority
func LoadConfig(configPath string) (*Config, error) {
	config := &Config{}
	setDefaults(config)

	if _, err := os.Stat(configPath); err == nil {
		file, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(file, config); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	// .env never overrides variables already set in the process environment
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	if err := loadFromEnv(config); err != nil {
		return nil, fmt.Errorf("failed to load from environment: %w", err)
	}

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// setDefaults sets default values for the configuration
func setDefaults(config *Config) {
	config.Server.Port = "8080"
	config.Server.Mode = "development"
	config.Server.StoragePath = "./media"
	config.Server.MediaURL = "/media"
	config.Server.MigrationsPath = "./migrations"

	config.Database.Driver = "postgres"
	config.Database.Host = "localhost"
	config.Database.Port = "5432"
	config.Database.User = "postgres"
	config.Database.Password = "postgres"
	config.Database.DBName = "yatube"
	config.Database.SSLMode = "disable"
	config.Database.MaxIdleConns = 5
	config.Database.MaxOpenConns = 20
	config.Database.ConnMaxLifetime = "1h"

	config.Session.Expiration = "336h"
	config.Session.Issuer = "yatube"
	config.Session.CookieName = "yatube_session"

	config.Cache.Backend = "memory"
	config.Cache.TTL = "20s"
	config.Cache.KeyPrefix = "yatube:page:"
	config.Cache.VaryOnQuery = true
	config.Cache.JanitorInterval = "30s"

	config.Logging.Level = "info"
	config.Logging.Format = "json"

	config.Metrics.Enabled = true
	config.Metrics.Path = "/metrics"

	config.RateLimit.Enabled = true
	config.RateLimit.RequestsPerMinute = 60
	config.RateLimit.Burst = 20
}

// loadFromEnv overrides configuration with environment variables
func loadFromEnv(config *Config) error {
	return newEnvLoader().apply(config)
}

// validateConfig ensures that the configuration is valid
func validateConfig(config *Config) error {
	switch config.Database.Driver {
	case "postgres":
		if config.Database.Host == "" {
			return fmt.Errorf("database host is required")
		}
		if _, err := time.ParseDuration(config.Database.ConnMaxLifetime); err != nil {
			return fmt.Errorf("invalid database connection lifetime: %w", err)
		}
	case "memory":
	default:
		return fmt.Errorf("unsupported database driver: %q", config.Database.Driver)
	}

	if config.Session.Secret == "" {
		return fmt.Errorf("session secret is required")
	}
	if config.Session.CookieName == "" {
		return fmt.Errorf("session cookie name is required")
	}
	if _, err := time.ParseDuration(config.Session.Expiration); err != nil {
		return fmt.Errorf("invalid session expiration format: %w", err)
	}

	switch config.Cache.Backend {
	case "memory", "none":
	case "redis":
		if config.Cache.RedisURL == "" {
			return fmt.Errorf("cache redis_url is required for the redis backend")
		}
	default:
		return fmt.Errorf("unsupported cache backend: %q", config.Cache.Backend)
	}
	if _, err := time.ParseDuration(config.Cache.TTL); err != nil {
		return fmt.Errorf("invalid cache ttl format: %w", err)
	}
	if _, err := time.ParseDuration(config.Cache.JanitorInterval); err != nil {
		return fmt.Errorf("invalid cache janitor interval format: %w", err)
	}

	if config.RateLimit.Enabled && config.RateLimit.RequestsPerMinute <= 0 {
		return fmt.Errorf("rate limit requests_per_minute must be positive")
	}

	for i, g := range config.Seed.Groups {
		if g.Slug == "" || g.Title == "" {
			return fmt.Errorf("seed group %d needs a title and a slug", i)
		}
	}

	return nil
}

// GetPostgresConnectionString returns postgres connection string
func (c *Config) GetPostgresConnectionString() string {
	sslMode := c.Database.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}

	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.DBName,
		sslMode,
	)
}

// SessionExpiration returns the parsed session lifetime; LoadConfig has
// already validated it
func (c *Config) SessionExpiration() time.Duration {
	d, _ := time.ParseDuration(c.Session.Expiration)
	return d
}

// CacheTTL returns the parsed page cache lifetime
func (c *Config) CacheTTL() time.Duration {
	d, _ := time.ParseDuration(c.Cache.TTL)
	return d
}

// CacheJanitorInterval returns the parsed memory cache sweep interval
func (c *Config) CacheJanitorInterval() time.Duration {
	d, _ := time.ParseDuration(c.Cache.JanitorInterval)
	return d
}

// ConnMaxLifetime returns the parsed pool connection lifetime
func (c *Config) ConnMaxLifetime() time.Duration {
	d, err := time.ParseDuration(c.Database.ConnMaxLifetime)
	if err != nil {
		return time.Hour
	}
	return d
}

// IsProduction reports whether the server runs in release mode
func (c *Config) IsProduction() bool {
	mode := strings.ToLower(c.Server.Mode)
	return mode == "production" || mode == "release"
}

// GetEnv gets an environment variable or returns a default value
func GetEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
