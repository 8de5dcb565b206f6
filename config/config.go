package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Catalog sources
const (
	SourceFixtures = "fixtures"
	SourcePostgres = "postgres"
)

// Config holds all configuration for the application
type Config struct {
	Env      string         `mapstructure:"env"`
	Server   ServerConfig   `mapstructure:"server"`
	Log      LogConfig      `mapstructure:"log"`
	Catalog  CatalogConfig  `mapstructure:"catalog"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Images   ImagesConfig   `mapstructure:"images"`
	Drive    DriveConfig    `mapstructure:"drive"`
	Brochure BrochureConfig `mapstructure:"brochure"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
	// BaseURL is the address headless Chrome uses to reach the brochure render endpoint
	BaseURL string `mapstructure:"base_url"`
}

// LogConfig holds logger configuration
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// CatalogConfig holds catalog source configuration
type CatalogConfig struct {
	Source       string `mapstructure:"source"`
	FixturesPath string `mapstructure:"fixtures_path"` // Empty means the embedded fixtures
	Watch        bool   `mapstructure:"watch"`
}

// DatabaseConfig holds PostgreSQL configuration
type DatabaseConfig struct {
	URL      string `mapstructure:"url"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
}

// RedisConfig holds the intent stream connection details
type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	Database int    `mapstructure:"database"`
	Stream   string `mapstructure:"stream"`
}

// ImagesConfig holds image optimizer configuration
type ImagesConfig struct {
	CacheDir     string        `mapstructure:"cache_dir"`
	FetchTimeout time.Duration `mapstructure:"fetch_timeout"`
	FetchRPS     int           `mapstructure:"fetch_rps"` // Remote fetches per second
}

// DriveConfig holds Google Drive configuration
type DriveConfig struct {
	CredentialsFile string `mapstructure:"credentials_file"`
}

// BrochureConfig holds PDF brochure configuration
type BrochureConfig struct {
	ChromePath string        `mapstructure:"chrome_path"`
	Timeout    time.Duration `mapstructure:"timeout"`
}

// Load loads configuration from config.yaml (optional) with environment variable overrides.
// SERVER_PORT overrides server.port, DATABASE_URL overrides database.url, and so on.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	setDefaults(v)

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	return decode(v)
}

func decode(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	// Render provides PORT without the server prefix
	if port := v.GetString("port"); port != "" {
		cfg.Server.Port = port
	}
	cfg.Server.Port = strings.TrimPrefix(cfg.Server.Port, ":")

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("env", "development")

	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.base_url", "http://localhost:8080")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("catalog.source", SourceFixtures)
	v.SetDefault("catalog.fixtures_path", "")
	v.SetDefault("catalog.watch", false)

	v.SetDefault("database.url", "")
	v.SetDefault("database.host", "")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "")
	v.SetDefault("database.password", "")
	v.SetDefault("database.name", "")
	v.SetDefault("database.sslmode", "disable")

	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.database", 0)
	v.SetDefault("redis.stream", "adrija:intents")

	v.SetDefault("images.cache_dir", "cache/images")
	v.SetDefault("images.fetch_timeout", 20*time.Second)
	v.SetDefault("images.fetch_rps", 5)

	v.SetDefault("drive.credentials_file", "")

	v.SetDefault("brochure.chrome_path", "")
	v.SetDefault("brochure.timeout", 30*time.Second)
}

// Validate checks that all config values are valid
func (c *Config) Validate() error {
	switch c.Catalog.Source {
	case SourceFixtures, SourcePostgres:
	default:
		return fmt.Errorf("invalid catalog source %q: must be one of fixtures, postgres", c.Catalog.Source)
	}

	if c.Catalog.Watch && c.Catalog.FixturesPath == "" {
		return fmt.Errorf("catalog.watch requires catalog.fixtures_path")
	}

	if c.Catalog.Source == SourcePostgres && c.Database.URL == "" {
		if c.Database.Host == "" || c.Database.User == "" || c.Database.Name == "" {
			return fmt.Errorf("database connection variables not set. Set DATABASE_URL or DATABASE_HOST, DATABASE_USER, DATABASE_NAME")
		}
	}

	if c.Images.FetchRPS < 1 {
		return fmt.Errorf("images.fetch_rps must be at least 1")
	}

	if c.Server.Port == "" {
		return fmt.Errorf("server.port is required")
	}
	return nil
}

// IsProduction reports whether the service runs with ENV=production
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Addr returns the listen address for the HTTP server
func (c *Config) Addr() string {
	return c.Server.Host + ":" + c.Server.Port
}

// DSN returns the PostgreSQL connection string
func (d DatabaseConfig) DSN() string {
	if d.URL != "" {
		return d.URL
	}
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode)
}
