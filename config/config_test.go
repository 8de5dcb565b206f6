package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

func TestLoad_Defaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "0.0.0.0:8080", cfg.Addr())
	assert.Equal(t, SourceFixtures, cfg.Catalog.Source)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "adrija:intents", cfg.Redis.Stream)
	assert.Equal(t, 30*time.Second, cfg.Brochure.Timeout)
	assert.Equal(t, 5, cfg.Images.FetchRPS)
	assert.False(t, cfg.IsProduction())
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	yaml := []byte("server:\n  port: \"9000\"\nlog:\n  level: debug\nredis:\n  enabled: true\n")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), yaml, 0o644))

	t.Setenv("LOG_LEVEL", "warn")
	t.Setenv("ENV", "production")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Server.Port)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.True(t, cfg.Redis.Enabled)
	assert.True(t, cfg.IsProduction())
}

func TestLoad_PortVariable(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("PORT", "10000")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "10000", cfg.Server.Port)
}

func TestValidate(t *testing.T) {
	base := func() Config {
		return Config{
			Server:  ServerConfig{Port: "8080"},
			Catalog: CatalogConfig{Source: SourceFixtures},
			Images:  ImagesConfig{FetchRPS: 5},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid fixtures", func(*Config) {}, ""},
		{"unknown source", func(c *Config) { c.Catalog.Source = "mongo" }, "invalid catalog source"},
		{"watch needs path", func(c *Config) { c.Catalog.Watch = true }, "fixtures_path"},
		{"postgres without database", func(c *Config) { c.Catalog.Source = SourcePostgres }, "DATABASE_URL"},
		{"postgres with url", func(c *Config) {
			c.Catalog.Source = SourcePostgres
			c.Database.URL = "postgres://localhost/adrija"
		}, ""},
		{"missing port", func(c *Config) { c.Server.Port = "" }, "server.port"},
		{"zero fetch rate", func(c *Config) { c.Images.FetchRPS = 0 }, "fetch_rps"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestDSN(t *testing.T) {
	d := DatabaseConfig{Host: "db", Port: 5432, User: "adrija", Password: "secret", Name: "tours", SSLMode: "require"}
	assert.Equal(t, "host=db port=5432 user=adrija password=secret dbname=tours sslmode=require", d.DSN())

	d.URL = "postgres://u:p@h/db"
	assert.Equal(t, "postgres://u:p@h/db", d.DSN())
}
