package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("CATALOG_JWT_SECRET", "test-secret")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "memory", cfg.Storage.Type)
	assert.Equal(t, "mongodb://localhost:27017", cfg.Storage.MongoDB.URI)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, 60, cfg.JWT.ExpiryMinutes)
	assert.Equal(t, "catalog-backend", cfg.JWT.Issuer)
}

func TestLoad_YAMLFile(t *testing.T) {
	t.Setenv("CATALOG_JWT_SECRET", "test-secret")

	file := filepath.Join(t.TempDir(), "config.yaml")
	data := `
server:
  host: 127.0.0.1
  port: 9090
storage:
  type: mongodb
  mongodb:
    uri: mongodb://db:27017
    database: shop
jwt:
  expiry_minutes: 30
`
	require.NoError(t, os.WriteFile(file, []byte(data), 0o644))

	cfg, err := Load(file)
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1", cfg.Server.Host)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "mongodb", cfg.Storage.Type)
	assert.Equal(t, "mongodb://db:27017", cfg.Storage.MongoDB.URI)
	assert.Equal(t, "shop", cfg.Storage.MongoDB.Database)
	assert.Equal(t, 30, cfg.JWT.ExpiryMinutes)
	// Untouched values keep their defaults
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	t.Setenv("CATALOG_JWT_SECRET", "test-secret")
	t.Setenv("CATALOG_SERVER_PORT", "3000")

	file := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(file, []byte("server:\n  port: 9090\n"), 0o644))

	cfg, err := Load(file)
	require.NoError(t, err)

	assert.Equal(t, 3000, cfg.Server.Port)
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	t.Setenv("CATALOG_JWT_SECRET", "test-secret")

	cfg, err := Load(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Server.Port)
}

func TestLoad_MissingJWTSecret(t *testing.T) {
	_, err := Load("")
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		cfg := defaultConfig()
		cfg.JWT.Secret = "s"
		return cfg
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid defaults", func(c *Config) {}, false},
		{"port too low", func(c *Config) { c.Server.Port = 0 }, true},
		{"port too high", func(c *Config) { c.Server.Port = 70000 }, true},
		{"unknown storage type", func(c *Config) { c.Storage.Type = "postgres" }, true},
		{"mongodb without uri", func(c *Config) {
			c.Storage.Type = "mongodb"
			c.Storage.MongoDB.URI = ""
		}, true},
		{"zero expiry", func(c *Config) { c.JWT.ExpiryMinutes = 0 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestServerConfig_Address(t *testing.T) {
	cfg := ServerConfig{Host: "127.0.0.1", Port: 8080}
	assert.Equal(t, "127.0.0.1:8080", cfg.Address())
}
