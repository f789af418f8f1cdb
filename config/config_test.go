package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfig(t *testing.T) {
	// Test with default values (without config file)
	provider := NewFileConfigProvider("nonexistent.yaml")
	config, err := NewConfigWithProvider(provider)
	require.NoError(t, err)
	assert.NotNil(t, config)

	// Test default values
	assert.Equal(t, "temperature-dashboard", config.App.Name)
	assert.Equal(t, "1.0.0", config.App.Version)
	assert.Equal(t, "development", config.App.Env)
	assert.Equal(t, "8080", config.Server.Port)
	assert.Equal(t, 10, config.Server.ReadTimeout)
	assert.Equal(t, 10, config.Server.WriteTimeout)
	assert.Equal(t, 120, config.Server.IdleTimeout)
	assert.Equal(t, "info", config.Log.Level)
	assert.Equal(t, "json", config.Log.Format)
	assert.Equal(t, "http://localhost:5000", config.Backend.BaseURL)
	assert.Equal(t, SessionStoreMemory, config.Session.Store)
	assert.Equal(t, "dashboard_session", config.Session.CookieName)
}

func TestConfigWithEnvironmentVariables(t *testing.T) {
	t.Setenv("APP_NAME", "test-app")
	t.Setenv("APP_VERSION", "2.0.0")
	t.Setenv("APP_ENV", "production")
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("BACKEND_BASE_URL", "http://backend:5000")
	t.Setenv("BACKEND_TIMEOUT", "3")

	provider := NewFileConfigProvider("nonexistent.yaml")
	config, err := NewConfigWithProvider(provider)
	require.NoError(t, err)

	assert.Equal(t, "test-app", config.App.Name)
	assert.Equal(t, "2.0.0", config.App.Version)
	assert.Equal(t, "production", config.App.Env)
	assert.Equal(t, "9090", config.Server.Port)
	assert.Equal(t, "debug", config.Log.Level)
	assert.Equal(t, "http://backend:5000", config.Backend.BaseURL)
	assert.Equal(t, 3*time.Second, config.BackendTimeout())
}

func TestConfigYAMLThenEnvironment(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	yamlData := []byte(`
app:
  name: from-yaml
backend:
  base_url: http://yaml-backend
session:
  store: redis
  redis_url: redis://localhost:6379/0
`)
	require.NoError(t, os.WriteFile(path, yamlData, 0o600))

	t.Setenv("BACKEND_BASE_URL", "http://env-backend")

	config, err := NewConfigWithProvider(NewFileConfigProvider(path))
	require.NoError(t, err)

	assert.Equal(t, "from-yaml", config.App.Name)
	assert.Equal(t, "http://env-backend", config.Backend.BaseURL)
	assert.Equal(t, SessionStoreRedis, config.Session.Store)
	// Values absent from both sources keep their defaults.
	assert.Equal(t, "8080", config.Server.Port)
	assert.Equal(t, 60, config.Session.TTL)
}

func TestConfigValidation(t *testing.T) {
	provider := NewFileConfigProvider("config/config.yaml")

	config := Default()
	assert.NoError(t, provider.Validate(config))

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"missing app name", func(c *Config) { c.App.Name = "" }, "app.name is required"},
		{"missing port", func(c *Config) { c.Server.Port = " " }, "server.port is required"},
		{"missing backend", func(c *Config) { c.Backend.BaseURL = "" }, "backend.base_url is required"},
		{"zero timeout", func(c *Config) { c.Backend.Timeout = 0 }, "backend.timeout must be positive"},
		{"redis without url", func(c *Config) { c.Session.Store = SessionStoreRedis }, "session.redis_url is required"},
		{"unknown store", func(c *Config) { c.Session.Store = "memcached" }, "unknown session.store"},
		{"zero ttl", func(c *Config) { c.Session.TTL = 0 }, "session.ttl must be positive"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			invalid := Default()
			tt.mutate(invalid)

			err := provider.Validate(invalid)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestConfigHelperMethods(t *testing.T) {
	config := Default()

	assert.True(t, config.IsDevelopment())
	assert.False(t, config.IsProduction())

	config.App.Env = "prod"
	assert.True(t, config.IsProduction())

	assert.Equal(t, time.Hour, config.SessionTTL())
	assert.Equal(t, 5*time.Minute, config.SweepInterval())
	assert.Equal(t, 30*time.Second, config.BreakerOpenTimeout())
}

func TestFileConfigProvider_LoadFromFile(t *testing.T) {
	provider := NewFileConfigProvider("nonexistent.yaml")
	config := &Config{}

	// Test loading from non-existent file (should not error)
	err := provider.loadFromFile(config)
	assert.NoError(t, err)
}

func TestFileConfigProvider_LoadFromFile_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.yaml")
	require.NoError(t, os.WriteFile(path, []byte("app: [unclosed"), 0o600))

	err := NewFileConfigProvider(path).loadFromFile(&Config{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse YAML config")
}

func TestNewConfigWithProvider(t *testing.T) {
	mockProvider := &MockConfigProvider{config: Default()}
	mockProvider.config.App.Name = "test-app"

	config, err := NewConfigWithProvider(mockProvider)
	require.NoError(t, err)
	assert.Equal(t, "test-app", config.App.Name)

	_, err = NewConfigWithProvider(&MockConfigProvider{err: errors.New("boom")})
	assert.EqualError(t, err, "boom")
}

func TestConfigFileLoading(t *testing.T) {
	config, err := NewConfigWithProvider(NewFileConfigProvider("config.yaml"))
	require.NoError(t, err)
	assert.NotNil(t, config)

	assert.Equal(t, "temperature-dashboard", config.App.Name)
	assert.Equal(t, SessionStoreMemory, config.Session.Store)
	assert.Equal(t, 600, config.Backend.RequestsPerMinute)
}

// MockConfigProvider for testing
type MockConfigProvider struct {
	config *Config
	err    error
}

func (m *MockConfigProvider) Load() (*Config, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.config, nil
}

func (m *MockConfigProvider) Validate(config *Config) error {
	return nil
}
