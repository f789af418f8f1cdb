package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

const defaultConfigPath = "config/config.yaml"

type Config struct {
	App     AppConfig     `yaml:"app"`
	Server  ServerConfig  `yaml:"server"`
	Log     LogConfig     `yaml:"log"`
	Backend BackendConfig `yaml:"backend"`
	Session SessionConfig `yaml:"session"`
	Sentry  SentryConfig  `yaml:"sentry"`
}

type AppConfig struct {
	Name    string `yaml:"name" envconfig:"APP_NAME"`
	Version string `yaml:"version" envconfig:"APP_VERSION"`
	Env     string `yaml:"env" envconfig:"APP_ENV"`
}

type ServerConfig struct {
	Port         string `yaml:"port" envconfig:"SERVER_PORT"`
	ReadTimeout  int    `yaml:"read_timeout" envconfig:"SERVER_READ_TIMEOUT"`
	WriteTimeout int    `yaml:"write_timeout" envconfig:"SERVER_WRITE_TIMEOUT"`
	IdleTimeout  int    `yaml:"idle_timeout" envconfig:"SERVER_IDLE_TIMEOUT"`
}

type LogConfig struct {
	Level  string `yaml:"level" envconfig:"LOG_LEVEL"`
	Format string `yaml:"format" envconfig:"LOG_FORMAT"`
}

// BackendConfig describes the API that serves the city catalog and the
// precomputed temperature comparisons.
type BackendConfig struct {
	BaseURL string `yaml:"base_url" envconfig:"BACKEND_BASE_URL"`
	// Timeout in seconds for a single backend call.
	Timeout int `yaml:"timeout" envconfig:"BACKEND_TIMEOUT"`
	// RequestsPerMinute caps outbound calls; 0 disables the limiter.
	RequestsPerMinute int `yaml:"requests_per_minute" envconfig:"BACKEND_RPM"`
	Burst             int `yaml:"burst" envconfig:"BACKEND_BURST"`
	// BreakerFailures is the number of consecutive failures that opens the breaker.
	BreakerFailures uint32 `yaml:"breaker_failures" envconfig:"BACKEND_BREAKER_FAILURES"`
	// BreakerOpenSeconds is how long the breaker stays open before probing again.
	BreakerOpenSeconds int `yaml:"breaker_open_seconds" envconfig:"BACKEND_BREAKER_OPEN_SECONDS"`
}

type SessionConfig struct {
	// Store is either "memory" or "redis".
	Store      string `yaml:"store" envconfig:"SESSION_STORE"`
	RedisURL   string `yaml:"redis_url" envconfig:"SESSION_REDIS_URL"`
	CookieName string `yaml:"cookie_name" envconfig:"SESSION_COOKIE_NAME"`
	// TTL in minutes of an idle session.
	TTL int `yaml:"ttl" envconfig:"SESSION_TTL"`
	// SweepInterval in minutes between expired session sweeps.
	SweepInterval int `yaml:"sweep_interval" envconfig:"SESSION_SWEEP_INTERVAL"`
}

type SentryConfig struct {
	DSN   string `yaml:"dsn" envconfig:"SENTRY_DSN"`
	Debug bool   `yaml:"debug" envconfig:"SENTRY_DEBUG"`
}

// Default returns the configuration used when neither the YAML file nor the
// environment set a value.
func Default() *Config {
	return &Config{
		App: AppConfig{
			Name:    "temperature-dashboard",
			Version: "1.0.0",
			Env:     "development",
		},
		Server: ServerConfig{
			Port:         "8080",
			ReadTimeout:  10,
			WriteTimeout: 10,
			IdleTimeout:  120,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
		Backend: BackendConfig{
			BaseURL:            "http://localhost:5000",
			Timeout:            10,
			RequestsPerMinute:  600,
			Burst:              10,
			BreakerFailures:    5,
			BreakerOpenSeconds: 30,
		},
		Session: SessionConfig{
			Store:         SessionStoreMemory,
			CookieName:    "dashboard_session",
			TTL:           60,
			SweepInterval: 5,
		},
	}
}

// ConfigProvider loads and validates a Config.
type ConfigProvider interface {
	Load() (*Config, error)
	Validate(config *Config) error
}

// FileConfigProvider reads a YAML file and then applies environment overrides.
type FileConfigProvider struct {
	path string
}

func NewFileConfigProvider(path string) *FileConfigProvider {
	return &FileConfigProvider{path: path}
}

func (p *FileConfigProvider) Load() (*Config, error) {
	cnf := Default()

	// Read from YAML file first
	if err := p.loadFromFile(cnf); err != nil {
		return nil, err
	}

	// Override with environment variables
	if err := envconfig.Process("", cnf); err != nil {
		return nil, fmt.Errorf("error environment variable parsing: %w", err)
	}

	return cnf, nil
}

func (p *FileConfigProvider) loadFromFile(cnf *Config) error {
	yamlData, err := os.ReadFile(p.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to read config file %s: %w", p.path, err)
	}

	if err := yaml.Unmarshal(yamlData, cnf); err != nil {
		return fmt.Errorf("failed to parse YAML config: %w", err)
	}

	return nil
}

func (p *FileConfigProvider) Validate(config *Config) error {
	if strings.TrimSpace(config.App.Name) == "" {
		return errors.New("app.name is required")
	}
	if strings.TrimSpace(config.Server.Port) == "" {
		return errors.New("server.port is required")
	}
	if strings.TrimSpace(config.Backend.BaseURL) == "" {
		return errors.New("backend.base_url is required")
	}
	if config.Backend.Timeout <= 0 {
		return errors.New("backend.timeout must be positive")
	}
	if config.Backend.RequestsPerMinute < 0 {
		return errors.New("backend.requests_per_minute must not be negative")
	}

	switch config.Session.Store {
	case SessionStoreMemory:
	case SessionStoreRedis:
		if strings.TrimSpace(config.Session.RedisURL) == "" {
			return errors.New("session.redis_url is required for the redis store")
		}
	default:
		return fmt.Errorf("unknown session.store %q", config.Session.Store)
	}

	if config.Session.TTL <= 0 {
		return errors.New("session.ttl must be positive")
	}

	return nil
}

const (
	SessionStoreMemory = "memory"
	SessionStoreRedis  = "redis"
)

// NewConfig loads .env (if any), config/config.yaml and the environment.
func NewConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: no .env file loaded: %v", err)
	}

	return NewConfigWithProvider(NewFileConfigProvider(defaultConfigPath))
}

func NewConfigWithProvider(provider ConfigProvider) (*Config, error) {
	cnf, err := provider.Load()
	if err != nil {
		return nil, err
	}

	if err := provider.Validate(cnf); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cnf, nil
}

func (c *Config) IsDevelopment() bool {
	return c.App.Env == "development"
}

func (c *Config) IsProduction() bool {
	return c.App.Env == "production" || c.App.Env == "prod"
}

func (c *Config) BackendTimeout() time.Duration {
	return time.Duration(c.Backend.Timeout) * time.Second
}

func (c *Config) BreakerOpenTimeout() time.Duration {
	return time.Duration(c.Backend.BreakerOpenSeconds) * time.Second
}

func (c *Config) SessionTTL() time.Duration {
	return time.Duration(c.Session.TTL) * time.Minute
}

func (c *Config) SweepInterval() time.Duration {
	return time.Duration(c.Session.SweepInterval) * time.Minute
}
