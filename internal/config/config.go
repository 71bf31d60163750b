package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/zach-sndr/agentic-social/internal/oauth1"
)

const (
	DefaultPath    = "xapi.yaml"
	DefaultEnvFile = ".env"
)

// Config is the CLI's configuration model.
type Config struct {
	Credentials oauth1.Credentials `yaml:"credentials"`
	API         APIConfig          `yaml:"api"`
	Log         LogConfig          `yaml:"log"`
	Metrics     MetricsConfig      `yaml:"metrics"`
	// EnvFile is a KEY=VALUE file read before credentials are resolved.
	EnvFile string `yaml:"envFile"`
}

type APIConfig struct {
	BaseURL           string        `yaml:"baseURL" validate:"required,url"`
	Timeout           time.Duration `yaml:"timeout" validate:"gt=0"`
	RequestsPerSecond float64       `yaml:"requestsPerSecond" validate:"gt=0"`
	Burst             int           `yaml:"burst" validate:"gte=1"`
}

type LogConfig struct {
	Level string `yaml:"level" validate:"omitempty,oneof=debug info warn error"`
}

type MetricsConfig struct {
	// Textfile, when set, receives a Prometheus text dump after each command.
	Textfile string `yaml:"textfile"`
}

// Default returns a sensible default configuration.
func Default() Config {
	return Config{
		API: APIConfig{
			BaseURL:           "https://api.x.com",
			Timeout:           30 * time.Second,
			RequestsPerSecond: 2,
			Burst:             10,
		},
		Log:     LogConfig{Level: "warn"},
		EnvFile: DefaultEnvFile,
	}
}

// credentialEnv lists, per credential, the environment variables consulted in order.
var credentialEnv = []struct {
	field func(*oauth1.Credentials) *string
	names []string
}{
	{func(c *oauth1.Credentials) *string { return &c.ConsumerKey }, []string{"X_API_KEY", "TWITTER_API_KEY"}},
	{func(c *oauth1.Credentials) *string { return &c.ConsumerSecret }, []string{"X_API_SECRET", "TWITTER_API_SECRET"}},
	{func(c *oauth1.Credentials) *string { return &c.AccessToken }, []string{"X_ACCESS_TOKEN", "TWITTER_ACCESS_TOKEN"}},
	{func(c *oauth1.Credentials) *string { return &c.AccessSecret }, []string{"X_ACCESS_SECRET", "TWITTER_ACCESS_TOKEN_SECRET"}},
}

// ResolveEnv fills in credentials from environment variables if not set.
// The first non-empty variable in each chain wins.
func (c *Config) ResolveEnv() {
	for _, ce := range credentialEnv {
		dst := ce.field(&c.Credentials)
		if *dst != "" {
			continue
		}
		for _, name := range ce.names {
			if v := os.Getenv(name); v != "" {
				*dst = v
				break
			}
		}
	}
}

var validate = validator.New()

// Validate checks the non-credential sections. Credentials are checked when
// the client is built so the error can name the missing variables.
func (c Config) Validate() error {
	if err := validate.Struct(c.API); err != nil {
		return fmt.Errorf("invalid api config: %w", err)
	}
	if err := validate.Struct(c.Log); err != nil {
		return fmt.Errorf("invalid log config: %w", err)
	}
	return nil
}

// Load reads YAML config from path on top of Default. A missing file is not an
// error. The env file is applied and credentials resolved before returning.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		path = DefaultPath
	}
	b, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return cfg, err
	default:
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return cfg, fmt.Errorf("parse %s: %w", path, err)
		}
	}
	if cfg.EnvFile != "" {
		if err := LoadEnvFile(cfg.EnvFile); err != nil {
			return cfg, err
		}
	}
	cfg.ResolveEnv()
	return cfg, cfg.Validate()
}

// Save writes YAML config to path, creating directories as needed.
func Save(path string, cfg Config) error {
	if path == "" {
		return errors.New("empty path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	b, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o600)
}
