// Package config loads runtime settings from an optional YAML file and
// the environment.
//
// Precedence, lowest first: defaults, the YAML file named by APIDOC_CONFIG
// (or passed explicitly), environment variables, command-line flags (applied
// by the cli package).
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/vitalvas/apidoc/openapi"
	"gopkg.in/yaml.v3"
)

// Environment variables read by Load.
const (
	EnvConfig = "APIDOC_CONFIG"
	EnvMode   = "APP_ENV"
	EnvURL    = "APP_URL"
)

// ModeDev is the APP_ENV value that enables debug mode.
const ModeDev = "dev"

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("config: invalid")

// Info overrides the info block of generated documents.
type Info struct {
	Title       string `yaml:"title"`
	Version     string `yaml:"version"`
	Description string `yaml:"description"`
}

// Cache configures the document cache. An empty Path selects the
// in-memory cache.
type Cache struct {
	Path string        `yaml:"path"`
	TTL  time.Duration `yaml:"ttl"`
}

// Config holds every runtime setting.
type Config struct {
	// Env is the application mode; "dev" enables debug mode.
	Env string `yaml:"env"`
	// ServerURL is the URL of the single server entry.
	ServerURL string `yaml:"serverUrl"`
	Info      Info   `yaml:"info"`
	// Controllers lists package prefixes scanned for controllers, in order.
	// Empty means every registered controller.
	Controllers []string `yaml:"controllers"`

	Listen         string  `yaml:"listen"`
	MaxConnections int     `yaml:"maxConnections"`
	DebugRateLimit float64 `yaml:"debugRateLimit"`
	Cache          Cache   `yaml:"cache"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		ServerURL:      openapi.DefaultServerURL,
		Listen:         ":8000",
		MaxConnections: 256,
		DebugRateLimit: 5,
	}
}

// Load builds the configuration from defaults, the file named by
// APIDOC_CONFIG and the environment.
func Load() (Config, error) {
	return LoadFile(os.Getenv(EnvConfig))
}

// LoadFile builds the configuration from defaults, the given YAML file
// (skipped when path is empty) and the environment.
func LoadFile(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("config: read %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}

	cfg.applyEnv()
	cfg.normalize()

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v, ok := os.LookupEnv(EnvMode); ok {
		c.Env = v
	}
	if v, ok := os.LookupEnv(EnvURL); ok && strings.TrimSpace(v) != "" {
		c.ServerURL = v
	}
}

func (c *Config) normalize() {
	c.Env = strings.ToLower(strings.TrimSpace(c.Env))
	c.ServerURL = strings.TrimSpace(c.ServerURL)
	c.Listen = strings.TrimSpace(c.Listen)
	c.Cache.Path = strings.TrimSpace(c.Cache.Path)

	prefixes := c.Controllers[:0]
	for _, p := range c.Controllers {
		if p = strings.TrimSpace(p); p != "" {
			prefixes = append(prefixes, p)
		}
	}
	c.Controllers = prefixes
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	if c.ServerURL == "" {
		return fmt.Errorf("%w: serverUrl is empty", ErrInvalid)
	}
	if c.MaxConnections < 0 {
		return fmt.Errorf("%w: maxConnections must not be negative", ErrInvalid)
	}
	if c.DebugRateLimit < 0 {
		return fmt.Errorf("%w: debugRateLimit must not be negative", ErrInvalid)
	}
	if c.Cache.TTL < 0 {
		return fmt.Errorf("%w: cache.ttl must not be negative", ErrInvalid)
	}
	return nil
}

// Debug reports whether debug mode is enabled. In debug mode the document
// is regenerated on every request and never cached.
func (c Config) Debug() bool {
	return c.Env == ModeDev
}

// Settings converts the configuration into generator settings.
func (c Config) Settings() openapi.Settings {
	return openapi.Settings{
		Info: openapi.Info{
			Title:       c.Info.Title,
			Version:     c.Info.Version,
			Description: c.Info.Description,
		},
		ServerURL: c.ServerURL,
	}
}
