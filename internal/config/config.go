// Package config provides application configuration.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	DefaultAPIURL  = "http://localhost:8000"
	DefaultTimeout = 30 * time.Second
	DefaultLevel   = "info"
)

// Config holds all application configuration.
type Config struct {
	APIURL   string        `yaml:"api_url"`
	SiteURL  string        `yaml:"site_url"`
	Home     string        `yaml:"-"`
	LogLevel string        `yaml:"log_level"`
	Timeout  time.Duration `yaml:"timeout"`
}

// Load reads configuration in order of increasing priority: defaults, the
// YAML file in the home directory, .env files, then environment variables.
func Load() (*Config, error) {
	home, err := homeDir()
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		APIURL:   DefaultAPIURL,
		Home:     home,
		LogLevel: DefaultLevel,
		Timeout:  DefaultTimeout,
	}
	if err := cfg.loadFile(cfg.FilePath()); err != nil {
		return nil, err
	}

	// .env never overrides variables already set in the environment.
	for _, f := range []string{".env", filepath.Join(home, ".env")} {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", f, err)
		}
	}
	cfg.applyEnv()

	if cfg.SiteURL == "" {
		cfg.SiteURL = siteFromAPI(cfg.APIURL)
	}
	cfg.APIURL = strings.TrimRight(cfg.APIURL, "/")
	cfg.SiteURL = strings.TrimRight(cfg.SiteURL, "/")

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() {
	c.APIURL = getEnv("FOLIO_API_URL", c.APIURL)
	c.SiteURL = getEnv("FOLIO_SITE_URL", c.SiteURL)
	c.LogLevel = getEnv("LOG_LEVEL", c.LogLevel)
	c.Timeout = getEnvDuration("FOLIO_TIMEOUT", c.Timeout)
}

// Validate checks that all required configuration fields are set.
func (c *Config) Validate() error {
	if err := checkURL("FOLIO_API_URL", c.APIURL); err != nil {
		return err
	}
	if err := checkURL("FOLIO_SITE_URL", c.SiteURL); err != nil {
		return err
	}
	if c.Home == "" {
		return fmt.Errorf("FOLIO_HOME cannot be empty")
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("FOLIO_TIMEOUT must be > 0")
	}
	return nil
}

// FilePath returns the optional YAML config file location.
func (c *Config) FilePath() string {
	return filepath.Join(c.Home, "config.yaml")
}

// SessionPath returns where the session record is persisted.
func (c *Config) SessionPath() string {
	return filepath.Join(c.Home, "session.json")
}

// LogPath returns the log file location.
func (c *Config) LogPath() string {
	return filepath.Join(c.Home, "folio.log")
}

func homeDir() (string, error) {
	if h := strings.TrimSpace(os.Getenv("FOLIO_HOME")); h != "" {
		return h, nil
	}
	h, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(h, ".folio"), nil
}

func checkURL(name, raw string) error {
	if raw == "" {
		return fmt.Errorf("%s cannot be empty", name)
	}
	u, err := url.Parse(raw)
	if err != nil || !u.IsAbs() || u.Host == "" {
		return fmt.Errorf("%s must be an absolute URL, got %q", name, raw)
	}
	return nil
}

// siteFromAPI guesses the public site from the API root by dropping an
// "api." host prefix. Without one, the API root is returned as is.
func siteFromAPI(api string) string {
	u, err := url.Parse(api)
	if err != nil || u.Host == "" {
		return api
	}
	if rest, ok := strings.CutPrefix(u.Host, "api."); ok {
		u.Host = rest
	}
	u.Path = ""
	return u.String()
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	d, err := time.ParseDuration(strings.TrimSpace(value))
	if err != nil {
		return fallback
	}
	return d
}
