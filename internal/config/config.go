// Package config handles configuration loading and validation for prosecraft
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"gopkg.in/yaml.v3"

	"github.com/prosecraft/prosecraft/internal/platform"
)

// FileName is the default config file name inside the config directory.
const FileName = "prosecraft.yaml"

// Config represents the main configuration for prosecraft
type Config struct {
	// Where preferences and the account session live
	Storage StorageConfig `yaml:"storage"`

	// Text analysis API
	Analysis AnalysisConfig `yaml:"analysis"`

	// Terminal output
	UI UIConfig `yaml:"ui"`
}

// StorageConfig selects and configures the key-value backend
type StorageConfig struct {
	Backend      string      `yaml:"backend"` // file, sqlite, redis, memory
	Path         string      `yaml:"path"`
	WriteTimeout string      `yaml:"write_timeout"`
	Redis        RedisConfig `yaml:"redis"`
}

// RedisConfig holds Redis connection settings
type RedisConfig struct {
	Address  string `yaml:"address"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	Prefix   string `yaml:"prefix"`
}

// AnalysisConfig holds generative-language API settings
type AnalysisConfig struct {
	Endpoint string `yaml:"endpoint"`
	Model    string `yaml:"model"`
	APIKey   string `yaml:"api_key"`
	Timeout  string `yaml:"timeout"`
}

// UIConfig holds terminal output settings
type UIConfig struct {
	NoColor    bool `yaml:"no_color"`
	ShowBanner bool `yaml:"show_banner"`
}

// DefaultConfig returns a sensible default configuration
func DefaultConfig() *Config {
	return &Config{
		Storage: StorageConfig{
			Backend:      "file",
			WriteTimeout: "5s",
			Redis: RedisConfig{
				Address: "localhost:6379",
				Prefix:  "prosecraft:",
			},
		},
		Analysis: AnalysisConfig{
			Endpoint: "https://generativelanguage.googleapis.com/v1beta",
			Model:    "gemini-2.0-flash",
			Timeout:  "30s",
		},
		UI: UIConfig{
			ShowBanner: true,
		},
	}
}

// Load loads configuration from a file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	return cfg, nil
}

// Save saves configuration to a file
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}

// ApplyEnv overrides file values with PROSECRAFT_* and GEMINI_* variables
func (c *Config) ApplyEnv() {
	setString(&c.Storage.Backend, "PROSECRAFT_STORAGE")
	setString(&c.Storage.Path, "PROSECRAFT_STORAGE_PATH")
	setString(&c.Storage.Redis.Address, "PROSECRAFT_REDIS_ADDR")
	setString(&c.Storage.Redis.Password, "PROSECRAFT_REDIS_PASSWORD")
	if v := os.Getenv("PROSECRAFT_REDIS_DB"); v != "" {
		if db, err := strconv.Atoi(v); err == nil {
			c.Storage.Redis.DB = db
		}
	}
	setString(&c.Analysis.Endpoint, "GEMINI_API_URL")
	setString(&c.Analysis.Model, "GEMINI_MODEL")
	setString(&c.Analysis.APIKey, "GEMINI_API_KEY")
	if os.Getenv("NO_COLOR") != "" {
		c.UI.NoColor = true
	}
}

func setString(dst *string, env string) {
	if v := strings.TrimSpace(os.Getenv(env)); v != "" {
		*dst = v
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	err := validation.ValidateStruct(&c.Storage,
		validation.Field(&c.Storage.Backend, validation.Required, validation.In("file", "sqlite", "redis", "memory")),
		validation.Field(&c.Storage.WriteTimeout, validation.By(durationRule)),
	)
	if err != nil {
		return fmt.Errorf("storage: %w", err)
	}

	if c.Storage.Backend == "redis" {
		err := validation.ValidateStruct(&c.Storage.Redis,
			validation.Field(&c.Storage.Redis.Address, validation.Required),
			validation.Field(&c.Storage.Redis.DB, validation.Min(0)),
		)
		if err != nil {
			return fmt.Errorf("storage.redis: %w", err)
		}
	}

	err = validation.ValidateStruct(&c.Analysis,
		validation.Field(&c.Analysis.Endpoint, validation.Required),
		validation.Field(&c.Analysis.Model, validation.Required),
		validation.Field(&c.Analysis.Timeout, validation.By(durationRule)),
	)
	if err != nil {
		return fmt.Errorf("analysis: %w", err)
	}
	return nil
}

func durationRule(value interface{}) error {
	s, _ := value.(string)
	if s == "" {
		return nil
	}
	if _, err := time.ParseDuration(s); err != nil {
		return fmt.Errorf("invalid duration")
	}
	return nil
}

// WriteTimeout returns the storage write timeout, zero when unset
func (c *Config) WriteTimeout() time.Duration {
	return parseDuration(c.Storage.WriteTimeout)
}

// AnalysisTimeout returns the API request timeout, zero when unset
func (c *Config) AnalysisTimeout() time.Duration {
	return parseDuration(c.Analysis.Timeout)
}

func parseDuration(s string) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0
	}
	return d
}

// GetConfigPath returns the path to prosecraft.yaml in the user config directory
func GetConfigPath() (string, error) {
	dir, err := platform.ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, FileName), nil
}

// LoadDefault loads configuration from the user config directory
func LoadDefault() (*Config, error) {
	path, err := GetConfigPath()
	if err != nil {
		return nil, err
	}
	return Load(path)
}
