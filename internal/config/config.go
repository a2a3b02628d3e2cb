// ABOUTME: Configuration loading and parsing for coursechat
// ABOUTME: Supports YAML or TOML files with env var expansion, .env files and duration parsing

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	// EnvConfigPath overrides the config file location.
	EnvConfigPath = "COURSECHAT_CONFIG"
	// EnvAPIURL overrides assistant.base_url.
	EnvAPIURL = "COURSECHAT_API_URL"

	defaultBaseURL = "http://localhost:8000"
	defaultTimeout = 60 * time.Second
)

// DefaultQuickStart are the example prompts offered on an empty conversation.
var DefaultQuickStart = []string{
	"Krakow - Online B1 Course",
	"brno - Offline A1 Course",
	"In which cities are you located?",
	"What is the best course for me?",
}

// Config represents the complete coursechat configuration
type Config struct {
	Assistant AssistantConfig `yaml:"assistant" toml:"assistant"`
	Chat      ChatConfig      `yaml:"chat" toml:"chat"`
	Logging   LoggingConfig   `yaml:"logging" toml:"logging"`
}

// AssistantConfig holds the assistant service connection settings
type AssistantConfig struct {
	BaseURL   string        `yaml:"base_url" toml:"base_url"`
	UserAgent string        `yaml:"user_agent" toml:"user_agent"`
	Timeout   time.Duration `yaml:"-" toml:"-"`

	// Raw string value for unmarshaling
	TimeoutRaw string `yaml:"timeout" toml:"timeout"`
}

// ChatConfig holds conversation presentation settings
type ChatConfig struct {
	Greeting   string   `yaml:"greeting" toml:"greeting"`
	QuickStart []string `yaml:"quick_start" toml:"quick_start"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `yaml:"level" toml:"level"`
	Format string `yaml:"format" toml:"format"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load reads a configuration file from the given path and returns a parsed Config.
// Files ending in .toml are decoded as TOML, everything else as YAML.
// Environment variables in the format ${VAR_NAME} are expanded.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	expanded := expandEnvVars(string(data))

	var cfg Config
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		if _, err := toml.Decode(expanded, &cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	} else {
		if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := parseDurations(&cfg); err != nil {
		return nil, fmt.Errorf("parsing durations: %w", err)
	}

	cfg.applyEnvOverrides()
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return &cfg, nil
}

// LoadDefault loads the file at DefaultPath. A missing file at the default
// location yields Default() with env overrides; a missing file named by
// COURSECHAT_CONFIG is an error.
func LoadDefault() (*Config, error) {
	path := DefaultPath()
	cfg, err := Load(path)
	if err == nil {
		return cfg, nil
	}
	if os.Getenv(EnvConfigPath) == "" && errors.Is(err, fs.ErrNotExist) {
		cfg = &Config{}
		cfg.applyEnvOverrides()
		cfg.applyDefaults()
		if err := cfg.Validate(); err != nil {
			return nil, fmt.Errorf("validating config: %w", err)
		}
		return cfg, nil
	}
	return nil, err
}

// DefaultPath returns the path to the config file.
// Priority: COURSECHAT_CONFIG env var > XDG_CONFIG_HOME/coursechat/config.yaml > ~/.config/coursechat/config.yaml
func DefaultPath() string {
	if envPath := os.Getenv(EnvConfigPath); envPath != "" {
		return envPath
	}

	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "config.yaml"
		}
		configDir = filepath.Join(homeDir, ".config")
	}

	return filepath.Join(configDir, "coursechat", "config.yaml")
}

// LoadDotEnv loads KEY=value pairs from the given files (default ".env")
// into the process environment without overriding variables already set.
// Missing files are skipped.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("loading %s: %w", p, err)
		}
	}
	return nil
}

// expandEnvVars replaces ${VAR_NAME} patterns with the corresponding environment variable values.
// If the environment variable is not set, it is replaced with an empty string.
func expandEnvVars(s string) string {
	re := regexp.MustCompile(`\$\{([^}]+)\}`)

	return re.ReplaceAllStringFunc(s, func(match string) string {
		varName := re.FindStringSubmatch(match)[1]
		return os.Getenv(varName)
	})
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(EnvAPIURL); v != "" {
		c.Assistant.BaseURL = v
	}
}

func (c *Config) applyDefaults() {
	if c.Assistant.BaseURL == "" {
		c.Assistant.BaseURL = defaultBaseURL
	}
	if c.Assistant.Timeout == 0 {
		c.Assistant.Timeout = defaultTimeout
	}
	if c.Chat.QuickStart == nil {
		c.Chat.QuickStart = append([]string(nil), DefaultQuickStart...)
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "text"
	}
}

// Validate checks that all configuration fields are present and valid.
// Returns an error describing the first validation failure encountered.
func (c *Config) Validate() error {
	u, err := url.Parse(c.Assistant.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("assistant.base_url must be an http(s) URL, got %q", c.Assistant.BaseURL)
	}

	if c.Assistant.Timeout <= 0 {
		return fmt.Errorf("assistant.timeout must be positive")
	}

	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be one of debug, info, warn, error; got %q", c.Logging.Level)
	}

	switch c.Logging.Format {
	case "text", "json":
	default:
		return fmt.Errorf("logging.format must be text or json; got %q", c.Logging.Format)
	}

	return nil
}

// parseDurations converts the raw duration strings into time.Duration values
func parseDurations(cfg *Config) error {
	if cfg.Assistant.TimeoutRaw != "" {
		d, err := time.ParseDuration(cfg.Assistant.TimeoutRaw)
		if err != nil {
			return fmt.Errorf("parsing timeout %q: %w", cfg.Assistant.TimeoutRaw, err)
		}
		cfg.Assistant.Timeout = d
	}
	return nil
}
