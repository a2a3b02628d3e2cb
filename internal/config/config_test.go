// ABOUTME: Tests for configuration loading and parsing
// ABOUTME: Covers YAML and TOML loading, env var expansion, .env files and defaults

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}
	return path
}

func TestLoad_ValidConfig(t *testing.T) {
	t.Setenv(EnvAPIURL, "")
	configPath := writeConfig(t, "config.yaml", `
assistant:
  base_url: "https://assistant.example.org"
  timeout: "15s"
  user_agent: "coursechat-test/1.0"

chat:
  greeting: "Hello there"
  quick_start:
    - "Vienna - Online A2 Course"

logging:
  level: "debug"
  format: "json"
`)

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Assistant.BaseURL != "https://assistant.example.org" {
		t.Errorf("Assistant.BaseURL = %q, want %q", cfg.Assistant.BaseURL, "https://assistant.example.org")
	}
	if cfg.Assistant.Timeout != 15*time.Second {
		t.Errorf("Assistant.Timeout = %v, want %v", cfg.Assistant.Timeout, 15*time.Second)
	}
	if cfg.Assistant.UserAgent != "coursechat-test/1.0" {
		t.Errorf("Assistant.UserAgent = %q", cfg.Assistant.UserAgent)
	}
	if cfg.Chat.Greeting != "Hello there" {
		t.Errorf("Chat.Greeting = %q, want %q", cfg.Chat.Greeting, "Hello there")
	}
	if len(cfg.Chat.QuickStart) != 1 || cfg.Chat.QuickStart[0] != "Vienna - Online A2 Course" {
		t.Errorf("Chat.QuickStart = %v", cfg.Chat.QuickStart)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want %q", cfg.Logging.Level, "debug")
	}
	if cfg.Logging.Format != "json" {
		t.Errorf("Logging.Format = %q, want %q", cfg.Logging.Format, "json")
	}
}

func TestLoad_TOML(t *testing.T) {
	t.Setenv(EnvAPIURL, "")
	configPath := writeConfig(t, "config.toml", `
[assistant]
base_url = "http://127.0.0.1:9000"
timeout = "2m"

[chat]
quick_start = ["a", "b"]

[logging]
level = "warn"
`)

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Assistant.BaseURL != "http://127.0.0.1:9000" {
		t.Errorf("Assistant.BaseURL = %q", cfg.Assistant.BaseURL)
	}
	if cfg.Assistant.Timeout != 2*time.Minute {
		t.Errorf("Assistant.Timeout = %v, want 2m", cfg.Assistant.Timeout)
	}
	if strings.Join(cfg.Chat.QuickStart, ",") != "a,b" {
		t.Errorf("Chat.QuickStart = %v", cfg.Chat.QuickStart)
	}
	if cfg.Logging.Level != "warn" || cfg.Logging.Format != "text" {
		t.Errorf("Logging = %+v", cfg.Logging)
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv(EnvAPIURL, "")
	configPath := writeConfig(t, "config.yaml", "logging:\n  level: info\n")

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Assistant.BaseURL != "http://localhost:8000" {
		t.Errorf("Assistant.BaseURL = %q, want default", cfg.Assistant.BaseURL)
	}
	if cfg.Assistant.Timeout != 60*time.Second {
		t.Errorf("Assistant.Timeout = %v, want 60s", cfg.Assistant.Timeout)
	}
	if len(cfg.Chat.QuickStart) != len(DefaultQuickStart) {
		t.Errorf("Chat.QuickStart = %v, want defaults", cfg.Chat.QuickStart)
	}
}

func TestLoad_EmptyQuickStartKept(t *testing.T) {
	t.Setenv(EnvAPIURL, "")
	configPath := writeConfig(t, "config.yaml", "chat:\n  quick_start: []\n")

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(cfg.Chat.QuickStart) != 0 {
		t.Errorf("Chat.QuickStart = %v, want empty", cfg.Chat.QuickStart)
	}
}

func TestLoad_EnvVarExpansion(t *testing.T) {
	t.Setenv(EnvAPIURL, "")
	t.Setenv("TEST_ASSISTANT_HOST", "assistant.internal:8443")

	configPath := writeConfig(t, "config.yaml", `
assistant:
  base_url: "https://${TEST_ASSISTANT_HOST}"
`)

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Assistant.BaseURL != "https://assistant.internal:8443" {
		t.Errorf("Assistant.BaseURL = %q, want expanded value", cfg.Assistant.BaseURL)
	}
}

func TestLoad_EnvVarExpansion_UnsetVar(t *testing.T) {
	t.Setenv(EnvAPIURL, "")
	os.Unsetenv("UNSET_GREETING_VAR")

	configPath := writeConfig(t, "config.yaml", `
chat:
  greeting: "${UNSET_GREETING_VAR}"
`)

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Chat.Greeting != "" {
		t.Errorf("Chat.Greeting = %q, want empty string for unset var", cfg.Chat.Greeting)
	}
}

func TestLoad_APIURLOverride(t *testing.T) {
	t.Setenv(EnvAPIURL, "https://override.example.org")
	configPath := writeConfig(t, "config.yaml", `
assistant:
  base_url: "https://file.example.org"
`)

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Assistant.BaseURL != "https://override.example.org" {
		t.Errorf("Assistant.BaseURL = %q, want override", cfg.Assistant.BaseURL)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load("/nonexistent/path/config.yaml")
	if err == nil {
		t.Fatal("Load() expected error for missing file, got nil")
	}
	if !strings.Contains(err.Error(), "reading config file") {
		t.Errorf("error = %v, want reading config file", err)
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	configPath := writeConfig(t, "config.yaml", "assistant:\n  base_url: [unclosed\n")

	_, err := Load(configPath)
	if err == nil {
		t.Fatal("Load() expected error for invalid YAML, got nil")
	}
	if !strings.Contains(err.Error(), "parsing config file") {
		t.Errorf("error = %v, want parsing config file", err)
	}
}

func TestLoad_InvalidTOML(t *testing.T) {
	configPath := writeConfig(t, "config.toml", "[assistant\nbase_url = \n")

	_, err := Load(configPath)
	if err == nil {
		t.Fatal("Load() expected error for invalid TOML, got nil")
	}
}

func TestLoad_InvalidDuration(t *testing.T) {
	t.Setenv(EnvAPIURL, "")
	configPath := writeConfig(t, "config.yaml", "assistant:\n  timeout: \"soon\"\n")

	_, err := Load(configPath)
	if err == nil {
		t.Fatal("Load() expected error for invalid duration, got nil")
	}
	if !strings.Contains(err.Error(), "parsing durations") {
		t.Errorf("error = %v, want parsing durations", err)
	}
}

func TestLoad_InvalidValues(t *testing.T) {
	t.Setenv(EnvAPIURL, "")
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{"ftp url", "assistant:\n  base_url: \"ftp://example.org\"\n", "base_url"},
		{"no host", "assistant:\n  base_url: \"http://\"\n", "base_url"},
		{"negative timeout", "assistant:\n  timeout: \"-5s\"\n", "timeout"},
		{"bad level", "logging:\n  level: \"verbose\"\n", "logging.level"},
		{"bad format", "logging:\n  format: \"xml\"\n", "logging.format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, "config.yaml", tt.content))
			if err == nil {
				t.Fatal("Load() expected validation error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %v, want mention of %q", err, tt.wantErr)
			}
		})
	}
}

func TestExpandEnvVars(t *testing.T) {
	t.Setenv("FOO", "bar")
	t.Setenv("BAZ", "qux")

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"no vars", "hello world", "hello world"},
		{"single var", "${FOO}", "bar"},
		{"var in string", "prefix-${FOO}-suffix", "prefix-bar-suffix"},
		{"multiple vars", "${FOO} and ${BAZ}", "bar and qux"},
		{"unset var", "${UNSET_VAR_12345}", ""},
		{"bare dollar untouched", "$FOO", "$FOO"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := expandEnvVars(tt.input); got != tt.want {
				t.Errorf("expandEnvVars(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestDefaultPath(t *testing.T) {
	t.Run("env override", func(t *testing.T) {
		t.Setenv(EnvConfigPath, "/etc/coursechat.toml")
		if got := DefaultPath(); got != "/etc/coursechat.toml" {
			t.Errorf("DefaultPath() = %q", got)
		}
	})

	t.Run("xdg", func(t *testing.T) {
		t.Setenv(EnvConfigPath, "")
		t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
		want := filepath.Join("/tmp/xdg", "coursechat", "config.yaml")
		if got := DefaultPath(); got != want {
			t.Errorf("DefaultPath() = %q, want %q", got, want)
		}
	})
}

func TestLoadDefault_MissingFileUsesDefaults(t *testing.T) {
	t.Setenv(EnvConfigPath, "")
	t.Setenv(EnvAPIURL, "http://10.0.0.5:8000")
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := LoadDefault()
	if err != nil {
		t.Fatalf("LoadDefault() error = %v", err)
	}
	if cfg.Assistant.BaseURL != "http://10.0.0.5:8000" {
		t.Errorf("Assistant.BaseURL = %q, want env override", cfg.Assistant.BaseURL)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("Logging.Level = %q, want info", cfg.Logging.Level)
	}
}

func TestLoadDefault_ExplicitMissingFileFails(t *testing.T) {
	t.Setenv(EnvConfigPath, filepath.Join(t.TempDir(), "absent.yaml"))

	if _, err := LoadDefault(); err == nil {
		t.Fatal("LoadDefault() expected error for missing COURSECHAT_CONFIG file")
	}
}

func TestLoadDotEnv(t *testing.T) {
	const key = "COURSECHAT_DOTENV_TEST"
	os.Unsetenv(key)
	t.Cleanup(func() { os.Unsetenv(key) })

	envPath := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(envPath, []byte(key+"=from-file\n"), 0644); err != nil {
		t.Fatalf("failed to write .env: %v", err)
	}

	if err := LoadDotEnv(filepath.Join(t.TempDir(), "missing.env"), envPath); err != nil {
		t.Fatalf("LoadDotEnv() error = %v", err)
	}
	if got := os.Getenv(key); got != "from-file" {
		t.Errorf("%s = %q, want from-file", key, got)
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Default().Validate() error = %v", err)
	}
	if cfg.Assistant.Timeout != 60*time.Second {
		t.Errorf("Assistant.Timeout = %v, want 60s", cfg.Assistant.Timeout)
	}
}
