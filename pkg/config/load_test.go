package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}
	return path
}

func TestLoadConfig_ValidFile(t *testing.T) {
	configPath := writeConfig(t, `
proxy:
  listen_address: "0.0.0.0:9090"
  read_timeout: "60s"
  cors:
    allowed_origins:
      - "https://chat.example.com"

provider:
  api_key: "test-key-123"
  model: "gpt-4o"
  timeout: "20s"

sampling:
  temperature: 0

telemetry:
  logging:
    level: "debug"
    format: "text"
`)

	cfg, err := LoadConfig(configPath)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Proxy.ListenAddress != "0.0.0.0:9090" {
		t.Errorf("expected listen address %q, got %q", "0.0.0.0:9090", cfg.Proxy.ListenAddress)
	}
	if cfg.Proxy.ReadTimeout != 60*time.Second {
		t.Errorf("expected read timeout %v, got %v", 60*time.Second, cfg.Proxy.ReadTimeout)
	}
	if got := cfg.Proxy.CORS.AllowedOrigins; len(got) != 1 || got[0] != "https://chat.example.com" {
		t.Errorf("expected allowed origins [https://chat.example.com], got %v", got)
	}
	if cfg.Provider.APIKey != "test-key-123" {
		t.Errorf("expected API key %q, got %q", "test-key-123", cfg.Provider.APIKey)
	}
	if cfg.Provider.Model != "gpt-4o" {
		t.Errorf("expected model %q, got %q", "gpt-4o", cfg.Provider.Model)
	}
	if cfg.Provider.Timeout != 20*time.Second {
		t.Errorf("expected provider timeout %v, got %v", 20*time.Second, cfg.Provider.Timeout)
	}
	if cfg.Telemetry.Logging.Level != "debug" {
		t.Errorf("expected log level %q, got %q", "debug", cfg.Telemetry.Logging.Level)
	}

	// An explicit zero temperature must survive defaulting.
	if cfg.Sampling.Temperature == nil || *cfg.Sampling.Temperature != 0 {
		t.Errorf("expected explicit temperature 0, got %v", cfg.Sampling.Temperature)
	}
	if cfg.Sampling.MaxTokens == nil || *cfg.Sampling.MaxTokens != DefaultMaxTokens {
		t.Errorf("expected default max tokens %d, got %v", DefaultMaxTokens, cfg.Sampling.MaxTokens)
	}

	// Unset fields get defaults
	if cfg.Provider.BaseURL != DefaultProviderBaseURL {
		t.Errorf("expected default base URL %q, got %q", DefaultProviderBaseURL, cfg.Provider.BaseURL)
	}
	if cfg.Persona.FallbackMessage != DefaultFallbackMessage {
		t.Errorf("expected default fallback message, got %q", cfg.Persona.FallbackMessage)
	}
}

func TestLoadConfig_FileNotFound(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected error to wrap os.ErrNotExist, got %v", err)
	}
}

func TestLoadConfig_InvalidYAML(t *testing.T) {
	configPath := writeConfig(t, "proxy: [unclosed")

	_, err := LoadConfig(configPath)
	if err == nil {
		t.Fatal("expected error for invalid YAML")
	}
	if !strings.Contains(err.Error(), "failed to parse") {
		t.Errorf("expected parse error, got %v", err)
	}
}

func TestLoadConfig_ValidationFailure(t *testing.T) {
	configPath := writeConfig(t, `
sampling:
  top_p: 1.5
provider:
  timeout: "10m"
`)

	_, err := LoadConfig(configPath)
	if err == nil {
		t.Fatal("expected validation error")
	}

	var validationErr ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("expected ValidationError, got %T", err)
	}
	if len(validationErr.Errors) != 2 {
		t.Errorf("expected 2 field errors, got %d: %v", len(validationErr.Errors), validationErr.Errors)
	}
}

func TestLoadConfig_APIKeyFile(t *testing.T) {
	keyPath := filepath.Join(t.TempDir(), "openai.key")
	if err := os.WriteFile(keyPath, []byte("sk-fromfile\n"), 0600); err != nil {
		t.Fatalf("failed to write key file: %v", err)
	}

	configPath := writeConfig(t, "provider:\n  api_key_file: \""+keyPath+"\"\n")

	cfg, err := LoadConfig(configPath)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if cfg.Provider.APIKey != "sk-fromfile" {
		t.Errorf("expected API key from file, got %q", cfg.Provider.APIKey)
	}
}

func TestLoadConfig_APIKeyFileMissing(t *testing.T) {
	configPath := writeConfig(t, "provider:\n  api_key_file: \"/nonexistent/openai.key\"\n")

	if _, err := LoadConfig(configPath); err == nil {
		t.Fatal("expected error for unreadable api key file")
	}
}

func TestLoadConfigWithEnvOverrides(t *testing.T) {
	configPath := writeConfig(t, `
proxy:
  listen_address: "127.0.0.1:8080"
provider:
  api_key: "file-key"
`)

	t.Setenv("PIDGINPAL_PROXY_LISTEN_ADDRESS", "0.0.0.0:3000")
	t.Setenv("PIDGINPAL_PROXY_CORS_ALLOWED_ORIGINS", "https://a.example.com, https://b.example.com,")
	t.Setenv("PIDGINPAL_PROVIDER_API_KEY", "env-key")
	t.Setenv("PIDGINPAL_PROVIDER_TIMEOUT", "15s")
	t.Setenv("PIDGINPAL_SAMPLING_MAX_TOKENS", "256")
	t.Setenv("PIDGINPAL_TELEMETRY_METRICS_ENABLED", "false")

	cfg, err := LoadConfigWithEnvOverrides(configPath)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Proxy.ListenAddress != "0.0.0.0:3000" {
		t.Errorf("ListenAddress = %q, want %q", cfg.Proxy.ListenAddress, "0.0.0.0:3000")
	}
	origins := cfg.Proxy.CORS.AllowedOrigins
	if len(origins) != 2 || origins[0] != "https://a.example.com" || origins[1] != "https://b.example.com" {
		t.Errorf("AllowedOrigins = %v, want [https://a.example.com https://b.example.com]", origins)
	}
	if cfg.Provider.APIKey != "env-key" {
		t.Errorf("APIKey = %q, want %q", cfg.Provider.APIKey, "env-key")
	}
	if cfg.Provider.Timeout != 15*time.Second {
		t.Errorf("Timeout = %v, want %v", cfg.Provider.Timeout, 15*time.Second)
	}
	if *cfg.Sampling.MaxTokens != 256 {
		t.Errorf("MaxTokens = %d, want 256", *cfg.Sampling.MaxTokens)
	}
	if cfg.Telemetry.Metrics.IsEnabled() {
		t.Error("expected metrics to be disabled by environment override")
	}
}

func TestLoadConfigWithEnvOverrides_OpenAIKeyFallback(t *testing.T) {
	tests := []struct {
		name      string
		fileKey   string
		prefixed  string
		openaiKey string
		want      string
	}{
		{
			name:      "OPENAI_API_KEY used when nothing else is set",
			openaiKey: "sk-openai",
			want:      "sk-openai",
		},
		{
			name:      "file key wins over OPENAI_API_KEY",
			fileKey:   "sk-file",
			openaiKey: "sk-openai",
			want:      "sk-file",
		},
		{
			name:      "prefixed variable wins over everything",
			fileKey:   "sk-file",
			prefixed:  "sk-prefixed",
			openaiKey: "sk-openai",
			want:      "sk-prefixed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			content := "proxy:\n  listen_address: \"127.0.0.1:8080\"\n"
			if tt.fileKey != "" {
				content += "provider:\n  api_key: \"" + tt.fileKey + "\"\n"
			}
			configPath := writeConfig(t, content)

			t.Setenv("PIDGINPAL_PROVIDER_API_KEY", tt.prefixed)
			t.Setenv("OPENAI_API_KEY", tt.openaiKey)

			cfg, err := LoadConfigWithEnvOverrides(configPath)
			if err != nil {
				t.Fatalf("failed to load config: %v", err)
			}
			if cfg.Provider.APIKey != tt.want {
				t.Errorf("APIKey = %q, want %q", cfg.Provider.APIKey, tt.want)
			}
		})
	}
}

func TestLoadConfigWithEnvOverrides_EmptyPath(t *testing.T) {
	t.Setenv("PIDGINPAL_PROVIDER_API_KEY", "")
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("PIDGINPAL_PROVIDER_MODEL", "gpt-4o")

	cfg, err := LoadConfigWithEnvOverrides("")
	if err != nil {
		t.Fatalf("expected defaults to load without a file, got %v", err)
	}
	if cfg.Provider.Model != "gpt-4o" {
		t.Errorf("Model = %q, want %q", cfg.Provider.Model, "gpt-4o")
	}
	if cfg.Proxy.ListenAddress != DefaultListenAddress {
		t.Errorf("ListenAddress = %q, want %q", cfg.Proxy.ListenAddress, DefaultListenAddress)
	}
	if cfg.Provider.APIKey != "" {
		t.Errorf("expected empty API key, got %q", cfg.Provider.APIKey)
	}
}

func TestApplyEnvOverrides_InvalidValuesIgnored(t *testing.T) {
	cfg := Default()
	t.Setenv("PIDGINPAL_PROVIDER_TIMEOUT", "soon")
	t.Setenv("PIDGINPAL_SAMPLING_TEMPERATURE", "hot")

	applyEnvOverrides(cfg)

	if cfg.Provider.Timeout != DefaultProviderTimeout {
		t.Errorf("Timeout = %v, want %v", cfg.Provider.Timeout, DefaultProviderTimeout)
	}
	if *cfg.Sampling.Temperature != DefaultTemperature {
		t.Errorf("Temperature = %v, want %v", *cfg.Sampling.Temperature, DefaultTemperature)
	}
}
