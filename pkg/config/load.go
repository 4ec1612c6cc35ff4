package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// EnvPrefix is the prefix shared by all environment variable overrides.
const EnvPrefix = "PIDGINPAL_"

// LoadConfig loads configuration from a YAML file at the specified path.
// It applies default values, resolves the provider credential file, validates
// the configuration, and returns any errors. Environment variables are not
// consulted; use LoadConfigWithEnvOverrides for that.
func LoadConfig(path string) (*Config, error) {
	cfg, err := readConfigFile(path)
	if err != nil {
		return nil, err
	}

	ApplyDefaults(cfg)

	if err := resolveAPIKey(cfg); err != nil {
		return nil, err
	}

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// LoadConfigWithEnvOverrides loads configuration from a YAML file and applies
// environment variable overrides. Environment variables follow the naming
// convention PIDGINPAL_SECTION_FIELD (e.g., PIDGINPAL_PROXY_LISTEN_ADDRESS)
// and always take precedence over file-based configuration.
//
// An empty path skips the file and starts from defaults, so the relay can be
// run from environment variables alone.
//
// The loading sequence is:
// 1. Load YAML from file
// 2. Apply default values
// 3. Apply environment variable overrides
// 4. Read provider.api_key_file if no key is set
// 5. Validate final configuration
func LoadConfigWithEnvOverrides(path string) (*Config, error) {
	cfg := &Config{}
	if path != "" {
		var err error
		cfg, err = readConfigFile(path)
		if err != nil {
			return nil, err
		}
	}

	ApplyDefaults(cfg)
	applyEnvOverrides(cfg)

	if err := resolveAPIKey(cfg); err != nil {
		return nil, err
	}

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed after environment overrides: %w", err)
	}

	return cfg, nil
}

// readConfigFile reads and parses a YAML configuration file.
func readConfigFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration file %q: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse configuration file %q: %w", path, err)
	}

	return &cfg, nil
}

// resolveAPIKey fills provider.api_key from provider.api_key_file when the
// key itself is empty.
func resolveAPIKey(cfg *Config) error {
	if cfg.Provider.APIKey != "" || cfg.Provider.APIKeyFile == "" {
		return nil
	}

	data, err := os.ReadFile(cfg.Provider.APIKeyFile)
	if err != nil {
		return fmt.Errorf("failed to read provider api key file %q: %w", cfg.Provider.APIKeyFile, err)
	}

	cfg.Provider.APIKey = strings.TrimSpace(string(data))
	return nil
}

// applyEnvOverrides applies environment variable overrides to the configuration.
// Environment variables use the format PIDGINPAL_SECTION_FIELD. Values that
// fail to parse are ignored and the file value is kept.
func applyEnvOverrides(cfg *Config) {
	// Proxy overrides
	if val := getEnv("PROXY_LISTEN_ADDRESS"); val != "" {
		cfg.Proxy.ListenAddress = val
	}
	if val := getEnv("PROXY_CHAT_PATH"); val != "" {
		cfg.Proxy.ChatPath = val
	}
	if d, ok := getEnvDuration("PROXY_READ_TIMEOUT"); ok {
		cfg.Proxy.ReadTimeout = d
	}
	if d, ok := getEnvDuration("PROXY_WRITE_TIMEOUT"); ok {
		cfg.Proxy.WriteTimeout = d
	}
	if d, ok := getEnvDuration("PROXY_IDLE_TIMEOUT"); ok {
		cfg.Proxy.IdleTimeout = d
	}
	if val := getEnv("PROXY_MAX_BODY_BYTES"); val != "" {
		if n, err := strconv.ParseInt(val, 10, 64); err == nil {
			cfg.Proxy.MaxBodyBytes = n
		}
	}
	if val := getEnv("PROXY_CORS_ALLOWED_ORIGINS"); val != "" {
		cfg.Proxy.CORS.AllowedOrigins = splitList(val)
	}

	// Provider overrides
	if val := getEnv("PROVIDER_BASE_URL"); val != "" {
		cfg.Provider.BaseURL = val
	}
	if val := getEnv("PROVIDER_API_KEY"); val != "" {
		cfg.Provider.APIKey = val
	} else if cfg.Provider.APIKey == "" {
		if val := os.Getenv("OPENAI_API_KEY"); val != "" {
			cfg.Provider.APIKey = val
		}
	}
	if val := getEnv("PROVIDER_API_KEY_FILE"); val != "" {
		cfg.Provider.APIKeyFile = val
	}
	if val := getEnv("PROVIDER_MODEL"); val != "" {
		cfg.Provider.Model = val
	}
	if d, ok := getEnvDuration("PROVIDER_TIMEOUT"); ok {
		cfg.Provider.Timeout = d
	}

	// Persona overrides
	if val := getEnv("PERSONA_SYSTEM_PROMPT"); val != "" {
		cfg.Persona.SystemPrompt = val
	}
	if val := getEnv("PERSONA_FALLBACK_MESSAGE"); val != "" {
		cfg.Persona.FallbackMessage = val
	}

	// Sampling overrides
	if val := getEnv("SAMPLING_MAX_TOKENS"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			cfg.Sampling.MaxTokens = IntPtr(i)
		}
	}
	if val := getEnv("SAMPLING_TEMPERATURE"); val != "" {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			cfg.Sampling.Temperature = Float64Ptr(f)
		}
	}
	if val := getEnv("SAMPLING_TOP_P"); val != "" {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			cfg.Sampling.TopP = Float64Ptr(f)
		}
	}

	// Telemetry overrides
	if val := getEnv("TELEMETRY_LOGGING_LEVEL"); val != "" {
		cfg.Telemetry.Logging.Level = val
	}
	if val := getEnv("TELEMETRY_LOGGING_FORMAT"); val != "" {
		cfg.Telemetry.Logging.Format = val
	}
	if val := getEnv("TELEMETRY_LOGGING_FILE_PATH"); val != "" {
		cfg.Telemetry.Logging.File.Path = val
	}
	if val := getEnv("TELEMETRY_METRICS_ENABLED"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Telemetry.Metrics.Enabled = BoolPtr(b)
		}
	}
	if val := getEnv("TELEMETRY_METRICS_PATH"); val != "" {
		cfg.Telemetry.Metrics.Path = val
	}
	if val := getEnv("TELEMETRY_TRACING_ENABLED"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Telemetry.Tracing.Enabled = b
		}
	}
	if val := getEnv("TELEMETRY_TRACING_EXPORTER"); val != "" {
		cfg.Telemetry.Tracing.Exporter = val
	}
	if val := getEnv("TELEMETRY_TRACING_ENDPOINT"); val != "" {
		cfg.Telemetry.Tracing.Endpoint = val
	}
	if val := getEnv("TELEMETRY_TRACING_SAMPLE_RATIO"); val != "" {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			cfg.Telemetry.Tracing.SampleRatio = f
		}
	}

	// Log file defaults depend on the path, which may only now be set.
	applyTelemetryDefaults(cfg)
}

func getEnv(name string) string {
	return os.Getenv(EnvPrefix + name)
}

func getEnvDuration(name string) (time.Duration, bool) {
	val := getEnv(name)
	if val == "" {
		return 0, false
	}
	d, err := time.ParseDuration(val)
	if err != nil {
		return 0, false
	}
	return d, true
}

// splitList splits a comma-separated list, dropping empty entries.
func splitList(val string) []string {
	parts := strings.Split(val, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
