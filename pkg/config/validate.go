package config

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"time"
)

// Provider timeout bounds. The relay never retries, so an unbounded or very
// long timeout would let a hung provider pin inbound connections.
const (
	MinProviderTimeout = 1 * time.Second
	MaxProviderTimeout = 120 * time.Second
)

// FieldError represents a validation error for a specific configuration field.
type FieldError struct {
	// Field is the dotted path to the configuration field (e.g., "proxy.listen_address").
	Field string

	// Message is a human-readable error message.
	Message string
}

// Error returns the error message for this field error.
func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationError represents one or more validation errors in a configuration.
// It implements the error interface and provides access to all field errors.
type ValidationError struct {
	// Errors contains all validation errors found in the configuration.
	Errors []FieldError
}

// Error returns a formatted string containing all validation errors.
func (e ValidationError) Error() string {
	if len(e.Errors) == 0 {
		return "configuration validation failed"
	}
	if len(e.Errors) == 1 {
		return fmt.Sprintf("configuration validation failed: %s", e.Errors[0].Error())
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("configuration validation failed with %d errors:\n", len(e.Errors)))
	for _, err := range e.Errors {
		sb.WriteString(fmt.Sprintf("  - %s\n", err.Error()))
	}
	return sb.String()
}

// Validate validates the entire configuration and returns a ValidationError
// if any validation rules fail. It returns nil if the configuration is valid.
// All validation errors are collected and returned together.
//
// A missing provider credential is deliberately not an error: the relay
// must still start and answer chat requests with a 500. See Warnings.
func Validate(cfg *Config) error {
	var errs []FieldError

	errs = append(errs, validateProxy(&cfg.Proxy)...)
	errs = append(errs, validateProvider(&cfg.Provider)...)
	errs = append(errs, validatePersona(&cfg.Persona)...)
	errs = append(errs, validateSampling(&cfg.Sampling)...)
	errs = append(errs, validateTelemetry(&cfg.Telemetry, cfg.Proxy.ChatPath)...)

	if len(errs) > 0 {
		return ValidationError{Errors: errs}
	}

	return nil
}

// Warnings returns non-fatal configuration problems an operator should see
// at startup.
func Warnings(cfg *Config) []string {
	var warnings []string

	if cfg.Provider.APIKey == "" {
		warnings = append(warnings, "provider.api_key is empty: chat requests will fail with 500 until a credential is configured")
	}
	for _, origin := range cfg.Proxy.CORS.AllowedOrigins {
		if origin == "*" {
			warnings = append(warnings, "proxy.cors.allowed_origins contains \"*\": any website can call the relay")
			break
		}
	}
	if cfg.Proxy.WriteTimeout > 0 && cfg.Proxy.WriteTimeout <= cfg.Provider.Timeout {
		warnings = append(warnings, fmt.Sprintf(
			"proxy.write_timeout (%s) does not exceed provider.timeout (%s): slow provider replies may be cut off",
			cfg.Proxy.WriteTimeout, cfg.Provider.Timeout))
	}

	return warnings
}

// validateProxy validates proxy configuration.
func validateProxy(cfg *ProxyConfig) []FieldError {
	var errs []FieldError

	if cfg.ListenAddress == "" {
		errs = append(errs, FieldError{
			Field:   "proxy.listen_address",
			Message: "listen address is required",
		})
	}

	if !strings.HasPrefix(cfg.ChatPath, "/") {
		errs = append(errs, FieldError{
			Field:   "proxy.chat_path",
			Message: fmt.Sprintf("chat path must start with '/', got %q", cfg.ChatPath),
		})
	}

	if cfg.ReadTimeout < 0 {
		errs = append(errs, FieldError{
			Field:   "proxy.read_timeout",
			Message: "read timeout must be positive",
		})
	}
	if cfg.WriteTimeout < 0 {
		errs = append(errs, FieldError{
			Field:   "proxy.write_timeout",
			Message: "write timeout must be positive",
		})
	}
	if cfg.IdleTimeout < 0 {
		errs = append(errs, FieldError{
			Field:   "proxy.idle_timeout",
			Message: "idle timeout must be positive",
		})
	}
	if cfg.ShutdownTimeout < 0 {
		errs = append(errs, FieldError{
			Field:   "proxy.shutdown_timeout",
			Message: "shutdown timeout must be positive",
		})
	}

	if cfg.MaxHeaderBytes < 0 {
		errs = append(errs, FieldError{
			Field:   "proxy.max_header_bytes",
			Message: "max header bytes must be non-negative",
		})
	}
	if cfg.MaxHeaderBytes > 10*1024*1024 {
		errs = append(errs, FieldError{
			Field:   "proxy.max_header_bytes",
			Message: "max header bytes exceeds reasonable limit (10MB)",
		})
	}
	if cfg.MaxBodyBytes <= 0 {
		errs = append(errs, FieldError{
			Field:   "proxy.max_body_bytes",
			Message: "max body bytes must be positive",
		})
	}

	errs = append(errs, validateCORS(&cfg.CORS)...)

	return errs
}

// validateCORS validates the origin allow-list.
func validateCORS(cfg *CORSConfig) []FieldError {
	var errs []FieldError

	for i, origin := range cfg.AllowedOrigins {
		field := fmt.Sprintf("proxy.cors.allowed_origins[%d]", i)
		if origin == "*" {
			continue
		}
		u, err := url.Parse(origin)
		if err != nil || u.Scheme == "" || u.Host == "" {
			errs = append(errs, FieldError{
				Field:   field,
				Message: fmt.Sprintf("origin must be scheme://host[:port], got %q", origin),
			})
			continue
		}
		if u.Path != "" && u.Path != "/" {
			errs = append(errs, FieldError{
				Field:   field,
				Message: fmt.Sprintf("origin must not contain a path, got %q", origin),
			})
		}
	}

	if cfg.MaxAge < 0 {
		errs = append(errs, FieldError{
			Field:   "proxy.cors.max_age",
			Message: "max age must be non-negative",
		})
	}

	return errs
}

// validateProvider validates provider configuration.
func validateProvider(cfg *ProviderConfig) []FieldError {
	var errs []FieldError

	if cfg.BaseURL == "" {
		errs = append(errs, FieldError{
			Field:   "provider.base_url",
			Message: "base URL is required",
		})
	} else if u, err := url.Parse(cfg.BaseURL); err != nil {
		errs = append(errs, FieldError{
			Field:   "provider.base_url",
			Message: fmt.Sprintf("invalid URL: %v", err),
		})
	} else if u.Scheme != "http" && u.Scheme != "https" {
		errs = append(errs, FieldError{
			Field:   "provider.base_url",
			Message: fmt.Sprintf("URL scheme must be http or https, got %q", u.Scheme),
		})
	}

	if cfg.Model == "" {
		errs = append(errs, FieldError{
			Field:   "provider.model",
			Message: "model is required",
		})
	}

	if cfg.Timeout < MinProviderTimeout || cfg.Timeout > MaxProviderTimeout {
		errs = append(errs, FieldError{
			Field:   "provider.timeout",
			Message: fmt.Sprintf("timeout must be between %s and %s, got %s", MinProviderTimeout, MaxProviderTimeout, cfg.Timeout),
		})
	}

	if cfg.MaxIdleConns < 0 {
		errs = append(errs, FieldError{
			Field:   "provider.max_idle_conns",
			Message: "max idle conns must be non-negative",
		})
	}
	if cfg.MaxIdleConnsPerHost < 0 {
		errs = append(errs, FieldError{
			Field:   "provider.max_idle_conns_per_host",
			Message: "max idle conns per host must be non-negative",
		})
	}

	return errs
}

// validatePersona validates persona configuration.
func validatePersona(cfg *PersonaConfig) []FieldError {
	var errs []FieldError

	if strings.TrimSpace(cfg.SystemPrompt) == "" {
		errs = append(errs, FieldError{
			Field:   "persona.system_prompt",
			Message: "system prompt is required",
		})
	}
	if strings.TrimSpace(cfg.FallbackMessage) == "" {
		errs = append(errs, FieldError{
			Field:   "persona.fallback_message",
			Message: "fallback message is required",
		})
	}

	return errs
}

// validateSampling validates sampling parameters.
func validateSampling(cfg *SamplingConfig) []FieldError {
	var errs []FieldError

	if cfg.MaxTokens != nil && *cfg.MaxTokens <= 0 {
		errs = append(errs, FieldError{
			Field:   "sampling.max_tokens",
			Message: fmt.Sprintf("max tokens must be positive, got %d", *cfg.MaxTokens),
		})
	}
	if cfg.Temperature != nil && (*cfg.Temperature < 0 || *cfg.Temperature > 2) {
		errs = append(errs, FieldError{
			Field:   "sampling.temperature",
			Message: fmt.Sprintf("temperature must be between 0 and 2, got %g", *cfg.Temperature),
		})
	}
	if cfg.TopP != nil && (*cfg.TopP < 0 || *cfg.TopP > 1) {
		errs = append(errs, FieldError{
			Field:   "sampling.top_p",
			Message: fmt.Sprintf("top_p must be between 0 and 1, got %g", *cfg.TopP),
		})
	}

	return errs
}

// validateTelemetry validates telemetry configuration.
func validateTelemetry(cfg *TelemetryConfig, chatPath string) []FieldError {
	var errs []FieldError

	switch strings.ToLower(cfg.Logging.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		errs = append(errs, FieldError{
			Field:   "telemetry.logging.level",
			Message: fmt.Sprintf("invalid log level %q (must be debug, info, warn, or error)", cfg.Logging.Level),
		})
	}

	switch strings.ToLower(cfg.Logging.Format) {
	case "json", "text", "console":
	default:
		errs = append(errs, FieldError{
			Field:   "telemetry.logging.format",
			Message: fmt.Sprintf("invalid log format %q (must be json, text, or console)", cfg.Logging.Format),
		})
	}

	for i, p := range cfg.Logging.RedactPatterns {
		field := fmt.Sprintf("telemetry.logging.redact_patterns[%d]", i)
		if p.Name == "" {
			errs = append(errs, FieldError{Field: field + ".name", Message: "pattern name is required"})
		}
		if _, err := regexp.Compile(p.Pattern); err != nil {
			errs = append(errs, FieldError{Field: field + ".pattern", Message: fmt.Sprintf("invalid regular expression: %v", err)})
		}
	}

	if cfg.Logging.File.MaxSizeMB < 0 || cfg.Logging.File.MaxBackups < 0 || cfg.Logging.File.MaxAgeDays < 0 {
		errs = append(errs, FieldError{
			Field:   "telemetry.logging.file",
			Message: "rotation limits must be non-negative",
		})
	}

	if cfg.Metrics.IsEnabled() {
		if !strings.HasPrefix(cfg.Metrics.Path, "/") {
			errs = append(errs, FieldError{
				Field:   "telemetry.metrics.path",
				Message: fmt.Sprintf("metrics path must start with '/', got %q", cfg.Metrics.Path),
			})
		} else if cfg.Metrics.Path == chatPath {
			errs = append(errs, FieldError{
				Field:   "telemetry.metrics.path",
				Message: "metrics path must differ from proxy.chat_path",
			})
		}
	}
	for i := 1; i < len(cfg.Metrics.RequestDurationBuckets); i++ {
		if cfg.Metrics.RequestDurationBuckets[i] <= cfg.Metrics.RequestDurationBuckets[i-1] {
			errs = append(errs, FieldError{
				Field:   "telemetry.metrics.request_duration_buckets",
				Message: "buckets must be strictly increasing",
			})
			break
		}
	}

	if cfg.Tracing.Enabled {
		switch cfg.Tracing.Sampler {
		case "always", "never":
		case "ratio":
			if cfg.Tracing.SampleRatio < 0 || cfg.Tracing.SampleRatio > 1 {
				errs = append(errs, FieldError{
					Field:   "telemetry.tracing.sample_ratio",
					Message: fmt.Sprintf("sample ratio must be between 0 and 1, got %g", cfg.Tracing.SampleRatio),
				})
			}
		default:
			errs = append(errs, FieldError{
				Field:   "telemetry.tracing.sampler",
				Message: fmt.Sprintf("invalid sampler %q (must be always, never, or ratio)", cfg.Tracing.Sampler),
			})
		}

		switch cfg.Tracing.Exporter {
		case "stdout":
		case "otlp":
			if cfg.Tracing.Endpoint == "" {
				errs = append(errs, FieldError{
					Field:   "telemetry.tracing.endpoint",
					Message: "endpoint is required for the otlp exporter",
				})
			}
		default:
			errs = append(errs, FieldError{
				Field:   "telemetry.tracing.exporter",
				Message: fmt.Sprintf("invalid exporter %q (must be stdout or otlp)", cfg.Tracing.Exporter),
			})
		}
	}

	return errs
}
