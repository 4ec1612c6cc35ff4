package config

import "time"

// Config is the root configuration structure for the PidginPal relay.
// It is loaded once at process start and treated as read-only afterwards;
// components receive the sections they need through their constructors.
type Config struct {
	// Proxy contains inbound HTTP server configuration including listen
	// address, timeouts, body limits, and CORS.
	Proxy ProxyConfig `yaml:"proxy"`

	// Provider contains the completion provider endpoint, credential, and
	// outbound HTTP client settings.
	Provider ProviderConfig `yaml:"provider"`

	// Persona contains the injected system prompt and the fallback reply
	// served when the provider is out of quota or rate limited.
	Persona PersonaConfig `yaml:"persona"`

	// Sampling contains the sampling parameters attached to every
	// completion request.
	Sampling SamplingConfig `yaml:"sampling"`

	// Telemetry contains configuration for logging, metrics, and tracing.
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// ProxyConfig contains configuration for the inbound HTTP server.
type ProxyConfig struct {
	// ListenAddress is the address and port for the relay to listen on.
	// Format: "host:port" (e.g., "127.0.0.1:8080", "0.0.0.0:8080").
	// Default: "127.0.0.1:8080"
	ListenAddress string `yaml:"listen_address"`

	// ChatPath is the route the chat relay is mounted on.
	// Default: "/v1/chat/completions"
	ChatPath string `yaml:"chat_path"`

	// ReadTimeout is the maximum duration for reading the entire request,
	// including the body.
	// Default: 30s
	ReadTimeout time.Duration `yaml:"read_timeout"`

	// WriteTimeout is the maximum duration before timing out writes of the
	// response. It should exceed provider.timeout so a slow provider reply
	// can still be delivered.
	// Default: 45s
	WriteTimeout time.Duration `yaml:"write_timeout"`

	// IdleTimeout is the maximum amount of time to wait for the next request
	// when keep-alives are enabled.
	// Default: 120s
	IdleTimeout time.Duration `yaml:"idle_timeout"`

	// ShutdownTimeout is the maximum time to wait for in-flight requests
	// to finish during graceful shutdown.
	// Default: 30s
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`

	// MaxHeaderBytes controls the maximum number of bytes the server will
	// read parsing the request header.
	// Default: 1048576 (1MB)
	MaxHeaderBytes int `yaml:"max_header_bytes"`

	// MaxBodyBytes caps the size of an inbound chat request body. Larger
	// bodies are rejected as invalid payloads.
	// Default: 1048576 (1MB)
	MaxBodyBytes int64 `yaml:"max_body_bytes"`

	// CORS contains Cross-Origin Resource Sharing configuration.
	CORS CORSConfig `yaml:"cors"`
}

// CORSConfig contains Cross-Origin Resource Sharing configuration.
type CORSConfig struct {
	// Enabled controls whether CORS headers are emitted.
	// Default: true
	Enabled *bool `yaml:"enabled"`

	// AllowedOrigins is the ordered allow-list of browser origins. A request
	// whose Origin is in this list gets it echoed back in
	// Access-Control-Allow-Origin; other origins get no allow header.
	// Use ["*"] to allow any origin.
	// Default: ["http://localhost:5173", "https://pidginpal.vercel.app"]
	AllowedOrigins []string `yaml:"allowed_origins"`

	// AllowedMethods is the list of allowed HTTP methods.
	// Default: ["POST", "OPTIONS"]
	AllowedMethods []string `yaml:"allowed_methods"`

	// AllowedHeaders is the list of allowed request headers.
	// Default: ["Content-Type", "Authorization"]
	AllowedHeaders []string `yaml:"allowed_headers"`

	// MaxAge is how long (in seconds) browsers may cache a preflight result.
	// Zero omits the Access-Control-Max-Age header.
	// Default: 0
	MaxAge int `yaml:"max_age"`
}

// IsEnabled reports whether CORS is enabled, treating an unset value as true.
func (c CORSConfig) IsEnabled() bool {
	return c.Enabled == nil || *c.Enabled
}

// ProviderConfig contains configuration for the completion provider.
type ProviderConfig struct {
	// Name identifies the provider in logs, metrics, and traces.
	// Default: "openai"
	Name string `yaml:"name"`

	// BaseURL is the provider API base. Requests are sent to
	// BaseURL + "/chat/completions".
	// Default: "https://api.openai.com/v1"
	BaseURL string `yaml:"base_url"`

	// APIKey is the bearer credential sent to the provider. It is normally
	// supplied through PIDGINPAL_PROVIDER_API_KEY or OPENAI_API_KEY rather
	// than written into the file. An empty key does not fail validation;
	// chat requests are answered with 500 until one is configured.
	APIKey string `yaml:"api_key"`

	// APIKeyFile is a path to a file whose trimmed contents are used as the
	// API key when APIKey is empty. The file is read once at load time.
	APIKeyFile string `yaml:"api_key_file"`

	// Model is the model identifier sent with every completion request.
	// Default: "gpt-4o-mini"
	Model string `yaml:"model"`

	// Timeout bounds the whole outbound call, including reading the body.
	// Requests are never retried.
	// Default: 30s
	Timeout time.Duration `yaml:"timeout"`

	// MaxIdleConns is the maximum number of idle connections kept in the
	// outbound pool.
	// Default: 100
	MaxIdleConns int `yaml:"max_idle_conns"`

	// MaxIdleConnsPerHost is the maximum number of idle connections kept per
	// provider host.
	// Default: 10
	MaxIdleConnsPerHost int `yaml:"max_idle_conns_per_host"`

	// IdleConnTimeout is how long an idle outbound connection is kept.
	// Default: 90s
	IdleConnTimeout time.Duration `yaml:"idle_conn_timeout"`
}

// PersonaConfig contains the fixed server-side conversation framing.
type PersonaConfig struct {
	// SystemPrompt is injected as the first message of every completion
	// request. Callers cannot override it.
	SystemPrompt string `yaml:"system_prompt"`

	// FallbackMessage is the assistant reply returned with status 200 when
	// the provider answers 402 or 429.
	FallbackMessage string `yaml:"fallback_message"`
}

// SamplingConfig contains the sampling parameters sent to the provider.
// Unset fields receive defaults; they are pointers so an explicit zero
// temperature survives defaulting.
type SamplingConfig struct {
	// MaxTokens limits the length of the generated reply.
	// Default: 100
	MaxTokens *int `yaml:"max_tokens"`

	// Temperature controls randomness, 0.0 to 2.0.
	// Default: 0.7
	Temperature *float64 `yaml:"temperature"`

	// TopP controls nucleus sampling, 0.0 to 1.0.
	// Default: 0.9
	TopP *float64 `yaml:"top_p"`
}

// TelemetryConfig contains observability configuration.
type TelemetryConfig struct {
	// Logging contains structured logging configuration.
	Logging LoggingConfig `yaml:"logging"`

	// Metrics contains Prometheus metrics configuration.
	Metrics MetricsConfig `yaml:"metrics"`

	// Tracing contains OpenTelemetry tracing configuration.
	Tracing TracingConfig `yaml:"tracing"`
}

// LoggingConfig contains structured logging configuration.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	// Default: "info"
	Level string `yaml:"level"`

	// Format is the log output format: "json", "text", or "console".
	// Console output is colourized and meant for local development.
	// Default: "json"
	Format string `yaml:"format"`

	// AddSource includes the source file and line in log records.
	// Default: false
	AddSource bool `yaml:"add_source"`

	// RedactPII masks credentials and other sensitive values in log
	// records.
	// Default: true
	RedactPII *bool `yaml:"redact_pii"`

	// RedactPatterns contains additional redaction patterns.
	RedactPatterns []RedactPattern `yaml:"redact_patterns"`

	// LogPayloads logs the outbound completion payload and the raw provider
	// response for every relayed request.
	// Default: true
	LogPayloads *bool `yaml:"log_payloads"`

	// File configures an optional rotating log file written in addition to
	// stdout.
	File LogFileConfig `yaml:"file"`
}

// RedactPattern is a user-defined redaction rule.
type RedactPattern struct {
	// Name identifies the pattern.
	Name string `yaml:"name"`

	// Pattern is a Go regular expression.
	Pattern string `yaml:"pattern"`

	// Replacement is the text substituted for each match.
	Replacement string `yaml:"replacement"`
}

// LogFileConfig configures rotating file output.
type LogFileConfig struct {
	// Path is the log file location. Empty disables file output.
	Path string `yaml:"path"`

	// MaxSizeMB is the size at which the file is rotated.
	// Default: 10
	MaxSizeMB int `yaml:"max_size_mb"`

	// MaxBackups is the number of rotated files to keep.
	// Default: 3
	MaxBackups int `yaml:"max_backups"`

	// MaxAgeDays is the number of days to keep rotated files.
	// Default: 28
	MaxAgeDays int `yaml:"max_age_days"`

	// Compress gzips rotated files.
	Compress bool `yaml:"compress"`
}

// MetricsConfig contains Prometheus metrics configuration.
type MetricsConfig struct {
	// Enabled controls whether metrics are collected and exposed.
	// Default: true
	Enabled *bool `yaml:"enabled"`

	// Path is the HTTP path metrics are served on.
	// Default: "/metrics"
	Path string `yaml:"path"`

	// Namespace prefixes every metric name.
	// Default: "pidginpal"
	Namespace string `yaml:"namespace"`

	// Subsystem is inserted between namespace and metric name.
	// Default: ""
	Subsystem string `yaml:"subsystem"`

	// RequestDurationBuckets are histogram buckets, in seconds, for relay
	// and provider latency.
	// Default: [0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30]
	RequestDurationBuckets []float64 `yaml:"request_duration_buckets"`
}

// IsEnabled reports whether metrics are enabled, treating an unset value
// as true.
func (m MetricsConfig) IsEnabled() bool {
	return m.Enabled == nil || *m.Enabled
}

// TracingConfig contains OpenTelemetry tracing configuration.
type TracingConfig struct {
	// Enabled controls whether spans are recorded and exported.
	// Default: false
	Enabled bool `yaml:"enabled"`

	// Sampler is the sampling strategy: "always", "never", or "ratio".
	// Default: "always"
	Sampler string `yaml:"sampler"`

	// SampleRatio is the fraction of traces sampled when Sampler is "ratio".
	// Default: 1.0
	SampleRatio float64 `yaml:"sample_ratio"`

	// Exporter selects the span exporter: "stdout" or "otlp".
	// Default: "stdout"
	Exporter string `yaml:"exporter"`

	// Endpoint is the OTLP collector address (host:port) used when
	// Exporter is "otlp".
	// Default: "localhost:4317"
	Endpoint string `yaml:"endpoint"`

	// ServiceName is reported as the service.name resource attribute.
	// Default: "pidginpal-relay"
	ServiceName string `yaml:"service_name"`

	// OTLP contains OTLP exporter options.
	OTLP OTLPConfig `yaml:"otlp"`
}

// OTLPConfig contains OTLP gRPC exporter options.
type OTLPConfig struct {
	// Insecure disables TLS towards the collector.
	Insecure bool `yaml:"insecure"`

	// Timeout bounds each export call.
	// Default: 10s
	Timeout time.Duration `yaml:"timeout"`
}
