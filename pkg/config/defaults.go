package config

import "time"

// Default values for configuration fields.
const (
	// Proxy defaults
	DefaultListenAddress   = "127.0.0.1:8080"
	DefaultChatPath        = "/v1/chat/completions"
	DefaultReadTimeout     = 30 * time.Second
	DefaultWriteTimeout    = 45 * time.Second
	DefaultIdleTimeout     = 120 * time.Second
	DefaultShutdownTimeout = 30 * time.Second
	DefaultMaxHeaderBytes  = 1048576 // 1MB
	DefaultMaxBodyBytes    = int64(1048576)

	// Provider defaults
	DefaultProviderName                = "openai"
	DefaultProviderBaseURL             = "https://api.openai.com/v1"
	DefaultProviderModel               = "gpt-4o-mini"
	DefaultProviderTimeout             = 30 * time.Second
	DefaultProviderMaxIdleConns        = 100
	DefaultProviderMaxIdleConnsPerHost = 10
	DefaultProviderIdleConnTimeout     = 90 * time.Second

	// Persona defaults
	DefaultSystemPrompt    = "You are a rude Nigerian Pidgin chatbot. Respond to users in Nigerian Pidgin English with a sassy and rude tone. Use Nigerian slang and phrases. Be funny but disrespectful."
	DefaultFallbackMessage = "Abeg, no vex. My brain don tire. Try again later."

	// Sampling defaults
	DefaultMaxTokens   = 100
	DefaultTemperature = 0.7
	DefaultTopP        = 0.9

	// Telemetry defaults
	DefaultLoggingLevel       = "info"
	DefaultLoggingFormat      = "json"
	DefaultLogFileMaxSizeMB   = 10
	DefaultLogFileMaxBackups  = 3
	DefaultLogFileMaxAgeDays  = 28
	DefaultMetricsPath        = "/metrics"
	DefaultMetricsNamespace   = "pidginpal"
	DefaultTracingSampler     = "always"
	DefaultTracingSampleRatio = 1.0
	DefaultTracingExporter    = "stdout"
	DefaultTracingEndpoint    = "localhost:4317"
	DefaultTracingService     = "pidginpal-relay"
	DefaultOTLPTimeout        = 10 * time.Second
)

// DefaultAllowedOrigins are the browser origins served when no allow-list
// is configured: the local dev server and the hosted frontend.
var DefaultAllowedOrigins = []string{"http://localhost:5173", "https://pidginpal.vercel.app"}

// DefaultRequestDurationBuckets are histogram buckets, in seconds, sized
// around a provider call that usually takes one to five seconds.
var DefaultRequestDurationBuckets = []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30}

// ApplyDefaults applies default values to a Config struct.
// It sets defaults for any fields that have zero values.
// This function is idempotent and safe to call multiple times.
func ApplyDefaults(cfg *Config) {
	// Proxy defaults
	if cfg.Proxy.ListenAddress == "" {
		cfg.Proxy.ListenAddress = DefaultListenAddress
	}
	if cfg.Proxy.ChatPath == "" {
		cfg.Proxy.ChatPath = DefaultChatPath
	}
	if cfg.Proxy.ReadTimeout == 0 {
		cfg.Proxy.ReadTimeout = DefaultReadTimeout
	}
	if cfg.Proxy.WriteTimeout == 0 {
		cfg.Proxy.WriteTimeout = DefaultWriteTimeout
	}
	if cfg.Proxy.IdleTimeout == 0 {
		cfg.Proxy.IdleTimeout = DefaultIdleTimeout
	}
	if cfg.Proxy.ShutdownTimeout == 0 {
		cfg.Proxy.ShutdownTimeout = DefaultShutdownTimeout
	}
	if cfg.Proxy.MaxHeaderBytes == 0 {
		cfg.Proxy.MaxHeaderBytes = DefaultMaxHeaderBytes
	}
	if cfg.Proxy.MaxBodyBytes == 0 {
		cfg.Proxy.MaxBodyBytes = DefaultMaxBodyBytes
	}

	applyCORSDefaults(cfg)

	// Provider defaults
	if cfg.Provider.Name == "" {
		cfg.Provider.Name = DefaultProviderName
	}
	if cfg.Provider.BaseURL == "" {
		cfg.Provider.BaseURL = DefaultProviderBaseURL
	}
	if cfg.Provider.Model == "" {
		cfg.Provider.Model = DefaultProviderModel
	}
	if cfg.Provider.Timeout == 0 {
		cfg.Provider.Timeout = DefaultProviderTimeout
	}
	if cfg.Provider.MaxIdleConns == 0 {
		cfg.Provider.MaxIdleConns = DefaultProviderMaxIdleConns
	}
	if cfg.Provider.MaxIdleConnsPerHost == 0 {
		cfg.Provider.MaxIdleConnsPerHost = DefaultProviderMaxIdleConnsPerHost
	}
	if cfg.Provider.IdleConnTimeout == 0 {
		cfg.Provider.IdleConnTimeout = DefaultProviderIdleConnTimeout
	}

	// Persona defaults
	if cfg.Persona.SystemPrompt == "" {
		cfg.Persona.SystemPrompt = DefaultSystemPrompt
	}
	if cfg.Persona.FallbackMessage == "" {
		cfg.Persona.FallbackMessage = DefaultFallbackMessage
	}

	// Sampling defaults
	if cfg.Sampling.MaxTokens == nil {
		cfg.Sampling.MaxTokens = IntPtr(DefaultMaxTokens)
	}
	if cfg.Sampling.Temperature == nil {
		cfg.Sampling.Temperature = Float64Ptr(DefaultTemperature)
	}
	if cfg.Sampling.TopP == nil {
		cfg.Sampling.TopP = Float64Ptr(DefaultTopP)
	}

	applyTelemetryDefaults(cfg)
}

// applyCORSDefaults applies default values to CORS configuration.
func applyCORSDefaults(cfg *Config) {
	cors := &cfg.Proxy.CORS

	if cors.Enabled == nil {
		cors.Enabled = BoolPtr(true)
	}
	if len(cors.AllowedOrigins) == 0 {
		cors.AllowedOrigins = append([]string(nil), DefaultAllowedOrigins...)
	}
	if len(cors.AllowedMethods) == 0 {
		cors.AllowedMethods = []string{"POST", "OPTIONS"}
	}
	if len(cors.AllowedHeaders) == 0 {
		cors.AllowedHeaders = []string{"Content-Type", "Authorization"}
	}
}

// applyTelemetryDefaults applies defaults to logging, metrics, and tracing.
func applyTelemetryDefaults(cfg *Config) {
	logging := &cfg.Telemetry.Logging
	if logging.Level == "" {
		logging.Level = DefaultLoggingLevel
	}
	if logging.Format == "" {
		logging.Format = DefaultLoggingFormat
	}
	if logging.RedactPII == nil {
		logging.RedactPII = BoolPtr(true)
	}
	if logging.LogPayloads == nil {
		logging.LogPayloads = BoolPtr(true)
	}
	if logging.File.Path != "" {
		if logging.File.MaxSizeMB == 0 {
			logging.File.MaxSizeMB = DefaultLogFileMaxSizeMB
		}
		if logging.File.MaxBackups == 0 {
			logging.File.MaxBackups = DefaultLogFileMaxBackups
		}
		if logging.File.MaxAgeDays == 0 {
			logging.File.MaxAgeDays = DefaultLogFileMaxAgeDays
		}
	}

	metrics := &cfg.Telemetry.Metrics
	if metrics.Enabled == nil {
		metrics.Enabled = BoolPtr(true)
	}
	if metrics.Path == "" {
		metrics.Path = DefaultMetricsPath
	}
	if metrics.Namespace == "" {
		metrics.Namespace = DefaultMetricsNamespace
	}
	if len(metrics.RequestDurationBuckets) == 0 {
		metrics.RequestDurationBuckets = append([]float64(nil), DefaultRequestDurationBuckets...)
	}

	tracing := &cfg.Telemetry.Tracing
	if tracing.Sampler == "" {
		tracing.Sampler = DefaultTracingSampler
	}
	if tracing.SampleRatio == 0 {
		tracing.SampleRatio = DefaultTracingSampleRatio
	}
	if tracing.Exporter == "" {
		tracing.Exporter = DefaultTracingExporter
	}
	if tracing.Endpoint == "" {
		tracing.Endpoint = DefaultTracingEndpoint
	}
	if tracing.ServiceName == "" {
		tracing.ServiceName = DefaultTracingService
	}
	if tracing.OTLP.Timeout == 0 {
		tracing.OTLP.Timeout = DefaultOTLPTimeout
	}
}

// Default returns a fully defaulted configuration. It is what the relay
// runs with when no configuration file exists.
func Default() *Config {
	cfg := &Config{}
	ApplyDefaults(cfg)
	return cfg
}

// BoolPtr returns a pointer to b.
func BoolPtr(b bool) *bool { return &b }

// IntPtr returns a pointer to i.
func IntPtr(i int) *int { return &i }

// Float64Ptr returns a pointer to f.
func Float64Ptr(f float64) *float64 { return &f }
