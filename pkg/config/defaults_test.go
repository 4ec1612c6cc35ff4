package config

import (
	"reflect"
	"testing"
)

func TestApplyDefaults(t *testing.T) {
	cfg := &Config{}
	ApplyDefaults(cfg)

	if cfg.Proxy.ListenAddress != DefaultListenAddress {
		t.Errorf("ListenAddress = %q, want %q", cfg.Proxy.ListenAddress, DefaultListenAddress)
	}
	if cfg.Proxy.ChatPath != DefaultChatPath {
		t.Errorf("ChatPath = %q, want %q", cfg.Proxy.ChatPath, DefaultChatPath)
	}
	if !cfg.Proxy.CORS.IsEnabled() {
		t.Error("CORS should be enabled by default")
	}
	if !reflect.DeepEqual(cfg.Proxy.CORS.AllowedOrigins, DefaultAllowedOrigins) {
		t.Errorf("AllowedOrigins = %v, want %v", cfg.Proxy.CORS.AllowedOrigins, DefaultAllowedOrigins)
	}
	if !reflect.DeepEqual(cfg.Proxy.CORS.AllowedMethods, []string{"POST", "OPTIONS"}) {
		t.Errorf("AllowedMethods = %v", cfg.Proxy.CORS.AllowedMethods)
	}
	if !reflect.DeepEqual(cfg.Proxy.CORS.AllowedHeaders, []string{"Content-Type", "Authorization"}) {
		t.Errorf("AllowedHeaders = %v", cfg.Proxy.CORS.AllowedHeaders)
	}
	if cfg.Provider.Model != "gpt-4o-mini" {
		t.Errorf("Model = %q, want gpt-4o-mini", cfg.Provider.Model)
	}
	if cfg.Provider.Timeout != DefaultProviderTimeout {
		t.Errorf("Timeout = %v, want %v", cfg.Provider.Timeout, DefaultProviderTimeout)
	}
	if *cfg.Sampling.MaxTokens != 100 || *cfg.Sampling.Temperature != 0.7 || *cfg.Sampling.TopP != 0.9 {
		t.Errorf("Sampling = %d/%v/%v, want 100/0.7/0.9",
			*cfg.Sampling.MaxTokens, *cfg.Sampling.Temperature, *cfg.Sampling.TopP)
	}
	if !*cfg.Telemetry.Logging.RedactPII || !*cfg.Telemetry.Logging.LogPayloads {
		t.Error("redaction and payload logging should default to true")
	}
	if cfg.Telemetry.Logging.File.MaxSizeMB != 0 {
		t.Error("log file rotation defaults should not apply without a path")
	}
	if cfg.Telemetry.Tracing.Enabled {
		t.Error("tracing should be disabled by default")
	}
}

func TestApplyDefaults_PreservesExplicitValues(t *testing.T) {
	cfg := &Config{
		Proxy: ProxyConfig{
			CORS: CORSConfig{Enabled: BoolPtr(false)},
		},
		Sampling: SamplingConfig{Temperature: Float64Ptr(0)},
		Telemetry: TelemetryConfig{
			Logging: LoggingConfig{
				LogPayloads: BoolPtr(false),
				File:        LogFileConfig{Path: "relay.log", MaxBackups: 7},
			},
		},
	}
	ApplyDefaults(cfg)

	if cfg.Proxy.CORS.IsEnabled() {
		t.Error("explicitly disabled CORS was re-enabled")
	}
	if *cfg.Sampling.Temperature != 0 {
		t.Errorf("Temperature = %v, want 0", *cfg.Sampling.Temperature)
	}
	if *cfg.Telemetry.Logging.LogPayloads {
		t.Error("explicitly disabled payload logging was re-enabled")
	}
	if cfg.Telemetry.Logging.File.MaxBackups != 7 {
		t.Errorf("MaxBackups = %d, want 7", cfg.Telemetry.Logging.File.MaxBackups)
	}
	if cfg.Telemetry.Logging.File.MaxSizeMB != DefaultLogFileMaxSizeMB {
		t.Errorf("MaxSizeMB = %d, want %d", cfg.Telemetry.Logging.File.MaxSizeMB, DefaultLogFileMaxSizeMB)
	}
}

func TestApplyDefaults_Idempotent(t *testing.T) {
	first := Default()
	second := Default()
	ApplyDefaults(second)

	if !reflect.DeepEqual(first, second) {
		t.Error("ApplyDefaults is not idempotent")
	}
}

func TestApplyDefaults_DoesNotAliasPackageSlices(t *testing.T) {
	cfg := Default()
	cfg.Proxy.CORS.AllowedOrigins[0] = "https://mutated.example.com"

	if DefaultAllowedOrigins[0] == "https://mutated.example.com" {
		t.Error("mutating a config modified DefaultAllowedOrigins")
	}
}
