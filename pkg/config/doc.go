// Package config provides configuration management for the PidginPal relay.
//
// This package handles loading and validating configuration from YAML files
// with environment variable overrides. The result is a plain value that is
// built once at process start and handed to each component's constructor;
// nothing in the request path reads configuration from globals.
//
// # Configuration Loading
//
// Configuration can be loaded in two ways:
//
//  1. From a YAML file only:
//     cfg, err := config.LoadConfig("config.yaml")
//
//  2. From a YAML file (or defaults, with an empty path) plus environment
//     variable overrides:
//     cfg, err := config.LoadConfigWithEnvOverrides("config.yaml")
//
// # Environment Variable Overrides
//
// Environment variables follow the naming convention PIDGINPAL_SECTION_FIELD.
// For example:
//
//   - PIDGINPAL_PROXY_LISTEN_ADDRESS overrides proxy.listen_address
//   - PIDGINPAL_PROXY_CORS_ALLOWED_ORIGINS overrides proxy.cors.allowed_origins (comma separated)
//   - PIDGINPAL_PROVIDER_API_KEY overrides provider.api_key
//   - PIDGINPAL_TELEMETRY_LOGGING_LEVEL overrides telemetry.logging.level
//
// OPENAI_API_KEY is used as the provider credential when neither the file nor
// PIDGINPAL_PROVIDER_API_KEY sets one.
//
// # Configuration Precedence
//
// Configuration values are applied in the following order (later overrides earlier):
//
//  1. Values from YAML file
//  2. Default values for anything left unset (defined in defaults.go)
//  3. Environment variable overrides
//  4. provider.api_key_file, if the key is still empty
//  5. Validation (fails fast if invalid)
//
// # Validation
//
// Validation collects every problem before failing:
//
//	configuration validation failed with 2 errors:
//	  - provider.timeout: timeout must be between 1s and 2m0s, got 0s
//	  - sampling.top_p: top_p must be between 0 and 1, got 1.5
//
// An empty provider credential is reported by Warnings, not Validate. The
// relay starts without one and answers chat requests with a 500.
//
// # Example Configuration
//
//	proxy:
//	  listen_address: "0.0.0.0:8080"
//	  cors:
//	    allowed_origins:
//	      - "http://localhost:5173"
//	      - "https://pidginpal.vercel.app"
//
//	provider:
//	  base_url: "https://api.openai.com/v1"
//	  model: "gpt-4o-mini"
//	  timeout: "30s"
//
//	sampling:
//	  max_tokens: 100
//	  temperature: 0.7
//	  top_p: 0.9
//
//	telemetry:
//	  logging:
//	    level: "info"
//	    format: "json"
package config
