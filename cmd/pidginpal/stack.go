package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"pidginpal-hq/relay/pkg/config"
	"pidginpal-hq/relay/pkg/providers"
	"pidginpal-hq/relay/pkg/proxy"
	"pidginpal-hq/relay/pkg/telemetry/logging"
	"pidginpal-hq/relay/pkg/telemetry/metrics"
	"pidginpal-hq/relay/pkg/telemetry/tracing"
)

// relayStack is the relay core with its telemetry, built the same way for
// every command that talks to the provider.
type relayStack struct {
	cfg      *config.Config
	logger   *logging.Logger
	metrics  *metrics.Collector
	tracer   *tracing.Tracer
	provider *providers.HTTPProvider
	relay    *proxy.Relay
}

// stackOptions controls the parts of the stack that differ between commands.
type stackOptions struct {
	// logWriter receives log records. Nil means stdout.
	logWriter io.Writer

	// withMetrics creates a Prometheus collector.
	withMetrics bool
}

// newRelayStack builds logging, tracing, metrics, the provider client, and
// the relay from cfg. The logger is installed as the slog default.
func newRelayStack(cfg *config.Config, opts stackOptions) (*relayStack, error) {
	logCfg := logging.ConfigFrom(&cfg.Telemetry.Logging)
	logCfg.Writer = opts.logWriter
	logger, err := logging.New(logCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logging: %w", err)
	}
	slog.SetDefault(logger.Slog())

	s := &relayStack{cfg: cfg, logger: logger}

	s.tracer, err = tracing.New(&cfg.Telemetry.Tracing)
	if err != nil {
		s.Close(context.Background())
		return nil, fmt.Errorf("failed to initialize tracing: %w", err)
	}

	if opts.withMetrics && cfg.Telemetry.Metrics.IsEnabled() {
		s.metrics = metrics.NewCollector(&cfg.Telemetry.Metrics, nil)
	}

	s.provider, err = providers.NewHTTPProvider(providers.ProviderConfig{
		Name:                cfg.Provider.Name,
		BaseURL:             cfg.Provider.BaseURL,
		Timeout:             cfg.Provider.Timeout,
		MaxIdleConns:        cfg.Provider.MaxIdleConns,
		MaxIdleConnsPerHost: cfg.Provider.MaxIdleConnsPerHost,
		IdleConnTimeout:     cfg.Provider.IdleConnTimeout,
	})
	if err != nil {
		s.Close(context.Background())
		return nil, fmt.Errorf("failed to initialize provider: %w", err)
	}

	s.relay, err = proxy.NewRelay(proxy.RelayConfigFrom(cfg), s.provider, proxy.WithMetrics(s.metrics))
	if err != nil {
		s.Close(context.Background())
		return nil, fmt.Errorf("failed to initialize relay: %w", err)
	}

	for _, warning := range config.Warnings(cfg) {
		slog.Warn("configuration warning", "warning", warning)
	}

	return s, nil
}

// Close flushes spans and releases the provider pool and log file.
func (s *relayStack) Close(ctx context.Context) error {
	var errs []error
	if s.provider != nil {
		errs = append(errs, s.provider.Close())
	}
	if s.tracer != nil {
		errs = append(errs, s.tracer.Shutdown(ctx))
	}
	if s.logger != nil {
		errs = append(errs, s.logger.Shutdown())
	}
	return errors.Join(errs...)
}
