package main

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"

	"pidginpal-hq/relay/pkg/cli"
	"pidginpal-hq/relay/pkg/config"
	"pidginpal-hq/relay/pkg/server"
	"pidginpal-hq/relay/pkg/telemetry/health"

	"github.com/spf13/cobra"
)

var runFlags struct {
	listenAddress string
	logLevel      string
	dryRun        bool
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start the PidginPal relay server",
	Long: `Start the PidginPal relay server with the specified configuration.

The server listens on the configured address and relays chat requests to the
configured provider. It stops on SIGINT or SIGTERM, letting in-flight requests
finish within proxy.shutdown_timeout.

A missing provider credential does not stop the server: chat requests are
answered with 500 and /ready reports not_ready until one is configured.

Examples:
  # Start with ./config.yaml, or defaults if it does not exist
  pidginpal run

  # Start with a custom config
  pidginpal run --config /etc/pidginpal/config.yaml

  # Override listen address
  pidginpal run --listen 0.0.0.0:8080

  # Validate config without starting the server
  pidginpal run --dry-run`,
	RunE: runServer,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&runFlags.listenAddress, "listen", "l", "", "override listen address")
	runCmd.Flags().StringVar(&runFlags.logLevel, "log-level", "", "override log level (debug, info, warn, error)")
	runCmd.Flags().BoolVar(&runFlags.dryRun, "dry-run", false, "validate config without starting server")
}

func runServer(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfigFor(cmd)
	if err != nil {
		return err
	}

	if runFlags.listenAddress != "" {
		cfg.Proxy.ListenAddress = runFlags.listenAddress
	}
	if runFlags.logLevel != "" {
		cfg.Telemetry.Logging.Level = runFlags.logLevel
	}
	if err := config.Validate(cfg); err != nil {
		return cli.NewConfigError("", err.Error())
	}

	if runFlags.dryRun {
		fmt.Fprintln(cmd.OutOrStdout(), "✓ Configuration valid")
		return nil
	}

	stack, err := newRelayStack(cfg, stackOptions{withMetrics: true})
	if err != nil {
		return cli.NewCommandError("run", err)
	}
	defer func() {
		if err := stack.Close(context.Background()); err != nil {
			slog.Error("failed to shut down cleanly", "error", err)
		}
	}()

	checker := health.New(0)
	checker.RegisterCheck("credential", health.CredentialCheck(stack.relay.HasCredential))

	srv, err := server.NewServer(cfg, server.Dependencies{
		Relay:    stack.relay,
		Provider: stack.provider,
		Checker:  checker,
		Metrics:  stack.metrics,
		Version: health.VersionInfo{
			Version:   Version,
			Commit:    GitCommit,
			BuildTime: BuildDate,
			GoVersion: runtime.Version(),
		},
	})
	if err != nil {
		return cli.NewCommandError("run", err)
	}

	slog.Info("relay configured",
		"version", Version,
		"provider", cfg.Provider.Name,
		"base_url", cfg.Provider.BaseURL,
		"model", cfg.Provider.Model,
		"credential_configured", stack.relay.HasCredential(),
		"allowed_origins", cfg.Proxy.CORS.AllowedOrigins,
		"metrics_enabled", stack.metrics != nil,
		"tracing_enabled", stack.tracer.Enabled(),
	)

	ctx, stop := cli.SetupSignalHandler(cmd.Context())
	defer stop()

	if err := srv.Start(ctx); err != nil {
		return cli.NewCommandError("run", err)
	}
	return nil
}
