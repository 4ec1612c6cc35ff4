// Package server provides the HTTP server for the PidginPal chat relay.
//
// It mounts the chat handler and the operational endpoints, wraps them in
// the middleware chain, and manages the listener lifecycle.
//
// # Routes
//
//	<proxy.chat_path>   chat relay (OPTIONS, POST)
//	/health             liveness
//	/ready              readiness (503 without a provider credential)
//	/version            build information
//	/health/provider    recent provider call outcomes
//	<metrics.path>      Prometheus metrics, when enabled
//
// # Basic Usage
//
//	relay, err := proxy.NewRelay(proxy.RelayConfigFrom(cfg), provider,
//	    proxy.WithMetrics(collector))
//	if err != nil {
//	    return err
//	}
//
//	checker := health.New(5 * time.Second)
//	checker.RegisterCheck("credential", health.CredentialCheck(relay.HasCredential))
//
//	srv, err := server.NewServer(cfg, server.Dependencies{
//	    Relay:    relay,
//	    Provider: provider,
//	    Checker:  checker,
//	    Metrics:  collector,
//	})
//	if err != nil {
//	    return err
//	}
//	return srv.Start(ctx)
//
// # Shutdown
//
// Start returns when ctx is cancelled or Stop is called. In-flight
// requests get up to proxy.shutdown_timeout to finish.
package server
