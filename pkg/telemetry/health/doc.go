// Package health provides the relay's liveness, readiness, and version
// endpoints.
//
// # Endpoints
//
//   - /health: liveness, 200 while the process is serving
//   - /ready: readiness, 200 when every registered check passes, 503 otherwise
//   - /version: build information
//
// # Usage
//
//	checker := health.New(5 * time.Second)
//	checker.RegisterCheck("credential", health.CredentialCheck(relay.HasCredential))
//
//	mux := http.NewServeMux()
//	health.Register(mux, checker, health.VersionInfo{Version: version})
//
// # Liveness vs Readiness
//
// Liveness never runs checks, so a relay without a credential stays alive
// and keeps answering chat requests with 500. Readiness reports it as
// not_ready so a load balancer can hold traffic back until the credential is
// supplied.
package health
