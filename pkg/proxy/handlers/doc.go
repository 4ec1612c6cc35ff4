// Package handlers provides the HTTP handlers mounted by the relay server.
//
// # Handler Types
//
//   - ChatHandler: the chat endpoint (OPTIONS and POST)
//   - ProviderHealthHandler: GET /health/provider, recent provider call outcomes
//
// Liveness and readiness are served by pkg/telemetry/health.
//
// # Request Flow
//
// ChatHandler follows the same steps for every POST:
//
//  1. Parse messages[0].content (proxy.ParseChatRequest)
//  2. Relay it once (ChatRelay.Handle)
//  3. Write the fallback or the provider's raw answer (proxy.WriteResult)
//  4. On error, map it with proxy.HandleError and write {"error","details"}
//  5. Record the outcome, status, and duration
//
// # Status Codes
//
//	200  provider success, or fallback on provider 402/429
//	400  invalid payload
//	405  method other than POST or OPTIONS
//	500  missing credential or transport failure
//	xxx  any other provider status, passed through
package handlers
