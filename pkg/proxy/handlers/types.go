package handlers

import (
	"context"

	"pidginpal-hq/relay/pkg/providers"
	"pidginpal-hq/relay/pkg/proxy"
)

// ChatRelay relays one caller message to the provider.
// *proxy.Relay implements it.
type ChatRelay interface {
	Handle(ctx context.Context, content string) (*proxy.Result, error)
}

// HealthReporter exposes a provider's recent call outcomes.
// *providers.HTTPProvider implements it.
type HealthReporter interface {
	Name() string
	Health() providers.ProviderHealth
}
