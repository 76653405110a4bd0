package services

import (
	"context"
)

// Provider is a backing service the engine depends on
type Provider interface {
	// Type returns the service type name
	Type() string

	// HealthCheck checks if the service is available
	HealthCheck(ctx context.Context) error

	// Stats reports service-specific figures for the readiness endpoint
	Stats(ctx context.Context) (map[string]any, error)
}

// Unlock releases a lock obtained from a Locker. Calling it more than once
// is harmless.
type Unlock func(ctx context.Context) error

// Locker serializes read-modify-write cycles on one game
type Locker interface {
	Lock(ctx context.Context, key string) (Unlock, error)
}

// BaseProvider provides common functionality for providers
type BaseProvider struct {
	serviceType string
}

// Type returns the service type
func (p *BaseProvider) Type() string {
	return p.serviceType
}
