// Package http provides HTTP middleware and handlers for authentication.
package http

import (
	"context"

	serviceDomain "github.com/allisson/serviceauth/internal/service/domain"
)

// serviceKey is a context key type for storing authenticated services.
type serviceKey struct{}

// WithService stores an authenticated service in the context.
// Called by the service authentication middleware after credential validation.
func WithService(ctx context.Context, service *serviceDomain.Service) context.Context {
	return context.WithValue(ctx, serviceKey{}, service)
}

// GetService retrieves the authenticated service from the context.
// Returns (service, true) if present, or (nil, false) if no service was set.
func GetService(ctx context.Context) (*serviceDomain.Service, bool) {
	service, ok := ctx.Value(serviceKey{}).(*serviceDomain.Service)
	return service, ok
}
