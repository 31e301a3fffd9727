package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"

	apperrors "github.com/allisson/serviceauth/internal/errors"
)

func TestService_CanReach(t *testing.T) {
	service := &Service{
		Name:            "billing",
		AllowedServices: []string{"ledger", "notification-service"},
	}

	assert.True(t, service.CanReach("ledger"))
	assert.True(t, service.CanReach("notification-service"))
	assert.False(t, service.CanReach("reporting"))
	assert.False(t, service.CanReach(""))

	// No implicit self edge at the domain level; self-access is the
	// caller's decision.
	assert.False(t, service.CanReach("billing"))
}

func TestService_CanReach_EmptyEdgeSet(t *testing.T) {
	service := &Service{Name: "isolated"}
	assert.False(t, service.CanReach("anything"))
}

func TestDomainErrors(t *testing.T) {
	assert.ErrorIs(t, ErrServiceNotFound, apperrors.ErrNotFound)
	assert.ErrorIs(t, ErrInvalidCredentials, apperrors.ErrUnauthorized)
	assert.ErrorIs(t, ErrAccessDenied, apperrors.ErrForbidden)
}
