package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/allisson/serviceauth/internal/metrics"
	serviceDomain "github.com/allisson/serviceauth/internal/service/domain"
)

// serviceUseCaseWithMetrics decorates ServiceUseCase with metrics instrumentation
// for the administrative operations. Authenticate and CanAccess are measured at
// the auth layer and pass through unrecorded here.
type serviceUseCaseWithMetrics struct {
	next    ServiceUseCase
	metrics metrics.BusinessMetrics
}

// NewServiceUseCaseWithMetrics wraps a ServiceUseCase with metrics recording.
func NewServiceUseCaseWithMetrics(useCase ServiceUseCase, m metrics.BusinessMetrics) ServiceUseCase {
	return &serviceUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

func (s *serviceUseCaseWithMetrics) Authenticate(
	ctx context.Context,
	serviceName string,
	apiKey string,
) (*serviceDomain.Service, error) {
	return s.next.Authenticate(ctx, serviceName, apiKey)
}

// Create records metrics for service registrations and key resets.
func (s *serviceUseCaseWithMetrics) Create(
	ctx context.Context,
	input *serviceDomain.CreateServiceInput,
) (*serviceDomain.CreateServiceOutput, error) {
	start := time.Now()
	output, err := s.next.Create(ctx, input)

	status := metrics.StatusSuccess
	if err != nil {
		status = metrics.StatusError
	}

	s.metrics.RecordOperation(ctx, metrics.DomainService, metrics.OperationCreate, status)
	s.metrics.RecordDuration(ctx, metrics.DomainService, metrics.OperationCreate, time.Since(start), status)

	return output, err
}

func (s *serviceUseCaseWithMetrics) Bootstrap(
	ctx context.Context,
	name string,
	plainAPIKey string,
) (*serviceDomain.Service, error) {
	return s.next.Bootstrap(ctx, name, plainAPIKey)
}

// ReplacePermissions records metrics for permission edge updates.
func (s *serviceUseCaseWithMetrics) ReplacePermissions(
	ctx context.Context,
	id uuid.UUID,
	targetNames []string,
) (*serviceDomain.Service, error) {
	start := time.Now()
	service, err := s.next.ReplacePermissions(ctx, id, targetNames)

	status := metrics.StatusSuccess
	if err != nil {
		status = metrics.StatusError
	}

	s.metrics.RecordOperation(ctx, metrics.DomainService, metrics.OperationEdgeUpdate, status)
	s.metrics.RecordDuration(ctx, metrics.DomainService, metrics.OperationEdgeUpdate, time.Since(start), status)

	return service, err
}

// RotateKey records metrics for API key rotations.
func (s *serviceUseCaseWithMetrics) RotateKey(
	ctx context.Context,
	id uuid.UUID,
) (*serviceDomain.RotateKeyOutput, error) {
	start := time.Now()
	output, err := s.next.RotateKey(ctx, id)

	status := metrics.StatusSuccess
	if err != nil {
		status = metrics.StatusError
	}

	s.metrics.RecordOperation(ctx, metrics.DomainService, metrics.OperationRotateKey, status)
	s.metrics.RecordDuration(ctx, metrics.DomainService, metrics.OperationRotateKey, time.Since(start), status)

	return output, err
}

func (s *serviceUseCaseWithMetrics) CanAccess(
	ctx context.Context,
	sourceID uuid.UUID,
	sourceName string,
	targetName string,
) (bool, error) {
	return s.next.CanAccess(ctx, sourceID, sourceName, targetName)
}
