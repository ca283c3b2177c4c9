package usecase

import (
	"context"
	"time"

	"github.com/allisson/configd/internal/metrics"
	secretsDomain "github.com/allisson/configd/internal/secrets/domain"
)

// secretUseCaseWithMetrics decorates SecretUseCase with metrics instrumentation.
type secretUseCaseWithMetrics struct {
	next    SecretUseCase
	metrics metrics.BusinessMetrics
}

// NewSecretUseCaseWithMetrics wraps a SecretUseCase with metrics recording.
func NewSecretUseCaseWithMetrics(useCase SecretUseCase, m metrics.BusinessMetrics) SecretUseCase {
	return &secretUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

func (s *secretUseCaseWithMetrics) record(ctx context.Context, operation string, start time.Time, err error) {
	metrics.Observe(ctx, s.metrics, metrics.DomainSecrets, operation, start, err)
}

// List records metrics for listing every secret.
func (s *secretUseCaseWithMetrics) List(ctx context.Context) (secretsDomain.Document, error) {
	start := time.Now()
	doc, err := s.next.List(ctx)
	s.record(ctx, "secret_list", start, err)
	return doc, err
}

// ListService records metrics for listing the secrets of one service.
func (s *secretUseCaseWithMetrics) ListService(ctx context.Context, service string) (map[string]string, error) {
	start := time.Now()
	keys, err := s.next.ListService(ctx, service)
	s.record(ctx, "secret_list_service", start, err)
	return keys, err
}

// Get records metrics for raw secret retrieval.
func (s *secretUseCaseWithMetrics) Get(ctx context.Context, service, key string) (string, error) {
	start := time.Now()
	value, err := s.next.Get(ctx, service, key)
	s.record(ctx, "secret_get", start, err)
	return value, err
}

// Set records metrics for secret upserts.
func (s *secretUseCaseWithMetrics) Set(ctx context.Context, service, key, value string) error {
	start := time.Now()
	err := s.next.Set(ctx, service, key, value)
	s.record(ctx, "secret_set", start, err)
	return err
}

// Delete records metrics for secret deletion.
func (s *secretUseCaseWithMetrics) Delete(ctx context.Context, service, key string) error {
	start := time.Now()
	err := s.next.Delete(ctx, service, key)
	s.record(ctx, "secret_delete", start, err)
	return err
}
