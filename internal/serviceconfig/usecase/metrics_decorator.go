package usecase

import (
	"context"
	"encoding/json"
	"time"

	"github.com/allisson/configd/internal/metrics"
	configDomain "github.com/allisson/configd/internal/serviceconfig/domain"
)

// configUseCaseWithMetrics decorates ConfigUseCase with metrics instrumentation.
type configUseCaseWithMetrics struct {
	next    ConfigUseCase
	metrics metrics.BusinessMetrics
}

// NewConfigUseCaseWithMetrics wraps a ConfigUseCase with metrics recording.
func NewConfigUseCaseWithMetrics(useCase ConfigUseCase, m metrics.BusinessMetrics) ConfigUseCase {
	return &configUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

func (c *configUseCaseWithMetrics) record(ctx context.Context, operation string, start time.Time, err error) {
	metrics.Observe(ctx, c.metrics, metrics.DomainConfig, operation, start, err)
}

func (c *configUseCaseWithMetrics) ListServices(ctx context.Context) ([]configDomain.ServiceInfo, error) {
	start := time.Now()
	services, err := c.next.ListServices(ctx)
	c.record(ctx, "config_list_services", start, err)
	return services, err
}

func (c *configUseCaseWithMetrics) GetConfig(ctx context.Context, service string) (any, error) {
	start := time.Now()
	config, err := c.next.GetConfig(ctx, service)
	c.record(ctx, "config_get", start, err)
	return config, err
}

func (c *configUseCaseWithMetrics) GetValue(ctx context.Context, service, path string) (any, error) {
	start := time.Now()
	value, err := c.next.GetValue(ctx, service, path)
	c.record(ctx, "config_get_value", start, err)
	return value, err
}

func (c *configUseCaseWithMetrics) SetValue(
	ctx context.Context,
	service, path string,
	value json.RawMessage,
) error {
	start := time.Now()
	err := c.next.SetValue(ctx, service, path, value)
	c.record(ctx, "config_set_value", start, err)
	return err
}
