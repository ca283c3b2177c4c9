package usecase

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"

	apperrors "github.com/allisson/configd/internal/errors"
	configDomain "github.com/allisson/configd/internal/serviceconfig/domain"
)

// configUseCase implements ConfigUseCase.
//
// Reads go straight to the repository since saves replace files atomically.
// Writes to one service are serialized by a per-service mutex held across the
// load, assign and save cycle.
type configUseCase struct {
	repo   DocumentRepository
	locks  sync.Map
	logger *slog.Logger
}

// NewConfigUseCase creates a ConfigUseCase.
func NewConfigUseCase(repo DocumentRepository, logger *slog.Logger) ConfigUseCase {
	if logger == nil {
		logger = slog.Default()
	}
	return &configUseCase{
		repo:   repo,
		logger: logger,
	}
}

func (c *configUseCase) lockFor(service string) *sync.Mutex {
	lock, _ := c.locks.LoadOrStore(service, &sync.Mutex{})
	return lock.(*sync.Mutex)
}

func (c *configUseCase) ListServices(ctx context.Context) ([]configDomain.ServiceInfo, error) {
	return c.repo.List(ctx)
}

func (c *configUseCase) GetConfig(ctx context.Context, service string) (any, error) {
	if err := configDomain.ValidateServiceName(service); err != nil {
		return nil, err
	}

	doc, err := c.repo.Load(ctx, service)
	if err != nil {
		return nil, err
	}
	return doc.Value()
}

func (c *configUseCase) GetValue(ctx context.Context, service, path string) (any, error) {
	if err := configDomain.ValidateServiceName(service); err != nil {
		return nil, err
	}
	dotPath, err := configDomain.ParseDotPath(path)
	if err != nil {
		return nil, err
	}

	doc, err := c.repo.Load(ctx, service)
	if err != nil {
		return nil, err
	}

	node, err := doc.Resolve(dotPath)
	if err != nil {
		return nil, err
	}
	return configDomain.NodeToValue(node)
}

func (c *configUseCase) SetValue(ctx context.Context, service, path string, value json.RawMessage) error {
	if err := configDomain.ValidateServiceName(service); err != nil {
		return err
	}
	dotPath, err := configDomain.ParseDotPath(path)
	if err != nil {
		return err
	}
	node, err := configDomain.ValueFromJSON(value)
	if err != nil {
		return err
	}

	lock := c.lockFor(service)
	lock.Lock()
	defer lock.Unlock()

	doc, err := c.repo.Load(ctx, service)
	if err != nil {
		if !apperrors.Is(err, configDomain.ErrServiceNotFound) {
			return err
		}
		doc = configDomain.NewDocument()
	}

	if err := doc.Assign(dotPath, node); err != nil {
		return err
	}

	if err := c.repo.Save(ctx, service, doc); err != nil {
		return err
	}

	c.logger.Info("config updated", slog.String("service", service), slog.String("path", dotPath.String()))
	return nil
}
