// Package usecase implements business logic for per-service configuration documents.
package usecase

import (
	"context"
	"encoding/json"

	configDomain "github.com/allisson/configd/internal/serviceconfig/domain"
)

// DocumentRepository persists one configuration document per service.
type DocumentRepository interface {
	Load(ctx context.Context, service string) (*configDomain.Document, error)
	Save(ctx context.Context, service string, doc *configDomain.Document) error
	List(ctx context.Context) ([]configDomain.ServiceInfo, error)
}

// ConfigUseCase defines the operations on service configuration documents.
//
// Values are returned as JSON-ready values whose mappings keep document key order.
type ConfigUseCase interface {
	// ListServices returns every stored service sorted by name.
	ListServices(ctx context.Context) ([]configDomain.ServiceInfo, error)
	// GetConfig returns the whole document of a service or ErrServiceNotFound.
	GetConfig(ctx context.Context, service string) (any, error)
	// GetValue resolves a dot-path in the document of a service.
	GetValue(ctx context.Context, service, path string) (any, error)
	// SetValue assigns a JSON value at a dot-path, creating the document when absent.
	SetValue(ctx context.Context, service, path string, value json.RawMessage) error
}
