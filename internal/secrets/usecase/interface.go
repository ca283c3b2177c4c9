// Package usecase implements business logic for the encrypted secrets store.
package usecase

import (
	"context"

	secretsDomain "github.com/allisson/configd/internal/secrets/domain"
)

// SecretRepository loads and persists the whole secrets document.
type SecretRepository interface {
	Load(ctx context.Context) (secretsDomain.LoadResult, error)
	Save(ctx context.Context, doc secretsDomain.Document) error
}

// SecretUseCase defines the operations on per-service secrets.
//
// Values are returned in plaintext; masking for display is the caller's concern.
type SecretUseCase interface {
	// List returns every service with its secrets.
	List(ctx context.Context) (secretsDomain.Document, error)
	// ListService returns the secrets of one service; an unknown service yields an empty map.
	ListService(ctx context.Context, service string) (map[string]string, error)
	// Get returns one secret value or ErrSecretNotFound.
	Get(ctx context.Context, service, key string) (string, error)
	// Set inserts or replaces one secret and persists the whole document.
	Set(ctx context.Context, service, key, value string) error
	// Delete removes one secret, dropping the service with its last key.
	// Deleting an absent secret returns ErrSecretNotFound and does not rewrite the blob.
	Delete(ctx context.Context, service, key string) error
}
