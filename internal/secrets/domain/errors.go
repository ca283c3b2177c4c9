// Package domain defines core domain models and errors for secrets.
package domain

import (
	"github.com/allisson/configd/internal/errors"
)

// Secret-specific error definitions.
var (
	// ErrSecretNotFound indicates the service has no secret with the requested key.
	ErrSecretNotFound = errors.Wrap(errors.ErrNotFound, "secret not found")

	// ErrSecretsUnreadable indicates the encrypted blob exists but cannot be decrypted
	// or decoded with the current master key. Writes are refused while in this state.
	ErrSecretsUnreadable = errors.Wrap(errors.ErrUnavailable, "secrets store unreadable")
)
