// Package domain defines the per-service configuration document model.
package domain

import (
	"github.com/allisson/configd/internal/errors"
)

// Configuration error definitions.
var (
	// ErrServiceNotFound indicates no document exists for the service.
	ErrServiceNotFound = errors.Wrap(errors.ErrNotFound, "service config not found")

	// ErrPathNotFound indicates the dot-path does not resolve in the document.
	ErrPathNotFound = errors.Wrap(errors.ErrNotFound, "config path not found")

	// ErrPathConflict indicates an assignment would have to descend through a non-mapping value.
	ErrPathConflict = errors.Wrap(errors.ErrConflict, "config path conflict")

	// ErrInvalidPath indicates an empty path or a path with an empty segment.
	ErrInvalidPath = errors.Wrap(errors.ErrInvalidInput, "invalid config path")

	// ErrInvalidValue indicates a submitted value that is not valid JSON.
	ErrInvalidValue = errors.Wrap(errors.ErrInvalidInput, "invalid config value")

	// ErrInvalidServiceName indicates a service name that is unsafe to use as a file name.
	ErrInvalidServiceName = errors.Wrap(errors.ErrInvalidInput, "invalid service name")

	// ErrMalformedDocument indicates the stored document is not a YAML mapping.
	ErrMalformedDocument = errors.New("malformed config document")
)
