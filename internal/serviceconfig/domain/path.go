package domain

import (
	"fmt"
	"strings"

	validation "github.com/jellydator/validation"

	customValidation "github.com/allisson/configd/internal/validation"
)

// DotPath addresses a value in a nested document, one mapping key per segment.
type DotPath []string

// ParseDotPath splits s on '.'. Empty paths and empty segments are rejected.
func ParseDotPath(s string) (DotPath, error) {
	if err := validation.Validate(s, validation.Required, customValidation.DotPath); err != nil {
		return nil, fmt.Errorf("%w: %q %v", ErrInvalidPath, s, err)
	}
	return DotPath(strings.Split(s, ".")), nil
}

func (p DotPath) String() string {
	return strings.Join(p, ".")
}

// ValidateServiceName rejects names that could escape the services directory.
func ValidateServiceName(name string) error {
	if err := validation.Validate(name, validation.Required, customValidation.ServiceName); err != nil {
		return fmt.Errorf("%w: %q %v", ErrInvalidServiceName, name, err)
	}
	return nil
}

// ServiceInfo describes one stored service document.
type ServiceInfo struct {
	Name string
	// ConfigFile is the document path relative to the config directory.
	ConfigFile string
}
