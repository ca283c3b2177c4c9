// Package validation provides custom validation rules for the application.
package validation

import (
	"regexp"
	"strings"

	validation "github.com/jellydator/validation"

	apperrors "github.com/allisson/configd/internal/errors"
)

var (
	// serviceNameRegex allows letters, digits, '_', '-' and '.', never leading with a dot or dash.
	serviceNameRegex = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_.-]*$`)
)

// WrapValidationError wraps validation errors as domain ErrInvalidInput
func WrapValidationError(err error) error {
	if err == nil {
		return nil
	}
	return apperrors.Wrap(apperrors.ErrInvalidInput, err.Error())
}

// NotBlank validates that a string is not empty after trimming whitespace
var NotBlank = validation.NewStringRuleWithError(
	func(s string) bool {
		return strings.TrimSpace(s) != ""
	},
	validation.NewError("validation_not_blank", "must not be blank"),
)

// ServiceName validates a service identifier that is safe to use as a file name.
var ServiceName = validation.NewStringRuleWithError(
	func(s string) bool {
		return serviceNameRegex.MatchString(s)
	},
	validation.NewError(
		"validation_service_name",
		"must start with a letter or digit and contain only letters, digits, '_', '-' or '.'",
	),
)

// DotPath validates a dot-separated path made of non-empty segments.
var DotPath = validation.NewStringRuleWithError(
	func(s string) bool {
		if s == "" {
			return false
		}
		for _, segment := range strings.Split(s, ".") {
			if segment == "" {
				return false
			}
		}
		return true
	},
	validation.NewError("validation_dot_path", "must be one or more non-empty segments separated by '.'"),
)
