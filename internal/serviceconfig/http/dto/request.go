// Package dto provides data transfer objects for the config HTTP endpoints.
package dto

import (
	"encoding/json"

	validation "github.com/jellydator/validation"
)

// SetValueRequest assigns Value at the dot-path Path. Value is any JSON value,
// including null; omitting it is a validation error.
type SetValueRequest struct {
	Path  string          `json:"path"`
	Value json.RawMessage `json:"value"`
}

// Validate checks the request fields.
func (r *SetValueRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Path, validation.Required),
		validation.Field(&r.Value, validation.Required),
	)
}
