// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	validation "github.com/jellydator/validation"
)

// SetSecretRequest contains the body of a secret upsert.
//
// Service and KeyName are accepted for compatibility with existing clients;
// the URL parameters are authoritative. Description is accepted and ignored.
type SetSecretRequest struct {
	Service     string  `json:"service,omitempty"`
	KeyName     string  `json:"key_name,omitempty"`
	Value       *string `json:"value"`
	Description string  `json:"description,omitempty"`
}

// Validate checks that a value was supplied. An empty string is a valid value.
func (r *SetSecretRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Value, validation.NotNil),
	)
}
