package dto

// ListSecretsResponse lists the masked secrets of every service.
type ListSecretsResponse struct {
	Secrets map[string]map[string]string `json:"secrets"`
}

// ServiceSecretsResponse lists the masked secrets of one service.
type ServiceSecretsResponse struct {
	Service string            `json:"service"`
	Secrets map[string]string `json:"secrets"`
}

// SecretValueResponse carries one plaintext secret value.
// SECURITY: only returned by the protected raw value endpoint.
type SecretValueResponse struct {
	Service string `json:"service"`
	KeyName string `json:"key_name"`
	Value   string `json:"value"`
}

// MutationResponse acknowledges a write.
type MutationResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
