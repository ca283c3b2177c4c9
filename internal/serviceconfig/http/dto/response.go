package dto

import (
	configDomain "github.com/allisson/configd/internal/serviceconfig/domain"
)

// ServiceResponse describes one stored service document.
type ServiceResponse struct {
	Name       string `json:"name"`
	ConfigFile string `json:"config_file"`
}

// ListServicesResponse lists the stored services.
type ListServicesResponse struct {
	Services []ServiceResponse `json:"services"`
}

// MapToListServicesResponse converts domain service infos into a response.
func MapToListServicesResponse(services []configDomain.ServiceInfo) ListServicesResponse {
	items := make([]ServiceResponse, 0, len(services))
	for _, s := range services {
		items = append(items, ServiceResponse{Name: s.Name, ConfigFile: s.ConfigFile})
	}
	return ListServicesResponse{Services: items}
}

// ConfigResponse carries a whole service document.
type ConfigResponse struct {
	Service string `json:"service"`
	Config  any    `json:"config"`
}

// ConfigValueResponse carries the value found at one dot-path.
type ConfigValueResponse struct {
	Service string `json:"service"`
	Path    string `json:"path"`
	Value   any    `json:"value"`
}

// MutationResponse acknowledges a write.
type MutationResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
