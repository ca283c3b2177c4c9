// Package http provides HTTP handlers for per-service configuration documents.
package http

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/allisson/configd/internal/httputil"
	"github.com/allisson/configd/internal/serviceconfig/http/dto"
	configUseCase "github.com/allisson/configd/internal/serviceconfig/usecase"
	customValidation "github.com/allisson/configd/internal/validation"
)

// ConfigHandler handles HTTP requests for service configuration documents.
type ConfigHandler struct {
	configUseCase configUseCase.ConfigUseCase
	logger        *slog.Logger
}

// NewConfigHandler creates a new config handler with required dependencies.
func NewConfigHandler(configUseCase configUseCase.ConfigUseCase, logger *slog.Logger) *ConfigHandler {
	return &ConfigHandler{
		configUseCase: configUseCase,
		logger:        logger,
	}
}

// ListServicesHandler lists the stored service documents.
// GET /api/v1/services
func (h *ConfigHandler) ListServicesHandler(c *gin.Context) {
	services, err := h.configUseCase.ListServices(c.Request.Context())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapToListServicesResponse(services))
}

// GetConfigHandler returns the whole document of a service.
// GET /api/v1/services/:name/config
func (h *ConfigHandler) GetConfigHandler(c *gin.Context) {
	service := c.Param("name")

	config, err := h.configUseCase.GetConfig(c.Request.Context(), service)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.ConfigResponse{Service: service, Config: config})
}

// GetValueHandler returns the value at a dot-path.
// GET /api/v1/services/:name/config/:path
func (h *ConfigHandler) GetValueHandler(c *gin.Context) {
	service := c.Param("name")
	path := c.Param("path")

	value, err := h.configUseCase.GetValue(c.Request.Context(), service, path)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.ConfigValueResponse{Service: service, Path: path, Value: value})
}

// SetValueHandler assigns a value at a dot-path, creating the document if needed.
// POST /api/v1/services/:name/config
func (h *ConfigHandler) SetValueHandler(c *gin.Context) {
	service := c.Param("name")

	var req dto.SetValueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	if err := h.configUseCase.SetValue(c.Request.Context(), service, req.Path, req.Value); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MutationResponse{
		Success: true,
		Message: fmt.Sprintf("Updated %s", req.Path),
	})
}
