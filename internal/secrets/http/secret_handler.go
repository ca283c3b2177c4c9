// Package http provides HTTP handlers for the encrypted secrets store.
package http

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/allisson/configd/internal/httputil"
	secretsDomain "github.com/allisson/configd/internal/secrets/domain"
	"github.com/allisson/configd/internal/secrets/http/dto"
	secretsUseCase "github.com/allisson/configd/internal/secrets/usecase"
	customValidation "github.com/allisson/configd/internal/validation"
)

// SecretHandler handles HTTP requests for secret management operations.
type SecretHandler struct {
	secretUseCase secretsUseCase.SecretUseCase
	logger        *slog.Logger
}

// NewSecretHandler creates a new secret handler with required dependencies.
func NewSecretHandler(secretUseCase secretsUseCase.SecretUseCase, logger *slog.Logger) *SecretHandler {
	return &SecretHandler{
		secretUseCase: secretUseCase,
		logger:        logger,
	}
}

// ListHandler returns every service with masked values.
// GET /api/v1/secrets
func (h *SecretHandler) ListHandler(c *gin.Context) {
	doc, err := h.secretUseCase.List(c.Request.Context())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.ListSecretsResponse{Secrets: secretsDomain.MaskDocument(doc)})
}

// ListServiceHandler returns one service's masked values. An unknown service is an empty map.
// GET /api/v1/secrets/:service
func (h *SecretHandler) ListServiceHandler(c *gin.Context) {
	service := c.Param("service")

	keys, err := h.secretUseCase.ListService(c.Request.Context(), service)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.ServiceSecretsResponse{
		Service: service,
		Secrets: secretsDomain.MaskService(keys),
	})
}

// SetHandler creates or replaces one secret.
// POST /api/v1/secrets/:service/:key
func (h *SecretHandler) SetHandler(c *gin.Context) {
	service := c.Param("service")
	key := c.Param("key")

	var req dto.SetSecretRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	if err := h.secretUseCase.Set(c.Request.Context(), service, key, *req.Value); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MutationResponse{
		Success: true,
		Message: fmt.Sprintf("Secret %s saved for %s", key, service),
	})
}

// DeleteHandler removes one secret.
// DELETE /api/v1/secrets/:service/:key
func (h *SecretHandler) DeleteHandler(c *gin.Context) {
	service := c.Param("service")
	key := c.Param("key")

	if err := h.secretUseCase.Delete(c.Request.Context(), service, key); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MutationResponse{
		Success: true,
		Message: fmt.Sprintf("Secret %s deleted for %s", key, service),
	})
}

// GetValueHandler returns the plaintext value of one secret.
// GET /api/v1/secrets/:service/:key/value - protected by the raw value token middleware.
func (h *SecretHandler) GetValueHandler(c *gin.Context) {
	service := c.Param("service")
	key := c.Param("key")

	value, err := h.secretUseCase.Get(c.Request.Context(), service, key)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.SecretValueResponse{
		Service: service,
		KeyName: key,
		Value:   value,
	})
}
