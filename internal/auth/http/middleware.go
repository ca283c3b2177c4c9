// Package http provides HTTP middleware guarding privileged endpoints.
package http

import (
	"log/slog"
	"strings"

	"github.com/gin-gonic/gin"

	authService "github.com/allisson/configd/internal/auth/service"
	apperrors "github.com/allisson/configd/internal/errors"
	"github.com/allisson/configd/internal/httputil"
)

// BearerTokenMiddleware requires "Authorization: Bearer <token>" where the
// token matches tokenHash, an Argon2id PHC string.
//
// An empty tokenHash rejects every request: the endpoint stays closed until an
// operator configures a token.
//
// Error handling:
//   - No configured hash → 401 Unauthorized
//   - Missing or malformed Authorization header → 401 Unauthorized
//   - Token not matching the hash → 401 Unauthorized
func BearerTokenMiddleware(
	tokenHash string,
	tokenService authService.TokenService,
	logger *slog.Logger,
) gin.HandlerFunc {
	return func(c *gin.Context) {
		if tokenHash == "" {
			logger.Warn("authentication failed: no access token hash configured")
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			logger.Debug("authentication failed: missing authorization header")
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		// Parse Bearer token (case-insensitive)
		const bearerPrefix = "bearer "
		if len(authHeader) < len(bearerPrefix) ||
			!strings.EqualFold(authHeader[:len(bearerPrefix)], bearerPrefix) {
			logger.Debug("authentication failed: malformed authorization header")
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		plainToken := strings.TrimSpace(authHeader[len(bearerPrefix):])
		if plainToken == "" {
			logger.Debug("authentication failed: empty bearer token")
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		if !tokenService.CompareToken(plainToken, tokenHash) {
			logger.Debug("authentication failed: invalid bearer token",
				slog.String("client_ip", c.ClientIP()))
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		c.Next()
	}
}
