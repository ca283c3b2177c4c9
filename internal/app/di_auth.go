package app

import (
	authService "github.com/allisson/configd/internal/auth/service"
)

// TokenService returns the token service guarding the raw secret value endpoint.
func (c *Container) TokenService() authService.TokenService {
	c.tokenServiceInit.Do(func() {
		c.tokenService = c.initTokenService()
	})
	return c.tokenService
}

// initTokenService creates the token service and warns when the raw value
// endpoint is protected but no token hash has been configured.
func (c *Container) initTokenService() authService.TokenService {
	if c.config.RawValueAuthEnabled && c.config.RawValueTokenHash == "" {
		c.Logger().Warn(
			"RAW_VALUE_TOKEN_HASH is empty: the raw secret value endpoint rejects every request",
		)
	}
	return authService.NewTokenService()
}
