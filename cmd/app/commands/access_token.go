package commands

import (
	"fmt"
	"io"
	"log/slog"

	authService "github.com/allisson/configd/internal/auth/service"
)

// accessTokenOutput is the JSON shape printed by create-access-token.
type accessTokenOutput struct {
	Token     string `json:"token"`
	TokenHash string `json:"token_hash"`
}

// RunCreateAccessToken generates a random token for the raw secret value endpoint and
// prints it together with its Argon2id hash. Only the hash belongs in the server
// configuration (RAW_VALUE_TOKEN_HASH); the token is shown once and never stored.
func RunCreateAccessToken(
	tokenService authService.TokenService,
	logger *slog.Logger,
	writer io.Writer,
	format string,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}

	token, hash, err := tokenService.GenerateToken()
	if err != nil {
		return fmt.Errorf("failed to generate access token: %w", err)
	}

	logger.Info("generated raw value access token")

	if format == formatJSON {
		return writeJSON(writer, accessTokenOutput{Token: token, TokenHash: hash})
	}

	_, _ = fmt.Fprintln(writer, "# Raw Value Access Token")
	_, _ = fmt.Fprintln(writer, "# Give the token to clients; it cannot be recovered later:")
	_, _ = fmt.Fprintf(writer, "# Authorization: Bearer %s\n", token)
	_, _ = fmt.Fprintln(writer)
	_, _ = fmt.Fprintln(writer, "# Server configuration (single quotes keep the $ characters literal):")
	_, _ = fmt.Fprintf(writer, "RAW_VALUE_TOKEN_HASH='%s'\n", hash)
	return nil
}
