package commands

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"log/slog"
	"os"

	cryptoDomain "github.com/allisson/configd/internal/crypto/domain"
	cryptoService "github.com/allisson/configd/internal/crypto/service"
	"github.com/allisson/configd/internal/fsutil"
)

const (
	keyFilePerm = 0o600
	keyDirPerm  = 0o700
)

// RunCreateMasterKey generates a cryptographically secure 32-byte master key.
//
// Without kmsKeyURI the key is printed as an ENCRYPTION_KEY line ready for a .env file.
// With kmsKeyURI the key is encrypted with the KMS keeper and the ciphertext is written
// to keyFile, which the server reads on start when KMS_KEY_URI is set. An existing key
// file is never overwritten. Key material is zeroed from memory before returning.
//
// Security: base64key:// (localsecrets) is meant for development only.
func RunCreateMasterKey(
	ctx context.Context,
	kmsService cryptoService.KMSService,
	logger *slog.Logger,
	writer io.Writer,
	kmsKeyURI string,
	keyFile string,
) error {
	masterKey, err := cryptoService.GenerateKey()
	if err != nil {
		return err
	}
	defer cryptoDomain.Zero(masterKey)

	if kmsKeyURI == "" {
		logger.Info("generated master key for ENCRYPTION_KEY")

		_, _ = fmt.Fprintln(writer, "# Master Key Configuration")
		_, _ = fmt.Fprintln(writer, "# Copy this environment variable to your .env file or secrets manager")
		_, _ = fmt.Fprintln(writer)
		_, _ = fmt.Fprintf(writer, "ENCRYPTION_KEY=\"%s\"\n", base64.StdEncoding.EncodeToString(masterKey))
		return nil
	}

	if keyFile == "" {
		return fmt.Errorf("--key-file is required when --kms-key-uri is set")
	}
	if _, err := os.Stat(keyFile); err == nil {
		return fmt.Errorf("key file %s already exists, refusing to overwrite it", keyFile)
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("failed to check key file: %w", err)
	}

	keeper, err := kmsService.OpenKeeper(ctx, kmsKeyURI)
	if err != nil {
		return fmt.Errorf("failed to open KMS keeper: %w", err)
	}
	defer func() {
		if closeErr := keeper.Close(); closeErr != nil {
			logger.Error("failed to close KMS keeper", slog.Any("error", closeErr))
		}
	}()

	ciphertext, err := keeper.Encrypt(ctx, masterKey)
	if err != nil {
		return fmt.Errorf("failed to encrypt master key with KMS: %w", err)
	}

	if err := fsutil.WriteFileAtomic(keyFile, ciphertext, keyFilePerm, keyDirPerm); err != nil {
		return fmt.Errorf("failed to write key file: %w", err)
	}

	logger.Info("wrote KMS-wrapped master key", slog.String("key_file", keyFile))

	_, _ = fmt.Fprintln(writer, "# Master Key Configuration (KMS Mode)")
	_, _ = fmt.Fprintf(writer, "# Wrapped key written to %s\n", keyFile)
	_, _ = fmt.Fprintln(writer, "# Leave ENCRYPTION_KEY empty and set:")
	_, _ = fmt.Fprintln(writer)
	_, _ = fmt.Fprintf(writer, "KMS_KEY_URI=\"%s\"\n", kmsKeyURI)
	return nil
}
