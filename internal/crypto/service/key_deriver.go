package service

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"io"
	"log/slog"

	"golang.org/x/crypto/hkdf"

	cryptoDomain "github.com/allisson/configd/internal/crypto/domain"
	"github.com/allisson/configd/internal/fsutil"
)

// Derivation modes for operator-supplied key material.
const (
	DerivationHKDF   = "hkdf"
	DerivationLegacy = "legacy"
)

// hkdfInfo binds derived keys to this application and key version.
const hkdfInfo = "configd master key v1"

const (
	keyFilePerm = 0o600
	keyDirPerm  = 0o700
)

// KeyDeriverOptions configures where the master key comes from.
type KeyDeriverOptions struct {
	// Material is the operator-supplied key (ENCRYPTION_KEY). Empty means use the key file.
	Material string
	// Mode is DerivationHKDF or DerivationLegacy.
	Mode string
	// KeyFile is read when Material is empty, and created on first start.
	KeyFile string
	// KMSKeyURI, when set, makes the key file hold KMS ciphertext.
	KMSKeyURI string
}

// KeyDeriver produces the 32-byte master key used by the secrets cipher.
type KeyDeriver struct {
	opts       KeyDeriverOptions
	kmsService KMSService
	logger     *slog.Logger
}

// NewKeyDeriver creates a KeyDeriver. kmsService is only used when opts.KMSKeyURI is set.
func NewKeyDeriver(opts KeyDeriverOptions, kmsService KMSService, logger *slog.Logger) *KeyDeriver {
	if opts.Mode == "" {
		opts.Mode = DerivationHKDF
	}
	return &KeyDeriver{opts: opts, kmsService: kmsService, logger: logger}
}

// Derive returns the master key.
//
// With operator material the result is deterministic for the same input. Without it,
// the key file is read verbatim, or 32 random bytes are generated and persisted with
// 0600 permissions. A failure to persist a generated key is returned as an error.
func (k *KeyDeriver) Derive(ctx context.Context) (*cryptoDomain.MasterKey, error) {
	var raw []byte
	var err error

	if k.opts.Material != "" {
		raw, err = k.fromMaterial()
	} else {
		raw, err = k.fromKeyFile(ctx)
	}
	if err != nil {
		return nil, err
	}
	defer cryptoDomain.Zero(raw)

	normalized := cryptoDomain.NormalizeKey(raw)
	defer cryptoDomain.Zero(normalized)

	return cryptoDomain.NewMasterKey(normalized)
}

func (k *KeyDeriver) fromMaterial() ([]byte, error) {
	decoded, err := base64.StdEncoding.DecodeString(k.opts.Material)
	if err != nil || len(decoded) == 0 {
		decoded = []byte(k.opts.Material)
	}
	normalized := cryptoDomain.NormalizeKey(decoded)
	cryptoDomain.Zero(decoded)

	switch k.opts.Mode {
	case DerivationLegacy:
		return normalized, nil
	case DerivationHKDF:
		defer cryptoDomain.Zero(normalized)
		out := make([]byte, cryptoDomain.KeySize)
		if _, err := io.ReadFull(hkdf.New(sha256.New, normalized, nil, []byte(hkdfInfo)), out); err != nil {
			return nil, fmt.Errorf("failed to derive master key: %w", err)
		}
		return out, nil
	default:
		cryptoDomain.Zero(normalized)
		return nil, fmt.Errorf("unknown key derivation mode %q", k.opts.Mode)
	}
}

func (k *KeyDeriver) fromKeyFile(ctx context.Context) ([]byte, error) {
	data, exists, err := fsutil.ReadFileIfExists(k.opts.KeyFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read master key file: %w", err)
	}

	if exists {
		if len(data) == 0 {
			return nil, fmt.Errorf("%w: %s is empty", cryptoDomain.ErrKeyFileCorrupted, k.opts.KeyFile)
		}
		if k.opts.KMSKeyURI == "" {
			return data, nil
		}
		return k.unwrap(ctx, data)
	}

	key, err := GenerateKey()
	if err != nil {
		return nil, err
	}

	contents := key
	if k.opts.KMSKeyURI != "" {
		contents, err = k.wrap(ctx, key)
		if err != nil {
			cryptoDomain.Zero(key)
			return nil, err
		}
	}

	if err := fsutil.WriteFileAtomic(k.opts.KeyFile, contents, keyFilePerm, keyDirPerm); err != nil {
		cryptoDomain.Zero(key)
		return nil, fmt.Errorf("failed to persist master key: %w", err)
	}

	if k.logger != nil {
		k.logger.Info("generated new master key",
			slog.String("key_file", k.opts.KeyFile),
			slog.Bool("kms_wrapped", k.opts.KMSKeyURI != ""),
		)
	}
	return key, nil
}

func (k *KeyDeriver) wrap(ctx context.Context, key []byte) ([]byte, error) {
	keeper, err := k.openKeeper(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = keeper.Close()
	}()

	ciphertext, err := keeper.Encrypt(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("failed to encrypt master key with KMS: %w", err)
	}
	return ciphertext, nil
}

func (k *KeyDeriver) unwrap(ctx context.Context, ciphertext []byte) ([]byte, error) {
	keeper, err := k.openKeeper(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = keeper.Close()
	}()

	key, err := keeper.Decrypt(ctx, ciphertext)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to decrypt with KMS: %v", cryptoDomain.ErrKeyFileCorrupted, err)
	}
	return key, nil
}

func (k *KeyDeriver) openKeeper(ctx context.Context) (cryptoDomain.KMSKeeper, error) {
	if k.kmsService == nil {
		return nil, fmt.Errorf("kms key uri configured but no kms service available")
	}
	return k.kmsService.OpenKeeper(ctx, k.opts.KMSKeyURI)
}

// GenerateKey returns 32 bytes from crypto/rand.
func GenerateKey() ([]byte, error) {
	key := make([]byte, cryptoDomain.KeySize)
	if _, err := rand.Read(key); err != nil {
		return nil, fmt.Errorf("failed to generate master key: %w", err)
	}
	return key, nil
}
