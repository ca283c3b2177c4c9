// Package service implements the cryptographic primitives used by the secrets store:
// AEAD ciphers, master key derivation and KMS keepers.
package service

import (
	"context"

	cryptoDomain "github.com/allisson/configd/internal/crypto/domain"
)

// AEAD is an authenticated cipher that generates its own nonce on encryption.
type AEAD interface {
	// Encrypt seals plaintext and returns the ciphertext (with tag) and the random nonce used.
	Encrypt(plaintext, aad []byte) (ciphertext, nonce []byte, err error)

	// Decrypt opens ciphertext. Any failure is reported as ErrDecryptionFailed.
	Decrypt(ciphertext, nonce, aad []byte) ([]byte, error)
}

// AEADManager creates AEAD ciphers by algorithm.
type AEADManager interface {
	CreateCipher(key []byte, alg cryptoDomain.Algorithm) (AEAD, error)
}

// KMSService opens KMS keepers from gocloud.dev URIs.
type KMSService interface {
	OpenKeeper(ctx context.Context, keyURI string) (cryptoDomain.KMSKeeper, error)
}
