package service

import (
	"fmt"

	cryptoDomain "github.com/allisson/configd/internal/crypto/domain"
)

// SecretCipher encrypts whole payloads into EncryptedBlob bytes with the master key.
//
// New blobs use the configured algorithm; Decrypt always honours the algorithm
// recorded in the blob header.
type SecretCipher struct {
	masterKey   *cryptoDomain.MasterKey
	algorithm   cryptoDomain.Algorithm
	aeadManager AEADManager
}

// NewSecretCipher creates a SecretCipher.
func NewSecretCipher(
	masterKey *cryptoDomain.MasterKey,
	algorithm cryptoDomain.Algorithm,
	aeadManager AEADManager,
) (*SecretCipher, error) {
	if masterKey == nil || len(masterKey.Key) != cryptoDomain.KeySize {
		return nil, cryptoDomain.ErrInvalidKeySize
	}
	if _, err := algorithm.ID(); err != nil {
		return nil, err
	}
	return &SecretCipher{
		masterKey:   masterKey,
		algorithm:   algorithm,
		aeadManager: aeadManager,
	}, nil
}

// Encrypt seals plaintext under a fresh nonce and returns the encoded blob.
func (s *SecretCipher) Encrypt(plaintext []byte) ([]byte, error) {
	aead, err := s.aeadManager.CreateCipher(s.masterKey.Key, s.algorithm)
	if err != nil {
		return nil, err
	}

	blob := cryptoDomain.EncryptedBlob{
		Version:   cryptoDomain.BlobVersion1,
		Algorithm: s.algorithm,
	}
	aad, err := blob.AAD()
	if err != nil {
		return nil, err
	}

	blob.Ciphertext, blob.Nonce, err = aead.Encrypt(plaintext, aad)
	if err != nil {
		return nil, fmt.Errorf("failed to encrypt payload: %w", err)
	}

	return blob.Bytes()
}

// Decrypt opens an encoded blob. Every failure is reported as ErrDecryptionFailed.
func (s *SecretCipher) Decrypt(data []byte) ([]byte, error) {
	blob, err := cryptoDomain.ParseEncryptedBlob(data)
	if err != nil {
		return nil, err
	}

	aad, err := blob.AAD()
	if err != nil {
		return nil, cryptoDomain.ErrDecryptionFailed
	}

	aead, err := s.aeadManager.CreateCipher(s.masterKey.Key, blob.Algorithm)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", cryptoDomain.ErrDecryptionFailed, err)
	}

	plaintext, err := aead.Decrypt(blob.Ciphertext, blob.Nonce, aad)
	if err != nil {
		return nil, cryptoDomain.ErrDecryptionFailed
	}
	return plaintext, nil
}
