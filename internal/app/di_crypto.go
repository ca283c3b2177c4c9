package app

import (
	"context"
	"fmt"

	cryptoDomain "github.com/allisson/configd/internal/crypto/domain"
	cryptoService "github.com/allisson/configd/internal/crypto/service"
)

// KMSService returns the KMS service.
func (c *Container) KMSService() cryptoService.KMSService {
	c.kmsServiceInit.Do(func() {
		c.kmsService = c.initKMSService()
	})
	return c.kmsService
}

// AEADManager returns the AEAD manager service.
func (c *Container) AEADManager() cryptoService.AEADManager {
	c.aeadManagerInit.Do(func() {
		c.aeadManager = c.initAEADManager()
	})
	return c.aeadManager
}

// MasterKey returns the master key, deriving it (or generating and persisting it) on first access.
func (c *Container) MasterKey() (*cryptoDomain.MasterKey, error) {
	var err error
	c.masterKeyInit.Do(func() {
		c.masterKey, err = c.initMasterKey()
		if err != nil {
			c.initErrors["masterKey"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["masterKey"]; exists {
		return nil, storedErr
	}
	return c.masterKey, nil
}

// SecretCipher returns the cipher sealing the secrets blob.
func (c *Container) SecretCipher() (*cryptoService.SecretCipher, error) {
	var err error
	c.secretCipherInit.Do(func() {
		c.secretCipher, err = c.initSecretCipher()
		if err != nil {
			c.initErrors["secretCipher"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["secretCipher"]; exists {
		return nil, storedErr
	}
	return c.secretCipher, nil
}

// initKMSService creates the KMS service for wrapping the generated key file.
func (c *Container) initKMSService() cryptoService.KMSService {
	return cryptoService.NewKMSService()
}

// initAEADManager creates the AEAD manager service.
func (c *Container) initAEADManager() cryptoService.AEADManager {
	return cryptoService.NewAEADManager()
}

// initMasterKey derives the master key from ENCRYPTION_KEY or the key file.
func (c *Container) initMasterKey() (*cryptoDomain.MasterKey, error) {
	if err := c.StorageDirs(); err != nil {
		return nil, err
	}

	deriver := cryptoService.NewKeyDeriver(
		cryptoService.KeyDeriverOptions{
			Material:  c.config.EncryptionKey,
			Mode:      c.config.KeyDerivation,
			KeyFile:   c.config.KeyFile(),
			KMSKeyURI: c.config.KMSKeyURI,
		},
		c.KMSService(),
		c.Logger(),
	)

	masterKey, err := deriver.Derive(context.Background())
	if err != nil {
		return nil, fmt.Errorf("failed to load master key: %w", err)
	}
	return masterKey, nil
}

// initSecretCipher creates the secret cipher with the configured algorithm.
func (c *Container) initSecretCipher() (*cryptoService.SecretCipher, error) {
	masterKey, err := c.MasterKey()
	if err != nil {
		return nil, fmt.Errorf("failed to get master key for secret cipher: %w", err)
	}

	cipher, err := cryptoService.NewSecretCipher(
		masterKey,
		cryptoDomain.Algorithm(c.config.SecretsCipherAlgorithm),
		c.AEADManager(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create secret cipher: %w", err)
	}
	return cipher, nil
}
