// Package service provides the access token service guarding privileged endpoints.
//
// Tokens are random 32-byte values shown once to the operator. Only their
// Argon2id hash is kept in configuration.
package service

// TokenService defines operations for access token generation and verification.
type TokenService interface {
	// GenerateToken creates a new random token and its Argon2id hash.
	// The plain token should only be displayed once to the operator.
	GenerateToken() (plainToken string, tokenHash string, err error)

	// HashToken hashes a plain token into a PHC-formatted Argon2id string.
	HashToken(plainToken string) (tokenHash string, err error)

	// CompareToken reports whether plainToken matches tokenHash in constant time.
	// A malformed hash never matches.
	CompareToken(plainToken string, tokenHash string) bool
}
