// Package config provides application configuration through environment variables.
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/allisson/go-env"
	validation "github.com/jellydator/validation"
	"github.com/joho/godotenv"
)

// Key derivation modes for operator-supplied ENCRYPTION_KEY material.
const (
	KeyDerivationHKDF   = "hkdf"
	KeyDerivationLegacy = "legacy"
)

// Policies applied when the secrets blob exists but cannot be decrypted.
const (
	DecryptFailurePolicyFail  = "fail"
	DecryptFailurePolicyEmpty = "empty"
)

// Config holds all application configuration.
type Config struct {
	// ServerHost is the host address the server will bind to.
	ServerHost string
	// ServerPort is the port number the server will listen on.
	ServerPort int
	// ServiceName is reported by the health endpoint.
	ServiceName string
	// ShutdownTimeout bounds graceful shutdown of the HTTP servers.
	ShutdownTimeout time.Duration

	// LogLevel is the logging level (e.g., "debug", "info", "warn", "error").
	LogLevel string

	// ConfigDir is the root directory holding service documents and the secrets store.
	ConfigDir string

	// EncryptionKey is the operator-supplied master key material. When empty a key
	// is generated on first start and persisted next to the secrets blob.
	EncryptionKey string
	// KeyDerivation selects how EncryptionKey becomes a 32-byte key ("hkdf" or "legacy").
	KeyDerivation string
	// KMSKeyURI optionally wraps the generated key file with a KMS key (gocloud.dev URI).
	KMSKeyURI string
	// SecretsCipherAlgorithm is the AEAD used for new blobs ("aes-gcm" or "chacha20-poly1305").
	SecretsCipherAlgorithm string
	// SecretsDecryptFailurePolicy decides what happens when the blob cannot be decrypted.
	SecretsDecryptFailurePolicy string

	// RawValueAuthEnabled requires a bearer token on the raw secret value endpoint.
	RawValueAuthEnabled bool
	// RawValueTokenHash is the Argon2id hash of the accepted bearer token.
	RawValueTokenHash string

	// RateLimitEnabled indicates whether rate limiting of the raw value endpoint is enabled.
	RateLimitEnabled bool
	// RateLimitRequestsPerSec is the number of requests allowed per second per client IP.
	RateLimitRequestsPerSec float64
	// RateLimitBurst is the burst size for the raw value endpoint rate limiting.
	RateLimitBurst int

	// CORSEnabled indicates whether CORS is enabled.
	CORSEnabled bool
	// CORSAllowOrigins is a comma-separated list of allowed origins for CORS.
	CORSAllowOrigins string

	// MetricsEnabled indicates whether metrics collection is enabled.
	MetricsEnabled bool
	// MetricsNamespace is the namespace for the application metrics.
	MetricsNamespace string
	// MetricsPort is the port number for the metrics server.
	MetricsPort int

	// BuildCommit and BuildDate label the build_info metric.
	BuildCommit string
	BuildDate   string
}

// Load loads configuration from environment variables and .env file.
func Load() *Config {
	// Try to load .env file recursively
	loadDotEnv()

	return &Config{
		// Server configuration
		ServerHost:      env.GetString("SERVER_HOST", "0.0.0.0"),
		ServerPort:      env.GetInt("SERVER_PORT", env.GetInt("SERVICE_PORT", 8015)),
		ServiceName:     env.GetString("SERVICE_NAME", "fks_config"),
		ShutdownTimeout: env.GetDuration("SHUTDOWN_TIMEOUT_SECONDS", 10, time.Second),

		// Logging
		LogLevel: env.GetString("LOG_LEVEL", "info"),

		// Storage
		ConfigDir: env.GetString("CONFIG_DIR", "/app/config"),

		// Secrets encryption
		EncryptionKey:               env.GetString("ENCRYPTION_KEY", ""),
		KeyDerivation:               env.GetString("KEY_DERIVATION", KeyDerivationHKDF),
		KMSKeyURI:                   env.GetString("KMS_KEY_URI", ""),
		SecretsCipherAlgorithm:      env.GetString("SECRETS_CIPHER_ALGORITHM", "aes-gcm"),
		SecretsDecryptFailurePolicy: env.GetString("SECRETS_DECRYPT_FAILURE_POLICY", DecryptFailurePolicyFail),

		// Raw value endpoint protection
		RawValueAuthEnabled: env.GetBool("RAW_VALUE_AUTH_ENABLED", true),
		RawValueTokenHash:   env.GetString("RAW_VALUE_TOKEN_HASH", ""),

		// Rate Limiting (raw value endpoint, IP-based)
		RateLimitEnabled:        env.GetBool("RATE_LIMIT_ENABLED", true),
		RateLimitRequestsPerSec: env.GetFloat64("RATE_LIMIT_REQUESTS_PER_SEC", 5.0),
		RateLimitBurst:          env.GetInt("RATE_LIMIT_BURST", 10),

		// CORS
		CORSEnabled:      env.GetBool("CORS_ENABLED", false),
		CORSAllowOrigins: env.GetString("CORS_ALLOW_ORIGINS", ""),

		// Metrics
		MetricsEnabled:   env.GetBool("METRICS_ENABLED", true),
		MetricsNamespace: env.GetString("METRICS_NAMESPACE", "fks"),
		MetricsPort:      env.GetInt("METRICS_PORT", 8081),

		// Build information
		BuildCommit: env.GetString("GIT_COMMIT", "unknown"),
		BuildDate:   env.GetString("BUILD_DATE", "unknown"),
	}
}

// Validate checks enumerated settings and required values.
func (c *Config) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.ServerPort, validation.Required, validation.Min(1), validation.Max(65535)),
		validation.Field(&c.ConfigDir, validation.Required),
		validation.Field(&c.LogLevel, validation.In("debug", "info", "warn", "error")),
		validation.Field(&c.KeyDerivation,
			validation.Required,
			validation.In(KeyDerivationHKDF, KeyDerivationLegacy),
		),
		validation.Field(&c.SecretsCipherAlgorithm,
			validation.Required,
			validation.In("aes-gcm", "chacha20-poly1305"),
		),
		validation.Field(&c.SecretsDecryptFailurePolicy,
			validation.Required,
			validation.In(DecryptFailurePolicyFail, DecryptFailurePolicyEmpty),
		),
		validation.Field(&c.RateLimitRequestsPerSec, validation.When(c.RateLimitEnabled, validation.Min(0.001))),
		validation.Field(&c.RateLimitBurst, validation.When(c.RateLimitEnabled, validation.Min(1))),
		validation.Field(&c.MetricsPort, validation.When(c.MetricsEnabled, validation.Min(1), validation.Max(65535))),
	)
}

// ServicesDir returns the directory holding one YAML document per service.
func (c *Config) ServicesDir() string {
	return filepath.Join(c.ConfigDir, "services")
}

// SecretsDir returns the private directory holding the secrets blob and key file.
func (c *Config) SecretsDir() string {
	return filepath.Join(c.ConfigDir, ".secrets")
}

// SecretsFile returns the path of the encrypted secrets blob.
func (c *Config) SecretsFile() string {
	return filepath.Join(c.SecretsDir(), "api_keys.encrypted")
}

// KeyFile returns the path of the auto-generated master key.
func (c *Config) KeyFile() string {
	return filepath.Join(c.SecretsDir(), ".encryption_key")
}

// GetGinMode returns the appropriate Gin mode based on log level.
func (c *Config) GetGinMode() string {
	switch c.LogLevel {
	case "debug":
		return "debug"
	default:
		return "release"
	}
}

// loadDotEnv searches for a .env file recursively from the current directory
// up to the root directory and loads it if found.
func loadDotEnv() {
	// Get current working directory
	cwd, err := os.Getwd()
	if err != nil {
		return
	}

	// Search for .env file recursively up the directory tree
	dir := cwd
	for {
		envPath := filepath.Join(dir, ".env")
		if _, err := os.Stat(envPath); err == nil {
			// .env file found, load it
			_ = godotenv.Load(envPath)
			return
		}

		// Move to parent directory
		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached root directory
			break
		}
		dir = parent
	}
}
