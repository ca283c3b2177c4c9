package domain

// Algorithm represents the cryptographic algorithm used for encryption.
//
// All supported algorithms provide Authenticated Encryption with Associated Data (AEAD),
// ensuring both confidentiality and authenticity of encrypted data.
//
// Algorithm selection guidelines:
//   - Use AESGCM on modern CPUs with AES-NI hardware acceleration
//   - Use ChaCha20 on systems without AES-NI
type Algorithm string

const (
	// AESGCM represents the AES-256-GCM authenticated encryption algorithm.
	AESGCM Algorithm = "aes-gcm"

	// ChaCha20 represents the ChaCha20-Poly1305 authenticated encryption algorithm.
	ChaCha20 Algorithm = "chacha20-poly1305"
)

// Wire identifiers recorded in the header of an EncryptedBlob.
const (
	BlobVersion1 byte = 0x01

	algorithmIDAESGCM   byte = 0x01
	algorithmIDChaCha20 byte = 0x02
)

const (
	// KeySize is the size in bytes of every key accepted by the ciphers.
	KeySize = 32

	// NonceSize is the nonce length used by both supported AEADs.
	NonceSize = 12
)

// ID returns the single-byte identifier stored in a blob header.
func (a Algorithm) ID() (byte, error) {
	switch a {
	case AESGCM:
		return algorithmIDAESGCM, nil
	case ChaCha20:
		return algorithmIDChaCha20, nil
	default:
		return 0, ErrUnsupportedAlgorithm
	}
}

// AlgorithmFromID maps a blob header identifier back to its Algorithm.
func AlgorithmFromID(id byte) (Algorithm, error) {
	switch id {
	case algorithmIDAESGCM:
		return AESGCM, nil
	case algorithmIDChaCha20:
		return ChaCha20, nil
	default:
		return "", ErrUnsupportedAlgorithm
	}
}
