package domain

import "fmt"

// headerSize is version + algorithm.
const headerSize = 2

// EncryptedBlob is the on-disk representation of an encrypted payload.
//
// Binary layout:
//
//	version (1 byte) | algorithm (1 byte) | nonce (12 bytes) | ciphertext+tag
//
// The two header bytes are authenticated as additional data so that a blob
// cannot be relabelled with another version or algorithm.
type EncryptedBlob struct {
	Version    byte
	Algorithm  Algorithm
	Nonce      []byte
	Ciphertext []byte
}

// ParseEncryptedBlob decodes data into an EncryptedBlob.
//
// All format problems are reported as ErrDecryptionFailed.
func ParseEncryptedBlob(data []byte) (EncryptedBlob, error) {
	if len(data) < headerSize+NonceSize {
		return EncryptedBlob{}, fmt.Errorf("%w: blob too short", ErrDecryptionFailed)
	}

	if data[0] != BlobVersion1 {
		return EncryptedBlob{}, fmt.Errorf("%w: unknown blob version %d", ErrDecryptionFailed, data[0])
	}

	alg, err := AlgorithmFromID(data[1])
	if err != nil {
		return EncryptedBlob{}, fmt.Errorf("%w: unknown algorithm id %d", ErrDecryptionFailed, data[1])
	}

	nonce := make([]byte, NonceSize)
	copy(nonce, data[headerSize:headerSize+NonceSize])

	ciphertext := make([]byte, len(data)-headerSize-NonceSize)
	copy(ciphertext, data[headerSize+NonceSize:])

	return EncryptedBlob{
		Version:    data[0],
		Algorithm:  alg,
		Nonce:      nonce,
		Ciphertext: ciphertext,
	}, nil
}

// AAD returns the header bytes bound to the ciphertext as additional data.
func (b EncryptedBlob) AAD() ([]byte, error) {
	id, err := b.Algorithm.ID()
	if err != nil {
		return nil, err
	}
	return []byte{b.Version, id}, nil
}

// Bytes encodes the blob in its binary layout.
func (b EncryptedBlob) Bytes() ([]byte, error) {
	aad, err := b.AAD()
	if err != nil {
		return nil, err
	}
	if len(b.Nonce) != NonceSize {
		return nil, fmt.Errorf("nonce must be %d bytes, got %d", NonceSize, len(b.Nonce))
	}

	out := make([]byte, 0, headerSize+NonceSize+len(b.Ciphertext))
	out = append(out, aad...)
	out = append(out, b.Nonce...)
	out = append(out, b.Ciphertext...)
	return out, nil
}
