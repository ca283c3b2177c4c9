// Package repository persists the secrets document as a single encrypted file.
package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/allisson/configd/internal/fsutil"
	secretsDomain "github.com/allisson/configd/internal/secrets/domain"
)

const (
	blobFilePerm = 0o600
	blobDirPerm  = 0o700
)

// Cipher encrypts and decrypts the serialized secrets document.
type Cipher interface {
	Encrypt(plaintext []byte) ([]byte, error)
	Decrypt(blob []byte) ([]byte, error)
}

// FileSecretRepository stores the whole secrets document in one encrypted blob.
//
// The blob is rewritten in full on every Save through a temp file and rename,
// so readers observe either the previous or the new contents.
type FileSecretRepository struct {
	path   string
	cipher Cipher
}

// NewFileSecretRepository creates a repository for the blob at path.
func NewFileSecretRepository(path string, cipher Cipher) *FileSecretRepository {
	return &FileSecretRepository{path: path, cipher: cipher}
}

// Load reads and decrypts the blob.
//
// An absent blob loads as an empty document. A blob that fails to decrypt or
// decode is reported as Unreadable rather than as an error; only I/O failures
// are returned as errors.
func (r *FileSecretRepository) Load(ctx context.Context) (secretsDomain.LoadResult, error) {
	if err := ctx.Err(); err != nil {
		return secretsDomain.LoadResult{}, err
	}

	data, exists, err := fsutil.ReadFileIfExists(r.path)
	if err != nil {
		return secretsDomain.LoadResult{}, fmt.Errorf("failed to read secrets file: %w", err)
	}
	if !exists {
		return secretsDomain.Loaded(secretsDomain.NewDocument()), nil
	}

	plaintext, err := r.cipher.Decrypt(data)
	if err != nil {
		return secretsDomain.Unreadable(err), nil
	}

	doc := secretsDomain.NewDocument()
	if err := json.Unmarshal(plaintext, &doc); err != nil {
		return secretsDomain.Unreadable(fmt.Errorf("failed to decode secrets document: %w", err)), nil
	}

	// Drop empty services left by older writers.
	for service, keys := range doc {
		if len(keys) == 0 {
			delete(doc, service)
		}
	}

	return secretsDomain.Loaded(doc), nil
}

// Save serializes, encrypts and atomically replaces the blob.
func (r *FileSecretRepository) Save(ctx context.Context, doc secretsDomain.Document) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	plaintext, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to encode secrets document: %w", err)
	}

	blob, err := r.cipher.Encrypt(plaintext)
	if err != nil {
		return fmt.Errorf("failed to encrypt secrets document: %w", err)
	}

	if err := fsutil.WriteFileAtomic(r.path, blob, blobFilePerm, blobDirPerm); err != nil {
		return fmt.Errorf("failed to write secrets file: %w", err)
	}
	return nil
}

// Ping checks that the directory holding the blob is reachable.
func (r *FileSecretRepository) Ping(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	dir := filepath.Dir(r.path)
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("secrets directory unavailable: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("secrets directory unavailable: %s is not a directory", dir)
	}
	return nil
}
