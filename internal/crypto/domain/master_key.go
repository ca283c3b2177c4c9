package domain

// keyPadByte fills short operator-supplied keys up to KeySize.
const keyPadByte = '0'

// MasterKey holds the 32-byte key that encrypts the secrets blob.
//
// The key is derived once at process start and kept for the lifetime of the
// process. Close must be called on shutdown to clear the key material.
type MasterKey struct {
	Key []byte
}

// NewMasterKey copies key into a new MasterKey.
//
// Returns ErrInvalidKeySize when key is not exactly KeySize bytes.
func NewMasterKey(key []byte) (*MasterKey, error) {
	if len(key) != KeySize {
		return nil, ErrInvalidKeySize
	}
	buf := make([]byte, KeySize)
	copy(buf, key)
	return &MasterKey{Key: buf}, nil
}

// Close zeroes the key material.
func (m *MasterKey) Close() {
	if m == nil {
		return
	}
	Zero(m.Key)
}

// NormalizeKey returns a new KeySize-byte slice built from b: longer input is
// truncated, shorter input is right-padded with ASCII '0'.
func NormalizeKey(b []byte) []byte {
	out := make([]byte, KeySize)
	n := copy(out, b)
	for i := n; i < KeySize; i++ {
		out[i] = keyPadByte
	}
	return out
}
