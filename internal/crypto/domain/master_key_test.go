package domain

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMasterKey(t *testing.T) {
	t.Run("valid key is copied", func(t *testing.T) {
		raw := bytes.Repeat([]byte{7}, KeySize)

		mk, err := NewMasterKey(raw)
		require.NoError(t, err)
		assert.Equal(t, raw, mk.Key)

		raw[0] = 9
		assert.Equal(t, byte(7), mk.Key[0])
	})

	t.Run("short key", func(t *testing.T) {
		mk, err := NewMasterKey([]byte("short"))
		assert.ErrorIs(t, err, ErrInvalidKeySize)
		assert.Nil(t, mk)
	})

	t.Run("long key", func(t *testing.T) {
		mk, err := NewMasterKey(bytes.Repeat([]byte{1}, KeySize+1))
		assert.ErrorIs(t, err, ErrInvalidKeySize)
		assert.Nil(t, mk)
	})
}

func TestMasterKey_Close(t *testing.T) {
	mk, err := NewMasterKey(bytes.Repeat([]byte{0xAB}, KeySize))
	require.NoError(t, err)

	mk.Close()

	assert.Equal(t, make([]byte, KeySize), mk.Key)

	var nilKey *MasterKey
	assert.NotPanics(t, func() { nilKey.Close() })
}

func TestNormalizeKey(t *testing.T) {
	tests := []struct {
		name  string
		input []byte
		want  []byte
	}{
		{
			name:  "short input is padded with ascii zero",
			input: []byte("abc"),
			want:  append([]byte("abc"), bytes.Repeat([]byte("0"), KeySize-3)...),
		},
		{
			name:  "empty input",
			input: nil,
			want:  bytes.Repeat([]byte("0"), KeySize),
		},
		{
			name:  "exact input",
			input: bytes.Repeat([]byte("k"), KeySize),
			want:  bytes.Repeat([]byte("k"), KeySize),
		},
		{
			name:  "long input is truncated",
			input: bytes.Repeat([]byte("x"), KeySize+10),
			want:  bytes.Repeat([]byte("x"), KeySize),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeKey(tt.input)
			assert.Len(t, got, KeySize)
			assert.Equal(t, tt.want, got)
		})
	}
}
