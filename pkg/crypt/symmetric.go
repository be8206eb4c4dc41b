package crypt

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"errors"
	"fmt"
	"io"
)

// Sealed values are laid out as version byte, nonce, then the GCM output
// (ciphertext followed by its tag).
const (
	version   = byte('P')
	nonceSize = 12
	overhead  = 1 + nonceSize + aes.BlockSize
)

var (
	// ErrShortCiphertext is returned for input too short to hold a value.
	ErrShortCiphertext = errors.New("ciphertext is too short")

	// ErrUnknownVersion is returned when the version byte is not ours.
	ErrUnknownVersion = errors.New("unknown ciphertext version")
)

// Cipher encrypts values with additional authenticated data binding them
// to their owner (for settings, the setting key).
type Cipher interface {
	Decrypt(aad, sealed []byte) ([]byte, error)
	Encrypt(aad, plain []byte) ([]byte, error)
}

// Symmetric is AES-GCM under the data key.
type Symmetric struct {
	aead cipher.AEAD
}

// NewSymmetric returns a Cipher for a 16, 24 or 32 byte key.
func NewSymmetric(key []byte) (Cipher, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("invalid data key: %w", err)
	}
	aead, err := cipher.NewGCMWithNonceSize(block, nonceSize)
	if err != nil {
		return nil, err
	}
	return &Symmetric{aead: aead}, nil
}

func (s *Symmetric) Encrypt(aad, plain []byte) ([]byte, error) {
	// Random nonces are safe for up to 2^32 values per key.
	out := make([]byte, 1+nonceSize, overhead+len(plain))
	out[0] = version
	if _, err := io.ReadFull(rand.Reader, out[1:]); err != nil {
		return nil, err
	}
	return s.aead.Seal(out, out[1:], plain, aad), nil
}

func (s *Symmetric) Decrypt(aad, sealed []byte) ([]byte, error) {
	if len(sealed) < overhead {
		return nil, ErrShortCiphertext
	}
	if sealed[0] != version {
		return nil, ErrUnknownVersion
	}
	nonce, body := sealed[1:1+nonceSize], sealed[1+nonceSize:]
	return s.aead.Open(nil, nonce, body, aad)
}

// RandomBytes reads size bytes from crypto/rand.
func RandomBytes(size int) ([]byte, error) {
	value := make([]byte, size)
	if _, err := io.ReadFull(rand.Reader, value); err != nil {
		return nil, err
	}
	return value, nil
}
