package crypt

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"
)

// sealedPrefix marks text columns holding an encrypted value.
const sealedPrefix = "enc:"

// Seal encrypts plain and returns it in a form that fits a text column.
func Seal(c Cipher, aad, plain string) (string, error) {
	packed, err := c.Encrypt([]byte(aad), []byte(plain))
	if err != nil {
		return "", err
	}
	return sealedPrefix + base64.StdEncoding.EncodeToString(packed), nil
}

// Open reverses Seal. Values without the sealed prefix are returned as-is so
// rows written before a data key was configured stay readable.
func Open(c Cipher, aad, sealed string) (string, error) {
	if !IsSealed(sealed) {
		return sealed, nil
	}
	packed, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(sealed, sealedPrefix))
	if err != nil {
		return "", fmt.Errorf("malformed sealed value for %q: %w", aad, err)
	}
	plain, err := c.Decrypt([]byte(aad), packed)
	if err != nil {
		return "", fmt.Errorf("decryption failed for %q: %w", aad, err)
	}
	return string(plain), nil
}

func IsSealed(s string) bool {
	return strings.HasPrefix(s, sealedPrefix)
}

type contextKey struct{}

// NewContext returns a context carrying c. Model hooks pick it up from the
// gorm statement context.
func NewContext(ctx context.Context, c Cipher) context.Context {
	return context.WithValue(ctx, contextKey{}, c)
}

// FromContext returns the cipher stored by NewContext, if any.
func FromContext(ctx context.Context) (Cipher, bool) {
	if ctx == nil {
		return nil, false
	}
	c, ok := ctx.Value(contextKey{}).(Cipher)
	return c, ok && c != nil
}
