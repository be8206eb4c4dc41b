package crypt

import (
	"crypto/rand"
	"math/big"
)

const tempPasswordAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

// TempPasswordLength is the length of generated temporary passwords.
const TempPasswordLength = 8

// TempPassword returns a random lowercase alphanumeric password.
func TempPassword() (string, error) {
	max := big.NewInt(int64(len(tempPasswordAlphabet)))
	out := make([]byte, TempPasswordLength)
	for i := range out {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		out[i] = tempPasswordAlphabet[n.Int64()]
	}
	return string(out), nil
}

// GenerateKey returns a fresh 256 bit data key.
func GenerateKey() ([]byte, error) {
	return RandomBytes(32)
}
