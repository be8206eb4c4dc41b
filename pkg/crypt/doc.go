// Package crypt provides the AES-GCM cipher used to protect sensitive values
// at rest, such as the SMTP password stored in the settings table.
//
// Ciphertexts are packed as "G" + tag + iv + ciphertext. Values destined for
// text columns are sealed with [Seal], which base64-encodes the packed bytes
// behind an "enc:" prefix.
//
//	c, err := crypt.NewSymmetric(key) // key is 32 bytes
//	sealed, err := crypt.Seal(c, "smtp_pass", "s3cret")
//	plain, err := crypt.Open(c, "smtp_pass", sealed)
package crypt
