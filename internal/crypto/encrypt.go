package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"io"
)

const (
	// AES-256-GCM with a 96-bit nonce, keyed by SHA-256(password)
	nonceLen    = 12
	nonceHexLen = nonceLen * 2
)

// Encrypt encrypts plaintext under password.
// Output format: hex(nonce) + base64(ciphertext || tag)
func Encrypt(plaintext, password string) (string, error) {
	// Derive key from password
	key := sha256.Sum256([]byte(password))
	defer clear(key[:])

	aesGCM, err := newGCM(key[:])
	if err != nil {
		return "", err
	}

	// Fresh nonce for every message
	nonce := make([]byte, nonceLen)
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("failed to generate nonce: %w", err)
	}

	ciphertext := aesGCM.Seal(nil, nonce, []byte(plaintext), nil)

	return hex.EncodeToString(nonce) + base64.StdEncoding.EncodeToString(ciphertext), nil
}

// newGCM creates AES-GCM for a 32 byte key
func newGCM(key []byte) (cipher.AEAD, error) {
	// Create AES cipher
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}

	// Create GCM
	aesGCM, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}

	return aesGCM, nil
}
