package crypto

import (
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
)

var (
	// ErrDecrypt is returned when a ciphertext fails authentication, which in
	// practice means the password is wrong or the data was modified.
	ErrDecrypt = errors.New("decryption failed")

	// ErrInvalidCiphertext is returned when a ciphertext is not in the
	// hex(nonce) + base64 format at all.
	ErrInvalidCiphertext = errors.New("invalid ciphertext")
)

// Decrypt reverses Encrypt.
func Decrypt(ciphertext, password string) (string, error) {
	if len(ciphertext) <= nonceHexLen {
		return "", ErrInvalidCiphertext
	}

	// Decode nonce and ciphertext
	nonce, err := hex.DecodeString(ciphertext[:nonceHexLen])
	if err != nil {
		return "", ErrInvalidCiphertext
	}

	data, err := base64.StdEncoding.DecodeString(ciphertext[nonceHexLen:])
	if err != nil {
		return "", ErrInvalidCiphertext
	}

	// Derive key from password
	key := sha256.Sum256([]byte(password))
	defer clear(key[:])

	aesGCM, err := newGCM(key[:])
	if err != nil {
		return "", err
	}

	// Decrypt
	plaintext, err := aesGCM.Open(nil, nonce, data, nil)
	if err != nil {
		return "", ErrDecrypt
	}

	return string(plaintext), nil
}
