package crypto

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"io"

	"github.com/AlexZinkM/kristvault/internal/model"
)

// masterSaltLen is 256 bits of randomness, hex encoded in the record
const masterSaltLen = 32

// NewMasterPassword creates the salt/tester pair for password.
// The password itself is never part of the record.
func NewMasterPassword(password string) (model.MasterPassword, error) {
	raw := make([]byte, masterSaltLen)
	if _, err := io.ReadFull(rand.Reader, raw); err != nil {
		return model.MasterPassword{}, fmt.Errorf("failed to generate salt: %w", err)
	}
	salt := hex.EncodeToString(raw)

	tester, err := Encrypt(salt, password)
	if err != nil {
		return model.MasterPassword{}, fmt.Errorf("failed to encrypt tester: %w", err)
	}

	return model.MasterPassword{Salt: salt, Tester: tester}, nil
}

// VerifyMasterPassword reports whether candidate decrypts the tester back to
// exactly the salt.
func VerifyMasterPassword(record model.MasterPassword, candidate string) bool {
	if candidate == "" || record.Salt == "" || record.Tester == "" {
		return false
	}

	salt, err := Decrypt(record.Tester, candidate)
	if err != nil {
		return false
	}

	return subtle.ConstantTimeCompare([]byte(salt), []byte(record.Salt)) == 1
}
