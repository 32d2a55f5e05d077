package crypto

import (
	"crypto/sha256"
	"encoding/hex"
)

// SHA256 returns the lowercase hex SHA-256 digest of s.
func SHA256(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}

// DoubleSHA256 returns SHA256(SHA256(s)), hashing the hex form of the inner digest.
func DoubleSHA256(s string) string {
	return SHA256(SHA256(s))
}
