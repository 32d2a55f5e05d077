package crypto

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Produced with `openssl enc -aes-256-cbc -md md5 -a`, which writes the same
// format as CryptoJS.AES.encrypt with a passphrase.
const (
	legacySalted   = "U2FsdGVkX1+L8JBcK+vG2PcsgWOhBsbxU+1KZAkYekoH3z6I3/w3bp2hvFV6lu4+"
	legacyUnsalted = "X2C9yBw6dmO7zKLxpvy3Fw=="
	legacyTester   = "U2FsdGVkX1+4QopaYKYQfAAge38NADa2i4gQVRBvEhuBqMGWOKiGaqbeVMReEcmky21pMZteLfcyx5W0Yn/QYKsOBMUCcNF7eQ2fddyIggUYArDIwA0Z+uVwzxrdVQ4Z"
	legacySalt     = "5f1e0c2d9b8a7f6e5d4c3b2a19080706f5e4d3c2b1a09f8e7d6c5b4a39281706"
)

func TestDecryptLegacy(t *testing.T) {
	plaintext, err := DecryptLegacy(legacySalted, "password")
	require.NoError(t, err)
	assert.Equal(t, "hello legacy world", plaintext)

	plaintext, err = DecryptLegacy(legacyTester, "masterpw")
	require.NoError(t, err)
	assert.Equal(t, legacySalt, plaintext)
}

func TestDecryptLegacyUnsalted(t *testing.T) {
	plaintext, err := DecryptLegacy(legacyUnsalted, "password")
	require.NoError(t, err)
	assert.Equal(t, "unsalted secret", plaintext)
}

func TestDecryptLegacyWrongPassword(t *testing.T) {
	for _, password := range []string{"wrongpw", "", "hunter2"} {
		_, err := DecryptLegacy(legacyTester, password)
		assert.ErrorIs(t, err, ErrDecrypt, password)
	}
}

func TestDecryptLegacyMalformed(t *testing.T) {
	for _, ciphertext := range []string{
		"",
		"not base64 at all!",
		"U2FsdGVkX18=",             // magic without salt
		"U2FsdGVkX18BAgMEBQYHCA==", // magic and salt, no data
		"AAECAwQFBgcICQ==",         // not a whole block
	} {
		_, err := DecryptLegacy(ciphertext, "password")
		assert.ErrorIs(t, err, ErrDecrypt, ciphertext)
	}
}

func TestEVPBytesToKey(t *testing.T) {
	// openssl enc -aes-256-cbc -md md5 -nosalt -pass pass:password -P
	key, iv := evpBytesToKey([]byte("password"), nil, legacyKeyLen, legacyIVLen)
	assert.Equal(t, "5f4dcc3b5aa765d61d8327deb882cf992b95990a9151374abd8ff8c5a7a0fe08", hex.EncodeToString(key))
	assert.Equal(t, "b7b4372cdfbcb3d16a2631b59b509e94", hex.EncodeToString(iv))

	salted, _ := evpBytesToKey([]byte("password"), []byte("12345678"), legacyKeyLen, legacyIVLen)
	assert.NotEqual(t, key, salted)
}

func TestPKCS7Unpad(t *testing.T) {
	block := func(tail ...byte) []byte {
		b := make([]byte, 16-len(tail))
		return append(b, tail...)
	}

	out, err := pkcs7Unpad(block(3, 3, 3), 16)
	require.NoError(t, err)
	assert.Len(t, out, 13)

	_, err = pkcs7Unpad(block(0), 16)
	assert.Error(t, err)
	_, err = pkcs7Unpad(block(17), 16)
	assert.Error(t, err)
	_, err = pkcs7Unpad(block(2, 3, 3), 16)
	assert.Error(t, err)
}
