package crypto

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/md5"
	"encoding/base64"
	"errors"
	"strings"
	"unicode/utf8"
)

// Legacy backups were written by CryptoJS.AES.encrypt with a passphrase,
// which is the OpenSSL "enc" format: base64("Salted__" + salt[8] + data)
// with key and IV from EVP_BytesToKey(MD5, 1 iteration).
const (
	legacyKeyLen  = 32
	legacyIVLen   = aes.BlockSize
	legacySaltLen = 8
)

var legacySaltedMagic = []byte("Salted__")

var (
	errLegacyBlockSize = errors.New("ciphertext is not a multiple of the block size")
	errLegacyPadding   = errors.New("invalid padding")
	errLegacyPlaintext = errors.New("plaintext is not valid UTF-8")
)

// DecryptLegacy decrypts a ciphertext from a legacy backup. Every failure is
// reported as ErrDecrypt.
func DecryptLegacy(ciphertext, password string) (string, error) {
	plaintext, err := decryptLegacy(ciphertext, password)
	if err != nil {
		return "", ErrDecrypt
	}
	return plaintext, nil
}

func decryptLegacy(ciphertext, password string) (string, error) {
	data, err := base64.StdEncoding.DecodeString(strings.TrimSpace(ciphertext))
	if err != nil {
		return "", err
	}

	// Salt is only present in the "Salted__" encoding
	var salt []byte
	if bytes.HasPrefix(data, legacySaltedMagic) {
		if len(data) < len(legacySaltedMagic)+legacySaltLen {
			return "", errLegacyBlockSize
		}
		salt = data[len(legacySaltedMagic) : len(legacySaltedMagic)+legacySaltLen]
		data = data[len(legacySaltedMagic)+legacySaltLen:]
	}

	if len(data) == 0 || len(data)%aes.BlockSize != 0 {
		return "", errLegacyBlockSize
	}

	key, iv := evpBytesToKey([]byte(password), salt, legacyKeyLen, legacyIVLen)
	defer clear(key)

	block, err := aes.NewCipher(key)
	if err != nil {
		return "", err
	}

	plaintext := make([]byte, len(data))
	cipher.NewCBCDecrypter(block, iv).CryptBlocks(plaintext, data)

	plaintext, err = pkcs7Unpad(plaintext, aes.BlockSize)
	if err != nil {
		return "", err
	}

	// A wrong password occasionally survives the padding check; the result is
	// then garbage, which is almost never valid UTF-8.
	if len(plaintext) == 0 || !utf8.Valid(plaintext) {
		return "", errLegacyPlaintext
	}

	return string(plaintext), nil
}

// evpBytesToKey is OpenSSL's EVP_BytesToKey with MD5 and a single iteration:
// D_i = MD5(D_{i-1} || password || salt), concatenated until keyLen+ivLen bytes exist.
func evpBytesToKey(password, salt []byte, keyLen, ivLen int) (key, iv []byte) {
	var (
		material []byte
		prev     []byte
	)

	for len(material) < keyLen+ivLen {
		h := md5.New()
		h.Write(prev)
		h.Write(password)
		h.Write(salt)
		prev = h.Sum(nil)
		material = append(material, prev...)
	}

	key = make([]byte, keyLen)
	copy(key, material[:keyLen])
	iv = make([]byte, ivLen)
	copy(iv, material[keyLen:keyLen+ivLen])
	clear(material)

	return key, iv
}

func pkcs7Unpad(data []byte, blockSize int) ([]byte, error) {
	if len(data) == 0 || len(data)%blockSize != 0 {
		return nil, errLegacyPadding
	}

	n := int(data[len(data)-1])
	if n == 0 || n > blockSize {
		return nil, errLegacyPadding
	}

	for _, b := range data[len(data)-n:] {
		if int(b) != n {
			return nil, errLegacyPadding
		}
	}

	return data[:len(data)-n], nil
}
