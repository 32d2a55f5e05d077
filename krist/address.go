package krist

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/AlexZinkM/kristvault/internal/crypto"
)

// AddressPrefix is the network prefix of v2 addresses
const AddressPrefix = "k"

const addressChars = 9

var v2AddressRe = regexp.MustCompile(`^k[a-z0-9]{9}$`)

// MakeV2Address derives the v2 address of privatekey.
func MakeV2Address(privatekey string) string {
	var chars [addressChars]string

	hash := crypto.DoubleSHA256(privatekey)
	for i := range chars {
		chars[i] = hash[:2]
		hash = crypto.DoubleSHA256(hash)
	}

	var b strings.Builder
	b.WriteString(AddressPrefix)

	for i := 0; i < addressChars; {
		index := hexByte(hash[2*i:2*i+2]) % addressChars
		if chars[index] == "" {
			// slot already used, rehash once and retry the same position
			hash = crypto.SHA256(hash)
			continue
		}

		b.WriteByte(hexToBase36(hexByte(chars[index])))
		chars[index] = ""
		i++
	}

	return b.String()
}

// IsValidV2Address checks the shape of a v2 address
func IsValidV2Address(address string) bool {
	return v2AddressRe.MatchString(address)
}

// hexToBase36 maps 0..255 onto [0-9a-z]. Values from 252 up would land past
// 'z' and wrap to 'e'.
func hexToBase36(n int) byte {
	b := 48 + n/7
	switch {
	case b+39 > 122:
		return 'e'
	case b > 57:
		return byte(b + 39)
	default:
		return byte(b)
	}
}

// hexByte parses two hex digits; input always comes from a hex digest
func hexByte(s string) int {
	n, _ := strconv.ParseUint(s, 16, 8)
	return int(n)
}
