package krist

import (
	"errors"
	"fmt"

	"github.com/AlexZinkM/kristvault/internal/crypto"
)

// KeyFormat is a password to private key derivation scheme
type KeyFormat int

const (
	FormatKristWallet KeyFormat = iota + 1
	FormatKristWalletUsernameAppendHashes
	FormatKristWalletUsername
	FormatJwalelset
	FormatAPI
)

// DefaultFormat is used when a wallet does not name one
const DefaultFormat = FormatKristWallet

// jwalelsetRounds is the nesting depth of the jwalelset scheme
const jwalelsetRounds = 18

var (
	ErrUnknownFormat    = errors.New("unknown wallet format")
	ErrUsernameRequired = errors.New("username is required for this wallet format")
)

var formatNames = map[KeyFormat]string{
	FormatKristWallet:                     "kristwallet",
	FormatKristWalletUsernameAppendHashes: "kristwallet_username_appendhashes",
	FormatKristWalletUsername:             "kristwallet_username",
	FormatJwalelset:                       "jwalelset",
	FormatAPI:                             "api",
}

// KeyFormats returns every known format
func KeyFormats() []KeyFormat {
	return []KeyFormat{
		FormatKristWallet,
		FormatKristWalletUsernameAppendHashes,
		FormatKristWalletUsername,
		FormatJwalelset,
		FormatAPI,
	}
}

// ParseKeyFormat looks up a format by its wire name
func ParseKeyFormat(name string) (KeyFormat, error) {
	for f, n := range formatNames {
		if n == name {
			return f, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownFormat, name)
}

func (f KeyFormat) String() string {
	if name, ok := formatNames[f]; ok {
		return name
	}
	return fmt.Sprintf("KeyFormat(%d)", int(f))
}

// RequiresUsername reports whether the derivation takes a username
func (f KeyFormat) RequiresUsername() bool {
	switch f {
	case FormatKristWalletUsernameAppendHashes, FormatKristWalletUsername:
		return true
	default:
		return false
	}
}

// Advanced formats are hidden unless the user opts into them
func (f KeyFormat) Advanced() bool {
	switch f {
	case FormatKristWallet, FormatAPI:
		return false
	default:
		return true
	}
}

// CalculatePrivateKey derives the private key for password (and username).
func CalculatePrivateKey(format KeyFormat, password, username string) (string, error) {
	if format.RequiresUsername() && username == "" {
		return "", ErrUsernameRequired
	}

	switch format {
	case FormatKristWallet:
		return crypto.SHA256("KRISTWALLET"+password) + "-000", nil

	case FormatKristWalletUsernameAppendHashes:
		return crypto.SHA256("KRISTWALLETEXTENSION" + usernameHash(password, username)), nil

	case FormatKristWalletUsername:
		return usernameHash(password, username), nil

	case FormatJwalelset:
		key := password
		for range jwalelsetRounds {
			key = crypto.SHA256(key)
		}
		return key, nil

	case FormatAPI:
		return password, nil

	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownFormat, format)
	}
}

// CalculateAddress derives both the private key and its v2 address
func CalculateAddress(format KeyFormat, password, username string) (privatekey, address string, err error) {
	privatekey, err = CalculatePrivateKey(format, password, username)
	if err != nil {
		return "", "", err
	}
	return privatekey, MakeV2Address(privatekey), nil
}

func usernameHash(password, username string) string {
	return crypto.SHA256(crypto.SHA256(username) + "^" + crypto.SHA256(password))
}
