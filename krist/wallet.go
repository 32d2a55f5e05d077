package krist

import (
	"errors"
	"fmt"

	"github.com/AlexZinkM/kristvault/internal/common"
	"github.com/AlexZinkM/kristvault/internal/crypto"
	"github.com/AlexZinkM/kristvault/internal/model"

	"github.com/google/uuid"
)

// ErrPrivatekeyMismatch means a wallet's stored private key does not match
// the one derived from its password.
var ErrPrivatekeyMismatch = errors.New("stored private key does not match password")

// ErrInvalidLabel is returned for labels and categories that are too long
var ErrInvalidLabel = errors.New("invalid label")

// Credential gives access to the master password for the duration of a call
type Credential interface {
	Password() (string, error)
}

// WalletData is the user supplied part of a new wallet
type WalletData struct {
	Label    string
	Category string
	Username string
	Format   KeyFormat
	DontSave bool
}

// NewWallet builds a wallet record for password, with both secrets encrypted
// under the master password. The record is not stored.
func NewWallet(master Credential, data WalletData, password string) (*model.Wallet, error) {
	if password == "" {
		return nil, errors.New("wallet password cannot be empty")
	}
	if data.Format == 0 {
		data.Format = DefaultFormat
	}

	label, ok := common.CleanLabel(data.Label)
	if !ok {
		return nil, fmt.Errorf("%w: at most %d characters", ErrInvalidLabel, common.MaxLabelLength)
	}
	category, ok := common.CleanLabel(data.Category)
	if !ok {
		return nil, fmt.Errorf("%w: category is at most %d characters", ErrInvalidLabel, common.MaxLabelLength)
	}

	privatekey, address, err := CalculateAddress(data.Format, password, data.Username)
	if err != nil {
		return nil, err
	}

	encPassword, encPrivatekey, err := EncryptSecrets(master, password, privatekey)
	if err != nil {
		return nil, err
	}

	username := ""
	if data.Format.RequiresUsername() {
		username = data.Username
	}

	return &model.Wallet{
		ID:            uuid.NewString(),
		Label:         label,
		Category:      category,
		Username:      username,
		EncPassword:   encPassword,
		EncPrivatekey: encPrivatekey,
		Format:        data.Format.String(),
		Address:       address,
		DontSave:      data.DontSave,
	}, nil
}

// DecryptWallet returns the password and private key of w, checking that they
// still derive the stored address.
func DecryptWallet(master Credential, w *model.Wallet) (password, privatekey string, err error) {
	key, err := master.Password()
	if err != nil {
		return "", "", err
	}

	password, err = crypto.Decrypt(w.EncPassword, key)
	if err != nil {
		return "", "", fmt.Errorf("failed to decrypt wallet password: %w", err)
	}
	privatekey, err = crypto.Decrypt(w.EncPrivatekey, key)
	if err != nil {
		return "", "", fmt.Errorf("failed to decrypt wallet private key: %w", err)
	}

	format, err := ParseKeyFormat(w.Format)
	if err != nil {
		return "", "", err
	}
	calculated, address, err := CalculateAddress(format, password, w.Username)
	if err != nil {
		return "", "", err
	}
	if calculated != privatekey || address != w.Address {
		return "", "", ErrPrivatekeyMismatch
	}

	return password, privatekey, nil
}

// ReencryptWallet returns a copy of w with its secrets encrypted under next
func ReencryptWallet(current, next Credential, w *model.Wallet) (*model.Wallet, error) {
	password, privatekey, err := DecryptWallet(current, w)
	if err != nil {
		return nil, err
	}

	encPassword, encPrivatekey, err := EncryptSecrets(next, password, privatekey)
	if err != nil {
		return nil, err
	}

	out := *w
	out.EncPassword = encPassword
	out.EncPrivatekey = encPrivatekey
	return &out, nil
}

// EncryptSecrets encrypts a wallet password and private key under the master password
func EncryptSecrets(master Credential, password, privatekey string) (encPassword, encPrivatekey string, err error) {
	key, err := master.Password()
	if err != nil {
		return "", "", err
	}

	encPassword, err = crypto.Encrypt(password, key)
	if err != nil {
		return "", "", fmt.Errorf("failed to encrypt wallet password: %w", err)
	}
	encPrivatekey, err = crypto.Encrypt(privatekey, key)
	if err != nil {
		return "", "", fmt.Errorf("failed to encrypt wallet private key: %w", err)
	}

	return encPassword, encPrivatekey, nil
}
