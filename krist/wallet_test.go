package krist

import (
	"errors"
	"strings"
	"testing"

	"github.com/AlexZinkM/kristvault/internal/crypto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticCredential string

func (c staticCredential) Password() (string, error) {
	if c == "" {
		return "", errors.New("locked")
	}
	return string(c), nil
}

func TestNewWallet(t *testing.T) {
	w, err := NewWallet(staticCredential("master"), WalletData{Label: " Main "}, "abc")
	require.NoError(t, err)

	assert.NotEmpty(t, w.ID)
	assert.Equal(t, "Main", w.Label)
	assert.Equal(t, "kristwallet", w.Format)
	assert.Equal(t, "k3c6ygr2c8", w.Address)
	assert.NotContains(t, w.EncPassword, "abc")

	password, err := crypto.Decrypt(w.EncPassword, "master")
	require.NoError(t, err)
	assert.Equal(t, "abc", password)
}

func TestNewWalletUsername(t *testing.T) {
	_, err := NewWallet(staticCredential("master"), WalletData{Format: FormatKristWalletUsername}, "abc")
	assert.ErrorIs(t, err, ErrUsernameRequired)

	w, err := NewWallet(staticCredential("master"), WalletData{Format: FormatKristWalletUsername, Username: "user"}, "abc")
	require.NoError(t, err)
	assert.Equal(t, "k0pm7f8zuw", w.Address)
	assert.Equal(t, "user", w.Username)

	// username is dropped for formats that do not use it
	w, err = NewWallet(staticCredential("master"), WalletData{Username: "user"}, "abc")
	require.NoError(t, err)
	assert.Empty(t, w.Username)
}

func TestNewWalletInvalid(t *testing.T) {
	_, err := NewWallet(staticCredential("master"), WalletData{}, "")
	assert.Error(t, err)

	_, err = NewWallet(staticCredential("master"), WalletData{Label: strings.Repeat("x", 33)}, "abc")
	assert.ErrorIs(t, err, ErrInvalidLabel)

	_, err = NewWallet(staticCredential("master"), WalletData{Category: strings.Repeat("y", 40)}, "abc")
	assert.ErrorIs(t, err, ErrInvalidLabel)

	_, err = NewWallet(staticCredential(""), WalletData{}, "abc")
	assert.Error(t, err)
}

func TestDecryptWallet(t *testing.T) {
	master := staticCredential("master")
	w, err := NewWallet(master, WalletData{}, "abc")
	require.NoError(t, err)

	password, privatekey, err := DecryptWallet(master, w)
	require.NoError(t, err)
	assert.Equal(t, "abc", password)
	assert.Equal(t, "c998e17933bd86f366ad8996fced1212406dbeb93a8b0e5bfa93b91650b99c63-000", privatekey)

	_, _, err = DecryptWallet(staticCredential("other"), w)
	assert.ErrorIs(t, err, crypto.ErrDecrypt)

	w.Address = "kaaaaaaaaa"
	_, _, err = DecryptWallet(master, w)
	assert.ErrorIs(t, err, ErrPrivatekeyMismatch)
}

func TestReencryptWallet(t *testing.T) {
	w, err := NewWallet(staticCredential("old"), WalletData{}, "abc")
	require.NoError(t, err)

	out, err := ReencryptWallet(staticCredential("old"), staticCredential("new"), w)
	require.NoError(t, err)
	assert.Equal(t, w.ID, out.ID)
	assert.NotEqual(t, w.EncPassword, out.EncPassword)

	password, _, err := DecryptWallet(staticCredential("new"), out)
	require.NoError(t, err)
	assert.Equal(t, "abc", password)
}

func TestQRCode(t *testing.T) {
	qr, err := QRCode("k3c6ygr2c8")
	require.NoError(t, err)
	// base64 of the PNG signature
	assert.True(t, strings.HasPrefix(qr, "iVBORw0KGgo"))
}

func TestQRText(t *testing.T) {
	qr, err := QRText("k3c6ygr2c8")
	require.NoError(t, err)
	assert.Greater(t, strings.Count(qr, "\n"), 20)
}
