package krist

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculatePrivateKey(t *testing.T) {
	tests := []struct {
		format     KeyFormat
		password   string
		username   string
		privatekey string
		address    string
	}{
		{FormatKristWallet, "abc", "", "c998e17933bd86f366ad8996fced1212406dbeb93a8b0e5bfa93b91650b99c63-000", "k3c6ygr2c8"},
		{FormatKristWallet, "hunter2", "", "d0fe999da6df269bafa0bf496f680b8e6d5756e87d1d184ffd7374e2af5843be-000", "k52xkdsr5l"},
		{FormatKristWalletUsernameAppendHashes, "abc", "user", "085095eb182e7e6b0387f363adfcc1735bac0bd144d9c303e956c2a8dd095358", "ka1oqa9e9o"},
		{FormatKristWalletUsername, "abc", "user", "46275efdd1742f62814c4960b68efe5575b09d4780017a47f71d88b8c1d7db23", "k0pm7f8zuw"},
		{FormatJwalelset, "abc", "", "95796ecab12ca1f19b8bd071f47258ed58a7d059d43f6e356293fc41a00ac731", "k2f5414ix5"},
		{FormatAPI, "abc", "", "abc", "kl0lvzv59a"},
	}

	for _, tt := range tests {
		t.Run(tt.format.String(), func(t *testing.T) {
			privatekey, address, err := CalculateAddress(tt.format, tt.password, tt.username)
			require.NoError(t, err)
			assert.Equal(t, tt.privatekey, privatekey)
			assert.Equal(t, tt.address, address)
		})
	}
}

func TestCalculatePrivateKeyUsernameRequired(t *testing.T) {
	for _, f := range KeyFormats() {
		_, err := CalculatePrivateKey(f, "abc", "")
		if f.RequiresUsername() {
			assert.ErrorIs(t, err, ErrUsernameRequired, f.String())
		} else {
			assert.NoError(t, err, f.String())
		}
	}
}

func TestCalculatePrivateKeyUnknown(t *testing.T) {
	_, err := CalculatePrivateKey(KeyFormat(99), "abc", "")
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestParseKeyFormat(t *testing.T) {
	for _, f := range KeyFormats() {
		parsed, err := ParseKeyFormat(f.String())
		require.NoError(t, err)
		assert.Equal(t, f, parsed)
	}

	for _, name := range []string{"", "KRISTWALLET", "scheme-basic", "kristwallet "} {
		_, err := ParseKeyFormat(name)
		assert.ErrorIs(t, err, ErrUnknownFormat, name)
	}
}

func TestKeyFormatFlags(t *testing.T) {
	assert.False(t, FormatKristWallet.Advanced())
	assert.False(t, FormatAPI.Advanced())
	assert.True(t, FormatJwalelset.Advanced())
	assert.True(t, FormatKristWalletUsername.Advanced())

	assert.True(t, FormatKristWalletUsername.RequiresUsername())
	assert.True(t, FormatKristWalletUsernameAppendHashes.RequiresUsername())
	assert.False(t, FormatJwalelset.RequiresUsername())
}
