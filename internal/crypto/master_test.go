package crypto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMasterPassword(t *testing.T) {
	record, err := NewMasterPassword("correct horse")
	require.NoError(t, err)
	assert.Len(t, record.Salt, masterSaltLen*2)
	assert.NotContains(t, record.Tester, "correct horse")

	assert.True(t, VerifyMasterPassword(record, "correct horse"))
	assert.False(t, VerifyMasterPassword(record, "correct horse "))
	assert.False(t, VerifyMasterPassword(record, "battery staple"))
	assert.False(t, VerifyMasterPassword(record, ""))
}

func TestMasterPasswordFreshSalt(t *testing.T) {
	a, err := NewMasterPassword("pw")
	require.NoError(t, err)
	b, err := NewMasterPassword("pw")
	require.NoError(t, err)

	assert.NotEqual(t, a.Salt, b.Salt)
}

func TestVerifyMasterPasswordTesterMismatch(t *testing.T) {
	record, err := NewMasterPassword("pw")
	require.NoError(t, err)

	// A tester that decrypts fine but to something else must not verify
	other, err := Encrypt(record.Salt[:len(record.Salt)-1], "pw")
	require.NoError(t, err)
	record.Tester = other

	assert.False(t, VerifyMasterPassword(record, "pw"))
}
