package backup

import (
	"context"
	"testing"

	"github.com/AlexZinkM/kristvault/internal/session"
	"github.com/AlexZinkM/kristvault/internal/store"
	"github.com/AlexZinkM/kristvault/krist"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newVault(t *testing.T, master string) (*store.WalletStore, *session.Session) {
	t.Helper()
	ws := store.NewWalletStore(store.NewMemoryKV())
	s, err := session.Setup(context.Background(), ws, master)
	require.NoError(t, err)
	return ws, s
}

func TestServiceImport(t *testing.T) {
	ctx := context.Background()
	ws, master := newVault(t, "local")
	svc := NewService(DefaultConfig(), ws)

	raw := encodeDoc(t, map[string]any{
		"salt":    legacySalt,
		"tester":  legacyTester,
		"wallets": map[string]any{"Wallet-1": legacyWallets["Wallet-1"], "Wallet-2": legacyWallets["Wallet-2"]},
	})

	report, err := svc.Import(ctx, master, raw, legacyPassword, false, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, report.NewWallets)

	wallets, err := ws.Wallets(ctx)
	require.NoError(t, err)
	require.Len(t, wallets, 2)
	for _, w := range wallets {
		password, _, err := krist.DecryptWallet(master, w)
		require.NoError(t, err)
		assert.Equal(t, "abc", password)
	}

	// a second run changes nothing
	report, err = svc.Import(ctx, master, raw, legacyPassword, true, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, report.NewWallets)
	assert.Equal(t, 2, report.SkippedWallets)

	wallets, err = ws.Wallets(ctx)
	require.NoError(t, err)
	assert.Len(t, wallets, 2)
}

func TestServiceImportRejected(t *testing.T) {
	ctx := context.Background()
	ws, master := newVault(t, "local")
	svc := NewService(DefaultConfig(), ws)

	raw := encodeDoc(t, map[string]any{
		"salt":    legacySalt,
		"tester":  legacyTester,
		"wallets": map[string]any{"Wallet-1": legacyWallets["Wallet-1"]},
	})

	_, err := svc.Import(ctx, master, raw, "wrong", false, nil)
	assert.ErrorIs(t, err, ErrPasswordIncorrect)

	_, err = svc.Import(ctx, master, raw, "", false, nil)
	assert.ErrorIs(t, err, ErrPasswordRequired)

	_, err = svc.Import(ctx, master, "garbage!", legacyPassword, false, nil)
	assert.True(t, IsDecodeError(err, DecodeInvalidBase64))

	master.Lock()
	_, err = svc.Import(ctx, master, raw, legacyPassword, false, nil)
	assert.ErrorIs(t, err, session.ErrLocked)

	wallets, err := ws.Wallets(ctx)
	require.NoError(t, err)
	assert.Empty(t, wallets)
}

func TestServiceImportInProgress(t *testing.T) {
	ctx := context.Background()
	ws, master := newVault(t, "local")
	svc := NewService(DefaultConfig(), ws)

	raw := encodeDoc(t, map[string]any{
		"salt":    legacySalt,
		"tester":  legacyTester,
		"wallets": map[string]any{"Wallet-1": legacyWallets["Wallet-1"]},
	})

	started := make(chan struct{})
	release := make(chan struct{})
	progress := ProgressFuncs{OnTotal: func(int) {
		close(started)
		<-release
	}}

	done := make(chan error, 1)
	go func() {
		_, err := svc.Import(ctx, master, raw, legacyPassword, false, progress)
		done <- err
	}()

	<-started
	_, err := svc.Import(ctx, master, raw, legacyPassword, false, nil)
	assert.ErrorIs(t, err, ErrImportInProgress)

	close(release)
	require.NoError(t, <-done)

	// the lock is released afterwards
	_, err = svc.Import(ctx, master, raw, legacyPassword, false, nil)
	assert.NoError(t, err)
}

func TestExportRoundTrip(t *testing.T) {
	ctx := context.Background()
	ws, master := newVault(t, "first")

	for _, data := range []krist.WalletData{
		{Label: "Main"},
		{Label: "Shop", Username: "user", Format: krist.FormatKristWalletUsername},
		{Label: "Temp", DontSave: true},
	} {
		w, err := krist.NewWallet(master, data, "abc")
		require.NoError(t, err)
		require.NoError(t, ws.SaveWallet(ctx, w))
	}

	raw, err := NewService(DefaultConfig(), ws).Export(ctx)
	require.NoError(t, err)

	b, err := Decode(raw)
	require.NoError(t, err)
	assert.Equal(t, GenerationCurrent, b.Generation)
	assert.Len(t, b.Wallets, 2)

	// restore into a vault with another master password
	target, targetMaster := newVault(t, "second")
	report, err := NewService(DefaultConfig(), target).Import(ctx, targetMaster, raw, "first", false, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, report.NewWallets)
	assert.Equal(t, 0, report.Count(MessageError))

	wallets, err := target.Wallets(ctx)
	require.NoError(t, err)
	require.Len(t, wallets, 2)
	for _, w := range wallets {
		_, _, err := krist.DecryptWallet(targetMaster, w)
		assert.NoError(t, err)
	}
}

func TestExportNotInitialized(t *testing.T) {
	ws := store.NewWalletStore(store.NewMemoryKV())
	_, err := Export(context.Background(), ws)
	assert.ErrorIs(t, err, ErrNothingToExport)
}
