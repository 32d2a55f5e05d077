package store

import (
	"context"
	"testing"

	"github.com/AlexZinkM/kristvault/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWalletStoreMasterPassword(t *testing.T) {
	ctx := context.Background()
	ws := NewWalletStore(NewMemoryKV())

	_, ok, err := ws.MasterPassword(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	rec := model.MasterPassword{Salt: "salt", Tester: "tester"}
	require.NoError(t, ws.SetMasterPassword(ctx, rec))

	got, ok, err := ws.MasterPassword(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, rec, got)

	assert.Error(t, ws.SetMasterPassword(ctx, model.MasterPassword{Salt: "only"}))
}

func TestWalletStoreWallets(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryKV()
	ws := NewWalletStore(kv)

	require.NoError(t, ws.SaveWallet(ctx, &model.Wallet{ID: "b", Address: "kbbbbbbbbb"}))
	require.NoError(t, ws.SaveWallet(ctx, &model.Wallet{ID: "a", Address: "kaaaaaaaaa", Label: "A"}))
	require.NoError(t, ws.SaveWallet(ctx, &model.Wallet{ID: "c", Address: "kccccccccc", DontSave: true}))

	wallets, err := ws.Wallets(ctx)
	require.NoError(t, err)
	require.Len(t, wallets, 3)
	assert.Equal(t, "a", wallets[0].ID)
	assert.Equal(t, "c", wallets[2].ID)

	// transient wallets never reach the KV
	keys, err := kv.Keys(ctx, walletKeyPrefix)
	require.NoError(t, err)
	assert.Equal(t, []string{"wallet2-a", "wallet2-b"}, keys)

	w, err := ws.Wallet(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "A", w.Label)

	w, err = ws.Wallet(ctx, "c")
	require.NoError(t, err)
	assert.True(t, w.DontSave)

	_, err = ws.Wallet(ctx, "missing")
	assert.ErrorIs(t, err, ErrWalletNotFound)

	require.NoError(t, ws.DeleteWallet(ctx, "a"))
	require.NoError(t, ws.DeleteWallet(ctx, "c"))
	wallets, err = ws.Wallets(ctx)
	require.NoError(t, err)
	require.Len(t, wallets, 1)
	assert.Equal(t, "b", wallets[0].ID)
}

func TestWalletStoreApply(t *testing.T) {
	ctx := context.Background()
	ws := NewWalletStore(NewMemoryKV())
	require.NoError(t, ws.SaveWallet(ctx, &model.Wallet{ID: "a", Label: "old"}))

	rec := model.MasterPassword{Salt: "s", Tester: "t"}
	err := ws.Apply(ctx, WalletDiff{
		Added:   []*model.Wallet{{ID: "b"}},
		Updated: []*model.Wallet{{ID: "a", Label: "new"}},
		Master:  &rec,
	})
	require.NoError(t, err)

	wallets, err := ws.Wallets(ctx)
	require.NoError(t, err)
	require.Len(t, wallets, 2)
	assert.Equal(t, "new", wallets[0].Label)

	got, ok, err := ws.MasterPassword(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, rec, got)

	// nothing is written when a wallet in the diff is invalid
	err = ws.Apply(ctx, WalletDiff{Added: []*model.Wallet{{ID: "c"}, {}}})
	assert.Error(t, err)
	wallets, err = ws.Wallets(ctx)
	require.NoError(t, err)
	assert.Len(t, wallets, 2)

	assert.NoError(t, ws.Apply(ctx, WalletDiff{}))
}

func TestWalletStoreReturnsCopies(t *testing.T) {
	ctx := context.Background()
	ws := NewWalletStore(NewMemoryKV())
	require.NoError(t, ws.SaveWallet(ctx, &model.Wallet{ID: "t", Label: "x", DontSave: true}))

	w, err := ws.Wallet(ctx, "t")
	require.NoError(t, err)
	w.Label = "changed"

	w, err = ws.Wallet(ctx, "t")
	require.NoError(t, err)
	assert.Equal(t, "x", w.Label)
}
