package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/AlexZinkM/kristvault/internal/model"
	"github.com/AlexZinkM/kristvault/internal/session"
	"github.com/AlexZinkM/kristvault/internal/store"
	"github.com/AlexZinkM/kristvault/internal/vault"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestVault(t *testing.T) (*store.WalletStore, *session.Session) {
	t.Helper()
	ws := store.NewWalletStore(store.NewMemoryKV())
	s, err := session.Setup(context.Background(), ws, "master")
	require.NoError(t, err)
	return ws, s
}

func doJSON(t *testing.T, h http.HandlerFunc, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	rec := httptest.NewRecorder()
	h(rec, httptest.NewRequest(method, target, &buf))
	return rec
}

func decodeResp[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&out))
	return out
}

func TestAddAndListWallets(t *testing.T) {
	ws, s := newTestVault(t)
	h := NewWalletHandler(ws, s, vault.Limits{MaxWallets: 10})

	rec := doJSON(t, h.Wallets, http.MethodPost, "/wallets", model.AddWalletRequest{Label: "Main", Password: "abc"})
	require.Equal(t, http.StatusOK, rec.Code)
	added := decodeResp[model.AddWalletResponse](t, rec)
	assert.True(t, added.Success)
	assert.Equal(t, "k3c6ygr2c8", added.Address)
	assert.NotEmpty(t, added.ID)

	// same address again
	rec = doJSON(t, h.Wallets, http.MethodPost, "/wallets", model.AddWalletRequest{Password: "abc"})
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, codeWalletExists, decodeResp[model.ErrorResponse](t, rec).Code)

	rec = doJSON(t, h.Wallets, http.MethodGet, "/wallets?qr=true", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	list := decodeResp[model.WalletListResponse](t, rec)
	require.Equal(t, 1, list.Count)
	assert.Equal(t, "Main", list.Wallets[0].Label)
	assert.Equal(t, "kristwallet", list.Wallets[0].Format)
	assert.True(t, strings.HasPrefix(list.Wallets[0].QR, "iVBORw0KGgo"))

	rec = doJSON(t, h.Wallets, http.MethodGet, "/wallets", nil)
	// secrets never leave the store
	assert.NotContains(t, rec.Body.String(), "encPassword")
	list = decodeResp[model.WalletListResponse](t, rec)
	assert.Empty(t, list.Wallets[0].QR)
}

func TestAddWalletErrors(t *testing.T) {
	ws, s := newTestVault(t)
	h := NewWalletHandler(ws, s, vault.Limits{MaxWallets: 1})

	cases := []struct {
		name   string
		req    model.AddWalletRequest
		status int
		code   string
	}{
		{"no password", model.AddWalletRequest{}, http.StatusBadRequest, codeBadRequest},
		{"unknown format", model.AddWalletRequest{Password: "abc", Format: "bogus"}, http.StatusBadRequest, codeUnknownFormat},
		{"advanced format", model.AddWalletRequest{Password: "abc", Format: "jwalelset"}, http.StatusBadRequest, codeAdvancedFormat},
		{"long label", model.AddWalletRequest{Password: "abc", Label: strings.Repeat("x", 33)}, http.StatusBadRequest, codeBadRequest},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := doJSON(t, h.Wallets, http.MethodPost, "/wallets", tc.req)
			assert.Equal(t, tc.status, rec.Code)
			assert.Equal(t, tc.code, decodeResp[model.ErrorResponse](t, rec).Code)
		})
	}

	rec := doJSON(t, h.Wallets, http.MethodPost, "/wallets", model.AddWalletRequest{Password: "abc"})
	require.Equal(t, http.StatusOK, rec.Code)
	rec = doJSON(t, h.Wallets, http.MethodPost, "/wallets", model.AddWalletRequest{Password: "def"})
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, codeLimitReached, decodeResp[model.ErrorResponse](t, rec).Code)

	rec = doJSON(t, h.Wallets, http.MethodDelete, "/wallets", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestAddWalletAdvancedUsername(t *testing.T) {
	ws, s := newTestVault(t)
	h := NewWalletHandler(ws, s, vault.Limits{MaxWallets: 10, AdvancedFormats: true})

	rec := doJSON(t, h.Wallets, http.MethodPost, "/wallets", model.AddWalletRequest{Password: "abc", Format: "kristwallet_username"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, codeUsernameRequired, decodeResp[model.ErrorResponse](t, rec).Code)

	rec = doJSON(t, h.Wallets, http.MethodPost, "/wallets", model.AddWalletRequest{Password: "abc", Username: "user", Format: "kristwallet_username"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "k0pm7f8zuw", decodeResp[model.AddWalletResponse](t, rec).Address)
}

func TestAddWalletLocked(t *testing.T) {
	ws, s := newTestVault(t)
	s.Lock()
	h := NewWalletHandler(ws, s, vault.Limits{MaxWallets: 10})

	rec := doJSON(t, h.Wallets, http.MethodPost, "/wallets", model.AddWalletRequest{Password: "abc"})
	assert.Equal(t, http.StatusLocked, rec.Code)
	assert.Equal(t, codeLocked, decodeResp[model.ErrorResponse](t, rec).Code)
}

func TestDeriveAddress(t *testing.T) {
	ws, s := newTestVault(t)
	h := NewWalletHandler(ws, s, vault.Limits{MaxWallets: 10})

	rec := doJSON(t, h.DeriveAddress, http.MethodPost, "/address", model.DeriveAddressRequest{Password: "abc"})
	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeResp[model.DeriveAddressResponse](t, rec)
	assert.Equal(t, "kristwallet", resp.Format)
	assert.Equal(t, "k3c6ygr2c8", resp.Address)

	rec = doJSON(t, h.DeriveAddress, http.MethodPost, "/address", model.DeriveAddressRequest{Password: "abc", Format: "api"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "kl0lvzv59a", decodeResp[model.DeriveAddressResponse](t, rec).Address)

	rec = doJSON(t, h.DeriveAddress, http.MethodPost, "/address", model.DeriveAddressRequest{Password: "abc", Format: "kristwallet_username"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, h.DeriveAddress, http.MethodGet, "/address", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)

	// nothing was stored
	wallets, err := ws.Wallets(context.Background())
	require.NoError(t, err)
	assert.Empty(t, wallets)
}
