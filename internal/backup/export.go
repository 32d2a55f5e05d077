package backup

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/AlexZinkM/kristvault/internal/model"
	"github.com/AlexZinkM/kristvault/internal/store"
)

// ErrNothingToExport is returned when the store has no master password record
var ErrNothingToExport = errors.New("no master password has been set up")

type container struct {
	Version  int                      `json:"version"`
	Salt     string                   `json:"salt"`
	Tester   string                   `json:"tester"`
	Wallets  map[string]*model.Wallet `json:"wallets"`
	Contacts map[string]any           `json:"contacts"`
}

// Encode builds a current generation backup. The wallets' secrets are copied
// as they are, so the backup password is the master password behind record.
// Wallets marked DontSave are left out.
func Encode(record model.MasterPassword, wallets []*model.Wallet) (string, error) {
	c := container{
		Version:  CurrentVersion,
		Salt:     record.Salt,
		Tester:   record.Tester,
		Wallets:  make(map[string]*model.Wallet, len(wallets)),
		Contacts: map[string]any{},
	}
	for _, w := range wallets {
		if w.DontSave {
			continue
		}
		c.Wallets[store.WalletKey(w.ID)] = w
	}

	data, err := json.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("failed to marshal backup: %w", err)
	}
	return base64.StdEncoding.EncodeToString(data), nil
}

// Export encodes everything in ws
func Export(ctx context.Context, ws *store.WalletStore) (string, error) {
	record, ok, err := ws.MasterPassword(ctx)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", ErrNothingToExport
	}

	wallets, err := ws.Wallets(ctx)
	if err != nil {
		return "", err
	}
	return Encode(record, wallets)
}
