// Package vault holds the wallet rules shared by the API and the CLI.
package vault

import (
	"context"
	"errors"
	"fmt"

	"github.com/AlexZinkM/kristvault/internal/model"
	"github.com/AlexZinkM/kristvault/internal/store"
	"github.com/AlexZinkM/kristvault/krist"

	"github.com/rs/zerolog/log"
)

var (
	ErrAdvancedFormat = errors.New("advanced wallet formats are disabled")
	ErrLimitReached   = errors.New("wallet limit reached")
	ErrWalletExists   = errors.New("a wallet with this address already exists")
)

// Limits restrict what can be added
type Limits struct {
	MaxWallets      int
	AdvancedFormats bool
}

// ParseFormat reads an optional format name; empty means the default format.
func (l Limits) ParseFormat(name string) (krist.KeyFormat, error) {
	if name == "" {
		return krist.DefaultFormat, nil
	}
	format, err := krist.ParseKeyFormat(name)
	if err != nil {
		return 0, err
	}
	if format.Advanced() && !l.AdvancedFormats {
		return 0, fmt.Errorf("%w: %s", ErrAdvancedFormat, format)
	}
	return format, nil
}

// AddWallet creates a wallet for password and saves it, refusing duplicates
// and wallets past the limit.
func AddWallet(ctx context.Context, ws *store.WalletStore, master krist.Credential, l Limits, data krist.WalletData, password string) (*model.Wallet, error) {
	if data.Format == 0 {
		data.Format = krist.DefaultFormat
	}
	if data.Format.Advanced() && !l.AdvancedFormats {
		return nil, fmt.Errorf("%w: %s", ErrAdvancedFormat, data.Format)
	}

	existing, err := ws.Wallets(ctx)
	if err != nil {
		return nil, err
	}
	if l.MaxWallets > 0 && len(existing) >= l.MaxWallets {
		return nil, fmt.Errorf("%w: at most %d wallets", ErrLimitReached, l.MaxWallets)
	}

	wallet, err := krist.NewWallet(master, data, password)
	if err != nil {
		return nil, err
	}

	for _, e := range existing {
		if e.Address == wallet.Address {
			return nil, fmt.Errorf("%w: %s", ErrWalletExists, wallet.Address)
		}
	}

	if err := ws.SaveWallet(ctx, wallet); err != nil {
		return nil, err
	}

	log.Info().Str("id", wallet.ID).Str("address", wallet.Address).Bool("dontSave", wallet.DontSave).Msg("Wallet added")
	return wallet, nil
}
