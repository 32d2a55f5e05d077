package main

import (
	"context"

	"github.com/AlexZinkM/kristvault/internal/backup"
	"github.com/AlexZinkM/kristvault/internal/config"
	"github.com/AlexZinkM/kristvault/internal/session"
	"github.com/AlexZinkM/kristvault/internal/store"
	"github.com/AlexZinkM/kristvault/internal/vault"
)

// openStore opens the bbolt database from the config
func openStore() (*store.WalletStore, func(), error) {
	kv, err := store.OpenBolt(config.Get().DBPath)
	if err != nil {
		return nil, nil, err
	}
	closeFn := func() {
		_ = kv.Close()
	}
	return store.NewWalletStore(kv), closeFn, nil
}

// unlock asks for the master password and verifies it
func unlock(ctx context.Context, ws *store.WalletStore) (*session.Session, error) {
	password, err := config.MasterPassword("Enter master password: ")
	if err != nil {
		return nil, err
	}
	return session.Unlock(ctx, ws, password, session.WithTimeout(config.Get().SessionTimeout))
}

func limits() vault.Limits {
	cfg := config.Get()
	return vault.Limits{MaxWallets: cfg.MaxWallets, AdvancedFormats: cfg.AdvancedFormats}
}

func backupConfig() backup.Config {
	cfg := config.Get()
	return backup.Config{
		MaxWallets:      cfg.MaxWallets,
		SyncNode:        cfg.SyncNode,
		AdvancedFormats: cfg.AdvancedFormats,
	}
}
