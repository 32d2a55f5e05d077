package api

import (
	"errors"
	"net/http"

	_ "github.com/AlexZinkM/kristvault/docs"
	"github.com/AlexZinkM/kristvault/internal/backup"
	"github.com/AlexZinkM/kristvault/internal/handler"
	"github.com/AlexZinkM/kristvault/internal/session"
	"github.com/AlexZinkM/kristvault/internal/store"
	"github.com/AlexZinkM/kristvault/internal/vault"

	httpSwagger "github.com/swaggo/http-swagger"
)

// Deps are the services the API is built on
type Deps struct {
	Wallets *store.WalletStore
	Session *session.Session
	Backup  *backup.Service
	Limits  vault.Limits
}

// SetupRouter sets up router with handlers
func SetupRouter(d Deps) (http.Handler, error) {
	if d.Wallets == nil || d.Session == nil || d.Backup == nil {
		return nil, errors.New("router needs a wallet store, a session and a backup service")
	}

	walletHandler := handler.NewWalletHandler(d.Wallets, d.Session, d.Limits)
	backupHandler := handler.NewBackupHandler(d.Backup, d.Session)
	sessionHandler := handler.NewSessionHandler(d.Wallets, d.Session)

	mux := http.NewServeMux()

	// Swagger UI
	mux.HandleFunc("/swagger/", httpSwagger.WrapHandler)

	// Wallet endpoints
	mux.HandleFunc("/wallets", walletHandler.Wallets)
	mux.HandleFunc("/address", walletHandler.DeriveAddress)

	// Backup endpoints
	mux.HandleFunc("/backup/import", backupHandler.Import)
	mux.HandleFunc("/backup/export", backupHandler.Export)

	// Session endpoints
	mux.HandleFunc("/session/unlock", sessionHandler.Unlock)
	mux.HandleFunc("/session/lock", sessionHandler.Lock)

	return mux, nil
}
