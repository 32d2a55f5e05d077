package backup

import (
	"context"
	"sync"

	"github.com/AlexZinkM/kristvault/internal/store"
	"github.com/AlexZinkM/kristvault/krist"

	"github.com/rs/zerolog/log"
)

// Service runs imports and exports against a wallet store. Only one import
// may run at a time.
type Service struct {
	cfg     Config
	wallets *store.WalletStore

	importMu sync.Mutex
}

// NewService creates a backup service over ws
func NewService(cfg Config, ws *store.WalletStore) *Service {
	return &Service{cfg: cfg, wallets: ws}
}

// Import decodes raw, checks password and merges the backup into the store.
// Store changes are written in one batch once every entry has been handled;
// nothing is written when the run fails.
func (s *Service) Import(ctx context.Context, master krist.Credential, raw, password string, noOverwrite bool, progress Progress) (*Report, error) {
	if !s.importMu.TryLock() {
		return nil, ErrImportInProgress
	}
	defer s.importMu.Unlock()

	b, err := Decode(raw)
	if err != nil {
		return nil, err
	}
	if err := VerifyPassword(b, password); err != nil {
		return nil, err
	}

	existing, err := s.wallets.Wallets(ctx)
	if err != nil {
		return nil, err
	}

	report, err := NewImporter(s.cfg, master, existing).Import(b, password, noOverwrite, progress)
	if err != nil {
		return nil, err
	}

	if err := s.wallets.Apply(ctx, report.Diff()); err != nil {
		return nil, err
	}

	log.Info().
		Int("added", len(report.Imported)).
		Int("updated", len(report.Updated)).
		Msg("Backup changes saved")

	return report, nil
}

// Export encodes the store as a current generation backup
func (s *Service) Export(ctx context.Context) (string, error) {
	return Export(ctx, s.wallets)
}
