package store

import (
	"context"
	"encoding/json"
	"sort"
	"strings"
	"sync"

	"github.com/AlexZinkM/kristvault/internal/model"

	"github.com/pkg/errors"
)

const (
	keySalt         = "salt"
	keyTester       = "tester"
	walletKeyPrefix = "wallet2-"
)

// ErrWalletNotFound is returned for unknown wallet ids
var ErrWalletNotFound = errors.New("wallet not found")

// WalletDiff is a set of wallet changes applied in one batch
type WalletDiff struct {
	Added   []*model.Wallet
	Updated []*model.Wallet
	Master  *model.MasterPassword // replaces the master password record when set
}

// Empty reports whether the diff changes nothing
func (d WalletDiff) Empty() bool {
	return len(d.Added) == 0 && len(d.Updated) == 0 && d.Master == nil
}

// WalletStore keeps wallets and the master password record in a KV.
// Wallets marked DontSave never reach the KV.
type WalletStore struct {
	kv KV

	mu        sync.RWMutex
	transient map[string]*model.Wallet
}

// NewWalletStore wraps kv
func NewWalletStore(kv KV) *WalletStore {
	return &WalletStore{kv: kv, transient: make(map[string]*model.Wallet)}
}

// WalletKey is the KV key of a wallet id
func WalletKey(id string) string {
	return walletKeyPrefix + id
}

// MasterPassword returns the stored salt/tester pair; ok is false before setup.
func (s *WalletStore) MasterPassword(ctx context.Context) (rec model.MasterPassword, ok bool, err error) {
	salt, hasSalt, err := s.kv.Get(ctx, keySalt)
	if err != nil {
		return rec, false, err
	}
	tester, hasTester, err := s.kv.Get(ctx, keyTester)
	if err != nil {
		return rec, false, err
	}
	if !hasSalt || !hasTester {
		return rec, false, nil
	}
	return model.MasterPassword{Salt: salt, Tester: tester}, true, nil
}

// SetMasterPassword stores the salt/tester pair
func (s *WalletStore) SetMasterPassword(ctx context.Context, rec model.MasterPassword) error {
	return s.kv.Batch(ctx, func(w Writer) error {
		return putMaster(w, rec)
	})
}

// Wallets returns every wallet, persisted and transient, ordered by id.
func (s *WalletStore) Wallets(ctx context.Context) ([]*model.Wallet, error) {
	keys, err := s.kv.Keys(ctx, walletKeyPrefix)
	if err != nil {
		return nil, err
	}

	wallets := make([]*model.Wallet, 0, len(keys))
	for _, key := range keys {
		raw, ok, err := s.kv.Get(ctx, key)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}

		var w model.Wallet
		if err := json.Unmarshal([]byte(raw), &w); err != nil {
			return nil, errors.Wrapf(err, "failed to unmarshal wallet %q", key)
		}
		if w.ID == "" {
			w.ID = strings.TrimPrefix(key, walletKeyPrefix)
		}
		wallets = append(wallets, &w)
	}

	s.mu.RLock()
	for _, w := range s.transient {
		c := *w
		wallets = append(wallets, &c)
	}
	s.mu.RUnlock()

	sort.Slice(wallets, func(i, j int) bool { return wallets[i].ID < wallets[j].ID })
	return wallets, nil
}

// Wallet returns the wallet with the given id
func (s *WalletStore) Wallet(ctx context.Context, id string) (*model.Wallet, error) {
	s.mu.RLock()
	if w, ok := s.transient[id]; ok {
		c := *w
		s.mu.RUnlock()
		return &c, nil
	}
	s.mu.RUnlock()

	raw, ok, err := s.kv.Get(ctx, WalletKey(id))
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrWalletNotFound
	}

	var w model.Wallet
	if err := json.Unmarshal([]byte(raw), &w); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal wallet %q", id)
	}
	return &w, nil
}

// SaveWallet adds or replaces a wallet
func (s *WalletStore) SaveWallet(ctx context.Context, w *model.Wallet) error {
	return s.Apply(ctx, WalletDiff{Updated: []*model.Wallet{w}})
}

// DeleteWallet removes a wallet
func (s *WalletStore) DeleteWallet(ctx context.Context, id string) error {
	s.mu.Lock()
	_, ok := s.transient[id]
	delete(s.transient, id)
	s.mu.Unlock()
	if ok {
		return nil
	}

	return s.kv.Delete(ctx, WalletKey(id))
}

// Apply writes every change in diff in a single KV batch.
func (s *WalletStore) Apply(ctx context.Context, diff WalletDiff) error {
	if diff.Empty() {
		return nil
	}

	var transient []*model.Wallet
	err := s.kv.Batch(ctx, func(w Writer) error {
		if diff.Master != nil {
			if err := putMaster(w, *diff.Master); err != nil {
				return err
			}
		}

		for _, list := range [][]*model.Wallet{diff.Added, diff.Updated} {
			for _, wallet := range list {
				if wallet.ID == "" {
					return errors.New("wallet has no id")
				}
				if wallet.DontSave {
					transient = append(transient, wallet)
					// a wallet switching to DontSave leaves the KV
					if err := w.Delete(WalletKey(wallet.ID)); err != nil {
						return err
					}
					continue
				}

				data, err := json.Marshal(wallet)
				if err != nil {
					return errors.Wrap(err, "failed to marshal wallet")
				}
				if err := w.Set(WalletKey(wallet.ID), string(data)); err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, list := range [][]*model.Wallet{diff.Added, diff.Updated} {
		for _, wallet := range list {
			if !wallet.DontSave {
				delete(s.transient, wallet.ID)
			}
		}
	}
	for _, wallet := range transient {
		c := *wallet
		s.transient[wallet.ID] = &c
	}
	return nil
}

func putMaster(w Writer, rec model.MasterPassword) error {
	if rec.Salt == "" || rec.Tester == "" {
		return errors.New("incomplete master password record")
	}
	if err := w.Set(keySalt, rec.Salt); err != nil {
		return err
	}
	return w.Set(keyTester, rec.Tester)
}
