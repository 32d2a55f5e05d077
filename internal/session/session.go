// Package session holds the unlocked master password.
//
// The master password is never persisted. Unlock verifies a candidate against
// the stored salt/tester pair and returns a Session that keeps the password in
// memory until Lock is called or the idle timeout passes.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/AlexZinkM/kristvault/internal/crypto"
	"github.com/AlexZinkM/kristvault/internal/store"
	"github.com/AlexZinkM/kristvault/krist"

	"github.com/lightningnetwork/lnd/clock"
	"github.com/rs/zerolog/log"
)

var (
	ErrNotInitialized     = errors.New("master password has not been set up")
	ErrAlreadyInitialized = errors.New("master password is already set up")
	ErrIncorrectPassword  = errors.New("incorrect master password")
	ErrPasswordRequired   = errors.New("master password is required")
	ErrLocked             = errors.New("session is locked")
)

// Session is an unlocked master password. It satisfies krist.Credential.
type Session struct {
	mu       sync.Mutex
	password []byte
	timeout  time.Duration
	lastUsed time.Time
	clock    clock.Clock
}

// Option configures a Session
type Option func(*Session)

// WithTimeout locks the session after d without use. Zero disables it.
func WithTimeout(d time.Duration) Option {
	return func(s *Session) { s.timeout = d }
}

// WithClock overrides the clock used for the idle timeout
func WithClock(c clock.Clock) Option {
	return func(s *Session) { s.clock = c }
}

func newSession(password string, opts ...Option) *Session {
	s := &Session{
		password: []byte(password),
		clock:    clock.NewDefaultClock(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.lastUsed = s.clock.Now()
	return s
}

// Setup creates the master password record for password and returns an
// unlocked session.
func Setup(ctx context.Context, ws *store.WalletStore, password string, opts ...Option) (*Session, error) {
	if password == "" {
		return nil, ErrPasswordRequired
	}

	_, ok, err := ws.MasterPassword(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read master password: %w", err)
	}
	if ok {
		return nil, ErrAlreadyInitialized
	}

	rec, err := crypto.NewMasterPassword(password)
	if err != nil {
		return nil, err
	}
	if err := ws.SetMasterPassword(ctx, rec); err != nil {
		return nil, fmt.Errorf("failed to store master password: %w", err)
	}

	log.Info().Msg("Master password set up")
	return newSession(password, opts...), nil
}

// Unlock verifies password against the stored record
func Unlock(ctx context.Context, ws *store.WalletStore, password string, opts ...Option) (*Session, error) {
	if password == "" {
		return nil, ErrPasswordRequired
	}

	rec, ok, err := ws.MasterPassword(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read master password: %w", err)
	}
	if !ok {
		return nil, ErrNotInitialized
	}

	if !crypto.VerifyMasterPassword(rec, password) {
		return nil, ErrIncorrectPassword
	}

	return newSession(password, opts...), nil
}

// Password returns the master password and refreshes the idle timer
func (s *Session) Password() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.expiredLocked() {
		s.wipeLocked()
	}
	if s.password == nil {
		return "", ErrLocked
	}

	s.lastUsed = s.clock.Now()
	return string(s.password), nil
}

// Locked reports whether the session no longer holds the password
func (s *Session) Locked() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.expiredLocked() {
		s.wipeLocked()
	}
	return s.password == nil
}

// Lock wipes the password from memory
func (s *Session) Lock() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.wipeLocked()
}

// Renew unlocks a locked or expired session again after verifying password
// against the stored record.
func (s *Session) Renew(ctx context.Context, ws *store.WalletStore, password string) error {
	if password == "" {
		return ErrPasswordRequired
	}

	rec, ok, err := ws.MasterPassword(ctx)
	if err != nil {
		return fmt.Errorf("failed to read master password: %w", err)
	}
	if !ok {
		return ErrNotInitialized
	}
	if !crypto.VerifyMasterPassword(rec, password) {
		return ErrIncorrectPassword
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.wipeLocked()
	s.password = []byte(password)
	s.lastUsed = s.clock.Now()
	return nil
}

func (s *Session) expiredLocked() bool {
	return s.timeout > 0 && s.password != nil && s.clock.Now().Sub(s.lastUsed) >= s.timeout
}

func (s *Session) wipeLocked() {
	clear(s.password)
	s.password = nil
}

// ChangePassword re-encrypts every wallet and the tester under newPassword in
// one store batch. The old session is locked on success.
func ChangePassword(ctx context.Context, ws *store.WalletStore, current *Session, newPassword string, opts ...Option) (*Session, error) {
	if newPassword == "" {
		return nil, ErrPasswordRequired
	}
	if _, err := current.Password(); err != nil {
		return nil, err
	}

	rec, err := crypto.NewMasterPassword(newPassword)
	if err != nil {
		return nil, err
	}
	next := newSession(newPassword, opts...)

	wallets, err := ws.Wallets(ctx)
	if err != nil {
		return nil, err
	}

	diff := store.WalletDiff{Master: &rec}
	for _, w := range wallets {
		out, err := krist.ReencryptWallet(current, next, w)
		if err != nil {
			next.Lock()
			return nil, fmt.Errorf("failed to re-encrypt wallet %s: %w", w.ID, err)
		}
		diff.Updated = append(diff.Updated, out)
	}

	if err := ws.Apply(ctx, diff); err != nil {
		next.Lock()
		return nil, fmt.Errorf("failed to store re-encrypted wallets: %w", err)
	}

	current.Lock()
	log.Info().Int("wallets", len(wallets)).Msg("Master password changed")
	return next, nil
}
