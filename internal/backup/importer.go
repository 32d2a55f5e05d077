package backup

import (
	"crypto/subtle"
	"encoding/json"
	"errors"
	"strings"

	"github.com/AlexZinkM/kristvault/internal/common"
	"github.com/AlexZinkM/kristvault/internal/crypto"
	"github.com/AlexZinkM/kristvault/internal/model"
	"github.com/AlexZinkM/kristvault/krist"

	"github.com/google/uuid"
	"github.com/lightningnetwork/lnd/fn/v2"
	"github.com/rs/zerolog/log"
)

const (
	// DefaultMaxWallets is the most wallets a user can hold
	DefaultMaxWallets = 128
	// DefaultSyncNode is the node legacy wallets are expected to point at
	DefaultSyncNode = "https://krist.dev"
)

// Config controls import validation
type Config struct {
	MaxWallets      int
	SyncNode        string
	AdvancedFormats bool
}

// DefaultConfig returns the default import settings
func DefaultConfig() Config {
	return Config{MaxWallets: DefaultMaxWallets, SyncNode: DefaultSyncNode}
}

// VerifyPassword checks password against the backup's salt/tester pair using
// the cipher of the backup's generation.
func VerifyPassword(b *Backup, password string) error {
	if password == "" {
		return ErrPasswordRequired
	}

	var (
		salt string
		err  error
	)
	switch b.Generation {
	case GenerationCurrent:
		salt, err = crypto.Decrypt(b.Tester, password)
	default:
		salt, err = crypto.DecryptLegacy(b.Tester, password)
	}
	if err != nil {
		return ErrPasswordIncorrect
	}

	if subtle.ConstantTimeCompare([]byte(salt), []byte(b.Salt)) != 1 {
		return ErrPasswordIncorrect
	}
	return nil
}

// Importer merges backup entries into a snapshot of the wallet store.
// It never writes to the store: the changes are returned in the Report.
type Importer struct {
	cfg       Config
	master    krist.Credential
	existing  []*model.Wallet
	byAddress map[string]*model.Wallet
}

// NewImporter creates an importer for the given existing wallets; new
// wallets are encrypted under master.
func NewImporter(cfg Config, master krist.Credential, existing []*model.Wallet) *Importer {
	if cfg.MaxWallets <= 0 {
		cfg.MaxWallets = DefaultMaxWallets
	}

	byAddress := make(map[string]*model.Wallet, len(existing))
	for _, w := range existing {
		if _, ok := byAddress[w.Address]; !ok {
			byAddress[w.Address] = w
		}
	}

	return &Importer{cfg: cfg, master: master, existing: existing, byAddress: byAddress}
}

// importRun is the state of a single Import call
type importRun struct {
	report      *Report
	password    string // of the backup
	noOverwrite bool
	updated     map[string]int // existing wallet id -> index in report.Updated
}

func (r *importRun) warn(key string, code MessageCode, field string) {
	r.report.add(key, Message{Type: MessageWarning, Code: code, Field: field})
}

// candidate is a validated and decrypted backup entry
type candidate struct {
	label      string
	category   string
	username   string
	format     krist.KeyFormat
	password   string
	balance    int64
	names      int
	firstSeen  string
	lastSynced string

	// stored values, checked against the derivation
	privatekey string
	keyField   string
	address    string
}

// Import processes every wallet entry of b in document order. The password
// must already have been checked with VerifyPassword. Entry failures are
// recorded in the report and never stop the run.
func (i *Importer) Import(b *Backup, password string, noOverwrite bool, progress Progress) (*Report, error) {
	if progress == nil {
		progress = ProgressFuncs{}
	}
	if _, err := i.master.Password(); err != nil {
		return nil, err
	}

	run := &importRun{
		report:      newReport(),
		password:    password,
		noOverwrite: noOverwrite,
		updated:     make(map[string]int),
	}

	progress.SetTotal(len(b.Wallets))
	for _, entry := range b.Wallets {
		res := i.importEntry(run, b.Generation, entry)

		res.WhenOk(func(code MessageCode) {
			run.report.add(entry.Key, Message{Type: MessageSuccess, Code: code})
			log.Debug().Str("key", entry.Key).Str("result", string(code)).Msg("Backup wallet processed")
		})
		res.WhenErr(func(err error) {
			run.report.addError(entry.Key, err)
			log.Debug().Str("key", entry.Key).Err(err).Msg("Backup wallet rejected")
		})

		progress.Increment()
	}

	i.importContacts(b.Contacts)

	log.Info().
		Str("generation", b.Generation.String()).
		Int("entries", len(b.Wallets)).
		Int("new", run.report.NewWallets).
		Int("skipped", run.report.SkippedWallets).
		Int("warnings", run.report.Count(MessageWarning)).
		Int("errors", run.report.Count(MessageError)).
		Msg("Backup import finished")

	return run.report, nil
}

func (i *Importer) importEntry(run *importRun, gen Generation, entry Entry) fn.Result[MessageCode] {
	var (
		c   candidate
		err error
	)
	switch gen {
	case GenerationCurrent:
		c, err = i.parseWallet(run, entry.Key, entry.Value)
	default:
		c, err = i.parseLegacyWallet(run, entry.Key, entry.Value)
	}
	if err != nil {
		return fn.Err[MessageCode](err)
	}

	return i.commit(run, c)
}

// commit checks the candidate's integrity, resolves duplicates and the
// wallet limit, then adds it to the run.
func (i *Importer) commit(run *importRun, c candidate) fn.Result[MessageCode] {
	privatekey, address, err := krist.CalculateAddress(c.format, c.password, c.username)
	switch {
	case errors.Is(err, krist.ErrUsernameRequired):
		return fn.Err[MessageCode](walletError(WalletUsernameRequired, "username", err))
	case err != nil:
		return fn.Err[MessageCode](walletError(WalletUnknownFormat, "format", err))
	}

	if c.privatekey != "" && c.privatekey != privatekey {
		return fn.Err[MessageCode](walletError(WalletIntegrityMismatch, c.keyField, krist.ErrPrivatekeyMismatch))
	}
	if c.address != "" && c.address != address {
		return fn.Err[MessageCode](walletError(WalletIntegrityMismatch, "address", errors.New("stored address does not match password")))
	}

	if code, ok := i.resolveDuplicate(run, address, c.label); ok {
		return fn.Ok(code)
	}

	if len(i.existing)+len(run.report.Imported) >= i.cfg.MaxWallets {
		return fn.Err[MessageCode](walletError(WalletLimitReached, "", nil))
	}

	// Secrets are re-encrypted under this session's master password, which
	// may differ from the one that wrote the backup.
	encPassword, encPrivatekey, err := krist.EncryptSecrets(i.master, c.password, privatekey)
	if err != nil {
		return fn.Err[MessageCode](walletError(WalletEncryptFailed, "", err))
	}

	username := ""
	if c.format.RequiresUsername() {
		username = c.username
	}

	run.report.Imported = append(run.report.Imported, &model.Wallet{
		ID:            uuid.NewString(),
		Label:         c.label,
		Category:      c.category,
		Username:      username,
		EncPassword:   encPassword,
		EncPrivatekey: encPrivatekey,
		Format:        c.format.String(),
		Address:       address,
		Balance:       c.balance,
		Names:         c.names,
		FirstSeen:     c.firstSeen,
		LastSynced:    c.lastSynced,
	})
	run.report.NewWallets++

	return fn.Ok(CodeImported)
}

// resolveDuplicate handles an address that is already in the store or was
// committed earlier in this run. ok is false when the address is new.
func (i *Importer) resolveDuplicate(run *importRun, address, label string) (MessageCode, bool) {
	relabel := func(current string) bool {
		return !run.noOverwrite && label != "" && label != current
	}

	if w, ok := i.byAddress[address]; ok {
		if idx, ok := run.updated[w.ID]; ok {
			w = run.report.Updated[idx]
		}
		if !relabel(w.Label) {
			run.report.SkippedWallets++
			return CodeSkipped, true
		}

		updated := *w
		updated.Label = label
		if idx, ok := run.updated[w.ID]; ok {
			run.report.Updated[idx] = &updated
		} else {
			run.updated[w.ID] = len(run.report.Updated)
			run.report.Updated = append(run.report.Updated, &updated)
		}
		return CodeUpdated, true
	}

	for _, w := range run.report.Imported {
		if w.Address != address {
			continue
		}
		if !relabel(w.Label) {
			run.report.SkippedWallets++
			return CodeSkipped, true
		}
		w.Label = label
		return CodeUpdated, true
	}

	return "", false
}

// parseFormat reads the format name and username of an entry
func (i *Importer) parseFormat(run *importRun, key, name string, f fields) (krist.KeyFormat, string, error) {
	format, err := krist.ParseKeyFormat(name)
	if err != nil {
		return 0, "", walletError(WalletUnknownFormat, "format", err)
	}

	username, _, err := f.str("username")
	if err != nil {
		return 0, "", walletError(WalletInvalidType, "username", err)
	}
	if format.RequiresUsername() && username == "" {
		return 0, "", walletError(WalletUsernameRequired, "username", krist.ErrUsernameRequired)
	}

	if format.Advanced() && !i.cfg.AdvancedFormats {
		run.warn(key, CodeAdvancedFormat, "format")
	}

	return format, username, nil
}

// optionalLabel reads a label-like field. Invalid values are dropped with a
// warning.
func (i *Importer) optionalLabel(run *importRun, key string, f fields, name string, code MessageCode) string {
	value, ok, err := f.str(name)
	if err != nil {
		run.warn(key, code, name)
		return ""
	}
	if !ok {
		return ""
	}

	label, valid := common.CleanLabel(value)
	if !valid {
		run.warn(key, code, name)
		return ""
	}
	return label
}

// importContacts is a placeholder: contacts ride along in the container but
// are not merged into the store.
func (i *Importer) importContacts(contacts json.RawMessage) {
	if len(contacts) == 0 {
		return
	}

	var entries Entries
	if err := json.Unmarshal(contacts, &entries); err == nil && len(entries) > 0 {
		log.Debug().Int("contacts", len(entries)).Msg("Backup contacts are not imported")
	}
}

func sameNode(a, b string) bool {
	return strings.TrimRight(a, "/") == strings.TrimRight(b, "/")
}
