package backup

import (
	"errors"
	"fmt"
)

var (
	// ErrPasswordRequired is returned when no backup password was given
	ErrPasswordRequired = errors.New("backup password is required")

	// ErrPasswordIncorrect is returned when the backup tester does not decrypt to its salt
	ErrPasswordIncorrect = errors.New("backup password is incorrect")

	// ErrImportInProgress is returned when an import is already running against the store
	ErrImportInProgress = errors.New("an import is already in progress")
)

// DecodeErrorKind says which part of a backup container is malformed
type DecodeErrorKind string

const (
	DecodeInvalidBase64   DecodeErrorKind = "invalid_base64"
	DecodeInvalidJSON     DecodeErrorKind = "invalid_json"
	DecodeMissingTester   DecodeErrorKind = "missing_tester"
	DecodeMissingSalt     DecodeErrorKind = "missing_salt"
	DecodeInvalidWallets  DecodeErrorKind = "invalid_wallets"
	DecodeInvalidContacts DecodeErrorKind = "invalid_contacts"
)

// DecodeError is returned by Decode
type DecodeError struct {
	Kind DecodeErrorKind
	Err  error
}

func (e *DecodeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid backup (%s): %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("invalid backup (%s)", e.Kind)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// IsDecodeError checks if err is a DecodeError of the given kind
func IsDecodeError(err error, kind DecodeErrorKind) bool {
	var de *DecodeError
	return errors.As(err, &de) && de.Kind == kind
}

// WalletErrorKind says why a single backup entry was rejected
type WalletErrorKind string

const (
	WalletMissingField      WalletErrorKind = "missing_field"
	WalletUnknownFormat     WalletErrorKind = "unknown_format"
	WalletUsernameRequired  WalletErrorKind = "username_required"
	WalletDecryptFailed     WalletErrorKind = "decrypt_failed"
	WalletInvalidJSON       WalletErrorKind = "json_invalid"
	WalletInvalidType       WalletErrorKind = "type_invalid"
	WalletIntegrityMismatch WalletErrorKind = "integrity_mismatch"
	WalletLimitReached      WalletErrorKind = "limit_reached"
	WalletEncryptFailed     WalletErrorKind = "encrypt_failed"
)

// WalletError rejects one backup entry. It never aborts the import.
type WalletError struct {
	Kind  WalletErrorKind
	Field string // offending field, if any
	Err   error
}

func (e *WalletError) Error() string {
	msg := string(e.Kind)
	if e.Field != "" {
		msg += " (" + e.Field + ")"
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *WalletError) Unwrap() error {
	return e.Err
}

// IsWalletError checks if err is a WalletError of the given kind
func IsWalletError(err error, kind WalletErrorKind) bool {
	var we *WalletError
	return errors.As(err, &we) && we.Kind == kind
}

func walletError(kind WalletErrorKind, field string, err error) *WalletError {
	return &WalletError{Kind: kind, Field: field, Err: err}
}
