package backup

import (
	"bytes"
	"encoding/json"
	"errors"
)

var (
	errWrongType   = errors.New("wrong type")
	errInvalidJSON = errors.New("invalid JSON")
)

// fields is a decoded wallet object with typed accessors
type fields map[string]json.RawMessage

func parseFields(data []byte) (fields, error) {
	if !json.Valid(data) {
		return nil, walletError(WalletInvalidJSON, "", errInvalidJSON)
	}
	if !isObject(data) {
		return nil, walletError(WalletInvalidType, "", errNotObject)
	}

	var f fields
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, walletError(WalletInvalidJSON, "", err)
	}
	return f, nil
}

// str reads a string field; ok is false when it is absent or null
func (f fields) str(name string) (value string, ok bool, err error) {
	raw, present := f[name]
	if !present || isNull(raw) {
		return "", false, nil
	}
	if !bytes.HasPrefix(bytes.TrimSpace(raw), []byte(`"`)) {
		return "", false, errWrongType
	}
	if err := json.Unmarshal(raw, &value); err != nil {
		return "", false, errWrongType
	}
	return value, true, nil
}

// number reads a numeric field; ok is false when it is absent or null
func (f fields) number(name string) (value float64, ok bool, err error) {
	raw, present := f[name]
	if !present || isNull(raw) {
		return 0, false, nil
	}
	if err := json.Unmarshal(raw, &value); err != nil {
		return 0, false, errWrongType
	}
	return value, true, nil
}

// present reports whether a field is set to anything but null
func (f fields) present(name string) bool {
	raw, ok := f[name]
	return ok && !isNull(raw)
}

// required reads a non-empty string field
func (f fields) required(name string) (string, error) {
	value, ok, err := f.str(name)
	if err != nil {
		return "", walletError(WalletInvalidType, name, err)
	}
	if !ok || value == "" {
		return "", walletError(WalletMissingField, name, nil)
	}
	return value, nil
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}
