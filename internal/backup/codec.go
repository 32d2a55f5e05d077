package backup

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"errors"
	"strings"
)

// Generation identifies the container format of a backup
type Generation int

const (
	// GenerationLegacy backups have CryptoJS encrypted entries
	GenerationLegacy Generation = 1
	// GenerationCurrent backups have AES-GCM encrypted wallet secrets
	GenerationCurrent Generation = 2
)

// CurrentVersion is the "version" value of current backups
const CurrentVersion = 2

func (g Generation) String() string {
	switch g {
	case GenerationLegacy:
		return "legacy"
	case GenerationCurrent:
		return "current"
	default:
		return "unknown"
	}
}

// Entry is one keyed value of a backup's wallets object
type Entry struct {
	Key   string
	Value json.RawMessage
}

// Entries is a JSON object that keeps its document order
type Entries []Entry

var errNotObject = errors.New("not a JSON object")

// UnmarshalJSON reads an object, keeping keys in document order. A repeated
// key keeps its first position and its last value.
func (e *Entries) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return errNotObject
	}

	out := Entries{}
	index := make(map[string]int)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return errNotObject
		}

		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return err
		}

		if i, ok := index[key]; ok {
			out[i].Value = value
			continue
		}
		index[key] = len(out)
		out = append(out, Entry{Key: key, Value: value})
	}

	if _, err := dec.Token(); err != nil {
		return err
	}

	*e = out
	return nil
}

// Backup is a decoded backup container
type Backup struct {
	Generation Generation
	Salt       string
	Tester     string
	Wallets    Entries
	Contacts   json.RawMessage // passed through untouched
}

// Decode parses a base64 backup container and detects its generation.
func Decode(raw string) (*Backup, error) {
	data, err := base64.StdEncoding.DecodeString(strings.TrimSpace(raw))
	if err != nil {
		return nil, &DecodeError{Kind: DecodeInvalidBase64, Err: err}
	}

	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, &DecodeError{Kind: DecodeInvalidJSON, Err: err}
	}
	if doc == nil {
		return nil, &DecodeError{Kind: DecodeInvalidJSON, Err: errNotObject}
	}

	b := &Backup{Generation: GenerationLegacy}

	if !decodeString(doc["tester"], &b.Tester) {
		return nil, &DecodeError{Kind: DecodeMissingTester}
	}
	if !decodeString(doc["salt"], &b.Salt) {
		return nil, &DecodeError{Kind: DecodeMissingSalt}
	}

	wallets, ok := doc["wallets"]
	if !ok {
		return nil, &DecodeError{Kind: DecodeInvalidWallets, Err: errors.New("missing wallets")}
	}
	if err := json.Unmarshal(wallets, &b.Wallets); err != nil {
		return nil, &DecodeError{Kind: DecodeInvalidWallets, Err: err}
	}

	if contacts, ok := doc["contacts"]; ok {
		if !isObject(contacts) {
			return nil, &DecodeError{Kind: DecodeInvalidContacts, Err: errNotObject}
		}
		b.Contacts = contacts
	}

	var version float64
	if raw, ok := doc["version"]; ok && json.Unmarshal(raw, &version) == nil && version == CurrentVersion {
		b.Generation = GenerationCurrent
	}

	return b, nil
}

func decodeString(raw json.RawMessage, out *string) bool {
	if raw == nil || !bytes.HasPrefix(bytes.TrimSpace(raw), []byte(`"`)) {
		return false
	}
	return json.Unmarshal(raw, out) == nil
}

func isObject(raw json.RawMessage) bool {
	return bytes.HasPrefix(bytes.TrimSpace(raw), []byte("{"))
}
