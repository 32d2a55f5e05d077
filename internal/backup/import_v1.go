package backup

import (
	"encoding/json"
	"errors"

	"github.com/AlexZinkM/kristvault/internal/crypto"
	"github.com/AlexZinkM/kristvault/krist"
)

// parseLegacyWallet handles a first generation entry: a legacy cipher blob
// holding the wallet JSON.
func (i *Importer) parseLegacyWallet(run *importRun, key string, raw json.RawMessage) (candidate, error) {
	var blob string
	if !decodeString(raw, &blob) {
		return candidate{}, walletError(WalletInvalidType, "", errors.New("legacy wallet is not a string"))
	}

	plain, err := crypto.DecryptLegacy(blob, run.password)
	if err != nil {
		return candidate{}, walletError(WalletDecryptFailed, "", err)
	}

	f, err := parseFields([]byte(plain))
	if err != nil {
		return candidate{}, err
	}

	password, err := f.required("password")
	if err != nil {
		return candidate{}, err
	}

	masterkey, err := f.required("masterkey")
	if err != nil {
		return candidate{}, err
	}

	name, err := legacyFormatName(f)
	if err != nil {
		return candidate{}, err
	}

	format, username, err := i.parseFormat(run, key, name, f)
	if err != nil {
		return candidate{}, err
	}

	c := candidate{
		label:    i.optionalLabel(run, key, f, "label", CodeLabelInvalid),
		username: username,
		format:   format,
		password: password,

		privatekey: masterkey,
		keyField:   "masterkey",
	}

	if node, ok, err := f.str("syncNode"); err != nil {
		run.warn(key, CodeFieldIgnored, "syncNode")
	} else if ok && node != "" && i.cfg.SyncNode != "" && !sameNode(node, i.cfg.SyncNode) {
		run.warn(key, CodeSyncNode, "syncNode")
	}

	if f.present("icon") {
		run.warn(key, CodeIconIgnored, "icon")
	}

	return c, nil
}

// legacyFormatName reads walletFormat, falling back to format, then to the
// default format when neither is set.
func legacyFormatName(f fields) (string, error) {
	for _, field := range []string{"walletFormat", "format"} {
		name, _, err := f.str(field)
		if err != nil {
			return "", walletError(WalletInvalidType, field, err)
		}
		if name != "" {
			return name, nil
		}
	}
	return krist.DefaultFormat.String(), nil
}
