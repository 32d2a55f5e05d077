package backup

import (
	"encoding/json"
	"math"

	"github.com/AlexZinkM/kristvault/internal/crypto"
)

// parseWallet handles a current generation entry: a plain object whose
// secrets are encrypted with the current cipher.
func (i *Importer) parseWallet(run *importRun, key string, raw json.RawMessage) (candidate, error) {
	f, err := parseFields(raw)
	if err != nil {
		return candidate{}, err
	}

	encPassword, err := f.required("encPassword")
	if err != nil {
		return candidate{}, err
	}
	encPrivatekey, err := f.required("encPrivatekey")
	if err != nil {
		return candidate{}, err
	}
	name, err := f.required("format")
	if err != nil {
		return candidate{}, err
	}

	format, username, err := i.parseFormat(run, key, name, f)
	if err != nil {
		return candidate{}, err
	}

	c := candidate{
		label:    i.optionalLabel(run, key, f, "label", CodeLabelInvalid),
		category: i.optionalLabel(run, key, f, "category", CodeCategoryInvalid),
		username: username,
		format:   format,
		keyField: "encPrivatekey",
	}

	if address, _, err := f.str("address"); err != nil {
		run.warn(key, CodeFieldIgnored, "address")
	} else {
		c.address = address
	}

	if balance, ok, err := f.number("balance"); err != nil || (ok && !isWhole(balance)) {
		run.warn(key, CodeFieldIgnored, "balance")
	} else {
		c.balance = int64(balance)
	}

	if names, ok, err := f.number("names"); err != nil || (ok && !isWhole(names)) {
		run.warn(key, CodeFieldIgnored, "names")
	} else {
		c.names = int(names)
	}

	if firstSeen, _, err := f.str("firstSeen"); err != nil {
		run.warn(key, CodeFieldIgnored, "firstSeen")
	} else {
		c.firstSeen = firstSeen
	}

	if lastSynced, _, err := f.str("lastSynced"); err != nil {
		run.warn(key, CodeFieldIgnored, "lastSynced")
	} else {
		c.lastSynced = lastSynced
	}

	if c.password, err = crypto.Decrypt(encPassword, run.password); err != nil {
		return candidate{}, walletError(WalletDecryptFailed, "encPassword", err)
	}
	if c.privatekey, err = crypto.Decrypt(encPrivatekey, run.password); err != nil {
		return candidate{}, walletError(WalletDecryptFailed, "encPrivatekey", err)
	}

	return c, nil
}

func isWhole(v float64) bool {
	return v >= 0 && v == math.Trunc(v) && v < math.MaxInt32
}
