package model

// Wallet is a stored wallet record.
// EncPassword and EncPrivatekey are encrypted under the master password;
// Address is derived from them and never trusted on its own.
type Wallet struct {
	ID            string `json:"id"`
	Label         string `json:"label,omitempty"`
	Category      string `json:"category,omitempty"`
	Username      string `json:"username,omitempty"`
	EncPassword   string `json:"encPassword"`
	EncPrivatekey string `json:"encPrivatekey"`
	Format        string `json:"format"`
	Address       string `json:"address"`

	// Advisory values last seen on the node
	Balance    int64  `json:"balance,omitempty"`
	Names      int    `json:"names,omitempty"`
	FirstSeen  string `json:"firstSeen,omitempty"`
	LastSynced string `json:"lastSynced,omitempty"`

	// DontSave wallets are kept in memory only
	DontSave bool `json:"dontSave,omitempty"`
}

// MasterPassword is the persisted salt/tester pair.
// Tester is Salt encrypted under the master password.
type MasterPassword struct {
	Salt   string `json:"salt"`
	Tester string `json:"tester"`
}
