package model

// WalletResponse is a wallet as shown to API clients (no secrets)
type WalletResponse struct {
	ID       string `json:"id"`
	Label    string `json:"label,omitempty"`
	Category string `json:"category,omitempty"`
	Username string `json:"username,omitempty"`
	Format   string `json:"format"`
	Address  string `json:"address"`
	Balance  int64  `json:"balance"`
	Names    int    `json:"names"`
	QR       string `json:"QR,omitempty"` // PNG, base64
	DontSave bool   `json:"dontSave,omitempty"`
}

// WalletListResponse represents response of the wallet list
type WalletListResponse struct {
	Count   int              `json:"count"`
	Wallets []WalletResponse `json:"wallets"`
}
