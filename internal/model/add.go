package model

// AddWalletRequest represents request to add a wallet
type AddWalletRequest struct {
	Label    string `json:"label,omitempty"`
	Category string `json:"category,omitempty"`
	Username string `json:"username,omitempty"`
	Password string `json:"password"`
	Format   string `json:"format,omitempty"`
	DontSave bool   `json:"dontSave,omitempty"`
}

// AddWalletResponse represents response to adding a wallet
type AddWalletResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	ID      string `json:"id"`
	Address string `json:"address"`
}

// DeriveAddressRequest represents request to derive an address
type DeriveAddressRequest struct {
	Format   string `json:"format,omitempty"`
	Username string `json:"username,omitempty"`
	Password string `json:"password"`
}

// DeriveAddressResponse represents response with a derived address
type DeriveAddressResponse struct {
	Format  string `json:"format"`
	Address string `json:"address"`
}
