package model

// ImportRequest represents request to import a backup
type ImportRequest struct {
	Backup      string `json:"backup"`
	Password    string `json:"password"`
	NoOverwrite bool   `json:"noOverwrite,omitempty"`
}

// ImportMessage is one outcome line for a backup entry
type ImportMessage struct {
	Type  string `json:"type"` // success, warning or error
	Code  string `json:"code"`
	Error string `json:"error,omitempty"`
}

// ImportResponse represents response of a backup import
type ImportResponse struct {
	NewWallets     int                        `json:"newWallets"`
	SkippedWallets int                        `json:"skippedWallets"`
	Warnings       int                        `json:"warnings"`
	Errors         int                        `json:"errors"`
	Order          []string                   `json:"order"`
	Wallets        map[string][]ImportMessage `json:"wallets"`
}

// ExportResponse represents response of a backup export
type ExportResponse struct {
	Backup string `json:"backup"`
}
