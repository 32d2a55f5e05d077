package model

// UnlockRequest represents request to unlock the master password session
type UnlockRequest struct {
	Password string `json:"password"`
}
