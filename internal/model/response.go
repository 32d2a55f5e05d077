package model

// ErrorResponse is returned by every endpoint that fails.
// Code is a stable machine readable reason, e.g. "locked" or "invalid_base64".
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// StatusResponse represents a plain success response
type StatusResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
