package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/AlexZinkM/kristvault/internal/backup"
	"github.com/AlexZinkM/kristvault/internal/model"
	"github.com/AlexZinkM/kristvault/internal/session"
	"github.com/AlexZinkM/kristvault/internal/vault"
	"github.com/AlexZinkM/kristvault/krist"

	"github.com/rs/zerolog/log"
)

// Error codes of model.ErrorResponse
const (
	codeBadRequest       = "bad_request"
	codeLocked           = "locked"
	codeIncorrectPass    = "incorrect_password"
	codeUnknownFormat    = "unknown_format"
	codeUsernameRequired = "username_required"
	codeAdvancedFormat   = "advanced_format"
	codeLimitReached     = "limit_reached"
	codeWalletExists     = "wallet_exists"
	codeInProgress       = "import_in_progress"
	codeNotInitialized   = "not_initialized"
	codeInternal         = "internal"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("Failed to write response")
	}
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	writeJSON(w, status, model.ErrorResponse{Error: err.Error(), Code: code})
}

// statusOf maps known errors to a status and code; ok is false for others
func statusOf(err error) (status int, code string, ok bool) {
	var de *backup.DecodeError

	switch {
	case errors.As(err, &de):
		return http.StatusBadRequest, string(de.Kind), true
	case errors.Is(err, session.ErrLocked):
		return http.StatusLocked, codeLocked, true
	case errors.Is(err, session.ErrIncorrectPassword), errors.Is(err, backup.ErrPasswordIncorrect):
		return http.StatusUnauthorized, codeIncorrectPass, true
	case errors.Is(err, session.ErrPasswordRequired), errors.Is(err, backup.ErrPasswordRequired):
		return http.StatusBadRequest, codeBadRequest, true
	case errors.Is(err, session.ErrNotInitialized), errors.Is(err, backup.ErrNothingToExport):
		return http.StatusConflict, codeNotInitialized, true
	case errors.Is(err, backup.ErrImportInProgress):
		return http.StatusConflict, codeInProgress, true
	case errors.Is(err, krist.ErrUnknownFormat):
		return http.StatusBadRequest, codeUnknownFormat, true
	case errors.Is(err, krist.ErrUsernameRequired):
		return http.StatusBadRequest, codeUsernameRequired, true
	case errors.Is(err, krist.ErrInvalidLabel):
		return http.StatusBadRequest, codeBadRequest, true
	case errors.Is(err, vault.ErrAdvancedFormat):
		return http.StatusBadRequest, codeAdvancedFormat, true
	case errors.Is(err, vault.ErrLimitReached):
		return http.StatusConflict, codeLimitReached, true
	case errors.Is(err, vault.ErrWalletExists):
		return http.StatusConflict, codeWalletExists, true
	}
	return 0, "", false
}

// writeErr writes err with its mapped status; unknown errors are logged and hidden
func writeErr(w http.ResponseWriter, err error) {
	status, code, ok := statusOf(err)
	if !ok {
		log.Error().Err(err).Msg("Request failed")
		writeError(w, http.StatusInternalServerError, codeInternal, errors.New("internal error"))
		return
	}
	writeError(w, status, code, err)
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, err)
		return false
	}
	return true
}
