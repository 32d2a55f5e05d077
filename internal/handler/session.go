package handler

import (
	"net/http"

	"github.com/AlexZinkM/kristvault/internal/model"
	"github.com/AlexZinkM/kristvault/internal/session"
	"github.com/AlexZinkM/kristvault/internal/store"
)

// SessionHandler locks and unlocks the master password session
type SessionHandler struct {
	wallets *store.WalletStore
	session *session.Session
}

// NewSessionHandler creates a new SessionHandler
func NewSessionHandler(ws *store.WalletStore, s *session.Session) *SessionHandler {
	return &SessionHandler{wallets: ws, session: s}
}

// Unlock handles POST /session/unlock
// @Summary      Unlock session
// @Description  Unlocks the master password session after a lock or idle timeout
// @Tags         session
// @Accept       json
// @Produce      json
// @Param        request  body      model.UnlockRequest  true  "Master password"
// @Success      200      {object}  model.StatusResponse
// @Failure      401      {object}  model.ErrorResponse
// @Router       /session/unlock [post]
func (h *SessionHandler) Unlock(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed. Should be POST", http.StatusMethodNotAllowed)
		return
	}

	var req model.UnlockRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if err := h.session.Renew(r.Context(), h.wallets, req.Password); err != nil {
		writeErr(w, err)
		return
	}

	writeJSON(w, http.StatusOK, model.StatusResponse{Success: true, Message: "Session unlocked"})
}

// Lock handles POST /session/lock
// @Summary      Lock session
// @Description  Wipes the master password from memory
// @Tags         session
// @Produce      json
// @Success      200  {object}  model.StatusResponse
// @Router       /session/lock [post]
func (h *SessionHandler) Lock(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed. Should be POST", http.StatusMethodNotAllowed)
		return
	}

	h.session.Lock()
	writeJSON(w, http.StatusOK, model.StatusResponse{Success: true, Message: "Session locked"})
}
