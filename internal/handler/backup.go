package handler

import (
	"net/http"

	"github.com/AlexZinkM/kristvault/internal/backup"
	"github.com/AlexZinkM/kristvault/internal/model"
	"github.com/AlexZinkM/kristvault/krist"
)

// BackupHandler serves backup import and export
type BackupHandler struct {
	svc    *backup.Service
	master krist.Credential
}

// NewBackupHandler creates a new BackupHandler
func NewBackupHandler(svc *backup.Service, master krist.Credential) *BackupHandler {
	return &BackupHandler{svc: svc, master: master}
}

// Import handles POST /backup/import
// @Summary      Import backup
// @Description  Imports the wallets of a legacy or current backup. Per-wallet problems are reported, not fatal.
// @Tags         backup
// @Accept       json
// @Produce      json
// @Param        request  body      model.ImportRequest  true  "Backup and its master password"
// @Success      200      {object}  model.ImportResponse
// @Failure      400      {object}  model.ErrorResponse
// @Failure      401      {object}  model.ErrorResponse
// @Failure      409      {object}  model.ErrorResponse
// @Failure      423      {object}  model.ErrorResponse
// @Router       /backup/import [post]
func (h *BackupHandler) Import(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed. Should be POST", http.StatusMethodNotAllowed)
		return
	}

	var req model.ImportRequest
	if !decodeBody(w, r, &req) {
		return
	}

	report, err := h.svc.Import(r.Context(), h.master, req.Backup, req.Password, req.NoOverwrite, nil)
	if err != nil {
		writeErr(w, err)
		return
	}

	writeJSON(w, http.StatusOK, report.Response())
}

// Export handles GET /backup/export
// @Summary      Export backup
// @Description  Exports every saved wallet as a current backup protected by the master password
// @Tags         backup
// @Produce      json
// @Success      200  {object}  model.ExportResponse
// @Failure      409  {object}  model.ErrorResponse
// @Router       /backup/export [get]
func (h *BackupHandler) Export(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed. Should be GET", http.StatusMethodNotAllowed)
		return
	}

	raw, err := h.svc.Export(r.Context())
	if err != nil {
		writeErr(w, err)
		return
	}

	writeJSON(w, http.StatusOK, model.ExportResponse{Backup: raw})
}
