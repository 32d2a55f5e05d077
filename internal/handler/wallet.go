package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/AlexZinkM/kristvault/internal/model"
	"github.com/AlexZinkM/kristvault/internal/store"
	"github.com/AlexZinkM/kristvault/internal/vault"
	"github.com/AlexZinkM/kristvault/krist"
)

// WalletHandler serves wallet endpoints
type WalletHandler struct {
	wallets *store.WalletStore
	master  krist.Credential
	limits  vault.Limits
}

// NewWalletHandler creates a new WalletHandler
func NewWalletHandler(ws *store.WalletStore, master krist.Credential, limits vault.Limits) *WalletHandler {
	return &WalletHandler{wallets: ws, master: master, limits: limits}
}

// Wallets dispatches /wallets by method
func (h *WalletHandler) Wallets(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.List(w, r)
	case http.MethodPost:
		h.Add(w, r)
	default:
		http.Error(w, "Method not allowed. Should be GET or POST", http.StatusMethodNotAllowed)
	}
}

// Add handles POST /wallets
// @Summary      Add wallet
// @Description  Derives the wallet address and stores the wallet encrypted under the master password
// @Tags         wallets
// @Accept       json
// @Produce      json
// @Param        request  body      model.AddWalletRequest  true  "Wallet data"
// @Success      200      {object}  model.AddWalletResponse
// @Failure      400      {object}  model.ErrorResponse
// @Failure      409      {object}  model.ErrorResponse
// @Failure      423      {object}  model.ErrorResponse
// @Router       /wallets [post]
func (h *WalletHandler) Add(w http.ResponseWriter, r *http.Request) {
	if _, err := h.master.Password(); err != nil {
		writeErr(w, err)
		return
	}

	var req model.AddWalletRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Password == "" {
		writeError(w, http.StatusBadRequest, codeBadRequest, errors.New("password is required"))
		return
	}

	format, err := h.limits.ParseFormat(req.Format)
	if err != nil {
		writeErr(w, err)
		return
	}

	wallet, err := vault.AddWallet(r.Context(), h.wallets, h.master, h.limits, krist.WalletData{
		Label:    req.Label,
		Category: req.Category,
		Username: req.Username,
		Format:   format,
		DontSave: req.DontSave,
	}, req.Password)
	if err != nil {
		writeErr(w, err)
		return
	}

	writeJSON(w, http.StatusOK, model.AddWalletResponse{
		Success: true,
		Message: "Wallet added successfully",
		ID:      wallet.ID,
		Address: wallet.Address,
	})
}

// List handles GET /wallets
// @Summary      List wallets
// @Description  Lists stored wallets without their secrets, optionally with address QR codes
// @Tags         wallets
// @Produce      json
// @Param        qr   query     bool  false  "Include a base64 PNG QR code of each address"
// @Success      200  {object}  model.WalletListResponse
// @Router       /wallets [get]
func (h *WalletHandler) List(w http.ResponseWriter, r *http.Request) {
	withQR, _ := strconv.ParseBool(r.URL.Query().Get("qr"))

	wallets, err := h.wallets.Wallets(r.Context())
	if err != nil {
		writeErr(w, err)
		return
	}

	resp := model.WalletListResponse{Count: len(wallets), Wallets: make([]model.WalletResponse, 0, len(wallets))}
	for _, wallet := range wallets {
		item := model.WalletResponse{
			ID:       wallet.ID,
			Label:    wallet.Label,
			Category: wallet.Category,
			Username: wallet.Username,
			Format:   wallet.Format,
			Address:  wallet.Address,
			Balance:  wallet.Balance,
			Names:    wallet.Names,
			DontSave: wallet.DontSave,
		}
		if withQR {
			qr, err := krist.QRCode(wallet.Address)
			if err != nil {
				writeErr(w, err)
				return
			}
			item.QR = qr
		}
		resp.Wallets = append(resp.Wallets, item)
	}

	writeJSON(w, http.StatusOK, resp)
}

// DeriveAddress handles POST /address
// @Summary      Derive address
// @Description  Calculates the address of a password without storing anything
// @Tags         wallets
// @Accept       json
// @Produce      json
// @Param        request  body      model.DeriveAddressRequest  true  "Wallet credentials"
// @Success      200      {object}  model.DeriveAddressResponse
// @Failure      400      {object}  model.ErrorResponse
// @Router       /address [post]
func (h *WalletHandler) DeriveAddress(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed. Should be POST", http.StatusMethodNotAllowed)
		return
	}

	var req model.DeriveAddressRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Password == "" {
		writeError(w, http.StatusBadRequest, codeBadRequest, errors.New("password is required"))
		return
	}

	// deriving stores nothing, so every format is allowed here
	format := krist.DefaultFormat
	if req.Format != "" {
		f, err := krist.ParseKeyFormat(req.Format)
		if err != nil {
			writeErr(w, err)
			return
		}
		format = f
	}

	_, address, err := krist.CalculateAddress(format, req.Password, req.Username)
	if err != nil {
		writeErr(w, err)
		return
	}

	writeJSON(w, http.StatusOK, model.DeriveAddressResponse{Format: format.String(), Address: address})
}
