package handler

import (
	"net/http"

	"github.com/iho/bankist/internal/adapter/http/dto"
)

// TransferHandler handles transfer requests.
type TransferHandler struct {
	bank BankService
}

// NewTransferHandler creates a new TransferHandler.
func NewTransferHandler(bank BankService) *TransferHandler {
	return &TransferHandler{bank: bank}
}

// Create moves money from the logged-in account to another user.
func (h *TransferHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.TransferRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	view, err := h.bank.Transfer(r.Context(), req.ToUseCaseInput())
	if err != nil {
		writeActionError(w, "transfer rejected", err, view)
		return
	}

	writeJSON(w, http.StatusOK, dto.ViewFromPresenter(view))
}
