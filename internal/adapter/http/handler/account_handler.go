package handler

import (
	"net/http"

	"github.com/iho/bankist/internal/adapter/http/dto"
)

// AccountHandler handles account listing and closure.
type AccountHandler struct {
	bank BankService
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(bank BankService) *AccountHandler {
	return &AccountHandler{bank: bank}
}

// List lists accounts in store order.
func (h *AccountHandler) List(w http.ResponseWriter, r *http.Request) {
	accounts, err := h.bank.ListAccounts(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list accounts", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.AccountsFromDomain(accounts))
}

// Close removes the logged-in account and ends the session.
func (h *AccountHandler) Close(w http.ResponseWriter, r *http.Request) {
	var req dto.CloseAccountRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	view, err := h.bank.CloseAccount(r.Context(), req.ToUseCaseInput())
	if err != nil {
		writeActionError(w, "close rejected", err, view)
		return
	}

	writeJSON(w, http.StatusOK, dto.ViewFromPresenter(view))
}
