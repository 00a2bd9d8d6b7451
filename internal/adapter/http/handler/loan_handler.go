package handler

import (
	"net/http"

	"github.com/iho/bankist/internal/adapter/http/dto"
)

// LoanHandler handles loan requests.
type LoanHandler struct {
	bank BankService
}

// NewLoanHandler creates a new LoanHandler.
func NewLoanHandler(bank BankService) *LoanHandler {
	return &LoanHandler{bank: bank}
}

// Create requests a loan. The credit lands after the loan delay, so the
// response is 202 Accepted.
func (h *LoanHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.LoanRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.bank.RequestLoan(r.Context(), req.ToUseCaseInput())
	if err != nil {
		writeActionError(w, "loan rejected", err, result.View)
		return
	}

	writeJSON(w, http.StatusAccepted, dto.LoanFromResult(result))
}
