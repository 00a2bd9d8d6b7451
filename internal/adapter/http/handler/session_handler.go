package handler

import (
	"net/http"

	"github.com/iho/bankist/internal/adapter/http/dto"
)

// SessionHandler handles login, the current view and sorting.
type SessionHandler struct {
	bank BankService
}

// NewSessionHandler creates a new SessionHandler.
func NewSessionHandler(bank BankService) *SessionHandler {
	return &SessionHandler{bank: bank}
}

// Login starts a session for the given credentials.
func (h *SessionHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	view, err := h.bank.Login(r.Context(), req.ToUseCaseInput())
	if err != nil {
		writeActionError(w, "login failed", err, view)
		return
	}

	writeJSON(w, http.StatusOK, dto.ViewFromPresenter(view))
}

// View returns the current view. A logged-out view is not an error.
func (h *SessionHandler) View(w http.ResponseWriter, r *http.Request) {
	view, err := h.bank.View(r.Context())
	if err != nil {
		writeActionError(w, "failed to render view", err, view)
		return
	}

	writeJSON(w, http.StatusOK, dto.ViewFromPresenter(view))
}

// Sort toggles the movement order.
func (h *SessionHandler) Sort(w http.ResponseWriter, r *http.Request) {
	view, err := h.bank.ToggleSort(r.Context())
	if err != nil {
		writeActionError(w, "sort failed", err, view)
		return
	}

	writeJSON(w, http.StatusOK, dto.ViewFromPresenter(view))
}
