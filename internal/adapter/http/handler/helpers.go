package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/iho/bankist/internal/adapter/http/dto"
	"github.com/iho/bankist/internal/domain"
	"github.com/iho/bankist/internal/presenter"
	"github.com/iho/bankist/internal/usecase"
)

// BankService defines the behavior needed by the handlers.
type BankService interface {
	Login(ctx context.Context, input usecase.LoginInput) (presenter.ViewModel, error)
	View(ctx context.Context) (presenter.ViewModel, error)
	ToggleSort(ctx context.Context) (presenter.ViewModel, error)
	Transfer(ctx context.Context, input usecase.TransferInput) (presenter.ViewModel, error)
	RequestLoan(ctx context.Context, input usecase.LoanInput) (usecase.LoanResult, error)
	CloseAccount(ctx context.Context, input usecase.CloseAccountInput) (presenter.ViewModel, error)
	ListAccounts(ctx context.Context) ([]*domain.Account, error)
}

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeError writes an error response.
func writeError(w http.ResponseWriter, status int, message, details string) {
	writeJSON(w, status, dto.ErrorResponse{
		Error:   message,
		Message: details,
	})
}

// writeActionError writes a rejected action with its outcome and the view left behind.
func writeActionError(w http.ResponseWriter, message string, err error, view presenter.ViewModel) {
	writeJSON(w, mapDomainError(err), dto.ErrorResponse{
		Error:   message,
		Message: err.Error(),
		Outcome: string(domain.OutcomeOf(err)),
		View:    dto.ViewFromPresenter(view),
	})
}

// decodeJSON decodes the request body, writing a 400 on failure.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return false
	}
	return true
}

// mapDomainError maps domain errors to HTTP status codes.
func mapDomainError(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidAmount):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrNoSession):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrInvalidReceiver):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrAccountNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrSameAccount):
		return http.StatusConflict
	case errors.Is(err, domain.ErrInsufficientFunds):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrLoanNotEligible):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
