package dto

import (
	"github.com/shopspring/decimal"

	"github.com/iho/bankist/internal/usecase"
)

// LoginRequest represents a login attempt.
type LoginRequest struct {
	Username string `json:"username"`
	Pin      int    `json:"pin"`
}

// ToUseCaseInput converts to use case input.
func (r *LoginRequest) ToUseCaseInput() usecase.LoginInput {
	return usecase.LoginInput{Username: r.Username, Pin: r.Pin}
}

// TransferRequest represents a transfer from the logged-in account.
type TransferRequest struct {
	To     string          `json:"to"`
	Amount decimal.Decimal `json:"amount"`
}

// ToUseCaseInput converts to use case input.
func (r *TransferRequest) ToUseCaseInput() usecase.TransferInput {
	return usecase.TransferInput{To: r.To, Amount: r.Amount}
}

// LoanRequest represents a loan request.
type LoanRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

// ToUseCaseInput converts to use case input.
func (r *LoanRequest) ToUseCaseInput() usecase.LoanInput {
	return usecase.LoanInput{Amount: r.Amount}
}

// CloseAccountRequest confirms closing the logged-in account.
type CloseAccountRequest struct {
	Username string `json:"username"`
	Pin      int    `json:"pin"`
}

// ToUseCaseInput converts to use case input.
func (r *CloseAccountRequest) ToUseCaseInput() usecase.CloseAccountInput {
	return usecase.CloseAccountInput{Username: r.Username, Pin: r.Pin}
}
