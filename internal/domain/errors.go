package domain

import "errors"

var (
	// Account errors
	ErrAccountNotFound     = errors.New("account not found")
	ErrInvalidCredentials  = errors.New("wrong pin")
	ErrInvalidPin          = errors.New("invalid pin")
	ErrInvalidInterestRate = errors.New("interest rate must not be negative")
	ErrInvalidOwner        = errors.New("invalid owner name")
	ErrInvalidCurrency     = errors.New("invalid currency code")
	ErrDatesMismatch       = errors.New("movement dates out of step with movements")

	// Movement errors
	ErrInvalidAmount     = errors.New("amount must be positive")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrSameAccount       = errors.New("cannot transfer to same account")
	ErrInvalidReceiver   = errors.New("receiver not found")
	ErrLoanNotEligible   = errors.New("no deposit of at least 10% of the requested loan")

	// Session errors
	ErrNoSession = errors.New("no active session")
)
