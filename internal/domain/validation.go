package domain

import (
	"fmt"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Validation constants
const (
	MaxOwnerLength = 255
	MaxPin         = 9999

	// MaxAmountExponent and MaxAmountBits bound requested amounts so that
	// comparisons never rescale to enormous integers.
	MaxAmountExponent = 15
	MaxAmountBits     = 100
)

// loanDepositRatio is the share of the requested loan some movement must reach.
var loanDepositRatio = decimal.RequireFromString("0.1")

// ValidateTransfer checks a transfer from sender to receiver. receiver is nil
// when the requested username does not resolve.
func ValidateTransfer(sender, receiver *Account, amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return ErrInvalidAmount
	}
	if err := ValidateAmountPrecision(amount, sender.Currency); err != nil {
		return err
	}
	if receiver == nil {
		return ErrInvalidReceiver
	}
	if receiver.ID == sender.ID || receiver.Username == sender.Username {
		return ErrSameAccount
	}
	if sender.Balance().LessThan(amount) {
		return ErrInsufficientFunds
	}
	return nil
}

// ValidateAmountPrecision rejects amounts with more fractional digits than the
// currency's minor unit, or outside the size bounds. It inspects
// only the representation, so it is safe to call before any arithmetic.
func ValidateAmountPrecision(amount decimal.Decimal, currency string) error {
	exp := amount.Exponent()
	if exp < -int32(currencyFraction(currency)) {
		return fmt.Errorf("%w: too many decimal places for %s", ErrInvalidAmount, currency)
	}
	if exp > MaxAmountExponent || amount.Coefficient().BitLen() > MaxAmountBits {
		return fmt.Errorf("%w: amount too large", ErrInvalidAmount)
	}
	return nil
}

func currencyFraction(code string) int {
	if c := money.GetCurrency(strings.ToUpper(code)); c != nil {
		return c.Fraction
	}
	return 2
}

// FloorLoanAmount truncates a requested loan to whole currency units. Check
// the amount with ValidateAmountPrecision first.
func FloorLoanAmount(amount decimal.Decimal) decimal.Decimal {
	return amount.Floor()
}

// ValidateLoan checks that some movement is at least 10% of the amount.
// amount is expected to be already floored.
func ValidateLoan(account *Account, amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return ErrInvalidAmount
	}
	if err := ValidateAmountPrecision(amount, account.Currency); err != nil {
		return err
	}
	threshold := amount.Mul(loanDepositRatio)
	for _, m := range account.Movements {
		if m.GreaterThanOrEqual(threshold) {
			return nil
		}
	}
	return ErrLoanNotEligible
}

// ValidateClose checks the confirmation credentials against the current account.
func ValidateClose(current *Account, username string, pin int) error {
	if current.Username != username || current.Pin != pin {
		return ErrInvalidCredentials
	}
	return nil
}

// ValidateOwner validates the owner display name.
func ValidateOwner(owner string) error {
	owner = strings.TrimSpace(owner)
	if owner == "" {
		return fmt.Errorf("%w: owner cannot be empty", ErrInvalidOwner)
	}
	if len(owner) > MaxOwnerLength {
		return fmt.Errorf("%w: owner exceeds %d characters", ErrInvalidOwner, MaxOwnerLength)
	}
	return nil
}

// ValidateCurrency validates currency code
func ValidateCurrency(currency string) error {
	currency = strings.ToUpper(strings.TrimSpace(currency))

	if currency == "" || money.GetCurrency(currency) == nil {
		return fmt.Errorf("%w: %s is not a supported ISO 4217 currency code", ErrInvalidCurrency, currency)
	}

	return nil
}

// ValidateInterestRate rejects negative rates.
func ValidateInterestRate(rate decimal.Decimal) error {
	if rate.IsNegative() {
		return fmt.Errorf("%w: %s", ErrInvalidInterestRate, rate)
	}
	return nil
}

// ValidateAccount checks a seed account before it enters the store.
func ValidateAccount(a *Account) error {
	if err := ValidateOwner(a.Owner); err != nil {
		return err
	}
	if a.Pin < 0 || a.Pin > MaxPin {
		return fmt.Errorf("%w: must be between 0 and %d", ErrInvalidPin, MaxPin)
	}
	if err := ValidateCurrency(a.Currency); err != nil {
		return err
	}
	if err := ValidateInterestRate(a.InterestRate); err != nil {
		return err
	}
	if a.TracksDates() && len(a.MovementDates) != len(a.Movements) {
		return fmt.Errorf("%w: %d movements but %d dates", ErrDatesMismatch, len(a.Movements), len(a.MovementDates))
	}
	return nil
}
