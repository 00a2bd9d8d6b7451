package domain

import (
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

// Account is a customer account with an append-only movement history.
// Positive movements are deposits, negative ones withdrawals.
type Account struct {
	ID           string
	Owner        string
	Username     string
	Pin          int
	Movements    []decimal.Decimal
	InterestRate decimal.Decimal
	Currency     string
	Locale       string

	// MovementDates is nil for accounts that do not track dates.
	// Otherwise it is co-indexed with Movements.
	MovementDates []time.Time
}

// DeriveUsername builds the login name from the owner's initials.
func DeriveUsername(owner string) string {
	var b strings.Builder
	for _, part := range strings.Fields(owner) {
		r, _ := utf8.DecodeRuneInString(part)
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}

// FirstName returns the first space-separated part of the owner name.
func (a *Account) FirstName() string {
	parts := strings.Fields(a.Owner)
	if len(parts) == 0 {
		return ""
	}
	return parts[0]
}

// TracksDates reports whether movements carry timestamps.
func (a *Account) TracksDates() bool {
	return a.MovementDates != nil
}

// AppendMovement records a movement and, when dates are tracked, its timestamp.
func (a *Account) AppendMovement(amount decimal.Decimal, at time.Time) {
	a.Movements = append(a.Movements, amount)
	if a.TracksDates() {
		a.MovementDates = append(a.MovementDates, at)
	}
}

// Balance is recomputed from the movements on every call.
func (a *Account) Balance() decimal.Decimal {
	return Balance(a.Movements)
}

// Summary computes the derived figures for this account.
func (a *Account) Summary() Summary {
	return Summarize(a.Movements, a.InterestRate)
}

// Clone returns a deep copy so callers can read outside the store lock.
func (a *Account) Clone() *Account {
	c := *a
	c.Movements = append([]decimal.Decimal(nil), a.Movements...)
	if a.MovementDates != nil {
		c.MovementDates = append(make([]time.Time, 0, len(a.MovementDates)), a.MovementDates...)
	}
	return &c
}
