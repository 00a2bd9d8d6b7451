package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestValidateTransfer(t *testing.T) {
	sender := &Account{ID: "a", Username: "rp", Movements: decs(200, 450, -400)}
	receiver := &Account{ID: "b", Username: "gs"}
	twin := &Account{ID: "c", Username: "rp"}

	tests := []struct {
		name     string
		receiver *Account
		amount   decimal.Decimal
		want     error
		outcome  Outcome
	}{
		{"accepted", receiver, decimal.NewFromInt(100), nil, Accepted},
		{"exact balance", receiver, decimal.NewFromInt(250), nil, Accepted},
		{"zero amount", receiver, decimal.Zero, ErrInvalidAmount, RejectedBadAmount},
		{"negative amount", receiver, decimal.NewFromInt(-5), ErrInvalidAmount, RejectedBadAmount},
		{"unknown receiver", nil, decimal.NewFromInt(10), ErrInvalidReceiver, RejectedInvalidReceiver},
		{"self by id", sender, decimal.NewFromInt(10), ErrSameAccount, RejectedSelfTransfer},
		{"self by username", twin, decimal.NewFromInt(10), ErrSameAccount, RejectedSelfTransfer},
		{"insufficient funds", receiver, decimal.NewFromInt(251), ErrInsufficientFunds, RejectedInsufficientFunds},
		{"tiny exponent", receiver, decimal.RequireFromString("1e-50000000"), ErrInvalidAmount, RejectedBadAmount},
		{"finer than cents", receiver, decimal.RequireFromString("10.001"), ErrInvalidAmount, RejectedBadAmount},
		{"huge exponent", receiver, decimal.RequireFromString("1e50000000"), ErrInvalidAmount, RejectedBadAmount},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateTransfer(sender, tt.receiver, tt.amount)
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
			if got := OutcomeOf(err); got != tt.outcome {
				t.Fatalf("expected outcome %s, got %s", tt.outcome, got)
			}
		})
	}
}

func TestValidateLoan(t *testing.T) {
	acc := &Account{Movements: decs(200, -400, 3000)}

	tests := []struct {
		name   string
		amount decimal.Decimal
		want   error
	}{
		{"deposit exactly ten percent", decimal.NewFromInt(30000), nil},
		{"deposit above ten percent", decimal.NewFromInt(1000), nil},
		{"no deposit large enough", decimal.NewFromInt(30001), ErrLoanNotEligible},
		{"zero", decimal.Zero, ErrInvalidAmount},
		{"negative", decimal.NewFromInt(-100), ErrInvalidAmount},
		{"tiny exponent", decimal.RequireFromString("1e-50000000"), ErrInvalidAmount},
		{"huge exponent", decimal.RequireFromString("1e50000000"), ErrInvalidAmount},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := ValidateLoan(acc, tt.amount); !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestFloorLoanAmount(t *testing.T) {
	if got := FloorLoanAmount(decimal.RequireFromString("1000.99")); !got.Equal(decimal.NewFromInt(1000)) {
		t.Fatalf("expected 1000, got %s", got)
	}
	if got := FloorLoanAmount(decimal.RequireFromString("0.5")); !got.IsZero() {
		t.Fatalf("expected 0, got %s", got)
	}
}

func TestValidateClose(t *testing.T) {
	acc := &Account{Username: "js", Pin: 1111}

	if err := ValidateClose(acc, "js", 1111); err != nil {
		t.Fatalf("expected match, got %v", err)
	}
	if err := ValidateClose(acc, "js", 2222); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for wrong pin, got %v", err)
	}
	if err := ValidateClose(acc, "jd", 1111); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for wrong username, got %v", err)
	}
}

func TestValidateAccount(t *testing.T) {
	valid := func() *Account {
		return &Account{
			Owner:        "Gwen Stacy",
			Pin:          4444,
			Currency:     "USD",
			InterestRate: decimal.NewFromInt(1),
			Movements:    decs(430),
		}
	}

	if err := ValidateAccount(valid()); err != nil {
		t.Fatalf("expected valid account, got %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*Account)
		want   error
	}{
		{"empty owner", func(a *Account) { a.Owner = "  " }, ErrInvalidOwner},
		{"pin out of range", func(a *Account) { a.Pin = 10000 }, ErrInvalidPin},
		{"unknown currency", func(a *Account) { a.Currency = "XYZ" }, ErrInvalidCurrency},
		{"negative rate", func(a *Account) { a.InterestRate = decimal.NewFromInt(-1) }, ErrInvalidInterestRate},
		{"dates out of step", func(a *Account) { a.MovementDates = []time.Time{} }, ErrDatesMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			acc := valid()
			tt.mutate(acc)
			if err := ValidateAccount(acc); !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestValidateCurrency(t *testing.T) {
	for _, code := range []string{"eur", "USD", "JPY", "ISK"} {
		if err := ValidateCurrency(code); err != nil {
			t.Fatalf("expected %s to be accepted, got %v", code, err)
		}
	}
	for _, code := range []string{"XYZ", ""} {
		if err := ValidateCurrency(code); !errors.Is(err, ErrInvalidCurrency) {
			t.Fatalf("expected ErrInvalidCurrency for %q, got %v", code, err)
		}
	}
}

func TestValidateAmountPrecision(t *testing.T) {
	tests := []struct {
		name     string
		amount   string
		currency string
		valid    bool
	}{
		{"cents in USD", "10.25", "USD", true},
		{"whole yen", "1000", "JPY", true},
		{"fractional yen", "100.5", "JPY", false},
		{"third decimal in EUR", "0.001", "EUR", false},
		{"unknown currency uses two places", "1.23", "", true},
		{"exponent form", "5e3", "USD", true},
		{"exponent too large", "1e16", "USD", false},
		{"too many digits", "1234567890123456789012345678901234", "USD", false},
		{"tiny exponent", "1e-50000000", "USD", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateAmountPrecision(decimal.RequireFromString(tt.amount), tt.currency)
			if tt.valid && err != nil {
				t.Fatalf("expected %s %s to pass, got %v", tt.amount, tt.currency, err)
			}
			if !tt.valid && !errors.Is(err, ErrInvalidAmount) {
				t.Fatalf("expected ErrInvalidAmount for %s %s, got %v", tt.amount, tt.currency, err)
			}
		})
	}
}

func TestOutcomeOf_Unknown(t *testing.T) {
	if got := OutcomeOf(errors.New("boom")); got != Failed {
		t.Fatalf("expected failed, got %s", got)
	}
	if got := OutcomeOf(ErrNoSession); got != RejectedNoSession {
		t.Fatalf("expected no-session outcome, got %s", got)
	}
}
