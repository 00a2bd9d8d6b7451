// Package seed loads the startup account set from YAML.
package seed

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/iho/bankist/internal/domain"
	"github.com/iho/bankist/internal/usecase"
)

//go:embed accounts.yaml
var defaultAccounts []byte

type file struct {
	Accounts []record `yaml:"accounts"`
}

type record struct {
	Owner         string   `yaml:"owner"`
	Pin           int      `yaml:"pin"`
	InterestRate  string   `yaml:"interest_rate"`
	Currency      string   `yaml:"currency"`
	Locale        string   `yaml:"locale"`
	Movements     []string `yaml:"movements"`
	MovementDates []string `yaml:"movement_dates"`
}

// Default returns the embedded account set.
func Default(ids usecase.IDGenerator) ([]*domain.Account, error) {
	return Load(bytes.NewReader(defaultAccounts), ids)
}

// LoadFile reads accounts from path.
func LoadFile(path string, ids usecase.IDGenerator) ([]*domain.Account, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open seed file: %w", err)
	}
	defer f.Close()

	return Load(f, ids)
}

// Load decodes and validates accounts, assigning each a fresh ID.
func Load(r io.Reader, ids usecase.IDGenerator) ([]*domain.Account, error) {
	var f file
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("decode seed: %w", err)
	}

	accounts := make([]*domain.Account, 0, len(f.Accounts))
	for i, rec := range f.Accounts {
		acc, err := rec.toAccount(ids.Generate())
		if err != nil {
			return nil, fmt.Errorf("seed account %d (%s): %w", i, rec.Owner, err)
		}
		accounts = append(accounts, acc)
	}

	return accounts, nil
}

func (r record) toAccount(id string) (*domain.Account, error) {
	rate, err := decimal.NewFromString(r.InterestRate)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidInterestRate, r.InterestRate)
	}

	movements := make([]decimal.Decimal, len(r.Movements))
	for i, m := range r.Movements {
		if movements[i], err = decimal.NewFromString(m); err != nil {
			return nil, fmt.Errorf("movement %d: %w", i, err)
		}
	}

	var dates []time.Time
	if r.MovementDates != nil {
		dates = make([]time.Time, len(r.MovementDates))
		for i, d := range r.MovementDates {
			if dates[i], err = time.Parse(time.RFC3339Nano, d); err != nil {
				return nil, fmt.Errorf("movement date %d: %w", i, err)
			}
		}
	}

	acc := &domain.Account{
		ID:            id,
		Owner:         r.Owner,
		Username:      domain.DeriveUsername(r.Owner),
		Pin:           r.Pin,
		Movements:     movements,
		InterestRate:  rate,
		Currency:      r.Currency,
		Locale:        r.Locale,
		MovementDates: dates,
	}

	if err := domain.ValidateAccount(acc); err != nil {
		return nil, err
	}

	return acc, nil
}
