// Package memory holds the process-lifetime stores.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/bankist/internal/domain"
)

// AccountRepository keeps accounts in insertion order.
type AccountRepository struct {
	mu       sync.RWMutex
	accounts []*domain.Account
}

// NewAccountRepository creates a repository holding copies of accounts.
func NewAccountRepository(accounts []*domain.Account) *AccountRepository {
	stored := make([]*domain.Account, len(accounts))
	for i, acc := range accounts {
		stored[i] = acc.Clone()
	}
	return &AccountRepository{accounts: stored}
}

// List returns copies of all accounts in store order.
func (r *AccountRepository) List(ctx context.Context) ([]*domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*domain.Account, len(r.accounts))
	for i, acc := range r.accounts {
		out[i] = acc.Clone()
	}
	return out, nil
}

// Count returns the number of stored accounts.
func (r *AccountRepository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.accounts)
}

// GetByID retrieves an account by ID.
func (r *AccountRepository) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if acc := r.find(id); acc != nil {
		return acc.Clone(), nil
	}
	return nil, domain.ErrAccountNotFound
}

// GetByUsername retrieves the first account with the username.
func (r *AccountRepository) GetByUsername(ctx context.Context, username string) (*domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, acc := range r.accounts {
		if acc.Username == username {
			return acc.Clone(), nil
		}
	}
	return nil, domain.ErrAccountNotFound
}

// AppendMovement appends a movement, and its date when tracked, in one step.
func (r *AccountRepository) AppendMovement(ctx context.Context, id string, amount decimal.Decimal, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	acc := r.find(id)
	if acc == nil {
		return domain.ErrAccountNotFound
	}
	acc.AppendMovement(amount, at)
	return nil
}

// Delete removes the account with the given ID.
func (r *AccountRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, acc := range r.accounts {
		if acc.ID == id {
			r.accounts = append(r.accounts[:i], r.accounts[i+1:]...)
			return nil
		}
	}
	return domain.ErrAccountNotFound
}

func (r *AccountRepository) find(id string) *domain.Account {
	for _, acc := range r.accounts {
		if acc.ID == id {
			return acc
		}
	}
	return nil
}
