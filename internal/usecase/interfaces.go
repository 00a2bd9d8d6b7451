package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/bankist/internal/domain"
)

// AccountRepository defines data access for accounts.
// Returned accounts are copies; mutate through AppendMovement.
type AccountRepository interface {
	List(ctx context.Context) ([]*domain.Account, error)
	GetByID(ctx context.Context, id string) (*domain.Account, error)
	// GetByUsername returns the first account with that username.
	GetByUsername(ctx context.Context, username string) (*domain.Account, error)
	AppendMovement(ctx context.Context, id string, amount decimal.Decimal, at time.Time) error
	Delete(ctx context.Context, id string) error
}

// OutboxRepository buffers domain events until the publisher drains them.
type OutboxRepository interface {
	Create(ctx context.Context, event *domain.Event) error
	GetUnpublished(ctx context.Context, limit int) ([]*domain.Event, error)
	MarkPublished(ctx context.Context, id string, publishedAt time.Time) error
}

// Task is a scheduled callback that can be cancelled.
type Task interface {
	// Cancel stops the task. It reports false if the task already ran.
	Cancel() bool
}

// Scheduler runs callbacks after a delay.
type Scheduler interface {
	AfterFunc(d time.Duration, fn func()) Task
	Now() time.Time
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// IdempotencyStore handles idempotency key storage.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
	// Release drops a claimed key so the request may be retried.
	Release(ctx context.Context, key string) error
}
