package memory

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/iho/bankist/internal/domain"
)

// DefaultOutboxCapacity bounds the number of unpublished events.
const DefaultOutboxCapacity = 10000

// ErrOutboxFull is returned when the outbox is at capacity.
var ErrOutboxFull = errors.New("outbox is full")

// OutboxRepository buffers events in creation order until they are published.
type OutboxRepository struct {
	mu       sync.Mutex
	events   []*domain.Event
	capacity int
}

// NewOutboxRepository creates an outbox. capacity <= 0 uses the default.
func NewOutboxRepository(capacity int) *OutboxRepository {
	if capacity <= 0 {
		capacity = DefaultOutboxCapacity
	}
	return &OutboxRepository{capacity: capacity}
}

// Create queues an event.
func (r *OutboxRepository) Create(ctx context.Context, event *domain.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.events) >= r.capacity {
		return ErrOutboxFull
	}
	r.events = append(r.events, event)
	return nil
}

// GetUnpublished returns up to limit of the oldest queued events.
func (r *OutboxRepository) GetUnpublished(ctx context.Context, limit int) ([]*domain.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if limit <= 0 || limit > len(r.events) {
		limit = len(r.events)
	}
	out := make([]*domain.Event, limit)
	copy(out, r.events[:limit])
	return out, nil
}

// MarkPublished drops a delivered event from the queue.
func (r *OutboxRepository) MarkPublished(ctx context.Context, id string, publishedAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, e := range r.events {
		if e.ID == id {
			r.events = append(r.events[:i], r.events[i+1:]...)
			return nil
		}
	}
	return nil
}

// Len returns the number of queued events.
func (r *OutboxRepository) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.events)
}
