package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/iho/bankist/internal/domain"
)

func TestOutboxRepository_FIFO(t *testing.T) {
	repo := NewOutboxRepository(0)
	ctx := context.Background()

	for _, id := range []string{"e1", "e2", "e3"} {
		if err := repo.Create(ctx, &domain.Event{ID: id}); err != nil {
			t.Fatalf("create failed: %v", err)
		}
	}

	batch, err := repo.GetUnpublished(ctx, 2)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if len(batch) != 2 || batch[0].ID != "e1" || batch[1].ID != "e2" {
		t.Fatalf("unexpected batch: %+v", batch)
	}

	if err := repo.MarkPublished(ctx, "e1", time.Now()); err != nil {
		t.Fatalf("mark failed: %v", err)
	}

	rest, _ := repo.GetUnpublished(ctx, 10)
	if len(rest) != 2 || rest[0].ID != "e2" {
		t.Fatalf("unexpected remaining events: %+v", rest)
	}
}

func TestOutboxRepository_Capacity(t *testing.T) {
	repo := NewOutboxRepository(1)
	ctx := context.Background()

	if err := repo.Create(ctx, &domain.Event{ID: "e1"}); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if err := repo.Create(ctx, &domain.Event{ID: "e2"}); !errors.Is(err, ErrOutboxFull) {
		t.Fatalf("expected ErrOutboxFull, got %v", err)
	}
	if repo.Len() != 1 {
		t.Fatalf("expected 1 queued event, got %d", repo.Len())
	}
}
