package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/shopspring/decimal"

	"github.com/iho/bankist/internal/domain"
)

func testAccounts() []*domain.Account {
	at := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return []*domain.Account{
		{ID: "a", Username: "rp", Movements: []decimal.Decimal{decimal.NewFromInt(100)}},
		{ID: "b", Username: "gs"},
		{ID: "c", Username: "rp", Movements: []decimal.Decimal{decimal.NewFromInt(5)}, MovementDates: []time.Time{at}},
	}
}

func TestAccountRepository_GetByUsernameReturnsFirst(t *testing.T) {
	repo := NewAccountRepository(testAccounts())

	acc, err := repo.GetByUsername(context.Background(), "rp")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if acc.ID != "a" {
		t.Fatalf("expected first account a, got %s", acc.ID)
	}

	if _, err := repo.GetByUsername(context.Background(), "zz"); !errors.Is(err, domain.ErrAccountNotFound) {
		t.Fatalf("expected ErrAccountNotFound, got %v", err)
	}
}

func TestAccountRepository_ReadsAreCopies(t *testing.T) {
	repo := NewAccountRepository(testAccounts())
	ctx := context.Background()

	acc, _ := repo.GetByID(ctx, "a")
	acc.AppendMovement(decimal.NewFromInt(1), time.Now())

	fresh, _ := repo.GetByID(ctx, "a")
	if len(fresh.Movements) != 1 {
		t.Fatalf("expected stored account untouched, got %d movements", len(fresh.Movements))
	}
}

func TestAccountRepository_AppendMovement(t *testing.T) {
	repo := NewAccountRepository(testAccounts())
	ctx := context.Background()
	at := time.Date(2025, 2, 12, 0, 0, 0, 0, time.UTC)

	if err := repo.AppendMovement(ctx, "c", decimal.NewFromInt(-5), at); err != nil {
		t.Fatalf("append failed: %v", err)
	}

	acc, _ := repo.GetByID(ctx, "c")
	if len(acc.Movements) != 2 || len(acc.MovementDates) != 2 {
		t.Fatalf("expected co-indexed append, got %d movements and %d dates", len(acc.Movements), len(acc.MovementDates))
	}
	if !acc.Balance().IsZero() {
		t.Fatalf("expected zero balance, got %s", acc.Balance())
	}

	if err := repo.AppendMovement(ctx, "missing", decimal.NewFromInt(1), at); !errors.Is(err, domain.ErrAccountNotFound) {
		t.Fatalf("expected ErrAccountNotFound, got %v", err)
	}
}

func TestAccountRepository_Delete(t *testing.T) {
	repo := NewAccountRepository(testAccounts())
	ctx := context.Background()

	if err := repo.Delete(ctx, "a"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	all, _ := repo.List(ctx)
	if len(all) != 2 || all[0].ID != "b" || all[1].ID != "c" {
		t.Fatalf("unexpected order after delete: %+v", all)
	}
	if repo.Count() != 2 {
		t.Fatalf("expected count 2, got %d", repo.Count())
	}

	acc, err := repo.GetByUsername(ctx, "rp")
	if err != nil || acc.ID != "c" {
		t.Fatalf("expected remaining rp to be c, got %v %v", acc, err)
	}

	if err := repo.Delete(ctx, "a"); !errors.Is(err, domain.ErrAccountNotFound) {
		t.Fatalf("expected ErrAccountNotFound on second delete, got %v", err)
	}
}

func TestULIDGenerator(t *testing.T) {
	g := NewULIDGenerator()

	a, b := g.Generate(), g.Generate()
	if a == b {
		t.Fatal("expected unique IDs")
	}
	if _, err := ulid.Parse(a); err != nil {
		t.Fatalf("expected valid ULID, got %v", err)
	}
}
