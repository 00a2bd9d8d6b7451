package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/rs/zerolog"

	"github.com/iho/bankist/internal/infrastructure/config"
	"github.com/iho/bankist/internal/infrastructure/eventpublisher"
	"github.com/iho/bankist/internal/usecase/mocks"
)

func TestLoadAccountsDefaultsToEmbeddedSeed(t *testing.T) {
	accounts, err := loadAccounts(&config.Config{}, mocks.NewMockIDGenerator())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(accounts) != 6 {
		t.Fatalf("expected 6 seed accounts, got %d", len(accounts))
	}
}

func TestLoadAccountsFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "accounts.yaml")
	content := "accounts:\n  - {owner: Mary Jane, pin: 1234, interest_rate: \"1\", currency: USD, locale: en-US, movements: [\"5\"]}\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	accounts, err := loadAccounts(&config.Config{SeedFile: path}, mocks.NewMockIDGenerator())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(accounts) != 1 || accounts[0].Username != "mj" {
		t.Fatalf("unexpected accounts: %+v", accounts)
	}
}

func TestNewPublisherFallsBackToLog(t *testing.T) {
	p, closeFn, err := newPublisher(context.Background(), &config.Config{}, zerolog.Nop(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer closeFn()

	if _, ok := p.(*eventpublisher.LogPublisher); !ok {
		t.Fatalf("expected log publisher, got %T", p)
	}
}

func TestConnectRedis(t *testing.T) {
	client, err := connectRedis(context.Background(), &config.Config{}, nil)
	if err != nil || client != nil {
		t.Fatalf("expected redis to be disabled, got %v %v", client, err)
	}

	mr := miniredis.RunT(t)
	client, err = connectRedis(context.Background(), &config.Config{RedisURL: "redis://" + mr.Addr()}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer client.Close()
}
