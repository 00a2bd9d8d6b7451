package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/iho/bankist/internal/adapter/http/dto"
	"github.com/iho/bankist/internal/adapter/http/handler"
	apimiddleware "github.com/iho/bankist/internal/adapter/http/middleware"
	"github.com/iho/bankist/internal/adapter/repository/memory"
	redisrepo "github.com/iho/bankist/internal/adapter/repository/redis"
	"github.com/iho/bankist/internal/infrastructure/metrics"
	"github.com/iho/bankist/internal/infrastructure/seed"
	"github.com/iho/bankist/internal/presenter"
	"github.com/iho/bankist/internal/usecase"
	"github.com/iho/bankist/internal/usecase/mocks"
)

type testServer struct {
	router    http.Handler
	scheduler *mocks.ManualScheduler
	outbox    *memory.OutboxRepository
}

func newTestServer(t *testing.T, opts ...func(*RouterConfig)) *testServer {
	t.Helper()

	accounts, err := seed.Default(mocks.NewMockIDGenerator())
	if err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	scheduler := mocks.NewManualScheduler(time.Date(2025, 2, 12, 12, 0, 0, 0, time.UTC))
	outbox := memory.NewOutboxRepository(0)
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)

	bank := usecase.NewBankUseCase(usecase.BankConfig{
		AccountRepo: memory.NewAccountRepository(accounts),
		OutboxRepo:  outbox,
		Scheduler:   scheduler,
		IDGen:       mocks.NewMockIDGenerator(),
		Presenter:   presenter.New(presenter.NewFormatter(time.UTC)),
		Metrics:     m,
		Logger:      zerolog.Nop(),
	})

	cfg := RouterConfig{
		SessionHandler:  handler.NewSessionHandler(bank),
		TransferHandler: handler.NewTransferHandler(bank),
		LoanHandler:     handler.NewLoanHandler(bank),
		AccountHandler:  handler.NewAccountHandler(bank),
		HealthHandler:   handler.NewHealthHandler(nil),
		Metrics:         m,
		Gatherer:        reg,
		Logger:          zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	return &testServer{router: NewRouter(cfg), scheduler: scheduler, outbox: outbox}
}

func (s *testServer) do(t *testing.T, method, path string, body any, headers ...string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode failed: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func (s *testServer) view(t *testing.T) dto.ViewResponse {
	t.Helper()
	rec := s.do(t, http.MethodGet, "/api/v1/session", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("view failed: %d %s", rec.Code, rec.Body.String())
	}
	var v dto.ViewResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode view: %v", err)
	}
	return v
}

func TestNewRouter_HealthEndpointAvailable(t *testing.T) {
	srv := newTestServer(t)

	rec := srv.do(t, http.MethodGet, "/health", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected /health to return 200, got %d", rec.Code)
	}
}

func TestNewRouter_MetricsEndpointExposesCounters(t *testing.T) {
	srv := newTestServer(t)
	srv.do(t, http.MethodGet, "/api/v1/accounts", nil)

	rec := srv.do(t, http.MethodGet, "/metrics", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected /metrics to return 200, got %d", rec.Code)
	}
	if !bytes.Contains(rec.Body.Bytes(), []byte("http_requests_total")) {
		t.Fatalf("expected request counter in metrics output")
	}
}

func TestNewRouter_RateLimiterBlocksExcessRequests(t *testing.T) {
	srv := newTestServer(t, func(cfg *RouterConfig) {
		cfg.RateLimiter = apimiddleware.NewRateLimiter(1, 1, nil)
	})

	if rec := srv.do(t, http.MethodGet, "/health", nil); rec.Code != http.StatusOK {
		t.Fatalf("expected first request to succeed, got %d", rec.Code)
	}
	if rec := srv.do(t, http.MethodGet, "/health", nil); rec.Code != http.StatusTooManyRequests {
		t.Fatalf("expected second request to be throttled, got %d", rec.Code)
	}
}

func TestNewRouter_BankingFlow(t *testing.T) {
	srv := newTestServer(t)

	if v := srv.view(t); v.LoggedIn || v.Welcome != presenter.MessageLoggedOut {
		t.Fatalf("expected logged-out view, got %+v", v)
	}

	rec := srv.do(t, http.MethodPost, "/api/v1/session/login", dto.LoginRequest{Username: "rp", Pin: 9999})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected wrong pin to be 401, got %d", rec.Code)
	}

	rec = srv.do(t, http.MethodPost, "/api/v1/session/login", dto.LoginRequest{Username: "rp", Pin: 1111})
	if rec.Code != http.StatusOK {
		t.Fatalf("login failed: %d %s", rec.Code, rec.Body.String())
	}
	v := srv.view(t)
	if v.Welcome != "Welcome back, Richard" || v.Timer != "05:00" || len(v.Movements) != 8 {
		t.Fatalf("unexpected view after login: %+v", v)
	}
	if !v.Summary.Balance.Equal(decimal.NewFromInt(3840)) {
		t.Fatalf("expected balance 3840, got %s", v.Summary.Balance)
	}

	rec = srv.do(t, http.MethodPost, "/api/v1/transfers", map[string]any{"to": "gs", "amount": "100"})
	if rec.Code != http.StatusOK {
		t.Fatalf("transfer failed: %d %s", rec.Code, rec.Body.String())
	}

	rec = srv.do(t, http.MethodPost, "/api/v1/transfers", map[string]any{"to": "rp", "amount": "1"})
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected self transfer 409, got %d", rec.Code)
	}

	rec = srv.do(t, http.MethodPost, "/api/v1/loans", map[string]any{"amount": "1000.7"})
	if rec.Code != http.StatusAccepted {
		t.Fatalf("loan failed: %d %s", rec.Code, rec.Body.String())
	}

	v = srv.view(t)
	if !v.Summary.Balance.Equal(decimal.NewFromInt(3740)) {
		t.Fatalf("expected loan not yet credited, balance %s", v.Summary.Balance)
	}

	srv.scheduler.Advance(3 * time.Second)

	v = srv.view(t)
	if !v.Summary.Balance.Equal(decimal.NewFromInt(4740)) {
		t.Fatalf("expected credited loan, balance %s", v.Summary.Balance)
	}
	if v.Movements[0].Index != 10 || !v.Movements[0].Amount.Equal(decimal.NewFromInt(1000)) {
		t.Fatalf("expected newest movement first, got %+v", v.Movements[0])
	}

	rec = srv.do(t, http.MethodPost, "/api/v1/session/sort", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("sort failed: %d", rec.Code)
	}
	if v = srv.view(t); v.Sort != "ascending" {
		t.Fatalf("expected ascending sort, got %s", v.Sort)
	}

	rec = srv.do(t, http.MethodPost, "/api/v1/accounts/close", dto.CloseAccountRequest{Username: "rp", Pin: 1111})
	if rec.Code != http.StatusOK {
		t.Fatalf("close failed: %d %s", rec.Code, rec.Body.String())
	}

	rec = srv.do(t, http.MethodGet, "/api/v1/accounts", nil)
	var accounts []dto.AccountResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &accounts); err != nil {
		t.Fatalf("decode accounts: %v", err)
	}
	if len(accounts) != 5 || accounts[0].Username != "pp" {
		t.Fatalf("expected rp removed, got %+v", accounts)
	}

	if srv.outbox.Len() == 0 {
		t.Fatal("expected domain events in the outbox")
	}
}

func TestNewRouter_SessionTimesOut(t *testing.T) {
	srv := newTestServer(t)
	srv.do(t, http.MethodPost, "/api/v1/session/login", dto.LoginRequest{Username: "gs", Pin: 4444})

	srv.scheduler.Advance(299 * time.Second)
	if v := srv.view(t); !v.LoggedIn || v.Timer != "00:01" {
		t.Fatalf("expected one second left, got %+v", v)
	}

	srv.scheduler.Advance(time.Second)
	if v := srv.view(t); v.LoggedIn {
		t.Fatal("expected session to time out")
	}

	rec := srv.do(t, http.MethodPost, "/api/v1/loans", map[string]any{"amount": "10"})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 after timeout, got %d", rec.Code)
	}
}

func TestNewRouter_IdempotentTransferWithRedis(t *testing.T) {
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	defer client.Close()

	srv := newTestServer(t, func(cfg *RouterConfig) {
		cfg.IdempotencyStore = redisrepo.NewIdempotencyStore(client, cfg.Metrics)
		cfg.IdempotencyTTL = time.Minute
	})
	srv.do(t, http.MethodPost, "/api/v1/session/login", dto.LoginRequest{Username: "rp", Pin: 1111})

	body := map[string]any{"to": "gs", "amount": "40"}
	first := srv.do(t, http.MethodPost, "/api/v1/transfers", body, apimiddleware.IdempotencyKeyHeader, "transfer-1")
	second := srv.do(t, http.MethodPost, "/api/v1/transfers", body, apimiddleware.IdempotencyKeyHeader, "transfer-1")

	if first.Code != http.StatusOK || second.Code != http.StatusOK {
		t.Fatalf("expected both to succeed, got %d and %d", first.Code, second.Code)
	}
	if second.Header().Get("X-Idempotency-Replay") != "true" {
		t.Fatal("expected second response to be a replay")
	}
	if v := srv.view(t); !v.Summary.Balance.Equal(decimal.NewFromInt(3800)) {
		t.Fatalf("expected a single debit, balance %s", v.Summary.Balance)
	}

	rejected := map[string]any{"to": "nobody", "amount": "1"}
	if rec := srv.do(t, http.MethodPost, "/api/v1/transfers", rejected, apimiddleware.IdempotencyKeyHeader, "transfer-2"); rec.Code != http.StatusNotFound {
		t.Fatalf("expected unknown receiver 404, got %d", rec.Code)
	}
	if mr.Exists("bankist:idempotency:transfer-2") {
		t.Fatal("expected rejected request to release its key")
	}
}

func TestNewRouter_RegistersKeyRoutes(t *testing.T) {
	router := newTestServer(t).router

	chiRoutes, ok := router.(chi.Router)
	if !ok {
		t.Fatal("router does not implement chi.Routes")
	}

	seen := map[string]bool{}
	if err := chi.Walk(chiRoutes, func(method string, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		seen[method+" "+route] = true
		return nil
	}); err != nil {
		t.Fatalf("walk failed: %v", err)
	}

	expected := []string{
		"GET /health",
		"GET /ready",
		"GET /api/v1/accounts/",
		"POST /api/v1/accounts/close",
		"GET /api/v1/session/",
		"POST /api/v1/session/login",
		"POST /api/v1/session/sort",
		"POST /api/v1/transfers",
		"POST /api/v1/loans",
	}

	for _, route := range expected {
		if !seen[route] {
			t.Fatalf("expected route %s to be registered, have %v", route, seen)
		}
	}
}
