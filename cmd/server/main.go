package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	httpAdapter "github.com/iho/bankist/internal/adapter/http"
	"github.com/iho/bankist/internal/adapter/http/handler"
	"github.com/iho/bankist/internal/adapter/http/middleware"
	"github.com/iho/bankist/internal/adapter/repository/memory"
	redisRepo "github.com/iho/bankist/internal/adapter/repository/redis"
	"github.com/iho/bankist/internal/domain"
	"github.com/iho/bankist/internal/infrastructure/config"
	"github.com/iho/bankist/internal/infrastructure/eventpublisher"
	"github.com/iho/bankist/internal/infrastructure/logger"
	"github.com/iho/bankist/internal/infrastructure/metrics"
	"github.com/iho/bankist/internal/infrastructure/redis"
	"github.com/iho/bankist/internal/infrastructure/retry"
	"github.com/iho/bankist/internal/infrastructure/scheduler"
	"github.com/iho/bankist/internal/infrastructure/seed"
	"github.com/iho/bankist/internal/presenter"
	"github.com/iho/bankist/internal/usecase"
)

func main() {
	// A missing .env is fine; the environment may already be set.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server failed")
	}
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	loc, err := cfg.Location()
	if err != nil {
		return fmt.Errorf("invalid TIME_ZONE: %w", err)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	retrier := retry.New(retry.WithLogger(log))
	idGen := memory.NewULIDGenerator()

	accounts, err := loadAccounts(cfg, idGen)
	if err != nil {
		return err
	}
	accountRepo := memory.NewAccountRepository(accounts)
	m.AccountsOpen.Set(float64(accountRepo.Count()))
	log.Info().Int("accounts", accountRepo.Count()).Msg("accounts loaded")

	outboxRepo := memory.NewOutboxRepository(memory.DefaultOutboxCapacity)

	publisher, closePublisher, err := newPublisher(ctx, cfg, log, retrier)
	if err != nil {
		return err
	}
	defer closePublisher()

	redisClient, err := connectRedis(ctx, cfg, retrier)
	if err != nil {
		return err
	}
	var idempotencyStore usecase.IdempotencyStore
	var redisPinger handler.Pinger
	if redisClient != nil {
		defer redisClient.Close()
		idempotencyStore = redisRepo.NewIdempotencyStore(redisClient, m)
		redisPinger = handler.PingFunc(func(ctx context.Context) error { return redisClient.Ping(ctx).Err() })
		log.Info().Msg("connected to redis")
	}

	bank := usecase.NewBankUseCase(usecase.BankConfig{
		AccountRepo: accountRepo,
		OutboxRepo:  outboxRepo,
		Scheduler:   scheduler.New(loc),
		IDGen:       idGen,
		Presenter:   presenter.New(presenter.NewFormatter(loc)),
		Metrics:     m,
		Logger:      log.With().Str("component", "bank").Logger(),
		Ticks:       cfg.SessionTicks,
		Tick:        cfg.SessionTick,
		LoanDelay:   cfg.LoanDelay,
	})

	eventPublisher := eventpublisher.NewEventPublisher(eventpublisher.Config{
		OutboxRepo: outboxRepo,
		Publisher:  publisher,
		Metrics:    m,
		Logger:     log,
	})
	publisherCtx, stopPublisher := context.WithCancel(context.Background())
	publisherDone := make(chan struct{})
	go func() {
		defer close(publisherDone)
		_ = eventPublisher.Start(publisherCtx)
	}()

	var rateLimiter *middleware.RateLimiter
	if cfg.RateLimitRPS > 0 {
		rateLimiter = middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst, m)
		go sweepLimiters(ctx, rateLimiter)
	}

	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		SessionHandler:   handler.NewSessionHandler(bank),
		TransferHandler:  handler.NewTransferHandler(bank),
		LoanHandler:      handler.NewLoanHandler(bank),
		AccountHandler:   handler.NewAccountHandler(bank),
		HealthHandler:    handler.NewHealthHandler(map[string]handler.Pinger{"redis": redisPinger}),
		IdempotencyStore: idempotencyStore,
		IdempotencyTTL:   cfg.IdempotencyTTL,
		RateLimiter:      rateLimiter,
		Metrics:          m,
		Gatherer:         reg,
		Logger:           log,
	})

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.HTTPPort).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case <-ctx.Done():
	case err := <-serverErr:
		if err != nil {
			stopPublisher()
			<-publisherDone
			return err
		}
	}

	log.Info().Msg("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
	}

	// End the session so timers stop and pending loans are voided before the
	// last events are flushed.
	bank.Shutdown(shutdownCtx)

	stopPublisher()
	<-publisherDone
	if err := eventPublisher.Flush(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("failed to flush events")
	}

	log.Info().Msg("server stopped")
	return nil
}

func loadAccounts(cfg *config.Config, ids usecase.IDGenerator) ([]*domain.Account, error) {
	if cfg.SeedFile == "" {
		return seed.Default(ids)
	}
	return seed.LoadFile(cfg.SeedFile, ids)
}

func connectRedis(ctx context.Context, cfg *config.Config, retrier *retry.Retrier) (*goredis.Client, error) {
	if cfg.RedisURL == "" {
		return nil, nil
	}
	client, err := redis.NewClient(ctx, cfg.RedisURL, retrier)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return client, nil
}

// newPublisher picks the AMQP publisher when a broker is configured and the
// log publisher otherwise. The returned close func is always safe to call.
func newPublisher(ctx context.Context, cfg *config.Config, log zerolog.Logger, retrier *retry.Retrier) (eventpublisher.Publisher, func(), error) {
	if cfg.AMQPURL == "" {
		return eventpublisher.NewLogPublisher(log), func() {}, nil
	}

	p, err := eventpublisher.NewAMQPPublisher(ctx, cfg.AMQPURL, cfg.EventsExchange, retrier)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to amqp: %w", err)
	}
	log.Info().Str("exchange", cfg.EventsExchange).Msg("connected to amqp")

	return p, func() {
		if err := p.Close(); err != nil {
			log.Warn().Err(err).Msg("failed to close amqp publisher")
		}
	}, nil
}

func sweepLimiters(ctx context.Context, rl *middleware.RateLimiter) {
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			rl.CleanupLimiters(time.Hour)
		}
	}
}
