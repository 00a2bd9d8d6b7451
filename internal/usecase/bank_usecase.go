package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/iho/bankist/internal/domain"
	"github.com/iho/bankist/internal/infrastructure/metrics"
	"github.com/iho/bankist/internal/presenter"
)

// BankUseCase owns the single session and runs every action to completion
// under one lock, including timer and loan callbacks.
type BankUseCase struct {
	mu sync.Mutex

	accountRepo AccountRepository
	outboxRepo  OutboxRepository
	scheduler   Scheduler
	idGen       IDGenerator
	presenter   *presenter.Presenter
	metrics     *metrics.Metrics
	logger      zerolog.Logger

	ticks     int
	loanDelay time.Duration

	session      domain.Session
	timer        *SessionTimer
	pendingLoans map[string]pendingLoan
}

type pendingLoan struct {
	task      Task
	sessionID string
	accountID string
	amount    decimal.Decimal
	currency  string
}

// BankConfig holds dependencies for BankUseCase.
type BankConfig struct {
	AccountRepo AccountRepository
	OutboxRepo  OutboxRepository
	Scheduler   Scheduler
	IDGen       IDGenerator
	Presenter   *presenter.Presenter
	Metrics     *metrics.Metrics
	Logger      zerolog.Logger
	Ticks       int           // Countdown length in ticks
	Tick        time.Duration // Duration of one tick
	LoanDelay   time.Duration // Delay before a granted loan is credited; zero means DefaultLoanDelay
}

// NewBankUseCase creates a new BankUseCase.
func NewBankUseCase(cfg BankConfig) *BankUseCase {
	if cfg.Ticks <= 0 {
		cfg.Ticks = DefaultSessionTicks
	}
	if cfg.LoanDelay <= 0 {
		cfg.LoanDelay = DefaultLoanDelay
	}
	if cfg.Presenter == nil {
		cfg.Presenter = presenter.New(presenter.NewFormatter(time.Local))
	}

	uc := &BankUseCase{
		accountRepo:  cfg.AccountRepo,
		outboxRepo:   cfg.OutboxRepo,
		scheduler:    cfg.Scheduler,
		idGen:        cfg.IDGen,
		presenter:    cfg.Presenter,
		metrics:      cfg.Metrics,
		logger:       cfg.Logger,
		ticks:        cfg.Ticks,
		loanDelay:    cfg.LoanDelay,
		pendingLoans: make(map[string]pendingLoan),
	}
	uc.timer = NewSessionTimer(cfg.Scheduler, cfg.Tick, uc.onTick)

	return uc
}

// LoginInput represents input for logging in.
type LoginInput struct {
	Username string
	Pin      int
}

// TransferInput represents input for a transfer from the current account.
type TransferInput struct {
	To     string
	Amount decimal.Decimal
}

// LoanInput represents input for a loan request.
type LoanInput struct {
	Amount decimal.Decimal
}

// CloseAccountInput carries the confirmation credentials.
type CloseAccountInput struct {
	Username string
	Pin      int
}

// LoanResult describes an accepted loan request awaiting credit.
type LoanResult struct {
	ID        string
	Amount    decimal.Decimal
	CreditsAt time.Time
	View      presenter.ViewModel
}

// Login authenticates against the first account with the username.
// Any current session ends, whether or not the pin matches.
func (uc *BankUseCase) Login(ctx context.Context, input LoginInput) (presenter.ViewModel, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	now := uc.scheduler.Now()

	account, err := uc.accountRepo.GetByUsername(ctx, input.Username)
	if err != nil || account.Pin != input.Pin {
		if uc.session.LoggedIn() {
			uc.endSession(ctx, domain.LogoutFailedLogin)
		}
		uc.countLogin(domain.RejectedBadPin)
		uc.record(ctx, domain.EventTypeLoginFailed, domain.AggregateTypeSession, "", domain.SessionEvent{
			Username: input.Username,
		})
		uc.logger.Info().Str("username", input.Username).Msg("login rejected")

		return presenter.LoggedOut(presenter.MessageWrongPin), domain.ErrInvalidCredentials
	}

	if uc.session.LoggedIn() {
		uc.endSession(ctx, domain.LogoutReplaced)
	}

	uc.session = domain.NewSession(uc.idGen.Generate(), account.ID, uc.ticks, now)
	uc.timer.Reset()

	if uc.metrics != nil {
		uc.metrics.ActiveSessions.Set(1)
	}
	uc.countLogin(domain.Accepted)
	uc.record(ctx, domain.EventTypeLoginSucceeded, domain.AggregateTypeSession, uc.session.ID, domain.SessionEvent{
		SessionID: uc.session.ID,
		Username:  account.Username,
	})
	uc.logger.Info().
		Str("session_id", uc.session.ID).
		Str("username", account.Username).
		Msg("session started")

	return uc.presenter.Compute(account, uc.session, now), nil
}

// Transfer moves amount from the current account to the named receiver.
func (uc *BankUseCase) Transfer(ctx context.Context, input TransferInput) (presenter.ViewModel, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	sender, err := uc.currentAccount(ctx)
	if err != nil {
		return presenter.LoggedOut(presenter.MessageLoggedOut), err
	}

	receiver, err := uc.accountRepo.GetByUsername(ctx, input.To)
	if err != nil {
		receiver = nil
	}

	if err := domain.ValidateTransfer(sender, receiver, input.Amount); err != nil {
		outcome := domain.OutcomeOf(err)
		if uc.metrics != nil {
			uc.metrics.TransferErrors.WithLabelValues(string(outcome)).Inc()
		}
		event := uc.logger.Debug().
			Str("from", sender.Username).
			Str("to", input.To).
			Str("outcome", string(outcome))
		if outcome != domain.RejectedBadAmount {
			event = event.Str("amount", input.Amount.String())
		}
		event.Msg("transfer rejected")

		return uc.render(ctx), err
	}

	now := uc.scheduler.Now()
	if err := uc.accountRepo.AppendMovement(ctx, sender.ID, input.Amount.Neg(), now); err != nil {
		return uc.render(ctx), err
	}
	if err := uc.accountRepo.AppendMovement(ctx, receiver.ID, input.Amount, now); err != nil {
		return uc.render(ctx), err
	}

	uc.resetTimer()

	if uc.metrics != nil {
		uc.metrics.TransfersCreated.Inc()
		uc.metrics.TransferAmount.Observe(input.Amount.InexactFloat64())
	}
	uc.record(ctx, domain.EventTypeTransferCreated, domain.AggregateTypeAccount, sender.ID, domain.TransferCreatedEvent{
		FromAccountID: sender.ID,
		ToAccountID:   receiver.ID,
		Amount:        input.Amount.String(),
		Currency:      sender.Currency,
		EventAt:       now.UTC().Format(time.RFC3339Nano),
	})

	return uc.render(ctx), nil
}

// RequestLoan validates a loan and schedules its credit after the loan delay.
func (uc *BankUseCase) RequestLoan(ctx context.Context, input LoanInput) (LoanResult, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	account, err := uc.currentAccount(ctx)
	if err != nil {
		return LoanResult{View: presenter.LoggedOut(presenter.MessageLoggedOut)}, err
	}

	if err := domain.ValidateAmountPrecision(input.Amount, account.Currency); err != nil {
		if uc.metrics != nil {
			uc.metrics.LoansRequested.WithLabelValues(string(domain.RejectedBadAmount)).Inc()
		}
		uc.logger.Debug().Str("username", account.Username).Msg("loan rejected")

		return LoanResult{View: uc.render(ctx)}, err
	}

	amount := domain.FloorLoanAmount(input.Amount)
	if err := domain.ValidateLoan(account, amount); err != nil {
		outcome := domain.OutcomeOf(err)
		if uc.metrics != nil {
			uc.metrics.LoansRequested.WithLabelValues(string(outcome)).Inc()
		}
		uc.logger.Debug().
			Str("username", account.Username).
			Str("amount", amount.String()).
			Str("outcome", string(outcome)).
			Msg("loan rejected")

		return LoanResult{Amount: amount, View: uc.render(ctx)}, err
	}

	loanID := uc.idGen.Generate()
	sessionID := uc.session.ID
	task := uc.scheduler.AfterFunc(uc.loanDelay, func() {
		uc.creditLoan(loanID)
	})
	uc.pendingLoans[loanID] = pendingLoan{
		task:      task,
		sessionID: sessionID,
		accountID: account.ID,
		amount:    amount,
		currency:  account.Currency,
	}

	if uc.metrics != nil {
		uc.metrics.LoansRequested.WithLabelValues(string(domain.Accepted)).Inc()
	}
	uc.record(ctx, domain.EventTypeLoanRequested, domain.AggregateTypeAccount, account.ID, domain.LoanEvent{
		AccountID: account.ID,
		Amount:    amount.String(),
		Currency:  account.Currency,
	})

	return LoanResult{
		ID:        loanID,
		Amount:    amount,
		CreditsAt: uc.scheduler.Now().Add(uc.loanDelay),
		View:      uc.render(ctx),
	}, nil
}

// ToggleSort flips the movement order and re-renders.
func (uc *BankUseCase) ToggleSort(ctx context.Context) (presenter.ViewModel, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	if _, err := uc.currentAccount(ctx); err != nil {
		return presenter.LoggedOut(presenter.MessageLoggedOut), err
	}

	uc.session = uc.session.WithSortToggled()

	return uc.render(ctx), nil
}

// CloseAccount removes the current account when the credentials match it.
func (uc *BankUseCase) CloseAccount(ctx context.Context, input CloseAccountInput) (presenter.ViewModel, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	account, err := uc.currentAccount(ctx)
	if err != nil {
		return presenter.LoggedOut(presenter.MessageLoggedOut), err
	}

	if err := domain.ValidateClose(account, input.Username, input.Pin); err != nil {
		uc.logger.Debug().Str("username", account.Username).Msg("close rejected")
		return uc.render(ctx), err
	}

	if err := uc.accountRepo.Delete(ctx, account.ID); err != nil {
		return uc.render(ctx), err
	}

	uc.endSession(ctx, domain.LogoutClosed)

	if uc.metrics != nil {
		uc.metrics.AccountsClosed.Inc()
		uc.metrics.AccountsOpen.Dec()
	}
	uc.record(ctx, domain.EventTypeAccountClosed, domain.AggregateTypeAccount, account.ID, domain.AccountClosedEvent{
		AccountID: account.ID,
		Username:  account.Username,
		Balance:   account.Balance().String(),
	})
	uc.logger.Info().Str("username", account.Username).Msg("account closed")

	return presenter.LoggedOut(presenter.MessageLoggedOut), nil
}

// View renders the current session.
func (uc *BankUseCase) View(ctx context.Context) (presenter.ViewModel, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	return uc.render(ctx), nil
}

// Session returns a copy of the session value.
func (uc *BankUseCase) Session() domain.Session {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	return uc.session
}

// ListAccounts returns the accounts in store order.
func (uc *BankUseCase) ListAccounts(ctx context.Context) ([]*domain.Account, error) {
	return uc.accountRepo.List(ctx)
}

// Shutdown stops the timer and voids pending loans.
func (uc *BankUseCase) Shutdown(ctx context.Context) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	if uc.session.LoggedIn() {
		uc.endSession(ctx, domain.LogoutShutdown)
		return
	}
	uc.timer.Stop()
	uc.cancelPendingLoans(ctx)
}

func (uc *BankUseCase) currentAccount(ctx context.Context) (*domain.Account, error) {
	if !uc.session.LoggedIn() {
		return nil, domain.ErrNoSession
	}
	account, err := uc.accountRepo.GetByID(ctx, uc.session.AccountID)
	if err != nil {
		return nil, domain.ErrNoSession
	}
	return account, nil
}

// render computes the view of the current account as stored now.
func (uc *BankUseCase) render(ctx context.Context) presenter.ViewModel {
	account, err := uc.currentAccount(ctx)
	if err != nil {
		return presenter.LoggedOut(presenter.MessageLoggedOut)
	}
	return uc.presenter.Compute(account, uc.session, uc.scheduler.Now())
}

func (uc *BankUseCase) resetTimer() {
	uc.session = uc.session.WithTimerReset(uc.ticks)
	uc.timer.Reset()
}

func (uc *BankUseCase) onTick(gen uint64) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	if !uc.timer.Current(gen) {
		return
	}

	uc.session = uc.session.Tick()
	if uc.session.LoggedIn() {
		uc.timer.Next(gen)
		return
	}

	uc.endSession(context.Background(), domain.LogoutTimeout)
}

func (uc *BankUseCase) creditLoan(loanID string) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	ctx := context.Background()

	loan, ok := uc.pendingLoans[loanID]
	if !ok {
		return
	}
	delete(uc.pendingLoans, loanID)

	if !uc.session.LoggedIn() || uc.session.ID != loan.sessionID || uc.session.AccountID != loan.accountID {
		return
	}

	if err := uc.accountRepo.AppendMovement(ctx, loan.accountID, loan.amount, uc.scheduler.Now()); err != nil {
		uc.logger.Error().Err(err).Str("loan_id", loanID).Msg("failed to credit loan")
		return
	}

	uc.resetTimer()

	if uc.metrics != nil {
		uc.metrics.LoansGranted.Inc()
	}
	uc.record(ctx, domain.EventTypeLoanGranted, domain.AggregateTypeAccount, loan.accountID, domain.LoanEvent{
		AccountID: loan.accountID,
		Amount:    loan.amount.String(),
		Currency:  loan.currency,
	})
	uc.logger.Info().Str("loan_id", loanID).Str("amount", loan.amount.String()).Msg("loan credited")
}

// endSession logs out, stops the countdown and voids pending loans.
func (uc *BankUseCase) endSession(ctx context.Context, reason domain.LogoutReason) {
	ended := uc.session
	uc.timer.Stop()
	uc.cancelPendingLoans(ctx)
	uc.session = uc.session.Ended()

	if ended.ID == "" {
		return
	}

	if uc.metrics != nil {
		uc.metrics.ActiveSessions.Set(0)
		uc.metrics.SessionsEnded.WithLabelValues(string(reason)).Inc()
		uc.metrics.SessionDuration.Observe(uc.scheduler.Now().Sub(ended.StartedAt).Seconds())
	}

	eventType := domain.EventTypeSessionEnded
	if reason == domain.LogoutTimeout {
		eventType = domain.EventTypeSessionTimedOut
	}
	uc.record(ctx, eventType, domain.AggregateTypeSession, ended.ID, domain.SessionEvent{
		SessionID: ended.ID,
		Reason:    string(reason),
	})
	uc.logger.Info().
		Str("session_id", ended.ID).
		Str("reason", string(reason)).
		Msg("session ended")
}

func (uc *BankUseCase) cancelPendingLoans(ctx context.Context) {
	for id, loan := range uc.pendingLoans {
		loan.task.Cancel()
		delete(uc.pendingLoans, id)

		if uc.metrics != nil {
			uc.metrics.LoansCancelled.Inc()
		}
		uc.record(ctx, domain.EventTypeLoanCancelled, domain.AggregateTypeAccount, loan.accountID, domain.LoanEvent{
			AccountID: loan.accountID,
			Amount:    loan.amount.String(),
			Currency:  loan.currency,
			Reason:    "session ended",
		})
	}
}

func (uc *BankUseCase) countLogin(outcome domain.Outcome) {
	if uc.metrics == nil {
		return
	}
	result := "success"
	if outcome != domain.Accepted {
		result = "failure"
	}
	uc.metrics.LoginAttempts.WithLabelValues(result).Inc()
}

// record queues a domain event. Failures are logged, never returned.
func (uc *BankUseCase) record(ctx context.Context, eventType, aggregateType, aggregateID string, payload any) {
	if uc.outboxRepo == nil {
		return
	}
	event := &domain.Event{
		ID:            uc.idGen.Generate(),
		AggregateID:   aggregateID,
		AggregateType: aggregateType,
		EventType:     eventType,
		Payload:       payload,
		CreatedAt:     uc.scheduler.Now(),
	}
	if err := uc.outboxRepo.Create(ctx, event); err != nil {
		uc.logger.Warn().Err(err).Str("event_type", eventType).Msg("failed to queue event")
	}
}
