package mocks

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/bankist/internal/domain"
	"github.com/iho/bankist/internal/usecase"
)

// MockAccountRepository is an in-memory AccountRepository whose methods can be overridden.
type MockAccountRepository struct {
	mu       sync.RWMutex
	accounts []*domain.Account

	GetByIDFunc        func(ctx context.Context, id string) (*domain.Account, error)
	GetByUsernameFunc  func(ctx context.Context, username string) (*domain.Account, error)
	AppendMovementFunc func(ctx context.Context, id string, amount decimal.Decimal, at time.Time) error
	DeleteFunc         func(ctx context.Context, id string) error
}

func NewMockAccountRepository(accounts ...*domain.Account) *MockAccountRepository {
	return &MockAccountRepository{accounts: accounts}
}

func (m *MockAccountRepository) List(ctx context.Context) ([]*domain.Account, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*domain.Account, len(m.accounts))
	for i, acc := range m.accounts {
		out[i] = acc.Clone()
	}
	return out, nil
}

func (m *MockAccountRepository) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, acc := range m.accounts {
		if acc.ID == id {
			return acc.Clone(), nil
		}
	}
	return nil, domain.ErrAccountNotFound
}

func (m *MockAccountRepository) GetByUsername(ctx context.Context, username string) (*domain.Account, error) {
	if m.GetByUsernameFunc != nil {
		return m.GetByUsernameFunc(ctx, username)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, acc := range m.accounts {
		if acc.Username == username {
			return acc.Clone(), nil
		}
	}
	return nil, domain.ErrAccountNotFound
}

func (m *MockAccountRepository) AppendMovement(ctx context.Context, id string, amount decimal.Decimal, at time.Time) error {
	if m.AppendMovementFunc != nil {
		return m.AppendMovementFunc(ctx, id, amount, at)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, acc := range m.accounts {
		if acc.ID == id {
			acc.AppendMovement(amount, at)
			return nil
		}
	}
	return domain.ErrAccountNotFound
}

func (m *MockAccountRepository) Delete(ctx context.Context, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, acc := range m.accounts {
		if acc.ID == id {
			m.accounts = append(m.accounts[:i], m.accounts[i+1:]...)
			return nil
		}
	}
	return domain.ErrAccountNotFound
}

// Account returns the stored account without copying, for assertions.
func (m *MockAccountRepository) Account(id string) *domain.Account {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, acc := range m.accounts {
		if acc.ID == id {
			return acc
		}
	}
	return nil
}

// MockIDGenerator returns sequential IDs unless GenerateFunc is set.
type MockIDGenerator struct {
	mu           sync.Mutex
	n            int
	GenerateFunc func() string
}

func NewMockIDGenerator() *MockIDGenerator {
	return &MockIDGenerator{}
}

func (m *MockIDGenerator) Generate() string {
	if m.GenerateFunc != nil {
		return m.GenerateFunc()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.n++
	return fmt.Sprintf("id-%d", m.n)
}

// ManualScheduler is a Scheduler driven by Advance instead of wall time.
type ManualScheduler struct {
	mu    sync.Mutex
	now   time.Time
	seq   int
	tasks []*manualTask
}

type manualTask struct {
	s        *ManualScheduler
	seq      int
	at       time.Time
	fn       func()
	done     bool
	canceled bool
}

var _ usecase.Scheduler = (*ManualScheduler)(nil)

func NewManualScheduler(now time.Time) *ManualScheduler {
	return &ManualScheduler{now: now}
}

func (s *ManualScheduler) Now() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.now
}

func (s *ManualScheduler) AfterFunc(d time.Duration, fn func()) usecase.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	t := &manualTask{s: s, seq: s.seq, at: s.now.Add(d), fn: fn}
	s.tasks = append(s.tasks, t)
	return t
}

// Pending returns the number of scheduled, uncancelled tasks.
func (s *ManualScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, t := range s.tasks {
		if !t.done && !t.canceled {
			n++
		}
	}
	return n
}

// Advance moves the clock forward by d, running due tasks in time order.
// Tasks scheduled by callbacks run too if they fall due within d.
func (s *ManualScheduler) Advance(d time.Duration) {
	s.mu.Lock()
	target := s.now.Add(d)
	s.mu.Unlock()

	for {
		s.mu.Lock()
		next := s.nextDue(target)
		if next == nil {
			s.now = target
			s.mu.Unlock()
			return
		}
		next.done = true
		s.now = next.at
		s.mu.Unlock()

		next.fn()
	}
}

func (s *ManualScheduler) nextDue(target time.Time) *manualTask {
	var due []*manualTask
	live := s.tasks[:0]
	for _, t := range s.tasks {
		if t.done || t.canceled {
			continue
		}
		live = append(live, t)
		if !t.at.After(target) {
			due = append(due, t)
		}
	}
	s.tasks = live
	if len(due) == 0 {
		return nil
	}
	sort.Slice(due, func(i, j int) bool {
		if due[i].at.Equal(due[j].at) {
			return due[i].seq < due[j].seq
		}
		return due[i].at.Before(due[j].at)
	})
	return due[0]
}

func (t *manualTask) Cancel() bool {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	if t.done || t.canceled {
		return false
	}
	t.canceled = true
	return true
}
