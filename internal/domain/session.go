package domain

import "time"

// SessionState is the authentication state of the single session.
type SessionState int

const (
	SessionLoggedOut SessionState = iota
	SessionLoggedIn
)

func (s SessionState) String() string {
	if s == SessionLoggedIn {
		return "logged_in"
	}
	return "logged_out"
}

// LogoutReason explains why a session ended.
type LogoutReason string

const (
	LogoutTimeout     LogoutReason = "timeout"
	LogoutClosed      LogoutReason = "closed"
	LogoutReplaced    LogoutReason = "replaced"
	LogoutFailedLogin LogoutReason = "failed_login"
	LogoutShutdown    LogoutReason = "shutdown"
)

// Session is the explicit session context. Transitions return a new value.
type Session struct {
	ID        string
	AccountID string
	State     SessionState
	Sort      SortOrder
	Remaining int
	StartedAt time.Time
}

// NewSession starts an authenticated session with a full countdown.
func NewSession(id, accountID string, ticks int, at time.Time) Session {
	return Session{
		ID:        id,
		AccountID: accountID,
		State:     SessionLoggedIn,
		Sort:      SortOriginal,
		Remaining: ticks,
		StartedAt: at,
	}
}

// LoggedIn reports whether an account is current.
func (s Session) LoggedIn() bool {
	return s.State == SessionLoggedIn
}

// WithSortToggled flips the movement order.
func (s Session) WithSortToggled() Session {
	s.Sort = s.Sort.Toggle()
	return s
}

// WithTimerReset restores the countdown to ticks.
func (s Session) WithTimerReset(ticks int) Session {
	s.Remaining = ticks
	return s
}

// Tick consumes one unit of the countdown. Reaching zero logs out.
func (s Session) Tick() Session {
	if !s.LoggedIn() {
		return s
	}
	s.Remaining--
	if s.Remaining <= 0 {
		return Session{}
	}
	return s
}

// Ended returns the logged-out session.
func (s Session) Ended() Session {
	return Session{}
}
