package domain

import "time"

// Event types
const (
	EventTypeLoginSucceeded  = "session.login"
	EventTypeLoginFailed     = "session.login_failed"
	EventTypeSessionEnded    = "session.logout"
	EventTypeSessionTimedOut = "session.timeout"
	EventTypeTransferCreated = "transfer.created"
	EventTypeLoanRequested   = "loan.requested"
	EventTypeLoanGranted     = "loan.granted"
	EventTypeLoanCancelled   = "loan.cancelled"
	EventTypeAccountClosed   = "account.closed"
)

// Aggregate types
const (
	AggregateTypeSession = "session"
	AggregateTypeAccount = "account"
)

// Event is a domain event handed to the publisher.
type Event struct {
	ID            string
	AggregateID   string
	AggregateType string
	EventType     string
	Payload       any
	CreatedAt     time.Time
}

// SessionEvent payload
type SessionEvent struct {
	SessionID string `json:"session_id,omitempty"`
	Username  string `json:"username"`
	Reason    string `json:"reason,omitempty"`
}

// TransferCreatedEvent payload
type TransferCreatedEvent struct {
	FromAccountID string `json:"from_account_id"`
	ToAccountID   string `json:"to_account_id"`
	Amount        string `json:"amount"`
	Currency      string `json:"currency"`
	EventAt       string `json:"event_at"`
}

// LoanEvent payload
type LoanEvent struct {
	AccountID string `json:"account_id"`
	Amount    string `json:"amount"`
	Currency  string `json:"currency"`
	Reason    string `json:"reason,omitempty"`
}

// AccountClosedEvent payload
type AccountClosedEvent struct {
	AccountID string `json:"account_id"`
	Username  string `json:"username"`
	Balance   string `json:"balance"`
}
