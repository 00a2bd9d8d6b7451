package domain

import "errors"

// Outcome classifies the result of an action.
type Outcome string

const (
	Accepted                  Outcome = "accepted"
	RejectedInsufficientFunds Outcome = "rejected_insufficient_funds"
	RejectedSelfTransfer      Outcome = "rejected_self_transfer"
	RejectedInvalidReceiver   Outcome = "rejected_invalid_receiver"
	RejectedBadPin            Outcome = "rejected_bad_pin"
	RejectedBadAmount         Outcome = "rejected_bad_amount"
	RejectedNotEligible       Outcome = "rejected_not_eligible"
	RejectedNoSession         Outcome = "rejected_no_session"
	Failed                    Outcome = "failed"
)

// OutcomeOf maps an action error to its outcome. nil is Accepted.
func OutcomeOf(err error) Outcome {
	switch {
	case err == nil:
		return Accepted
	case errors.Is(err, ErrInsufficientFunds):
		return RejectedInsufficientFunds
	case errors.Is(err, ErrSameAccount):
		return RejectedSelfTransfer
	case errors.Is(err, ErrInvalidReceiver):
		return RejectedInvalidReceiver
	case errors.Is(err, ErrInvalidCredentials):
		return RejectedBadPin
	case errors.Is(err, ErrInvalidAmount):
		return RejectedBadAmount
	case errors.Is(err, ErrLoanNotEligible):
		return RejectedNotEligible
	case errors.Is(err, ErrNoSession):
		return RejectedNoSession
	default:
		return Failed
	}
}
