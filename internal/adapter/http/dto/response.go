package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/bankist/internal/domain"
	"github.com/iho/bankist/internal/presenter"
	"github.com/iho/bankist/internal/usecase"
)

// AccountResponse is the public listing entry for an account.
// Pins and balances are not exposed.
type AccountResponse struct {
	Owner        string `json:"owner"`
	Username     string `json:"username"`
	Currency     string `json:"currency"`
	CurrencyName string `json:"currency_name"`
}

// AccountFromDomain converts domain account to response.
func AccountFromDomain(a *domain.Account) *AccountResponse {
	return &AccountResponse{
		Owner:        a.Owner,
		Username:     a.Username,
		Currency:     a.Currency,
		CurrencyName: presenter.CurrencyName(a.Currency),
	}
}

// AccountsFromDomain converts domain accounts to responses.
func AccountsFromDomain(accounts []*domain.Account) []*AccountResponse {
	result := make([]*AccountResponse, len(accounts))
	for i, a := range accounts {
		result[i] = AccountFromDomain(a)
	}
	return result
}

// RowResponse is one rendered movement.
type RowResponse struct {
	Index  int             `json:"index"`
	Type   string          `json:"type"`
	Date   string          `json:"date,omitempty"`
	Value  string          `json:"value"`
	Amount decimal.Decimal `json:"amount"`
}

// SummaryResponse carries the raw figures behind the formatted labels.
type SummaryResponse struct {
	Balance          decimal.Decimal `json:"balance"`
	TotalDeposits    decimal.Decimal `json:"total_deposits"`
	TotalWithdrawals decimal.Decimal `json:"total_withdrawals"`
	Interest         decimal.Decimal `json:"interest"`
}

// ViewResponse is the rendered screen state.
type ViewResponse struct {
	LoggedIn     bool             `json:"logged_in"`
	Welcome      string           `json:"welcome"`
	Owner        string           `json:"owner,omitempty"`
	Username     string           `json:"username,omitempty"`
	Date         string           `json:"date,omitempty"`
	Currency     string           `json:"currency,omitempty"`
	CurrencyName string           `json:"currency_name,omitempty"`
	Balance      string           `json:"balance,omitempty"`
	In           string           `json:"in,omitempty"`
	Out          string           `json:"out,omitempty"`
	Interest     string           `json:"interest,omitempty"`
	Timer        string           `json:"timer,omitempty"`
	Sort         string           `json:"sort,omitempty"`
	Movements    []RowResponse    `json:"movements"`
	Summary      *SummaryResponse `json:"summary,omitempty"`
}

// ViewFromPresenter converts a view model to response.
func ViewFromPresenter(v presenter.ViewModel) *ViewResponse {
	resp := &ViewResponse{
		LoggedIn:     v.LoggedIn,
		Welcome:      v.Welcome,
		Owner:        v.Owner,
		Username:     v.Username,
		Date:         v.Date,
		Currency:     v.Currency,
		CurrencyName: v.CurrencyName,
		Balance:      v.Balance,
		In:           v.In,
		Out:          v.Out,
		Interest:     v.Interest,
		Timer:        v.Timer,
		Sort:         v.Sort,
		Movements:    make([]RowResponse, len(v.Rows)),
	}

	for i, row := range v.Rows {
		resp.Movements[i] = RowResponse{
			Index:  row.Index,
			Type:   row.Type,
			Date:   row.Date,
			Value:  row.Value,
			Amount: row.Amount,
		}
	}

	if v.LoggedIn {
		resp.Summary = &SummaryResponse{
			Balance:          v.Summary.Balance,
			TotalDeposits:    v.Summary.TotalDeposits,
			TotalWithdrawals: v.Summary.TotalWithdrawals,
			Interest:         v.Summary.Interest,
		}
	}

	return resp
}

// LoanResponse acknowledges a loan that will be credited later.
type LoanResponse struct {
	ID        string          `json:"id"`
	Amount    decimal.Decimal `json:"amount"`
	CreditsAt time.Time       `json:"credits_at"`
	View      *ViewResponse   `json:"view"`
}

// LoanFromResult converts a loan result to response.
func LoanFromResult(r usecase.LoanResult) *LoanResponse {
	return &LoanResponse{
		ID:        r.ID,
		Amount:    r.Amount,
		CreditsAt: r.CreditsAt,
		View:      ViewFromPresenter(r.View),
	}
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string        `json:"error"`
	Message string        `json:"message,omitempty"`
	Outcome string        `json:"outcome,omitempty"`
	View    *ViewResponse `json:"view,omitempty"`
}
