package presenter

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/bankist/internal/domain"
)

// Messages shown in the welcome label.
const (
	MessageLoggedOut = "Log in to get started"
	MessageWrongPin  = "Wrong Pin! Please try again!"
)

// Row types
const (
	RowDeposit    = "deposit"
	RowWithdrawal = "withdrawal"
)

// Row is one rendered movement.
type Row struct {
	// Index numbers the movement in insertion order and survives sorting.
	Index  int
	Type   string
	Date   string
	Value  string
	Amount decimal.Decimal
}

// ViewModel is everything a client needs to render the account screen.
type ViewModel struct {
	LoggedIn     bool
	Welcome      string
	Owner        string
	Username     string
	Date         string
	Currency     string
	CurrencyName string
	Balance      string
	In           string
	Out          string
	Interest     string
	Timer        string
	Sort         string
	Rows         []Row
	Summary      domain.Summary
}

// Presenter computes view models. It holds no state besides the formatter.
type Presenter struct {
	fmt *Formatter
}

// New creates a Presenter.
func New(f *Formatter) *Presenter {
	return &Presenter{fmt: f}
}

// Formatter returns the underlying formatter.
func (p *Presenter) Formatter() *Formatter {
	return p.fmt
}

// Countdown renders remaining ticks as MM:SS.
func Countdown(remaining int) string {
	if remaining < 0 {
		remaining = 0
	}
	return fmt.Sprintf("%02d:%02d", remaining/60, remaining%60)
}

// LoggedOut returns the empty view with the given welcome message.
func LoggedOut(message string) ViewModel {
	return ViewModel{Welcome: message}
}

// Compute builds the view for account within session at now.
func (p *Presenter) Compute(account *domain.Account, session domain.Session, now time.Time) ViewModel {
	if account == nil || !session.LoggedIn() {
		return LoggedOut(MessageLoggedOut)
	}

	summary := account.Summary()
	money := func(d decimal.Decimal) string {
		return p.fmt.Currency(d, account.Currency, account.Locale)
	}

	return ViewModel{
		LoggedIn:     true,
		Welcome:      "Welcome back, " + account.FirstName(),
		Owner:        account.Owner,
		Username:     account.Username,
		Date:         p.fmt.DateTime(now, account.Locale),
		Currency:     account.Currency,
		CurrencyName: CurrencyName(account.Currency),
		Balance:      money(summary.Balance),
		In:           money(summary.TotalDeposits),
		Out:          money(summary.TotalWithdrawals),
		Interest:     money(summary.Interest),
		Timer:        Countdown(session.Remaining),
		Sort:         session.Sort.String(),
		Rows:         p.Rows(account, session.Sort, now),
		Summary:      summary,
	}
}

// Rows renders movements newest first, or in reverse ascending order when sorted.
func (p *Presenter) Rows(account *domain.Account, order domain.SortOrder, now time.Time) []Row {
	pairs := domain.SortPairs(domain.PairMovements(account.Movements, account.MovementDates), order)

	rows := make([]Row, 0, len(pairs))
	for i := len(pairs) - 1; i >= 0; i-- {
		pair := pairs[i]
		row := Row{
			Index:  pair.Index,
			Type:   RowWithdrawal,
			Value:  p.fmt.Currency(pair.Amount, account.Currency, account.Locale),
			Amount: pair.Amount,
		}
		if pair.IsDeposit() {
			row.Type = RowDeposit
		}
		if pair.Date != nil {
			row.Date = p.fmt.MovementDate(*pair.Date, now, account.Locale)
		}
		rows = append(rows, row)
	}
	return rows
}
