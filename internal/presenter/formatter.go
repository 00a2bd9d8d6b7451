// Package presenter turns account and session state into display-ready view models.
package presenter

import (
	"math"
	"strconv"
	"time"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
)

// localeRules describes how a locale renders numbers and dates.
// Template follows go-money: "1" is the amount, "$" the currency grapheme.
type localeRules struct {
	Decimal        string
	Thousand       string
	Template       string
	DateLayout     string
	DateTimeLayout string
}

// The first entry is the fallback.
var (
	supportedLocales = []language.Tag{
		language.AmericanEnglish,
		language.BritishEnglish,
		language.MustParse("de-DE"),
		language.MustParse("pt-PT"),
		language.MustParse("fr-FR"),
	}
	supportedRules = []localeRules{
		{Decimal: ".", Thousand: ",", Template: "$1", DateLayout: "1/2/2006", DateTimeLayout: "01/02/2006, 03:04 PM"},
		{Decimal: ".", Thousand: ",", Template: "$1", DateLayout: "02/01/2006", DateTimeLayout: "02/01/2006, 15:04"},
		{Decimal: ",", Thousand: ".", Template: "1 $", DateLayout: "2.1.2006", DateTimeLayout: "02.01.2006, 15:04"},
		{Decimal: ",", Thousand: " ", Template: "1 $", DateLayout: "02/01/2006", DateTimeLayout: "02/01/2006, 15:04"},
		{Decimal: ",", Thousand: " ", Template: "1 $", DateLayout: "02/01/2006", DateTimeLayout: "02/01/2006 15:04"},
	}
	localeMatcher = language.NewMatcher(supportedLocales)
)

var currencyNames = map[string]string{
	"USD": "United States dollar",
	"EUR": "Euro",
	"GBP": "Pound sterling",
}

// CurrencyName returns the display name of a currency, or the code itself.
func CurrencyName(code string) string {
	if name, ok := currencyNames[code]; ok {
		return name
	}
	return code
}

// Formatter renders amounts and dates for a locale.
type Formatter struct {
	loc *time.Location
}

// NewFormatter creates a Formatter that renders times in loc.
func NewFormatter(loc *time.Location) *Formatter {
	if loc == nil {
		loc = time.Local
	}
	return &Formatter{loc: loc}
}

func rulesFor(locale string) localeRules {
	_, idx, _ := localeMatcher.Match(language.Make(locale))
	if idx < 0 || idx >= len(supportedRules) {
		idx = 0
	}
	return supportedRules[idx]
}

// Currency formats amount in the given currency using the locale's separators.
func (f *Formatter) Currency(amount decimal.Decimal, currency, locale string) string {
	rules := rulesFor(locale)

	fraction, grapheme := 2, currency
	if c := money.GetCurrency(currency); c != nil {
		fraction, grapheme = c.Fraction, c.Grapheme
	}

	minor := amount.Shift(int32(fraction)).Round(0).IntPart()
	return money.NewFormatter(fraction, rules.Decimal, rules.Thousand, grapheme, rules.Template).Format(minor)
}

// Date formats a calendar date for the locale.
func (f *Formatter) Date(t time.Time, locale string) string {
	return t.In(f.loc).Format(rulesFor(locale).DateLayout)
}

// DateTime formats the current-date label for the locale.
func (f *Formatter) DateTime(t time.Time, locale string) string {
	return t.In(f.loc).Format(rulesFor(locale).DateTimeLayout)
}

// DaysBetween is the absolute difference in days, rounded half away from zero.
func DaysBetween(a, b time.Time) int {
	ms := math.Abs(float64(a.Sub(b).Milliseconds()))
	return int(math.Round(ms / float64((24 * time.Hour).Milliseconds())))
}

// MovementDate returns the relative label for a movement date.
func (f *Formatter) MovementDate(date, now time.Time, locale string) string {
	switch days := DaysBetween(now, date); {
	case days == 0:
		return "Today"
	case days == 1:
		return "Yesterday"
	case days <= 7:
		return strconv.Itoa(days) + " days ago"
	default:
		return f.Date(date, locale)
	}
}
