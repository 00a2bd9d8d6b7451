package domain

import "github.com/shopspring/decimal"

var (
	hundred           = decimal.NewFromInt(100)
	interestThreshold = decimal.NewFromInt(1)
)

// Summary holds the figures derived from a movement list.
type Summary struct {
	Balance          decimal.Decimal
	TotalDeposits    decimal.Decimal
	TotalWithdrawals decimal.Decimal
	Interest         decimal.Decimal
}

// Summarize computes every derived figure from scratch.
func Summarize(movements []decimal.Decimal, rate decimal.Decimal) Summary {
	return Summary{
		Balance:          Balance(movements),
		TotalDeposits:    TotalDeposits(movements),
		TotalWithdrawals: TotalWithdrawals(movements),
		Interest:         QualifyingInterest(movements, rate),
	}
}

// Balance is the signed sum of all movements.
func Balance(movements []decimal.Decimal) decimal.Decimal {
	sum := decimal.Zero
	for _, m := range movements {
		sum = sum.Add(m)
	}
	return sum
}

// TotalDeposits sums the positive movements.
func TotalDeposits(movements []decimal.Decimal) decimal.Decimal {
	sum := decimal.Zero
	for _, m := range movements {
		if m.IsPositive() {
			sum = sum.Add(m)
		}
	}
	return sum
}

// TotalWithdrawals is the absolute value of the sum of negative movements.
func TotalWithdrawals(movements []decimal.Decimal) decimal.Decimal {
	sum := decimal.Zero
	for _, m := range movements {
		if m.IsNegative() {
			sum = sum.Add(m)
		}
	}
	return sum.Abs()
}

// QualifyingInterest sums deposit*rate/100 over deposits, skipping any
// single interest amount that does not exceed one currency unit.
func QualifyingInterest(movements []decimal.Decimal, rate decimal.Decimal) decimal.Decimal {
	sum := decimal.Zero
	for _, m := range movements {
		if !m.IsPositive() {
			continue
		}
		interest := m.Mul(rate).Div(hundred)
		if interest.GreaterThan(interestThreshold) {
			sum = sum.Add(interest)
		}
	}
	return sum
}
