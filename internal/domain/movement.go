package domain

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// SortOrder selects the presentation order of movements.
type SortOrder int

const (
	SortOriginal SortOrder = iota
	SortAscending
)

// String returns the wire name of the order.
func (o SortOrder) String() string {
	if o == SortAscending {
		return "ascending"
	}
	return "original"
}

// Toggle flips between original and ascending order.
func (o SortOrder) Toggle() SortOrder {
	if o == SortAscending {
		return SortOriginal
	}
	return SortAscending
}

// MovementPair keeps a movement together with its insertion index and date.
type MovementPair struct {
	// Index is the 1-based insertion position.
	Index  int
	Amount decimal.Decimal
	Date   *time.Time
}

// IsDeposit reports whether the movement is a deposit.
func (p MovementPair) IsDeposit() bool {
	return p.Amount.IsPositive()
}

// PairMovements zips movements with their dates. dates may be nil.
func PairMovements(movements []decimal.Decimal, dates []time.Time) []MovementPair {
	pairs := make([]MovementPair, len(movements))
	for i, m := range movements {
		pairs[i] = MovementPair{Index: i + 1, Amount: m}
		if i < len(dates) {
			d := dates[i]
			pairs[i].Date = &d
		}
	}
	return pairs
}

// SortPairs returns the pairs in the requested order. The input is not modified.
func SortPairs(pairs []MovementPair, order SortOrder) []MovementPair {
	out := make([]MovementPair, len(pairs))
	copy(out, pairs)
	if order == SortAscending {
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Amount.LessThan(out[j].Amount)
		})
	}
	return out
}
