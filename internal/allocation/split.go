// Package allocation splits a source amount across percentage-weighted shares.
package allocation

import (
	"math"
)

// MaxSourceAmount is the largest source amount Split is exact for. Above it,
// float64 cannot represent every integer and the amounts no longer add up.
const MaxSourceAmount int64 = 1<<53 - 1

// Share is one weighted entry of a split.
type Share[K comparable] struct {
	ID         K       // Identifier of the share, returned unchanged
	Percentage float64 // Weight in percent. Weights do not need to sum to 100
}

// Amount is the result of a split for one share.
type Amount[K comparable] struct {
	ID     K
	Amount int64
}

// Split distributes sourceAmount over the shares proportionally to their
// percentages. The result has the same order as shares.
//
// Every share first gets floor(sourceAmount * percentage / 100). The units lost
// to flooring are then handed out one by one in list order, starting with the
// first share, until none are left. The positional order is intentional: past
// allocations must be reproducible, so this must not be replaced by a largest
// remainder method.
//
// For a sourceAmount between 0 and MaxSourceAmount and non-negative
// percentages, the amounts sum up to sourceAmount. Callers must reject larger
// amounts, Split does not check them. With an empty share list, nothing is
// distributed.
func Split[K comparable](sourceAmount int64, shares []Share[K]) []Amount[K] {
	amounts := make([]Amount[K], 0, len(shares))

	var floored int64
	for _, share := range shares {
		exact := float64(sourceAmount) * share.Percentage / 100
		amount := int64(math.Floor(exact))

		amounts = append(amounts, Amount[K]{ID: share.ID, Amount: amount})
		floored += amount
	}

	remainder := sourceAmount - floored
	for i := 0; remainder > 0 && i < len(amounts); i++ {
		amounts[i].Amount++
		remainder--
	}

	return amounts
}
