package allocation

import "github.com/shopspring/decimal"

var (
	hundred = decimal.NewFromInt(100)

	// tolerance is the maximum deviation of a percentage sum from 100 that
	// is still accepted.
	tolerance = decimal.RequireFromString("0.01")
)

// CheckPercentages sums up the percentages and reports if the sum is 100,
// with a deviation strictly smaller than 0.01.
//
// An empty list is never valid.
func CheckPercentages(percentages []decimal.Decimal) (bool, decimal.Decimal) {
	total := decimal.Sum(decimal.Zero, percentages...)
	return total.Sub(hundred).Abs().LessThan(tolerance), total
}
