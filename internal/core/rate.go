package core

import "github.com/shopspring/decimal"

// Commission rates are tiered by discount depth. Selling at full list price
// earns the top rate; each discount bracket steps the rate down. The feed
// line has its own, much flatter table.

// discountBracket maps a half-open discount interval (previous bound, UpTo]
// to a commission rate. Brackets are checked in ascending order.
type discountBracket struct {
	UpTo decimal.Decimal // inclusive upper bound, in percent
	Rate decimal.Decimal
}

var (
	feedFlatRate     = decimal.NewFromFloat(0.03) // feed line at full list price
	standardFlatRate = decimal.NewFromFloat(0.10) // all other lines at full list price
	standardFloor    = decimal.NewFromFloat(0.02) // discounts beyond the last bracket

	feedBrackets = []discountBracket{
		{UpTo: decimal.NewFromInt(10), Rate: decimal.NewFromFloat(0.02)},
	}

	standardBrackets = []discountBracket{
		{UpTo: decimal.NewFromInt(2), Rate: decimal.NewFromFloat(0.09)},
		{UpTo: decimal.NewFromInt(4), Rate: decimal.NewFromFloat(0.08)},
		{UpTo: decimal.NewFromInt(6), Rate: decimal.NewFromFloat(0.07)},
		{UpTo: decimal.NewFromInt(8), Rate: decimal.NewFromFloat(0.06)},
		{UpTo: decimal.NewFromInt(10), Rate: decimal.NewFromFloat(0.05)},
		{UpTo: decimal.NewFromInt(12), Rate: decimal.NewFromFloat(0.04)},
		{UpTo: decimal.NewFromInt(14), Rate: decimal.NewFromFloat(0.03)},
	}
)

// ResolveRate returns the commission rate for a product line at the given
// discount percentage. A discount matching no bracket yields zero. Every
// line other than feed falls through to the standard table, including
// unrecognized ones, so an unknown product line is not an error.
func ResolveRate(line ProductLine, discountPercent decimal.Decimal) decimal.Decimal {
	if line == LineFeed {
		return lookupRate(discountPercent, feedFlatRate, feedBrackets, decimal.Zero)
	}
	return lookupRate(discountPercent, standardFlatRate, standardBrackets, standardFloor)
}

// lookupRate resolves a discount against one rate table: flat for exactly
// zero, bracketed above zero, floor beyond the last bracket. Negative
// discounts match nothing and earn no commission.
func lookupRate(discount decimal.Decimal, flat decimal.Decimal, brackets []discountBracket, floor decimal.Decimal) decimal.Decimal {
	if discount.IsZero() {
		return flat
	}
	if discount.IsNegative() {
		return decimal.Zero
	}
	for _, b := range brackets {
		if discount.LessThanOrEqual(b.UpTo) {
			return b.Rate
		}
	}
	return floor
}
