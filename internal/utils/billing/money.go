package billing

import "github.com/shopspring/decimal"

// hundred is the percent divisor shared by all pricing math.
var hundred = decimal.NewFromInt(100)

// ApplyPercent returns amount × percent / 100, unrounded.
func ApplyPercent(amount, percent decimal.Decimal) decimal.Decimal {
	return amount.Mul(percent).Div(hundred)
}

// RoundMoney rounds a monetary value to cents. All pricing outputs cross this
// boundary exactly once, in a fixed order, so equal inputs always price equally.
func RoundMoney(amount decimal.Decimal) decimal.Decimal {
	return amount.Round(2)
}
