package billing

import (
	"github.com/praxisbill/lpm_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// PriceResult is the outcome of applying discount then tax to a subtotal.
type PriceResult struct {
	DiscountValue decimal.Decimal
	TaxAmount     decimal.Decimal
	FinalAmount   decimal.Decimal
}

// Price applies a single discount followed by tax to a post-credit subtotal.
//
// Discount and tax are computed in that fixed order. A discount larger than the
// subtotal is allowed through and produces a negative payable amount rather than
// being floored to zero; silently clamping would hide a configuration error.
//
// Inclusive tax is carved out of the stated price (tax = x×r/(100+r), final = x);
// exclusive tax is added on top (tax = x×r/100, final = x+tax).
func Price(subtotal decimal.Decimal, discount domain.Discount, taxRate decimal.Decimal, taxInclusive bool) PriceResult {
	var discountValue decimal.Decimal
	switch discount.Type {
	case domain.DiscountPercent:
		if discount.Value.IsPositive() {
			discountValue = RoundMoney(ApplyPercent(subtotal, discount.Value))
		}
	case domain.DiscountAmount:
		if discount.Value.IsPositive() {
			discountValue = discount.Value
		}
	}

	afterDiscount := subtotal.Sub(discountValue)

	taxAmount := decimal.Zero
	finalAmount := afterDiscount
	if taxRate.IsPositive() {
		if taxInclusive {
			taxAmount = RoundMoney(afterDiscount.Mul(taxRate).Div(hundred.Add(taxRate)))
			// Stated price already contains the tax.
		} else {
			taxAmount = RoundMoney(ApplyPercent(afterDiscount, taxRate))
			finalAmount = afterDiscount.Add(taxAmount)
		}
	}

	return PriceResult{
		DiscountValue: discountValue,
		TaxAmount:     taxAmount,
		FinalAmount:   RoundMoney(finalAmount),
	}
}
