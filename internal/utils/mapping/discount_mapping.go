package mapping

import (
	"github.com/shopspring/decimal"

	"github.com/praxisbill/lpm_backend/internal/core/domain"
)

// DiscountToColumns splits a tagged discount into the two nullable columns the
// database stores. At most one return value is non-nil.
func DiscountToColumns(d domain.Discount) (percent, amount *decimal.Decimal) {
	switch d.Type {
	case domain.DiscountPercent:
		v := d.Value
		return &v, nil
	case domain.DiscountAmount:
		v := d.Value
		return nil, &v
	default:
		return nil, nil
	}
}

// DiscountFromColumns rebuilds the tagged discount from the nullable column
// pair. Rows carrying both (legacy data) resolve to percent.
func DiscountFromColumns(percent, amount *decimal.Decimal) domain.Discount {
	switch {
	case percent != nil:
		return domain.PercentDiscount(*percent)
	case amount != nil:
		return domain.AmountDiscount(*amount)
	default:
		return domain.NoDiscount()
	}
}
