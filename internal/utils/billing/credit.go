package billing

import (
	"fmt"

	"github.com/praxisbill/lpm_backend/internal/apperrors"
	"github.com/shopspring/decimal"
)

// CreditSource is a paid upfront invoice viewed as a credit pool.
type CreditSource struct {
	InvoiceID     string
	Amount        decimal.Decimal
	CreditApplied decimal.Decimal
}

// Remaining is the credit still available on this upfront invoice.
func (s CreditSource) Remaining() decimal.Decimal {
	return s.Amount.Sub(s.CreditApplied)
}

// CreditAllocation is the exact amount drawn from one upfront invoice.
type CreditAllocation struct {
	InvoiceID string
	Amount    decimal.Decimal
}

// TotalAvailable sums the positive remainders of the given credit sources.
func TotalAvailable(sources []CreditSource) decimal.Decimal {
	total := decimal.Zero
	for _, s := range sources {
		if r := s.Remaining(); r.IsPositive() {
			total = total.Add(r)
		}
	}
	return total
}

// AllocateCredit distributes credit against a raw subtotal, oldest source first.
// Sources must be ordered by creation time ascending; callers get that ordering
// from the repository query. The credit used is capped at the subtotal so the
// post-credit subtotal can never go negative, and no single allocation ever
// exceeds its source's remaining credit.
func AllocateCredit(rawSubtotal decimal.Decimal, sources []CreditSource) (decimal.Decimal, []CreditAllocation, error) {
	if !rawSubtotal.IsPositive() {
		return decimal.Zero, nil, nil
	}

	used := decimal.Zero
	var allocations []CreditAllocation
	need := rawSubtotal

	for _, s := range sources {
		if !need.IsPositive() {
			break
		}
		remaining := s.Remaining()
		if !remaining.IsPositive() {
			continue
		}

		draw := decimal.Min(remaining, need)
		if draw.GreaterThan(remaining) {
			// Unreachable with the min above; kept loud rather than clamped.
			return decimal.Zero, nil, fmt.Errorf("%w: invoice %s has %s remaining, tried to draw %s",
				apperrors.ErrCreditOverAllocation, s.InvoiceID, remaining, draw)
		}

		allocations = append(allocations, CreditAllocation{InvoiceID: s.InvoiceID, Amount: draw})
		used = used.Add(draw)
		need = need.Sub(draw)
	}

	return used, allocations, nil
}
