package billing

import (
	"fmt"
	"strings"

	"github.com/praxisbill/lpm_backend/internal/apperrors"
)

const (
	proposalNumberPrefix = "PROP-"
	invoiceNumberPrefix  = "INV-"

	// maxNumberProbes bounds the collision retry loop. Hitting it means the
	// number space for a proposal is pathologically dense and the caller gets
	// ErrDuplicateInvoiceNumber.
	maxNumberProbes = 1000
)

// NextInvoiceNumber derives a collision-free sequential invoice number from a
// proposal number. A nil proposal number yields a nil invoice number. A leading
// "PROP-" prefix is rewritten to "INV-"; any other base is used as-is. The
// suffix starts at existingCount+1 (upfront and regular invoices share one
// counter) and is incremented past numbers the taken check reports as used
// anywhere in the system.
//
// Callers must run this inside the same transaction as invoice creation, with
// the proposal row locked, so two concurrent requests cannot pick the same
// number.
func NextInvoiceNumber(proposalNumber *string, existingCount int, taken func(string) (bool, error)) (*string, error) {
	if proposalNumber == nil || *proposalNumber == "" {
		return nil, nil
	}

	base := *proposalNumber
	if strings.HasPrefix(base, proposalNumberPrefix) {
		base = invoiceNumberPrefix + strings.TrimPrefix(base, proposalNumberPrefix)
	}

	suffix := existingCount + 1
	for probes := 0; probes < maxNumberProbes; probes++ {
		candidate := fmt.Sprintf("%s-%d", base, suffix)
		inUse, err := taken(candidate)
		if err != nil {
			return nil, fmt.Errorf("checking invoice number %s: %w", candidate, err)
		}
		if !inUse {
			return &candidate, nil
		}
		suffix++
	}

	return nil, fmt.Errorf("%w: exhausted %d probes from base %s", apperrors.ErrDuplicateInvoiceNumber, maxNumberProbes, base)
}
