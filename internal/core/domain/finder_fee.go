package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// FinderFeeStatus tracks how much of a finder fee has been paid out.
type FinderFeeStatus string

const (
	FinderFeePending       FinderFeeStatus = "PENDING"
	FinderFeePartiallyPaid FinderFeeStatus = "PARTIALLY_PAID"
	FinderFeePaid          FinderFeeStatus = "PAID"
)

// FinderFee is a commission owed to a referring party, computed as a percentage of
// a paid invoice's amount. PaidAmount + RemainingAmount == FeeAmount holds at all
// times barring adjustment write-offs.
type FinderFee struct {
	FinderFeeID     string          `json:"finderFeeID"`
	InvoiceID       string          `json:"invoiceID"`
	ClientID        string          `json:"clientID"`
	ReferrerID      string          `json:"referrerID"`
	FeePercent      decimal.Decimal `json:"feePercent"`
	FeeAmount       decimal.Decimal `json:"feeAmount"`
	PaidAmount      decimal.Decimal `json:"paidAmount"`
	RemainingAmount decimal.Decimal `json:"remainingAmount"`
	Status          FinderFeeStatus `json:"status"`
	AuditFields
}

// DeriveStatus returns the status implied by the current paid/remaining split.
func (f FinderFee) DeriveStatus() FinderFeeStatus {
	switch {
	case f.RemainingAmount.LessThanOrEqual(decimal.Zero):
		return FinderFeePaid
	case f.PaidAmount.IsPositive():
		return FinderFeePartiallyPaid
	default:
		return FinderFeePending
	}
}

// FinderFeePayment is one recorded payout against a finder fee.
type FinderFeePayment struct {
	PaymentID   string          `json:"paymentID"`
	FinderFeeID string          `json:"finderFeeID"`
	Amount      decimal.Decimal `json:"amount"`
	PaymentDate time.Time       `json:"paymentDate"`
	AuditFields
}

// Finder is a referring party configured on a client with a fee percentage.
type Finder struct {
	ReferrerID string          `json:"referrerID"`
	FeePercent decimal.Decimal `json:"feePercent"`
}

// Client is the party an invoice bills, carrying its configured finders.
type Client struct {
	ClientID string   `json:"clientID"`
	Name     string   `json:"name"`
	Finders  []Finder `json:"finders,omitempty"`
	AuditFields
}
