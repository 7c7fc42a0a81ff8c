package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// FinderFee is the finder_fees table row.
type FinderFee struct {
	FinderFeeID     string          `json:"finderFeeID"`
	InvoiceID       string          `json:"invoiceID"`
	ClientID        string          `json:"clientID"`
	ReferrerID      string          `json:"referrerID"`
	FeePercent      decimal.Decimal `json:"feePercent"`
	FeeAmount       decimal.Decimal `json:"feeAmount"`
	PaidAmount      decimal.Decimal `json:"paidAmount"`
	RemainingAmount decimal.Decimal `json:"remainingAmount"`
	Status          string          `json:"status"`
	AuditFields
}

// FinderFeePayment is the finder_fee_payments table row.
type FinderFeePayment struct {
	PaymentID   string          `json:"paymentID"`
	FinderFeeID string          `json:"finderFeeID"`
	Amount      decimal.Decimal `json:"amount"`
	PaymentDate time.Time       `json:"paymentDate"`
	AuditFields
}

// Client is the clients table row; finders live in client_finders.
type Client struct {
	ClientID string `json:"clientID"`
	Name     string `json:"name"`
	AuditFields
}

// ClientFinder is the client_finders table row.
type ClientFinder struct {
	ClientID   string          `json:"clientID"`
	ReferrerID string          `json:"referrerID"`
	FeePercent decimal.Decimal `json:"feePercent"`
}
