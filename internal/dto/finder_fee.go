package dto

import (
	"time"

	"github.com/praxisbill/lpm_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// RecordFinderFeePaymentRequest records a payout against a finder fee.
type RecordFinderFeePaymentRequest struct {
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	PaymentDate time.Time       `json:"paymentDate" binding:"required"`
}

// FinderFeeResponse is the API shape of a finder fee.
type FinderFeeResponse struct {
	FinderFeeID     string          `json:"finderFeeID"`
	InvoiceID       string          `json:"invoiceID"`
	ClientID        string          `json:"clientID"`
	ReferrerID      string          `json:"referrerID"`
	FeePercent      decimal.Decimal `json:"feePercent"`
	FeeAmount       decimal.Decimal `json:"feeAmount"`
	PaidAmount      decimal.Decimal `json:"paidAmount"`
	RemainingAmount decimal.Decimal `json:"remainingAmount"`
	Status          string          `json:"status"`
}

// ToFinderFeeResponse converts a domain finder fee to its API shape.
func ToFinderFeeResponse(f domain.FinderFee) FinderFeeResponse {
	return FinderFeeResponse{
		FinderFeeID:     f.FinderFeeID,
		InvoiceID:       f.InvoiceID,
		ClientID:        f.ClientID,
		ReferrerID:      f.ReferrerID,
		FeePercent:      f.FeePercent,
		FeeAmount:       f.FeeAmount,
		PaidAmount:      f.PaidAmount,
		RemainingAmount: f.RemainingAmount,
		Status:          string(f.Status),
	}
}
