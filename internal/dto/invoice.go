package dto

import (
	"time"

	"github.com/praxisbill/lpm_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateUpfrontInvoiceRequest asks for an upfront-payment invoice against a proposal.
type CreateUpfrontInvoiceRequest struct {
	ProposalID string          `json:"proposalID" binding:"required"`
	Amount     decimal.Decimal `json:"amount" binding:"required"`
	DueDate    *time.Time      `json:"dueDate,omitempty"`
}

// TransitionInvoiceRequest asks for a status change on an invoice.
type TransitionInvoiceRequest struct {
	Action string `json:"action" binding:"required,oneof=SUBMIT APPROVE MARK_PAID CANCEL WRITE_OFF"`
}

// ListInvoicesParams are the pagination inputs for invoice listings.
type ListInvoicesParams struct {
	Limit     int     `form:"limit,default=20" binding:"omitempty,min=1,max=100"`
	NextToken *string `form:"nextToken"`
}

// LineItemResponse is one invoice line in API responses.
type LineItemResponse struct {
	LineItemID  string          `json:"lineItemID"`
	Type        string          `json:"type"`
	SourceID    *string         `json:"sourceID,omitempty"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	Rate        decimal.Decimal `json:"rate"`
	Amount      decimal.Decimal `json:"amount"`
	IsCredit    bool            `json:"isCredit"`
}

// InvoiceResponse is the API shape of an invoice.
type InvoiceResponse struct {
	InvoiceID        string             `json:"invoiceID"`
	ProposalID       *string            `json:"proposalID,omitempty"`
	ProjectID        string             `json:"projectID"`
	ClientID         *string            `json:"clientID,omitempty"`
	LeadID           *string            `json:"leadID,omitempty"`
	InvoiceNumber    *string            `json:"invoiceNumber,omitempty"`
	CurrencyCode     string             `json:"currencyCode"`
	Subtotal         decimal.Decimal    `json:"subtotal"`
	DiscountType     string             `json:"discountType"`
	DiscountValue    decimal.Decimal    `json:"discountValue"`
	TaxRate          decimal.Decimal    `json:"taxRate"`
	TaxInclusive     bool               `json:"taxInclusive"`
	Amount           decimal.Decimal    `json:"amount"`
	CreditApplied    decimal.Decimal    `json:"creditApplied"`
	Status           string             `json:"status"`
	IsUpfrontPayment bool               `json:"isUpfrontPayment"`
	RelatedInvoiceID *string            `json:"relatedInvoiceID,omitempty"`
	DueDate          *time.Time         `json:"dueDate,omitempty"`
	PaidAt           *time.Time         `json:"paidAt,omitempty"`
	CreatedAt        time.Time          `json:"createdAt"`
	LineItems        []LineItemResponse `json:"lineItems,omitempty"`
}

// ListInvoicesResponse is a paginated invoice listing.
type ListInvoicesResponse struct {
	Invoices  []InvoiceResponse `json:"invoices"`
	NextToken *string           `json:"nextToken,omitempty"`
}

// CreditAllocationResponse reports the credit available on one upfront invoice.
type CreditAllocationResponse struct {
	InvoiceID string          `json:"invoiceID"`
	Available decimal.Decimal `json:"available"`
}

// CreditSummaryResponse is the available-credit preview for a proposal.
type CreditSummaryResponse struct {
	ProposalID     string                     `json:"proposalID"`
	TotalAvailable decimal.Decimal            `json:"totalAvailable"`
	Sources        []CreditAllocationResponse `json:"sources"`
}

// ToLineItemResponse converts a domain line item to its API shape.
func ToLineItemResponse(li domain.InvoiceLineItem) LineItemResponse {
	return LineItemResponse{
		LineItemID:  li.LineItemID,
		Type:        string(li.Type),
		SourceID:    li.SourceID,
		Description: li.Description,
		Quantity:    li.Quantity,
		Rate:        li.Rate,
		Amount:      li.Amount,
		IsCredit:    li.IsCredit,
	}
}

// ToInvoiceResponse converts a domain invoice (plus optional line items) to its API shape.
func ToInvoiceResponse(inv domain.Invoice, lines []domain.InvoiceLineItem) InvoiceResponse {
	resp := InvoiceResponse{
		InvoiceID:        inv.InvoiceID,
		ProposalID:       inv.ProposalID,
		ProjectID:        inv.ProjectID,
		ClientID:         inv.ClientID,
		LeadID:           inv.LeadID,
		InvoiceNumber:    inv.InvoiceNumber,
		CurrencyCode:     inv.CurrencyCode,
		Subtotal:         inv.Subtotal,
		DiscountType:     string(inv.Discount.Type),
		DiscountValue:    inv.Discount.Value,
		TaxRate:          inv.TaxRate,
		TaxInclusive:     inv.TaxInclusive,
		Amount:           inv.Amount,
		CreditApplied:    inv.CreditApplied,
		Status:           string(inv.Status),
		IsUpfrontPayment: inv.IsUpfrontPayment,
		RelatedInvoiceID: inv.RelatedInvoiceID,
		DueDate:          inv.DueDate,
		PaidAt:           inv.PaidAt,
		CreatedAt:        inv.CreatedAt,
	}
	for _, li := range lines {
		resp.LineItems = append(resp.LineItems, ToLineItemResponse(li))
	}
	return resp
}
