package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Invoice is the invoices table row. Discount is stored as two nullable columns;
// at most one is set.
type Invoice struct {
	InvoiceID        string           `json:"invoiceID"`
	ProposalID       *string          `json:"proposalID"`
	ProjectID        string           `json:"projectID"`
	ClientID         *string          `json:"clientID"`
	LeadID           *string          `json:"leadID"`
	InvoiceNumber    *string          `json:"invoiceNumber"`
	CurrencyCode     string           `json:"currencyCode"`
	Subtotal         decimal.Decimal  `json:"subtotal"`
	DiscountPercent  *decimal.Decimal `json:"discountPercent"`
	DiscountAmount   *decimal.Decimal `json:"discountAmount"`
	TaxRate          decimal.Decimal  `json:"taxRate"`
	TaxInclusive     bool             `json:"taxInclusive"`
	Amount           decimal.Decimal  `json:"amount"`
	CreditApplied    decimal.Decimal  `json:"creditApplied"`
	Status           string           `json:"status"`
	IsUpfrontPayment bool             `json:"isUpfrontPayment"`
	RelatedInvoiceID *string          `json:"relatedInvoiceID"`
	DueDate          *time.Time       `json:"dueDate"`
	PaidAt           *time.Time       `json:"paidAt"`
	AuditFields
}

// InvoiceLineItem is the invoice_line_items table row.
type InvoiceLineItem struct {
	LineItemID  string          `json:"lineItemID"`
	InvoiceID   string          `json:"invoiceID"`
	Type        string          `json:"type"`
	SourceID    *string         `json:"sourceID"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	Rate        decimal.Decimal `json:"rate"`
	Amount      decimal.Decimal `json:"amount"`
	IsCredit    bool            `json:"isCredit"`
	AuditFields
}
