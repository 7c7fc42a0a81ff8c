package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Expense is a billable or non-billable project expense. BilledAt and InvoiceID are
// set together when the expense is consumed by an invoice.
type Expense struct {
	ExpenseID   string          `json:"expenseID"`
	ProjectID   string          `json:"projectID"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Billable    bool            `json:"billable"`
	BilledAt    *time.Time      `json:"billedAt,omitempty"`
	InvoiceID   *string         `json:"invoiceID,omitempty"`
	AuditFields
}
