package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Charge is the charges table row.
type Charge struct {
	ChargeID    string          `json:"chargeID"`
	ProjectID   string          `json:"projectID"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	Amount      decimal.Decimal `json:"amount"`
	Billed      bool            `json:"billed"`
	Recurrence  string          `json:"recurrence"`
	NextRunAt   *time.Time      `json:"nextRunAt"`
	AuditFields
}

// Expense is the expenses table row.
type Expense struct {
	ExpenseID   string          `json:"expenseID"`
	ProjectID   string          `json:"projectID"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Billable    bool            `json:"billable"`
	BilledAt    *time.Time      `json:"billedAt"`
	InvoiceID   *string         `json:"invoiceID"`
	AuditFields
}
