package dto

import (
	"time"

	"github.com/praxisbill/lpm_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateChargeRequest adds a one-off or recurring charge to a project.
type CreateChargeRequest struct {
	ProjectID   string          `json:"projectID" binding:"required"`
	Description string          `json:"description" binding:"required"`
	Quantity    decimal.Decimal `json:"quantity" binding:"required"`
	UnitPrice   decimal.Decimal `json:"unitPrice" binding:"required"`
	Recurrence  string          `json:"recurrence,omitempty" binding:"omitempty,oneof=NONE MONTHLY QUARTERLY YEARLY"`
	NextRunAt   *time.Time      `json:"nextRunAt,omitempty"`
}

// RollRecurringRequest triggers materialization of due recurring charges.
// AsOf defaults to the current time when omitted.
type RollRecurringRequest struct {
	AsOf *time.Time `json:"asOf,omitempty"`
}

// ChargeResponse is the API shape of a charge.
type ChargeResponse struct {
	ChargeID    string          `json:"chargeID"`
	ProjectID   string          `json:"projectID"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	Amount      decimal.Decimal `json:"amount"`
	Billed      bool            `json:"billed"`
	Recurrence  string          `json:"recurrence"`
	NextRunAt   *time.Time      `json:"nextRunAt,omitempty"`
}

// ToChargeResponse converts a domain charge to its API shape.
func ToChargeResponse(c domain.Charge) ChargeResponse {
	return ChargeResponse{
		ChargeID:    c.ChargeID,
		ProjectID:   c.ProjectID,
		Description: c.Description,
		Quantity:    c.Quantity,
		UnitPrice:   c.UnitPrice,
		Amount:      c.Amount,
		Billed:      c.Billed,
		Recurrence:  string(c.Recurrence),
		NextRunAt:   c.NextRunAt,
	}
}

// CreateExpenseRequest adds a project expense.
type CreateExpenseRequest struct {
	ProjectID   string          `json:"projectID" binding:"required"`
	Description string          `json:"description" binding:"required"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Billable    *bool           `json:"billable,omitempty"` // Defaults to true
}

// ExpenseResponse is the API shape of an expense.
type ExpenseResponse struct {
	ExpenseID   string          `json:"expenseID"`
	ProjectID   string          `json:"projectID"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Billable    bool            `json:"billable"`
	BilledAt    *time.Time      `json:"billedAt,omitempty"`
	InvoiceID   *string         `json:"invoiceID,omitempty"`
}

// ToExpenseResponse converts a domain expense to its API shape.
func ToExpenseResponse(e domain.Expense) ExpenseResponse {
	return ExpenseResponse{
		ExpenseID:   e.ExpenseID,
		ProjectID:   e.ProjectID,
		Description: e.Description,
		Amount:      e.Amount,
		Billable:    e.Billable,
		BilledAt:    e.BilledAt,
		InvoiceID:   e.InvoiceID,
	}
}
