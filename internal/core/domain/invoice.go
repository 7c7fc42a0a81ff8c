package domain

import (
	"fmt"
	"time"

	"github.com/praxisbill/lpm_backend/internal/apperrors"
	"github.com/shopspring/decimal"
)

// InvoiceStatus is the lifecycle state of an invoice.
type InvoiceStatus string

const (
	InvoiceDraft      InvoiceStatus = "DRAFT"
	InvoiceSubmitted  InvoiceStatus = "SUBMITTED"
	InvoiceApproved   InvoiceStatus = "APPROVED"
	InvoicePaid       InvoiceStatus = "PAID"
	InvoiceCancelled  InvoiceStatus = "CANCELLED"
	InvoiceWrittenOff InvoiceStatus = "WRITTEN_OFF"
)

// InvoiceAction is a status-transition request against the invoice state machine.
type InvoiceAction string

const (
	ActionSubmit   InvoiceAction = "SUBMIT"
	ActionApprove  InvoiceAction = "APPROVE"
	ActionMarkPaid InvoiceAction = "MARK_PAID"
	ActionCancel   InvoiceAction = "CANCEL"
	ActionWriteOff InvoiceAction = "WRITE_OFF"
)

// Invoice is a priced bill for a project. Subtotal is the raw pre-credit sum of its
// line items (credit lines excluded); Amount is the payable figure after credit,
// discount and tax. Tax and discount are copied from the proposal once at creation
// and independently editable afterwards.
type Invoice struct {
	InvoiceID        string          `json:"invoiceID"`
	ProposalID       *string         `json:"proposalID,omitempty"`
	ProjectID        string          `json:"projectID"`
	ClientID         *string         `json:"clientID,omitempty"` // Exactly one of ClientID/LeadID is set
	LeadID           *string         `json:"leadID,omitempty"`
	InvoiceNumber    *string         `json:"invoiceNumber,omitempty"` // Unique when present
	CurrencyCode     string          `json:"currencyCode"`
	Subtotal         decimal.Decimal `json:"subtotal"` // Raw, credit not subtracted (display value)
	Discount         Discount        `json:"discount"`
	TaxRate          decimal.Decimal `json:"taxRate"`
	TaxInclusive     bool            `json:"taxInclusive"`
	Amount           decimal.Decimal `json:"amount"`
	CreditApplied    decimal.Decimal `json:"creditApplied"`
	Status           InvoiceStatus   `json:"status"`
	IsUpfrontPayment bool            `json:"isUpfrontPayment"`
	RelatedInvoiceID *string         `json:"relatedInvoiceID,omitempty"` // Invoice this upfront credit last funded
	DueDate          *time.Time      `json:"dueDate,omitempty"`
	PaidAt           *time.Time      `json:"paidAt,omitempty"`
	AuditFields
}

// LineItemType classifies an invoice line item by its source.
type LineItemType string

const (
	LineItemTimesheet LineItemType = "TIMESHEET"
	LineItemCharge    LineItemType = "CHARGE"
	LineItemExpense   LineItemType = "EXPENSE"
	LineItemCredit    LineItemType = "CREDIT"
)

// InvoiceLineItem is one priced line on an invoice. Credit lines carry a
// negative amount and reference the upfront invoice they draw from.
type InvoiceLineItem struct {
	LineItemID  string          `json:"lineItemID"`
	InvoiceID   string          `json:"invoiceID"`
	Type        LineItemType    `json:"type"`
	SourceID    *string         `json:"sourceID,omitempty"` // Timesheet entry, charge, expense or upfront invoice id
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	Rate        decimal.Decimal `json:"rate"`
	Amount      decimal.Decimal `json:"amount"`
	IsCredit    bool            `json:"isCredit"`
	AuditFields
}

// transitions is the single source of truth for status-change legality.
var transitions = map[InvoiceStatus]map[InvoiceAction]InvoiceStatus{
	InvoiceDraft: {
		ActionSubmit: InvoiceSubmitted,
		ActionCancel: InvoiceCancelled,
	},
	InvoiceSubmitted: {
		ActionApprove:  InvoiceApproved,
		ActionCancel:   InvoiceCancelled,
		ActionWriteOff: InvoiceWrittenOff,
	},
	InvoiceApproved: {
		ActionMarkPaid: InvoicePaid,
		ActionCancel:   InvoiceCancelled,
		ActionWriteOff: InvoiceWrittenOff,
	},
}

// adminOnlyActions require the ADMIN role.
var adminOnlyActions = map[InvoiceAction]bool{
	ActionApprove:  true,
	ActionMarkPaid: true,
	ActionWriteOff: true,
}

// Transition applies a status-change action and returns the updated invoice.
// Every legality check (for example "cannot cancel a PAID invoice") lives here
// rather than at call sites.
func (i Invoice) Transition(action InvoiceAction, actor Actor, now time.Time) (Invoice, error) {
	if adminOnlyActions[action] && actor.Role != RoleAdmin {
		return i, fmt.Errorf("%w: action %s requires admin role", apperrors.ErrForbidden, action)
	}

	next, ok := transitions[i.Status][action]
	if !ok {
		return i, fmt.Errorf("%w: cannot %s an invoice in status %s", apperrors.ErrInvalidTransition, action, i.Status)
	}

	i.Status = next
	if next == InvoicePaid {
		i.PaidAt = &now
	}
	i.LastUpdatedAt = now
	i.LastUpdatedBy = actor.UserID
	return i, nil
}

// IsTerminal reports whether no further transitions are possible.
func (i Invoice) IsTerminal() bool {
	return len(transitions[i.Status]) == 0
}
