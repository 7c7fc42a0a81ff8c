package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// RecurrenceInterval is how often a recurring charge is materialized.
type RecurrenceInterval string

const (
	RecurrenceNone      RecurrenceInterval = "NONE"
	RecurrenceMonthly   RecurrenceInterval = "MONTHLY"
	RecurrenceQuarterly RecurrenceInterval = "QUARTERLY"
	RecurrenceYearly    RecurrenceInterval = "YEARLY"
)

// Charge is a one-off or recurring project charge. Amount is always
// Quantity times UnitPrice.
type Charge struct {
	ChargeID    string             `json:"chargeID"`
	ProjectID   string             `json:"projectID"`
	Description string             `json:"description"`
	Quantity    decimal.Decimal    `json:"quantity"`
	UnitPrice   decimal.Decimal    `json:"unitPrice"`
	Amount      decimal.Decimal    `json:"amount"`
	Billed      bool               `json:"billed"`
	Recurrence  RecurrenceInterval `json:"recurrence"`
	NextRunAt   *time.Time         `json:"nextRunAt,omitempty"` // Next materialization date for recurring charges
	AuditFields
}

// NextRecurrence returns the run date following the given one, or nil for
// non-recurring charges.
func (c Charge) NextRecurrence(after time.Time) *time.Time {
	var next time.Time
	switch c.Recurrence {
	case RecurrenceMonthly:
		next = after.AddDate(0, 1, 0)
	case RecurrenceQuarterly:
		next = after.AddDate(0, 3, 0)
	case RecurrenceYearly:
		next = after.AddDate(1, 0, 0)
	default:
		return nil
	}
	return &next
}
