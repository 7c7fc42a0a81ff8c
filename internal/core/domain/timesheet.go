package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TimesheetEntry is one unit of logged work. The rate is resolved once at creation
// time from the proposal's rate configuration. Once Billed is set the entry is
// frozen; edits require explicit un-billing first.
type TimesheetEntry struct {
	EntryID   string           `json:"entryID"`
	ProjectID string           `json:"projectID"`
	WorkerID  string           `json:"workerID"`
	EntryDate time.Time        `json:"entryDate"`
	Hours     decimal.Decimal  `json:"hours"` // >= 0
	Rate      *decimal.Decimal `json:"rate,omitempty"`
	Billable  bool             `json:"billable"`
	Billed    bool             `json:"billed"`
	Notes     string           `json:"notes"`
	AuditFields
}

// LineAmount is hours times rate, with a nil rate contributing zero.
func (e TimesheetEntry) LineAmount() decimal.Decimal {
	if e.Rate == nil {
		return decimal.Zero
	}
	return e.Hours.Mul(*e.Rate)
}
