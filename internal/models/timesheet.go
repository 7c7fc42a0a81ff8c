package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TimesheetEntry is the timesheet_entries table row.
type TimesheetEntry struct {
	EntryID   string           `json:"entryID"`
	ProjectID string           `json:"projectID"`
	WorkerID  string           `json:"workerID"`
	EntryDate time.Time        `json:"entryDate"`
	Hours     decimal.Decimal  `json:"hours"`
	Rate      *decimal.Decimal `json:"rate"`
	Billable  bool             `json:"billable"`
	Billed    bool             `json:"billed"`
	Notes     string           `json:"notes"`
	AuditFields
}
