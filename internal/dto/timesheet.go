package dto

import (
	"time"

	"github.com/praxisbill/lpm_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateTimesheetRequest logs new work against a project. Rate is optional; when
// absent it is resolved from the proposal's rate configuration at creation time.
type CreateTimesheetRequest struct {
	ProjectID string           `json:"projectID" binding:"required"`
	WorkerID  string           `json:"workerID" binding:"required"`
	EntryDate time.Time        `json:"entryDate" binding:"required"`
	Hours     decimal.Decimal  `json:"hours" binding:"required"`
	Rate      *decimal.Decimal `json:"rate,omitempty"`
	Billable  *bool            `json:"billable,omitempty"` // Defaults to true
	Notes     string           `json:"notes,omitempty"`
}

// UpdateTimesheetRequest edits an unbilled entry. Billed entries are frozen.
type UpdateTimesheetRequest struct {
	Hours *decimal.Decimal `json:"hours,omitempty"`
	Rate  *decimal.Decimal `json:"rate,omitempty"`
	Notes *string          `json:"notes,omitempty"`
}

// TimesheetResponse is the API shape of a timesheet entry.
type TimesheetResponse struct {
	EntryID   string           `json:"entryID"`
	ProjectID string           `json:"projectID"`
	WorkerID  string           `json:"workerID"`
	EntryDate time.Time        `json:"entryDate"`
	Hours     decimal.Decimal  `json:"hours"`
	Rate      *decimal.Decimal `json:"rate,omitempty"`
	Billable  bool             `json:"billable"`
	Billed    bool             `json:"billed"`
	Notes     string           `json:"notes,omitempty"`
}

// ToTimesheetResponse converts a domain entry to its API shape.
func ToTimesheetResponse(e domain.TimesheetEntry) TimesheetResponse {
	return TimesheetResponse{
		EntryID:   e.EntryID,
		ProjectID: e.ProjectID,
		WorkerID:  e.WorkerID,
		EntryDate: e.EntryDate,
		Hours:     e.Hours,
		Rate:      e.Rate,
		Billable:  e.Billable,
		Billed:    e.Billed,
		Notes:     e.Notes,
	}
}
