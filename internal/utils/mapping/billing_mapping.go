package mapping

import (
	"github.com/praxisbill/lpm_backend/internal/core/domain"
	"github.com/praxisbill/lpm_backend/internal/models"
)

// ToModelTimesheetEntry converts a domain TimesheetEntry to a model TimesheetEntry
func ToModelTimesheetEntry(d domain.TimesheetEntry) models.TimesheetEntry {
	return models.TimesheetEntry{
		EntryID:     d.EntryID,
		ProjectID:   d.ProjectID,
		WorkerID:    d.WorkerID,
		EntryDate:   d.EntryDate,
		Hours:       d.Hours,
		Rate:        d.Rate,
		Billable:    d.Billable,
		Billed:      d.Billed,
		Notes:       d.Notes,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainTimesheetEntry converts a model TimesheetEntry to a domain TimesheetEntry
func ToDomainTimesheetEntry(m models.TimesheetEntry) domain.TimesheetEntry {
	return domain.TimesheetEntry{
		EntryID:     m.EntryID,
		ProjectID:   m.ProjectID,
		WorkerID:    m.WorkerID,
		EntryDate:   m.EntryDate,
		Hours:       m.Hours,
		Rate:        m.Rate,
		Billable:    m.Billable,
		Billed:      m.Billed,
		Notes:       m.Notes,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelCharge converts a domain Charge to a model Charge
func ToModelCharge(d domain.Charge) models.Charge {
	return models.Charge{
		ChargeID:    d.ChargeID,
		ProjectID:   d.ProjectID,
		Description: d.Description,
		Quantity:    d.Quantity,
		UnitPrice:   d.UnitPrice,
		Amount:      d.Amount,
		Billed:      d.Billed,
		Recurrence:  string(d.Recurrence),
		NextRunAt:   d.NextRunAt,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainCharge converts a model Charge to a domain Charge
func ToDomainCharge(m models.Charge) domain.Charge {
	return domain.Charge{
		ChargeID:    m.ChargeID,
		ProjectID:   m.ProjectID,
		Description: m.Description,
		Quantity:    m.Quantity,
		UnitPrice:   m.UnitPrice,
		Amount:      m.Amount,
		Billed:      m.Billed,
		Recurrence:  domain.RecurrenceInterval(m.Recurrence),
		NextRunAt:   m.NextRunAt,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelExpense converts a domain Expense to a model Expense
func ToModelExpense(d domain.Expense) models.Expense {
	return models.Expense{
		ExpenseID:   d.ExpenseID,
		ProjectID:   d.ProjectID,
		Description: d.Description,
		Amount:      d.Amount,
		Billable:    d.Billable,
		BilledAt:    d.BilledAt,
		InvoiceID:   d.InvoiceID,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainExpense converts a model Expense to a domain Expense
func ToDomainExpense(m models.Expense) domain.Expense {
	return domain.Expense{
		ExpenseID:   m.ExpenseID,
		ProjectID:   m.ProjectID,
		Description: m.Description,
		Amount:      m.Amount,
		Billable:    m.Billable,
		BilledAt:    m.BilledAt,
		InvoiceID:   m.InvoiceID,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainWorker converts a model WorkerProfile to a domain WorkerProfile
func ToDomainWorker(m models.WorkerProfile) domain.WorkerProfile {
	return domain.WorkerProfile{
		WorkerID:          m.WorkerID,
		Name:              m.Name,
		RateTableKey:      m.RateTableKey,
		DefaultHourlyRate: m.DefaultHourlyRate,
		AuditFields:       ToDomainAuditFields(m.AuditFields),
	}
}
