package mapping

import (
	"github.com/praxisbill/lpm_backend/internal/core/domain"
	"github.com/praxisbill/lpm_backend/internal/models"
)

// ToModelInvoice converts a domain Invoice to a model Invoice
func ToModelInvoice(d domain.Invoice) models.Invoice {
	percent, amount := DiscountToColumns(d.Discount)
	return models.Invoice{
		InvoiceID:        d.InvoiceID,
		ProposalID:       d.ProposalID,
		ProjectID:        d.ProjectID,
		ClientID:         d.ClientID,
		LeadID:           d.LeadID,
		InvoiceNumber:    d.InvoiceNumber,
		CurrencyCode:     d.CurrencyCode,
		Subtotal:         d.Subtotal,
		DiscountPercent:  percent,
		DiscountAmount:   amount,
		TaxRate:          d.TaxRate,
		TaxInclusive:     d.TaxInclusive,
		Amount:           d.Amount,
		CreditApplied:    d.CreditApplied,
		Status:           string(d.Status),
		IsUpfrontPayment: d.IsUpfrontPayment,
		RelatedInvoiceID: d.RelatedInvoiceID,
		DueDate:          d.DueDate,
		PaidAt:           d.PaidAt,
		AuditFields:      ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainInvoice converts a model Invoice to a domain Invoice
func ToDomainInvoice(m models.Invoice) domain.Invoice {
	return domain.Invoice{
		InvoiceID:        m.InvoiceID,
		ProposalID:       m.ProposalID,
		ProjectID:        m.ProjectID,
		ClientID:         m.ClientID,
		LeadID:           m.LeadID,
		InvoiceNumber:    m.InvoiceNumber,
		CurrencyCode:     m.CurrencyCode,
		Subtotal:         m.Subtotal,
		Discount:         DiscountFromColumns(m.DiscountPercent, m.DiscountAmount),
		TaxRate:          m.TaxRate,
		TaxInclusive:     m.TaxInclusive,
		Amount:           m.Amount,
		CreditApplied:    m.CreditApplied,
		Status:           domain.InvoiceStatus(m.Status),
		IsUpfrontPayment: m.IsUpfrontPayment,
		RelatedInvoiceID: m.RelatedInvoiceID,
		DueDate:          m.DueDate,
		PaidAt:           m.PaidAt,
		AuditFields:      ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelLineItem converts a domain InvoiceLineItem to a model InvoiceLineItem
func ToModelLineItem(d domain.InvoiceLineItem) models.InvoiceLineItem {
	return models.InvoiceLineItem{
		LineItemID:  d.LineItemID,
		InvoiceID:   d.InvoiceID,
		Type:        string(d.Type),
		SourceID:    d.SourceID,
		Description: d.Description,
		Quantity:    d.Quantity,
		Rate:        d.Rate,
		Amount:      d.Amount,
		IsCredit:    d.IsCredit,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainLineItem converts a model InvoiceLineItem to a domain InvoiceLineItem
func ToDomainLineItem(m models.InvoiceLineItem) domain.InvoiceLineItem {
	return domain.InvoiceLineItem{
		LineItemID:  m.LineItemID,
		InvoiceID:   m.InvoiceID,
		Type:        domain.LineItemType(m.Type),
		SourceID:    m.SourceID,
		Description: m.Description,
		Quantity:    m.Quantity,
		Rate:        m.Rate,
		Amount:      m.Amount,
		IsCredit:    m.IsCredit,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainLineItemSlice converts a slice of model line items to domain line items
func ToDomainLineItemSlice(ms []models.InvoiceLineItem) []domain.InvoiceLineItem {
	ds := make([]domain.InvoiceLineItem, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainLineItem(m)
	}
	return ds
}
