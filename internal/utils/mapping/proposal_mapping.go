package mapping

import (
	"github.com/praxisbill/lpm_backend/internal/core/domain"
	"github.com/praxisbill/lpm_backend/internal/models"
)

// ToModelProposal converts a domain WorkProposal to a model WorkProposal
func ToModelProposal(d domain.WorkProposal) models.WorkProposal {
	percent, amount := DiscountToColumns(d.Discount)
	var tableType *string
	if d.Rates.RateTableType != nil {
		t := string(*d.Rates.RateTableType)
		tableType = &t
	}
	return models.WorkProposal{
		ProposalID:      d.ProposalID,
		ClientID:        d.ClientID,
		LeadID:          d.LeadID,
		ProposalNumber:  d.ProposalNumber,
		CurrencyCode:    d.CurrencyCode,
		UseBlendedRate:  d.Rates.UseBlendedRate,
		BlendedRate:     d.Rates.BlendedRate,
		RateTableType:   tableType,
		RateTableRates:  d.Rates.RateTableRates,
		RateRangeMin:    d.Rates.RateRangeMin,
		RateRangeMax:    d.Rates.RateRangeMax,
		TaxRate:         d.TaxRate,
		TaxInclusive:    d.TaxInclusive,
		DiscountPercent: percent,
		DiscountAmount:  amount,
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainProposal converts a model WorkProposal to a domain WorkProposal
func ToDomainProposal(m models.WorkProposal) domain.WorkProposal {
	var tableType *domain.RateTableType
	if m.RateTableType != nil {
		t := domain.RateTableType(*m.RateTableType)
		tableType = &t
	}
	return domain.WorkProposal{
		ProposalID:     m.ProposalID,
		ClientID:       m.ClientID,
		LeadID:         m.LeadID,
		ProposalNumber: m.ProposalNumber,
		CurrencyCode:   m.CurrencyCode,
		Rates: domain.RateConfig{
			UseBlendedRate: m.UseBlendedRate,
			BlendedRate:    m.BlendedRate,
			RateTableType:  tableType,
			RateTableRates: m.RateTableRates,
			RateRangeMin:   m.RateRangeMin,
			RateRangeMax:   m.RateRangeMax,
		},
		TaxRate:      m.TaxRate,
		TaxInclusive: m.TaxInclusive,
		Discount:     DiscountFromColumns(m.DiscountPercent, m.DiscountAmount),
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainProject converts a model Project to a domain Project
func ToDomainProject(m models.Project) domain.Project {
	return domain.Project{
		ProjectID:   m.ProjectID,
		Name:        m.Name,
		ProposalID:  m.ProposalID,
		ClientID:    m.ClientID,
		LeadID:      m.LeadID,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}
