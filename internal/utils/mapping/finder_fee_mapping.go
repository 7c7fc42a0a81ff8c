package mapping

import (
	"github.com/praxisbill/lpm_backend/internal/core/domain"
	"github.com/praxisbill/lpm_backend/internal/models"
)

// ToModelFinderFee converts a domain FinderFee to a model FinderFee
func ToModelFinderFee(d domain.FinderFee) models.FinderFee {
	return models.FinderFee{
		FinderFeeID:     d.FinderFeeID,
		InvoiceID:       d.InvoiceID,
		ClientID:        d.ClientID,
		ReferrerID:      d.ReferrerID,
		FeePercent:      d.FeePercent,
		FeeAmount:       d.FeeAmount,
		PaidAmount:      d.PaidAmount,
		RemainingAmount: d.RemainingAmount,
		Status:          string(d.Status),
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainFinderFee converts a model FinderFee to a domain FinderFee
func ToDomainFinderFee(m models.FinderFee) domain.FinderFee {
	return domain.FinderFee{
		FinderFeeID:     m.FinderFeeID,
		InvoiceID:       m.InvoiceID,
		ClientID:        m.ClientID,
		ReferrerID:      m.ReferrerID,
		FeePercent:      m.FeePercent,
		FeeAmount:       m.FeeAmount,
		PaidAmount:      m.PaidAmount,
		RemainingAmount: m.RemainingAmount,
		Status:          domain.FinderFeeStatus(m.Status),
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelFinderFeePayment converts a domain FinderFeePayment to a model FinderFeePayment
func ToModelFinderFeePayment(d domain.FinderFeePayment) models.FinderFeePayment {
	return models.FinderFeePayment{
		PaymentID:   d.PaymentID,
		FinderFeeID: d.FinderFeeID,
		Amount:      d.Amount,
		PaymentDate: d.PaymentDate,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainClient converts a model Client plus its finder rows to a domain Client
func ToDomainClient(m models.Client, finders []models.ClientFinder) domain.Client {
	c := domain.Client{
		ClientID:    m.ClientID,
		Name:        m.Name,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
	for _, f := range finders {
		c.Finders = append(c.Finders, domain.Finder{ReferrerID: f.ReferrerID, FeePercent: f.FeePercent})
	}
	return c
}

// ToDomainUser converts a model User to a domain User
func ToDomainUser(m models.User) domain.User {
	return domain.User{
		UserID:       m.UserID,
		Username:     m.Username,
		Name:         m.Name,
		PasswordHash: m.PasswordHash,
		Role:         domain.UserRole(m.Role),
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelUser converts a domain User to a model User
func ToModelUser(d domain.User) models.User {
	return models.User{
		UserID:       d.UserID,
		Username:     d.Username,
		Name:         d.Name,
		PasswordHash: d.PasswordHash,
		Role:         string(d.Role),
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
}
