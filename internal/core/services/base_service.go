package services

import (
	"time"

	"github.com/praxisbill/lpm_backend/internal/core/domain"
)

// defaultCurrencyCode applies when a project has no proposal to inherit from.
const defaultCurrencyCode = "EUR"

// newAuditFields builds audit fields for a freshly created or updated entity.
func newAuditFields(actorID string, now time.Time) domain.AuditFields {
	return domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     actorID,
		LastUpdatedAt: now,
		LastUpdatedBy: actorID,
	}
}
