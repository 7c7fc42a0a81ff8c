package domain

import "github.com/shopspring/decimal"

// WorkerProfile describes a timekeeper for rate resolution purposes.
type WorkerProfile struct {
	WorkerID          string           `json:"workerID"`
	Name              string           `json:"name"`
	RateTableKey      string           `json:"rateTableKey"` // Tier or role key into a proposal's rate table
	DefaultHourlyRate *decimal.Decimal `json:"defaultHourlyRate,omitempty"`
	AuditFields
}
