package models

import "github.com/shopspring/decimal"

// WorkerProfile is the workers table row.
type WorkerProfile struct {
	WorkerID          string           `json:"workerID"`
	Name              string           `json:"name"`
	RateTableKey      string           `json:"rateTableKey"`
	DefaultHourlyRate *decimal.Decimal `json:"defaultHourlyRate"`
	AuditFields
}
