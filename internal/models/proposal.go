package models

import "github.com/shopspring/decimal"

// WorkProposal is the proposals table row. The discount lives in two nullable
// columns here; the tagged domain variant exists only above the persistence
// boundary.
type WorkProposal struct {
	ProposalID     string  `json:"proposalID"`
	ClientID       *string `json:"clientID"`
	LeadID         *string `json:"leadID"`
	ProposalNumber *string `json:"proposalNumber"`
	CurrencyCode   string  `json:"currencyCode"`

	UseBlendedRate bool                       `json:"useBlendedRate"`
	BlendedRate    *decimal.Decimal           `json:"blendedRate"`
	RateTableType  *string                    `json:"rateTableType"`
	RateTableRates map[string]decimal.Decimal `json:"rateTableRates"` // Stored as jsonb
	RateRangeMin   *decimal.Decimal           `json:"rateRangeMin"`
	RateRangeMax   *decimal.Decimal           `json:"rateRangeMax"`

	TaxRate         decimal.Decimal  `json:"taxRate"`
	TaxInclusive    bool             `json:"taxInclusive"`
	DiscountPercent *decimal.Decimal `json:"discountPercent"`
	DiscountAmount  *decimal.Decimal `json:"discountAmount"`
	AuditFields
}

// Project is the projects table row.
type Project struct {
	ProjectID  string  `json:"projectID"`
	Name       string  `json:"name"`
	ProposalID *string `json:"proposalID"`
	ClientID   *string `json:"clientID"`
	LeadID     *string `json:"leadID"`
	AuditFields
}
