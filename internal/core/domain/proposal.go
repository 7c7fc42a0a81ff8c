package domain

import "github.com/shopspring/decimal"

// RateTableType names the worker attribute a rate table is keyed by.
type RateTableType string

const (
	RateTableByTier RateTableType = "TIER"
	RateTableByRole RateTableType = "ROLE"
)

// RateConfig is a proposal's hourly billing configuration. Exactly one of the three
// shapes is meaningful: blended rate, rate table, or rate range.
type RateConfig struct {
	UseBlendedRate bool                       `json:"useBlendedRate"`
	BlendedRate    *decimal.Decimal           `json:"blendedRate,omitempty"`
	RateTableType  *RateTableType             `json:"rateTableType,omitempty"`
	RateTableRates map[string]decimal.Decimal `json:"rateTableRates,omitempty"`
	RateRangeMin   *decimal.Decimal           `json:"rateRangeMin,omitempty"`
	RateRangeMax   *decimal.Decimal           `json:"rateRangeMax,omitempty"`
}

// DiscountType tags the Discount variant.
type DiscountType string

const (
	DiscountNone    DiscountType = "NONE"
	DiscountPercent DiscountType = "PERCENT"
	DiscountAmount  DiscountType = "AMOUNT"
)

// Discount is a tagged variant replacing the legacy two-nullable-columns shape.
// Conversion to/from nullable percent/amount columns happens only at the
// persistence boundary (utils/mapping).
type Discount struct {
	Type  DiscountType    `json:"type"`
	Value decimal.Decimal `json:"value"`
}

// NoDiscount returns the empty discount.
func NoDiscount() Discount {
	return Discount{Type: DiscountNone}
}

// PercentDiscount returns a percentage discount.
func PercentDiscount(p decimal.Decimal) Discount {
	return Discount{Type: DiscountPercent, Value: p}
}

// AmountDiscount returns a fixed-amount discount.
func AmountDiscount(a decimal.Decimal) Discount {
	return Discount{Type: DiscountAmount, Value: a}
}

// WorkProposal carries the billing configuration invoices inherit at generation time.
// Once invoices reference it, changes are administrative corrections only.
type WorkProposal struct {
	ProposalID     string           `json:"proposalID"`
	ClientID       *string          `json:"clientID,omitempty"`
	LeadID         *string          `json:"leadID,omitempty"`
	ProposalNumber *string          `json:"proposalNumber,omitempty"` // Human-readable, optionally "PROP-" prefixed
	CurrencyCode   string           `json:"currencyCode"`
	Rates          RateConfig       `json:"rates"`
	TaxRate        decimal.Decimal  `json:"taxRate"`
	TaxInclusive   bool             `json:"taxInclusive"`
	Discount       Discount         `json:"discount"`
	AuditFields
}

// Project links billable work to at most one proposal and exactly one client or lead.
type Project struct {
	ProjectID  string  `json:"projectID"`
	Name       string  `json:"name"`
	ProposalID *string `json:"proposalID,omitempty"`
	ClientID   *string `json:"clientID,omitempty"`
	LeadID     *string `json:"leadID,omitempty"`
	AuditFields
}
