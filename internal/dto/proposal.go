package dto

import (
	"github.com/praxisbill/lpm_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateProposalRequest creates a work proposal. DiscountPercent and
// DiscountAmount are mutually exclusive at the API edge; the service converts
// them to the tagged Discount variant and rejects requests carrying both.
type CreateProposalRequest struct {
	ClientID        *string                    `json:"clientID,omitempty"`
	LeadID          *string                    `json:"leadID,omitempty"`
	ProposalNumber  *string                    `json:"proposalNumber,omitempty"`
	CurrencyCode    string                     `json:"currencyCode" binding:"required,len=3"`
	TaxRate         decimal.Decimal            `json:"taxRate"`
	TaxInclusive    bool                       `json:"taxInclusive"`
	DiscountPercent *decimal.Decimal           `json:"discountPercent,omitempty"`
	DiscountAmount  *decimal.Decimal           `json:"discountAmount,omitempty"`
	UseBlendedRate  bool                       `json:"useBlendedRate"`
	BlendedRate     *decimal.Decimal           `json:"blendedRate,omitempty"`
	RateTableType   *string                    `json:"rateTableType,omitempty" binding:"omitempty,oneof=TIER ROLE"`
	RateTableRates  map[string]decimal.Decimal `json:"rateTableRates,omitempty"`
	RateRangeMin    *decimal.Decimal           `json:"rateRangeMin,omitempty"`
	RateRangeMax    *decimal.Decimal           `json:"rateRangeMax,omitempty"`
}

// ProposalResponse is the API shape of a proposal.
type ProposalResponse struct {
	ProposalID     string            `json:"proposalID"`
	ClientID       *string           `json:"clientID,omitempty"`
	LeadID         *string           `json:"leadID,omitempty"`
	ProposalNumber *string           `json:"proposalNumber,omitempty"`
	CurrencyCode   string            `json:"currencyCode"`
	TaxRate        decimal.Decimal   `json:"taxRate"`
	TaxInclusive   bool              `json:"taxInclusive"`
	DiscountType   string            `json:"discountType"`
	DiscountValue  decimal.Decimal   `json:"discountValue"`
	Rates          domain.RateConfig `json:"rates"`
}

// ToProposalResponse converts a domain proposal to its API shape.
func ToProposalResponse(p domain.WorkProposal) ProposalResponse {
	return ProposalResponse{
		ProposalID:     p.ProposalID,
		ClientID:       p.ClientID,
		LeadID:         p.LeadID,
		ProposalNumber: p.ProposalNumber,
		CurrencyCode:   p.CurrencyCode,
		TaxRate:        p.TaxRate,
		TaxInclusive:   p.TaxInclusive,
		DiscountType:   string(p.Discount.Type),
		DiscountValue:  p.Discount.Value,
		Rates:          p.Rates,
	}
}
