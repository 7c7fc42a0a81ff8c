package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/praxisbill/lpm_backend/internal/apperrors"
	"github.com/praxisbill/lpm_backend/internal/core/domain"
	portsrepo "github.com/praxisbill/lpm_backend/internal/core/ports/repositories"
	portssvc "github.com/praxisbill/lpm_backend/internal/core/ports/services"
	"github.com/praxisbill/lpm_backend/internal/middleware"
	"github.com/praxisbill/lpm_backend/internal/utils/billing"
)

// finderFeeService computes finder fees for paid invoices and tracks payouts.
type finderFeeService struct {
	feeRepo     portsrepo.FinderFeeRepositoryFacade
	invoiceRepo portsrepo.InvoiceReader
	clientRepo  portsrepo.ClientReader
}

// NewFinderFeeService creates a new finder-fee service.
func NewFinderFeeService(
	feeRepo portsrepo.FinderFeeRepositoryFacade,
	invoiceRepo portsrepo.InvoiceReader,
	clientRepo portsrepo.ClientReader,
) portssvc.FinderFeeSvcFacade {
	return &finderFeeService{
		feeRepo:     feeRepo,
		invoiceRepo: invoiceRepo,
		clientRepo:  clientRepo,
	}
}

var _ portssvc.FinderFeeSvcFacade = (*finderFeeService)(nil)

// CalculateAndCreateFees computes finder fees for a newly paid invoice, one
// PENDING fee per configured finder on the invoice's client. Re-running for an
// invoice that already has fees is a no-op, so a repeated MARK_PAID cannot
// duplicate fees.
func (s *finderFeeService) CalculateAndCreateFees(ctx context.Context, invoiceID string, actorID string) ([]domain.FinderFee, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	invoice, err := s.invoiceRepo.FindInvoiceByID(ctx, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("finding invoice %s: %w", invoiceID, err)
	}
	if invoice == nil {
		return nil, fmt.Errorf("%w: invoice %s", apperrors.ErrNotFound, invoiceID)
	}
	if invoice.ClientID == nil {
		// Lead-billed invoices have no finder configuration.
		return nil, nil
	}

	existing, err := s.feeRepo.FindFeesByInvoiceID(ctx, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("checking existing fees for invoice %s: %w", invoiceID, err)
	}
	if len(existing) > 0 {
		return existing, nil
	}

	client, err := s.clientRepo.FindClientByID(ctx, *invoice.ClientID)
	if err != nil {
		return nil, fmt.Errorf("finding client %s: %w", *invoice.ClientID, err)
	}
	if client == nil {
		return nil, fmt.Errorf("%w: client %s", apperrors.ErrNotFound, *invoice.ClientID)
	}
	if len(client.Finders) == 0 {
		return nil, nil
	}

	now := time.Now().UTC()
	fees := make([]domain.FinderFee, 0, len(client.Finders))
	for _, finder := range client.Finders {
		feeAmount := billing.RoundMoney(billing.ApplyPercent(invoice.Amount, finder.FeePercent))
		fees = append(fees, domain.FinderFee{
			FinderFeeID:     uuid.NewString(),
			InvoiceID:       invoiceID,
			ClientID:        client.ClientID,
			ReferrerID:      finder.ReferrerID,
			FeePercent:      finder.FeePercent,
			FeeAmount:       feeAmount,
			PaidAmount:      decimal.Zero,
			RemainingAmount: feeAmount,
			Status:          domain.FinderFeePending,
			AuditFields:     newAuditFields(actorID, now),
		})
	}

	if err := s.feeRepo.SaveFees(ctx, fees); err != nil {
		return nil, fmt.Errorf("saving finder fees for invoice %s: %w", invoiceID, err)
	}

	logger.Info("Finder fees created",
		slog.String("invoice_id", invoiceID),
		slog.Int("fee_count", len(fees)),
	)
	return fees, nil
}

// RecordPayment records a payout against a finder fee. A payment pushing the
// total past the fee amount is rejected whole; nothing is written.
func (s *finderFeeService) RecordPayment(ctx context.Context, feeID string, amount decimal.Decimal, date time.Time, actorID string) (*domain.FinderFee, error) {
	if !amount.IsPositive() {
		return nil, fmt.Errorf("%w: payment amount must be positive", apperrors.ErrValidation)
	}

	fee, err := s.feeRepo.FindFeeByID(ctx, feeID)
	if err != nil {
		return nil, fmt.Errorf("finding finder fee %s: %w", feeID, err)
	}
	if fee == nil {
		return nil, fmt.Errorf("%w: finder fee %s", apperrors.ErrNotFound, feeID)
	}

	priorPaid := fee.PaidAmount
	newPaid := priorPaid.Add(amount)
	if newPaid.GreaterThan(fee.FeeAmount) {
		return nil, fmt.Errorf("%w: fee %s has %s remaining, payment was %s",
			apperrors.ErrExceedsRemainingAmount, feeID, fee.RemainingAmount, amount)
	}

	now := time.Now().UTC()
	updated := *fee
	updated.PaidAmount = newPaid
	updated.RemainingAmount = fee.FeeAmount.Sub(newPaid)
	updated.Status = updated.DeriveStatus()
	updated.LastUpdatedAt = now
	updated.LastUpdatedBy = actorID

	payment := domain.FinderFeePayment{
		PaymentID:   uuid.NewString(),
		FinderFeeID: feeID,
		Amount:      amount,
		PaymentDate: date,
		AuditFields: newAuditFields(actorID, now),
	}

	if err := s.feeRepo.RecordPayment(ctx, payment, updated, priorPaid); err != nil {
		return nil, fmt.Errorf("recording finder fee payment: %w", err)
	}
	return &updated, nil
}

// ListFeesByInvoice returns the fees created for an invoice.
func (s *finderFeeService) ListFeesByInvoice(ctx context.Context, invoiceID string) ([]domain.FinderFee, error) {
	fees, err := s.feeRepo.FindFeesByInvoiceID(ctx, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("listing fees for invoice %s: %w", invoiceID, err)
	}
	return fees, nil
}
