package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/praxisbill/lpm_backend/internal/apperrors"
	portssvc "github.com/praxisbill/lpm_backend/internal/core/ports/services"
	"github.com/praxisbill/lpm_backend/internal/dto"
	"github.com/praxisbill/lpm_backend/internal/middleware"
)

// finderFeeHandler handles HTTP requests related to finder fees.
type finderFeeHandler struct {
	finderFeeService portssvc.FinderFeeSvcFacade
}

func newFinderFeeHandler(fs portssvc.FinderFeeSvcFacade) *finderFeeHandler {
	return &finderFeeHandler{finderFeeService: fs}
}

// registerFinderFeeRoutes registers finder-fee listing and payout routes.
func registerFinderFeeRoutes(rg *gin.RouterGroup, finderFeeService portssvc.FinderFeeSvcFacade) {
	h := newFinderFeeHandler(finderFeeService)

	rg.GET("/invoices/:invoiceID/finder-fees", h.listFeesByInvoice)

	fees := rg.Group("/finder-fees")
	{
		fees.POST("/:feeID/payments", h.recordPayment)
	}
}

// listFeesByInvoice godoc
// @Summary List finder fees for an invoice
// @Description Retrieves the finder fees computed when the invoice was marked PAID
// @Tags finder-fees
// @Produce  json
// @Param   invoiceID path string true "Invoice ID"
// @Success 200 {array} dto.FinderFeeResponse
// @Failure 500 {object} map[string]string "Failed to list finder fees"
// @Security BearerAuth
// @Router /invoices/{invoiceID}/finder-fees [get]
func (h *finderFeeHandler) listFeesByInvoice(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	invoiceID := c.Param("invoiceID")

	fees, err := h.finderFeeService.ListFeesByInvoice(c.Request.Context(), invoiceID)
	if err != nil {
		logger.Error("Failed to list finder fees", slog.String("invoice_id", invoiceID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list finder fees"})
		return
	}

	resp := make([]dto.FinderFeeResponse, 0, len(fees))
	for _, f := range fees {
		resp = append(resp, dto.ToFinderFeeResponse(f))
	}
	c.JSON(http.StatusOK, resp)
}

// recordPayment godoc
// @Summary Record a finder-fee payout
// @Description Records a payment against a finder fee; the fee moves to PARTIALLY_PAID or PAID and payments can never exceed the remaining amount
// @Tags finder-fees
// @Accept  json
// @Produce  json
// @Param   feeID path string true "Finder fee ID"
// @Param   payment body dto.RecordFinderFeePaymentRequest true "Payment details"
// @Success 200 {object} dto.FinderFeeResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Finder fee not found"
// @Failure 422 {object} map[string]string "Payment exceeds remaining amount"
// @Failure 500 {object} map[string]string "Failed to record payment"
// @Security BearerAuth
// @Router /finder-fees/{feeID}/payments [post]
func (h *finderFeeHandler) recordPayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	feeID := c.Param("feeID")

	var req dto.RecordFinderFeePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actor, ok := middleware.GetActorFromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	fee, err := h.finderFeeService.RecordPayment(c.Request.Context(), feeID, req.Amount, req.PaymentDate, actor.UserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Finder fee not found"})
		} else if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else if errors.Is(err, apperrors.ErrExceedsRemainingAmount) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to record finder fee payment", slog.String("fee_id", feeID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record payment"})
		}
		return
	}

	logger.Info("Finder fee payment recorded", slog.String("fee_id", feeID), slog.String("status", string(fee.Status)))
	c.JSON(http.StatusOK, dto.ToFinderFeeResponse(*fee))
}
