package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/praxisbill/lpm_backend/internal/apperrors"
	"github.com/praxisbill/lpm_backend/internal/core/domain"
	portssvc "github.com/praxisbill/lpm_backend/internal/core/ports/services"
	"github.com/praxisbill/lpm_backend/internal/dto"
	"github.com/praxisbill/lpm_backend/internal/middleware"
)

// invoiceHandler handles HTTP requests related to invoices.
type invoiceHandler struct {
	invoiceService portssvc.InvoiceSvcFacade
}

func newInvoiceHandler(is portssvc.InvoiceSvcFacade) *invoiceHandler {
	return &invoiceHandler{invoiceService: is}
}

// registerInvoiceRoutes registers invoice generation, lookup and transition routes.
func registerInvoiceRoutes(rg *gin.RouterGroup, invoiceService portssvc.InvoiceSvcFacade) {
	h := newInvoiceHandler(invoiceService)

	projects := rg.Group("/projects")
	{
		projects.POST("/:projectID/invoices", h.generateInvoice)
		projects.GET("/:projectID/invoices", h.listInvoices)
	}

	invoices := rg.Group("/invoices")
	{
		invoices.POST("/upfront", h.createUpfrontInvoice)
		invoices.GET("/:invoiceID", h.getInvoice)
		invoices.POST("/:invoiceID/transition", h.transitionInvoice)
	}

	proposals := rg.Group("/proposals")
	{
		proposals.GET("/:proposalID/credit", h.getAvailableCredit)
	}
}

// generateInvoice godoc
// @Summary Generate an invoice from unbilled work
// @Description Aggregates a project's unbilled timesheet entries, charges and expenses into a DRAFT invoice, applying upfront credit, discount and tax from the proposal
// @Tags invoices
// @Produce  json
// @Param   projectID path string true "Project ID"
// @Success 201 {object} dto.InvoiceResponse
// @Failure 404 {object} map[string]string "Project not found"
// @Failure 422 {object} map[string]string "No unbilled items"
// @Failure 500 {object} map[string]string "Failed to generate invoice"
// @Security BearerAuth
// @Router /projects/{projectID}/invoices [post]
func (h *invoiceHandler) generateInvoice(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	projectID := c.Param("projectID")

	actor, ok := middleware.GetActorFromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("project_id", projectID))
	logger.Info("Received request to generate invoice")

	invoice, lines, err := h.invoiceService.GenerateInvoice(c.Request.Context(), projectID, actor)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
		} else if errors.Is(err, apperrors.ErrNoUnbilledItems) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		} else if errors.Is(err, apperrors.ErrSourceAlreadyBilled) || errors.Is(err, apperrors.ErrCreditOverAllocation) {
			logger.Warn("Invoice generation lost a concurrency race", slog.String("error", err.Error()))
			c.JSON(http.StatusConflict, gin.H{"error": "Billable items changed during generation, retry"})
		} else {
			logger.Error("Failed to generate invoice", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate invoice"})
		}
		return
	}

	logger.Info("Invoice generated", slog.String("invoice_id", invoice.InvoiceID))
	c.JSON(http.StatusCreated, dto.ToInvoiceResponse(*invoice, lines))
}

// createUpfrontInvoice godoc
// @Summary Create an upfront-payment invoice
// @Description Creates an upfront invoice against a proposal; once paid it becomes a credit pool for later invoices
// @Tags invoices
// @Accept  json
// @Produce  json
// @Param   invoice body dto.CreateUpfrontInvoiceRequest true "Upfront invoice details"
// @Success 201 {object} dto.InvoiceResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Proposal not found"
// @Failure 500 {object} map[string]string "Failed to create upfront invoice"
// @Security BearerAuth
// @Router /invoices/upfront [post]
func (h *invoiceHandler) createUpfrontInvoice(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateUpfrontInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actor, ok := middleware.GetActorFromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	invoice, err := h.invoiceService.CreateUpfrontInvoice(c.Request.Context(), req, actor)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Proposal not found"})
		} else if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to create upfront invoice", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create upfront invoice"})
		}
		return
	}

	logger.Info("Upfront invoice created", slog.String("invoice_id", invoice.InvoiceID))
	c.JSON(http.StatusCreated, dto.ToInvoiceResponse(*invoice, nil))
}

// getInvoice godoc
// @Summary Get an invoice
// @Description Retrieves an invoice with its line items
// @Tags invoices
// @Produce  json
// @Param   invoiceID path string true "Invoice ID"
// @Success 200 {object} dto.InvoiceResponse
// @Failure 404 {object} map[string]string "Invoice not found"
// @Failure 500 {object} map[string]string "Failed to retrieve invoice"
// @Security BearerAuth
// @Router /invoices/{invoiceID} [get]
func (h *invoiceHandler) getInvoice(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	invoiceID := c.Param("invoiceID")

	invoice, lines, err := h.invoiceService.GetInvoice(c.Request.Context(), invoiceID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Invoice not found"})
		} else {
			logger.Error("Failed to retrieve invoice", slog.String("invoice_id", invoiceID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve invoice"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToInvoiceResponse(*invoice, lines))
}

// listInvoices godoc
// @Summary List a project's invoices
// @Description Retrieves invoices for a project, newest first, with token-based pagination
// @Tags invoices
// @Produce  json
// @Param   projectID path string true "Project ID"
// @Param   limit query int false "Page size (default 20, max 100)"
// @Param   nextToken query string false "Pagination token from a previous response"
// @Success 200 {object} dto.ListInvoicesResponse
// @Failure 400 {object} map[string]string "Invalid pagination params"
// @Failure 500 {object} map[string]string "Failed to list invoices"
// @Security BearerAuth
// @Router /projects/{projectID}/invoices [get]
func (h *invoiceHandler) listInvoices(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	projectID := c.Param("projectID")

	var params dto.ListInvoicesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query params: " + err.Error()})
		return
	}

	resp, err := h.invoiceService.ListInvoices(c.Request.Context(), projectID, params)
	if err != nil {
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) && appErr.Code == http.StatusBadRequest {
			c.JSON(http.StatusBadRequest, gin.H{"error": appErr.Message})
			return
		}
		logger.Error("Failed to list invoices", slog.String("project_id", projectID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list invoices"})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// transitionInvoice godoc
// @Summary Apply a status transition to an invoice
// @Description Applies SUBMIT, APPROVE, MARK_PAID, CANCEL or WRITE_OFF. Approvals, payments and write-offs require the ADMIN role; marking an invoice PAID triggers finder-fee computation
// @Tags invoices
// @Accept  json
// @Produce  json
// @Param   invoiceID path string true "Invoice ID"
// @Param   transition body dto.TransitionInvoiceRequest true "Requested action"
// @Success 200 {object} dto.InvoiceResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 403 {object} map[string]string "Action requires admin role"
// @Failure 404 {object} map[string]string "Invoice not found"
// @Failure 409 {object} map[string]string "Invoice was modified concurrently"
// @Failure 422 {object} map[string]string "Transition not allowed from current status"
// @Failure 500 {object} map[string]string "Failed to transition invoice"
// @Security BearerAuth
// @Router /invoices/{invoiceID}/transition [post]
func (h *invoiceHandler) transitionInvoice(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	invoiceID := c.Param("invoiceID")

	var req dto.TransitionInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actor, ok := middleware.GetActorFromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("invoice_id", invoiceID), slog.String("action", req.Action))
	logger.Info("Received request to transition invoice")

	invoice, err := h.invoiceService.TransitionInvoice(c.Request.Context(), invoiceID, domain.InvoiceAction(req.Action), actor)
	if err != nil {
		var appErr *apperrors.AppError
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Invoice not found"})
		} else if errors.Is(err, apperrors.ErrForbidden) {
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		} else if errors.Is(err, apperrors.ErrInvalidTransition) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		} else if errors.As(err, &appErr) && appErr.Code == http.StatusConflict {
			c.JSON(http.StatusConflict, gin.H{"error": "Invoice was modified concurrently, retry"})
		} else {
			logger.Error("Failed to transition invoice", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to transition invoice"})
		}
		return
	}

	logger.Info("Invoice transitioned", slog.String("status", string(invoice.Status)))
	c.JSON(http.StatusOK, dto.ToInvoiceResponse(*invoice, nil))
}

// getAvailableCredit godoc
// @Summary Preview available upfront credit
// @Description Reports the credit remaining on a proposal's paid upfront invoices, per source and in total
// @Tags invoices
// @Produce  json
// @Param   proposalID path string true "Proposal ID"
// @Success 200 {object} dto.CreditSummaryResponse
// @Failure 404 {object} map[string]string "Proposal not found"
// @Failure 500 {object} map[string]string "Failed to compute available credit"
// @Security BearerAuth
// @Router /proposals/{proposalID}/credit [get]
func (h *invoiceHandler) getAvailableCredit(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	proposalID := c.Param("proposalID")

	summary, err := h.invoiceService.AvailableCredit(c.Request.Context(), proposalID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Proposal not found"})
		} else {
			logger.Error("Failed to compute available credit", slog.String("proposal_id", proposalID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute available credit"})
		}
		return
	}

	c.JSON(http.StatusOK, summary)
}
