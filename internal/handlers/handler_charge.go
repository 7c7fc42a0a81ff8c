package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/praxisbill/lpm_backend/internal/apperrors"
	"github.com/praxisbill/lpm_backend/internal/core/domain"
	portssvc "github.com/praxisbill/lpm_backend/internal/core/ports/services"
	"github.com/praxisbill/lpm_backend/internal/dto"
	"github.com/praxisbill/lpm_backend/internal/middleware"
)

// chargeHandler handles HTTP requests related to charges and expenses.
type chargeHandler struct {
	chargeService  portssvc.ChargeSvcFacade
	expenseService portssvc.ExpenseSvcFacade
}

func newChargeHandler(cs portssvc.ChargeSvcFacade, es portssvc.ExpenseSvcFacade) *chargeHandler {
	return &chargeHandler{chargeService: cs, expenseService: es}
}

// registerChargeRoutes registers charge and expense routes.
func registerChargeRoutes(rg *gin.RouterGroup, chargeService portssvc.ChargeSvcFacade, expenseService portssvc.ExpenseSvcFacade) {
	h := newChargeHandler(chargeService, expenseService)

	charges := rg.Group("/charges")
	{
		charges.POST("", h.createCharge)
		charges.POST("/roll", h.rollRecurring)
	}

	expenses := rg.Group("/expenses")
	{
		expenses.POST("", h.createExpense)
	}
}

// createCharge godoc
// @Summary Add a charge to a project
// @Description Adds a one-off or recurring charge. Recurring charges are templates; they are materialized into billable instances by the roll endpoint
// @Tags charges
// @Accept  json
// @Produce  json
// @Param   charge body dto.CreateChargeRequest true "Charge details"
// @Success 201 {object} dto.ChargeResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Project not found"
// @Failure 500 {object} map[string]string "Failed to create charge"
// @Security BearerAuth
// @Router /charges [post]
func (h *chargeHandler) createCharge(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateChargeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actor, ok := middleware.GetActorFromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	charge, err := h.chargeService.CreateCharge(c.Request.Context(), req, actor.UserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
		} else if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to create charge", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create charge"})
		}
		return
	}

	logger.Info("Charge created", slog.String("charge_id", charge.ChargeID))
	c.JSON(http.StatusCreated, dto.ToChargeResponse(*charge))
}

// rollRecurring godoc
// @Summary Materialize due recurring charges
// @Description Creates billable instances for every recurring charge whose next run date is due, then advances the template's next run date. Admin only
// @Tags charges
// @Accept  json
// @Produce  json
// @Param   roll body dto.RollRecurringRequest false "Optional as-of time, defaults to now"
// @Success 200 {array} dto.ChargeResponse
// @Failure 403 {object} map[string]string "Requires admin role"
// @Failure 500 {object} map[string]string "Failed to roll recurring charges"
// @Security BearerAuth
// @Router /charges/roll [post]
func (h *chargeHandler) rollRecurring(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	// Body is optional; only parse when one is present.
	var req dto.RollRecurringRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
			return
		}
	}

	actor, ok := middleware.GetActorFromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	if actor.Role != domain.RoleAdmin {
		c.JSON(http.StatusForbidden, gin.H{"error": "Rolling recurring charges requires the admin role"})
		return
	}

	asOf := time.Now().UTC()
	if req.AsOf != nil {
		asOf = req.AsOf.UTC()
	}

	instances, err := h.chargeService.RollRecurring(c.Request.Context(), asOf, actor.UserID)
	if err != nil {
		logger.Error("Failed to roll recurring charges", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to roll recurring charges"})
		return
	}

	resp := make([]dto.ChargeResponse, 0, len(instances))
	for _, charge := range instances {
		resp = append(resp, dto.ToChargeResponse(charge))
	}
	logger.Info("Recurring charges rolled", slog.Int("count", len(resp)))
	c.JSON(http.StatusOK, resp)
}

// createExpense godoc
// @Summary Add an expense to a project
// @Description Adds a project expense; billable expenses are picked up by the next invoice generation
// @Tags expenses
// @Accept  json
// @Produce  json
// @Param   expense body dto.CreateExpenseRequest true "Expense details"
// @Success 201 {object} dto.ExpenseResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Project not found"
// @Failure 500 {object} map[string]string "Failed to create expense"
// @Security BearerAuth
// @Router /expenses [post]
func (h *chargeHandler) createExpense(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actor, ok := middleware.GetActorFromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	expense, err := h.expenseService.CreateExpense(c.Request.Context(), req, actor.UserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
		} else if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to create expense", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create expense"})
		}
		return
	}

	logger.Info("Expense created", slog.String("expense_id", expense.ExpenseID))
	c.JSON(http.StatusCreated, dto.ToExpenseResponse(*expense))
}
