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

// timesheetHandler handles HTTP requests related to timesheet entries.
type timesheetHandler struct {
	timesheetService portssvc.TimesheetSvcFacade
}

func newTimesheetHandler(ts portssvc.TimesheetSvcFacade) *timesheetHandler {
	return &timesheetHandler{timesheetService: ts}
}

// registerTimesheetRoutes registers timesheet entry routes.
func registerTimesheetRoutes(rg *gin.RouterGroup, timesheetService portssvc.TimesheetSvcFacade) {
	h := newTimesheetHandler(timesheetService)

	timesheets := rg.Group("/timesheets")
	{
		timesheets.POST("", h.createEntry)
		timesheets.PUT("/:entryID", h.updateEntry)
	}
}

// createEntry godoc
// @Summary Log a timesheet entry
// @Description Logs hours against a project. When no rate is given it is resolved from the proposal's rate configuration, falling back to the worker's default rate
// @Tags timesheets
// @Accept  json
// @Produce  json
// @Param   entry body dto.CreateTimesheetRequest true "Entry details"
// @Success 201 {object} dto.TimesheetResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Project or worker not found"
// @Failure 500 {object} map[string]string "Failed to create entry"
// @Security BearerAuth
// @Router /timesheets [post]
func (h *timesheetHandler) createEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateTimesheetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actor, ok := middleware.GetActorFromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	entry, err := h.timesheetService.CreateEntry(c.Request.Context(), req, actor.UserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		} else if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to create timesheet entry", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create entry"})
		}
		return
	}

	logger.Info("Timesheet entry created", slog.String("entry_id", entry.EntryID))
	c.JSON(http.StatusCreated, dto.ToTimesheetResponse(*entry))
}

// updateEntry godoc
// @Summary Edit a timesheet entry
// @Description Edits an unbilled entry's hours, rate or notes. Entries already on an invoice are frozen
// @Tags timesheets
// @Accept  json
// @Produce  json
// @Param   entryID path string true "Entry ID"
// @Param   entry body dto.UpdateTimesheetRequest true "Fields to change"
// @Success 200 {object} dto.TimesheetResponse
// @Failure 400 {object} map[string]string "Invalid input or entry already billed"
// @Failure 404 {object} map[string]string "Entry not found"
// @Failure 500 {object} map[string]string "Failed to update entry"
// @Security BearerAuth
// @Router /timesheets/{entryID} [put]
func (h *timesheetHandler) updateEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entryID := c.Param("entryID")

	var req dto.UpdateTimesheetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actor, ok := middleware.GetActorFromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	entry, err := h.timesheetService.UpdateEntry(c.Request.Context(), entryID, req, actor.UserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Entry not found"})
		} else if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to update timesheet entry", slog.String("entry_id", entryID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update entry"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToTimesheetResponse(*entry))
}
