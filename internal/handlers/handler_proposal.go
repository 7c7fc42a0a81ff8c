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

// proposalHandler handles HTTP requests related to work proposals.
type proposalHandler struct {
	proposalService portssvc.ProposalSvcFacade
}

func newProposalHandler(ps portssvc.ProposalSvcFacade) *proposalHandler {
	return &proposalHandler{proposalService: ps}
}

// registerProposalRoutes registers proposal routes.
func registerProposalRoutes(rg *gin.RouterGroup, proposalService portssvc.ProposalSvcFacade) {
	h := newProposalHandler(proposalService)

	proposals := rg.Group("/proposals")
	{
		proposals.POST("", h.createProposal)
		proposals.GET("/:proposalID", h.getProposal)
	}
}

// createProposal godoc
// @Summary Create a work proposal
// @Description Creates a proposal with its billing terms: currency, rate configuration, discount and tax. Exactly one of clientID and leadID must be set
// @Tags proposals
// @Accept  json
// @Produce  json
// @Param   proposal body dto.CreateProposalRequest true "Proposal details"
// @Success 201 {object} dto.ProposalResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 409 {object} map[string]string "Proposal number already exists"
// @Failure 500 {object} map[string]string "Failed to create proposal"
// @Security BearerAuth
// @Router /proposals [post]
func (h *proposalHandler) createProposal(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateProposalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actor, ok := middleware.GetActorFromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	proposal, err := h.proposalService.CreateProposal(c.Request.Context(), req, actor.UserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) || errors.Is(err, apperrors.ErrInvalidDiscountConfig) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else if errors.Is(err, apperrors.ErrDuplicate) {
			c.JSON(http.StatusConflict, gin.H{"error": "Proposal number already exists"})
		} else {
			logger.Error("Failed to create proposal", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create proposal"})
		}
		return
	}

	logger.Info("Proposal created", slog.String("proposal_id", proposal.ProposalID))
	c.JSON(http.StatusCreated, dto.ToProposalResponse(*proposal))
}

// getProposal godoc
// @Summary Get a proposal
// @Description Retrieves a proposal and its billing terms
// @Tags proposals
// @Produce  json
// @Param   proposalID path string true "Proposal ID"
// @Success 200 {object} dto.ProposalResponse
// @Failure 404 {object} map[string]string "Proposal not found"
// @Failure 500 {object} map[string]string "Failed to retrieve proposal"
// @Security BearerAuth
// @Router /proposals/{proposalID} [get]
func (h *proposalHandler) getProposal(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	proposalID := c.Param("proposalID")

	proposal, err := h.proposalService.GetProposal(c.Request.Context(), proposalID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Proposal not found"})
		} else {
			logger.Error("Failed to retrieve proposal", slog.String("proposal_id", proposalID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve proposal"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToProposalResponse(*proposal))
}
